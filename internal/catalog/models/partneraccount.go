package models

import (
	"strings"

	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// PartnerAccountAttributes holds the mutable state of a settlement account.
type PartnerAccountAttributes struct {
	Number     string    `json:"number"`
	Label      string    `json:"label"`
	BankID     uuid.UUID `json:"bank_id"`
	CurrencyID uuid.UUID `json:"currency_id"`
}

func (PartnerAccountAttributes) Kind() string { return "partner_account" }

func (a *PartnerAccountAttributes) Normalize() {
	a.Number = strings.TrimSpace(a.Number)
	a.Label = strings.TrimSpace(a.Label)
}

func (a PartnerAccountAttributes) Validate() error {
	fields := map[string]string{}
	if len(a.Number) > 34 {
		fields["number"] = "must be 34 characters or less"
	} else if a.Number == "" {
		fields["number"] = "is required"
	}
	if len(a.Label) > 255 {
		fields["label"] = "must be 255 characters or less"
	} else if a.Label == "" {
		fields["label"] = "is required"
	}
	if a.BankID == uuid.Nil {
		fields["bank_id"] = "is required"
	}
	if a.CurrencyID == uuid.Nil {
		fields["currency_id"] = "is required"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

type PartnerAccountPatch struct {
	Number     optional.Value[string]    `json:"number"`
	Label      optional.Value[string]    `json:"label"`
	BankID     optional.Value[uuid.UUID] `json:"bank_id"`
	CurrencyID optional.Value[uuid.UUID] `json:"currency_id"`
}

func (p PartnerAccountPatch) Apply(cur PartnerAccountAttributes) (PartnerAccountAttributes, []string) {
	var supplied []string
	if p.Number.IsSet() {
		cur.Number = strings.TrimSpace(p.Number.Val())
		supplied = append(supplied, "number")
	}
	if p.Label.IsSet() {
		cur.Label = strings.TrimSpace(p.Label.Val())
		supplied = append(supplied, "label")
	}
	if p.BankID.IsSet() {
		cur.BankID = p.BankID.Val()
		supplied = append(supplied, "bank_id")
	}
	if p.CurrencyID.IsSet() {
		cur.CurrencyID = p.CurrencyID.Val()
		supplied = append(supplied, "currency_id")
	}
	return cur, supplied
}

// PartnerAccountRefs carries the lookups an account descriptor needs.
type PartnerAccountRefs struct {
	BankExists     core.ExistsFunc
	CurrencyExists core.ExistsFunc
}

// PartnerAccountDescriptor declares the account shape. Dependents guard
// Disable: an account held as commission or activity account by an enabled
// partner cannot be disabled.
func PartnerAccountDescriptor(refs PartnerAccountRefs, dependents ...core.DependentCheck) core.Descriptor[PartnerAccountAttributes] {
	return core.Descriptor[PartnerAccountAttributes]{
		Kind: "partner_account",
		UniqueKeys: []core.UniqueKey[PartnerAccountAttributes]{
			{Fields: []string{"number"}, Values: func(a PartnerAccountAttributes) []any { return []any{a.Number} }},
		},
		References: []core.Reference[PartnerAccountAttributes]{
			{
				Field:  "bank_id",
				Target: "bank",
				Value:  func(a PartnerAccountAttributes) *uuid.UUID { return &a.BankID },
				Exists: refs.BankExists,
			},
			{
				Field:  "currency_id",
				Target: "currency",
				Value:  func(a PartnerAccountAttributes) *uuid.UUID { return &a.CurrencyID },
				Exists: refs.CurrencyExists,
			},
		},
		Dependents: dependents,
		Fields: map[string]core.FieldGetter[PartnerAccountAttributes]{
			"number":      func(a PartnerAccountAttributes) any { return a.Number },
			"label":       func(a PartnerAccountAttributes) any { return a.Label },
			"bank_id":     func(a PartnerAccountAttributes) any { return a.BankID },
			"currency_id": func(a PartnerAccountAttributes) any { return a.CurrencyID },
		},
	}
}
