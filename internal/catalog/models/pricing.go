package models

import (
	"strings"

	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// PricingAttributes holds the mutable state of a pricing rule. Amounts
// bound the transaction range the rate applies to; CurrencyID restricts
// the rule to one currency when set.
type PricingAttributes struct {
	Code       string     `json:"code"`
	Label      string     `json:"label"`
	CurrencyID *uuid.UUID `json:"currency_id,omitempty"`
	Rate       float64    `json:"rate"`
	MinAmount  float64    `json:"min_amount"`
	MaxAmount  float64    `json:"max_amount"`
}

func (PricingAttributes) Kind() string { return "pricing" }

func (a *PricingAttributes) Normalize() {
	a.Code = strings.TrimSpace(a.Code)
	a.Label = strings.TrimSpace(a.Label)
}

func (a PricingAttributes) Validate() error {
	fields := map[string]string{}
	if len(a.Code) > 20 {
		fields["code"] = "must be 20 characters or less"
	} else if a.Code == "" {
		fields["code"] = "is required"
	}
	if len(a.Label) > 255 {
		fields["label"] = "must be 255 characters or less"
	} else if a.Label == "" {
		fields["label"] = "is required"
	}
	if a.Rate < 0 {
		fields["rate"] = "must not be negative"
	}
	if a.MinAmount < 0 {
		fields["min_amount"] = "must not be negative"
	}
	if a.MaxAmount <= a.MinAmount {
		fields["max_amount"] = "must be greater than min_amount"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

type PricingPatch struct {
	Code       optional.Value[string]     `json:"code"`
	Label      optional.Value[string]     `json:"label"`
	CurrencyID optional.Value[*uuid.UUID] `json:"currency_id"`
	Rate       optional.Value[float64]    `json:"rate"`
	MinAmount  optional.Value[float64]    `json:"min_amount"`
	MaxAmount  optional.Value[float64]    `json:"max_amount"`
}

func (p PricingPatch) Apply(cur PricingAttributes) (PricingAttributes, []string) {
	var supplied []string
	if p.Code.IsSet() {
		cur.Code = strings.TrimSpace(p.Code.Val())
		supplied = append(supplied, "code")
	}
	if p.Label.IsSet() {
		cur.Label = strings.TrimSpace(p.Label.Val())
		supplied = append(supplied, "label")
	}
	if p.CurrencyID.IsSet() {
		cur.CurrencyID = p.CurrencyID.Val()
		supplied = append(supplied, "currency_id")
	}
	if p.Rate.IsSet() {
		cur.Rate = p.Rate.Val()
		supplied = append(supplied, "rate")
	}
	if p.MinAmount.IsSet() {
		cur.MinAmount = p.MinAmount.Val()
		supplied = append(supplied, "min_amount")
	}
	if p.MaxAmount.IsSet() {
		cur.MaxAmount = p.MaxAmount.Val()
		supplied = append(supplied, "max_amount")
	}
	return cur, supplied
}

// PricingDescriptor declares the pricing shape. Dependents guard Disable:
// a pricing carried by an enabled contract pricing cannot be disabled.
func PricingDescriptor(currencyExists core.ExistsFunc, dependents ...core.DependentCheck) core.Descriptor[PricingAttributes] {
	return core.Descriptor[PricingAttributes]{
		Kind: "pricing",
		UniqueKeys: []core.UniqueKey[PricingAttributes]{
			{Fields: []string{"code"}, Values: func(a PricingAttributes) []any { return []any{a.Code} }},
		},
		References: []core.Reference[PricingAttributes]{
			{
				Field:  "currency_id",
				Target: "currency",
				Value:  func(a PricingAttributes) *uuid.UUID { return a.CurrencyID },
				Exists: currencyExists,
			},
		},
		Dependents: dependents,
		Fields: map[string]core.FieldGetter[PricingAttributes]{
			"code":  func(a PricingAttributes) any { return a.Code },
			"label": func(a PricingAttributes) any { return a.Label },
			"currency_id": func(a PricingAttributes) any {
				if a.CurrencyID == nil {
					return nil
				}
				return *a.CurrencyID
			},
			"rate":       func(a PricingAttributes) any { return a.Rate },
			"min_amount": func(a PricingAttributes) any { return a.MinAmount },
			"max_amount": func(a PricingAttributes) any { return a.MaxAmount },
		},
	}
}
