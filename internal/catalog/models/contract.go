package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// ContractAttributes holds the mutable state of a partner contract.
type ContractAttributes struct {
	Code      string     `json:"code"`
	Label     string     `json:"label"`
	PartnerID uuid.UUID  `json:"partner_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (ContractAttributes) Kind() string { return "contract" }

func (a *ContractAttributes) Normalize() {
	a.Code = strings.TrimSpace(a.Code)
	a.Label = strings.TrimSpace(a.Label)
}

func (a ContractAttributes) Validate() error {
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
	if a.PartnerID == uuid.Nil {
		fields["partner_id"] = "is required"
	}
	if a.StartDate.IsZero() {
		fields["start_date"] = "is required"
	}
	if a.EndDate != nil && !a.StartDate.IsZero() && !a.EndDate.After(a.StartDate) {
		fields["end_date"] = "must be after start_date"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

type ContractPatch struct {
	Code      optional.Value[string]     `json:"code"`
	Label     optional.Value[string]     `json:"label"`
	PartnerID optional.Value[uuid.UUID]  `json:"partner_id"`
	StartDate optional.Value[time.Time]  `json:"start_date"`
	EndDate   optional.Value[*time.Time] `json:"end_date"`
}

func (p ContractPatch) Apply(cur ContractAttributes) (ContractAttributes, []string) {
	var supplied []string
	if p.Code.IsSet() {
		cur.Code = strings.TrimSpace(p.Code.Val())
		supplied = append(supplied, "code")
	}
	if p.Label.IsSet() {
		cur.Label = strings.TrimSpace(p.Label.Val())
		supplied = append(supplied, "label")
	}
	if p.PartnerID.IsSet() {
		cur.PartnerID = p.PartnerID.Val()
		supplied = append(supplied, "partner_id")
	}
	if p.StartDate.IsSet() {
		cur.StartDate = p.StartDate.Val()
		supplied = append(supplied, "start_date")
	}
	if p.EndDate.IsSet() {
		cur.EndDate = p.EndDate.Val()
		supplied = append(supplied, "end_date")
	}
	return cur, supplied
}

// ContractDescriptor declares the contract shape. Dependents guard Disable:
// a contract carried by an enabled contract pricing cannot be disabled.
func ContractDescriptor(partnerExists core.ExistsFunc, dependents ...core.DependentCheck) core.Descriptor[ContractAttributes] {
	return core.Descriptor[ContractAttributes]{
		Kind: "contract",
		UniqueKeys: []core.UniqueKey[ContractAttributes]{
			{Fields: []string{"code"}, Values: func(a ContractAttributes) []any { return []any{a.Code} }},
		},
		References: []core.Reference[ContractAttributes]{
			{
				Field:  "partner_id",
				Target: "partner",
				Value:  func(a ContractAttributes) *uuid.UUID { return &a.PartnerID },
				Exists: partnerExists,
			},
		},
		Dependents: dependents,
		Fields: map[string]core.FieldGetter[ContractAttributes]{
			"code":       func(a ContractAttributes) any { return a.Code },
			"label":      func(a ContractAttributes) any { return a.Label },
			"partner_id": func(a ContractAttributes) any { return a.PartnerID },
			"start_date": func(a ContractAttributes) any { return a.StartDate },
		},
	}
}
