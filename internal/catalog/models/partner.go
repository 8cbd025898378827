package models

import (
	"strings"

	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// PartnerAttributes holds the mutable state of a partner. SectorID is
// required; the parent partner and settlement accounts are optional.
type PartnerAttributes struct {
	Code                string     `json:"code"`
	Name                string     `json:"name"`
	SectorID            uuid.UUID  `json:"sector_id"`
	ParentPartnerID     *uuid.UUID `json:"parent_partner_id,omitempty"`
	CommissionAccountID *uuid.UUID `json:"commission_account_id,omitempty"`
	ActivityAccountID   *uuid.UUID `json:"activity_account_id,omitempty"`
}

func (PartnerAttributes) Kind() string { return "partner" }

func (a *PartnerAttributes) Normalize() {
	a.Code = strings.TrimSpace(a.Code)
	a.Name = strings.TrimSpace(a.Name)
}

func (a PartnerAttributes) Validate() error {
	fields := map[string]string{}
	if len(a.Code) > 20 {
		fields["code"] = "must be 20 characters or less"
	} else if a.Code == "" {
		fields["code"] = "is required"
	}
	if len(a.Name) > 255 {
		fields["name"] = "must be 255 characters or less"
	} else if a.Name == "" {
		fields["name"] = "is required"
	}
	if a.SectorID == uuid.Nil {
		fields["sector_id"] = "is required"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

// PartnerPatch distinguishes an omitted reference from one explicitly set
// to null: null clears the optional reference.
type PartnerPatch struct {
	Code                optional.Value[string]     `json:"code"`
	Name                optional.Value[string]     `json:"name"`
	SectorID            optional.Value[uuid.UUID]  `json:"sector_id"`
	ParentPartnerID     optional.Value[*uuid.UUID] `json:"parent_partner_id"`
	CommissionAccountID optional.Value[*uuid.UUID] `json:"commission_account_id"`
	ActivityAccountID   optional.Value[*uuid.UUID] `json:"activity_account_id"`
}

func (p PartnerPatch) Apply(cur PartnerAttributes) (PartnerAttributes, []string) {
	var supplied []string
	if p.Code.IsSet() {
		cur.Code = strings.TrimSpace(p.Code.Val())
		supplied = append(supplied, "code")
	}
	if p.Name.IsSet() {
		cur.Name = strings.TrimSpace(p.Name.Val())
		supplied = append(supplied, "name")
	}
	if p.SectorID.IsSet() {
		cur.SectorID = p.SectorID.Val()
		supplied = append(supplied, "sector_id")
	}
	if p.ParentPartnerID.IsSet() {
		cur.ParentPartnerID = p.ParentPartnerID.Val()
		supplied = append(supplied, "parent_partner_id")
	}
	if p.CommissionAccountID.IsSet() {
		cur.CommissionAccountID = p.CommissionAccountID.Val()
		supplied = append(supplied, "commission_account_id")
	}
	if p.ActivityAccountID.IsSet() {
		cur.ActivityAccountID = p.ActivityAccountID.Val()
		supplied = append(supplied, "activity_account_id")
	}
	return cur, supplied
}

// PartnerRefs carries the cross-entity lookups a partner descriptor needs.
type PartnerRefs struct {
	SectorExists  core.ExistsFunc
	PartnerExists core.ExistsFunc
	AccountExists core.ExistsFunc
}

// PartnerDescriptor declares the partner shape. Reference order is fixed:
// parent partner, sector, commission account, activity account.
func PartnerDescriptor(refs PartnerRefs) core.Descriptor[PartnerAttributes] {
	return core.Descriptor[PartnerAttributes]{
		Kind: "partner",
		UniqueKeys: []core.UniqueKey[PartnerAttributes]{
			{Fields: []string{"code"}, Values: func(a PartnerAttributes) []any { return []any{a.Code} }},
		},
		References: []core.Reference[PartnerAttributes]{
			{
				Field:  "parent_partner_id",
				Target: "partner",
				Value:  func(a PartnerAttributes) *uuid.UUID { return a.ParentPartnerID },
				Exists: refs.PartnerExists,
			},
			{
				Field:  "sector_id",
				Target: "sector",
				Value:  func(a PartnerAttributes) *uuid.UUID { return &a.SectorID },
				Exists: refs.SectorExists,
			},
			{
				Field:  "commission_account_id",
				Target: "partner account",
				Value:  func(a PartnerAttributes) *uuid.UUID { return a.CommissionAccountID },
				Exists: refs.AccountExists,
			},
			{
				Field:  "activity_account_id",
				Target: "partner account",
				Value:  func(a PartnerAttributes) *uuid.UUID { return a.ActivityAccountID },
				Exists: refs.AccountExists,
			},
		},
		Fields: map[string]core.FieldGetter[PartnerAttributes]{
			"code":      func(a PartnerAttributes) any { return a.Code },
			"name":      func(a PartnerAttributes) any { return a.Name },
			"sector_id": func(a PartnerAttributes) any { return a.SectorID },
			"parent_partner_id": func(a PartnerAttributes) any {
				if a.ParentPartnerID == nil {
					return nil
				}
				return *a.ParentPartnerID
			},
			"commission_account_id": func(a PartnerAttributes) any {
				if a.CommissionAccountID == nil {
					return nil
				}
				return *a.CommissionAccountID
			},
			"activity_account_id": func(a PartnerAttributes) any {
				if a.ActivityAccountID == nil {
					return nil
				}
				return *a.ActivityAccountID
			},
		},
	}
}
