package models

import (
	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// ContractPricingAttributes binds one pricing rule to one contract.
// The (contract_id, pricing_id) pair is unique across the entity type.
type ContractPricingAttributes struct {
	ContractID uuid.UUID `json:"contract_id"`
	PricingID  uuid.UUID `json:"pricing_id"`
	Priority   int       `json:"priority"`
}

func (ContractPricingAttributes) Kind() string { return "contract_pricing" }

func (a ContractPricingAttributes) Validate() error {
	fields := map[string]string{}
	if a.ContractID == uuid.Nil {
		fields["contract_id"] = "is required"
	}
	if a.PricingID == uuid.Nil {
		fields["pricing_id"] = "is required"
	}
	if a.Priority < 1 {
		fields["priority"] = "must be 1 or greater"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

type ContractPricingPatch struct {
	ContractID optional.Value[uuid.UUID] `json:"contract_id"`
	PricingID  optional.Value[uuid.UUID] `json:"pricing_id"`
	Priority   optional.Value[int]       `json:"priority"`
}

func (p ContractPricingPatch) Apply(cur ContractPricingAttributes) (ContractPricingAttributes, []string) {
	var supplied []string
	if p.ContractID.IsSet() {
		cur.ContractID = p.ContractID.Val()
		supplied = append(supplied, "contract_id")
	}
	if p.PricingID.IsSet() {
		cur.PricingID = p.PricingID.Val()
		supplied = append(supplied, "pricing_id")
	}
	if p.Priority.IsSet() {
		cur.Priority = p.Priority.Val()
		supplied = append(supplied, "priority")
	}
	return cur, supplied
}

// ContractPricingRefs carries the lookups a contract pricing descriptor needs.
type ContractPricingRefs struct {
	ContractExists core.ExistsFunc
	PricingExists  core.ExistsFunc
}

// ContractPricingDescriptor declares the binding shape with its compound
// uniqueness key over both foreign ids.
func ContractPricingDescriptor(refs ContractPricingRefs) core.Descriptor[ContractPricingAttributes] {
	return core.Descriptor[ContractPricingAttributes]{
		Kind: "contract_pricing",
		UniqueKeys: []core.UniqueKey[ContractPricingAttributes]{
			{
				Fields: []string{"contract_id", "pricing_id"},
				Values: func(a ContractPricingAttributes) []any { return []any{a.ContractID, a.PricingID} },
			},
		},
		References: []core.Reference[ContractPricingAttributes]{
			{
				Field:  "contract_id",
				Target: "contract",
				Value:  func(a ContractPricingAttributes) *uuid.UUID { return &a.ContractID },
				Exists: refs.ContractExists,
			},
			{
				Field:  "pricing_id",
				Target: "pricing",
				Value:  func(a ContractPricingAttributes) *uuid.UUID { return &a.PricingID },
				Exists: refs.PricingExists,
			},
		},
		Fields: map[string]core.FieldGetter[ContractPricingAttributes]{
			"contract_id": func(a ContractPricingAttributes) any { return a.ContractID },
			"pricing_id":  func(a ContractPricingAttributes) any { return a.PricingID },
			"priority":    func(a ContractPricingAttributes) any { return a.Priority },
		},
	}
}
