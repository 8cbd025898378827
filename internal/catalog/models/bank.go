// Package models defines the attribute shapes, patch commands and
// descriptors for every reference data entity. Each entity follows the
// same pattern: an attributes struct, a Validate with aggregated field
// errors, a patch type whose optional fields distinguish omitted from
// explicitly zeroed, and a descriptor wiring uniqueness keys, references
// and disable guards into the shared engine.
package models

import (
	"strings"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// BankAttributes holds the mutable state of a bank.
type BankAttributes struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

func (BankAttributes) Kind() string { return "bank" }

func (a *BankAttributes) Normalize() {
	a.Code = strings.TrimSpace(a.Code)
	a.Name = strings.TrimSpace(a.Name)
	a.Abbreviation = strings.TrimSpace(a.Abbreviation)
}

// Follows validation order: Size -> Required. All field errors aggregate.
func (a BankAttributes) Validate() error {
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
	if len(a.Abbreviation) > 10 {
		fields["abbreviation"] = "must be 10 characters or less"
	} else if a.Abbreviation == "" {
		fields["abbreviation"] = "is required"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

// BankPatch carries the subset of bank fields supplied by a partial update.
type BankPatch struct {
	Code         optional.Value[string] `json:"code"`
	Name         optional.Value[string] `json:"name"`
	Abbreviation optional.Value[string] `json:"abbreviation"`
}

// Apply merges the patch over the current attributes and reports which
// fields were supplied.
func (p BankPatch) Apply(cur BankAttributes) (BankAttributes, []string) {
	var supplied []string
	if p.Code.IsSet() {
		cur.Code = strings.TrimSpace(p.Code.Val())
		supplied = append(supplied, "code")
	}
	if p.Name.IsSet() {
		cur.Name = strings.TrimSpace(p.Name.Val())
		supplied = append(supplied, "name")
	}
	if p.Abbreviation.IsSet() {
		cur.Abbreviation = strings.TrimSpace(p.Abbreviation.Val())
		supplied = append(supplied, "abbreviation")
	}
	return cur, supplied
}

// BankDescriptor declares the bank's uniqueness key and filterable fields.
// Banks have no outbound references; disabling one is never blocked.
func BankDescriptor() core.Descriptor[BankAttributes] {
	return core.Descriptor[BankAttributes]{
		Kind: "bank",
		UniqueKeys: []core.UniqueKey[BankAttributes]{
			{Fields: []string{"code"}, Values: func(a BankAttributes) []any { return []any{a.Code} }},
		},
		Fields: map[string]core.FieldGetter[BankAttributes]{
			"code":         func(a BankAttributes) any { return a.Code },
			"name":         func(a BankAttributes) any { return a.Name },
			"abbreviation": func(a BankAttributes) any { return a.Abbreviation },
		},
	}
}
