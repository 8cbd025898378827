package models

import (
	"strings"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// SectorAttributes holds the mutable state of a business sector.
type SectorAttributes struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (SectorAttributes) Kind() string { return "sector" }

func (a *SectorAttributes) Normalize() {
	a.Code = strings.TrimSpace(a.Code)
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
}

func (a SectorAttributes) Validate() error {
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
	if len(a.Description) > 1000 {
		fields["description"] = "must be 1000 characters or less"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

type SectorPatch struct {
	Code        optional.Value[string] `json:"code"`
	Name        optional.Value[string] `json:"name"`
	Description optional.Value[string] `json:"description"`
}

func (p SectorPatch) Apply(cur SectorAttributes) (SectorAttributes, []string) {
	var supplied []string
	if p.Code.IsSet() {
		cur.Code = strings.TrimSpace(p.Code.Val())
		supplied = append(supplied, "code")
	}
	if p.Name.IsSet() {
		cur.Name = strings.TrimSpace(p.Name.Val())
		supplied = append(supplied, "name")
	}
	if p.Description.IsSet() {
		cur.Description = strings.TrimSpace(p.Description.Val())
		supplied = append(supplied, "description")
	}
	return cur, supplied
}

// SectorDescriptor declares the sector shape. Dependents guard Disable:
// a sector referenced by an enabled partner cannot be disabled, so the
// composition root passes in the reverse lookup against the partner store.
func SectorDescriptor(dependents ...core.DependentCheck) core.Descriptor[SectorAttributes] {
	return core.Descriptor[SectorAttributes]{
		Kind: "sector",
		UniqueKeys: []core.UniqueKey[SectorAttributes]{
			{Fields: []string{"code"}, Values: func(a SectorAttributes) []any { return []any{a.Code} }},
		},
		Dependents: dependents,
		Fields: map[string]core.FieldGetter[SectorAttributes]{
			"code": func(a SectorAttributes) any { return a.Code },
			"name": func(a SectorAttributes) any { return a.Name },
		},
	}
}
