package models

import (
	"strings"

	"refdata/internal/catalog/core"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

// CurrencyAttributes holds the mutable state of a currency.
type CurrencyAttributes struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimal_places"`
}

func (CurrencyAttributes) Kind() string { return "currency" }

func (a *CurrencyAttributes) Normalize() {
	a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
	a.Name = strings.TrimSpace(a.Name)
	a.Symbol = strings.TrimSpace(a.Symbol)
}

func (a CurrencyAttributes) Validate() error {
	fields := map[string]string{}
	if a.Code == "" {
		fields["code"] = "is required"
	} else if len(a.Code) != 3 {
		fields["code"] = "must be a 3-letter ISO code"
	}
	if len(a.Name) > 255 {
		fields["name"] = "must be 255 characters or less"
	} else if a.Name == "" {
		fields["name"] = "is required"
	}
	if len(a.Symbol) > 5 {
		fields["symbol"] = "must be 5 characters or less"
	}
	if a.DecimalPlaces < 0 || a.DecimalPlaces > 6 {
		fields["decimal_places"] = "must be between 0 and 6"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

type CurrencyPatch struct {
	Code          optional.Value[string] `json:"code"`
	Name          optional.Value[string] `json:"name"`
	Symbol        optional.Value[string] `json:"symbol"`
	DecimalPlaces optional.Value[int]    `json:"decimal_places"`
}

func (p CurrencyPatch) Apply(cur CurrencyAttributes) (CurrencyAttributes, []string) {
	var supplied []string
	if p.Code.IsSet() {
		cur.Code = strings.ToUpper(strings.TrimSpace(p.Code.Val()))
		supplied = append(supplied, "code")
	}
	if p.Name.IsSet() {
		cur.Name = strings.TrimSpace(p.Name.Val())
		supplied = append(supplied, "name")
	}
	if p.Symbol.IsSet() {
		cur.Symbol = strings.TrimSpace(p.Symbol.Val())
		supplied = append(supplied, "symbol")
	}
	if p.DecimalPlaces.IsSet() {
		cur.DecimalPlaces = p.DecimalPlaces.Val()
		supplied = append(supplied, "decimal_places")
	}
	return cur, supplied
}

func CurrencyDescriptor() core.Descriptor[CurrencyAttributes] {
	return core.Descriptor[CurrencyAttributes]{
		Kind: "currency",
		UniqueKeys: []core.UniqueKey[CurrencyAttributes]{
			{Fields: []string{"code"}, Values: func(a CurrencyAttributes) []any { return []any{a.Code} }},
		},
		Fields: map[string]core.FieldGetter[CurrencyAttributes]{
			"code":           func(a CurrencyAttributes) any { return a.Code },
			"name":           func(a CurrencyAttributes) any { return a.Name },
			"symbol":         func(a CurrencyAttributes) any { return a.Symbol },
			"decimal_places": func(a CurrencyAttributes) any { return a.DecimalPlaces },
		},
	}
}
