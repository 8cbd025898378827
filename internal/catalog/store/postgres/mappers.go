package postgres

import (
	"database/sql"

	"github.com/google/uuid"

	"refdata/internal/catalog/models"
)

func nullUUID(p *uuid.UUID) uuid.NullUUID {
	if p == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *p, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	v := n.UUID
	return &v
}

func BankMapper() Mapper[models.BankAttributes] {
	return Mapper[models.BankAttributes]{
		Table:   "banks",
		Columns: []string{"code", "name", "abbreviation"},
		Values: func(a models.BankAttributes) []any {
			return []any{a.Code, a.Name, a.Abbreviation}
		},
		ScanDest: func() ([]any, func() models.BankAttributes) {
			var a models.BankAttributes
			return []any{&a.Code, &a.Name, &a.Abbreviation},
				func() models.BankAttributes { return a }
		},
	}
}

func CurrencyMapper() Mapper[models.CurrencyAttributes] {
	return Mapper[models.CurrencyAttributes]{
		Table:   "currencies",
		Columns: []string{"code", "name", "symbol", "decimal_places"},
		Values: func(a models.CurrencyAttributes) []any {
			return []any{a.Code, a.Name, a.Symbol, a.DecimalPlaces}
		},
		ScanDest: func() ([]any, func() models.CurrencyAttributes) {
			var a models.CurrencyAttributes
			return []any{&a.Code, &a.Name, &a.Symbol, &a.DecimalPlaces},
				func() models.CurrencyAttributes { return a }
		},
	}
}

func SectorMapper() Mapper[models.SectorAttributes] {
	return Mapper[models.SectorAttributes]{
		Table:   "sectors",
		Columns: []string{"code", "name", "description"},
		Values: func(a models.SectorAttributes) []any {
			return []any{a.Code, a.Name, a.Description}
		},
		ScanDest: func() ([]any, func() models.SectorAttributes) {
			var a models.SectorAttributes
			return []any{&a.Code, &a.Name, &a.Description},
				func() models.SectorAttributes { return a }
		},
	}
}

func PartnerMapper() Mapper[models.PartnerAttributes] {
	return Mapper[models.PartnerAttributes]{
		Table:   "partners",
		Columns: []string{"code", "name", "sector_id", "parent_partner_id", "commission_account_id", "activity_account_id"},
		Values: func(a models.PartnerAttributes) []any {
			return []any{
				a.Code, a.Name, a.SectorID,
				nullUUID(a.ParentPartnerID),
				nullUUID(a.CommissionAccountID),
				nullUUID(a.ActivityAccountID),
			}
		},
		ScanDest: func() ([]any, func() models.PartnerAttributes) {
			var a models.PartnerAttributes
			var parent, commission, activity uuid.NullUUID
			dests := []any{&a.Code, &a.Name, &a.SectorID, &parent, &commission, &activity}
			return dests, func() models.PartnerAttributes {
				a.ParentPartnerID = uuidPtr(parent)
				a.CommissionAccountID = uuidPtr(commission)
				a.ActivityAccountID = uuidPtr(activity)
				return a
			}
		},
	}
}

func PartnerAccountMapper() Mapper[models.PartnerAccountAttributes] {
	return Mapper[models.PartnerAccountAttributes]{
		Table:   "partner_accounts",
		Columns: []string{"number", "label", "bank_id", "currency_id"},
		Values: func(a models.PartnerAccountAttributes) []any {
			return []any{a.Number, a.Label, a.BankID, a.CurrencyID}
		},
		ScanDest: func() ([]any, func() models.PartnerAccountAttributes) {
			var a models.PartnerAccountAttributes
			return []any{&a.Number, &a.Label, &a.BankID, &a.CurrencyID},
				func() models.PartnerAccountAttributes { return a }
		},
	}
}

func ContractMapper() Mapper[models.ContractAttributes] {
	return Mapper[models.ContractAttributes]{
		Table:   "contracts",
		Columns: []string{"code", "label", "partner_id", "start_date", "end_date"},
		Values: func(a models.ContractAttributes) []any {
			end := sql.NullTime{}
			if a.EndDate != nil {
				end = sql.NullTime{Time: *a.EndDate, Valid: true}
			}
			return []any{a.Code, a.Label, a.PartnerID, a.StartDate, end}
		},
		ScanDest: func() ([]any, func() models.ContractAttributes) {
			var a models.ContractAttributes
			var end sql.NullTime
			dests := []any{&a.Code, &a.Label, &a.PartnerID, &a.StartDate, &end}
			return dests, func() models.ContractAttributes {
				if end.Valid {
					t := end.Time
					a.EndDate = &t
				}
				return a
			}
		},
	}
}

func PricingMapper() Mapper[models.PricingAttributes] {
	return Mapper[models.PricingAttributes]{
		Table:   "pricings",
		Columns: []string{"code", "label", "currency_id", "rate", "min_amount", "max_amount"},
		Values: func(a models.PricingAttributes) []any {
			return []any{a.Code, a.Label, nullUUID(a.CurrencyID), a.Rate, a.MinAmount, a.MaxAmount}
		},
		ScanDest: func() ([]any, func() models.PricingAttributes) {
			var a models.PricingAttributes
			var currency uuid.NullUUID
			dests := []any{&a.Code, &a.Label, &currency, &a.Rate, &a.MinAmount, &a.MaxAmount}
			return dests, func() models.PricingAttributes {
				a.CurrencyID = uuidPtr(currency)
				return a
			}
		},
	}
}

func ContractPricingMapper() Mapper[models.ContractPricingAttributes] {
	return Mapper[models.ContractPricingAttributes]{
		Table:   "contract_pricings",
		Columns: []string{"contract_id", "pricing_id", "priority"},
		Values: func(a models.ContractPricingAttributes) []any {
			return []any{a.ContractID, a.PricingID, a.Priority}
		},
		ScanDest: func() ([]any, func() models.ContractPricingAttributes) {
			var a models.ContractPricingAttributes
			return []any{&a.ContractID, &a.PricingID, &a.Priority},
				func() models.ContractPricingAttributes { return a }
		},
	}
}
