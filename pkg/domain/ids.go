// Package domain holds typed identifiers for every entity type in the
// catalog.
//
// IDs wrap uuid.UUID so the compiler rejects cross-type assignment: a
// BankID can never be passed where a PartnerID is expected even though both
// share the underlying representation. Construct IDs from external input via
// the Parse functions; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "refdata/pkg/domain-errors"
)

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}

// BankID identifies a bank.
type BankID uuid.UUID

func ParseBankID(s string) (BankID, error) {
	u, err := parseUUID(s)
	return BankID(u), err
}

func NewBankID() BankID { return BankID(uuid.New()) }
func (id BankID) String() string { return uuid.UUID(id).String() }
func (id BankID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id BankID) UUID() uuid.UUID { return uuid.UUID(id) }

// CurrencyID identifies a currency.
type CurrencyID uuid.UUID

func ParseCurrencyID(s string) (CurrencyID, error) {
	u, err := parseUUID(s)
	return CurrencyID(u), err
}

func NewCurrencyID() CurrencyID { return CurrencyID(uuid.New()) }
func (id CurrencyID) String() string { return uuid.UUID(id).String() }
func (id CurrencyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CurrencyID) UUID() uuid.UUID { return uuid.UUID(id) }

// SectorID identifies a business sector.
type SectorID uuid.UUID

func ParseSectorID(s string) (SectorID, error) {
	u, err := parseUUID(s)
	return SectorID(u), err
}

func NewSectorID() SectorID { return SectorID(uuid.New()) }
func (id SectorID) String() string { return uuid.UUID(id).String() }
func (id SectorID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SectorID) UUID() uuid.UUID { return uuid.UUID(id) }

// PartnerID identifies a partner.
type PartnerID uuid.UUID

func ParsePartnerID(s string) (PartnerID, error) {
	u, err := parseUUID(s)
	return PartnerID(u), err
}

func NewPartnerID() PartnerID { return PartnerID(uuid.New()) }
func (id PartnerID) String() string { return uuid.UUID(id).String() }
func (id PartnerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PartnerID) UUID() uuid.UUID { return uuid.UUID(id) }

// PartnerAccountID identifies a partner bank account.
type PartnerAccountID uuid.UUID

func ParsePartnerAccountID(s string) (PartnerAccountID, error) {
	u, err := parseUUID(s)
	return PartnerAccountID(u), err
}

func NewPartnerAccountID() PartnerAccountID { return PartnerAccountID(uuid.New()) }
func (id PartnerAccountID) String() string { return uuid.UUID(id).String() }
func (id PartnerAccountID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PartnerAccountID) UUID() uuid.UUID { return uuid.UUID(id) }

// ContractID identifies a contract.
type ContractID uuid.UUID

func ParseContractID(s string) (ContractID, error) {
	u, err := parseUUID(s)
	return ContractID(u), err
}

func NewContractID() ContractID { return ContractID(uuid.New()) }
func (id ContractID) String() string { return uuid.UUID(id).String() }
func (id ContractID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ContractID) UUID() uuid.UUID { return uuid.UUID(id) }

// PricingID identifies a pricing rule.
type PricingID uuid.UUID

func ParsePricingID(s string) (PricingID, error) {
	u, err := parseUUID(s)
	return PricingID(u), err
}

func NewPricingID() PricingID { return PricingID(uuid.New()) }
func (id PricingID) String() string { return uuid.UUID(id).String() }
func (id PricingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PricingID) UUID() uuid.UUID { return uuid.UUID(id) }

// ContractPricingID identifies a contract-pricing link.
type ContractPricingID uuid.UUID

func ParseContractPricingID(s string) (ContractPricingID, error) {
	u, err := parseUUID(s)
	return ContractPricingID(u), err
}

func NewContractPricingID() ContractPricingID { return ContractPricingID(uuid.New()) }
func (id ContractPricingID) String() string { return uuid.UUID(id).String() }
func (id ContractPricingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ContractPricingID) UUID() uuid.UUID { return uuid.UUID(id) }
