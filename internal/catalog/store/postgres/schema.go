package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates every entity table. Uniqueness keys live in the database
// too: the validator probes first for ordered, well-formed errors, and the
// constraints close the race two concurrent creates would otherwise win
// together.
const schema = `
CREATE TABLE IF NOT EXISTS banks (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	abbreviation TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS currencies (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	symbol TEXT NOT NULL DEFAULT '',
	decimal_places INTEGER NOT NULL DEFAULT 2
);

CREATE TABLE IF NOT EXISTS sectors (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS partner_accounts (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	number TEXT NOT NULL UNIQUE,
	label TEXT NOT NULL,
	bank_id UUID NOT NULL REFERENCES banks(id),
	currency_id UUID NOT NULL REFERENCES currencies(id)
);

CREATE TABLE IF NOT EXISTS partners (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	sector_id UUID NOT NULL REFERENCES sectors(id),
	parent_partner_id UUID REFERENCES partners(id),
	commission_account_id UUID REFERENCES partner_accounts(id),
	activity_account_id UUID REFERENCES partner_accounts(id)
);

CREATE TABLE IF NOT EXISTS contracts (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	code TEXT NOT NULL UNIQUE,
	label TEXT NOT NULL,
	partner_id UUID NOT NULL REFERENCES partners(id),
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS pricings (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	code TEXT NOT NULL UNIQUE,
	label TEXT NOT NULL,
	currency_id UUID REFERENCES currencies(id),
	rate DOUBLE PRECISION NOT NULL,
	min_amount DOUBLE PRECISION NOT NULL,
	max_amount DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS contract_pricings (
	id UUID PRIMARY KEY,
	enabled BOOLEAN NOT NULL,
	version BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	contract_id UUID NOT NULL REFERENCES contracts(id),
	pricing_id UUID NOT NULL REFERENCES pricings(id),
	priority INTEGER NOT NULL,
	UNIQUE (contract_id, pricing_id)
);

CREATE INDEX IF NOT EXISTS idx_partners_sector ON partners(sector_id);
CREATE INDEX IF NOT EXISTS idx_partner_accounts_bank ON partner_accounts(bank_id);
CREATE INDEX IF NOT EXISTS idx_contracts_partner ON contracts(partner_id);
CREATE INDEX IF NOT EXISTS idx_contract_pricings_contract ON contract_pricings(contract_id);
CREATE INDEX IF NOT EXISTS idx_contract_pricings_pricing ON contract_pricings(pricing_id);
`

// EnsureSchema creates the reference data tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
