package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "refdata/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the shared parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseBankID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseBankID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseBankID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseBankID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, BankID(validUUID), id)
		assert.Equal(t, validUUID, id.UUID())
		assert.False(t, id.IsNil())
	})
}

// TestTypeDistinction verifies the compiler enforces type safety between
// entity identifiers. This is a compile-time check: if this compiles, the
// invariant holds.
func TestTypeDistinction(t *testing.T) {
	bankID := BankID(uuid.New())
	partnerID := PartnerID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ BankID = partnerID    // compile error
	// var _ PartnerID = bankID    // compile error

	assert.NotEqual(t, uuid.UUID(bankID), uuid.UUID(partnerID))
}

// TestParseConsistency checks every entity's parse function applies the
// same validation.
func TestParseConsistency(t *testing.T) {
	inputs := []string{"", "invalid", uuid.Nil.String(), uuid.NewString()}

	for _, input := range inputs {
		_, errBank := ParseBankID(input)
		_, errCurrency := ParseCurrencyID(input)
		_, errSector := ParseSectorID(input)
		_, errPartner := ParsePartnerID(input)
		_, errAccount := ParsePartnerAccountID(input)
		_, errContract := ParseContractID(input)
		_, errPricing := ParsePricingID(input)
		_, errBinding := ParseContractPricingID(input)

		accepted := errBank == nil
		for _, err := range []error{errCurrency, errSector, errPartner, errAccount, errContract, errPricing, errBinding} {
			assert.Equal(t, accepted, err == nil, "inconsistent parsing for %q", input)
		}
	}
}

func TestString_RoundTrip(t *testing.T) {
	id := NewSectorID()
	parsed, err := ParseSectorID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}
