package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	var dErr *dErrors.Error
	require.ErrorAs(t, err, &dErr)
	return dErr.Fields
}

func TestCurrencyNormalize(t *testing.T) {
	attrs := CurrencyAttributes{Code: "  eur ", Name: " Euro "}
	attrs.Normalize()
	assert.Equal(t, "EUR", attrs.Code)
	assert.Equal(t, "Euro", attrs.Name)
}

func TestPricingValidate(t *testing.T) {
	valid := PricingAttributes{
		Code: "STD", Label: "Standard", Rate: 0.015, MinAmount: 10, MaxAmount: 10_000,
	}

	t.Run("valid rule passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		a := valid
		a.Rate = -0.1
		a.MinAmount = -5
		fields := fieldErrors(t, a.Validate())
		assert.Equal(t, "must not be negative", fields["rate"])
		assert.Equal(t, "must not be negative", fields["min_amount"])
	})

	t.Run("max must exceed min", func(t *testing.T) {
		a := valid
		a.MaxAmount = a.MinAmount
		fields := fieldErrors(t, a.Validate())
		assert.Equal(t, "must be greater than min_amount", fields["max_amount"])
	})
}

func TestContractValidate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := ContractAttributes{
		Code: "CT01", Label: "Main contract", PartnerID: uuid.New(), StartDate: start,
	}

	t.Run("open ended contract passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		a := valid
		end := start.Add(-24 * time.Hour)
		a.EndDate = &end
		fields := fieldErrors(t, a.Validate())
		assert.Equal(t, "must be after start_date", fields["end_date"])
	})

	t.Run("missing start date and partner aggregate", func(t *testing.T) {
		fields := fieldErrors(t, ContractAttributes{Code: "CT02", Label: "x"}.Validate())
		assert.Contains(t, fields, "start_date")
		assert.Contains(t, fields, "partner_id")
	})
}

// TestPatchDecoding verifies the wire-level distinction a partial update
// depends on: omitted keeps, null clears, value replaces.
func TestPatchDecoding(t *testing.T) {
	parent := uuid.New()
	cur := PartnerAttributes{
		Code: "PT01", Name: "Partner", SectorID: uuid.New(), ParentPartnerID: &parent,
	}

	t.Run("omitted reference survives the merge", func(t *testing.T) {
		var p PartnerPatch
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Renamed"}`), &p))

		merged, supplied := p.Apply(cur)
		assert.Equal(t, []string{"name"}, supplied)
		assert.Equal(t, "Renamed", merged.Name)
		require.NotNil(t, merged.ParentPartnerID)
		assert.Equal(t, parent, *merged.ParentPartnerID)
	})

	t.Run("null clears the optional reference", func(t *testing.T) {
		var p PartnerPatch
		require.NoError(t, json.Unmarshal([]byte(`{"parent_partner_id":null}`), &p))

		merged, supplied := p.Apply(cur)
		assert.Equal(t, []string{"parent_partner_id"}, supplied)
		assert.Nil(t, merged.ParentPartnerID)
	})

	t.Run("supplied values are normalized on merge", func(t *testing.T) {
		merged, supplied := BankPatch{Code: optional.Of("  BK02 ")}.Apply(BankAttributes{
			Code: "BK01", Name: "Bank", Abbreviation: "BK",
		})
		assert.Equal(t, []string{"code"}, supplied)
		assert.Equal(t, "BK02", merged.Code)
	})
}
