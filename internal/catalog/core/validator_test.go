package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"refdata/internal/catalog/core"
	"refdata/internal/catalog/models"
	"refdata/internal/catalog/store/memory"
	dErrors "refdata/pkg/domain-errors"
)

// ValidatorSuite covers the checks shared by every mutation: compound
// uniqueness keys, supplied-field scoping and the self-match exemption.
type ValidatorSuite struct {
	suite.Suite
	ctx context.Context

	store     *memory.Store[models.ContractPricingAttributes]
	validator *core.Validator[models.ContractPricingAttributes]

	contractID uuid.UUID
	pricingID  uuid.UUID
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.ctx = context.Background()
	s.contractID = uuid.New()
	s.pricingID = uuid.New()

	known := map[uuid.UUID]bool{s.contractID: true, s.pricingID: true}
	exists := func(ctx context.Context, id uuid.UUID) (bool, error) {
		return known[id], nil
	}

	desc := models.ContractPricingDescriptor(models.ContractPricingRefs{
		ContractExists: exists,
		PricingExists:  exists,
	})
	s.store = memory.New(desc)
	s.validator = core.NewValidator(desc, s.store)
}

func (s *ValidatorSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *ValidatorSuite) insert(contractID, pricingID uuid.UUID) *core.Aggregate[models.ContractPricingAttributes] {
	agg := &core.Aggregate[models.ContractPricingAttributes]{
		ID:      uuid.New(),
		Attrs:   models.ContractPricingAttributes{ContractID: contractID, PricingID: pricingID, Priority: 1},
		Enabled: true,
		Version: 1, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.Require().NoError(s.store.Insert(s.ctx, agg))
	return agg
}

func (s *ValidatorSuite) TestCompoundUniqueness() {
	s.Run("exact pair collision conflicts with both fields reported", func() {
		s.insert(s.contractID, s.pricingID)

		err := s.validator.ValidateMutation(s.ctx, uuid.Nil,
			models.ContractPricingAttributes{ContractID: s.contractID, PricingID: s.pricingID, Priority: 2},
			nil, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		var dErr *dErrors.Error
		s.Require().ErrorAs(err, &dErr)
		s.Contains(dErr.Fields, "contract_id")
		s.Contains(dErr.Fields, "pricing_id")
	})

	s.Run("same contract with a different pricing is allowed", func() {
		s.insert(s.contractID, s.pricingID)

		otherPricing := uuid.New()
		err := s.validator.ValidateMutation(s.ctx, uuid.Nil,
			models.ContractPricingAttributes{ContractID: s.contractID, PricingID: otherPricing, Priority: 1},
			nil, []string{"contract_id", "pricing_id", "priority"})
		// Reference check fires instead: the pricing id is unknown.
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ValidatorSuite) TestSelfMatch() {
	s.Run("a record keeping its own key passes", func() {
		agg := s.insert(s.contractID, s.pricingID)

		err := s.validator.ValidateMutation(s.ctx, agg.ID,
			models.ContractPricingAttributes{ContractID: s.contractID, PricingID: s.pricingID, Priority: 9},
			&agg.Attrs, nil)
		s.NoError(err)
	})
}

func (s *ValidatorSuite) TestSuppliedScoping() {
	s.Run("unsupplied fields are not re-checked", func() {
		agg := s.insert(s.contractID, s.pricingID)

		// Attributes still carry the foreign ids, but only priority was
		// supplied, so no uniqueness or reference probe runs.
		err := s.validator.ValidateMutation(s.ctx, agg.ID, agg.Attrs, &agg.Attrs, []string{"priority"})
		s.NoError(err)
	})

	s.Run("supplying one key field re-checks the whole key", func() {
		s.insert(s.contractID, s.pricingID)
		victim := s.insert(s.contractID, uuid.New())

		moved := victim.Attrs
		moved.PricingID = s.pricingID
		err := s.validator.ValidateMutation(s.ctx, victim.ID, moved, &victim.Attrs, []string{"pricing_id"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unchanged value skips the probe even when supplied", func() {
		agg := s.insert(s.contractID, s.pricingID)

		err := s.validator.ValidateMutation(s.ctx, agg.ID, agg.Attrs, &agg.Attrs,
			[]string{"contract_id", "pricing_id"})
		s.NoError(err)
	})
}

func (s *ValidatorSuite) TestReferences() {
	s.Run("dangling reference names the field", func() {
		missing := uuid.New()
		err := s.validator.ValidateMutation(s.ctx, uuid.Nil,
			models.ContractPricingAttributes{ContractID: missing, PricingID: s.pricingID, Priority: 1},
			nil, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		var dErr *dErrors.Error
		s.Require().ErrorAs(err, &dErr)
		s.Contains(dErr.Fields, "contract_id")
	})
}

func (s *ValidatorSuite) TestDependents() {
	s.Run("enabled dependent blocks, disabled does not", func() {
		referenced := uuid.New()
		active := true
		desc := models.SectorDescriptor(core.DependentCheck{
			Description: "an enabled partner",
			Exists: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return active && id == referenced, nil
			},
		})
		v := core.NewValidator(desc, memory.New(desc))

		err := v.EnsureNoActiveDependents(s.ctx, referenced)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.ErrorContains(err, "sector is still referenced by an enabled partner")

		active = false
		s.NoError(v.EnsureNoActiveDependents(s.ctx, referenced))
	})
}
