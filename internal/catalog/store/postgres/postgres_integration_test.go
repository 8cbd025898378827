//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"refdata/internal/catalog/core"
	"refdata/internal/catalog/models"
	"refdata/internal/catalog/store/postgres"
	"refdata/pkg/platform/sentinel"
	"refdata/pkg/platform/tx"
	"refdata/pkg/testutil/containers"
)

// PostgresStoreSuite runs the store contract against a real Postgres
// container, covering the paths the memory store cannot: SQL condition
// building, the version guard probe and unique constraint translation.
type PostgresStoreSuite struct {
	suite.Suite
	ctx   context.Context
	pg    *containers.PostgresContainer
	banks *postgres.Store[models.BankAttributes]
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.EnsureSchema(s.ctx, s.pg.DB))
	s.banks = postgres.New(s.pg.DB, postgres.BankMapper())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx,
		"contract_pricings", "contracts", "pricings", "partner_accounts",
		"partners", "sectors", "currencies", "banks"))
}

func (s *PostgresStoreSuite) newBank(code string) *core.Aggregate[models.BankAttributes] {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &core.Aggregate[models.BankAttributes]{
		ID:        uuid.New(),
		Attrs:     models.BankAttributes{Code: code, Name: "Bank " + code, Abbreviation: "B" + code},
		Enabled:   true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresStoreSuite) TestInsertAndFind() {
	s.Run("inserts and reads back by id", func() {
		bank := s.newBank("BK01")
		s.Require().NoError(s.banks.Insert(s.ctx, bank))

		found, err := s.banks.FindByID(s.ctx, bank.ID)
		s.Require().NoError(err)
		s.Equal(bank.Attrs, found.Attrs)
		s.Equal(bank.Version, found.Version)
		s.True(found.Enabled)
	})

	s.Run("unknown id yields ErrNotFound", func() {
		_, err := s.banks.FindByID(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("unique constraint maps to ErrAlreadyUsed", func() {
		s.Require().NoError(s.banks.Insert(s.ctx, s.newBank("BK02")))
		s.ErrorIs(s.banks.Insert(s.ctx, s.newBank("BK02")), sentinel.ErrAlreadyUsed)
	})
}

func (s *PostgresStoreSuite) TestUpdate() {
	s.Run("matching version writes and bumps", func() {
		bank := s.newBank("BK10")
		s.Require().NoError(s.banks.Insert(s.ctx, bank))

		next := bank.Clone()
		next.Attrs.Name = "Renamed"
		s.Require().NoError(s.banks.Update(s.ctx, next))
		s.EqualValues(2, next.Version)

		found, err := s.banks.FindByID(s.ctx, bank.ID)
		s.Require().NoError(err)
		s.Equal("Renamed", found.Attrs.Name)
		s.EqualValues(2, found.Version)
	})

	s.Run("stale version yields ErrStale, missing row ErrNotFound", func() {
		bank := s.newBank("BK11")
		s.Require().NoError(s.banks.Insert(s.ctx, bank))

		first := bank.Clone()
		s.Require().NoError(s.banks.Update(s.ctx, first))

		second := bank.Clone()
		s.ErrorIs(s.banks.Update(s.ctx, second), sentinel.ErrStale)

		s.ErrorIs(s.banks.Update(s.ctx, s.newBank("BK12")), sentinel.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestConditions() {
	s.Run("exact match and enabled pseudo-field compose", func() {
		enabled := s.newBank("BK20")
		disabled := s.newBank("BK21")
		disabled.Enabled = false
		s.Require().NoError(s.banks.Insert(s.ctx, enabled))
		s.Require().NoError(s.banks.Insert(s.ctx, disabled))

		found, err := s.banks.FindOneByCondition(s.ctx, core.Condition{
			core.Eq("code", "BK20"),
			core.Eq(core.FieldEnabled, true),
		})
		s.Require().NoError(err)
		s.Equal(enabled.ID, found.ID)

		_, err = s.banks.FindOneByCondition(s.ctx, core.Condition{
			core.Eq("code", "BK21"),
			core.Eq(core.FieldEnabled, true),
		})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("find-all returns every match", func() {
		for _, code := range []string{"AL1", "AL2"} {
			bank := s.newBank(code)
			bank.Attrs.Name = "Shared"
			s.Require().NoError(s.banks.Insert(s.ctx, bank))
		}

		all, err := s.banks.FindAllByCondition(s.ctx, core.Condition{core.Eq("name", "Shared")})
		s.Require().NoError(err)
		s.Len(all, 2)
	})
}

func (s *PostgresStoreSuite) TestFindPage() {
	s.Run("windows with a true total and creation order", func() {
		base := time.Now().UTC().Truncate(time.Microsecond)
		for i, code := range []string{"PG1", "PG2", "PG3", "PG4", "PG5"} {
			bank := s.newBank(code)
			bank.CreatedAt = base.Add(time.Duration(i) * time.Second)
			s.Require().NoError(s.banks.Insert(s.ctx, bank))
		}

		items, total, err := s.banks.FindPage(s.ctx, core.NewCriteria().Page(2, 2))
		s.Require().NoError(err)
		s.Equal(5, total)
		s.Require().Len(items, 2)
		s.Equal("PG3", items[0].Attrs.Code)
		s.Equal("PG4", items[1].Attrs.Code)
	})

	s.Run("range filters translate to SQL bounds", func() {
		for _, code := range []string{"AA", "BB", "CC"} {
			s.Require().NoError(s.banks.Insert(s.ctx, s.newBank(code)))
		}

		items, total, err := s.banks.FindPage(s.ctx,
			core.NewCriteria().Min("code", "BB").Max("code", "CC"))
		s.Require().NoError(err)
		s.Equal(2, total)
		s.Len(items, 2)
	})
}

func (s *PostgresStoreSuite) TestTransactions() {
	s.Run("rolled back writes leave no trace", func() {
		uow := tx.NewUnitOfWork(s.pg.DB)
		bank := s.newBank("TX01")

		err := uow.RunInTx(s.ctx, func(ctx context.Context) error {
			if err := s.banks.Insert(ctx, bank); err != nil {
				return err
			}
			return context.Canceled
		})
		s.Require().Error(err)

		_, err = s.banks.FindByID(s.ctx, bank.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("committed writes survive", func() {
		uow := tx.NewUnitOfWork(s.pg.DB)
		bank := s.newBank("TX02")

		s.Require().NoError(uow.RunInTx(s.ctx, func(ctx context.Context) error {
			return s.banks.Insert(ctx, bank)
		}))

		_, err := s.banks.FindByID(s.ctx, bank.ID)
		s.NoError(err)
	})
}

func (s *PostgresStoreSuite) TestOptionalReferenceColumns() {
	s.Run("null and non-null optional ids round-trip", func() {
		sectors := postgres.New(s.pg.DB, postgres.SectorMapper())
		partners := postgres.New(s.pg.DB, postgres.PartnerMapper())

		now := time.Now().UTC().Truncate(time.Microsecond)
		sector := &core.Aggregate[models.SectorAttributes]{
			ID:      uuid.New(),
			Attrs:   models.SectorAttributes{Code: "SEC1", Name: "Sector One"},
			Enabled: true, Version: 1, CreatedAt: now, UpdatedAt: now,
		}
		s.Require().NoError(sectors.Insert(s.ctx, sector))

		root := &core.Aggregate[models.PartnerAttributes]{
			ID:      uuid.New(),
			Attrs:   models.PartnerAttributes{Code: "PT01", Name: "Root", SectorID: sector.ID},
			Enabled: true, Version: 1, CreatedAt: now, UpdatedAt: now,
		}
		s.Require().NoError(partners.Insert(s.ctx, root))

		child := &core.Aggregate[models.PartnerAttributes]{
			ID: uuid.New(),
			Attrs: models.PartnerAttributes{
				Code: "PT02", Name: "Child", SectorID: sector.ID,
				ParentPartnerID: &root.ID,
			},
			Enabled: true, Version: 1, CreatedAt: now, UpdatedAt: now,
		}
		s.Require().NoError(partners.Insert(s.ctx, child))

		gotRoot, err := partners.FindByID(s.ctx, root.ID)
		s.Require().NoError(err)
		s.Nil(gotRoot.Attrs.ParentPartnerID)

		gotChild, err := partners.FindByID(s.ctx, child.ID)
		s.Require().NoError(err)
		s.Require().NotNil(gotChild.Attrs.ParentPartnerID)
		s.Equal(root.ID, *gotChild.Attrs.ParentPartnerID)
	})
}
