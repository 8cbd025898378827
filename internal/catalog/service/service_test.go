package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"refdata/internal/catalog/core"
	"refdata/internal/catalog/models"
	"refdata/internal/catalog/service"
	"refdata/internal/catalog/store/memory"
	"refdata/internal/platform/events"
	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
	"refdata/pkg/requestcontext"
)

// ServiceSuite verifies the orchestration concerns on top of the engine:
// field validation runs before any mutation and patch results are
// re-validated after the merge.
type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	recorder *events.Recorder
	svc      *service.Service[models.BankAttributes]
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.recorder = events.NewRecorder()

	desc := models.BankDescriptor()
	engine := core.NewEngine(desc, memory.New(desc),
		core.WithPublisher[models.BankAttributes](s.recorder))
	s.svc = service.New(engine)
}

// Sub-cases create their own records; start each one from a clean
// store and recorder.
func (s *ServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *ServiceSuite) create(code string) *core.Aggregate[models.BankAttributes] {
	agg, err := s.svc.Create(s.ctx, models.BankAttributes{
		Code: code, Name: "Bank " + code, Abbreviation: "B" + code,
	})
	s.Require().NoError(err)
	return agg
}

func (s *ServiceSuite) TestCreate() {
	s.Run("valid attributes create an enabled record", func() {
		agg := s.create("BK01")
		s.True(agg.Enabled)
		s.Len(s.recorder.Events(), 1)
	})

	s.Run("field validation rejects before the engine runs", func() {
		_, err := s.svc.Create(s.ctx, models.BankAttributes{Name: "No code"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		var dErr *dErrors.Error
		s.Require().ErrorAs(err, &dErr)
		s.Contains(dErr.Fields, "code")
		s.Contains(dErr.Fields, "abbreviation")
		s.Empty(s.recorder.Events(), "nothing may mutate on invalid input")
	})

	s.Run("size violations aggregate with required ones", func() {
		long := make([]byte, 21)
		for i := range long {
			long[i] = 'x'
		}
		_, err := s.svc.Create(s.ctx, models.BankAttributes{Code: string(long)})
		s.Require().Error(err)

		var dErr *dErrors.Error
		s.Require().ErrorAs(err, &dErr)
		s.Equal("must be 20 characters or less", dErr.Fields["code"])
		s.Equal("is required", dErr.Fields["name"])
	})
}

func (s *ServiceSuite) TestUpdate() {
	s.Run("replaces attributes after validation", func() {
		agg := s.create("BK10")
		updated, err := s.svc.Update(s.ctx, agg.ID, models.BankAttributes{
			Code: "BK10", Name: "Renamed", Abbreviation: "RN",
		}, optional.None[bool]())
		s.Require().NoError(err)
		s.Equal("Renamed", updated.Attrs.Name)
	})

	s.Run("invalid replacement never reaches the store", func() {
		agg := s.create("BK11")
		_, err := s.svc.Update(s.ctx, agg.ID, models.BankAttributes{}, optional.None[bool]())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		kept, err := s.svc.Get(s.ctx, agg.ID)
		s.Require().NoError(err)
		s.Equal("Bank BK11", kept.Attrs.Name)
	})
}

func (s *ServiceSuite) TestPatch() {
	s.Run("merged result is re-validated", func() {
		agg := s.create("BK20")

		// Clearing the code makes the merged record invalid.
		_, err := s.svc.Patch(s.ctx, agg.ID,
			models.BankPatch{Code: optional.Of("")}, optional.None[bool]())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("partial patch keeps the rest", func() {
		agg := s.create("BK21")
		patched, err := s.svc.Patch(s.ctx, agg.ID,
			models.BankPatch{Name: optional.Of("Patched")}, optional.None[bool]())
		s.Require().NoError(err)
		s.Equal("Patched", patched.Attrs.Name)
		s.Equal("BK21", patched.Attrs.Code)
	})

	s.Run("lifecycle rides along with a patch", func() {
		agg := s.create("BK22")
		s.recorder.Reset()

		patched, err := s.svc.Patch(s.ctx, agg.ID,
			models.BankPatch{Name: optional.Of("Going dark")}, optional.Of(false))
		s.Require().NoError(err)
		s.False(patched.Enabled)

		evts := s.recorder.Events()
		s.Require().Len(evts, 2)
		s.Equal(core.EventPatched, evts[0].Type)
		s.Equal(core.EventDisabled, evts[1].Type)
	})
}

func (s *ServiceSuite) TestLifecycle() {
	s.Run("disable and enable round-trip", func() {
		agg := s.create("BK30")

		disabled, err := s.svc.Disable(s.ctx, agg.ID)
		s.Require().NoError(err)
		s.False(disabled.Enabled)

		enabled, err := s.svc.Enable(s.ctx, agg.ID)
		s.Require().NoError(err)
		s.True(enabled.Enabled)
	})

	s.Run("unknown id yields not found", func() {
		_, err := s.svc.Disable(s.ctx, uuid.New())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestList() {
	s.Run("paged query passes through the engine", func() {
		s.create("LS1")
		s.create("LS2")

		page, err := s.svc.List(s.ctx, core.NewCriteria().Page(1, 1))
		s.Require().NoError(err)
		s.Equal(2, page.TotalCount)
		s.Equal(2, page.TotalPages)
		s.Len(page.Items, 1)
	})
}
