package core

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "refdata/pkg/domain-errors"
)

type pageAttrs struct{ Code string }

func (pageAttrs) Kind() string { return "page_test" }

type CriteriaSuite struct {
	suite.Suite
}

func TestCriteriaSuite(t *testing.T) {
	suite.Run(t, new(CriteriaSuite))
}

func (s *CriteriaSuite) TestDefaults() {
	s.Run("starts at page one with ten items", func() {
		c := NewCriteria()
		s.Equal(DefaultPageNumber, c.PageNumber())
		s.Equal(DefaultPageSize, c.PageSize())
		s.Equal(0, c.Offset())
	})

	s.Run("zero page values keep the defaults", func() {
		c := NewCriteria().Page(0, 0)
		s.Equal(DefaultPageNumber, c.PageNumber())
		s.Equal(DefaultPageSize, c.PageSize())
	})
}

func (s *CriteriaSuite) TestEnabledDefault() {
	s.Run("appends enabled=true when the flag is unconstrained", func() {
		cond := NewCriteria().Eq("code", "BK01").Filters()
		s.Require().Len(cond, 2)
		s.Equal(Eq(FieldEnabled, true), cond[1])
	})

	s.Run("explicit enabled filter suppresses the default", func() {
		cond := NewCriteria().Enabled(false).Filters()
		s.Require().Len(cond, 1)
		s.Equal(Eq(FieldEnabled, false), cond[0])
	})

	s.Run("repeated calls do not stack defaults", func() {
		c := NewCriteria()
		c.Filters()
		s.Len(c.Filters(), 1)
	})
}

func (s *CriteriaSuite) TestValidate() {
	s.Run("accepts positive window", func() {
		s.NoError(NewCriteria().Page(3, 25).Validate())
	})

	s.Run("rejects non-positive window with field errors", func() {
		err := NewCriteria().Page(-1, -5).Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		var dErr *dErrors.Error
		s.Require().ErrorAs(err, &dErr)
		s.Contains(dErr.Fields, "page_number")
		s.Contains(dErr.Fields, "page_size")
	})
}

func (s *CriteriaSuite) TestOffset() {
	s.Equal(0, NewCriteria().Page(1, 10).Offset())
	s.Equal(10, NewCriteria().Page(2, 10).Offset())
	s.Equal(8, NewCriteria().Page(5, 2).Offset())
}

func (s *CriteriaSuite) TestNewPage() {
	agg := func(code string) *Aggregate[pageAttrs] {
		return &Aggregate[pageAttrs]{Attrs: pageAttrs{Code: code}}
	}

	s.Run("total pages rounds up", func() {
		p := NewPage([]*Aggregate[pageAttrs]{agg("a"), agg("b")}, 5, NewCriteria().Page(1, 2))
		s.Equal(5, p.TotalCount)
		s.Equal(3, p.TotalPages)
	})

	s.Run("exact multiple does not add an empty page", func() {
		p := NewPage([]*Aggregate[pageAttrs]{agg("a")}, 4, NewCriteria().Page(4, 1))
		s.Equal(4, p.TotalPages)
	})

	s.Run("empty result is a page, not an error", func() {
		p := NewPage[pageAttrs](nil, 0, NewCriteria())
		s.NotNil(p.Items)
		s.Empty(p.Items)
		s.Equal(0, p.TotalCount)
		s.Equal(0, p.TotalPages)
	})
}
