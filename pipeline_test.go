package digo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/mock"
)

type PipelineTestSuite struct {
	suite.Suite
	pipeline digo.Pipeline
}

func (s *PipelineTestSuite) SetupTest() {
	p, err := digo.BeginRegistration(digo.NewCollection(), digo.Scan(mock.Contracts(), mock.Types()...))
	s.Require().NoError(err)
	s.pipeline = p
}

func candidateNames(p digo.Pipeline) []string {
	var names []string
	for _, c := range p.Candidates() {
		names = append(names, c.Name())
	}
	return names
}

func (s *PipelineTestSuite) TestExcludedRemovedAtCreation() {
	s.Equal([]string{
		"MockDB", "MockCache", "SessionStore", "UserRepository",
		"OrderRepository", "HiddenService", "ValidationError",
	}, candidateNames(s.pipeline))

	p, err := s.pipeline.Filter(digo.NameMatches("Audit*"))
	s.Require().NoError(err)
	s.Empty(p.Candidates(), "a filter cannot bring back an excluded type")
}

func (s *PipelineTestSuite) TestFilterComposesInOrder() {
	p, err := s.pipeline.Filter(digo.InPackage("github.com/centraunit/digo/mock"))
	s.Require().NoError(err)
	p, err = p.Filter(digo.NameHasSuffix("Repository"))
	s.Require().NoError(err)
	p, err = p.Filter(func(c digo.Candidate) bool { return c.Name() != "OrderRepository" })
	s.Require().NoError(err)

	s.Equal([]string{"UserRepository"}, candidateNames(p))
}

func (s *PipelineTestSuite) TestFilterLeavesReceiverUntouched() {
	before := candidateNames(s.pipeline)

	onlyDB, err := s.pipeline.Filter(digo.NameMatches("Mock*"))
	s.Require().NoError(err)
	ignoring, err := digo.Ignore[mock.Database](s.pipeline)
	s.Require().NoError(err)

	s.Equal(before, candidateNames(s.pipeline))
	s.Len(s.pipeline.IgnoredSurfaces(), 3)
	s.Equal([]string{"MockDB", "MockCache"}, candidateNames(onlyDB))
	s.Len(ignoring.IgnoredSurfaces(), 4)
	s.Len(onlyDB.IgnoredSurfaces(), 3)
}

func (s *PipelineTestSuite) TestBranchesResolveIndependently() {
	left, err := s.pipeline.Filter(digo.NameHasSuffix("Store"))
	s.Require().NoError(err)
	right, err := s.pipeline.Filter(digo.NameHasSuffix("DB"))
	s.Require().NoError(err)

	lb, err := left.Resolve()
	s.Require().NoError(err)
	rb, err := right.Resolve()
	s.Require().NoError(err)

	s.Equal("SessionStore : Cache (Scoped)", lb[len(lb)-1].String())
	s.Equal("MockDB : Database (Transient)", rb[len(rb)-1].String())
}

func (s *PipelineTestSuite) TestNilPredicate() {
	_, err := s.pipeline.Filter(nil)
	var argErr *digo.InvalidArgumentError
	s.True(errors.As(err, &argErr))
	s.Equal("predicate", argErr.Arg)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func TestBeginRegistration(t *testing.T) {
	t.Run("NilRegistry", func(t *testing.T) {
		_, err := digo.BeginRegistration(nil, nil)
		var argErr *digo.InvalidArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, "registry", argErr.Arg)
	})

	t.Run("TypedNilRegistry", func(t *testing.T) {
		var services *digo.Collection
		_, err := digo.BeginRegistration(services, nil)
		var argErr *digo.InvalidArgumentError
		assert.True(t, errors.As(err, &argErr))
	})

	t.Run("DeduplicatesByIdentity", func(t *testing.T) {
		first := digo.CandidateOf[mock.MockDB](digo.Implements[mock.Database]())
		second := digo.CandidateOf[*mock.MockDB](digo.WithLifetime(digo.Singleton))
		p, err := digo.BeginRegistration(digo.NewCollection(), []digo.Candidate{first, second})
		require.NoError(t, err)

		bindings, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "MockDB : Database (Transient)", bindings[len(bindings)-1].String())
	})

	t.Run("EmptyCandidates", func(t *testing.T) {
		p, err := digo.BeginRegistration(digo.NewCollection(), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, p.PassID())

		bindings, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, defaultAnnouncements, digo.Report(bindings))
	})

	t.Run("ZeroPipeline", func(t *testing.T) {
		var p digo.Pipeline
		_, err := p.Resolve()
		var argErr *digo.InvalidArgumentError
		assert.True(t, errors.As(err, &argErr))

		_, err = p.Filter(digo.NameHasSuffix("Service"))
		assert.True(t, errors.As(err, &argErr))
	})
}
