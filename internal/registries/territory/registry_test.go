package territory_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
	"github.com/pixelempires/empire-api/internal/registries/territory"
	territorymock "github.com/pixelempires/empire-api/internal/registries/territory/mock"
	territoryrepo "github.com/pixelempires/empire-api/internal/repositories/territory"
	"github.com/pixelempires/empire-api/internal/testutils"
)

type RegistryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      territoryrepo.Repository
	registry  *territory.Registry
	ctx       context.Context
}

func (s *RegistryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client, err := redisclient.NewClient(mr.Addr(), nil)
	s.Require().NoError(err)

	repo, err := territoryrepo.NewRedis(&territoryrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	registry, err := territory.New(&territory.Config{Repo: s.repo})
	s.Require().NoError(err)
	s.registry = registry

	s.ctx = context.Background()
	s.Require().NoError(s.registry.Load(s.ctx))
}

func (s *RegistryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *RegistryTestSuite) TestClaimAndGet() {
	out, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 3, Z: -7, EmpireID: "empire_1",
	})
	s.Require().NoError(err)
	s.Equal(entities.EmpireID("empire_1"), out.Cell.EmpireID)
	s.Equal(entities.ChunkNone, out.Cell.Type)

	got, err := s.registry.GetCell(s.ctx, territory.GetCellInput{World: testutils.TestWorld, X: 3, Z: -7})
	s.Require().NoError(err)
	s.Equal(entities.EmpireID("empire_1"), got.Cell.EmpireID)

	// persisted synchronously
	s.True(s.miniRedis.Exists("territory:overworld:3:-7"))
}

func (s *RegistryTestSuite) TestClaimSameEmpireIdempotent() {
	input := territory.ClaimInput{World: testutils.TestWorld, X: 0, Z: 0, EmpireID: "empire_1"}

	_, err := s.registry.Claim(s.ctx, input)
	s.Require().NoError(err)

	out, err := s.registry.Claim(s.ctx, input)
	s.Require().NoError(err, "claiming your own cell again is not an error")
	s.Equal(entities.EmpireID("empire_1"), out.Cell.EmpireID)
}

func (s *RegistryTestSuite) TestClaimOwnedCellConflicts() {
	_, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 0, Z: 0, EmpireID: "empire_1",
	})
	s.Require().NoError(err)

	_, err = s.registry.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 0, Z: 0, EmpireID: "empire_2",
	})
	s.Require().Error(err)
	s.True(errors.IsConflict(err))

	out, err := s.registry.GetCell(s.ctx, territory.GetCellInput{World: testutils.TestWorld, X: 0, Z: 0})
	s.Require().NoError(err)
	s.Equal(entities.EmpireID("empire_1"), out.Cell.EmpireID, "ownership unchanged")
}

func (s *RegistryTestSuite) TestGetUnclaimedReturnsNotFound() {
	_, err := s.registry.GetCell(s.ctx, territory.GetCellInput{World: testutils.TestWorld, X: 9, Z: 9})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestRelease() {
	_, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 1, Z: 1, EmpireID: "empire_1",
	})
	s.Require().NoError(err)

	_, err = s.registry.Release(s.ctx, territory.ReleaseInput{World: testutils.TestWorld, X: 1, Z: 1})
	s.Require().NoError(err)

	_, err = s.registry.GetCell(s.ctx, territory.GetCellInput{World: testutils.TestWorld, X: 1, Z: 1})
	s.True(errors.IsNotFound(err))
	s.False(s.miniRedis.Exists("territory:overworld:1:1"))
}

func (s *RegistryTestSuite) TestReleaseUnclaimedRejected() {
	_, err := s.registry.Release(s.ctx, territory.ReleaseInput{World: testutils.TestWorld, X: 1, Z: 1})
	s.True(errors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestClassify() {
	_, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 2, Z: 2, EmpireID: "empire_1",
	})
	s.Require().NoError(err)

	out, err := s.registry.Classify(s.ctx, territory.ClassifyInput{
		World: testutils.TestWorld, X: 2, Z: 2, Type: entities.ChunkTemple,
	})
	s.Require().NoError(err)
	s.Equal(entities.ChunkTemple, out.Cell.Type)
	s.Equal(entities.EmpireID("empire_1"), out.Cell.EmpireID, "classification does not change ownership")
}

func (s *RegistryTestSuite) TestClassifyUnknownTypeRejected() {
	_, err := s.registry.Classify(s.ctx, territory.ClassifyInput{
		World: testutils.TestWorld, X: 2, Z: 2, Type: "VOLCANO",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestCellsOfAndReleaseAll() {
	for x := 0; x < 3; x++ {
		_, err := s.registry.Claim(s.ctx, territory.ClaimInput{
			World: testutils.TestWorld, X: x, Z: 5, EmpireID: "empire_1",
		})
		s.Require().NoError(err)
	}
	_, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 9, Z: 9, EmpireID: "empire_2",
	})
	s.Require().NoError(err)

	owned, err := s.registry.CellsOf(s.ctx, territory.CellsOfInput{EmpireID: "empire_1"})
	s.Require().NoError(err)
	s.Len(owned.Cells, 3)

	released, err := s.registry.ReleaseAll(s.ctx, territory.ReleaseAllInput{EmpireID: "empire_1"})
	s.Require().NoError(err)
	s.Equal(3, released.Released)

	owned, err = s.registry.CellsOf(s.ctx, territory.CellsOfInput{EmpireID: "empire_1"})
	s.Require().NoError(err)
	s.Empty(owned.Cells)

	other, err := s.registry.GetCell(s.ctx, territory.GetCellInput{World: testutils.TestWorld, X: 9, Z: 9})
	s.Require().NoError(err)
	s.Equal(entities.EmpireID("empire_2"), other.Cell.EmpireID, "other empires untouched")
}

func (s *RegistryTestSuite) TestWorldsAreIndependent() {
	_, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: "overworld", X: 0, Z: 0, EmpireID: "empire_1",
	})
	s.Require().NoError(err)

	out, err := s.registry.Claim(s.ctx, territory.ClaimInput{
		World: "nether", X: 0, Z: 0, EmpireID: "empire_2",
	})
	s.Require().NoError(err, "same coordinates in another world are a different cell")
	s.Equal(entities.EmpireID("empire_2"), out.Cell.EmpireID)
}

func (s *RegistryTestSuite) TestNotifierFiresOnClaimAndRelease() {
	ctrl := gomock.NewController(s.T())
	notifier := territorymock.NewMockNotifier(ctrl)

	observed, err := territory.New(&territory.Config{Repo: s.repo, Notifier: notifier})
	s.Require().NoError(err)
	s.Require().NoError(observed.Load(s.ctx))

	notifier.EXPECT().CellChanged(gomock.Any()).Times(1)
	_, err = observed.Claim(s.ctx, territory.ClaimInput{
		World: testutils.TestWorld, X: 9, Z: 9, EmpireID: "empire_1",
	})
	s.Require().NoError(err)

	key := entities.CellKey{World: testutils.TestWorld, X: 9, Z: 9}
	notifier.EXPECT().CellReleased(key).Times(1)
	_, err = observed.Release(s.ctx, territory.ReleaseInput{World: testutils.TestWorld, X: 9, Z: 9})
	s.Require().NoError(err)
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
