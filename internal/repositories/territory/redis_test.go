package territory_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
	"github.com/pixelempires/empire-api/internal/repositories/territory"
	"github.com/pixelempires/empire-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	repo      territory.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.miniRedis = testutils.CreateTestRedisClient(s.T())

	repo, err := territory.NewRedis(&territory.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestPutAndGet() {
	cell := testutils.CreateTestCell(testutils.TestWorld, 12, -4, "empire_1")

	_, err := s.repo.Put(s.ctx, territory.PutInput{Cell: cell})
	s.Require().NoError(err)
	s.True(s.miniRedis.Exists("territory:overworld:12:-4"))

	out, err := s.repo.Get(s.ctx, territory.GetInput{Key: cell.Key()})
	s.Require().NoError(err)
	s.Equal(entities.EmpireID("empire_1"), out.Cell.EmpireID)
	s.Equal(entities.ChunkNone, out.Cell.Type)
}

func (s *RedisRepositoryTestSuite) TestClassificationRoundTrips() {
	cell := testutils.CreateTestCell(testutils.TestWorld, 0, 0, "empire_1")
	cell.Type = entities.ChunkTemple

	_, err := s.repo.Put(s.ctx, territory.PutInput{Cell: cell})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, territory.GetInput{Key: cell.Key()})
	s.Require().NoError(err)
	s.Equal(entities.ChunkTemple, out.Cell.Type)
}

func (s *RedisRepositoryTestSuite) TestGetMissingReturnsNotFound() {
	_, err := s.repo.Get(s.ctx, territory.GetInput{
		Key: entities.CellKey{World: testutils.TestWorld, X: 99, Z: 99},
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	cell := testutils.CreateTestCell(testutils.TestWorld, 1, 1, "empire_1")
	_, err := s.repo.Put(s.ctx, territory.PutInput{Cell: cell})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, territory.DeleteInput{Key: cell.Key()})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, territory.GetInput{Key: cell.Key()})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteMany() {
	var keys []entities.CellKey
	for x := 0; x < 3; x++ {
		cell := testutils.CreateTestCell(testutils.TestWorld, x, 0, "empire_1")
		_, err := s.repo.Put(s.ctx, territory.PutInput{Cell: cell})
		s.Require().NoError(err)
		keys = append(keys, cell.Key())
	}

	out, err := s.repo.DeleteMany(s.ctx, territory.DeleteManyInput{Keys: keys})
	s.Require().NoError(err)
	s.Equal(3, out.Deleted)

	listed, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(listed.Cells)
}

func (s *RedisRepositoryTestSuite) TestDeleteManyEmptyIsNoop() {
	out, err := s.repo.DeleteMany(s.ctx, territory.DeleteManyInput{})
	s.Require().NoError(err)
	s.Zero(out.Deleted)
}

func (s *RedisRepositoryTestSuite) TestListAll() {
	for x := -1; x <= 1; x++ {
		cell := testutils.CreateTestCell(testutils.TestWorld, x, 7, "empire_1")
		_, err := s.repo.Put(s.ctx, territory.PutInput{Cell: cell})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(out.Cells, 3)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
