package empires_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
	"github.com/pixelempires/empire-api/internal/repositories/empires"
	"github.com/pixelempires/empire-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	repo      empires.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client, err := redisclient.NewClient(mr.Addr(), nil)
	s.Require().NoError(err)
	s.client = client

	repo, err := empires.NewRedis(&empires.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *RedisRepositoryTestSuite) TestPutAndGet() {
	owner := testutils.NewPlayerID()
	empire := testutils.CreateTestEmpire("empire_1", "Rome", owner)
	empire.Reserve = 250.5
	empire.Positions["Consul"] = &entities.Position{
		Name:        "Consul",
		Rank:        9,
		Permissions: []entities.Permission{entities.PermissionDeclareWar},
	}
	empire.Debts[owner] = 12.5
	empire.Allies = []entities.EmpireID{"empire_2"}

	_, err := s.repo.Put(s.ctx, empires.PutInput{Empire: empire})
	s.Require().NoError(err)
	s.True(s.miniRedis.Exists("empire:empire_1"))
	s.True(s.miniRedis.Exists("empire:name:Rome"), "name index row written in same transaction")

	out, err := s.repo.Get(s.ctx, empires.GetInput{ID: "empire_1"})
	s.Require().NoError(err)
	s.Equal("Rome", out.Empire.Name)
	s.Equal(250.5, out.Empire.Reserve)
	s.Equal(owner, out.Empire.OwnerID)
	s.Require().Contains(out.Empire.Positions, "Consul")
	s.Equal(9, out.Empire.Positions["Consul"].Rank)
	s.Equal(12.5, out.Empire.Debts[owner])
	s.Equal([]entities.EmpireID{"empire_2"}, out.Empire.Allies)
	s.Nil(out.Empire.War)
}

func (s *RedisRepositoryTestSuite) TestWarStateRoundTrips() {
	empire := testutils.CreateTestEmpire("empire_1", "Rome", testutils.NewPlayerID())
	empire.War = &entities.WarState{
		OpponentID: "empire_2",
		Phase:      entities.WarPending,
	}

	_, err := s.repo.Put(s.ctx, empires.PutInput{Empire: empire})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, empires.GetInput{ID: "empire_1"})
	s.Require().NoError(err)
	s.Require().NotNil(out.Empire.War)
	s.Equal(entities.EmpireID("empire_2"), out.Empire.War.OpponentID)
	s.Equal(entities.WarPending, out.Empire.War.Phase)
}

func (s *RedisRepositoryTestSuite) TestPutAllWritesBothRows() {
	a := testutils.CreateTestEmpire("empire_1", "Rome", testutils.NewPlayerID())
	b := testutils.CreateTestEmpire("empire_2", "Carthage", testutils.NewPlayerID())
	a.Allies = []entities.EmpireID{b.ID}
	b.Allies = []entities.EmpireID{a.ID}

	_, err := s.repo.PutAll(s.ctx, empires.PutAllInput{Empires: []*entities.Empire{a, b}})
	s.Require().NoError(err)

	outA, err := s.repo.Get(s.ctx, empires.GetInput{ID: a.ID})
	s.Require().NoError(err)
	s.Equal([]entities.EmpireID{b.ID}, outA.Empire.Allies)

	outB, err := s.repo.Get(s.ctx, empires.GetInput{ID: b.ID})
	s.Require().NoError(err)
	s.Equal([]entities.EmpireID{a.ID}, outB.Empire.Allies)
}

func (s *RedisRepositoryTestSuite) TestDeleteRemovesRowAndNameIndex() {
	empire := testutils.CreateTestEmpire("empire_1", "Rome", testutils.NewPlayerID())
	_, err := s.repo.Put(s.ctx, empires.PutInput{Empire: empire})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, empires.DeleteInput{ID: empire.ID, Name: empire.Name})
	s.Require().NoError(err)
	s.False(s.miniRedis.Exists("empire:empire_1"))
	s.False(s.miniRedis.Exists("empire:name:Rome"))

	_, err = s.repo.Get(s.ctx, empires.GetInput{ID: empire.ID})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListAllSkipsNameIndexRows() {
	for _, name := range []string{"Rome", "Carthage"} {
		empire := testutils.CreateTestEmpire(entities.EmpireID("empire_"+name), name, testutils.NewPlayerID())
		_, err := s.repo.Put(s.ctx, empires.PutInput{Empire: empire})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(out.Empires, 2)
}

func (s *RedisRepositoryTestSuite) TestGetMissingReturnsNotFound() {
	_, err := s.repo.Get(s.ctx, empires.GetInput{ID: "empire_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestPutAllEmptyRejected() {
	_, err := s.repo.PutAll(s.ctx, empires.PutAllInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
