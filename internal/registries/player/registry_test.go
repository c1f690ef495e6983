package player_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	redisclient "github.com/pixelempires/empire-api/internal/redis"
	"github.com/pixelempires/empire-api/internal/registries/player"
	playermock "github.com/pixelempires/empire-api/internal/registries/player/mock"
	"github.com/pixelempires/empire-api/internal/repositories/players"
	"github.com/pixelempires/empire-api/internal/testutils"
)

type RegistryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      players.Repository
	registry  *player.Registry
	ctx       context.Context
}

func (s *RegistryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client, err := redisclient.NewClient(mr.Addr(), nil)
	s.Require().NoError(err)

	repo, err := players.NewRedis(&players.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	registry, err := player.New(&player.Config{Repo: s.repo})
	s.Require().NoError(err)
	s.registry = registry

	s.ctx = context.Background()
	s.Require().NoError(s.registry.Load(s.ctx))
}

func (s *RegistryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *RegistryTestSuite) createPlayer(name string) *entities.Player {
	out, err := s.registry.Create(s.ctx, player.CreateInput{
		ID:   testutils.NewPlayerID(),
		Name: name,
	})
	s.Require().NoError(err)
	return out.Player
}

func (s *RegistryTestSuite) TestCreateAndGet() {
	created := s.createPlayer("Sucrose")
	s.Equal(0.0, created.Balance)
	s.False(created.InEmpire())

	out, err := s.registry.Get(s.ctx, player.GetInput{ID: created.ID})
	s.Require().NoError(err)
	s.Equal("Sucrose", out.Player.Name)

	// persisted synchronously
	s.True(s.miniRedis.Exists("player:" + created.ID.String()))
}

func (s *RegistryTestSuite) TestCreateDuplicateFails() {
	created := s.createPlayer("Sucrose")

	_, err := s.registry.Create(s.ctx, player.CreateInput{ID: created.ID, Name: "Other"})
	s.Require().Error(err)
	s.True(errors.IsConflict(err))
}

func (s *RegistryTestSuite) TestGetByName() {
	s.createPlayer("Sucrose")
	s.createPlayer("Marcus")

	out, err := s.registry.GetByName(s.ctx, player.GetByNameInput{Name: "Marcus"})
	s.Require().NoError(err)
	s.Equal("Marcus", out.Player.Name)

	_, err = s.registry.GetByName(s.ctx, player.GetByNameInput{Name: "marcus"})
	s.True(errors.IsNotFound(err), "name matching is case-sensitive")
}

func (s *RegistryTestSuite) TestGetByDiscordID() {
	created := s.createPlayer("Sucrose")
	discord := "discord-123"
	_, err := s.registry.SetDiscordID(s.ctx, player.SetDiscordIDInput{ID: created.ID, DiscordID: &discord})
	s.Require().NoError(err)

	out, err := s.registry.GetByDiscordID(s.ctx, player.GetByDiscordIDInput{DiscordID: "discord-123"})
	s.Require().NoError(err)
	s.Equal(created.ID, out.Player.ID)

	_, err = s.registry.GetByDiscordID(s.ctx, player.GetByDiscordIDInput{DiscordID: "discord-999"})
	s.True(errors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestSetBalanceKeepsFullPrecision() {
	created := s.createPlayer("Sucrose")

	out, err := s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: created.ID, Balance: 10.37})
	s.Require().NoError(err)
	s.Equal(10.37, out.Player.Balance, "stored value keeps full precision")
	s.Equal(10.4, out.Player.DisplayBalance(), "display accessor rounds to one decimal")
}

func (s *RegistryTestSuite) TestSetBalanceNegativeRejected() {
	created := s.createPlayer("Sucrose")

	_, err := s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: created.ID, Balance: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidState(err))

	out, err := s.registry.Get(s.ctx, player.GetInput{ID: created.ID})
	s.Require().NoError(err)
	s.Equal(0.0, out.Player.Balance, "balance unchanged after rejected mutation")
}

func (s *RegistryTestSuite) TestGiveAndTakeCoins() {
	created := s.createPlayer("Sucrose")

	_, err := s.registry.GiveCoins(s.ctx, player.GiveCoinsInput{ID: created.ID, Amount: 25})
	s.Require().NoError(err)

	out, err := s.registry.TakeCoins(s.ctx, player.TakeCoinsInput{ID: created.ID, Amount: 10})
	s.Require().NoError(err)
	s.Equal(15.0, out.Player.Balance)

	_, err = s.registry.TakeCoins(s.ctx, player.TakeCoinsInput{ID: created.ID, Amount: 100})
	s.True(errors.IsInvalidState(err))
}

func (s *RegistryTestSuite) TestPayConservesCoins() {
	from := s.createPlayer("Sucrose")
	to := s.createPlayer("Marcus")

	_, err := s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: from.ID, Balance: 30})
	s.Require().NoError(err)
	_, err = s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: to.ID, Balance: 5})
	s.Require().NoError(err)

	out, err := s.registry.Pay(s.ctx, player.PayInput{FromID: from.ID, ToID: to.ID, Amount: 12.5})
	s.Require().NoError(err)
	s.Equal(17.5, out.From.Balance)
	s.Equal(17.5, out.To.Balance)
	s.Equal(35.0, out.From.Balance+out.To.Balance, "total coins unchanged")
}

func (s *RegistryTestSuite) TestPayInsufficientFundsLeavesBalancesUnchanged() {
	from := s.createPlayer("Sucrose")
	to := s.createPlayer("Marcus")

	_, err := s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: from.ID, Balance: 5})
	s.Require().NoError(err)

	_, err = s.registry.Pay(s.ctx, player.PayInput{FromID: from.ID, ToID: to.ID, Amount: 12.5})
	s.Require().Error(err)
	s.True(errors.IsInvalidState(err))

	fromOut, err := s.registry.Get(s.ctx, player.GetInput{ID: from.ID})
	s.Require().NoError(err)
	s.Equal(5.0, fromOut.Player.Balance)

	toOut, err := s.registry.Get(s.ctx, player.GetInput{ID: to.ID})
	s.Require().NoError(err)
	s.Equal(0.0, toOut.Player.Balance)
}

func (s *RegistryTestSuite) TestPaySelfRejected() {
	created := s.createPlayer("Sucrose")

	_, err := s.registry.Pay(s.ctx, player.PayInput{FromID: created.ID, ToID: created.ID, Amount: 1})
	s.True(errors.IsInvalidState(err))
}

func (s *RegistryTestSuite) TestAffiliationLifecycle() {
	created := s.createPlayer("Sucrose")

	_, err := s.registry.SetAffiliation(s.ctx, player.SetAffiliationInput{ID: created.ID, EmpireID: "empire_1"})
	s.Require().NoError(err)

	position := "Consul"
	out, err := s.registry.SetPosition(s.ctx, player.SetPositionInput{ID: created.ID, Position: &position})
	s.Require().NoError(err)
	s.Require().NotNil(out.Player.Position)
	s.Equal("Consul", *out.Player.Position)

	left, err := s.registry.LeaveEmpire(s.ctx, player.LeaveEmpireInput{ID: created.ID})
	s.Require().NoError(err)
	s.Nil(left.Player.EmpireID)
	s.Nil(left.Player.Position, "leaving clears position with affiliation")
}

func (s *RegistryTestSuite) TestSetPositionWithoutEmpireRejected() {
	created := s.createPlayer("Sucrose")

	position := "Consul"
	_, err := s.registry.SetPosition(s.ctx, player.SetPositionInput{ID: created.ID, Position: &position})
	s.Require().Error(err)
	s.True(errors.IsInvalidState(err))
}

func (s *RegistryTestSuite) TestMembers() {
	a := s.createPlayer("Sucrose")
	b := s.createPlayer("Marcus")
	s.createPlayer("Drifter")

	for _, id := range []entities.PlayerID{a.ID, b.ID} {
		_, err := s.registry.SetAffiliation(s.ctx, player.SetAffiliationInput{ID: id, EmpireID: "empire_1"})
		s.Require().NoError(err)
	}

	out, err := s.registry.Members(s.ctx, player.MembersInput{EmpireID: "empire_1"})
	s.Require().NoError(err)
	s.Require().Len(out.Players, 2)
	s.Equal("Marcus", out.Players[0].Name, "members sorted by name")
	s.Equal("Sucrose", out.Players[1].Name)
}

func (s *RegistryTestSuite) TestLoadRestoresCache() {
	created := s.createPlayer("Sucrose")
	_, err := s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: created.ID, Balance: 42})
	s.Require().NoError(err)

	// fresh registry against the same store
	fresh, err := player.New(&player.Config{Repo: s.repo})
	s.Require().NoError(err)
	s.Require().NoError(fresh.Load(s.ctx))

	out, err := fresh.Get(s.ctx, player.GetInput{ID: created.ID})
	s.Require().NoError(err)
	s.Equal(42.0, out.Player.Balance)
}

func (s *RegistryTestSuite) TestPersistenceFailureLeavesCacheUnchanged() {
	created := s.createPlayer("Sucrose")
	s.miniRedis.Close()

	_, err := s.registry.SetBalance(s.ctx, player.SetBalanceInput{ID: created.ID, Balance: 42})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))

	out, err := s.registry.Get(s.ctx, player.GetInput{ID: created.ID})
	s.Require().NoError(err)
	s.Equal(0.0, out.Player.Balance, "cache still reflects the last persisted state")
}

func (s *RegistryTestSuite) TestNotifierFiresAfterSuccessfulMutation() {
	ctrl := gomock.NewController(s.T())
	notifier := playermock.NewMockNotifier(ctrl)

	registry, err := player.New(&player.Config{Repo: s.repo, Notifier: notifier})
	s.Require().NoError(err)
	s.Require().NoError(registry.Load(s.ctx))

	id := testutils.NewPlayerID()
	notifier.EXPECT().PlayerChanged(gomock.Any()).Times(2)

	_, err = registry.Create(s.ctx, player.CreateInput{ID: id, Name: "Sucrose"})
	s.Require().NoError(err)
	_, err = registry.SetBalance(s.ctx, player.SetBalanceInput{ID: id, Balance: 7})
	s.Require().NoError(err)

	// rejected mutation fires nothing
	_, err = registry.SetBalance(s.ctx, player.SetBalanceInput{ID: id, Balance: -1})
	s.Require().Error(err)
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
