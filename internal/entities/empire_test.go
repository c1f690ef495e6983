package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pixelempires/empire-api/internal/entities"
)

func TestComparePositions(t *testing.T) {
	king := &entities.Position{Name: "King", Rank: 10}
	duke := &entities.Position{Name: "Duke", Rank: 5}
	earl := &entities.Position{Name: "Earl", Rank: 5}

	assert.Negative(t, entities.ComparePositions(king, duke), "higher rank sorts first")
	assert.Positive(t, entities.ComparePositions(duke, king))
	assert.Negative(t, entities.ComparePositions(duke, earl), "ties broken by name")
	assert.Positive(t, entities.ComparePositions(earl, duke))
}

func TestSortedPositions(t *testing.T) {
	e := &entities.Empire{
		Positions: map[string]*entities.Position{
			"Earl": {Name: "Earl", Rank: 5},
			"King": {Name: "King", Rank: 10},
			"Duke": {Name: "Duke", Rank: 5},
			"Serf": {Name: "Serf", Rank: 1},
		},
	}

	var names []string
	for _, pos := range e.SortedPositions() {
		names = append(names, pos.Name)
	}
	assert.Equal(t, []string{"King", "Duke", "Earl", "Serf"}, names)

	// stable across repeated calls
	var again []string
	for _, pos := range e.SortedPositions() {
		again = append(again, pos.Name)
	}
	assert.Equal(t, names, again)
}

func TestPositionHasPermission(t *testing.T) {
	pos := &entities.Position{
		Name:        "General",
		Rank:        3,
		Permissions: []entities.Permission{entities.PermissionDeclareWar},
	}

	assert.True(t, pos.HasPermission(entities.PermissionDeclareWar))
	assert.False(t, pos.HasPermission(entities.PermissionManageLaws))
}

func TestWarStateCountdowns(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	war := &entities.WarState{
		OpponentID:  "empire_2",
		Phase:       entities.WarPending,
		ActivatesAt: start.Add(5 * time.Minute),
		ExpiresAt:   start.Add(35 * time.Minute),
	}

	assert.Equal(t, 5*time.Minute, war.TimeLeftToWar(start))
	assert.Equal(t, 2*time.Minute, war.TimeLeftToWar(start.Add(3*time.Minute)))
	assert.Zero(t, war.TimeLeftToWar(start.Add(10*time.Minute)), "clamped at zero once due")
	assert.Zero(t, war.TimeLeftInWar(start), "not meaningful while pending")

	war.Phase = entities.WarActive
	assert.Zero(t, war.TimeLeftToWar(start.Add(6*time.Minute)))
	assert.Equal(t, 29*time.Minute, war.TimeLeftInWar(start.Add(6*time.Minute)))
	assert.Zero(t, war.TimeLeftInWar(start.Add(time.Hour)))
}

func TestDisplayBalanceRounding(t *testing.T) {
	p := &entities.Player{Balance: 10.37}
	assert.Equal(t, 10.37, p.Balance, "stored value keeps full precision")
	assert.Equal(t, 10.4, p.DisplayBalance())
}

func TestEmpireClone(t *testing.T) {
	empireID := entities.EmpireID("empire_1")
	owner, err := entities.ParsePlayerID("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	assert.NoError(t, err)

	e := &entities.Empire{
		ID:      empireID,
		Name:    "Rome",
		OwnerID: owner,
		Positions: map[string]*entities.Position{
			"Consul": {Name: "Consul", Rank: 9, Permissions: []entities.Permission{entities.PermissionDeclareWar}},
		},
		Laws:   map[string]*entities.Law{"Twelve Tables": {Name: "Twelve Tables", AuthorID: owner}},
		Debts:  map[entities.PlayerID]float64{owner: 12.5},
		Allies: []entities.EmpireID{"empire_2"},
		War:    &entities.WarState{OpponentID: "empire_3", Phase: entities.WarPending},
	}

	cp := e.Clone()
	cp.Positions["Consul"].Rank = 1
	cp.Debts[owner] = 99
	cp.Allies[0] = "empire_9"
	cp.War.Phase = entities.WarActive

	assert.Equal(t, 9, e.Positions["Consul"].Rank)
	assert.Equal(t, 12.5, e.Debts[owner])
	assert.Equal(t, entities.EmpireID("empire_2"), e.Allies[0])
	assert.Equal(t, entities.WarPending, e.War.Phase)
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "10.4 coins", entities.FormatCoins(10.37))
	assert.Equal(t, "0.0 coins", entities.FormatCoins(0))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "5:00", entities.FormatCountdown(5*time.Minute))
	assert.Equal(t, "0:09", entities.FormatCountdown(9*time.Second))
	assert.Equal(t, "0:00", entities.FormatCountdown(-time.Second))
}
