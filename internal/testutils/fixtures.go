package testutils

import (
	"github.com/google/uuid"

	"github.com/pixelempires/empire-api/internal/entities"
)

// Default fixture values
const (
	TestWorld      = "overworld"
	TestEmpireName = "Rome"
)

// NewPlayerID returns a fresh random player ID
func NewPlayerID() entities.PlayerID {
	return entities.PlayerID(uuid.New())
}

// CreateTestPlayer creates an unaffiliated player with a zero balance
func CreateTestPlayer(name string) *entities.Player {
	return &entities.Player{
		ID:   NewPlayerID(),
		Name: name,
	}
}

// CreateTestEmpire creates an empire owned by the given player with
// empty positions, laws, debts, and allies
func CreateTestEmpire(id entities.EmpireID, name string, owner entities.PlayerID) *entities.Empire {
	return &entities.Empire{
		ID:        id,
		Name:      name,
		ColorTag:  "gold",
		OwnerID:   owner,
		Positions: make(map[string]*entities.Position),
		Laws:      make(map[string]*entities.Law),
		Debts:     make(map[entities.PlayerID]float64),
	}
}

// CreateTestCell creates a plain claimed cell
func CreateTestCell(world string, x, z int, empire entities.EmpireID) *entities.TerritoryCell {
	return &entities.TerritoryCell{
		World:    world,
		X:        x,
		Z:        z,
		EmpireID: empire,
		Type:     entities.ChunkNone,
	}
}
