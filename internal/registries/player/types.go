package player

import (
	"github.com/pixelempires/empire-api/internal/entities"
)

// CreateInput defines the request for creating a player on first contact
type CreateInput struct {
	ID   entities.PlayerID
	Name string
}

// CreateOutput defines the response for creating a player
type CreateOutput struct {
	Player *entities.Player
}

// GetInput defines the request for a player lookup by ID
type GetInput struct {
	ID entities.PlayerID
}

// GetOutput defines the response for a player lookup
type GetOutput struct {
	Player *entities.Player
}

// GetByNameInput defines the request for a lookup by display name
type GetByNameInput struct {
	Name string
}

// GetByNameOutput defines the response for a lookup by display name
type GetByNameOutput struct {
	Player *entities.Player
}

// GetByDiscordIDInput defines the request for a lookup by linked
// external account
type GetByDiscordIDInput struct {
	DiscordID string
}

// GetByDiscordIDOutput defines the response for a lookup by linked
// external account
type GetByDiscordIDOutput struct {
	Player *entities.Player
}

// MembersInput defines the request for listing an empire's members
type MembersInput struct {
	EmpireID entities.EmpireID
}

// MembersOutput defines the response for listing an empire's members,
// sorted by name
type MembersOutput struct {
	Players []*entities.Player
}

// SetNameInput defines the request for renaming a player
type SetNameInput struct {
	ID   entities.PlayerID
	Name string
}

// SetNameOutput defines the response for renaming a player
type SetNameOutput struct {
	Player *entities.Player
}

// SetBalanceInput defines the request for overwriting a balance
type SetBalanceInput struct {
	ID      entities.PlayerID
	Balance float64
}

// SetBalanceOutput defines the response for overwriting a balance
type SetBalanceOutput struct {
	Player *entities.Player
}

// GiveCoinsInput defines the request for crediting a balance
type GiveCoinsInput struct {
	ID     entities.PlayerID
	Amount float64
}

// GiveCoinsOutput defines the response for crediting a balance
type GiveCoinsOutput struct {
	Player *entities.Player
}

// TakeCoinsInput defines the request for debiting a balance
type TakeCoinsInput struct {
	ID     entities.PlayerID
	Amount float64
}

// TakeCoinsOutput defines the response for debiting a balance
type TakeCoinsOutput struct {
	Player *entities.Player
}

// PayInput defines the request for transferring coins between players
type PayInput struct {
	FromID entities.PlayerID
	ToID   entities.PlayerID
	Amount float64
}

// PayOutput defines the response for a transfer
type PayOutput struct {
	From *entities.Player
	To   *entities.Player
}

// SetAffiliationInput defines the request for moving a player into an
// empire. Joining clears any previous position.
type SetAffiliationInput struct {
	ID       entities.PlayerID
	EmpireID entities.EmpireID
}

// SetAffiliationOutput defines the response for an affiliation change
type SetAffiliationOutput struct {
	Player *entities.Player
}

// LeaveEmpireInput defines the request for clearing a player's
// affiliation and position together
type LeaveEmpireInput struct {
	ID entities.PlayerID
}

// LeaveEmpireOutput defines the response for leaving an empire
type LeaveEmpireOutput struct {
	Player *entities.Player
}

// SetPositionInput defines the request for assigning a position name.
// Position is nil to unassign.
type SetPositionInput struct {
	ID       entities.PlayerID
	Position *string
}

// SetPositionOutput defines the response for a position change
type SetPositionOutput struct {
	Player *entities.Player
}

// SetJumpedInInput defines the request for flipping the one-shot
// advancement flag
type SetJumpedInInput struct {
	ID       entities.PlayerID
	JumpedIn bool
}

// SetJumpedInOutput defines the response for the advancement flag
type SetJumpedInOutput struct {
	Player *entities.Player
}

// SetDiscordIDInput defines the request for linking an external
// account. DiscordID is nil to unlink.
type SetDiscordIDInput struct {
	ID        entities.PlayerID
	DiscordID *string
}

// SetDiscordIDOutput defines the response for linking an external account
type SetDiscordIDOutput struct {
	Player *entities.Player
}
