package empire

import (
	"time"

	"github.com/pixelempires/empire-api/internal/entities"
)

// CreateInput defines the request for founding an empire. The founder
// becomes owner and sole member; the caller is responsible for pairing
// this with the founding territory claim.
type CreateInput struct {
	Name        string
	ColorTag    string
	Description string
	FounderID   entities.PlayerID
}

// CreateOutput defines the response for founding an empire
type CreateOutput struct {
	Empire *entities.Empire
}

// GetInput defines the request for an empire lookup by ID
type GetInput struct {
	ID entities.EmpireID
}

// GetOutput defines the response for an empire lookup
type GetOutput struct {
	Empire *entities.Empire
}

// GetByNameInput defines the request for an exact, case-sensitive
// lookup by name
type GetByNameInput struct {
	Name string
}

// GetByNameOutput defines the response for a lookup by name
type GetByNameOutput struct {
	Empire *entities.Empire
}

// AllNamesOutput contains every empire name, feeding the external
// fuzzy-suggestion collaborator
type AllNamesOutput struct {
	Names []string
}

// DissolveInput defines the request for dissolving an empire: all
// territory released, all memberships cleared, ally and war
// back-references removed
type DissolveInput struct {
	ID entities.EmpireID
}

// DissolveOutput defines the response for a dissolution
type DissolveOutput struct {
	MembersCleared   int
	TerritoryCleared int
}

// SetDescriptionInput defines the request for updating the description
type SetDescriptionInput struct {
	ID          entities.EmpireID
	Description string
}

// SetDescriptionOutput defines the response for a description update
type SetDescriptionOutput struct {
	Empire *entities.Empire
}

// SetColorTagInput defines the request for updating the display color
type SetColorTagInput struct {
	ID       entities.EmpireID
	ColorTag string
}

// SetColorTagOutput defines the response for a color update
type SetColorTagOutput struct {
	Empire *entities.Empire
}

// AddMemberInput defines the request for admitting a player
type AddMemberInput struct {
	ID       entities.EmpireID
	PlayerID entities.PlayerID
}

// AddMemberOutput defines the response for admitting a player
type AddMemberOutput struct {
	Player *entities.Player
}

// RemoveMemberInput defines the request for removing a member. The
// owner cannot be removed without transferring ownership first.
type RemoveMemberInput struct {
	ID       entities.EmpireID
	PlayerID entities.PlayerID
}

// RemoveMemberOutput defines the response for removing a member
type RemoveMemberOutput struct {
	Player *entities.Player
}

// TransferOwnershipInput defines the request for handing the empire to
// another member. Only the current owner may transfer.
type TransferOwnershipInput struct {
	ID         entities.EmpireID
	ActorID    entities.PlayerID
	NewOwnerID entities.PlayerID
}

// TransferOwnershipOutput defines the response for an ownership transfer
type TransferOwnershipOutput struct {
	Empire *entities.Empire
}

// HasPermissionInput defines the request for a permission check
type HasPermissionInput struct {
	ID         entities.EmpireID
	PlayerID   entities.PlayerID
	Permission entities.Permission
}

// HasPermissionOutput defines the response for a permission check
type HasPermissionOutput struct {
	Allowed bool
}

// ClaimChunkInput defines the request for claiming territory on behalf
// of the empire; the actor needs the claim-territory permission
type ClaimChunkInput struct {
	ID      entities.EmpireID
	ActorID entities.PlayerID
	World   string
	X       int
	Z       int
}

// ClaimChunkOutput defines the response for a territory claim
type ClaimChunkOutput struct {
	Cell *entities.TerritoryCell
}

// ReserveInput defines the request for reading the treasury balance
type ReserveInput struct {
	ID entities.EmpireID
}

// ReserveOutput defines the response for reading the treasury balance
type ReserveOutput struct {
	Reserve float64
}

// AdjustReserveInput defines the request for crediting or debiting the
// treasury. The reserve may go negative under debt.
type AdjustReserveInput struct {
	ID    entities.EmpireID
	Delta float64
}

// AdjustReserveOutput defines the response for a treasury adjustment
type AdjustReserveOutput struct {
	Reserve float64
}

// RecordDebtInput defines the request for accumulating debt against a
// player. A negative amount records repayment; the ledger entry is
// removed once the owed amount reaches zero.
type RecordDebtInput struct {
	ID       entities.EmpireID
	PlayerID entities.PlayerID
	Amount   float64
}

// RecordDebtOutput defines the response for a debt adjustment
type RecordDebtOutput struct {
	Owed float64
}

// ClearDebtInput defines the request for forgiving a player's debt
type ClearDebtInput struct {
	ID       entities.EmpireID
	PlayerID entities.PlayerID
}

// ClearDebtOutput defines the response for forgiving a debt
type ClearDebtOutput struct{}

// DebtsInput defines the request for the debt ledger snapshot
type DebtsInput struct {
	ID entities.EmpireID
}

// DebtsOutput defines the response for the debt ledger snapshot
type DebtsOutput struct {
	Debts map[entities.PlayerID]float64
}

// CreatePositionInput defines the request for creating a position; the
// actor needs the manage-positions permission
type CreatePositionInput struct {
	ID          entities.EmpireID
	ActorID     entities.PlayerID
	Name        string
	Rank        int
	Permissions []entities.Permission
}

// CreatePositionOutput defines the response for creating a position
type CreatePositionOutput struct {
	Position *entities.Position
}

// SetPositionRankInput defines the request for changing a position's rank
type SetPositionRankInput struct {
	ID      entities.EmpireID
	ActorID entities.PlayerID
	Name    string
	Rank    int
}

// SetPositionRankOutput defines the response for a rank change
type SetPositionRankOutput struct {
	Position *entities.Position
}

// GrantPermissionInput defines the request for adding a permission to
// a position
type GrantPermissionInput struct {
	ID         entities.EmpireID
	ActorID    entities.PlayerID
	Position   string
	Permission entities.Permission
}

// GrantPermissionOutput defines the response for granting a permission
type GrantPermissionOutput struct {
	Position *entities.Position
}

// RevokePermissionInput defines the request for removing a permission
// from a position
type RevokePermissionInput struct {
	ID         entities.EmpireID
	ActorID    entities.PlayerID
	Position   string
	Permission entities.Permission
}

// RevokePermissionOutput defines the response for revoking a permission
type RevokePermissionOutput struct {
	Position *entities.Position
}

// DeletePositionInput defines the request for deleting a position. A
// position still held by members cannot be deleted.
type DeletePositionInput struct {
	ID      entities.EmpireID
	ActorID entities.PlayerID
	Name    string
}

// DeletePositionOutput defines the response for deleting a position
type DeletePositionOutput struct{}

// AssignPositionInput defines the request for assigning a member to a
// position, or clearing the assignment when Position is nil
type AssignPositionInput struct {
	ID       entities.EmpireID
	ActorID  entities.PlayerID
	PlayerID entities.PlayerID
	Position *string
}

// AssignPositionOutput defines the response for a position assignment
type AssignPositionOutput struct {
	Player *entities.Player
}

// PositionsInput defines the request for listing positions by seniority
type PositionsInput struct {
	ID entities.EmpireID
}

// PositionsOutput defines the response for listing positions, ordered
// by descending rank with name tiebreak
type PositionsOutput struct {
	Positions []*entities.Position
}

// AddLawInput defines the request for recording a law; the actor needs
// the manage-laws permission and becomes the law's author
type AddLawInput struct {
	ID      entities.EmpireID
	ActorID entities.PlayerID
	Name    string
	Body    string
}

// AddLawOutput defines the response for recording a law
type AddLawOutput struct {
	Law *entities.Law
}

// RemoveLawInput defines the request for repealing a law
type RemoveLawInput struct {
	ID      entities.EmpireID
	ActorID entities.PlayerID
	Name    string
}

// RemoveLawOutput defines the response for repealing a law
type RemoveLawOutput struct{}

// LawsInput defines the request for the law ledger snapshot
type LawsInput struct {
	ID entities.EmpireID
}

// LawsOutput defines the response for the law ledger snapshot
type LawsOutput struct {
	Laws []*entities.Law
}

// AddAllyInput defines the request for forming an alliance. Applied to
// both empires or neither.
type AddAllyInput struct {
	ID     entities.EmpireID
	AllyID entities.EmpireID
}

// AddAllyOutput defines the response for forming an alliance
type AddAllyOutput struct{}

// RemoveAllyInput defines the request for breaking an alliance,
// removed from both sides or neither
type RemoveAllyInput struct {
	ID     entities.EmpireID
	AllyID entities.EmpireID
}

// RemoveAllyOutput defines the response for breaking an alliance
type RemoveAllyOutput struct{}

// DeclareWarInput defines the request for declaring war; the actor
// needs the declare-war permission in the declaring empire
type DeclareWarInput struct {
	ID       entities.EmpireID
	ActorID  entities.PlayerID
	TargetID entities.EmpireID
}

// DeclareWarOutput defines the response for a declaration: both sides
// enter the pending phase pointing at each other
type DeclareWarOutput struct {
	War *entities.WarState
}

// EndWarInput defines the request for resolving a war early, returning
// both sides to peace
type EndWarInput struct {
	ID entities.EmpireID
}

// EndWarOutput defines the response for an early resolution
type EndWarOutput struct{}

// TickOutput reports how many war transitions a tick applied
type TickOutput struct {
	Activated int
	Resolved  int
}

// WarStatusInput defines the request for a war snapshot
type WarStatusInput struct {
	ID entities.EmpireID
}

// WarStatusOutput defines the response for a war snapshot. Phase is
// nil at peace; the countdowns are recomputed from the stored
// timestamps at read time.
type WarStatusOutput struct {
	Phase         *entities.WarPhase
	OpponentID    entities.EmpireID
	TimeLeftToWar time.Duration
	TimeLeftInWar time.Duration
}
