package entities

import "math"

// Player is the per-player row cached by the player registry: identity,
// coin balance, and empire affiliation. Players are created on first
// contact and never deleted.
type Player struct {
	ID      PlayerID `json:"uuid"`
	Name    string   `json:"name"`
	Balance float64  `json:"balance"`

	// EmpireID is nil while the player is unaffiliated. Position is the
	// name of the player's position within that empire; it must be nil
	// whenever EmpireID is nil.
	EmpireID *EmpireID `json:"empire"`
	Position *string   `json:"position"`

	// JumpedIn is the one-shot advancement flag
	JumpedIn  bool    `json:"jumped_in"`
	DiscordID *string `json:"discord_id"`
}

// InEmpire reports whether the player belongs to an empire
func (p *Player) InEmpire() bool {
	return p.EmpireID != nil
}

// MemberOf reports whether the player belongs to the given empire
func (p *Player) MemberOf(id EmpireID) bool {
	return p.EmpireID != nil && *p.EmpireID == id
}

// DisplayBalance rounds the stored balance to one decimal for rendering.
// The stored value keeps full precision.
func (p *Player) DisplayBalance() float64 {
	return math.Round(p.Balance*10) / 10
}

// Clone returns a deep copy so cached rows never escape the registry
func (p *Player) Clone() *Player {
	out := *p
	if p.EmpireID != nil {
		id := *p.EmpireID
		out.EmpireID = &id
	}
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	if p.DiscordID != nil {
		d := *p.DiscordID
		out.DiscordID = &d
	}
	return &out
}
