package entities

import (
	"sort"
	"strings"
	"time"
)

// Permission is a capability a position can grant within an empire
type Permission string

// The fixed permission set. The empire owner holds all of these
// unconditionally regardless of assigned position.
const (
	PermissionClaimTerritory  Permission = "CLAIM_TERRITORY"
	PermissionDeclareWar      Permission = "DECLARE_WAR"
	PermissionManagePositions Permission = "MANAGE_POSITIONS"
	PermissionManageEconomy   Permission = "MANAGE_ECONOMY"
	PermissionManageLaws      Permission = "MANAGE_LAWS"
)

// AllPermissions lists every grantable permission
func AllPermissions() []Permission {
	return []Permission{
		PermissionClaimTerritory,
		PermissionDeclareWar,
		PermissionManagePositions,
		PermissionManageEconomy,
		PermissionManageLaws,
	}
}

// Position is a named rank within an empire. Higher rank means more
// senior; the name is unique within the empire.
type Position struct {
	Name        string       `json:"name"`
	Rank        int          `json:"rank"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission reports whether the position grants the permission
func (p *Position) HasPermission(perm Permission) bool {
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own permission slice
func (p *Position) Clone() *Position {
	out := *p
	out.Permissions = append([]Permission(nil), p.Permissions...)
	return &out
}

// ComparePositions orders positions by descending rank so higher
// authority sorts first, ties broken by name for determinism. Returns
// a negative value when a sorts before b.
func ComparePositions(a, b *Position) int {
	if a.Rank != b.Rank {
		return b.Rank - a.Rank
	}
	return strings.Compare(a.Name, b.Name)
}

// Law is a named ledger entry recorded by a permissioned member
type Law struct {
	Name     string   `json:"name"`
	AuthorID PlayerID `json:"author"`
	Body     string   `json:"body"`
}

// Empire is the aggregate cached by the empire registry. Members are not
// stored here; they are derived from player affiliation via the player
// registry.
type Empire struct {
	ID          EmpireID `json:"id"`
	Name        string   `json:"name"`
	ColorTag    string   `json:"color"`
	Description string   `json:"description"`
	Reserve     float64  `json:"reserve"`
	OwnerID     PlayerID `json:"owner"`

	Positions map[string]*Position `json:"positions"`
	Laws      map[string]*Law      `json:"laws"`

	// Debts maps member ID to amount owed to the reserve. An entry
	// exists iff its amount is strictly positive.
	Debts map[PlayerID]float64 `json:"debts"`

	// Allies is symmetric: every entry's empire lists this one back
	Allies []EmpireID `json:"allies"`

	// War is nil while at peace
	War *WarState `json:"war"`
}

// IsOwner reports whether the player owns this empire
func (e *Empire) IsOwner(id PlayerID) bool {
	return e.OwnerID == id
}

// IsAlliedWith reports whether the given empire is in the allied set
func (e *Empire) IsAlliedWith(id EmpireID) bool {
	for _, ally := range e.Allies {
		if ally == id {
			return true
		}
	}
	return false
}

// AtWar reports whether a war relationship (pending or active) exists
func (e *Empire) AtWar() bool {
	return e.War != nil
}

// Position looks up a position by name
func (e *Empire) Position(name string) *Position {
	return e.Positions[name]
}

// SortedPositions returns positions ordered by seniority (rank
// descending, name ascending on ties) for top-to-bottom display
func (e *Empire) SortedPositions() []*Position {
	out := make([]*Position, 0, len(e.Positions))
	for _, pos := range e.Positions {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		return ComparePositions(out[i], out[j]) < 0
	})
	return out
}

// Clone returns a deep copy so cached rows never escape the registry
func (e *Empire) Clone() *Empire {
	out := *e
	out.Positions = make(map[string]*Position, len(e.Positions))
	for name, pos := range e.Positions {
		out.Positions[name] = pos.Clone()
	}
	out.Laws = make(map[string]*Law, len(e.Laws))
	for name, law := range e.Laws {
		cp := *law
		out.Laws[name] = &cp
	}
	out.Debts = make(map[PlayerID]float64, len(e.Debts))
	for id, amount := range e.Debts {
		out.Debts[id] = amount
	}
	out.Allies = append([]EmpireID(nil), e.Allies...)
	if e.War != nil {
		war := *e.War
		out.War = &war
	}
	return &out
}

// WarPhase is one of the two timed phases of a war relationship
type WarPhase string

// War phases. Peace is represented by the absence of a WarState.
const (
	WarPending WarPhase = "PENDING"
	WarActive  WarPhase = "ACTIVE"
)

// WarState records a war relationship against a single opponent. The
// countdowns are derived from the stored timestamps on read rather than
// decremented by ticks, so delayed or skipped ticks never skew them.
type WarState struct {
	OpponentID  EmpireID  `json:"opponent"`
	Phase       WarPhase  `json:"phase"`
	ActivatesAt time.Time `json:"activates_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TimeLeftToWar returns the remaining pending countdown, zero once the
// war should be active or the state is not pending
func (w *WarState) TimeLeftToWar(now time.Time) time.Duration {
	if w.Phase != WarPending {
		return 0
	}
	if left := w.ActivatesAt.Sub(now); left > 0 {
		return left
	}
	return 0
}

// TimeLeftInWar returns the remaining active-war countdown, zero once
// the war should have resolved or the state is not active
func (w *WarState) TimeLeftInWar(now time.Time) time.Duration {
	if w.Phase != WarActive {
		return 0
	}
	if left := w.ExpiresAt.Sub(now); left > 0 {
		return left
	}
	return 0
}
