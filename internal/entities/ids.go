package entities

import "github.com/google/uuid"

// PlayerID is the stable identity of a player, assigned by the platform
// and never reused. Wrapping uuid.UUID keeps player and empire identifiers
// from being mixed up at compile time.
type PlayerID uuid.UUID

// ParsePlayerID parses the canonical UUID string form of a player ID
func ParsePlayerID(s string) (PlayerID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PlayerID{}, err
	}
	return PlayerID(id), nil
}

// String returns the canonical UUID string form
func (id PlayerID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the ID is the zero UUID
func (id PlayerID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so the ID can be used as a
// JSON map key in debt ledgers
func (id PlayerID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *PlayerID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// EmpireID identifies an empire. Generated at creation time, opaque to
// callers; cross-references between entities always store the ID and
// resolve through the owning registry, never a live pointer.
type EmpireID string

// String returns the raw ID value
func (id EmpireID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset
func (id EmpireID) IsZero() bool {
	return id == ""
}
