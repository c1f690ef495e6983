// Package empires provides the persistence adapter for empire rows
package empires

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
)

// GetInput contains parameters for retrieving an empire row
type GetInput struct {
	ID entities.EmpireID
}

// GetOutput contains the retrieved empire row
type GetOutput struct {
	Empire *entities.Empire
}

// PutInput contains the full row to upsert
type PutInput struct {
	Empire *entities.Empire
}

// PutOutput contains the result of an upsert
type PutOutput struct {
	Empire *entities.Empire
}

// PutAllInput contains multiple rows to upsert atomically. Used by
// symmetric operations (alliances, war transitions) so two empires are
// never persisted half-updated.
type PutAllInput struct {
	Empires []*entities.Empire
}

// PutAllOutput contains the result of an atomic multi-row upsert
type PutAllOutput struct {
	Empires []*entities.Empire
}

// DeleteInput contains parameters for deleting an empire row
type DeleteInput struct {
	ID entities.EmpireID

	// Name releases the name index entry alongside the row
	Name string
}

// DeleteOutput contains the result of a delete
type DeleteOutput struct{}

// ListAllOutput contains every stored empire row
type ListAllOutput struct {
	Empires []*entities.Empire
}

// Repository defines the storage operations for empire rows
type Repository interface {
	// Get retrieves an empire row by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put upserts the full empire row and its name index entry
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// PutAll upserts multiple empire rows in one transaction
	PutAll(ctx context.Context, input PutAllInput) (*PutAllOutput, error)

	// Delete removes an empire row and its name index entry
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListAll returns every stored empire row
	ListAll(ctx context.Context) (*ListAllOutput, error)
}
