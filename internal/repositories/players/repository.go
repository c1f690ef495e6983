// Package players provides the persistence adapter for player rows
package players

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
)

// GetInput contains parameters for retrieving a player row
type GetInput struct {
	ID entities.PlayerID
}

// GetOutput contains the retrieved player row
type GetOutput struct {
	Player *entities.Player
}

// PutInput contains the full row to upsert
type PutInput struct {
	Player *entities.Player
}

// PutOutput contains the result of an upsert
type PutOutput struct {
	Player *entities.Player
}

// PutAllInput contains multiple rows to upsert atomically. Used by
// payments so coins are never created or destroyed by a partial write.
type PutAllInput struct {
	Players []*entities.Player
}

// PutAllOutput contains the result of an atomic multi-row upsert
type PutAllOutput struct {
	Players []*entities.Player
}

// ListAllOutput contains every stored player row, used to fill the
// registry cache at process start
type ListAllOutput struct {
	Players []*entities.Player
}

// Repository defines the storage operations for player rows. Every
// registry mutation persists the full row through Put before the cache
// is updated; players are never deleted.
type Repository interface {
	// Get retrieves a player row by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put upserts the full player row
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// PutAll upserts multiple player rows in one transaction
	PutAll(ctx context.Context, input PutAllInput) (*PutAllOutput, error)

	// ListAll returns every stored player row
	ListAll(ctx context.Context) (*ListAllOutput, error)
}
