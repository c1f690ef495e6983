// Package territory provides the persistence adapter for territory cells
package territory

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
)

// GetInput contains parameters for retrieving a cell
type GetInput struct {
	Key entities.CellKey
}

// GetOutput contains the retrieved cell
type GetOutput struct {
	Cell *entities.TerritoryCell
}

// PutInput contains the cell to upsert
type PutInput struct {
	Cell *entities.TerritoryCell
}

// PutOutput contains the result of an upsert
type PutOutput struct {
	Cell *entities.TerritoryCell
}

// DeleteInput contains parameters for deleting a cell
type DeleteInput struct {
	Key entities.CellKey
}

// DeleteOutput contains the result of a delete
type DeleteOutput struct{}

// DeleteManyInput contains cell keys to delete in one transaction,
// used when an empire dissolves and all its territory is released
type DeleteManyInput struct {
	Keys []entities.CellKey
}

// DeleteManyOutput contains the result of a bulk delete
type DeleteManyOutput struct {
	Deleted int
}

// ListAllOutput contains every stored cell
type ListAllOutput struct {
	Cells []*entities.TerritoryCell
}

// Repository defines the storage operations for territory cells
type Repository interface {
	// Get retrieves a cell by its world coordinate
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put upserts a cell
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes a cell
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// DeleteMany removes multiple cells in one transaction
	DeleteMany(ctx context.Context, input DeleteManyInput) (*DeleteManyOutput, error)

	// ListAll returns every stored cell
	ListAll(ctx context.Context) (*ListAllOutput, error)
}
