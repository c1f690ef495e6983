// Package territory implements the territory index: an in-memory map
// of claimed world-grid cells to their owning empire, queried on every
// player movement tick and kept write-through consistent with the
// backing store.
package territory

//go:generate mockgen -destination=mock/mock_notifier.go -package=territorymock github.com/pixelempires/empire-api/internal/registries/territory Notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	"github.com/pixelempires/empire-api/internal/pkg/kmutex"
	territoryrepo "github.com/pixelempires/empire-api/internal/repositories/territory"
)

// Notifier receives a change event after a claim, reclassification, or
// release has been persisted and committed. Live map overlays
// subscribe here.
type Notifier interface {
	CellChanged(cell *entities.TerritoryCell)
	CellReleased(key entities.CellKey)
}

// Config holds the dependencies for the territory index
type Config struct {
	Repo territoryrepo.Repository

	// Notifier is optional
	Notifier Notifier
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}

	return vb.Build()
}

// Registry is the process-wide territory index. Lookups are O(1) on
// the cell key; contiguity of an empire's claims is deliberately not
// enforced.
type Registry struct {
	repo     territoryrepo.Repository
	notifier Notifier

	locks *kmutex.KeyedMutex

	mu     sync.RWMutex
	byCell map[entities.CellKey]*entities.TerritoryCell
}

// New creates a territory index with the provided dependencies
func New(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Registry{
		repo:     cfg.Repo,
		notifier: cfg.Notifier,
		locks:    kmutex.New(),
		byCell:   make(map[entities.CellKey]*entities.TerritoryCell),
	}, nil
}

// Load fills the index from the backing store
func (r *Registry) Load(ctx context.Context) error {
	out, err := r.repo.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load territory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCell = make(map[entities.CellKey]*entities.TerritoryCell, len(out.Cells))
	for _, cell := range out.Cells {
		r.byCell[cell.Key()] = cell
	}

	slog.Info("territory index loaded", "cells", len(r.byCell))
	return nil
}

// GetCell returns the cell at the coordinate, or NotFound for wilderness
func (r *Registry) GetCell(ctx context.Context, input GetCellInput) (*GetCellOutput, error) {
	key, err := cellKey(input.World, input.X, input.Z)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cell, ok := r.byCell[key]
	if !ok {
		return nil, errors.NotFoundf("cell %s:%d:%d is unclaimed", input.World, input.X, input.Z)
	}
	return &GetCellOutput{Cell: cell.Clone()}, nil
}

// Claim takes ownership of an unowned cell. Claiming a cell the empire
// already owns is idempotent; a cell owned by another empire is a
// conflict and ownership is unchanged.
func (r *Registry) Claim(ctx context.Context, input ClaimInput) (*ClaimOutput, error) {
	key, err := cellKey(input.World, input.X, input.Z)
	if err != nil {
		return nil, err
	}
	if input.EmpireID.IsZero() {
		return nil, errors.InvalidArgument("empire ID cannot be empty")
	}

	unlock := r.locks.Lock(lockKey(key))
	defer unlock()

	if existing := r.cached(key); existing != nil {
		if existing.EmpireID == input.EmpireID {
			return &ClaimOutput{Cell: existing}, nil
		}
		return nil, errors.Conflictf("cell %s:%d:%d already claimed by another empire", input.World, input.X, input.Z)
	}

	cell := &entities.TerritoryCell{
		World:    input.World,
		X:        input.X,
		Z:        input.Z,
		EmpireID: input.EmpireID,
		Type:     entities.ChunkNone,
	}

	if _, err := r.repo.Put(ctx, territoryrepo.PutInput{Cell: cell}); err != nil {
		return nil, errors.Wrapf(err, "failed to persist claim %s:%d:%d", input.World, input.X, input.Z)
	}
	r.commit(cell)

	return &ClaimOutput{Cell: cell.Clone()}, nil
}

// Release abandons a claimed cell
func (r *Registry) Release(ctx context.Context, input ReleaseInput) (*ReleaseOutput, error) {
	key, err := cellKey(input.World, input.X, input.Z)
	if err != nil {
		return nil, err
	}

	unlock := r.locks.Lock(lockKey(key))
	defer unlock()

	if r.cached(key) == nil {
		return nil, errors.NotFoundf("cell %s:%d:%d is unclaimed", input.World, input.X, input.Z)
	}

	if _, err := r.repo.Delete(ctx, territoryrepo.DeleteInput{Key: key}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete cell %s:%d:%d", input.World, input.X, input.Z)
	}

	r.evict(key)

	return &ReleaseOutput{}, nil
}

// Classify changes a claimed cell's classification
func (r *Registry) Classify(ctx context.Context, input ClassifyInput) (*ClassifyOutput, error) {
	key, err := cellKey(input.World, input.X, input.Z)
	if err != nil {
		return nil, err
	}
	if input.Type != entities.ChunkNone && input.Type != entities.ChunkTemple {
		return nil, errors.InvalidArgumentf("unknown chunk type %q", input.Type)
	}

	unlock := r.locks.Lock(lockKey(key))
	defer unlock()

	existing := r.cached(key)
	if existing == nil {
		return nil, errors.NotFoundf("cell %s:%d:%d is unclaimed", input.World, input.X, input.Z)
	}

	existing.Type = input.Type
	if _, err := r.repo.Put(ctx, territoryrepo.PutInput{Cell: existing}); err != nil {
		return nil, errors.Wrapf(err, "failed to persist cell %s:%d:%d", input.World, input.X, input.Z)
	}
	r.commit(existing)

	return &ClassifyOutput{Cell: existing.Clone()}, nil
}

// CellsOf lists every cell the empire owns
func (r *Registry) CellsOf(ctx context.Context, input CellsOfInput) (*CellsOfOutput, error) {
	if input.EmpireID.IsZero() {
		return nil, errors.InvalidArgument("empire ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &CellsOfOutput{}
	for _, cell := range r.byCell {
		if cell.EmpireID == input.EmpireID {
			out.Cells = append(out.Cells, cell.Clone())
		}
	}
	return out, nil
}

// ReleaseAll removes every cell the empire owns in one store
// transaction, used when the empire dissolves
func (r *Registry) ReleaseAll(ctx context.Context, input ReleaseAllInput) (*ReleaseAllOutput, error) {
	owned, err := r.CellsOf(ctx, CellsOfInput{EmpireID: input.EmpireID})
	if err != nil {
		return nil, err
	}
	if len(owned.Cells) == 0 {
		return &ReleaseAllOutput{}, nil
	}

	keys := make([]entities.CellKey, 0, len(owned.Cells))
	for _, cell := range owned.Cells {
		keys = append(keys, cell.Key())
	}

	if _, err := r.repo.DeleteMany(ctx, territoryrepo.DeleteManyInput{Keys: keys}); err != nil {
		return nil, errors.Wrapf(err, "failed to release territory of empire %s", input.EmpireID)
	}

	for _, key := range keys {
		r.evict(key)
	}

	return &ReleaseAllOutput{Released: len(keys)}, nil
}

func (r *Registry) cached(key entities.CellKey) *entities.TerritoryCell {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cell, ok := r.byCell[key]
	if !ok {
		return nil
	}
	return cell.Clone()
}

func (r *Registry) commit(cell *entities.TerritoryCell) {
	r.mu.Lock()
	r.byCell[cell.Key()] = cell
	r.mu.Unlock()

	if r.notifier != nil {
		r.notifier.CellChanged(cell.Clone())
	}
}

func (r *Registry) evict(key entities.CellKey) {
	r.mu.Lock()
	delete(r.byCell, key)
	r.mu.Unlock()

	if r.notifier != nil {
		r.notifier.CellReleased(key)
	}
}

func cellKey(world string, x, z int) (entities.CellKey, error) {
	if world == "" {
		return entities.CellKey{}, errors.InvalidArgument("world cannot be empty")
	}
	return entities.CellKey{World: world, X: x, Z: z}, nil
}

func lockKey(key entities.CellKey) string {
	return fmt.Sprintf("%s:%d:%d", key.World, key.X, key.Z)
}
