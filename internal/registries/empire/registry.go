// Package empire implements the empire registry: the governance
// aggregate covering ownership, membership, treasury, positions, laws,
// alliances, and the war lifecycle. Like the player registry it is an
// in-memory cache over the backing store; every mutation persists
// before it commits.
package empire

//go:generate mockgen -destination=mock/mock_notifier.go -package=empiremock github.com/pixelempires/empire-api/internal/registries/empire Notifier

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	"github.com/pixelempires/empire-api/internal/pkg/clock"
	"github.com/pixelempires/empire-api/internal/pkg/idgen"
	"github.com/pixelempires/empire-api/internal/pkg/kmutex"
	"github.com/pixelempires/empire-api/internal/registries/player"
	"github.com/pixelempires/empire-api/internal/registries/territory"
	"github.com/pixelempires/empire-api/internal/repositories/empires"
)

// War timing defaults, applied when the config leaves them zero
const (
	DefaultPendingWarDuration = 5 * time.Minute
	DefaultWarDuration        = 30 * time.Minute
)

// PlayerRegistry is the slice of the player registry the empire
// registry depends on. Membership is derived from player affiliation,
// never stored on the empire row.
type PlayerRegistry interface {
	Get(ctx context.Context, input player.GetInput) (*player.GetOutput, error)
	Members(ctx context.Context, input player.MembersInput) (*player.MembersOutput, error)
	SetAffiliation(ctx context.Context, input player.SetAffiliationInput) (*player.SetAffiliationOutput, error)
	LeaveEmpire(ctx context.Context, input player.LeaveEmpireInput) (*player.LeaveEmpireOutput, error)
	SetPosition(ctx context.Context, input player.SetPositionInput) (*player.SetPositionOutput, error)
}

// TerritoryIndex is the slice of the territory index the empire
// registry depends on
type TerritoryIndex interface {
	Claim(ctx context.Context, input territory.ClaimInput) (*territory.ClaimOutput, error)
	ReleaseAll(ctx context.Context, input territory.ReleaseAllInput) (*territory.ReleaseAllOutput, error)
}

// Notifier receives change events after a mutation has been persisted
// and committed
type Notifier interface {
	EmpireChanged(empire *entities.Empire)
	EmpireDissolved(id entities.EmpireID)
}

// Config holds the dependencies for the empire registry
type Config struct {
	Repo      empires.Repository
	Players   PlayerRegistry
	Territory TerritoryIndex
	Clock     clock.Clock
	IDGen     idgen.Generator

	// Notifier is optional
	Notifier Notifier

	// PendingWarDuration and WarDuration default when zero
	PendingWarDuration time.Duration
	WarDuration        time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Players == nil {
		vb.RequiredField("Players")
	}
	if c.Territory == nil {
		vb.RequiredField("Territory")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}

	return vb.Build()
}

// Registry is the process-wide empire cache. Mutations on a given
// empire are serialized; two-empire operations (alliances, war
// transitions, payments between treasuries) take both entity locks in a
// fixed order and persist both rows in one store transaction.
type Registry struct {
	repo      empires.Repository
	players   PlayerRegistry
	territory TerritoryIndex
	clk       clock.Clock
	idgen     idgen.Generator
	notifier  Notifier

	pendingWarDuration time.Duration
	warDuration        time.Duration

	locks *kmutex.KeyedMutex

	mu   sync.RWMutex
	byID map[entities.EmpireID]*entities.Empire
}

// New creates an empire registry with the provided dependencies
func New(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	pending := cfg.PendingWarDuration
	if pending == 0 {
		pending = DefaultPendingWarDuration
	}
	war := cfg.WarDuration
	if war == 0 {
		war = DefaultWarDuration
	}

	return &Registry{
		repo:               cfg.Repo,
		players:            cfg.Players,
		territory:          cfg.Territory,
		clk:                cfg.Clock,
		idgen:              cfg.IDGen,
		notifier:           cfg.Notifier,
		pendingWarDuration: pending,
		warDuration:        war,
		locks:              kmutex.New(),
		byID:               make(map[entities.EmpireID]*entities.Empire),
	}, nil
}

// Load fills the cache from the backing store, replacing any prior
// contents
func (r *Registry) Load(ctx context.Context) error {
	out, err := r.repo.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load empires")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[entities.EmpireID]*entities.Empire, len(out.Empires))
	for _, e := range out.Empires {
		r.byID[e.ID] = e
	}

	slog.Info("empire registry loaded", "empires", len(r.byID))
	return nil
}

// Get retrieves an empire by ID
func (r *Registry) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Empire: e}, nil
}

// GetByName returns the empire whose name matches exactly,
// case-sensitive. Fuzzy matching is a presentation concern layered on
// AllNames.
func (r *Registry) GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.byID {
		if e.Name == input.Name {
			return &GetByNameOutput{Empire: e.Clone()}, nil
		}
	}
	return nil, errors.NotFoundf("no empire named %q", input.Name)
}

// AllNames returns every empire name, sorted
func (r *Registry) AllNames(ctx context.Context) (*AllNamesOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &AllNamesOutput{Names: make([]string, 0, len(r.byID))}
	for _, e := range r.byID {
		out.Names = append(out.Names, e.Name)
	}
	sort.Strings(out.Names)
	return out, nil
}

// Create founds an empire with the founder as owner and sole member.
// The empire row is persisted first; if moving the founder in fails,
// the row is deleted again so no ownerless empire survives.
func (r *Registry) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("empire name cannot be empty")
	}
	if input.FounderID.IsZero() {
		return nil, errors.InvalidArgument("founder ID cannot be empty")
	}

	founder, err := r.players.Get(ctx, player.GetInput{ID: input.FounderID})
	if err != nil {
		return nil, err
	}
	if founder.Player.InEmpire() {
		return nil, errors.InvalidState("founder is already in an empire")
	}

	// Name uniqueness is checked and committed under a lock keyed on
	// the name itself; locking the fresh empire ID would serialize
	// nothing, since no other caller can know it yet.
	unlock := r.locks.Lock("name:" + input.Name)
	defer unlock()

	if _, err := r.GetByName(ctx, GetByNameInput{Name: input.Name}); err == nil {
		return nil, errors.Conflictf("empire named %q already exists", input.Name)
	}

	created := &entities.Empire{
		ID:          entities.EmpireID(r.idgen.Generate()),
		Name:        input.Name,
		ColorTag:    input.ColorTag,
		Description: input.Description,
		OwnerID:     input.FounderID,
		Positions:   make(map[string]*entities.Position),
		Laws:        make(map[string]*entities.Law),
		Debts:       make(map[entities.PlayerID]float64),
	}

	if err := r.persist(ctx, created); err != nil {
		return nil, err
	}

	if _, err := r.players.SetAffiliation(ctx, player.SetAffiliationInput{
		ID:       input.FounderID,
		EmpireID: created.ID,
	}); err != nil {
		// Roll the row back so failure leaves no ownerless empire.
		// Best effort; a failed delete is logged and the row stays
		// orphaned until an operator removes it.
		if _, delErr := r.repo.Delete(ctx, empires.DeleteInput{ID: created.ID, Name: created.Name}); delErr != nil {
			slog.Error("failed to roll back empire row", "empire_id", created.ID, "error", delErr)
		}
		return nil, errors.Wrap(err, "failed to affiliate founder")
	}
	r.commit(created)

	return &CreateOutput{Empire: created.Clone()}, nil
}

// Dissolve removes the empire entirely: all territory released, every
// member returned to unaffiliated, ally back-references stripped, and
// any war opponent returned to peace. Relationship rows are persisted
// before the empire row is deleted so a crash mid-dissolution never
// leaves a dangling reference to a live empire.
func (r *Registry) Dissolve(ctx context.Context, input DissolveInput) (*DissolveOutput, error) {
	e, unlock, err := r.lockRelationshipSet(input.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	released, err := r.territory.ReleaseAll(ctx, territory.ReleaseAllInput{EmpireID: e.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to release territory")
	}

	members, err := r.players.Members(ctx, player.MembersInput{EmpireID: e.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list members")
	}
	for _, m := range members.Players {
		if _, err := r.players.LeaveEmpire(ctx, player.LeaveEmpireInput{ID: m.ID}); err != nil {
			return nil, errors.Wrapf(err, "failed to clear membership for %s", m.ID)
		}
	}

	var others []*entities.Empire
	for _, allyID := range e.Allies {
		ally, err := r.lookup(allyID)
		if err != nil {
			continue
		}
		ally.Allies = withoutEmpire(ally.Allies, e.ID)
		others = append(others, ally)
	}
	if e.War != nil {
		if opponent, err := r.lookup(e.War.OpponentID); err == nil {
			opponent.War = nil
			others = append(others, opponent)
		}
	}
	if len(others) > 0 {
		if _, err := r.repo.PutAll(ctx, empires.PutAllInput{Empires: others}); err != nil {
			return nil, errors.Wrap(err, "failed to detach related empires")
		}
	}

	if _, err := r.repo.Delete(ctx, empires.DeleteInput{ID: e.ID, Name: e.Name}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete empire %s", e.ID)
	}

	for _, other := range others {
		r.commit(other)
	}
	r.evict(e.ID)

	return &DissolveOutput{
		MembersCleared:   len(members.Players),
		TerritoryCleared: released.Released,
	}, nil
}

// SetDescription updates the empire description
func (r *Registry) SetDescription(ctx context.Context, input SetDescriptionInput) (*SetDescriptionOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		e.Description = input.Description
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetDescriptionOutput{Empire: updated}, nil
}

// SetColorTag updates the empire display color
func (r *Registry) SetColorTag(ctx context.Context, input SetColorTagInput) (*SetColorTagOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		e.ColorTag = input.ColorTag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetColorTagOutput{Empire: updated}, nil
}

// lookup returns a private copy of the cached row
func (r *Registry) lookup(id entities.EmpireID) (*entities.Empire, error) {
	if id.IsZero() {
		return nil, errors.InvalidArgument("empire ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFoundf("empire %s not found", id)
	}
	return e.Clone(), nil
}

// mutate applies fn to a copy of the row under the entity lock,
// persists the result, then commits it to the cache
func (r *Registry) mutate(ctx context.Context, id entities.EmpireID, fn func(*entities.Empire) error) (*entities.Empire, error) {
	unlock := r.locks.Lock(id.String())
	defer unlock()

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	if err := fn(e); err != nil {
		return nil, err
	}

	if err := r.persist(ctx, e); err != nil {
		return nil, err
	}
	r.commit(e)

	return e.Clone(), nil
}

// mutatePair applies fn to copies of both rows under both entity locks
// and persists them in one store transaction, so symmetric state
// (alliances, wars) changes on both sides or neither
func (r *Registry) mutatePair(ctx context.Context, aID, bID entities.EmpireID, fn func(a, b *entities.Empire) error) (*entities.Empire, *entities.Empire, error) {
	unlock := r.locks.LockPair(aID.String(), bID.String())
	defer unlock()

	a, err := r.lookup(aID)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.lookup(bID)
	if err != nil {
		return nil, nil, err
	}

	if err := fn(a, b); err != nil {
		return nil, nil, err
	}

	if _, err := r.repo.PutAll(ctx, empires.PutAllInput{Empires: []*entities.Empire{a, b}}); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to persist empires %s and %s", aID, bID)
	}
	r.commit(a)
	r.commit(b)

	return a.Clone(), b.Clone(), nil
}

// lockRelationshipSet locks the empire together with every empire it
// references (allies plus war opponent). The related set is re-read
// after locking and the locks retaken if it changed underneath us.
func (r *Registry) lockRelationshipSet(id entities.EmpireID) (*entities.Empire, func(), error) {
	for {
		e, err := r.lookup(id)
		if err != nil {
			return nil, nil, err
		}

		keys := relationshipKeys(e)
		unlock := r.locks.LockAll(keys...)

		current, err := r.lookup(id)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if sameKeys(keys, relationshipKeys(current)) {
			return current, unlock, nil
		}
		unlock()
	}
}

func relationshipKeys(e *entities.Empire) []string {
	keys := []string{e.ID.String()}
	for _, allyID := range e.Allies {
		keys = append(keys, allyID.String())
	}
	if e.War != nil {
		keys = append(keys, e.War.OpponentID.String())
	}
	return keys
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, k := range a {
		seen[k] = struct{}{}
	}
	for _, k := range b {
		if _, ok := seen[k]; !ok {
			return false
		}
	}
	return true
}

func withoutEmpire(ids []entities.EmpireID, id entities.EmpireID) []entities.EmpireID {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func (r *Registry) persist(ctx context.Context, e *entities.Empire) error {
	if _, err := r.repo.Put(ctx, empires.PutInput{Empire: e}); err != nil {
		return errors.Wrapf(err, "failed to persist empire %s", e.ID)
	}
	return nil
}

// commit installs the row in the cache and fires the change event
func (r *Registry) commit(e *entities.Empire) {
	r.mu.Lock()
	r.byID[e.ID] = e
	r.mu.Unlock()

	if r.notifier != nil {
		r.notifier.EmpireChanged(e.Clone())
	}
}

// evict drops a dissolved empire from the cache
func (r *Registry) evict(id entities.EmpireID) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()

	if r.notifier != nil {
		r.notifier.EmpireDissolved(id)
	}
}
