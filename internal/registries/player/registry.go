// Package player implements the player registry: an in-memory cache of
// every player row, kept consistent with the backing store by
// persisting each mutation before it is committed to the cache.
package player

//go:generate mockgen -destination=mock/mock_notifier.go -package=playermock github.com/pixelempires/empire-api/internal/registries/player Notifier

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	"github.com/pixelempires/empire-api/internal/pkg/kmutex"
	"github.com/pixelempires/empire-api/internal/repositories/players"
)

// Notifier receives a change event after a mutation has been persisted
// and committed. Presentation layers (scoreboards) subscribe here; the
// registry itself carries no display concerns.
type Notifier interface {
	PlayerChanged(player *entities.Player)
}

// Config holds the dependencies for the player registry
type Config struct {
	Repo players.Repository

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

// Registry is the process-wide player cache. All mutations on a given
// player are serialized; operations on different players proceed
// concurrently. Construct one per process and call Load before use.
type Registry struct {
	repo     players.Repository
	notifier Notifier

	locks *kmutex.KeyedMutex

	mu   sync.RWMutex
	byID map[entities.PlayerID]*entities.Player
}

// New creates a player registry with the provided dependencies
func New(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Registry{
		repo:     cfg.Repo,
		notifier: cfg.Notifier,
		locks:    kmutex.New(),
		byID:     make(map[entities.PlayerID]*entities.Player),
	}, nil
}

// Load fills the cache from the backing store, replacing any prior
// contents
func (r *Registry) Load(ctx context.Context) error {
	out, err := r.repo.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load players")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[entities.PlayerID]*entities.Player, len(out.Players))
	for _, p := range out.Players {
		r.byID[p.ID] = p
	}

	slog.Info("player registry loaded", "players", len(r.byID))
	return nil
}

// Get retrieves a player by ID
func (r *Registry) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	p, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Player: p}, nil
}

// GetByName returns the first player whose display name matches exactly
func (r *Registry) GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.Name == input.Name {
			return &GetByNameOutput{Player: p.Clone()}, nil
		}
	}
	return nil, errors.NotFoundf("no player named %q", input.Name)
}

// GetByDiscordID returns the player linked to the given external account
func (r *Registry) GetByDiscordID(ctx context.Context, input GetByDiscordIDInput) (*GetByDiscordIDOutput, error) {
	if input.DiscordID == "" {
		return nil, errors.InvalidArgument("discord ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.DiscordID != nil && *p.DiscordID == input.DiscordID {
			return &GetByDiscordIDOutput{Player: p.Clone()}, nil
		}
	}
	return nil, errors.NotFoundf("no player linked to discord account %s", input.DiscordID)
}

// Members lists every player affiliated with the empire, sorted by name
func (r *Registry) Members(ctx context.Context, input MembersInput) (*MembersOutput, error) {
	if input.EmpireID.IsZero() {
		return nil, errors.InvalidArgument("empire ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &MembersOutput{}
	for _, p := range r.byID {
		if p.MemberOf(input.EmpireID) {
			out.Players = append(out.Players, p.Clone())
		}
	}
	sort.Slice(out.Players, func(i, j int) bool {
		return out.Players[i].Name < out.Players[j].Name
	})
	return out, nil
}

// Create registers a player on first contact: zero balance, no empire
func (r *Registry) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID.IsZero() {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("player name cannot be empty")
	}

	unlock := r.locks.Lock(input.ID.String())
	defer unlock()

	if _, err := r.lookup(input.ID); err == nil {
		return nil, errors.Conflictf("player %s already exists", input.ID)
	}

	created := &entities.Player{
		ID:   input.ID,
		Name: input.Name,
	}

	if err := r.persist(ctx, created); err != nil {
		return nil, err
	}
	r.commit(created)

	return &CreateOutput{Player: created.Clone()}, nil
}

// SetName updates the display name
func (r *Registry) SetName(ctx context.Context, input SetNameInput) (*SetNameOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("player name cannot be empty")
	}

	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		p.Name = input.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetNameOutput{Player: updated}, nil
}

// SetBalance overwrites the stored balance. The balance may not go
// negative; callers see InvalidState rather than a silent clamp.
func (r *Registry) SetBalance(ctx context.Context, input SetBalanceInput) (*SetBalanceOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		if input.Balance < 0 {
			return errors.InvalidStatef("balance cannot go negative (requested %.2f)", input.Balance)
		}
		p.Balance = input.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetBalanceOutput{Player: updated}, nil
}

// GiveCoins credits the balance
func (r *Registry) GiveCoins(ctx context.Context, input GiveCoinsInput) (*GiveCoinsOutput, error) {
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("amount cannot be negative")
	}

	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		p.Balance += input.Amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GiveCoinsOutput{Player: updated}, nil
}

// TakeCoins debits the balance, failing if it would go negative
func (r *Registry) TakeCoins(ctx context.Context, input TakeCoinsInput) (*TakeCoinsOutput, error) {
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("amount cannot be negative")
	}

	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		if p.Balance < input.Amount {
			return errors.InvalidStatef("insufficient balance: have %.1f, need %.1f", p.Balance, input.Amount)
		}
		p.Balance -= input.Amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TakeCoinsOutput{Player: updated}, nil
}

// Pay transfers coins between two players. Both rows are persisted in
// one store transaction and both cache entries committed together, so
// coins are never created or destroyed: either both balances move or
// neither does.
func (r *Registry) Pay(ctx context.Context, input PayInput) (*PayOutput, error) {
	if input.Amount <= 0 {
		return nil, errors.InvalidArgument("amount must be positive")
	}
	if input.FromID == input.ToID {
		return nil, errors.InvalidState("cannot pay yourself")
	}

	unlock := r.locks.LockPair(input.FromID.String(), input.ToID.String())
	defer unlock()

	from, err := r.lookup(input.FromID)
	if err != nil {
		return nil, err
	}
	to, err := r.lookup(input.ToID)
	if err != nil {
		return nil, err
	}

	if from.Balance < input.Amount {
		return nil, errors.InvalidStatef("insufficient balance: have %.1f, need %.1f", from.Balance, input.Amount)
	}

	from.Balance -= input.Amount
	to.Balance += input.Amount

	if _, err := r.repo.PutAll(ctx, players.PutAllInput{Players: []*entities.Player{from, to}}); err != nil {
		return nil, errors.Wrap(err, "failed to persist payment")
	}
	r.commit(from)
	r.commit(to)

	return &PayOutput{From: from.Clone(), To: to.Clone()}, nil
}

// SetAffiliation moves the player into the given empire, clearing any
// position carried over from a previous empire
func (r *Registry) SetAffiliation(ctx context.Context, input SetAffiliationInput) (*SetAffiliationOutput, error) {
	if input.EmpireID.IsZero() {
		return nil, errors.InvalidArgument("empire ID cannot be empty")
	}

	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		empireID := input.EmpireID
		p.EmpireID = &empireID
		p.Position = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetAffiliationOutput{Player: updated}, nil
}

// LeaveEmpire clears affiliation and position together, keeping the
// invariant that an unaffiliated player holds no position
func (r *Registry) LeaveEmpire(ctx context.Context, input LeaveEmpireInput) (*LeaveEmpireOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		p.EmpireID = nil
		p.Position = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &LeaveEmpireOutput{Player: updated}, nil
}

// SetPosition assigns or clears the player's position name. Assigning
// requires empire membership; position validity against the empire's
// position map is enforced by the empire registry.
func (r *Registry) SetPosition(ctx context.Context, input SetPositionInput) (*SetPositionOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		if input.Position != nil && !p.InEmpire() {
			return errors.InvalidState("player is not in an empire")
		}
		p.Position = input.Position
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetPositionOutput{Player: updated}, nil
}

// SetJumpedIn flips the one-shot advancement flag
func (r *Registry) SetJumpedIn(ctx context.Context, input SetJumpedInInput) (*SetJumpedInOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		p.JumpedIn = input.JumpedIn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetJumpedInOutput{Player: updated}, nil
}

// SetDiscordID links or unlinks an external account
func (r *Registry) SetDiscordID(ctx context.Context, input SetDiscordIDInput) (*SetDiscordIDOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(p *entities.Player) error {
		p.DiscordID = input.DiscordID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetDiscordIDOutput{Player: updated}, nil
}

// lookup returns a private copy of the cached row
func (r *Registry) lookup(id entities.PlayerID) (*entities.Player, error) {
	if id.IsZero() {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFoundf("player %s not found", id)
	}
	return p.Clone(), nil
}

// mutate applies fn to a copy of the row under the entity lock,
// persists the result, then commits it to the cache. Validation errors
// from fn abort before anything is written; persistence failures leave
// the cache at its prior state.
func (r *Registry) mutate(ctx context.Context, id entities.PlayerID, fn func(*entities.Player) error) (*entities.Player, error) {
	unlock := r.locks.Lock(id.String())
	defer unlock()

	p, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	if err := r.persist(ctx, p); err != nil {
		return nil, err
	}
	r.commit(p)

	return p.Clone(), nil
}

func (r *Registry) persist(ctx context.Context, p *entities.Player) error {
	if _, err := r.repo.Put(ctx, players.PutInput{Player: p}); err != nil {
		return errors.Wrapf(err, "failed to persist player %s", p.ID)
	}
	return nil
}

// commit installs the row in the cache and fires the change event
func (r *Registry) commit(p *entities.Player) {
	r.mu.Lock()
	r.byID[p.ID] = p
	r.mu.Unlock()

	if r.notifier != nil {
		r.notifier.PlayerChanged(p.Clone())
	}
}
