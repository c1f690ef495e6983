package empire

import (
	"context"
	"log/slog"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
)

// DeclareWar starts the war lifecycle against another empire. Both
// sides enter the pending phase pointing at each other; the activation
// and expiry timestamps are fixed at declaration so countdowns can be
// derived on read.
func (r *Registry) DeclareWar(ctx context.Context, input DeclareWarInput) (*DeclareWarOutput, error) {
	if input.ID == input.TargetID {
		return nil, errors.InvalidState("an empire cannot declare war on itself")
	}

	var declared *entities.WarState
	_, _, err := r.mutatePair(ctx, input.ID, input.TargetID, func(declarer, target *entities.Empire) error {
		if err := r.requirePermission(ctx, declarer, input.ActorID, entities.PermissionDeclareWar); err != nil {
			return err
		}
		if declarer.IsAlliedWith(target.ID) {
			return errors.InvalidStatef("%s and %s are allied", declarer.Name, target.Name)
		}
		if declarer.AtWar() {
			return errors.Conflictf("%s is already at war", declarer.Name)
		}
		if target.AtWar() {
			return errors.Conflictf("%s is already at war", target.Name)
		}

		now := r.clk.Now()
		activatesAt := now.Add(r.pendingWarDuration)
		expiresAt := activatesAt.Add(r.warDuration)

		declarer.War = &entities.WarState{
			OpponentID:  target.ID,
			Phase:       entities.WarPending,
			ActivatesAt: activatesAt,
			ExpiresAt:   expiresAt,
		}
		target.War = &entities.WarState{
			OpponentID:  declarer.ID,
			Phase:       entities.WarPending,
			ActivatesAt: activatesAt,
			ExpiresAt:   expiresAt,
		}
		declared = declarer.War
		return nil
	})
	if err != nil {
		return nil, err
	}

	war := *declared
	return &DeclareWarOutput{War: &war}, nil
}

// EndWar resolves a war early, returning both sides to peace
// regardless of phase
func (r *Registry) EndWar(ctx context.Context, input EndWarInput) (*EndWarOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if !e.AtWar() {
		return nil, errors.InvalidStatef("%s is not at war", e.Name)
	}

	if err := r.settleWar(ctx, input.ID, e.War.OpponentID); err != nil {
		return nil, err
	}
	return &EndWarOutput{}, nil
}

// WarStatus returns a snapshot of the war relationship. Phase is nil
// at peace; the countdowns are recomputed from the stored timestamps,
// so callers see the true remaining time even between ticks.
func (r *Registry) WarStatus(ctx context.Context, input WarStatusInput) (*WarStatusOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	if e.War == nil {
		return &WarStatusOutput{}, nil
	}

	now := r.clk.Now()
	phase := e.War.Phase
	return &WarStatusOutput{
		Phase:         &phase,
		OpponentID:    e.War.OpponentID,
		TimeLeftToWar: e.War.TimeLeftToWar(now),
		TimeLeftInWar: e.War.TimeLeftInWar(now),
	}, nil
}

// Tick advances every due war transition: pending wars whose
// activation time has passed become active, active wars whose expiry
// has passed resolve to peace. Transitions key off stored timestamps,
// so a delayed or doubled tick changes nothing it should not.
func (r *Registry) Tick(ctx context.Context) (*TickOutput, error) {
	out := &TickOutput{}

	for _, id := range r.warringIDs() {
		e, err := r.lookup(id)
		if err != nil || e.War == nil {
			continue
		}

		// Each pair transitions once, driven from the side with the
		// smaller ID. A war pointing at a missing opponent has no
		// second side and is repaired from here.
		opponentID := e.War.OpponentID
		if _, err := r.lookup(opponentID); err != nil {
			if cleared, clearErr := r.clearDanglingWar(ctx, id, opponentID); clearErr != nil {
				return nil, clearErr
			} else if cleared {
				out.Resolved++
			}
			continue
		}
		if opponentID.String() < id.String() {
			continue
		}

		now := r.clk.Now()
		switch {
		case e.War.Phase == entities.WarPending && !now.Before(e.War.ActivatesAt):
			activated, err := r.activateWar(ctx, id, opponentID)
			if err != nil {
				return nil, err
			}
			if activated {
				out.Activated++
			}
		case e.War.Phase == entities.WarActive && !now.Before(e.War.ExpiresAt):
			if err := r.settleWar(ctx, id, opponentID); err != nil {
				if errors.IsInvalidState(err) || errors.IsNotFound(err) {
					continue
				}
				return nil, err
			}
			out.Resolved++
		}
	}

	return out, nil
}

// warringIDs snapshots the IDs with a war relationship so Tick never
// holds the cache lock across persistence
func (r *Registry) warringIDs() []entities.EmpireID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []entities.EmpireID
	for id, e := range r.byID {
		if e.War != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// activateWar moves a pending war to active on both sides. Re-checks
// under the pair lock; a war that already transitioned is left alone.
func (r *Registry) activateWar(ctx context.Context, aID, bID entities.EmpireID) (bool, error) {
	activated := false
	_, _, err := r.mutatePair(ctx, aID, bID, func(a, b *entities.Empire) error {
		if a.War == nil || b.War == nil ||
			a.War.Phase != entities.WarPending || a.War.OpponentID != b.ID {
			return errors.InvalidState("war already transitioned")
		}

		a.War.Phase = entities.WarActive
		b.War.Phase = entities.WarActive
		activated = true

		slog.Info("war activated", "empire", a.Name, "opponent", b.Name, "expires_at", a.War.ExpiresAt)
		return nil
	})
	if err != nil {
		if errors.IsInvalidState(err) || errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return activated, nil
}

// settleWar clears the war relationship from both sides
func (r *Registry) settleWar(ctx context.Context, aID, bID entities.EmpireID) error {
	_, _, err := r.mutatePair(ctx, aID, bID, func(a, b *entities.Empire) error {
		if a.War == nil || a.War.OpponentID != b.ID {
			return errors.InvalidState("war already resolved")
		}

		a.War = nil
		b.War = nil

		slog.Info("war resolved", "empire", a.Name, "opponent", b.Name)
		return nil
	})
	return err
}

// clearDanglingWar drops a war reference whose opponent no longer
// exists, e.g. after a dissolution that raced the tick
func (r *Registry) clearDanglingWar(ctx context.Context, id, opponentID entities.EmpireID) (bool, error) {
	cleared := false
	_, err := r.mutate(ctx, id, func(e *entities.Empire) error {
		if e.War == nil || e.War.OpponentID != opponentID {
			return nil
		}
		e.War = nil
		cleared = true

		slog.Warn("cleared war against missing empire", "empire", e.Name, "opponent_id", opponentID)
		return nil
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return cleared, nil
}
