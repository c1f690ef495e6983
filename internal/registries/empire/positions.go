package empire

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	"github.com/pixelempires/empire-api/internal/registries/player"
)

// CreatePosition adds a named position to the empire's hierarchy. The
// actor needs the manage-positions permission.
func (r *Registry) CreatePosition(ctx context.Context, input CreatePositionInput) (*CreatePositionOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("position name cannot be empty")
	}
	if err := validatePermissions(input.Permissions); err != nil {
		return nil, err
	}

	var created *entities.Position
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManagePositions); err != nil {
			return err
		}
		if e.Position(input.Name) != nil {
			return errors.Conflictf("position %q already exists in %s", input.Name, e.Name)
		}

		created = &entities.Position{
			Name:        input.Name,
			Rank:        input.Rank,
			Permissions: append([]entities.Permission(nil), input.Permissions...),
		}
		e.Positions[input.Name] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreatePositionOutput{Position: created.Clone()}, nil
}

// SetPositionRank changes a position's seniority
func (r *Registry) SetPositionRank(ctx context.Context, input SetPositionRankInput) (*SetPositionRankOutput, error) {
	var updated *entities.Position
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManagePositions); err != nil {
			return err
		}
		pos := e.Position(input.Name)
		if pos == nil {
			return errors.NotFoundf("position %q not found in %s", input.Name, e.Name)
		}

		pos.Rank = input.Rank
		updated = pos
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SetPositionRankOutput{Position: updated.Clone()}, nil
}

// GrantPermission adds a permission to a position. Granting a
// permission the position already holds is a conflict, not a no-op.
func (r *Registry) GrantPermission(ctx context.Context, input GrantPermissionInput) (*GrantPermissionOutput, error) {
	if err := validatePermissions([]entities.Permission{input.Permission}); err != nil {
		return nil, err
	}

	var updated *entities.Position
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManagePositions); err != nil {
			return err
		}
		pos := e.Position(input.Position)
		if pos == nil {
			return errors.NotFoundf("position %q not found in %s", input.Position, e.Name)
		}
		if pos.HasPermission(input.Permission) {
			return errors.Conflictf("position %q already grants %s", input.Position, input.Permission)
		}

		pos.Permissions = append(pos.Permissions, input.Permission)
		updated = pos
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GrantPermissionOutput{Position: updated.Clone()}, nil
}

// RevokePermission removes a permission from a position
func (r *Registry) RevokePermission(ctx context.Context, input RevokePermissionInput) (*RevokePermissionOutput, error) {
	var updated *entities.Position
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManagePositions); err != nil {
			return err
		}
		pos := e.Position(input.Position)
		if pos == nil {
			return errors.NotFoundf("position %q not found in %s", input.Position, e.Name)
		}
		if !pos.HasPermission(input.Permission) {
			return errors.NotFoundf("position %q does not grant %s", input.Position, input.Permission)
		}

		kept := pos.Permissions[:0]
		for _, perm := range pos.Permissions {
			if perm != input.Permission {
				kept = append(kept, perm)
			}
		}
		pos.Permissions = kept
		updated = pos
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RevokePermissionOutput{Position: updated.Clone()}, nil
}

// DeletePosition removes a position from the hierarchy. A position
// still held by any member cannot be deleted; reassign them first.
func (r *Registry) DeletePosition(ctx context.Context, input DeletePositionInput) (*DeletePositionOutput, error) {
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManagePositions); err != nil {
			return err
		}
		if e.Position(input.Name) == nil {
			return errors.NotFoundf("position %q not found in %s", input.Name, e.Name)
		}

		members, err := r.players.Members(ctx, player.MembersInput{EmpireID: e.ID})
		if err != nil {
			return err
		}
		for _, m := range members.Players {
			if m.Position != nil && *m.Position == input.Name {
				return errors.InvalidStatef("position %q is still held by %s", input.Name, m.Name)
			}
		}

		delete(e.Positions, input.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DeletePositionOutput{}, nil
}

// AssignPosition sets or clears a member's position. The position must
// exist in this empire; the target must be a member.
func (r *Registry) AssignPosition(ctx context.Context, input AssignPositionInput) (*AssignPositionOutput, error) {
	// Held so the existence check cannot interleave with a concurrent
	// DeletePosition on the same empire.
	unlock := r.locks.Lock(input.ID.String())
	defer unlock()

	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManagePositions); err != nil {
		return nil, err
	}

	got, err := r.players.Get(ctx, player.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	if !got.Player.MemberOf(e.ID) {
		return nil, errors.InvalidStatef("player %s is not a member of %s", input.PlayerID, e.Name)
	}
	if input.Position != nil && e.Position(*input.Position) == nil {
		return nil, errors.NotFoundf("position %q not found in %s", *input.Position, e.Name)
	}

	assigned, err := r.players.SetPosition(ctx, player.SetPositionInput{
		ID:       input.PlayerID,
		Position: input.Position,
	})
	if err != nil {
		return nil, err
	}
	return &AssignPositionOutput{Player: assigned.Player}, nil
}

// Positions lists positions by seniority, highest rank first
func (r *Registry) Positions(ctx context.Context, input PositionsInput) (*PositionsOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return &PositionsOutput{Positions: e.SortedPositions()}, nil
}

func validatePermissions(perms []entities.Permission) error {
	for _, perm := range perms {
		known := false
		for _, candidate := range entities.AllPermissions() {
			if perm == candidate {
				known = true
				break
			}
		}
		if !known {
			return errors.InvalidArgumentf("unknown permission %q", perm)
		}
	}
	return nil
}
