package empire

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	"github.com/pixelempires/empire-api/internal/registries/player"
	"github.com/pixelempires/empire-api/internal/registries/territory"
)

// AddMember admits a player into the empire. The player must not
// already belong to one; switching empires means leaving first.
func (r *Registry) AddMember(ctx context.Context, input AddMemberInput) (*AddMemberOutput, error) {
	if _, err := r.lookup(input.ID); err != nil {
		return nil, err
	}

	got, err := r.players.Get(ctx, player.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	if got.Player.InEmpire() {
		return nil, errors.InvalidStatef("player %s is already in an empire", input.PlayerID)
	}

	joined, err := r.players.SetAffiliation(ctx, player.SetAffiliationInput{
		ID:       input.PlayerID,
		EmpireID: input.ID,
	})
	if err != nil {
		return nil, err
	}
	return &AddMemberOutput{Player: joined.Player}, nil
}

// RemoveMember removes a member from the empire, whether they leave or
// are kicked. The owner cannot be removed; ownership must be
// transferred (or the empire dissolved) first.
func (r *Registry) RemoveMember(ctx context.Context, input RemoveMemberInput) (*RemoveMemberOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	got, err := r.players.Get(ctx, player.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	if !got.Player.MemberOf(e.ID) {
		return nil, errors.InvalidStatef("player %s is not a member of %s", input.PlayerID, e.Name)
	}
	if e.IsOwner(input.PlayerID) {
		return nil, errors.InvalidState("owner must transfer ownership before leaving")
	}

	left, err := r.players.LeaveEmpire(ctx, player.LeaveEmpireInput{ID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	return &RemoveMemberOutput{Player: left.Player}, nil
}

// TransferOwnership hands the empire to another member. Only the
// current owner may transfer.
func (r *Registry) TransferOwnership(ctx context.Context, input TransferOwnershipInput) (*TransferOwnershipOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if !e.IsOwner(input.ActorID) {
			return errors.PermissionDenied("only the owner can transfer ownership")
		}

		got, err := r.players.Get(ctx, player.GetInput{ID: input.NewOwnerID})
		if err != nil {
			return err
		}
		if !got.Player.MemberOf(e.ID) {
			return errors.InvalidStatef("player %s is not a member of %s", input.NewOwnerID, e.Name)
		}

		e.OwnerID = input.NewOwnerID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TransferOwnershipOutput{Empire: updated}, nil
}

// HasPermission resolves whether the player may perform the permission
// within the empire. The owner holds every permission unconditionally;
// everyone else needs a position that grants it.
func (r *Registry) HasPermission(ctx context.Context, input HasPermissionInput) (*HasPermissionOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	allowed, err := r.resolvePermission(ctx, e, input.PlayerID, input.Permission)
	if err != nil {
		return nil, err
	}
	return &HasPermissionOutput{Allowed: allowed}, nil
}

// ClaimChunk claims a chunk of territory for the empire. The actor
// needs the claim-territory permission; ownership conflicts surface
// from the territory index.
func (r *Registry) ClaimChunk(ctx context.Context, input ClaimChunkInput) (*ClaimChunkOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionClaimTerritory); err != nil {
		return nil, err
	}

	claimed, err := r.territory.Claim(ctx, territory.ClaimInput{
		World:    input.World,
		X:        input.X,
		Z:        input.Z,
		EmpireID: e.ID,
	})
	if err != nil {
		return nil, err
	}
	return &ClaimChunkOutput{Cell: claimed.Cell}, nil
}

// resolvePermission evaluates the permission model against a row copy
func (r *Registry) resolvePermission(ctx context.Context, e *entities.Empire, playerID entities.PlayerID, perm entities.Permission) (bool, error) {
	if e.IsOwner(playerID) {
		return true, nil
	}

	got, err := r.players.Get(ctx, player.GetInput{ID: playerID})
	if err != nil {
		return false, err
	}
	p := got.Player
	if !p.MemberOf(e.ID) || p.Position == nil {
		return false, nil
	}

	pos := e.Position(*p.Position)
	if pos == nil {
		// Stale assignment from a deleted position grants nothing
		return false, nil
	}
	return pos.HasPermission(perm), nil
}

// requirePermission is resolvePermission with denial as an error
func (r *Registry) requirePermission(ctx context.Context, e *entities.Empire, actorID entities.PlayerID, perm entities.Permission) error {
	allowed, err := r.resolvePermission(ctx, e, actorID, perm)
	if err != nil {
		return err
	}
	if !allowed {
		return errors.PermissionDeniedf("player %s lacks %s in %s", actorID, perm, e.Name)
	}
	return nil
}
