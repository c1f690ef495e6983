package empire

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
	"github.com/pixelempires/empire-api/internal/registries/player"
)

// Reserve reads the treasury balance
func (r *Registry) Reserve(ctx context.Context, input ReserveInput) (*ReserveOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return &ReserveOutput{Reserve: e.Reserve}, nil
}

// AdjustReserve credits or debits the treasury. Unlike player balances
// the reserve may go negative; an empire can run a deficit.
func (r *Registry) AdjustReserve(ctx context.Context, input AdjustReserveInput) (*AdjustReserveOutput, error) {
	updated, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		e.Reserve += input.Delta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AdjustReserveOutput{Reserve: updated.Reserve}, nil
}

// RecordDebt adjusts what a player owes the reserve. A positive amount
// accumulates onto any existing debt; a negative amount records
// repayment. The ledger entry disappears once the owed amount reaches
// zero, so Debts never reports settled players.
func (r *Registry) RecordDebt(ctx context.Context, input RecordDebtInput) (*RecordDebtOutput, error) {
	if input.PlayerID.IsZero() {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}
	if _, err := r.players.Get(ctx, player.GetInput{ID: input.PlayerID}); err != nil {
		return nil, err
	}

	var owed float64
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		owed = e.Debts[input.PlayerID] + input.Amount
		if owed <= 0 {
			owed = 0
			delete(e.Debts, input.PlayerID)
			return nil
		}
		e.Debts[input.PlayerID] = owed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RecordDebtOutput{Owed: owed}, nil
}

// ClearDebt forgives a player's debt entirely
func (r *Registry) ClearDebt(ctx context.Context, input ClearDebtInput) (*ClearDebtOutput, error) {
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if _, ok := e.Debts[input.PlayerID]; !ok {
			return errors.NotFoundf("player %s owes nothing to %s", input.PlayerID, e.Name)
		}
		delete(e.Debts, input.PlayerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ClearDebtOutput{}, nil
}

// Debts returns a snapshot of the debt ledger
func (r *Registry) Debts(ctx context.Context, input DebtsInput) (*DebtsOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}
	return &DebtsOutput{Debts: e.Debts}, nil
}
