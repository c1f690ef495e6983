package empire

import (
	"context"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
)

// AddAlly forms an alliance between two empires. Both rows gain the
// back-reference in one store transaction so the relation is always
// symmetric.
func (r *Registry) AddAlly(ctx context.Context, input AddAllyInput) (*AddAllyOutput, error) {
	if input.ID == input.AllyID {
		return nil, errors.InvalidState("an empire cannot ally with itself")
	}

	_, _, err := r.mutatePair(ctx, input.ID, input.AllyID, func(a, b *entities.Empire) error {
		if a.IsAlliedWith(b.ID) || b.IsAlliedWith(a.ID) {
			return errors.Conflictf("%s and %s are already allied", a.Name, b.Name)
		}

		a.Allies = append(a.Allies, b.ID)
		b.Allies = append(b.Allies, a.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AddAllyOutput{}, nil
}

// RemoveAlly breaks an alliance, removing the back-reference from both
// sides or neither
func (r *Registry) RemoveAlly(ctx context.Context, input RemoveAllyInput) (*RemoveAllyOutput, error) {
	if input.ID == input.AllyID {
		return nil, errors.InvalidState("an empire cannot ally with itself")
	}

	_, _, err := r.mutatePair(ctx, input.ID, input.AllyID, func(a, b *entities.Empire) error {
		if !a.IsAlliedWith(b.ID) {
			return errors.NotFoundf("%s and %s are not allied", a.Name, b.Name)
		}

		a.Allies = withoutEmpire(a.Allies, b.ID)
		b.Allies = withoutEmpire(b.Allies, a.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RemoveAllyOutput{}, nil
}
