package empire

import (
	"context"
	"sort"

	"github.com/pixelempires/empire-api/internal/entities"
	"github.com/pixelempires/empire-api/internal/errors"
)

// AddLaw records a named law. The actor needs the manage-laws
// permission and is recorded as the law's author.
func (r *Registry) AddLaw(ctx context.Context, input AddLawInput) (*AddLawOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("law name cannot be empty")
	}
	if input.Body == "" {
		return nil, errors.InvalidArgument("law body cannot be empty")
	}

	var added *entities.Law
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManageLaws); err != nil {
			return err
		}
		if _, ok := e.Laws[input.Name]; ok {
			return errors.Conflictf("law %q already exists in %s", input.Name, e.Name)
		}

		added = &entities.Law{
			Name:     input.Name,
			AuthorID: input.ActorID,
			Body:     input.Body,
		}
		e.Laws[input.Name] = added
		return nil
	})
	if err != nil {
		return nil, err
	}

	cp := *added
	return &AddLawOutput{Law: &cp}, nil
}

// RemoveLaw repeals a law by name
func (r *Registry) RemoveLaw(ctx context.Context, input RemoveLawInput) (*RemoveLawOutput, error) {
	_, err := r.mutate(ctx, input.ID, func(e *entities.Empire) error {
		if err := r.requirePermission(ctx, e, input.ActorID, entities.PermissionManageLaws); err != nil {
			return err
		}
		if _, ok := e.Laws[input.Name]; !ok {
			return errors.NotFoundf("law %q not found in %s", input.Name, e.Name)
		}

		delete(e.Laws, input.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RemoveLawOutput{}, nil
}

// Laws returns the law ledger sorted by name
func (r *Registry) Laws(ctx context.Context, input LawsInput) (*LawsOutput, error) {
	e, err := r.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	out := &LawsOutput{Laws: make([]*entities.Law, 0, len(e.Laws))}
	for _, law := range e.Laws {
		out.Laws = append(out.Laws, law)
	}
	sort.Slice(out.Laws, func(i, j int) bool {
		return out.Laws[i].Name < out.Laws[j].Name
	})
	return out, nil
}
