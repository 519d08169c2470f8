package service

import (
	"context"
	"errors"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// maxSaveAttempts bounds the reload-and-reapply loop on version conflicts.
const maxSaveAttempts = 3

// mutateUser applies mutate to a copy of user and saves it once, returning the
// saved copy. user itself is never modified. When the save loses a version
// race the user is reloaded and mutate runs again on the fresh copy. mutate
// must only touch the aggregate it is given and reset any state it captures,
// since it may run more than once. An error from mutate aborts without saving.
func mutateUser(
	ctx context.Context,
	repo ports.UserRepository,
	user *domain.User,
	mutate func(u *domain.User) error,
) (*domain.User, error) {
	current := user.Clone()
	for attempt := 1; ; attempt++ {
		if err := mutate(current); err != nil {
			return nil, err
		}

		err := repo.Save(ctx, current)
		if err == nil {
			return current, nil
		}
		if !errors.Is(err, domain.ErrConcurrentUpdate) || attempt == maxSaveAttempts {
			return nil, err
		}

		current, err = repo.FindByID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}
}
