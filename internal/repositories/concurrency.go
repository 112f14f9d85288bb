package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/utils"
)

// maxUpdateAttempts bounds the optimistic-lock retry loop.
const maxUpdateAttempts = 3

/*
UpdateWithRetry runs a read-mutate-update loop with optimistic locking
against a single account record.

Returns utils.ErrNotFound when the account does not exist, any error the
mutate callback produced unchanged, and utils.ErrRowVersionConflict when
every attempt lost the conditional write.
*/
func UpdateWithRetry(
	ctx context.Context,
	store AccountStore,
	id uuid.UUID,
	mutate func(*models.Account) error,
) error {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := store.Get(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return utils.ErrNotFound
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return err
		}

		ok, err := store.UpdateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		// someone else updated first – retry
	}
	return utils.ErrRowVersionConflict
}
