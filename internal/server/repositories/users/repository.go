package users

import (
	"context"

	"taskkeeper/internal/server/models"
)

type Repository interface {
	// GetByUsername returns the account with the exact (case-sensitive)
	// username, or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// Create hashes the password and stores a new account with no active
	// refresh token. A taken username yields common.ErrAlreadyExists.
	Create(ctx context.Context, username, password, role string) (*models.Account, error)

	// Save persists the account's current refresh token. Saving an account
	// that no longer exists in the store is a silent no-op (best effort).
	Save(ctx context.Context, account *models.Account) error
}
