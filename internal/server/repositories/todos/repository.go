package todos

import (
	"context"

	"taskkeeper/internal/server/models"
)

type Repository interface {
	// All returns a snapshot of every record in the store.
	All(ctx context.Context) ([]*models.TodoItem, error)

	// GetByID is owner-scoped: it returns the record only when it exists and
	// belongs to userID, otherwise common.ErrorNotFound.
	GetByID(ctx context.Context, id int, userID string) (*models.TodoItem, error)

	// Create assigns the next id and the creation timestamp. An item without
	// an owner yields common.ErrValidation.
	Create(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error)

	// Update merges patch into the matching owned record; it reports false
	// when no record matches id and userID.
	Update(ctx context.Context, id int, patch *models.TodoItem, userID string) (bool, error)

	// MarkCompleted sets completed on the matching owned record and returns it.
	MarkCompleted(ctx context.Context, id int, userID string) (*models.TodoItem, error)

	// Delete removes the matching owned record. DeleteAny matches by id alone
	// and trusts its caller to have checked privileges.
	Delete(ctx context.Context, id int, userID string) (bool, error)
	DeleteAny(ctx context.Context, id int) (bool, error)
}
