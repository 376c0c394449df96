// Package todos stores task records in a single JSON file with the same
// full-load, full-rewrite discipline as the account store.
package todos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"taskkeeper/internal/common"
	"taskkeeper/internal/filex"
	"taskkeeper/internal/server/models"
)

type FileRepository struct {
	mu   sync.Mutex
	path string

	// lastID is the high-water mark of ids handed out during this process
	// lifetime. Keeping it in memory means deleting the record with the
	// highest id still never leads to that id being reused.
	lastID int
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) All(_ context.Context) ([]*models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileRepository) GetByID(_ context.Context, id int, userID string) (*models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	if item := findOwned(items, id, userID); item != nil {
		return item, nil
	}
	return nil, common.ErrorNotFound
}

func (r *FileRepository) Create(_ context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	if item.UserID == "" {
		return nil, common.ErrValidation
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	next := r.lastID
	for _, t := range items {
		if t.ID > next {
			next = t.ID
		}
	}
	next++

	item.ID = next
	item.CreationDate = time.Now()

	items = append(items, item)
	if err := r.save(items); err != nil {
		return nil, err
	}

	r.lastID = next
	return item, nil
}

func (r *FileRepository) Update(_ context.Context, id int, patch *models.TodoItem, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return false, err
	}

	item := findOwned(items, id, userID)
	if item == nil {
		return false, nil
	}

	// last write wins: title only when provided, completed and dueDate always
	if patch.Title != "" {
		item.Title = patch.Title
	}
	item.Completed = patch.Completed
	item.DueDate = patch.DueDate

	if err := r.save(items); err != nil {
		return false, err
	}
	return true, nil
}

func (r *FileRepository) MarkCompleted(_ context.Context, id int, userID string) (*models.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	item := findOwned(items, id, userID)
	if item == nil {
		return nil, common.ErrorNotFound
	}

	item.Completed = true
	if err := r.save(items); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *FileRepository) Delete(_ context.Context, id int, userID string) (bool, error) {
	return r.delete(func(t *models.TodoItem) bool {
		return t.ID == id && t.UserID == userID
	})
}

func (r *FileRepository) DeleteAny(_ context.Context, id int) (bool, error) {
	return r.delete(func(t *models.TodoItem) bool {
		return t.ID == id
	})
}

func (r *FileRepository) delete(match func(*models.TodoItem) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return false, err
	}

	for i, t := range items {
		if match(t) {
			items = append(items[:i], items[i+1:]...)
			if err := r.save(items); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func findOwned(items []*models.TodoItem, id int, userID string) *models.TodoItem {
	for _, t := range items {
		if t.ID == id && t.UserID == userID {
			return t
		}
	}
	return nil
}

func (r *FileRepository) load() ([]*models.TodoItem, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*models.TodoItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	var items []*models.TodoItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.path, err)
	}
	return items, nil
}

func (r *FileRepository) save(items []*models.TodoItem) error {
	if err := filex.EnsureParentDir(r.path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o600)
}
