// Package users stores accounts in a single JSON file. Every operation loads
// the whole collection and mutations rewrite the file in full; the store is
// small and single-writer, so no partial-write protocol is needed.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"taskkeeper/internal/common"
	"taskkeeper/internal/filex"
	"taskkeeper/internal/server/auth"
	"taskkeeper/internal/server/models"
)

// FileRepository is a JSON-file-backed account store. The mutex serializes
// every read-modify-write cycle; without it concurrent saves could clobber
// each other (last writer wins).
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *FileRepository) Create(_ context.Context, username, password, role string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Username == username {
			return nil, common.ErrAlreadyExists
		}
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: digest,
		Role:         role,
		RefreshToken: nil,
	}

	accounts = append(accounts, account)
	if err := r.save(accounts); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *FileRepository) Save(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return err
	}

	for _, a := range accounts {
		if a.Username == account.Username {
			a.RefreshToken = account.RefreshToken
			return r.save(accounts)
		}
	}

	// account vanished between load and save; documented best-effort no-op
	return nil
}

func (r *FileRepository) load() ([]*models.Account, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*models.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}

	var accounts []*models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.path, err)
	}
	return accounts, nil
}

func (r *FileRepository) save(accounts []*models.Account) error {
	if err := filex.EnsureParentDir(r.path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o600)
}
