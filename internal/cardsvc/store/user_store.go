package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nexcard/ecard-services/internal/cardsvc/models"
)

const usersFile = "users.json"

// UserStore persists every account in a single JSON file under
// dataDir, guarded by one mutex.
type UserStore struct {
	dataDir string
	mu      sync.Mutex
}

func NewUserStore(dataDir string) (*UserStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}

	return &UserStore{dataDir: dataDir}, nil
}

func (s *UserStore) path() string {
	return filepath.Join(s.dataDir, usersFile)
}

func (s *UserStore) read() ([]models.User, error) {
	raw, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		if werr := os.WriteFile(s.path(), []byte("[]"), 0644); werr != nil {
			return nil, fmt.Errorf("failed to init users file: %w", werr)
		}
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users file: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

func (s *UserStore) write(users []models.User) error {
	raw, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users file: %w", err)
	}

	if err := os.WriteFile(s.path(), raw, 0644); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return nil
}

func (s *UserStore) Load(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *UserStore) Save(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(users)
}

// Mutate runs fn over the account list and persists the result under
// the store mutex.
func (s *UserStore) Mutate(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return err
	}

	users, err = fn(users)
	if err != nil {
		return err
	}

	return s.write(users)
}
