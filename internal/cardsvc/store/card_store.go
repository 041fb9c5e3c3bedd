package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nexcard/ecard-services/internal/cardsvc/models"
)

const (
	ownerFilePrefix = "ecards_admin_"
	ownerFileSuffix = ".json"
)

// CardStore persists one record set per admin owner as a flat JSON
// file under dataDir. Writes for the same owner are serialized by a
// per-owner mutex so concurrent updates cannot drop records.
type CardStore struct {
	dataDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCardStore(dataDir string) (*CardStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}

	return &CardStore{
		dataDir: dataDir,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

func (s *CardStore) fileForOwner(ownerID string) string {
	return filepath.Join(s.dataDir, ownerFilePrefix+ownerID+ownerFileSuffix)
}

func (s *CardStore) ownerLock(ownerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[ownerID] = l
	}
	return l
}

// read loads the owner's record set without locking. An unknown owner
// gets an empty record set file created rather than an error.
func (s *CardStore) read(ownerID string) ([]models.Card, error) {
	path := s.fileForOwner(ownerID)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(path, []byte("[]"), 0644); werr != nil {
			return nil, fmt.Errorf("failed to init record set for owner %s: %w", ownerID, werr)
		}
		return []models.Card{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record set for owner %s: %w", ownerID, err)
	}

	var cards []models.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode record set for owner %s: %w", ownerID, err)
	}
	if cards == nil {
		cards = []models.Card{}
	}

	return cards, nil
}

// write overwrites the owner's whole record set without locking.
func (s *CardStore) write(ownerID string, cards []models.Card) error {
	raw, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record set for owner %s: %w", ownerID, err)
	}

	if err := os.WriteFile(s.fileForOwner(ownerID), raw, 0644); err != nil {
		return fmt.Errorf("failed to write record set for owner %s: %w", ownerID, err)
	}
	return nil
}

func (s *CardStore) Load(ctx context.Context, ownerID string) ([]models.Card, error) {
	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	return s.read(ownerID)
}

func (s *CardStore) Save(ctx context.Context, ownerID string, cards []models.Card) error {
	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	return s.write(ownerID, cards)
}

// Mutate runs fn over the owner's record set and persists the result,
// holding the owner lock across the whole read-modify-write.
func (s *CardStore) Mutate(ctx context.Context, ownerID string, fn func([]models.Card) ([]models.Card, error)) error {
	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	cards, err := s.read(ownerID)
	if err != nil {
		return err
	}

	cards, err = fn(cards)
	if err != nil {
		return err
	}

	return s.write(ownerID, cards)
}

// Owners lists every admin id that has a record set file, for lookups
// that span all owners (public slug resolution).
func (s *CardStore) Owners(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data dir: %w", err)
	}

	owners := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, ownerFilePrefix) || !strings.HasSuffix(name, ownerFileSuffix) {
			continue
		}
		owner := strings.TrimSuffix(strings.TrimPrefix(name, ownerFilePrefix), ownerFileSuffix)
		if owner != "" {
			owners = append(owners, owner)
		}
	}

	return owners, nil
}
