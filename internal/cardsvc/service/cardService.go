package service

import (
	"context"
	"strconv"
	"time"

	"github.com/nexcard/ecard-services/internal/cardsvc/models"
	"github.com/nexcard/ecard-services/internal/cardsvc/store"
)

// CardService struct represents the card service layer
type CardService struct {
	cardStore *store.CardStore
}

// NewCardService creates a new CardService instance
func NewCardService(cardStore *store.CardStore) *CardService {
	return &CardService{
		cardStore: cardStore,
	}
}

// newCardID follows the legacy id scheme: the creation timestamp in
// milliseconds, as a decimal string.
func newCardID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func (s *CardService) List(ctx context.Context, ownerID string) ([]models.Card, error) {
	if ownerID == "" {
		return nil, ValidationError{Field: "ownerId"}
	}
	return s.cardStore.Load(ctx, ownerID)
}

func (s *CardService) Get(ctx context.Context, ownerID, id string) (*models.Card, error) {
	if ownerID == "" {
		return nil, ValidationError{Field: "ownerId"}
	}

	cards, err := s.cardStore.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range cards {
		if cards[i].ID == id {
			return &cards[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upsert creates the card when it carries no id, otherwise replaces
// the record with the matching id wholesale. The saved card is
// returned so the caller sees the assigned id and derived slug.
func (s *CardService) Upsert(ctx context.Context, ownerID string, card models.Card) (*models.Card, error) {
	if ownerID == "" {
		return nil, ValidationError{Field: "ownerId"}
	}

	if card.Services == nil {
		card.Services = models.ServiceList{}
	}
	if card.Testimonials == nil {
		card.Testimonials = models.TestimonialList{}
	}
	// Only named cards get a derived slug; an empty name would make
	// every unnamed card collide on the same public address.
	if card.Slug == "" && card.FullName != "" {
		card.Slug = models.Slugify(card.FullName)
	}

	err := s.cardStore.Mutate(ctx, ownerID, func(cards []models.Card) ([]models.Card, error) {
		if card.ID == "" {
			card.ID = newCardID()
			card.CreatedAt = time.Now().UTC()
			return append(cards, card), nil
		}

		for i := range cards {
			if cards[i].ID == card.ID {
				if card.CreatedAt.IsZero() {
					card.CreatedAt = cards[i].CreatedAt
				}
				cards[i] = card
				return cards, nil
			}
		}
		return append(cards, card), nil
	})
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// Delete removes the card with the given id. Deleting an id that is
// not present is not an error; the record set is simply rewritten.
func (s *CardService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ValidationError{Field: "ownerId"}
	}

	return s.cardStore.Mutate(ctx, ownerID, func(cards []models.Card) ([]models.Card, error) {
		kept := cards[:0]
		for _, c := range cards {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		return kept, nil
	})
}

// FindBySlug scans every owner's record set for the public slug.
// Cards persisted before slugs existed are matched on the slug their
// display name derives to.
func (s *CardService) FindBySlug(ctx context.Context, slug string) (*models.Card, error) {
	if slug == "" {
		return nil, ErrNotFound
	}

	owners, err := s.cardStore.Owners(ctx)
	if err != nil {
		return nil, err
	}

	for _, owner := range owners {
		cards, err := s.cardStore.Load(ctx, owner)
		if err != nil {
			return nil, err
		}
		for i := range cards {
			c := &cards[i]
			if c.Slug == slug {
				return c, nil
			}
			if c.Slug == "" && c.FullName != "" && models.Slugify(c.FullName) == slug {
				return c, nil
			}
		}
	}

	return nil, ErrNotFound
}
