// Package catalog serves the immutable card catalog from embedded JSON.
package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/randomtoy/arcana-go/internal/domain"
)

//go:embed data/*.json
var deckFS embed.FS

// registry maps deck IDs to their JSON filenames inside data/.
var registry = map[string]string{
	"rider_waite": "data/rider_waite.json",
}

// DefaultDeckID is used when a caller does not name a deck.
const DefaultDeckID = "rider_waite"

// EmbeddedStore loads decks from embedded JSON files and indexes every
// card by ID for catalog lookups.
type EmbeddedStore struct {
	once  sync.Once
	decks map[string][]domain.Card
	index map[string]domain.Card
	err   error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	s.decks = make(map[string][]domain.Card, len(registry))
	s.index = make(map[string]domain.Card)
	for id, filename := range registry {
		raw, err := deckFS.ReadFile(filename)
		if err != nil {
			s.err = fmt.Errorf("read embedded deck %s: %w", id, err)
			return
		}
		var cards []domain.Card
		if err := json.Unmarshal(raw, &cards); err != nil {
			s.err = fmt.Errorf("parse embedded deck %s: %w", id, err)
			return
		}
		s.decks[id] = cards
		for _, c := range cards {
			s.index[c.ID] = c
		}
	}
}

func (s *EmbeddedStore) GetCard(_ context.Context, cardID string) (domain.Card, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Card{}, s.err
	}
	card, ok := s.index[cardID]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: %s", domain.ErrCardNotFound, cardID)
	}
	return card, nil
}

func (s *EmbeddedStore) GetDeck(_ context.Context, deckID string) ([]domain.Card, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	deck, ok := s.decks[deckID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeckNotFound, deckID)
	}
	return deck, nil
}
