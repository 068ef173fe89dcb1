package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"splinter-planner/internal/domain"
	"splinter-planner/internal/gamedata"
)

// CollectionSource supplies a player's raw card collection.
type CollectionSource interface {
	PlayerCollection(ctx context.Context, player string) ([]domain.PlayerCard, error)
}

// PlayerService resolves player collections, padding them with the starter
// cards every player can field.
type PlayerService struct {
	collection CollectionSource
	cards      CardSource
	logger     zerolog.Logger
}

func NewPlayerService(collection CollectionSource, cards CardSource, logger zerolog.Logger) *PlayerService {
	return &PlayerService{collection: collection, cards: cards, logger: logger}
}

// GetPlayerCards returns the cards a player can field: the owned collection
// plus a synthesized level-1 copy of every starter card the collection does
// not already supersede with an upgraded copy.
func (s *PlayerService) GetPlayerCards(ctx context.Context, playerName string) ([]domain.PlayerCard, error) {
	if playerName == "" {
		return nil, fmt.Errorf("%w: playerName is required", domain.ErrInvalidArgument)
	}

	owned, err := s.collection.PlayerCollection(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection: %w", err)
	}

	allCards, err := s.cards.CardDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card details: %w", err)
	}

	catalog := make(map[int]domain.CardDetail, len(allCards))
	for _, card := range allCards {
		catalog[card.ID] = card
	}

	byDetailID := make(map[int]domain.PlayerCard, len(owned))
	for _, card := range owned {
		if _, seen := byDetailID[card.CardDetailID]; !seen {
			byDetailID[card.CardDetailID] = card
		}
	}

	playerCards := make([]domain.PlayerCard, 0, len(byDetailID)+len(gamedata.BaseCardIDs))
	for _, card := range byDetailID {
		playerCards = append(playerCards, card)
	}

	synthesized := 0
	for _, baseID := range gamedata.BaseCardIDs {
		if _, ok := byDetailID[baseID]; ok {
			continue
		}

		baseCard, ok := catalog[baseID]
		if !ok {
			return nil, fmt.Errorf("%w: base card_detail_id %d", domain.ErrCardNotFound, baseID)
		}

		edition := 0
		if len(baseCard.Distribution) > 0 {
			edition = baseCard.Distribution[0].Edition
		}

		playerCards = append(playerCards, domain.PlayerCard{
			CardDetailID: baseID,
			Level:        1,
			Edition:      edition,
			Gold:         false,
			XP:           1,
			Player:       playerName,
			UID:          fmt.Sprintf("starter-%d", baseID),
		})
		synthesized++
	}

	s.logger.Debug().
		Str("player", playerName).
		Int("owned", len(owned)).
		Int("synthesized", synthesized).
		Msg("player cards resolved")

	return playerCards, nil
}

// OwnedCardSet reduces a card list to the (card, level) set ownership checks
// key on.
func OwnedCardSet(cards []domain.PlayerCard) map[domain.CardKey]bool {
	owned := make(map[domain.CardKey]bool, len(cards))
	for _, card := range cards {
		owned[domain.CardKey{CardDetailID: card.CardDetailID, Level: card.Level}] = true
	}
	return owned
}
