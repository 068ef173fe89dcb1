package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"splinter-planner/internal/constants"
	"splinter-planner/internal/domain"
)

// DecksService re-values client-held decks against current prices, the
// player's collection and the latest team results.
type DecksService struct {
	results *ResultsService
	market  *MarketService
	player  *PlayerService
	logger  zerolog.Logger
}

func NewDecksService(results *ResultsService, market *MarketService, player *PlayerService, logger zerolog.Logger) *DecksService {
	return &DecksService{results: results, market: market, player: player, logger: logger}
}

// UpdateTeams refreshes price, win rate and battle count on each client deck.
// Decks whose composition has no recorded results keep a nil winpc/battles.
func (s *DecksService) UpdateTeams(ctx context.Context, clientTeams []domain.DeckDocument, form domain.BattleForm, subscribed bool, currency domain.Currency) ([]domain.DeckDocument, error) {
	if form.ManaCap <= 0 {
		return nil, fmt.Errorf("%w: manaCap must be > 0", domain.ErrInvalidArgument)
	}
	if currency.ID == "" {
		currency = domain.Currency{ID: BaseCurrency, Symbol: "$"}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var resultSet *TeamResultsSet
	var cardPrices domain.PriceTable
	var playerCards []domain.PlayerCard
	var conversionRate float64

	g.Go(func() error {
		var err error
		resultSet, err = s.results.GetTeamResults(gCtx, form.ManaCap, form.Ruleset, form.LeagueGroup, subscribed, ViableBattleFloor)
		return err
	})

	g.Go(func() error {
		var err error
		cardPrices, err = s.market.GetMarketPrices(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		conversionRate, err = s.market.GetConversionRate(gCtx, currency.ID)
		return err
	})

	if form.PlayerName != "" {
		g.Go(func() error {
			var err error
			playerCards, err = s.player.GetPlayerCards(gCtx, form.PlayerName)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("mana_cap", form.ManaCap).Msg("failed to fetch deck inputs")
		return nil, err
	}

	resultsByID := make(map[string]domain.TeamResults, len(resultSet.Teams))
	for _, team := range resultSet.Teams {
		resultsByID[team.ID] = team
	}

	owned := OwnedCardSet(playerCards)
	now := time.Now().Unix()

	updated := make([]domain.DeckDocument, len(clientTeams))
	for i, deck := range clientTeams {
		updated[i] = s.updateDeck(deck, resultsByID, cardPrices, owned, conversionRate, currency, now)
	}

	return updated, nil
}

func (s *DecksService) updateDeck(deck domain.DeckDocument, resultsByID map[string]domain.TeamResults, cardPrices domain.PriceTable, owned map[domain.CardKey]bool, conversionRate float64, currency domain.Currency, now int64) domain.DeckDocument {
	monsters := make([]domain.DeckCard, len(deck.Monsters))
	basePrice := 0.0

	for i, monster := range deck.Monsters {
		card := monster
		card.Price = nil
		if price, ok := CardPrice(monster.ID, monster.Level, cardPrices, owned); ok {
			card.Price = &price
			basePrice += price
		}
		monsters[i] = card
	}

	deck.Monsters = monsters
	deck.Price = basePrice * conversionRate
	deck.FiatSymbol = currency.Symbol
	deck.Updated = now
	deck.WinPc = nil
	deck.Battles = nil

	if result, ok := resultsByID[deck.ID]; ok && result.Battles > 0 {
		winPc := float64(result.Wins) * 100 / float64(result.Battles)
		battles := result.Battles
		deck.WinPc = &winPc
		deck.Battles = &battles
	}

	return deck
}
