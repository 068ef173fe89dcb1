package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"splinter-planner/internal/constants"
	"splinter-planner/internal/domain"
)

// ViableBattleFloor is the exclusive battle-count bound below which a
// composition is statistically insignificant and hidden from planner views.
const ViableBattleFloor = 5

const cardArtBaseURL = "https://d36mxiodymuqjm.cloudfront.net"

// PlannerResult is a planner compose response: the priced documents plus the
// raw battles behind them.
type PlannerResult struct {
	PlannerDocuments []domain.PlannerDocument `json:"plannerDocuments"`
	Battles          []domain.Battle          `json:"battles"`
}

// PlannerService assembles priced planner documents from aggregated team
// results, current market prices and the player's collection.
type PlannerService struct {
	results *ResultsService
	market  *MarketService
	player  *PlayerService
	logger  zerolog.Logger
}

func NewPlannerService(results *ResultsService, market *MarketService, player *PlayerService, logger zerolog.Logger) *PlannerService {
	return &PlannerService{results: results, market: market, player: player, logger: logger}
}

// GetPlannerDocuments computes viable teams for the filter form and prices
// each one in the requested currency, excluding cards the player owns.
func (s *PlannerService) GetPlannerDocuments(ctx context.Context, form domain.BattleForm, subscribed bool, currency domain.Currency) (*PlannerResult, error) {
	if form.ManaCap <= 0 {
		return nil, fmt.Errorf("%w: manaCap must be > 0", domain.ErrInvalidArgument)
	}
	if currency.ID == "" {
		currency = domain.Currency{ID: BaseCurrency, Symbol: "$"}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	// The four inputs are independent; only the composition below needs
	// all of them.
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
		s.logger.Error().Err(err).Int("mana_cap", form.ManaCap).Msg("failed to fetch planner inputs")
		return nil, err
	}

	owned := OwnedCardSet(playerCards)
	now := time.Now().Unix()

	documents := make([]domain.PlannerDocument, 0, len(resultSet.Teams))
	for _, team := range resultSet.Teams {
		documents = append(documents, composeDocument(team, cardPrices, owned, conversionRate, currency, now))
	}

	s.logger.Debug().
		Int("document_count", len(documents)).
		Str("currency", currency.ID).
		Msg("planner documents composed")

	return &PlannerResult{PlannerDocuments: documents, Battles: resultSet.Battles}, nil
}

func composeDocument(team domain.TeamResults, cardPrices domain.PriceTable, owned map[domain.CardKey]bool, conversionRate float64, currency domain.Currency, now int64) domain.PlannerDocument {
	mana := team.Summoner.Mana
	for _, monster := range team.Monsters {
		mana += monster.Mana
	}

	cards := make([]domain.DocumentCard, 0, len(team.Monsters)+1)
	cards = append(cards, documentCard(team.Summoner, "Summoner", cardPrices, owned, currency))
	for _, monster := range team.Monsters {
		cards = append(cards, documentCard(monster, "Monster", cardPrices, owned, currency))
	}

	// Members are summed in the base currency; the conversion rate is
	// applied once to the total.
	basePrice := 0.0
	for _, card := range cards {
		if card.Price != nil {
			basePrice += *card.Price
		}
	}
	price := basePrice * conversionRate

	owns := "No"
	if basePrice == 0 {
		owns = "Yes"
	}

	return domain.PlannerDocument{
		ID:              team.ID,
		Updated:         now,
		Battles:         team.Battles,
		Wins:            team.Wins,
		WinPc:           float64(team.Wins) * 100 / float64(team.Battles),
		Mana:            mana,
		MonsterCount:    len(team.Monsters),
		Monsters:        cards,
		Owned:           owns,
		Price:           price,
		FiatSymbol:      currency.Symbol,
		Splinter:        team.Summoner.Splinter,
		SplinterIcon:    fmt.Sprintf("%s/website/icons/icon-element-%s-2.svg", cardArtBaseURL, strings.ToLower(team.Summoner.Splinter)),
		SummonerName:    team.Summoner.Name,
		SummonerIcon:    fmt.Sprintf("%s/card_art/%s.png", cardArtBaseURL, team.Summoner.Name),
		SummonerCard:    fmt.Sprintf("%s/cards_by_level/%s/%s_lv%d.png", cardArtBaseURL, strings.ToLower(team.Summoner.Edition), team.Summoner.Name, team.Summoner.Level),
		SummonerEdition: team.Summoner.Edition,
	}
}

func documentCard(member domain.TeamCard, cardType string, cardPrices domain.PriceTable, owned map[domain.CardKey]bool, currency domain.Currency) domain.DocumentCard {
	card := domain.DocumentCard{
		ID:         member.CardDetailID,
		Name:       member.Name,
		Type:       cardType,
		Level:      member.Level,
		Mana:       member.Mana,
		Splinter:   member.Splinter,
		Edition:    member.Edition,
		Icon:       fmt.Sprintf("%s/card_art/%s.png", cardArtBaseURL, member.Name),
		FiatSymbol: currency.Symbol,
	}

	if price, ok := CardPrice(member.CardDetailID, member.Level, cardPrices, owned); ok {
		card.Price = &price
	}

	return card
}
