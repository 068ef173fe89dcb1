package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"splinter-planner/internal/constants"
	"splinter-planner/internal/domain"
	"splinter-planner/internal/game"
)

// BattleStore supplies raw battles filtered by mana cap, ruleset, league
// group and a minimum timestamp.
type BattleStore interface {
	FindByManaCap(ctx context.Context, manaCap int, ruleset, leagueGroup string, since int64) ([]domain.Battle, error)
}

// CardSource supplies the full card catalog.
type CardSource interface {
	CardDetails(ctx context.Context) ([]domain.CardDetail, error)
}

// TeamResultsSet is the outcome of one aggregation run: the per-composition
// aggregates plus the raw battles they were folded from.
type TeamResultsSet struct {
	Teams   []domain.TeamResults `json:"teams"`
	Battles []domain.Battle      `json:"battles"`
}

// ResultsService folds raw battles into per-composition win/battle tallies.
type ResultsService struct {
	battles BattleStore
	cards   CardSource
	logger  zerolog.Logger
}

func NewResultsService(battles BattleStore, cards CardSource, logger zerolog.Logger) *ResultsService {
	return &ResultsService{battles: battles, cards: cards, logger: logger}
}

// GetTeamResults aggregates battles matching the filters into team results.
// Non-subscribed callers only see the last day of battles; minBattles is an
// exclusive lower bound on a composition's battle count (0 keeps everything).
func (s *ResultsService) GetTeamResults(ctx context.Context, manaCap int, ruleset, leagueGroup string, subscribed bool, minBattles int) (*TeamResultsSet, error) {
	if manaCap <= 0 {
		return nil, fmt.Errorf("%w: manaCap must be > 0", domain.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var fetchSince int64
	if !subscribed {
		fetchSince = time.Now().AddDate(0, 0, -constants.FreeFetchDays).Unix()
	}

	// The battle fetch and the catalog fetch are independent.
	g, gCtx := errgroup.WithContext(ctx)
	var battles []domain.Battle
	var allCards []domain.CardDetail

	g.Go(func() error {
		var err error
		battles, err = s.battles.FindByManaCap(gCtx, manaCap, ruleset, leagueGroup, fetchSince)
		return err
	})

	g.Go(func() error {
		var err error
		allCards, err = s.cards.CardDetails(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("mana_cap", manaCap).Msg("failed to fetch aggregation inputs")
		return nil, fmt.Errorf("failed to fetch aggregation inputs: %w", err)
	}

	catalog := make(map[int]domain.CardDetail, len(allCards))
	for _, card := range allCards {
		catalog[card.ID] = card
	}

	viableTeams := make(map[string]*domain.TeamResults)
	skipped := 0

	for _, battle := range battles {
		winner, loser, ok := game.WinnerAndLoser(battle)
		if !ok {
			skipped++
			continue
		}

		if err := s.updateResultsWith(viableTeams, winner, catalog, true); err != nil {
			return nil, err
		}
		if err := s.updateResultsWith(viableTeams, loser, catalog, false); err != nil {
			return nil, err
		}
	}

	teams := make([]domain.TeamResults, 0, len(viableTeams))
	for _, team := range viableTeams {
		if team.Battles > minBattles {
			teams = append(teams, *team)
		}
	}

	s.logger.Debug().
		Int("mana_cap", manaCap).
		Str("ruleset", ruleset).
		Str("league_group", leagueGroup).
		Int("battle_count", len(battles)).
		Int("skipped", skipped).
		Int("team_count", len(teams)).
		Msg("team results computed")

	return &TeamResultsSet{Teams: teams, Battles: battles}, nil
}

func (s *ResultsService) updateResultsWith(viableTeams map[string]*domain.TeamResults, team domain.BattleTeam, catalog map[int]domain.CardDetail, win bool) error {
	id := game.TeamIdentity(team)

	viableTeam, ok := viableTeams[id]
	if !ok {
		created, err := s.createTeamResults(id, team, catalog)
		if err != nil {
			return err
		}
		viableTeam = created
		viableTeams[id] = viableTeam
	}

	if win {
		viableTeam.Wins++
	}
	viableTeam.Battles++

	return nil
}

func (s *ResultsService) createTeamResults(teamID string, team domain.BattleTeam, catalog map[int]domain.CardDetail) (*domain.TeamResults, error) {
	summoner, err := resolveTeamCard(team.Summoner, catalog)
	if err != nil {
		return nil, err
	}

	// Monster order stays the fielded order even though the identity is
	// order-independent.
	monsters := make([]domain.TeamCard, len(team.Monsters))
	for i, monster := range team.Monsters {
		resolved, err := resolveTeamCard(monster, catalog)
		if err != nil {
			return nil, err
		}
		monsters[i] = resolved
	}

	return &domain.TeamResults{
		ID:       teamID,
		Summoner: summoner,
		Monsters: monsters,
	}, nil
}

// resolveTeamCard joins one fielded card against the catalog. Mana is
// resolved at the member's own level.
func resolveTeamCard(instance domain.CardInstance, catalog map[int]domain.CardDetail) (domain.TeamCard, error) {
	card, ok := catalog[instance.CardDetailID]
	if !ok {
		return domain.TeamCard{}, fmt.Errorf("%w: card_detail_id %d", domain.ErrCardNotFound, instance.CardDetailID)
	}

	edition := ""
	if len(card.Distribution) > 0 {
		edition = game.EditionName(card.Distribution[0].Edition)
	}

	return domain.TeamCard{
		CardDetailID: card.ID,
		Name:         card.Name,
		Splinter:     game.SplinterFromColor(card.Color),
		Edition:      edition,
		Level:        instance.Level,
		Mana:         card.Stats.Mana.AtLevel(instance.Level),
	}, nil
}
