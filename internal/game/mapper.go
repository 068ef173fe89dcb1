package game

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"splinter-planner/internal/domain"
	"splinter-planner/internal/gamedata"
)

// TeamID derives the stable identity of a team composition: the summoner id
// followed by the monster ids sorted ascending, '|'-joined. Monster order in
// the source battle does not affect the identity.
func TeamID(summonerID int, monsterIDs []int) string {
	sorted := make([]int, len(monsterIDs))
	copy(sorted, monsterIDs)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted)+1)
	parts = append(parts, strconv.Itoa(summonerID))
	for _, id := range sorted {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, "|")
}

// TeamIdentity is TeamID applied to a battle team snapshot.
func TeamIdentity(team domain.BattleTeam) string {
	ids := make([]int, len(team.Monsters))
	for i, monster := range team.Monsters {
		ids[i] = monster.CardDetailID
	}
	return TeamID(team.Summoner.CardDetailID, ids)
}

// WinnerAndLoser splits a battle into its winning and losing side. ok is
// false when the recorded winner matches neither team, which marks the
// battle as malformed.
func WinnerAndLoser(battle domain.Battle) (winner, loser domain.BattleTeam, ok bool) {
	switch battle.Winner {
	case battle.Team1.Player:
		return battle.Team1, battle.Team2, true
	case battle.Team2.Player:
		return battle.Team2, battle.Team1, true
	default:
		return domain.BattleTeam{}, domain.BattleTeam{}, false
	}
}

// SplinterFromColor maps the catalog's raw color attribute to the splinter
// element name.
func SplinterFromColor(color string) string {
	switch color {
	case "Red":
		return "Fire"
	case "Blue":
		return "Water"
	case "Green":
		return "Earth"
	case "White":
		return "Life"
	case "Black":
		return "Death"
	case "Gold":
		return "Dragon"
	case "Gray":
		return "Neutral"
	default:
		return "Unknown"
	}
}

// RarityName maps the catalog's numeric rarity to its display name.
func RarityName(rarity int) string {
	switch rarity {
	case 1:
		return "Common"
	case 2:
		return "Rare"
	case 3:
		return "Epic"
	case 4:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// EditionName maps the catalog's edition index to its display name.
func EditionName(edition int) string {
	switch edition {
	case 0:
		return "Alpha"
	case 1:
		return "Beta"
	case 2:
		return "Promo"
	case 3:
		return "Reward"
	case 4:
		return "Untamed"
	case 5:
		return "Dice"
	case 7:
		return "Chaos"
	default:
		return "Unknown"
	}
}

// battleResult is the JSON payload embedded in a battle transaction.
type battleResult struct {
	ID      string                `json:"id"`
	ManaCap int                   `json:"mana_cap"`
	Ruleset string                `json:"ruleset"`
	Winner  string                `json:"winner"`
	Players []domain.BattlePlayer `json:"players"`
	Details battleDetails         `json:"details"`
}

type battleDetails struct {
	Type  string             `json:"type"`
	Team1 *domain.BattleTeam `json:"team1"`
	Team2 *domain.BattleTeam `json:"team2"`
}

// BattleFromTransaction parses one upstream transaction into a battle.
// It returns nil for records that carry no usable skill signal: failed
// transactions, unparseable results, surrenders, and payloads missing a team
// snapshot. These are expected in the data source and skipped silently.
func BattleFromTransaction(tx domain.Transaction) *domain.Battle {
	if !tx.Success || tx.Result == "" {
		return nil
	}

	var result battleResult
	if err := json.Unmarshal([]byte(tx.Result), &result); err != nil {
		return nil
	}

	if result.Details.Type == "Surrender" {
		return nil
	}
	if result.Details.Team1 == nil || result.Details.Team2 == nil {
		return nil
	}

	loser := result.Details.Team2.Player
	if result.Winner == result.Details.Team2.Player {
		loser = result.Details.Team1.Player
	}

	leagueName := ""
	if len(result.Players) > 0 {
		leagueName = gamedata.LeagueNameFor(result.Players[0].InitialRating, 0)
	}

	return &domain.Battle{
		ID:          result.ID,
		BlockNumber: tx.BlockNum,
		Timestamp:   tx.CreatedDate.Unix(),
		ManaCap:     result.ManaCap,
		Ruleset:     result.Ruleset,
		LeagueName:  leagueName,
		LeagueGroup: gamedata.LeagueGroupFor(leagueName),
		Winner:      result.Winner,
		Loser:       loser,
		Players:     result.Players,
		Team1:       *result.Details.Team1,
		Team2:       *result.Details.Team2,
	}
}

// BattlesFromTransactions maps a transaction batch, dropping skipped records.
func BattlesFromTransactions(txs []domain.Transaction) []domain.Battle {
	battles := make([]domain.Battle, 0, len(txs))
	for _, tx := range txs {
		if battle := BattleFromTransaction(tx); battle != nil {
			battles = append(battles, *battle)
		}
	}
	return battles
}
