package domain

import (
	"encoding/json"
	"time"
)

// Battle is one completed ranked match as stored by the battle repository.
// It is immutable once ingested; the aggregation only reads it.
type Battle struct {
	ID          string
	BlockNumber int64
	Timestamp   int64
	ManaCap     int
	Ruleset     string
	LeagueName  string
	LeagueGroup string
	Winner      string
	Loser       string
	Players     []BattlePlayer
	Team1       BattleTeam
	Team2       BattleTeam
}

type BattlePlayer struct {
	Name          string `json:"name"`
	InitialRating int    `json:"initial_rating"`
}

// BattleTeam is the snapshot of one side of a battle. Monster order is the
// order the team was fielded in and must survive aggregation.
type BattleTeam struct {
	Player   string         `json:"player"`
	Summoner CardInstance   `json:"summoner"`
	Monsters []CardInstance `json:"monsters"`
}

type CardInstance struct {
	CardDetailID int `json:"card_detail_id"`
	Level        int `json:"level"`
}

// Transaction is one raw upstream transaction that may carry a battle result
// payload in Result.
type Transaction struct {
	ID          string    `json:"id"`
	BlockNum    int64     `json:"block_num"`
	Type        string    `json:"type"`
	Player      string    `json:"player"`
	Success     bool      `json:"success"`
	CreatedDate time.Time `json:"created_date"`
	Result      string    `json:"result"`
}

// TeamResults is the per-composition aggregate built during one aggregation
// run. It is never persisted.
type TeamResults struct {
	ID       string     `json:"id"`
	Battles  int        `json:"battles"`
	Wins     int        `json:"wins"`
	Summoner TeamCard   `json:"summoner"`
	Monsters []TeamCard `json:"monsters"`
}

// TeamCard is one resolved team member: the card's catalog identity plus the
// level it was fielded at and its mana cost at that level.
type TeamCard struct {
	CardDetailID int    `json:"cardDetailId"`
	Name         string `json:"name"`
	Splinter     string `json:"splinter"`
	Edition      string `json:"edition"`
	Level        int    `json:"level"`
	Mana         int    `json:"mana"`
}

// CardDetail is one entry of the upstream card catalog.
type CardDetail struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Color        string             `json:"color"`
	Rarity       int                `json:"rarity"`
	Type         string             `json:"type"`
	Stats        CardStats          `json:"stats"`
	Distribution []CardDistribution `json:"distribution"`
}

type CardStats struct {
	Mana ManaValue `json:"mana"`
}

type CardDistribution struct {
	Edition int `json:"edition"`
}

// ManaValue is a card's mana cost as delivered by the catalog: either a
// single number or a per-level array indexed by card level.
type ManaValue struct {
	scalar   float64
	perLevel []float64
	isArray  bool
}

func (m *ManaValue) UnmarshalJSON(data []byte) error {
	var levels []float64
	if err := json.Unmarshal(data, &levels); err == nil {
		m.perLevel = levels
		m.isArray = true
		return nil
	}

	var scalar float64
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	m.scalar = scalar
	m.isArray = false
	return nil
}

func (m ManaValue) MarshalJSON() ([]byte, error) {
	if m.isArray {
		return json.Marshal(m.perLevel)
	}
	return json.Marshal(m.scalar)
}

// AtLevel resolves the mana cost for a card fielded at the given level. A
// scalar applies to every level; an array is indexed by level, clamped to its
// bounds.
func (m ManaValue) AtLevel(level int) int {
	if !m.isArray {
		return int(m.scalar)
	}
	if len(m.perLevel) == 0 {
		return 0
	}
	idx := level
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.perLevel) {
		idx = len(m.perLevel) - 1
	}
	return int(m.perLevel[idx])
}

// ScalarMana builds a fixed mana value.
func ScalarMana(v int) ManaValue {
	return ManaValue{scalar: float64(v)}
}

// PerLevelMana builds a per-level mana value.
func PerLevelMana(levels ...float64) ManaValue {
	return ManaValue{perLevel: levels, isArray: true}
}

// PlayerCard is one card of a player's collection, including synthesized
// level-1 starter cards.
type PlayerCard struct {
	CardDetailID int    `json:"card_detail_id"`
	Level        int    `json:"level"`
	Edition      int    `json:"edition"`
	Gold         bool   `json:"gold"`
	XP           int    `json:"xp"`
	Player       string `json:"player"`
	UID          string `json:"uid"`
}

// CardKey identifies a card at a specific level, the granularity at which
// prices and ownership are tracked.
type CardKey struct {
	CardDetailID int
	Level        int
}

// PriceTable maps card id (string) to level (string) to the current unit
// price in the base currency. It reflects live market state and is never
// cached beyond one request.
type PriceTable map[string]map[string]float64

// League is one static rating tier.
type League struct {
	Name      string `json:"name"`
	Group     string `json:"group"`
	MinRating int    `json:"min_rating"`
	MinPower  int    `json:"min_power"`
}

// Ruleset is one named battle rule modifier.
type Ruleset struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Currency is the caller-selected display currency.
type Currency struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// BattleForm carries the filter parameters of a planner or deck request.
type BattleForm struct {
	PlayerName  string `json:"playerName"`
	ManaCap     int    `json:"manaCap"`
	Ruleset     string `json:"ruleset"`
	LeagueGroup string `json:"leagueGroup"`
}
