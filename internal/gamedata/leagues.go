package gamedata

import (
	"sort"

	"splinter-planner/internal/domain"
)

// Leagues is the static rating tier table, lowest tier first. Populated once
// at startup, never mutated.
var Leagues = []domain.League{
	{Name: "Novice", Group: "Novice", MinRating: 0, MinPower: 0},
	{Name: "Bronze III", Group: "Bronze", MinRating: 100, MinPower: 0},
	{Name: "Bronze II", Group: "Bronze", MinRating: 400, MinPower: 1000},
	{Name: "Bronze I", Group: "Bronze", MinRating: 700, MinPower: 5000},
	{Name: "Silver III", Group: "Silver", MinRating: 1000, MinPower: 15000},
	{Name: "Silver II", Group: "Silver", MinRating: 1300, MinPower: 40000},
	{Name: "Silver I", Group: "Silver", MinRating: 1600, MinPower: 70000},
	{Name: "Gold III", Group: "Gold", MinRating: 1900, MinPower: 100000},
	{Name: "Gold II", Group: "Gold", MinRating: 2200, MinPower: 150000},
	{Name: "Gold I", Group: "Gold", MinRating: 2500, MinPower: 200000},
	{Name: "Diamond III", Group: "Diamond", MinRating: 2800, MinPower: 250000},
	{Name: "Diamond II", Group: "Diamond", MinRating: 3100, MinPower: 325000},
	{Name: "Diamond I", Group: "Diamond", MinRating: 3400, MinPower: 400000},
	{Name: "Champion III", Group: "Champion", MinRating: 3700, MinPower: 500000},
	{Name: "Champion II", Group: "Champion", MinRating: 4200, MinPower: 500000},
	{Name: "Champion I", Group: "Champion", MinRating: 4700, MinPower: 500000},
}

// leaguesByRatingDesc is Leagues ordered by MinRating descending, the order
// classification walks in.
var leaguesByRatingDesc = func() []domain.League {
	sorted := make([]domain.League, len(Leagues))
	copy(sorted, Leagues)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinRating > sorted[j].MinRating
	})
	return sorted
}()

// LeagueFor classifies a rating (and optional collection power, <= 0 meaning
// unknown) to a league tier. The highest tier whose thresholds pass wins; a
// rating below every threshold lands in the lowest tier.
func LeagueFor(rating, power int) domain.League {
	for _, league := range leaguesByRatingDesc {
		if rating >= league.MinRating && (power <= 0 || power >= league.MinPower) {
			return league
		}
	}
	return leaguesByRatingDesc[len(leaguesByRatingDesc)-1]
}

// LeagueNameFor is LeagueFor reduced to the tier name.
func LeagueNameFor(rating, power int) string {
	return LeagueFor(rating, power).Name
}

// LeagueGroupFor maps a full tier name ("Gold III") to its group ("Gold").
// Unknown names map to the empty string.
func LeagueGroupFor(name string) string {
	for _, league := range Leagues {
		if league.Name == name {
			return league.Group
		}
	}
	return ""
}

// LeagueRank returns the position of a tier name in ascending tier order,
// -1 for unknown names.
func LeagueRank(name string) int {
	for i, league := range Leagues {
		if league.Name == name {
			return i
		}
	}
	return -1
}
