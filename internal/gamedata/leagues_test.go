package gamedata

import "testing"

func TestLeagueFor_KnownRatings(t *testing.T) {
	cases := []struct {
		rating int
		power  int
		want   string
	}{
		{0, 0, "Novice"},
		{99, 0, "Novice"},
		{100, 0, "Bronze III"},
		{450, 0, "Bronze III"},   // power unknown is not a gate
		{450, 500, "Bronze III"}, // power too low for Bronze II
		{450, 1000, "Bronze II"},
		{2000, 0, "Gold III"},
		{5000, 0, "Champion I"},
		{-50, 0, "Novice"},
	}

	for _, tc := range cases {
		if got := LeagueNameFor(tc.rating, tc.power); got != tc.want {
			t.Errorf("LeagueNameFor(%d, %d) = %q, want %q", tc.rating, tc.power, got, tc.want)
		}
	}
}

func TestLeagueFor_MonotonicInRating(t *testing.T) {
	for _, power := range []int{0, 1000, 100000, 500000} {
		prevRank := -1
		for rating := 0; rating <= 5000; rating += 50 {
			rank := LeagueRank(LeagueNameFor(rating, power))
			if rank < prevRank {
				t.Fatalf("tier rank decreased at rating=%d power=%d: %d -> %d", rating, power, prevRank, rank)
			}
			prevRank = rank
		}
	}
}

func TestLeagueFor_PowerGatesTier(t *testing.T) {
	// Enough rating for Gold III but only Silver III power.
	league := LeagueFor(1900, 15000)
	if league.Name != "Silver III" {
		t.Errorf("LeagueFor(1900, 15000) = %q, want Silver III", league.Name)
	}
}

func TestLeagueGroupFor(t *testing.T) {
	if got := LeagueGroupFor("Gold III"); got != "Gold" {
		t.Errorf("LeagueGroupFor(Gold III) = %q, want Gold", got)
	}
	if got := LeagueGroupFor("nope"); got != "" {
		t.Errorf("LeagueGroupFor(nope) = %q, want empty", got)
	}
}

func TestLeagueRank(t *testing.T) {
	if LeagueRank("Novice") != 0 {
		t.Error("Novice should be rank 0")
	}
	if LeagueRank("Champion I") != len(Leagues)-1 {
		t.Error("Champion I should be the highest rank")
	}
	if LeagueRank("nope") != -1 {
		t.Error("unknown league should be rank -1")
	}
}
