package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"splinter-planner/internal/domain"
	"splinter-planner/internal/gamedata"
)

func newTestPlannerService(store *fakeBattleStore, cards *fakeCardSource, prices *fakePriceSource, rates *fakeRateSource, collection *fakeCollectionSource) *PlannerService {
	results := NewResultsService(store, cards, zerolog.Nop())
	market := NewMarketService(prices, rates, zerolog.Nop())
	player := NewPlayerService(collection, cards, zerolog.Nop())
	return NewPlannerService(results, market, player, zerolog.Nop())
}

// plannerCatalog extends testCatalog with the rest of the starter cards so
// collection resolution can synthesize them.
func plannerCatalog() []domain.CardDetail {
	cards := testCatalog()
	known := make(map[int]bool, len(cards))
	for _, card := range cards {
		known[card.ID] = true
	}
	for _, id := range gamedata.BaseCardIDs {
		if known[id] {
			continue
		}
		cards = append(cards, domain.CardDetail{
			ID:           id,
			Color:        "Gray",
			Stats:        domain.CardStats{Mana: domain.ScalarMana(1)},
			Distribution: []domain.CardDistribution{{Edition: 4}},
		})
	}
	return cards
}

// mixedBattles returns wins + losses battles of the same two compositions,
// with alice winning the first wins of them.
func mixedBattles(wins, losses int) []domain.Battle {
	battles := make([]domain.Battle, 0, wins+losses)
	for i := 0; i < wins; i++ {
		battles = append(battles, battleAliceVsBob(fakeBattleID("w", i)))
	}
	for i := 0; i < losses; i++ {
		battle := battleAliceVsBob(fakeBattleID("l", i))
		battle.Winner = "bob"
		battles = append(battles, battle)
	}
	return battles
}

func fakeBattleID(prefix string, n int) string {
	return prefix + "-" + string(rune('a'+n))
}

func documentByID(t *testing.T, docs []domain.PlannerDocument, id string) domain.PlannerDocument {
	t.Helper()
	for _, doc := range docs {
		if doc.ID == id {
			return doc
		}
	}
	t.Fatalf("no document with id %q in %d documents", id, len(docs))
	return domain.PlannerDocument{}
}

func TestGetPlannerDocuments_ComposesAndPrices(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(5, 3)}
	cards := &fakeCardSource{cards: testCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	rates := &fakeRateSource{rate: 2.0}
	svc := newTestPlannerService(store, cards, prices, rates, &fakeCollectionSource{})

	form := domain.BattleForm{ManaCap: 24}
	result, err := svc.GetPlannerDocuments(context.Background(), form, false, domain.Currency{ID: "eur", Symbol: "€"})
	if err != nil {
		t.Fatalf("GetPlannerDocuments failed: %v", err)
	}

	if len(result.PlannerDocuments) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(result.PlannerDocuments))
	}
	if len(result.Battles) != 8 {
		t.Errorf("expected 8 raw battles, got %d", len(result.Battles))
	}

	doc := documentByID(t, result.PlannerDocuments, "135|140|150")
	if doc.Battles != 8 || doc.Wins != 5 {
		t.Errorf("battles/wins = %d/%d, want 8/5", doc.Battles, doc.Wins)
	}
	if doc.WinPc != 62.5 {
		t.Errorf("winpc = %v, want 62.5", doc.WinPc)
	}
	if doc.Mana != 10 {
		t.Errorf("mana = %d, want 3+5+2", doc.Mana)
	}
	if doc.MonsterCount != 2 {
		t.Errorf("monster count = %d, want 2", doc.MonsterCount)
	}
	if len(doc.Monsters) != 3 || doc.Monsters[0].Type != "Summoner" || doc.Monsters[0].ID != 135 {
		t.Errorf("summoner must lead the member list: %+v", doc.Monsters)
	}

	// Members carry base-currency prices; the conversion is applied once to
	// the document total.
	if doc.Monsters[0].Price == nil || *doc.Monsters[0].Price != 9.0 {
		t.Errorf("summoner price = %v, want base 9.0", doc.Monsters[0].Price)
	}
	if doc.Price != (9.0+4.25+0.5)*2.0 {
		t.Errorf("document price = %v, want 27.5", doc.Price)
	}
	if doc.FiatSymbol != "€" {
		t.Errorf("fiat symbol = %q, want €", doc.FiatSymbol)
	}
	if doc.Owned != "No" {
		t.Errorf("owned = %q, want No", doc.Owned)
	}

	if doc.Splinter != "Fire" || doc.SummonerName != "Pyre" {
		t.Errorf("summoner identity not resolved: splinter=%q name=%q", doc.Splinter, doc.SummonerName)
	}

	// The losing composition has no market listings at its levels.
	loser := documentByID(t, result.PlannerDocuments, "136|141")
	if loser.Price != 0 || loser.Owned != "Yes" {
		t.Errorf("unlisted team price=%v owned=%q, want 0/Yes", loser.Price, loser.Owned)
	}
}

func TestGetPlannerDocuments_HidesTeamsBelowViableFloor(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(ViableBattleFloor, 0)}
	cards := &fakeCardSource{cards: testCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	svc := newTestPlannerService(store, cards, prices, &fakeRateSource{rate: 1}, &fakeCollectionSource{})

	form := domain.BattleForm{ManaCap: 24}
	result, err := svc.GetPlannerDocuments(context.Background(), form, false, domain.Currency{ID: "usd", Symbol: "$"})
	if err != nil {
		t.Fatalf("GetPlannerDocuments failed: %v", err)
	}

	// Exactly at the floor is still below the exclusive bound.
	if len(result.PlannerDocuments) != 0 {
		t.Errorf("expected no documents at the floor, got %d", len(result.PlannerDocuments))
	}
	if len(result.Battles) != ViableBattleFloor {
		t.Errorf("raw battles should still be returned, got %d", len(result.Battles))
	}
}

func TestGetPlannerDocuments_ExcludesOwnedCards(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(6, 0)}
	cards := &fakeCardSource{cards: plannerCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	collection := &fakeCollectionSource{cards: []domain.PlayerCard{
		{CardDetailID: 135, Level: 3, UID: "C1-135", Player: "alice"},
	}}
	svc := newTestPlannerService(store, cards, prices, &fakeRateSource{rate: 1}, collection)

	form := domain.BattleForm{ManaCap: 24, PlayerName: "alice"}
	result, err := svc.GetPlannerDocuments(context.Background(), form, false, domain.Currency{ID: "usd", Symbol: "$"})
	if err != nil {
		t.Fatalf("GetPlannerDocuments failed: %v", err)
	}

	// 135 at level 3 is owned outright and 150 at level 1 is a starter; only
	// 140 at level 2 still costs anything.
	doc := documentByID(t, result.PlannerDocuments, "135|140|150")
	if doc.Price != 4.25 {
		t.Errorf("price with owned cards excluded = %v, want 4.25", doc.Price)
	}
	if doc.Owned != "No" {
		t.Errorf("owned = %q, want No while a member is still priced", doc.Owned)
	}
	if doc.Monsters[0].Price != nil {
		t.Errorf("owned summoner should carry no price, got %v", *doc.Monsters[0].Price)
	}
}

func TestGetPlannerDocuments_DefaultsToBaseCurrency(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(6, 0)}
	cards := &fakeCardSource{cards: testCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	rates := &fakeRateSource{rate: 2.0}
	svc := newTestPlannerService(store, cards, prices, rates, &fakeCollectionSource{})

	form := domain.BattleForm{ManaCap: 24}
	result, err := svc.GetPlannerDocuments(context.Background(), form, false, domain.Currency{})
	if err != nil {
		t.Fatalf("GetPlannerDocuments failed: %v", err)
	}

	doc := documentByID(t, result.PlannerDocuments, "135|140|150")
	if doc.FiatSymbol != "$" {
		t.Errorf("fiat symbol = %q, want $", doc.FiatSymbol)
	}
	if doc.Price != 9.0+4.25+0.5 {
		t.Errorf("price = %v, want the base-currency total", doc.Price)
	}
	if rates.calls != 0 {
		t.Errorf("base currency made %d rate lookups, want 0", rates.calls)
	}
}

func TestGetPlannerDocuments_InvalidManaCap(t *testing.T) {
	svc := newTestPlannerService(&fakeBattleStore{}, &fakeCardSource{}, &fakePriceSource{}, &fakeRateSource{}, &fakeCollectionSource{})

	_, err := svc.GetPlannerDocuments(context.Background(), domain.BattleForm{}, false, domain.Currency{})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestGetPlannerDocuments_InputFailureAborts(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(6, 0)}
	cards := &fakeCardSource{cards: testCatalog()}
	prices := &fakePriceSource{err: errors.New("market down")}
	svc := newTestPlannerService(store, cards, prices, &fakeRateSource{rate: 1}, &fakeCollectionSource{})

	form := domain.BattleForm{ManaCap: 24}
	if _, err := svc.GetPlannerDocuments(context.Background(), form, false, domain.Currency{}); err == nil {
		t.Fatal("expected a market failure to abort composition")
	}
}
