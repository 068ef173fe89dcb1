package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"splinter-planner/internal/domain"
)

func newTestDecksService(store *fakeBattleStore, cards *fakeCardSource, prices *fakePriceSource, rates *fakeRateSource, collection *fakeCollectionSource) *DecksService {
	results := NewResultsService(store, cards, zerolog.Nop())
	market := NewMarketService(prices, rates, zerolog.Nop())
	player := NewPlayerService(collection, cards, zerolog.Nop())
	return NewDecksService(results, market, player, zerolog.Nop())
}

func clientDeck(id string) domain.DeckDocument {
	return domain.DeckDocument{
		ID: id,
		Monsters: []domain.DeckCard{
			{ID: 135, Name: "Pyre", Level: 3},
			{ID: 140, Name: "Serpent of the Flame", Level: 2},
			{ID: 150, Name: "Kobold Miner", Level: 1},
		},
	}
}

func TestUpdateTeams_RepricesAndAnnotates(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(5, 3)}
	cards := &fakeCardSource{cards: testCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	svc := newTestDecksService(store, cards, prices, &fakeRateSource{rate: 2.0}, &fakeCollectionSource{})

	form := domain.BattleForm{ManaCap: 24}
	updated, err := svc.UpdateTeams(context.Background(), []domain.DeckDocument{clientDeck("135|140|150")}, form, false, domain.Currency{ID: "eur", Symbol: "€"})
	if err != nil {
		t.Fatalf("UpdateTeams failed: %v", err)
	}

	if len(updated) != 1 {
		t.Fatalf("expected 1 deck back, got %d", len(updated))
	}
	deck := updated[0]

	if deck.Price != (9.0+4.25+0.5)*2.0 {
		t.Errorf("deck price = %v, want 27.5", deck.Price)
	}
	if deck.FiatSymbol != "€" {
		t.Errorf("fiat symbol = %q, want €", deck.FiatSymbol)
	}
	if deck.Monsters[0].Price == nil || *deck.Monsters[0].Price != 9.0 {
		t.Errorf("member price = %v, want base 9.0", deck.Monsters[0].Price)
	}

	if deck.WinPc == nil || *deck.WinPc != 62.5 {
		t.Errorf("winpc = %v, want 62.5", deck.WinPc)
	}
	if deck.Battles == nil || *deck.Battles != 8 {
		t.Errorf("battles = %v, want 8", deck.Battles)
	}
	if deck.Updated == 0 {
		t.Error("updated timestamp not set")
	}
}

func TestUpdateTeams_UnknownCompositionKeepsNilStats(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(6, 0)}
	cards := &fakeCardSource{cards: testCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	svc := newTestDecksService(store, cards, prices, &fakeRateSource{rate: 1}, &fakeCollectionSource{})

	stale := 88.0
	deck := domain.DeckDocument{
		ID:    "222|333",
		WinPc: &stale,
		Monsters: []domain.DeckCard{
			{ID: 135, Level: 3},
			{ID: 222, Level: 1, Price: &stale},
		},
	}

	form := domain.BattleForm{ManaCap: 24}
	updated, err := svc.UpdateTeams(context.Background(), []domain.DeckDocument{deck}, form, false, domain.Currency{})
	if err != nil {
		t.Fatalf("UpdateTeams failed: %v", err)
	}

	got := updated[0]
	if got.WinPc != nil || got.Battles != nil {
		t.Errorf("unrecorded composition kept stats: winpc=%v battles=%v", got.WinPc, got.Battles)
	}

	// Stale member prices are recomputed, not carried over.
	if got.Monsters[1].Price != nil {
		t.Errorf("unlisted member kept a stale price: %v", *got.Monsters[1].Price)
	}
	if got.Price != 9.0 {
		t.Errorf("deck price = %v, want 9.0 from the one listed member", got.Price)
	}
}

func TestUpdateTeams_OwnedCardsPricedAtZero(t *testing.T) {
	store := &fakeBattleStore{battles: mixedBattles(6, 0)}
	cards := &fakeCardSource{cards: plannerCatalog()}
	prices := &fakePriceSource{prices: testPrices()}
	collection := &fakeCollectionSource{cards: []domain.PlayerCard{
		{CardDetailID: 135, Level: 3, UID: "C1-135", Player: "alice"},
	}}
	svc := newTestDecksService(store, cards, prices, &fakeRateSource{rate: 1}, collection)

	form := domain.BattleForm{ManaCap: 24, PlayerName: "alice"}
	updated, err := svc.UpdateTeams(context.Background(), []domain.DeckDocument{clientDeck("135|140|150")}, form, false, domain.Currency{})
	if err != nil {
		t.Fatalf("UpdateTeams failed: %v", err)
	}

	deck := updated[0]
	if deck.Price != 4.25 {
		t.Errorf("deck price with owned cards = %v, want 4.25", deck.Price)
	}
	if deck.Monsters[0].Price != nil {
		t.Errorf("owned member should carry no price, got %v", *deck.Monsters[0].Price)
	}
}

func TestUpdateTeams_InvalidManaCap(t *testing.T) {
	svc := newTestDecksService(&fakeBattleStore{}, &fakeCardSource{}, &fakePriceSource{}, &fakeRateSource{}, &fakeCollectionSource{})

	_, err := svc.UpdateTeams(context.Background(), nil, domain.BattleForm{}, false, domain.Currency{})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
