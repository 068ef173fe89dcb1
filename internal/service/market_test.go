package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"splinter-planner/internal/domain"
)

type fakePriceSource struct {
	prices domain.PriceTable
	err    error
}

func (f *fakePriceSource) MarketPrices(ctx context.Context) (domain.PriceTable, error) {
	return f.prices, f.err
}

type fakeRateSource struct {
	rate  float64
	err   error
	calls int

	lastAssets   []string
	lastCurrency string
}

func (f *fakeRateSource) LatestPrices(ctx context.Context, assetIDs []string, vsCurrency string) ([]float64, error) {
	f.calls++
	f.lastAssets = assetIDs
	f.lastCurrency = vsCurrency
	if f.err != nil {
		return nil, f.err
	}
	rates := make([]float64, len(assetIDs))
	for i := range rates {
		rates[i] = f.rate
	}
	return rates, nil
}

func TestGetConversionRate_BaseCurrencyIdentity(t *testing.T) {
	rates := &fakeRateSource{rate: 0.92}
	svc := NewMarketService(&fakePriceSource{}, rates, zerolog.Nop())

	for _, currency := range []string{"usd", "USD"} {
		rate, err := svc.GetConversionRate(context.Background(), currency)
		if err != nil {
			t.Fatalf("GetConversionRate(%s) failed: %v", currency, err)
		}
		if rate != 1 {
			t.Errorf("GetConversionRate(%s) = %v, want 1", currency, rate)
		}
	}

	if rates.calls != 0 {
		t.Errorf("base currency made %d rate lookups, want 0", rates.calls)
	}
}

func TestGetConversionRate_DelegatesForOtherCurrencies(t *testing.T) {
	rates := &fakeRateSource{rate: 0.92}
	svc := NewMarketService(&fakePriceSource{}, rates, zerolog.Nop())

	rate, err := svc.GetConversionRate(context.Background(), "eur")
	if err != nil {
		t.Fatalf("GetConversionRate failed: %v", err)
	}
	if rate != 0.92 {
		t.Errorf("rate = %v, want 0.92", rate)
	}
	if rates.calls != 1 {
		t.Errorf("rate lookups = %d, want 1", rates.calls)
	}
	if len(rates.lastAssets) != 1 || rates.lastAssets[0] != "usd-coin" {
		t.Errorf("bridging asset = %v, want [usd-coin]", rates.lastAssets)
	}
	if rates.lastCurrency != "eur" {
		t.Errorf("target currency = %q, want eur", rates.lastCurrency)
	}
}

func TestGetConversionRate_ProviderErrorPropagates(t *testing.T) {
	rates := &fakeRateSource{err: errors.New("provider down")}
	svc := NewMarketService(&fakePriceSource{}, rates, zerolog.Nop())

	if _, err := svc.GetConversionRate(context.Background(), "eur"); err == nil {
		t.Fatal("expected provider failure to propagate")
	}
}

func TestGetMarketPrices(t *testing.T) {
	prices := &fakePriceSource{prices: testPrices()}
	svc := NewMarketService(prices, &fakeRateSource{}, zerolog.Nop())

	table, err := svc.GetMarketPrices(context.Background())
	if err != nil {
		t.Fatalf("GetMarketPrices failed: %v", err)
	}
	if table["135"]["3"] != 9.0 {
		t.Errorf("unexpected table: %v", table)
	}

	prices.err = errors.New("market down")
	if _, err := svc.GetMarketPrices(context.Background()); err == nil {
		t.Fatal("expected market failure to propagate")
	}
}
