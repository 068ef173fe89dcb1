package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"splinter-planner/internal/domain"
)

// BaseCurrency is the currency market prices are quoted in; conversion to it
// needs no rate lookup.
const BaseCurrency = "usd"

// referenceAsset is the USD-pegged asset used to bridge into other fiat
// currencies.
const referenceAsset = "usd-coin"

// PriceSource supplies the live market price table.
type PriceSource interface {
	MarketPrices(ctx context.Context) (domain.PriceTable, error)
}

// RateSource quotes assets in a target currency.
type RateSource interface {
	LatestPrices(ctx context.Context, assetIDs []string, vsCurrency string) ([]float64, error)
}

// MarketService exposes card market prices and fiat conversion rates.
type MarketService struct {
	prices PriceSource
	rates  RateSource
	logger zerolog.Logger
}

func NewMarketService(prices PriceSource, rates RateSource, logger zerolog.Logger) *MarketService {
	return &MarketService{prices: prices, rates: rates, logger: logger}
}

// GetMarketPrices returns the current price table in the base currency.
func (s *MarketService) GetMarketPrices(ctx context.Context) (domain.PriceTable, error) {
	prices, err := s.prices.MarketPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market prices: %w", err)
	}
	return prices, nil
}

// GetConversionRate returns the multiplier from the base currency into the
// target currency. The base currency itself short-circuits to 1 without a
// rate lookup.
func (s *MarketService) GetConversionRate(ctx context.Context, targetCurrency string) (float64, error) {
	if strings.EqualFold(targetCurrency, BaseCurrency) {
		return 1, nil
	}

	rates, err := s.rates.LatestPrices(ctx, []string{referenceAsset}, targetCurrency)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch conversion rate: %w", err)
	}
	if len(rates) == 0 {
		return 0, fmt.Errorf("no conversion rate returned for %s", targetCurrency)
	}

	return rates[0], nil
}
