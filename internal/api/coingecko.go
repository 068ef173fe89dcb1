package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"splinter-planner/internal/config"
	"splinter-planner/internal/constants"
)

// CoingeckoClient quotes reference assets in a target fiat currency.
type CoingeckoClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewCoingeckoClient(cfg *config.Config) *CoingeckoClient {
	return &CoingeckoClient{
		baseURL: cfg.RatesAPIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// LatestPrices returns the unit price of each asset id in the target
// currency, in the order the ids were given.
func (c *CoingeckoClient) LatestPrices(ctx context.Context, assetIDs []string, vsCurrency string) ([]float64, error) {
	requestURL := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL,
		url.QueryEscape(strings.Join(assetIDs, ",")),
		url.QueryEscape(vsCurrency),
	)

	quotes, err := doRequest[map[string]map[string]float64](ctx, c.client, requestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch latest prices: %w", err)
	}

	prices := make([]float64, len(assetIDs))
	for i, id := range assetIDs {
		byCurrency, ok := (*quotes)[id]
		if !ok {
			return nil, fmt.Errorf("no quote for asset %s", id)
		}
		price, ok := byCurrency[strings.ToLower(vsCurrency)]
		if !ok {
			return nil, fmt.Errorf("no %s quote for asset %s", vsCurrency, id)
		}
		prices[i] = price
	}
	return prices, nil
}
