package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"splinter-planner/internal/config"
	"splinter-planner/internal/constants"
	"splinter-planner/internal/domain"
)

// SplinterlandsClient talks to the game's public API: the card catalog, per
// player collections, grouped market listings and the battle transaction
// feed.
//
// The card catalog changes rarely and is the dominant fetch cost, so it is
// cached process-wide behind a TTL. Everything else reflects live state and
// is fetched per request.
type SplinterlandsClient struct {
	baseURL  string
	api2URL  string
	client   *fasthttp.Client
	cacheTTL time.Duration

	cardsMu      sync.RWMutex
	cards        []domain.CardDetail
	cardsFetched time.Time
}

func NewSplinterlandsClient(cfg *config.Config) *SplinterlandsClient {
	return &SplinterlandsClient{
		baseURL:  cfg.GameAPIBaseURL,
		api2URL:  cfg.GameAPI2BaseURL,
		cacheTTL: cfg.CardCacheTTL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// CardDetails returns the full card catalog, served from the process-wide
// cache when fresh.
func (c *SplinterlandsClient) CardDetails(ctx context.Context) ([]domain.CardDetail, error) {
	c.cardsMu.RLock()
	if c.cards != nil && time.Since(c.cardsFetched) < c.cacheTTL {
		cards := c.cards
		c.cardsMu.RUnlock()
		return cards, nil
	}
	c.cardsMu.RUnlock()

	url := fmt.Sprintf("%s/cards/get_details", c.baseURL)
	cards, err := doRequest[[]domain.CardDetail](ctx, c.client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch card details: %w", err)
	}

	c.cardsMu.Lock()
	c.cards = *cards
	c.cardsFetched = time.Now()
	c.cardsMu.Unlock()

	return *cards, nil
}

type collectionResponse struct {
	Player string              `json:"player"`
	Cards  []domain.PlayerCard `json:"cards"`
}

// PlayerCollection returns the raw owned cards of a player, without starter
// synthesis.
func (c *SplinterlandsClient) PlayerCollection(ctx context.Context, player string) ([]domain.PlayerCard, error) {
	url := fmt.Sprintf("%s/cards/collection/%s", c.baseURL, player)
	resp, err := doRequest[collectionResponse](ctx, c.client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch collection for %s: %w", player, err)
	}
	return resp.Cards, nil
}

type marketListing struct {
	CardDetailID int     `json:"card_detail_id"`
	Level        int     `json:"level"`
	Gold         bool    `json:"gold"`
	LowPrice     float64 `json:"low_price"`
}

// MarketPrices returns the current lowest USD listing per (card, level),
// gold foils excluded. The returned table is owned by the caller.
func (c *SplinterlandsClient) MarketPrices(ctx context.Context) (domain.PriceTable, error) {
	url := fmt.Sprintf("%s/market/for_sale_grouped", c.baseURL)
	listings, err := doRequest[[]marketListing](ctx, c.client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch market prices: %w", err)
	}

	prices := make(domain.PriceTable)
	for _, listing := range *listings {
		if listing.Gold || listing.LowPrice <= 0 {
			continue
		}
		cardID := strconv.Itoa(listing.CardDetailID)
		level := strconv.Itoa(listing.Level)
		byLevel, ok := prices[cardID]
		if !ok {
			byLevel = make(map[string]float64)
			prices[cardID] = byLevel
		}
		if current, ok := byLevel[level]; !ok || listing.LowPrice < current {
			byLevel[level] = listing.LowPrice
		}
	}
	return prices, nil
}

// BattleTransactions returns battle transactions newer than fromBlock, oldest
// first, capped at limit.
func (c *SplinterlandsClient) BattleTransactions(ctx context.Context, fromBlock int64, limit int) ([]domain.Transaction, error) {
	url := fmt.Sprintf("%s/transactions/history?from_block=%d&limit=%d&types=sm_battle", c.api2URL, fromBlock, limit)
	txs, err := doRequest[[]domain.Transaction](ctx, c.client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch battle transactions: %w", err)
	}
	return *txs, nil
}

func doRequest[T any](ctx context.Context, client *fasthttp.Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
