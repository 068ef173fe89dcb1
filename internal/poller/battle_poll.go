package poller

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"splinter-planner/internal/constants"
	"splinter-planner/internal/domain"
	"splinter-planner/internal/game"
)

// TransactionSource supplies battle transactions newer than a block.
type TransactionSource interface {
	BattleTransactions(ctx context.Context, fromBlock int64, limit int) ([]domain.Transaction, error)
}

// BattleSink is the store side the poller writes to.
type BattleSink interface {
	UpsertBatch(ctx context.Context, battles []domain.Battle) error
	LatestBlockNumber(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, timestamp int64) (int64, error)
}

// BattlePoller ingests battle transactions into the battle store on an
// interval and purges battles past the retention window.
type BattlePoller struct {
	source   TransactionSource
	sink     BattleSink
	interval time.Duration
	logger   zerolog.Logger

	stop chan struct{}
	done chan struct{}
}

func NewBattlePoller(source TransactionSource, sink BattleSink, interval time.Duration, logger zerolog.Logger) *BattlePoller {
	return &BattlePoller{
		source:   source,
		sink:     sink,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. It returns immediately; polling runs until
// Stop is called.
func (p *BattlePoller) Start() {
	go p.run()
}

// Stop halts the poll loop and waits for an in-flight run to finish.
func (p *BattlePoller) Stop() {
	close(p.stop)
	<-p.done
}

func (p *BattlePoller) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// First run immediately so a fresh process does not wait one interval
	// before serving any data.
	p.pollOnce()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.pollOnce()
		}
	}
}

func (p *BattlePoller) pollOnce() {
	runID, err := gonanoid.New()
	if err != nil {
		runID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	logger := p.logger.With().Str("poll_run", runID).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	fromBlock, err := p.sink.LatestBlockNumber(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read latest ingested block")
		return
	}

	txs, err := p.source.BattleTransactions(ctx, fromBlock, constants.PollTransactionLimit)
	if err != nil {
		logger.Error().Err(err).Int64("from_block", fromBlock).Msg("failed to fetch battle transactions")
		return
	}

	battles := game.BattlesFromTransactions(txs)
	if err := p.sink.UpsertBatch(ctx, battles); err != nil {
		logger.Error().Err(err).Int("battle_count", len(battles)).Msg("failed to upsert battles")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -constants.BattleRetentionDays).Unix()
	purged, err := p.sink.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to purge expired battles")
	}

	logger.Info().
		Int64("from_block", fromBlock).
		Int("transaction_count", len(txs)).
		Int("battle_count", len(battles)).
		Int64("purged", purged).
		Msg("battle poll completed")
}
