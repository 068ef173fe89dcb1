package constants

import "time"

const (
	// FreeFetchDays bounds the aggregation window for non-subscribed
	// callers; subscribers get the whole retained history.
	FreeFetchDays = 1

	// BattleRetentionDays matches the upstream store's expiry window; the
	// poller purges anything older.
	BattleRetentionDays = 14

	CardCacheTTL = 10 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	PollInterval         = 30 * time.Second
	PollTransactionLimit = 1000
)

const (
	ShutdownTimeout = 5 * time.Second
)
