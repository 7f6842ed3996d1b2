package analytics

import "context"

// Store is the persistence interface for engagement counters. The tracker
// treats it as a write-behind target: in-memory state is authoritative for
// reads, the store keeps counters across restarts. Implementations must
// tolerate repeated HIncrBy calls (plain counter arithmetic).
type Store interface {
	HIncrBy(ctx context.Context, key, field string, val int64) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}
