// Package cache stores introspected schema snapshots between runs so
// repeated conversions against slow live databases skip the metadata
// queries. The data outputs always re-read rows; only schema metadata
// is cached.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/db2django/db2django/schema"
)

// Snapshot is the cacheable result of one introspection pass.
type Snapshot struct {
	Tables        []*schema.Table        `json:"tables"`
	Relationships []*schema.Relationship `json:"relationships"`
	TakenAt       time.Time              `json:"taken_at"`
}

// Cache is a schema snapshot store. Get returns false on miss or
// expiry; a broken backend entry counts as a miss, never as an error.
type Cache interface {
	Get(ctx context.Context, key string) (*Snapshot, bool)
	Set(ctx context.Context, key string, snap *Snapshot) error
	Close() error
}

// Key derives the cache key for a source database.
func Key(driver, dsn string) string {
	sum := md5.Sum([]byte(driver + ":" + dsn))
	return "db2django:schema:" + hex.EncodeToString(sum[:])
}
