// Package cache provides the page-level response cache for the anonymous
// home timeline. Keys are full request URIs; invalidation is coarse, a
// single InvalidateAll covering every cached page.
package cache

import (
	"context"
	"time"
)

// Entry is a captured response. Replaying one must be byte-identical to
// the response that produced it.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache is the cache capability handlers depend on. Implementations
// must make InvalidateAll visible to every Get issued after it returns.
type PageCache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
}
