package driven

import (
	"context"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
)

// ContentSink accepts finished content documents one at a time.
// The hosting build pipeline supplies the real implementation; the
// storage adapters provide in-memory and SQLite-backed ones.
// No batching contract is assumed.
type ContentSink interface {
	// Add hands one document to the sink.
	Add(ctx context.Context, doc domain.ContentDocument) error

	// Close releases sink resources.
	Close() error
}
