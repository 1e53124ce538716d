package driving

import (
	"context"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
)

// ContentLoader runs the ingestion pipeline over configured sources.
type ContentLoader interface {
	// Run ingests every source in the config and returns a per-source
	// report. One source's failure does not abort its siblings.
	Run(ctx context.Context, cfg domain.Config) (*domain.LoadReport, error)
}
