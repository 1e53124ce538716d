package api

import (
	"math"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
)

// Mode identifies how a page index is interpreted by the remote API.
type Mode string

const (
	// ModePage means the index counts pages.
	ModePage Mode = "page"

	// ModeOffset means the index counts records to skip.
	ModeOffset Mode = "offset"

	// ModeCursor means traversal is driven by an opaque cursor.
	ModeCursor Mode = "cursor"
)

// DefaultItemsPath is the expression locating records in a page
// response when none is configured.
const DefaultItemsPath = "$_posts"

// PagingConfig is the canonical pagination configuration, derived once
// from user options with defaults filled in and immutable for the life
// of one source's traversal. Unset numeric fields are NaN.
type PagingConfig struct {
	Mode           Mode
	PageParam      string
	SizeParam      string
	PageSize       float64
	DelayMs        float64
	ItemsPath      string
	TotalPath      string
	HasMorePath    string
	NextPagePath   string
	NextCursorPath string
	CursorParam    string
	PageIndexStart float64
	PageIndexStep  float64
	CursorStart    string
}

// NormalizePagination derives the canonical PagingConfig from raw
// user options. Mode is inferred as offset when the page parameter is
// named "skip" or "offset", the items path defaults to "$_posts", the
// first page index defaults to 1, and the index step defaults to the
// page size in offset mode (1 otherwise).
func NormalizePagination(opts domain.PaginationOptions) PagingConfig {
	mode := Mode(opts.Mode)
	if mode == "" && (opts.PageParam == "skip" || opts.PageParam == "offset") {
		mode = ModeOffset
	}

	pageSize := numberOr(opts.PageSize, math.NaN())

	step := numberOr(opts.PageIndexStep, math.NaN())
	if !isFinite(step) {
		if mode == ModeOffset && isFinite(pageSize) {
			step = pageSize
		} else {
			step = 1
		}
	}

	itemsPath := opts.ItemsPath
	if itemsPath == "" {
		itemsPath = DefaultItemsPath
	}

	return PagingConfig{
		Mode:           mode,
		PageParam:      opts.PageParam,
		SizeParam:      opts.SizeParam,
		PageSize:       pageSize,
		DelayMs:        numberOr(opts.DelayMs, 0),
		ItemsPath:      itemsPath,
		TotalPath:      opts.TotalPath,
		HasMorePath:    opts.HasMorePath,
		NextPagePath:   opts.NextPagePath,
		NextCursorPath: opts.NextCursorPath,
		CursorParam:    opts.CursorParam,
		PageIndexStart: numberOr(opts.PageIndexStart, 1),
		PageIndexStep:  step,
		CursorStart:    opts.CursorStart,
	}
}

// numberOr dereferences an optional number, falling back when unset or
// non-finite.
func numberOr(v *float64, fallback float64) float64 {
	if v == nil || !isFinite(*v) {
		return fallback
	}
	return *v
}

// isFinite reports whether f is a usable finite number.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
