package api

import (
	"github.com/custodia-labs/contentbridge-cli/internal/mapping"
)

// PageState is the pagination cursor/page/continuation state after one
// page fetch. NextState computes a fresh value from the previous one;
// states are never mutated in place.
type PageState struct {
	// HasMore reports whether another page should be fetched.
	HasMore bool

	// PageIndex is the index to request next (or the current one when
	// traversal is cursor-driven or stopping).
	PageIndex float64

	// Cursor is the continuation token for the next request.
	// Empty means no cursor.
	Cursor string
}

// strategy examines a fetched page and either decides the next state or
// declines (nil) so the next strategy in the chain can run.
type strategy func(p PagingConfig, data any, itemsLen int, state PageState) *PageState

// strategies is the ordered decision chain: cursor, explicit has-more,
// next page number, total count, then the short-page heuristic. The
// first strategy that returns a decision wins.
var strategies = []strategy{
	cursorStrategy,
	hasMoreStrategy,
	nextPageStrategy,
	totalStrategy,
	shortPageStrategy,
}

// NextState decides whether traversal continues after a page and with
// what index/cursor. An empty page always stops, before any strategy
// runs. If no strategy matches, traversal continues with the page
// index advanced by exactly 1.
func NextState(p PagingConfig, data any, itemsLen int, state PageState) PageState {
	if itemsLen == 0 {
		return PageState{HasMore: false, PageIndex: state.PageIndex, Cursor: state.Cursor}
	}

	for _, decide := range strategies {
		if next := decide(p, data, itemsLen, state); next != nil {
			return *next
		}
	}

	return PageState{HasMore: true, PageIndex: state.PageIndex + 1, Cursor: state.Cursor}
}

// cursorStrategy continues with the cursor read from the response; an
// absent or empty cursor stops. The page index is left unchanged.
func cursorStrategy(p PagingConfig, data any, _ int, state PageState) *PageState {
	if p.NextCursorPath == "" {
		return nil
	}
	value := mapping.Evaluate(data, p.NextCursorPath)
	if isNullOrEmpty(value) {
		return &PageState{HasMore: false, PageIndex: state.PageIndex, Cursor: state.Cursor}
	}
	return &PageState{HasMore: true, PageIndex: state.PageIndex, Cursor: stringOf(value)}
}

// hasMoreStrategy follows an explicit boolean flag in the response,
// advancing the page index by the configured step when continuing.
func hasMoreStrategy(p PagingConfig, data any, _ int, state PageState) *PageState {
	if p.HasMorePath == "" {
		return nil
	}
	hasMore := mapping.Truthy(mapping.Evaluate(data, p.HasMorePath))
	next := state.PageIndex
	if hasMore {
		next += p.PageIndexStep
	}
	return &PageState{HasMore: hasMore, PageIndex: next, Cursor: state.Cursor}
}

// nextPageStrategy jumps to the absolute page number the response
// names; a non-finite value stops.
func nextPageStrategy(p PagingConfig, data any, _ int, state PageState) *PageState {
	if p.NextPagePath == "" {
		return nil
	}
	next := numberOf(mapping.Evaluate(data, p.NextPagePath))
	if !isFinite(next) {
		return &PageState{HasMore: false, PageIndex: state.PageIndex, Cursor: state.Cursor}
	}
	return &PageState{HasMore: true, PageIndex: next, Cursor: state.Cursor}
}

// totalStrategy compares progress against a reported total: records
// consumed so far in offset mode, pages times page size otherwise.
func totalStrategy(p PagingConfig, data any, _ int, state PageState) *PageState {
	if p.TotalPath == "" || !isFinite(p.PageSize) {
		return nil
	}
	total := numberOf(mapping.Evaluate(data, p.TotalPath))
	if !isFinite(total) {
		return &PageState{HasMore: false, PageIndex: state.PageIndex, Cursor: state.Cursor}
	}

	var hasMore bool
	if p.Mode == ModeOffset {
		hasMore = state.PageIndex+p.PageSize < total
	} else {
		hasMore = state.PageIndex*p.PageSize < total
	}
	return &PageState{HasMore: hasMore, PageIndex: state.PageIndex + p.PageIndexStep, Cursor: state.Cursor}
}

// shortPageStrategy infers the last page from an under-full page. A
// full page declines so the default fallback can run.
func shortPageStrategy(p PagingConfig, _ any, itemsLen int, state PageState) *PageState {
	if !isFinite(p.PageSize) {
		return nil
	}
	if float64(itemsLen) < p.PageSize {
		return &PageState{HasMore: false, PageIndex: state.PageIndex, Cursor: state.Cursor}
	}
	return nil
}

// stringOf and numberOf coerce pagination signals with the same rules
// the expression evaluator uses.
func stringOf(v any) string  { return mapping.Stringify(v) }
func numberOf(v any) float64 { return mapping.ToNumber(v) }

// isNullOrEmpty reports whether a resolved pagination signal is absent
// or an empty string.
func isNullOrEmpty(v any) bool {
	if v == nil || mapping.IsUndefined(v) {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
