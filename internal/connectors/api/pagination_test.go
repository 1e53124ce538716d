package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
)

func paging(opts domain.PaginationOptions) PagingConfig {
	return NormalizePagination(opts)
}

func TestNextState_EmptyPageAlwaysStops(t *testing.T) {
	// Even with a cursor present in the response, zero items stop first
	p := paging(domain.PaginationOptions{NextCursorPath: "$_next"})
	data := map[string]any{"next": "more"}

	state := NextState(p, data, 0, PageState{HasMore: true, PageIndex: 3, Cursor: "c"})

	assert.False(t, state.HasMore)
	assert.Equal(t, 3.0, state.PageIndex)
	assert.Equal(t, "c", state.Cursor)
}

func TestNextState_CursorContinues(t *testing.T) {
	p := paging(domain.PaginationOptions{NextCursorPath: "$_meta.cursor"})
	data := map[string]any{"meta": map[string]any{"cursor": "abc"}}

	state := NextState(p, data, 10, PageState{HasMore: true, PageIndex: 1})

	assert.True(t, state.HasMore)
	assert.Equal(t, "abc", state.Cursor)
	assert.Equal(t, 1.0, state.PageIndex)
}

func TestNextState_CursorAbsentStops(t *testing.T) {
	p := paging(domain.PaginationOptions{NextCursorPath: "$_meta.cursor"})

	state := NextState(p, map[string]any{"meta": map[string]any{}}, 10, PageState{HasMore: true, PageIndex: 1})
	assert.False(t, state.HasMore)

	// An empty-string cursor also stops
	data := map[string]any{"meta": map[string]any{"cursor": ""}}
	state = NextState(p, data, 10, PageState{HasMore: true, PageIndex: 1})
	assert.False(t, state.HasMore)
}

func TestNextState_CursorNumericCoerced(t *testing.T) {
	p := paging(domain.PaginationOptions{NextCursorPath: "$_next"})
	data := map[string]any{"next": 42.0}

	state := NextState(p, data, 5, PageState{HasMore: true})

	assert.True(t, state.HasMore)
	assert.Equal(t, "42", state.Cursor)
}

func TestNextState_HasMoreFlag(t *testing.T) {
	p := paging(domain.PaginationOptions{HasMorePath: "$_hasMore"})

	state := NextState(p, map[string]any{"hasMore": true}, 10, PageState{HasMore: true, PageIndex: 2})
	assert.True(t, state.HasMore)
	assert.Equal(t, 3.0, state.PageIndex)

	state = NextState(p, map[string]any{"hasMore": false}, 10, PageState{HasMore: true, PageIndex: 2})
	assert.False(t, state.HasMore)
	assert.Equal(t, 2.0, state.PageIndex)
}

func TestNextState_HasMoreTokenStrings(t *testing.T) {
	p := paging(domain.PaginationOptions{HasMorePath: "$_hasMore"})

	state := NextState(p, map[string]any{"hasMore": "yes"}, 10, PageState{PageIndex: 1})
	assert.True(t, state.HasMore)

	// Arbitrary non-empty strings are not truthy
	state = NextState(p, map[string]any{"hasMore": "maybe"}, 10, PageState{PageIndex: 1})
	assert.False(t, state.HasMore)
}

func TestNextState_NextPageJumps(t *testing.T) {
	p := paging(domain.PaginationOptions{NextPagePath: "$_meta.nextPage"})
	data := map[string]any{"meta": map[string]any{"nextPage": 7.0}}

	state := NextState(p, data, 10, PageState{HasMore: true, PageIndex: 2})

	assert.True(t, state.HasMore)
	assert.Equal(t, 7.0, state.PageIndex)
}

func TestNextState_NextPageNonNumericStops(t *testing.T) {
	p := paging(domain.PaginationOptions{NextPagePath: "$_meta.nextPage"})
	data := map[string]any{"meta": map[string]any{"nextPage": "soon"}}

	state := NextState(p, data, 10, PageState{HasMore: true, PageIndex: 2})
	assert.False(t, state.HasMore)
}

func TestNextState_TotalPageMode(t *testing.T) {
	p := paging(domain.PaginationOptions{
		TotalPath: "$_total",
		PageSize:  fptr(10),
	})

	// Page 1 of 25 items: 1*10 < 25, continue to page 2
	state := NextState(p, map[string]any{"total": 25.0}, 10, PageState{HasMore: true, PageIndex: 1})
	assert.True(t, state.HasMore)
	assert.Equal(t, 2.0, state.PageIndex)

	// Page 3: 3*10 >= 25, stop (index still advances)
	state = NextState(p, map[string]any{"total": 25.0}, 5, PageState{HasMore: true, PageIndex: 3})
	assert.False(t, state.HasMore)
	assert.Equal(t, 4.0, state.PageIndex)
}

func TestNextState_TotalOffsetMode(t *testing.T) {
	p := paging(domain.PaginationOptions{
		PageParam: "offset",
		TotalPath: "$_total",
		PageSize:  fptr(10),
	})

	// Offset 0 of 25: 0+10 < 25, continue at offset 10
	state := NextState(p, map[string]any{"total": 25.0}, 10, PageState{HasMore: true, PageIndex: 0})
	assert.True(t, state.HasMore)
	assert.Equal(t, 10.0, state.PageIndex)

	// Offset 20 of 25: 20+10 >= 25, stop
	state = NextState(p, map[string]any{"total": 25.0}, 5, PageState{HasMore: true, PageIndex: 20})
	assert.False(t, state.HasMore)
}

func TestNextState_TotalMissingStops(t *testing.T) {
	p := paging(domain.PaginationOptions{
		TotalPath: "$_total",
		PageSize:  fptr(10),
	})

	state := NextState(p, map[string]any{}, 10, PageState{HasMore: true, PageIndex: 1})
	assert.False(t, state.HasMore)
}

func TestNextState_TotalRequiresPageSize(t *testing.T) {
	// Without a page size the total strategy declines; a full chain
	// fall-through continues with index +1
	p := paging(domain.PaginationOptions{TotalPath: "$_total"})

	state := NextState(p, map[string]any{"total": 25.0}, 10, PageState{HasMore: true, PageIndex: 1})
	assert.True(t, state.HasMore)
	assert.Equal(t, 2.0, state.PageIndex)
}

func TestNextState_ShortPageStops(t *testing.T) {
	p := paging(domain.PaginationOptions{PageSize: fptr(10)})

	state := NextState(p, map[string]any{}, 4, PageState{HasMore: true, PageIndex: 2})
	assert.False(t, state.HasMore)
	assert.Equal(t, 2.0, state.PageIndex)
}

func TestNextState_FullPageContinues(t *testing.T) {
	p := paging(domain.PaginationOptions{PageSize: fptr(10)})

	state := NextState(p, map[string]any{}, 10, PageState{HasMore: true, PageIndex: 2})
	assert.True(t, state.HasMore)
	assert.Equal(t, 3.0, state.PageIndex)
}

func TestNextState_DefaultFallback(t *testing.T) {
	p := paging(domain.PaginationOptions{})

	state := NextState(p, map[string]any{}, 3, PageState{HasMore: true, PageIndex: 5})
	assert.True(t, state.HasMore)
	assert.Equal(t, 6.0, state.PageIndex)
}

func TestNextState_StrategyOrder(t *testing.T) {
	// Cursor wins over has-more when both are configured
	p := paging(domain.PaginationOptions{
		NextCursorPath: "$_cursor",
		HasMorePath:    "$_hasMore",
	})
	data := map[string]any{"cursor": "c2", "hasMore": false}

	state := NextState(p, data, 10, PageState{HasMore: true, PageIndex: 1})
	assert.True(t, state.HasMore)
	assert.Equal(t, "c2", state.Cursor)
}

func TestNextState_OffsetStepAdvance(t *testing.T) {
	p := paging(domain.PaginationOptions{
		PageParam:   "skip",
		PageSize:    fptr(20),
		HasMorePath: "$_more",
	})
	assert.Equal(t, ModeOffset, p.Mode)

	state := NextState(p, map[string]any{"more": true}, 20, PageState{HasMore: true, PageIndex: 40})
	assert.True(t, state.HasMore)
	// Offset advances by the page size, not by 1
	assert.Equal(t, 60.0, state.PageIndex)
}

func TestNextState_NaNTotalIsUnset(t *testing.T) {
	p := paging(domain.PaginationOptions{TotalPath: "$_total", PageSize: fptr(10)})
	data := map[string]any{"total": "not a number"}

	state := NextState(p, data, 10, PageState{HasMore: true, PageIndex: 1})
	assert.False(t, state.HasMore)
	assert.False(t, math.IsNaN(state.PageIndex))
}
