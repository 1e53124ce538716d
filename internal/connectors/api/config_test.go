package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
)

func fptr(f float64) *float64 { return &f }

func TestNormalizePagination_Defaults(t *testing.T) {
	p := NormalizePagination(domain.PaginationOptions{})

	assert.Equal(t, Mode(""), p.Mode)
	assert.Equal(t, "$_posts", p.ItemsPath)
	assert.Equal(t, 1.0, p.PageIndexStart)
	assert.Equal(t, 1.0, p.PageIndexStep)
	assert.Equal(t, 0.0, p.DelayMs)
	assert.True(t, math.IsNaN(p.PageSize))
}

func TestNormalizePagination_OffsetInference(t *testing.T) {
	for _, param := range []string{"skip", "offset"} {
		p := NormalizePagination(domain.PaginationOptions{PageParam: param})
		assert.Equal(t, ModeOffset, p.Mode, "param %q", param)
	}

	// An explicit mode is never overridden
	p := NormalizePagination(domain.PaginationOptions{Mode: "page", PageParam: "skip"})
	assert.Equal(t, ModePage, p.Mode)

	p = NormalizePagination(domain.PaginationOptions{PageParam: "page"})
	assert.Equal(t, Mode(""), p.Mode)
}

func TestNormalizePagination_StepDefaultsToPageSizeInOffsetMode(t *testing.T) {
	p := NormalizePagination(domain.PaginationOptions{
		PageParam: "offset",
		PageSize:  fptr(25),
	})
	assert.Equal(t, 25.0, p.PageIndexStep)

	// Page mode keeps step 1 regardless of page size
	p = NormalizePagination(domain.PaginationOptions{
		Mode:     "page",
		PageSize: fptr(25),
	})
	assert.Equal(t, 1.0, p.PageIndexStep)

	// An explicit step always wins
	p = NormalizePagination(domain.PaginationOptions{
		PageParam:     "offset",
		PageSize:      fptr(25),
		PageIndexStep: fptr(10),
	})
	assert.Equal(t, 10.0, p.PageIndexStep)
}

func TestNormalizePagination_PassthroughFields(t *testing.T) {
	p := NormalizePagination(domain.PaginationOptions{
		Mode:           "cursor",
		ItemsPath:      "$_data.items",
		TotalPath:      "$_meta.total",
		HasMorePath:    "$_meta.hasMore",
		NextPagePath:   "$_meta.next",
		NextCursorPath: "$_meta.cursor",
		CursorParam:    "after",
		CursorStart:    "seed",
		PageIndexStart: fptr(0),
		DelayMs:        fptr(100),
	})

	assert.Equal(t, ModeCursor, p.Mode)
	assert.Equal(t, "$_data.items", p.ItemsPath)
	assert.Equal(t, "$_meta.total", p.TotalPath)
	assert.Equal(t, "$_meta.hasMore", p.HasMorePath)
	assert.Equal(t, "$_meta.next", p.NextPagePath)
	assert.Equal(t, "$_meta.cursor", p.NextCursorPath)
	assert.Equal(t, "after", p.CursorParam)
	assert.Equal(t, "seed", p.CursorStart)
	assert.Equal(t, 0.0, p.PageIndexStart)
	assert.Equal(t, 100.0, p.DelayMs)
}

func TestNormalizePagination_NonFiniteNumbersAreUnset(t *testing.T) {
	p := NormalizePagination(domain.PaginationOptions{
		PageSize: fptr(math.Inf(1)),
		DelayMs:  fptr(math.NaN()),
	})
	assert.True(t, math.IsNaN(p.PageSize))
	assert.Equal(t, 0.0, p.DelayMs)
}
