package api

import (
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPageRequest_GETQueryParams(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:       "https://api.example.com/posts?tag=go",
		PageParam: "page",
		SizeParam: "limit",
		PageIndex: 2,
		PageSize:  50,
	})
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.False(t, req.HasBody)

	parsed, err := url.Parse(req.URL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "50", query.Get("limit"))
	// Pre-existing query parameters survive
	assert.Equal(t, "go", query.Get("tag"))
}

func TestBuildPageRequest_GETCursor(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:         "https://api.example.com/posts",
		CursorParam: "after",
		Cursor:      "abc123",
		PageIndex:   math.NaN(),
		PageSize:    math.NaN(),
	})
	require.NoError(t, err)

	parsed, _ := url.Parse(req.URL)
	assert.Equal(t, "abc123", parsed.Query().Get("after"))
	assert.Empty(t, parsed.Query().Get("page"))
}

func TestBuildPageRequest_GETOmitsUnsetParams(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:       "https://api.example.com/posts",
		PageParam: "page",
		SizeParam: "limit",
		PageIndex: math.NaN(),
		PageSize:  math.NaN(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/posts", req.URL)
}

func TestBuildPageRequest_MethodNormalized(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{URL: "https://x.test", Method: "get"})
	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
}

func TestBuildPageRequest_POSTObjectBodyInjection(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:    "https://api.example.com/search",
		Method: "POST",
		Body:   map[string]any{"query": "go", "page": "user-value"},
		Headers: map[string]string{
			"Authorization": "Bearer t",
		},
		PageParam: "page",
		SizeParam: "limit",
		PageIndex: 3,
		PageSize:  25,
	})
	require.NoError(t, err)

	assert.True(t, req.HasBody)
	assert.False(t, req.ParamsSkipped)
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
	assert.Equal(t, "Bearer t", req.Headers["Authorization"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &payload))
	assert.Equal(t, "go", payload["query"])
	// Pagination state overwrites same-named user keys
	assert.Equal(t, 3.0, payload["page"])
	assert.Equal(t, 25.0, payload["limit"])
}

func TestBuildPageRequest_POSTKeepsCallerContentType(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:     "https://api.example.com/search",
		Method:  "POST",
		Body:    map[string]any{},
		Headers: map[string]string{"content-type": "application/vnd.custom+json"},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.custom+json", req.Headers["content-type"])
	_, injected := req.Headers["Content-Type"]
	assert.False(t, injected)
}

func TestBuildPageRequest_POSTStringBodySkipsParams(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:       "https://api.example.com/graphql",
		Method:    "POST",
		Body:      `{"query":"{ posts }"}`,
		PageParam: "page",
		PageIndex: 2,
	})
	require.NoError(t, err)

	assert.True(t, req.HasBody)
	assert.True(t, req.ParamsSkipped)
	assert.Equal(t, `{"query":"{ posts }"}`, string(req.Body))
}

func TestBuildPageRequest_POSTStringBodyNoParamsConfigured(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:    "https://api.example.com/x",
		Method: "POST",
		Body:   "raw",
	})
	require.NoError(t, err)
	assert.False(t, req.ParamsSkipped)
}

func TestBuildPageRequest_POSTNilBody(t *testing.T) {
	req, err := BuildPageRequest(RequestParams{
		URL:    "https://api.example.com/x",
		Method: "DELETE",
	})
	require.NoError(t, err)
	assert.False(t, req.HasBody)
	assert.Empty(t, req.Body)
}

func TestBuildPageRequest_BadURL(t *testing.T) {
	_, err := BuildPageRequest(RequestParams{URL: "://bad"})
	assert.Error(t, err)
}

func TestFormatIndex_NoScientificNotation(t *testing.T) {
	assert.Equal(t, "2", formatIndex(2))
	assert.Equal(t, "1000000", formatIndex(1e6))
	assert.Equal(t, "2.5", formatIndex(2.5))
}
