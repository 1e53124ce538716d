package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PageRequest is a ready-to-send request for one page.
type PageRequest struct {
	// URL is the full request URL, including pagination query
	// parameters for GET requests.
	URL string

	// Method is the normalized (uppercase) HTTP method.
	Method string

	// Headers are the request headers.
	Headers map[string]string

	// Body is the encoded request body, when present.
	Body []byte

	// HasBody reports whether a body should be sent.
	HasBody bool

	// ParamsSkipped reports that pagination parameters were configured
	// but could not be injected because the body is not an object.
	ParamsSkipped bool
}

// RequestParams carries everything needed to build one page request.
type RequestParams struct {
	URL         string
	Method      string
	Headers     map[string]string
	Body        any
	PageParam   string
	SizeParam   string
	CursorParam string
	PageIndex   float64
	PageSize    float64
	Cursor      string
}

// BuildPageRequest encodes the current pagination state into a request.
// GET requests carry the state as query parameters; non-GET requests
// with an object body have the state injected as body keys (overwriting
// same-named user keys) and are serialized as JSON. A non-object body
// cannot be patched, so pagination parameters are skipped and the
// request flagged accordingly.
func BuildPageRequest(p RequestParams) (*PageRequest, error) {
	method := strings.ToUpper(p.Method)
	if method == "" {
		method = "GET"
	}

	headers := make(map[string]string, len(p.Headers)+1)
	for k, v := range p.Headers {
		headers[k] = v
	}

	if method == "GET" {
		parsed, err := url.Parse(p.URL)
		if err != nil {
			return nil, fmt.Errorf("api: parsing endpoint URL: %w", err)
		}
		query := parsed.Query()
		if p.PageParam != "" && isFinite(p.PageIndex) {
			query.Set(p.PageParam, formatIndex(p.PageIndex))
		}
		if p.SizeParam != "" && isFinite(p.PageSize) {
			query.Set(p.SizeParam, formatIndex(p.PageSize))
		}
		if p.CursorParam != "" && p.Cursor != "" {
			query.Set(p.CursorParam, p.Cursor)
		}
		parsed.RawQuery = query.Encode()
		return &PageRequest{URL: parsed.String(), Method: method, Headers: headers}, nil
	}

	if bodyMap, ok := p.Body.(map[string]any); ok {
		payload := make(map[string]any, len(bodyMap)+3)
		for k, v := range bodyMap {
			payload[k] = v
		}
		if p.PageParam != "" && isFinite(p.PageIndex) {
			payload[p.PageParam] = p.PageIndex
		}
		if p.SizeParam != "" && isFinite(p.PageSize) {
			payload[p.SizeParam] = p.PageSize
		}
		if p.CursorParam != "" && p.Cursor != "" {
			payload[p.CursorParam] = p.Cursor
		}

		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		if !hasContentType(headers) {
			headers["Content-Type"] = "application/json"
		}
		return &PageRequest{
			URL:     p.URL,
			Method:  method,
			Headers: headers,
			Body:    encoded,
			HasBody: true,
		}, nil
	}

	req := &PageRequest{URL: p.URL, Method: method, Headers: headers}
	if p.Body != nil {
		req.Body = []byte(fmt.Sprintf("%v", p.Body))
		req.HasBody = true
	}
	if p.PageParam != "" || p.SizeParam != "" || p.CursorParam != "" {
		req.ParamsSkipped = true
	}
	return req, nil
}

// hasContentType checks for a caller-supplied content type under the
// common case variants.
func hasContentType(headers map[string]string) bool {
	_, lower := headers["content-type"]
	_, upper := headers["Content-Type"]
	return lower || upper
}

// formatIndex renders a page index/size without a trailing ".0".
func formatIndex(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
