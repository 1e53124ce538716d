package domain

// Config is the top-level contentbridge configuration: a list of
// sources to ingest plus an optional global item cap.
type Config struct {
	// Sources are the API sources to ingest, processed in order.
	Sources []Source `json:"sources"`

	// MaxItems caps the number of items ingested per source.
	// Zero or negative means no cap. Overridden by Source.MaxItems.
	MaxItems float64 `json:"maxItems"`
}

// Source describes one remote API source and how its records map to
// content documents.
type Source struct {
	// Name is an optional human-readable label used in logs.
	Name string `json:"name"`

	// Fetch describes the HTTP endpoint and pagination behaviour.
	Fetch FetchConfig `json:"fetch"`

	// Mapping describes how records become content documents.
	Mapping MappingConfig `json:"mapping"`

	// Export optionally configures markdown artifact emission.
	Export *ExportConfig `json:"export"`

	// MaxItems caps the number of items for this source only.
	MaxItems float64 `json:"maxItems"`
}

// FetchConfig describes the HTTP request side of a source.
type FetchConfig struct {
	// EndpointURL is the base URL of the remote API. Required.
	EndpointURL string `json:"endpointUrl"`

	// Method is the HTTP method. Defaults to GET.
	Method string `json:"method"`

	// Headers are sent with every page request.
	Headers map[string]string `json:"headers"`

	// Body is the request body for non-GET methods. An object body has
	// pagination state injected into it; a string body does not.
	Body any `json:"body"`

	// Pagination configures the page traversal. Optional.
	Pagination PaginationOptions `json:"pagination"`

	// TimeoutMs is the per-request timeout in milliseconds.
	// Defaults to 30000 when unset or non-finite.
	TimeoutMs *float64 `json:"timeoutMs"`
}

// PaginationOptions is the user-authored pagination configuration.
// All fields are optional; the API connector normalizes them into a
// canonical form with defaults filled in.
type PaginationOptions struct {
	// Mode is "page", "offset" or "cursor". Inferred as "offset" when
	// PageParam is "skip" or "offset" and no mode is given.
	Mode string `json:"mode"`

	// PageParam is the query/body parameter carrying the page index.
	PageParam string `json:"pageParam"`

	// SizeParam is the query/body parameter carrying the page size.
	SizeParam string `json:"sizeParam"`

	// PageIndexStart is the index of the first page. Defaults to 1.
	PageIndexStart *float64 `json:"pageIndexStart"`

	// PageIndexStep is the increment between page indices.
	PageIndexStep *float64 `json:"pageIndexStep"`

	// PageSize is the expected number of items per page.
	PageSize *float64 `json:"pageSize"`

	// DelayMs is the pause between page fetches in milliseconds.
	DelayMs *float64 `json:"delayMs"`

	// ItemsPath is the mapping expression locating the record list in
	// a page response. Defaults to "$_posts".
	ItemsPath string `json:"itemsPath"`

	// TotalPath locates the total record count in a page response.
	TotalPath string `json:"totalPath"`

	// HasMorePath locates an explicit has-more flag in a page response.
	HasMorePath string `json:"hasMorePath"`

	// NextPagePath locates the absolute next page number in a response.
	NextPagePath string `json:"nextPagePath"`

	// NextCursorPath locates the continuation cursor in a response.
	NextCursorPath string `json:"nextCursorPath"`

	// CursorParam is the query/body parameter carrying the cursor.
	CursorParam string `json:"cursorParam"`

	// CursorStart seeds the cursor for the first request.
	CursorStart string `json:"cursorStart"`
}

// MappingConfig describes how one source record becomes a document.
type MappingConfig struct {
	// FrontMatter maps header keys to mapping expressions. Values may
	// be nested objects/arrays; dotted keys create nested output.
	FrontMatter map[string]any `json:"frontMatter"`

	// Content is the mapping expression producing the body text.
	Content string `json:"content"`

	// SourcePath is the mapping expression producing the document's
	// source path. Required; must resolve to a non-empty string.
	SourcePath string `json:"sourcePath"`
}

// ExportConfig configures optional markdown artifact emission.
type ExportConfig struct {
	// Dir is the output directory. Required when Export is set.
	Dir string `json:"dir"`

	// FileName is either a full mapping expression or a "{token}"
	// template resolved against the record and its front matter.
	// Defaults to the document slug when empty.
	FileName string `json:"fileName"`
}

// LoadReport summarises one ingestion run across all sources.
type LoadReport struct {
	// Results holds one entry per configured source, in order.
	Results []SourceResult
}

// SourceResult is the outcome of ingesting a single source.
type SourceResult struct {
	// Name is the source label (or its endpoint URL when unnamed).
	Name string

	// Added is the number of documents handed to the sink.
	Added int

	// Skipped reports that the source was not ingested at all
	// (e.g. missing endpoint URL).
	Skipped bool

	// Err is the source-fatal error, if any.
	Err error
}

// TotalAdded returns the number of documents added across all sources.
func (r *LoadReport) TotalAdded() int {
	total := 0
	for _, res := range r.Results {
		total += res.Added
	}
	return total
}

// Failed returns the results that ended with a source-fatal error.
func (r *LoadReport) Failed() []SourceResult {
	var failed []SourceResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
