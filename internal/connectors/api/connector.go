package api

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
	"github.com/custodia-labs/contentbridge-cli/internal/logger"
	"github.com/custodia-labs/contentbridge-cli/internal/mapping"
)

// Connector traverses one paginated API source, page by page, in
// strict sequence: fetch, extract records, hand each record to the
// caller, then decide whether another page follows. No concurrent
// fetches, no parallel record handling.
type Connector struct {
	client *Client
	fetch  domain.FetchConfig
	paging PagingConfig

	// warnedStringBody dedupes the string-body pagination warning so
	// it surfaces once per traversal rather than once per page.
	warnedStringBody bool
}

// New creates a connector for one source's fetch configuration.
func New(fetch domain.FetchConfig) (*Connector, error) {
	if fetch.EndpointURL == "" {
		return nil, ErrMissingEndpoint
	}

	timeout := DefaultTimeout
	if fetch.TimeoutMs != nil && isFinite(*fetch.TimeoutMs) && *fetch.TimeoutMs > 0 {
		timeout = time.Duration(*fetch.TimeoutMs) * time.Millisecond
	}

	return &Connector{
		client: NewClient(timeout),
		fetch:  fetch,
		paging: NormalizePagination(fetch.Pagination),
	}, nil
}

// Paging returns the normalized pagination configuration.
func (c *Connector) Paging() PagingConfig {
	return c.paging
}

// Traverse walks every page of the source and invokes each for every
// record, in order. Returning domain.ErrStopTraversal from the handler
// ends the traversal early without error; any other handler error is
// source-fatal and propagates. Between pages (never before the first)
// the configured delay is honoured.
func (c *Connector) Traverse(ctx context.Context, each func(record any) error) error {
	var pacer *rate.Limiter
	if c.paging.DelayMs > 0 {
		delay := time.Duration(c.paging.DelayMs) * time.Millisecond
		// A full initial bucket makes the first page immediate.
		pacer = rate.NewLimiter(rate.Every(delay), 1)
	}

	state := PageState{
		HasMore:   true,
		PageIndex: c.paging.PageIndexStart,
		Cursor:    c.paging.CursorStart,
	}

	for state.HasMore {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return err
			}
		}

		data, err := c.fetchPage(ctx, state)
		if err != nil {
			return err
		}

		items, _ := mapping.Evaluate(data, c.paging.ItemsPath).([]any)
		for _, record := range items {
			if err := each(record); err != nil {
				if errors.Is(err, domain.ErrStopTraversal) {
					return nil
				}
				return err
			}
		}

		state = NextState(c.paging, data, len(items), state)
	}

	return nil
}

// fetchPage builds and performs the request for the current state.
func (c *Connector) fetchPage(ctx context.Context, state PageState) (any, error) {
	req, err := BuildPageRequest(RequestParams{
		URL:         c.fetch.EndpointURL,
		Method:      c.fetch.Method,
		Headers:     c.fetch.Headers,
		Body:        c.fetch.Body,
		PageParam:   c.paging.PageParam,
		SizeParam:   c.paging.SizeParam,
		CursorParam: c.paging.CursorParam,
		PageIndex:   state.PageIndex,
		PageSize:    c.paging.PageSize,
		Cursor:      state.Cursor,
	})
	if err != nil {
		return nil, err
	}

	if req.ParamsSkipped && !c.warnedStringBody {
		logger.Warn("pagination params could not be added to string body")
		c.warnedStringBody = true
	}

	return c.client.FetchJSON(ctx, req)
}
