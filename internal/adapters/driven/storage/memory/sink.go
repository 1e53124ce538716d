// Package memory provides an in-memory content sink, used for dry runs
// and tests.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
	"github.com/custodia-labs/contentbridge-cli/internal/core/ports/driven"
)

var _ driven.ContentSink = (*Sink)(nil)

// Sink collects content documents in memory.
type Sink struct {
	mu   sync.Mutex
	docs []domain.ContentDocument
}

// NewSink creates an empty in-memory sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends the document.
func (s *Sink) Add(ctx context.Context, doc domain.ContentDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return nil
}

// Documents returns a copy of the collected documents.
func (s *Sink) Documents() []domain.ContentDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ContentDocument, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of collected documents.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Close is a no-op.
func (s *Sink) Close() error {
	return nil
}
