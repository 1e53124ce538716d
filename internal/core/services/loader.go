package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/contentbridge-cli/internal/connectors/api"
	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
	"github.com/custodia-labs/contentbridge-cli/internal/core/ports/driven"
	"github.com/custodia-labs/contentbridge-cli/internal/core/ports/driving"
	"github.com/custodia-labs/contentbridge-cli/internal/export/markdown"
	"github.com/custodia-labs/contentbridge-cli/internal/logger"
	"github.com/custodia-labs/contentbridge-cli/internal/mapping"
)

// Ensure Loader implements the driving port.
var _ driving.ContentLoader = (*Loader)(nil)

// Loader ingests configured API sources: it traverses pages, maps each
// record into a content document, validates it and hands it to the
// content sink, optionally emitting a markdown artifact per record.
type Loader struct {
	sink driven.ContentSink
}

// NewLoader creates a loader emitting into the given sink.
func NewLoader(sink driven.ContentSink) *Loader {
	return &Loader{sink: sink}
}

// Run ingests every source in the config, in order. A source-fatal
// error is recorded in the report and does not abort sibling sources.
func (l *Loader) Run(ctx context.Context, cfg domain.Config) (*domain.LoadReport, error) {
	report := &domain.LoadReport{}

	if len(cfg.Sources) == 0 {
		logger.Warn("no sources defined")
		return report, nil
	}

	for _, source := range cfg.Sources {
		name := source.Name
		if name == "" {
			name = source.Fetch.EndpointURL
		}

		if source.Fetch.EndpointURL == "" {
			logger.Warn("missing endpointUrl in source configuration")
			report.Results = append(report.Results, domain.SourceResult{Name: name, Skipped: true})
			continue
		}

		logger.Section("source: " + name)
		added, err := l.loadSource(ctx, source, cfg.MaxItems)
		if err != nil {
			logger.Error("source %s: %v", name, err)
		}
		report.Results = append(report.Results, domain.SourceResult{Name: name, Added: added, Err: err})
	}

	return report, nil
}

// loadSource traverses one source and returns the number of documents
// handed to the sink. Mapping, validation and transport failures are
// all source-fatal.
func (l *Loader) loadSource(ctx context.Context, source domain.Source, globalMax float64) (int, error) {
	connector, err := api.New(source.Fetch)
	if err != nil {
		return 0, err
	}

	exporter := l.buildExporter(source)

	maxItems := source.MaxItems
	if maxItems <= 0 {
		maxItems = globalMax
	}

	added := 0
	err = connector.Traverse(ctx, func(record any) error {
		if maxItems > 0 && float64(added) >= maxItems {
			return domain.ErrStopTraversal
		}

		doc, err := l.mapRecord(source, record)
		if err != nil {
			return err
		}

		if err := l.sink.Add(ctx, doc); err != nil {
			return fmt.Errorf("content sink: %w", err)
		}

		if exporter != nil {
			if _, err := exporter.Export(doc, record); err != nil {
				return err
			}
		}

		added++
		return nil
	})
	return added, err
}

// mapRecord turns one source record into a validated content document.
func (l *Loader) mapRecord(source domain.Source, record any) (domain.ContentDocument, error) {
	header, _ := mapping.ResolveMapping(source.Mapping.FrontMatter, record).(map[string]any)
	if header == nil {
		header = map[string]any{}
	}

	if lang := header["lang"]; !isFalsyHeaderValue(lang) {
		header["lang"] = mapping.Stringify(lang)
	}

	content := mapping.ResolveContent(source.Mapping.Content, record)

	if missing := domain.MissingRequired(header); len(missing) > 0 {
		logger.Warn("missing required frontMatter fields: %s", strings.Join(missing, ", "))
		return domain.ContentDocument{}, fmt.Errorf("%w: %s",
			domain.ErrMissingRequired, strings.Join(missing, ", "))
	}

	if source.Mapping.SourcePath == "" {
		return domain.ContentDocument{}, domain.ErrMissingSourcePathMapping
	}

	resolved := mapping.Evaluate(record, source.Mapping.SourcePath)
	sourcePath, ok := resolved.(string)
	sourcePath = strings.TrimSpace(sourcePath)
	if !ok || sourcePath == "" {
		return domain.ContentDocument{}, domain.ErrEmptySourcePath
	}

	return domain.ContentDocument{
		Header:     header,
		Body:       domain.Body{Content: content},
		Content:    content,
		SourcePath: sourcePath,
		IsValid:    true,
	}, nil
}

// isFalsyHeaderValue mirrors the required-field falsiness rule: only a
// truthy lang value is coerced to string, so a falsy one still fails
// validation with its original value intact.
func isFalsyHeaderValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case float64:
		return value == 0
	case int:
		return value == 0
	case int64:
		return value == 0
	default:
		return false
	}
}

// buildExporter creates the markdown exporter for a source, or nil
// when export is unconfigured. An invalid export config disables the
// feature with a warning; traversal continues without it.
func (l *Loader) buildExporter(source domain.Source) *markdown.Exporter {
	if source.Export == nil {
		return nil
	}
	exporter, err := markdown.NewExporter(source.Export.Dir, source.Export.FileName)
	if err != nil {
		logger.Warn("invalid export config, markdown export disabled: %v", err)
		return nil
	}
	return exporter
}
