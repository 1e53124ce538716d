package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/contentbridge-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/contentbridge-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contentbridge-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/contentbridge-cli/internal/core/ports/driven"
	"github.com/custodia-labs/contentbridge-cli/internal/core/services"
	"github.com/custodia-labs/contentbridge-cli/internal/logger"
)

// debounce window for filesystem events in watch mode.
const watchDebounce = 250 * time.Millisecond

var (
	loadConfigPath string
	loadDataDir    string
	loadDryRun     bool
	loadWatch      bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Ingest all configured sources",
	Long: `Reads the source configuration, traverses every configured API
source page by page, maps records into content documents and stores
them. Sources with an export section additionally emit one markdown
file per record.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadConfigPath, "config", "c", "contentbridge.config.json5", "path to the source configuration file")
	loadCmd.Flags().StringVar(&loadDataDir, "data-dir", "", "data directory for local storage (default ~/.contentbridge/data)")
	loadCmd.Flags().BoolVar(&loadDryRun, "dry-run", false, "ingest into memory only, no local storage writes")
	loadCmd.Flags().BoolVarP(&loadWatch, "watch", "w", false, "re-run ingestion when the configuration file changes")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if loadWatch {
		return watchAndLoad(ctx, cmd)
	}
	return loadOnce(ctx, cmd)
}

// loadOnce runs a single ingestion pass over the configured sources.
func loadOnce(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := configfile.LoadConfig(loadConfigPath)
	if err != nil {
		return err
	}

	// Export sections without a directory fall back to the persisted
	// default output directory, if one is configured.
	if defaultDir := storedSettings().OutputDir; defaultDir != "" {
		for _, source := range cfg.Sources {
			if source.Export != nil && source.Export.Dir == "" {
				source.Export.Dir = defaultDir
			}
		}
	}

	sink, err := openSink()
	if err != nil {
		return err
	}
	defer sink.Close() //nolint:errcheck

	loader := services.NewLoader(sink)
	report, err := loader.Run(ctx, cfg)
	if err != nil {
		return err
	}

	for _, result := range report.Results {
		switch {
		case result.Skipped:
			cmd.Printf("  %s: skipped\n", result.Name)
		case result.Err != nil:
			cmd.Printf("  %s: %d added, failed: %v\n", result.Name, result.Added, result.Err)
		default:
			cmd.Printf("  %s: %d added\n", result.Name, result.Added)
		}
	}
	cmd.Printf("Done: %d documents from %d sources (%d failed).\n",
		report.TotalAdded(), len(report.Results), len(report.Failed()))
	return nil
}

// watchAndLoad runs an ingestion pass, then re-runs whenever the
// configuration file changes, until the context is cancelled.
func watchAndLoad(ctx context.Context, cmd *cobra.Command) error {
	if err := loadOnce(ctx, cmd); err != nil {
		logger.Error("ingestion failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	// Watch the directory, not the file. Editors replace files on
	// save, which drops a watch registered on the file itself.
	configDir := filepath.Dir(loadConfigPath)
	if err := watcher.Add(configDir); err != nil {
		return fmt.Errorf("watching %s: %w", configDir, err)
	}

	cmd.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", loadConfigPath)

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(loadConfigPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		case <-reload:
			logger.Info("configuration changed, re-running ingestion")
			if err := loadOnce(ctx, cmd); err != nil {
				logger.Error("ingestion failed: %v", err)
			}
		}
	}
}

// openSink picks the content sink for this run.
func openSink() (driven.ContentSink, error) {
	if loadDryRun {
		logger.Info("dry run, documents are not persisted")
		return memory.NewSink(), nil
	}
	return sqlite.NewStore(loadDataDir)
}
