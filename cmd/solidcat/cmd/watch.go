package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/index"
	"github.com/solidcat/solidcat/internal/logger"
	"github.com/solidcat/solidcat/internal/render"
	"github.com/solidcat/solidcat/internal/validate"
	"github.com/solidcat/solidcat/internal/watcher"
)

// reportSettle is how long after the last completed scan watch mode
// waits before re-rendering, so one report covers a whole batch.
const reportSettle = 250 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-validate documents as they change and re-render the index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.DocsDir
		if len(args) > 0 {
			dir = args[0]
		}

		store, err := index.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog cache: %w", err)
		}
		defer store.Close()

		loader := catalog.NewLoader(cfg.Loader)
		scanner := index.NewScanWorker(store, loader, dir, cfg.Worker)
		scanner.Start()
		defer scanner.Stop()

		w, err := watcher.New(cfg.Watcher, scanner)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer w.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := w.Start(ctx); err != nil {
			return err
		}

		log := logger.With("dir", dir, "db", cfg.DBPath)
		go reportLoop(ctx, scanner.Notify(), reportSettle, func() {
			docs, err := loader.Load(dir)
			if err != nil {
				log.Warn("re-render failed", "error", err)
				return
			}
			fmt.Println(render.New().Index(docs, validate.All(docs)))
		})

		if err := w.AddRoot(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		log.Info("watching catalog")
		<-ctx.Done()
		return contextCause(ctx)
	},
}

// reportLoop re-renders once per burst of scans: the first signal arms
// a timer, further signals reset it, and the report runs when the
// burst settles.
func reportLoop(ctx context.Context, notify <-chan struct{}, settle time.Duration, report func()) {
	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-notify:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(settle)
		case <-timer.C:
			report()
		}
	}
}

func contextCause(ctx context.Context) error {
	if ctx.Err() == context.Canceled {
		// Signal-driven shutdown is a clean exit.
		return nil
	}
	return ctx.Err()
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
