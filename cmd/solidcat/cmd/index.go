package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/index"
	"github.com/solidcat/solidcat/internal/validate"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Refresh the sqlite catalog cache",
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

		loader := catalog.NewLoader(cfg.Loader)
		docs, err := loader.Load(dir)
		if err != nil {
			return err
		}

		store, err := index.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog cache: %w", err)
		}
		defer store.Close()

		for _, doc := range docs {
			result := validate.Document(doc)
			status := index.StatusPass
			if !result.Pass {
				status = index.StatusFail
			}

			rec := &index.Record{
				Path:        doc.Path,
				Principle:   doc.Principle.String(),
				Title:       doc.Title,
				ContentHash: doc.ContentHash,
				Encoding:    doc.Encoding,
				Status:      status,
				Missing:     validate.MissingNames(result),
				ValidatedAt: time.Now().UTC(),
			}
			if _, err := store.Upsert(rec); err != nil {
				return fmt.Errorf("store %s: %w", doc.Path, err)
			}
		}

		stats, err := store.Stats()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents (%d passing, %d failing) into %s\n",
			stats.TotalDocuments, stats.Passing, stats.Failing, cfg.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
