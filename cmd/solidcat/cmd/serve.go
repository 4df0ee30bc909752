package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/index"
	"github.com/solidcat/solidcat/internal/logger"
	"github.com/solidcat/solidcat/internal/server"
	"github.com/solidcat/solidcat/internal/tools"
	catalogtools "github.com/solidcat/solidcat/internal/tools/catalog"
)

var serveNoCache bool

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Expose catalog tools over JSON-RPC on stdio",
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

		svc := &catalogtools.Service{
			Dir:    dir,
			Loader: catalog.NewLoader(cfg.Loader),
		}

		if !serveNoCache {
			store, err := index.NewStore(cfg.DBPath)
			if err != nil {
				logger.Warn("catalog cache unavailable, serving without it", "error", err)
			} else {
				defer store.Close()
				svc.Store = store
			}
		}

		registry := tools.NewRegistry()
		for _, tool := range catalogtools.GetTools(svc) {
			if err := registry.Register(tool); err != nil {
				return fmt.Errorf("register tool: %w", err)
			}
		}

		logger.Info("serving catalog tools", "dir", dir, "tools", registry.Names())
		return server.New(registry).ServeStdio(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "serve without the sqlite catalog cache")
	rootCmd.AddCommand(serveCmd)
}
