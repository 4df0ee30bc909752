package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/render"
	"github.com/solidcat/solidcat/internal/validate"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Load, validate and print the catalog index",
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

		results := validate.All(docs)
		fmt.Fprint(cmd.OutOrStdout(), render.New().Index(docs, results))

		if checkStrict {
			for _, result := range results {
				if !result.Pass {
					return fmt.Errorf("%d of %d documents failed validation",
						countFailing(results), len(docs))
				}
			}
		}
		return nil
	},
}

func countFailing(results map[catalog.Principle]validate.Result) int {
	failing := 0
	for _, result := range results {
		if !result.Pass {
			failing++
		}
	}
	return failing
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit non-zero when any document fails validation")
	rootCmd.AddCommand(checkCmd)
}
