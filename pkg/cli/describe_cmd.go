package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sqlcoach/internal/report"
)

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Show one exercise's SQL and expected effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			ex, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			if opts.cfg.Output == report.FormatJSON {
				return printJSON(os.Stdout, map[string]interface{}{
					"name":        ex.Name,
					"category":    string(ex.Category),
					"description": ex.Description,
					"engines":     ex.Engines,
					"setup":       ex.Setup,
					"sql":         ex.SQL,
				})
			}

			fmt.Printf("name:     %s\n", ex.Name)
			fmt.Printf("category: %s\n", ex.Category)
			if len(ex.Engines) > 0 {
				fmt.Printf("engines:  %s\n", strings.Join(ex.Engines, ", "))
			}
			if ex.Description != "" {
				fmt.Printf("\n%s\n", strings.TrimSpace(ex.Description))
			}
			if ex.Setup != "" {
				fmt.Printf("\n-- setup\n%s", ex.Setup)
			}
			if ex.SQL != "" {
				fmt.Printf("\n-- exercise\n%s", ex.SQL)
			}
			return nil
		},
	}
}
