package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sqlcoach/internal/report"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sqlcoach version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if opts.cfg.Output == report.FormatJSON {
				return printJSON(os.Stdout, map[string]string{
					"version": version,
					"commit":  commit,
				})
			}
			_, _ = fmt.Fprintf(os.Stdout, "sqlcoach version %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
