package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sqlcoach/internal/report"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the exercises in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			exercises := cat.All()

			if opts.cfg.Output == report.FormatJSON {
				type entry struct {
					Name        string   `json:"name"`
					Category    string   `json:"category"`
					Description string   `json:"description"`
					Engines     []string `json:"engines,omitempty"`
				}
				entries := make([]entry, 0, len(exercises))
				for _, ex := range exercises {
					entries = append(entries, entry{
						Name:        ex.Name,
						Category:    string(ex.Category),
						Description: ex.Description,
						Engines:     ex.Engines,
					})
				}
				return printJSON(os.Stdout, entries)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
			for _, ex := range exercises {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ex.Name, ex.Category, firstLine(ex.Description))
			}
			return w.Flush()
		},
	}
}
