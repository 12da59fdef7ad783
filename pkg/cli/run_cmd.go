package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sqlcoach/internal/domain"
	"sqlcoach/internal/report"
	"sqlcoach/internal/runner"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "run [exercise...]",
		Short: "Run exercises and report pass/fail",
		Long: "Runs the named exercises (default: the whole catalog in declaration order), " +
			"each in a fresh disposable database, and writes the report to stdout. " +
			"Exit code is non-zero when any exercise fails or errors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			r := runner.New(cat, opts.sandboxFactory(), opts.logger())
			rep, err := r.Run(cmd.Context(), runner.Options{
				Names:    args,
				Category: domain.Category(category),
			})
			if err != nil {
				return err
			}

			switch opts.cfg.Output {
			case report.FormatJSON:
				err = report.WriteJSON(os.Stdout, rep)
			case report.FormatHTML:
				err = report.WriteHTML(os.Stdout, rep)
			default:
				color := term.IsTerminal(int(os.Stdout.Fd()))
				err = report.WriteText(os.Stdout, rep, color)
			}
			if err != nil {
				return err
			}

			if rep.ExitCode() != 0 {
				s := rep.Summarize()
				return fmt.Errorf("%d of %d exercises did not pass", s.Fail+s.Error, s.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only run exercises of this category (constraint, index, view, trigger, function, procedure)")
	return cmd
}
