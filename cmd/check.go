package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/link-checker/internal/checker"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

var errBrokenLinks = errors.New("broken links found")

func checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check URL...",
		Short: "Probe URLs and print their verdicts",
		Long: `Check probes each URL with the configured checker settings and prints a table
of verdicts. Nothing is stored and no database is needed. The command exits
non-zero when any URL is broken.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			c := checker.New(cfg.Checker)
			results := make([]domain.CheckResult, 0, len(args))
			for _, u := range args {
				results = append(results, c.Check(cmd.Context(), u))
			}

			renderCheckResults(cmd.OutOrStdout(), results)

			for _, r := range results {
				if r.IsBroken {
					return errBrokenLinks
				}
			}
			return nil
		},
	}
}

func renderCheckResults(w io.Writer, results []domain.CheckResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"URL", "Status", "Verdict", "Redirects", "Final URL", "Time", "Error"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.URL,
			statusCell(r.StatusCode, r.StatusText),
			r.Outcome(),
			r.RedirectCount,
			r.RedirectURL,
			fmt.Sprintf("%.2fs", r.ResponseTime),
			r.ErrorMessage,
		})
	}

	t.Render()
}

func statusCell(code int, text string) string {
	if code == 0 {
		return text
	}
	return strconv.Itoa(code) + " " + text
}
