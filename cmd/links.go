package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

const defaultLinksLimit = 50

func linksCommand() *cobra.Command {
	var filter domain.LinkFilter

	cmd := &cobra.Command{
		Use:   "links",
		Short: "List discovered links and their latest verdicts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				links, err := a.links.List(ctx, filter)
				if err != nil {
					return fmt.Errorf("list links: %w", err)
				}
				total, err := a.links.Count(ctx, filter)
				if err != nil {
					return fmt.Errorf("count links: %w", err)
				}

				renderLinks(cmd.OutOrStdout(), links)
				fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d\n", len(links), total)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "broken, warning, ok or unchecked")
	cmd.Flags().StringVar(&filter.LinkType, "type", "", "internal, external, image, media or custom_field_url")
	cmd.Flags().BoolVar(&filter.IncludeDismissed, "dismissed", false, "include dismissed links")
	cmd.Flags().IntVar(&filter.Limit, "limit", defaultLinksLimit, "maximum number of links")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "number of links to skip")

	return cmd
}

func renderLinks(w io.Writer, links []*domain.Link) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "URL", "Type", "Source", "Status", "Verdict", "Last Check"})

	for _, l := range links {
		status := ""
		if l.LastCheck != nil {
			code := 0
			if l.StatusCode != nil {
				code = *l.StatusCode
			}
			status = statusCell(code, l.StatusText)
		}

		t.AppendRow(table.Row{
			l.ID,
			l.URL,
			l.LinkType,
			l.SourceType + ":" + l.SourceID,
			status,
			linkVerdict(l),
			formatOptionalTime(l.LastCheck),
		})
	}

	t.Render()
}

func linkVerdict(l *domain.Link) string {
	switch {
	case l.LastCheck == nil:
		return "unchecked"
	case l.IsBroken:
		return "broken"
	case l.IsWarning:
		return "warning"
	default:
		return "ok"
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateTime)
}
