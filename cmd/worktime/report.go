package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"worktime/internal/bootstrap"
	historydto "worktime/internal/modules/history/dto"
	"worktime/internal/platform/markdown"
	"worktime/internal/platform/timefmt"
)

const reportBlock = "report"

func newReportCmd(flags *rootFlags) *cobra.Command {
	var view, date, note string
	var shift int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recorded time for a day, week, month or year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, bootstrap.Options{}, func(ctx context.Context, app *bootstrap.App) error {
				p, err := loadPrefs(ctx, app)
				if err != nil {
					return err
				}
				var anchor time.Time
				if date != "" {
					if anchor, err = parseTime(date, p.loc, time.Now()); err != nil {
						return fmt.Errorf("--date: %w", err)
					}
				}
				r, err := app.History.Report(ctx, view, anchor, shift, p.loc)
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), r, p)
				if note == "" {
					return nil
				}
				meta := map[string]any{
					"worktime_view":          r.View,
					"worktime_period":        r.Label,
					"worktime_total_seconds": r.TotalSeconds,
					"worktime_updated":       time.Now().In(p.loc).Format(time.RFC3339),
				}
				if err := markdown.UpsertNote(note, meta, reportBlock, reportMarkdown(r, p)); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note updated: %s\n", note)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", "month", "day|week|month|year")
	cmd.Flags().StringVar(&date, "date", "", "anchor date (default today)")
	cmd.Flags().IntVar(&shift, "shift", 0, "move the anchor by this many periods")
	cmd.Flags().StringVar(&note, "note", "", "markdown note to write the report into")
	return cmd
}

func cellLabel(view string, c historydto.CellOutput, loc *time.Location) string {
	if view == "year" {
		return c.Start.In(loc).Format("January")
	}
	return c.Start.In(loc).Format("Mon Jan 2")
}

func printReport(w io.Writer, r historydto.ReportOutput, p prefs) {
	_, _ = fmt.Fprintf(w, "%s  total %s, %d sessions\n", r.Label, timefmt.Duration(r.TotalSeconds), len(r.Entries))
	if r.View == "day" {
		for _, e := range r.Entries {
			_, _ = fmt.Fprintf(w, "  %s - %s  %8s  %s\n",
				timefmt.TimeOfDay(e.StartedAt, p.format, p.loc),
				timefmt.TimeOfDay(e.EndedAt, p.format, p.loc),
				timefmt.Duration(e.DurationSeconds), e.Title)
		}
		return
	}
	for _, c := range r.Cells {
		if !c.InMonth || c.TotalSeconds == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %-12s %8s  %d sessions\n", cellLabel(r.View, c, p.loc), timefmt.Duration(c.TotalSeconds), c.Sessions)
	}
}

// reportMarkdown renders the managed block body of a report note.
func reportMarkdown(r historydto.ReportOutput, p prefs) string {
	var sb strings.Builder
	sb.WriteString("## " + r.Label + "\n\n")
	sb.WriteString("Total: **" + timefmt.Duration(r.TotalSeconds) + "**\n\n")
	if r.View == "day" {
		sb.WriteString("| Start | End | Duration | Title |\n|---|---|---|---|\n")
		for _, e := range r.Entries {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				timefmt.TimeOfDay(e.StartedAt, p.format, p.loc),
				timefmt.TimeOfDay(e.EndedAt, p.format, p.loc),
				timefmt.Duration(e.DurationSeconds),
				strings.ReplaceAll(e.Title, "|", `\|`)))
		}
		return sb.String()
	}
	sb.WriteString("| Period | Time | Sessions |\n|---|---|---|\n")
	for _, c := range r.Cells {
		if !c.InMonth {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n", cellLabel(r.View, c, p.loc), timefmt.Duration(c.TotalSeconds), c.Sessions))
	}
	return sb.String()
}
