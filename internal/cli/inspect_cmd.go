package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"gantt2svg/internal/gantt"
)

func newInspectCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		lf       layoutFlags
		commands bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the computed layout of a CSV schedule",
		Long: `Inspect lays out a CSV schedule without rendering it and prints the time
range, the scale and one line per row. With --commands it prints the draw
command list instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := lf.layout(app, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Range:   %s to %s (%s days)\n",
				chart.Range.Start.Format("2006-01-02"), chart.Range.End.Format("2006-01-02"), fixed(chart.Range.Days(), 0))
			fmt.Fprintf(out, "Scale:   %s px/day\n", fixed(chart.Scale.PixelsPerDay, 3))
			if chart.TodayShown {
				fmt.Fprintf(out, "Today:   %s\n", chart.Today.Format("2006-01-02"))
			}
			if commands {
				renderCommandTable(out, chart.Commands)
			} else {
				renderRowTable(out, chart.Rows)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	lf.register(fs)
	fs.BoolVar(&commands, "commands", false, "Print draw commands instead of rows")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderRowTable(out io.Writer, rows []gantt.Row) {
	t := newTable(out, table.Row{"#", "Kind", "Title", "Start", "End", "X0", "X1", "Label"})
	for _, r := range rows {
		rec := r.Record
		row := table.Row{rec.Row + 1, string(rec.Kind), rec.Title, day(rec.HasStart(), rec.Start.Format("2006-01-02")),
			day(rec.HasEnd(), rec.End.Format("2006-01-02"))}
		if r.Drawn {
			row = append(row, fixed(r.X0, 1), fixed(r.X1, 1), fmt.Sprintf("%s @ %s", r.Label.Tier, fixed(r.Label.X, 1)))
		} else {
			row = append(row, "", "", "not drawn")
		}
		t.AppendRow(row)
	}
	t.Render()
}

func renderCommandTable(out io.Writer, cmds []gantt.Command) {
	t := newTable(out, table.Row{"#", "Command", "Geometry", "Style"})
	for i, c := range cmds {
		var kind, geom, style string
		switch c := c.(type) {
		case gantt.Rect:
			kind = "rect"
			geom = fmt.Sprintf("x=%s y=%s w=%s h=%s", fixed(c.X, 1), fixed(c.Y, 1), fixed(c.W, 1), fixed(c.H, 1))
			style = c.Fill
			if c.Stroke != "" {
				style = "stroke " + c.Stroke
			}
		case gantt.Line:
			kind = "line"
			geom = fmt.Sprintf("(%s,%s)-(%s,%s)", fixed(c.X1, 1), fixed(c.Y1, 1), fixed(c.X2, 1), fixed(c.Y2, 1))
			style = fmt.Sprintf("%s w%s", c.Stroke, fixed(c.Width, 0))
		case gantt.Diamond:
			kind = "diamond"
			geom = fmt.Sprintf("c=(%s,%s) r=%s", fixed(c.CX, 1), fixed(c.CY, 1), fixed(c.Size, 1))
			style = c.Fill
		case gantt.Text:
			kind = "text"
			geom = fmt.Sprintf("(%s,%s) %q", fixed(c.X, 1), fixed(c.Y, 1), c.Content)
			style = fmt.Sprintf("%s %spx %s", c.Fill, fixed(c.Font.Size, 1), c.Align)
		}
		t.AppendRow(table.Row{i, kind, geom, style})
	}
	t.Render()
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func day(ok bool, s string) string {
	if !ok {
		return "-"
	}
	return s
}
