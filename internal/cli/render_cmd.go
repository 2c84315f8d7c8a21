package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gantt2svg/internal/gantt"
	"gantt2svg/internal/measure"
	"gantt2svg/internal/render"
	"gantt2svg/internal/source"
)

// layoutFlags are shared by the commands that lay out a CSV file.
type layoutFlags struct {
	csvPath string
	width   int
	height  int
	today   string
	fonts   string
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.csvPath, "csv", "", "CSV file with schedule data (required)")
	fs.IntVar(&f.width, "width", 0, "Canvas width in pixels (overrides config)")
	fs.IntVar(&f.height, "height", 0, "Canvas height in pixels (overrides config)")
	fs.StringVar(&f.today, "today", "", "Date of the today marker as YYYY-MM-DD (default: current UTC date)")
	fs.StringVar(&f.fonts, "fonts", "go", "Text measurement: go (embedded Go fonts) or estimate")
}

// layout reads the CSV file and runs the engine. It returns the measurer
// used so PNG output can draw with the same faces.
func (f *layoutFlags) layout(app *App, opts *rootOptions) (*gantt.Chart, measure.Measurer, error) {
	if f.csvPath == "" {
		return nil, nil, fmt.Errorf("CSV file is required. Use --csv to specify the file")
	}

	var m measure.Measurer
	switch f.fonts {
	case "go":
		faces, err := measure.NewFaces()
		if err != nil {
			return nil, nil, err
		}
		m = faces
	case "estimate":
		m = measure.NewEstimator()
	default:
		return nil, nil, fmt.Errorf("unknown --fonts value %q (want go or estimate)", f.fonts)
	}

	now := app.Now
	if f.today != "" {
		t, err := time.Parse("2006-01-02", f.today)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", f.today)
		}
		now = func() time.Time { return t }
	}

	table, err := source.ReadCSVFile(f.csvPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	opts.logger.Debug("parsed CSV", "path", f.csvPath, "rows", len(table.Rows), "columns", len(table.Header))

	e := &gantt.Engine{
		Config:   opts.cfg.WithCanvas(f.width, f.height),
		Measurer: m,
		Now:      now,
		Logger:   opts.logger,
	}
	chart, err := e.Layout(table.Header, table.Rows)
	if err != nil {
		return nil, nil, err
	}
	return chart, m, nil
}

func newRenderCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		lf     layoutFlags
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a CSV schedule to SVG or PNG",
		Example: `  gantt2svg render --csv plan.csv --config gantt.yaml --output plan.svg
  gantt2svg render --csv plan.csv --format png --today 2024-03-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "svg" && format != "png" {
				return fmt.Errorf("unknown --format %q (want svg or png)", format)
			}
			if format == "png" && lf.fonts != "go" {
				return fmt.Errorf("png output requires --fonts go")
			}

			path := getOutputFilename(lf.csvPath, output, "."+format)
			stdout := cmd.OutOrStdout()
			if path == "-" && format == "png" && app.IsTerminal(stdout) {
				return fmt.Errorf("refusing to write PNG to a terminal; use --output")
			}

			chart, m, err := lf.layout(app, opts)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if format == "png" {
				err = render.PNG(&buf, chart, m.(*measure.Faces))
			} else {
				err = render.SVG(&buf, chart)
			}
			if err != nil {
				return fmt.Errorf("error rendering %s: %w", format, err)
			}

			if path == "-" {
				_, err = stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("error writing %s file: %w", strings.ToUpper(format), err)
			}
			fmt.Fprintf(stdout, "Loaded %d records from %s\n", len(chart.Rows), lf.csvPath)
			fmt.Fprintf(stdout, "Gantt chart generated successfully: %s\n", path)
			return nil
		},
	}

	fs := cmd.Flags()
	lf.register(fs)
	fs.StringVarP(&output, "output", "o", "", "Output filename, or - for stdout (default: CSV name with the format's extension)")
	fs.StringVar(&format, "format", "svg", "Output format: svg or png")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

// getOutputFilename returns outputFile when set, otherwise the CSV file's
// base name with its extension replaced by ext ("data.csv" becomes
// "data.svg").
func getOutputFilename(csvFile, outputFile, ext string) string {
	if outputFile != "" {
		return outputFile
	}
	base := filepath.Base(csvFile)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
