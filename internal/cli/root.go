// Package cli wires the gantt2svg commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gantt2svg/internal/config"
)

// App holds the process-level collaborators shared by every command.
type App struct {
	Now        func() time.Time
	IsTerminal func(w io.Writer) bool
}

// DefaultApp uses the wall clock and reports a terminal when w is a tty.
func DefaultApp() *App {
	return &App{
		Now: time.Now,
		IsTerminal: func(w io.Writer) bool {
			f, ok := w.(*os.File)
			if !ok {
				return false
			}
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		},
	}
}

// rootOptions is filled by the persistent flags before a subcommand runs.
type rootOptions struct {
	debug      bool
	configPath string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd creates the top-level "gantt2svg" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "gantt2svg",
		Short: "Lay out schedule tables as Gantt charts",
		Long: `gantt2svg reads a schedule table with Type, Title, Start date and End date
columns and renders it as a Gantt chart with a month and year axis.

If no config file is specified, default settings will be used.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug mode for verbose output")
	pf.StringVar(&opts.configPath, "config", "", "YAML or TOML configuration file (optional)")

	root.AddCommand(
		newRenderCmd(app, opts),
		newInspectCmd(app, opts),
		newDefaultsCmd(),
		newServeCmd(app, opts),
	)
	return root
}

func (o *rootOptions) setup(stderr io.Writer) error {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	o.cfg = cfg
	o.logger.Debug("configuration loaded", "path", o.configPath,
		"width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "font_size", cfg.Font.Size)
	return nil
}
