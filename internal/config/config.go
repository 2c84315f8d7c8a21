// Package config holds the immutable layout configuration for a Gantt chart
// render and loads it from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gantt2svg/internal/schedule"
)

// Canvas is the fixed drawing surface.
type Canvas struct {
	Width      int    `yaml:"width" toml:"width"`           // Canvas width in pixels
	Height     int    `yaml:"height" toml:"height"`         // Canvas height in pixels
	Background string `yaml:"background" toml:"background"` // Background fill (hex color code)
}

// Layout holds the geometry constants of the chart.
type Layout struct {
	Buffer      float64 `yaml:"buffer" toml:"buffer"`             // Horizontal edge buffer on both sides of the time axis
	LabelGap    float64 `yaml:"label_gap" toml:"label_gap"`       // Gap between a bar or diamond and its label
	BarHeight   float64 `yaml:"bar_height" toml:"bar_height"`     // Height of an activity bar
	RowGap      float64 `yaml:"row_gap" toml:"row_gap"`           // Vertical gap between rows
	LabelInset  float64 `yaml:"label_inset" toml:"label_inset"`   // Inset of a label drawn inside its bar
	DiamondSize float64 `yaml:"diamond_size" toml:"diamond_size"` // Distance from a milestone diamond's centre to a vertex
	MonthBand   float64 `yaml:"month_band" toml:"month_band"`     // Height of the month label band below the rows
	YearBand    float64 `yaml:"year_band" toml:"year_band"`       // Height of the year label band below the months
}

// Font controls row and axis label text.
type Font struct {
	Family   string  `yaml:"family" toml:"family"`       // Font family for all text (e.g., "Arial, sans-serif")
	Size     float64 `yaml:"size" toml:"size"`           // Row label font size in pixels
	AxisBase float64 `yaml:"axis_base" toml:"axis_base"` // Starting size for axis label shrink-to-fit
	AxisMin  float64 `yaml:"axis_min" toml:"axis_min"`   // Floor size for axis label shrink-to-fit
	AxisStep float64 `yaml:"axis_step" toml:"axis_step"` // Decrement per shrink-to-fit step
}

// Colors are hex color codes for every drawn element.
type Colors struct {
	Activity               string  `yaml:"activity" toml:"activity"`
	Milestone              string  `yaml:"milestone" toml:"milestone"`
	Grid                   string  `yaml:"grid" toml:"grid"`
	YearLine               string  `yaml:"year_line" toml:"year_line"`
	Today                  string  `yaml:"today" toml:"today"`
	Text                   string  `yaml:"text" toml:"text"`
	InsideText             string  `yaml:"inside_text" toml:"inside_text"`
	AxisText               string  `yaml:"axis_text" toml:"axis_text"`
	LabelBackground        string  `yaml:"label_background" toml:"label_background"`
	LabelBackgroundOpacity float64 `yaml:"label_background_opacity" toml:"label_background_opacity"`
}

// Columns names the required header cells of the source table.
type Columns struct {
	Type  string `yaml:"type" toml:"type"`
	Start string `yaml:"start" toml:"start"`
	End   string `yaml:"end" toml:"end"`
	Title string `yaml:"title" toml:"title"`
}

// Config is the complete render configuration. It is passed by value and
// never mutated during a layout.
type Config struct {
	Canvas  Canvas  `yaml:"canvas" toml:"canvas"`
	Layout  Layout  `yaml:"layout" toml:"layout"`
	Font    Font    `yaml:"font" toml:"font"`
	Colors  Colors  `yaml:"colors" toml:"colors"`
	Columns Columns `yaml:"columns" toml:"columns"`
}

// Default returns the configuration used when no file is given: an 800x400
// canvas, 20px bars, 12px labels and axis labels that shrink from 14px down
// to 6px.
func Default() Config {
	cols := schedule.DefaultColumns()
	return Config{
		Canvas: Canvas{
			Width:      800,
			Height:     400,
			Background: "#ffffff",
		},
		Layout: Layout{
			Buffer:      10,
			LabelGap:    5,
			BarHeight:   20,
			RowGap:      10,
			LabelInset:  4,
			DiamondSize: 8,
			MonthBand:   24,
			YearBand:    24,
		},
		Font: Font{
			Family:   "Arial, sans-serif",
			Size:     12,
			AxisBase: 14,
			AxisMin:  6,
			AxisStep: 1,
		},
		Colors: Colors{
			Activity:               "#4285f4",
			Milestone:              "#e65100",
			Grid:                   "#cccccc",
			YearLine:               "#333333",
			Today:                  "#d93025",
			Text:                   "#333333",
			InsideText:             "#ffffff",
			AxisText:               "#333333",
			LabelBackground:        "#ffffff",
			LabelBackgroundOpacity: 0.7,
		},
		Columns: Columns{
			Type:  cols.Type,
			Start: cols.Start,
			End:   cols.End,
			Title: cols.Title,
		},
	}
}

// Load reads a configuration file on top of the defaults, so a file only
// needs the keys it overrides. Files ending in .toml are parsed as TOML,
// everything else as YAML. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a layout cannot work without.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Layout.BarHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout.bar_height must be positive"))
	}
	if c.Layout.Buffer < 0 || c.Layout.LabelGap < 0 || c.Layout.RowGap < 0 || c.Layout.LabelInset < 0 {
		errs = append(errs, fmt.Errorf("layout spacing values must not be negative"))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font.size must be positive"))
	}
	if c.Font.AxisMin <= 0 || c.Font.AxisStep <= 0 {
		errs = append(errs, fmt.Errorf("font.axis_min and font.axis_step must be positive"))
	}
	if c.Font.AxisMin > c.Font.AxisBase {
		errs = append(errs, fmt.Errorf("font.axis_min (%g) exceeds font.axis_base (%g)", c.Font.AxisMin, c.Font.AxisBase))
	}
	if c.Colors.LabelBackgroundOpacity < 0 || c.Colors.LabelBackgroundOpacity > 1 {
		errs = append(errs, fmt.Errorf("colors.label_background_opacity must be within [0, 1]"))
	}
	for _, name := range []string{c.Columns.Type, c.Columns.Start, c.Columns.End, c.Columns.Title} {
		if name == "" {
			errs = append(errs, fmt.Errorf("column names must not be empty"))
			break
		}
	}
	return errors.Join(errs...)
}

// ScheduleColumns converts the configured header names for the normalizer.
func (c Config) ScheduleColumns() schedule.Columns {
	return schedule.Columns{
		Type:  c.Columns.Type,
		Start: c.Columns.Start,
		End:   c.Columns.End,
		Title: c.Columns.Title,
	}
}

// WithCanvas returns a copy with the canvas size replaced by any positive
// width or height given.
func (c Config) WithCanvas(width, height int) Config {
	if width > 0 {
		c.Canvas.Width = width
	}
	if height > 0 {
		c.Canvas.Height = height
	}
	return c
}
