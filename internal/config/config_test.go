package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Start date", cfg.Columns.Start)
	assert.Equal(t, "Start date", cfg.ScheduleColumns().Start)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, "chart.yaml", `
canvas:
  width: 1024
layout:
  bar_height: 16
colors:
  activity: "#00ff00"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height)
	assert.Equal(t, 16.0, cfg.Layout.BarHeight)
	assert.Equal(t, 10.0, cfg.Layout.RowGap)
	assert.Equal(t, "#00ff00", cfg.Colors.Activity)
	assert.Equal(t, "#e65100", cfg.Colors.Milestone)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "chart.toml", `
[canvas]
height = 300

[columns]
title = "Name"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Canvas.Height)
	assert.Equal(t, "Name", cfg.Columns.Title)
	assert.Equal(t, "Type", cfg.Columns.Type)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	_, err = Load(writeFile(t, "bad.yaml", "canvas: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing config file")

	_, err = Load(writeFile(t, "invalid.yaml", "canvas:\n  width: -5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canvas size must be positive")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero bar height", func(c *Config) { c.Layout.BarHeight = 0 }, "bar_height"},
		{"negative buffer", func(c *Config) { c.Layout.Buffer = -1 }, "spacing"},
		{"floor above base", func(c *Config) { c.Font.AxisMin = 20 }, "axis_min"},
		{"opacity", func(c *Config) { c.Colors.LabelBackgroundOpacity = 2 }, "opacity"},
		{"empty column", func(c *Config) { c.Columns.End = "" }, "column names"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestWithCanvas(t *testing.T) {
	cfg := Default().WithCanvas(1200, 0)
	assert.Equal(t, 1200, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height)
	assert.Equal(t, 800, Default().Canvas.Width, "defaults are unaffected")
}

func TestDefaultMarshalsToYAML(t *testing.T) {
	out, err := yaml.Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(out), "label_background_opacity: 0.7")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, Default(), back)
}
