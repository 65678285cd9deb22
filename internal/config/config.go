// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package config loads the settings of the jgrid tools from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/grid"
	"github.com/creachadair/jgrid/session"
	"gopkg.in/yaml.v3"
)

// FileNames are the names of configuration files recognized by Find, in
// order of preference.
var FileNames = []string{".jgrid.yaml", ".jgrid.yml"}

// Config is the complete configuration of the jgrid tools.
type Config struct {
	Viewer ViewerConfig `yaml:"viewer"`
	Grid   GridConfig   `yaml:"grid"`
	Export ExportConfig `yaml:"export"`
	Parse  ParseConfig  `yaml:"parse"`
}

// ViewerConfig controls the initial display of the terminal viewer.
type ViewerConfig struct {
	Theme       string `yaml:"theme"` // light or dark
	View        string `yaml:"view"`  // split or tab
	LineNumbers bool   `yaml:"line_numbers"`

	// Names of the syntax highlighting styles for each theme.
	LightStyle string `yaml:"light_style"`
	DarkStyle  string `yaml:"dark_style"`
}

// GridConfig controls how grids are displayed.
type GridConfig struct {
	HeaderCase string `yaml:"header_case"`
	CellWidth  int    `yaml:"cell_width"` // 0 means unlimited
}

// ExportConfig controls exported files.
type ExportConfig struct {
	CSVName  string `yaml:"csv_name"`
	XLSXName string `yaml:"xlsx_name"`
	Sheet    string `yaml:"sheet"`
}

// ParseConfig controls parsing.
type ParseConfig struct {
	Lenient bool `yaml:"lenient"` // allow comments and trailing commas
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Theme:       "light",
			View:        "split",
			LineNumbers: true,
			LightStyle:  "github",
			DarkStyle:   "monokai",
		},
		Grid: GridConfig{
			HeaderCase: string(grid.Raw),
			CellWidth:  24,
		},
		Export: ExportConfig{
			CSVName:  export.CSV.DefaultName(),
			XLSXName: export.XLSX.DefaultName(),
			Sheet:    export.DefaultSheet,
		},
	}
}

// Load reads the configuration file at path. Settings missing from the file
// keep their default values. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Find searches dir and its ancestors for a configuration file, and returns
// the path of the first one found, or "" if there is none.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate reports an error for each setting of c that has an unknown value.
func (c *Config) Validate() error {
	var errs []error
	switch c.Viewer.Theme {
	case "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("viewer.theme: unknown theme %q", c.Viewer.Theme))
	}
	switch c.Viewer.View {
	case "split", "tab":
	default:
		errs = append(errs, fmt.Errorf("viewer.view: unknown view %q", c.Viewer.View))
	}
	if _, ok := styles.Registry[c.Viewer.LightStyle]; !ok {
		errs = append(errs, fmt.Errorf("viewer.light_style: unknown style %q", c.Viewer.LightStyle))
	}
	if _, ok := styles.Registry[c.Viewer.DarkStyle]; !ok {
		errs = append(errs, fmt.Errorf("viewer.dark_style: unknown style %q", c.Viewer.DarkStyle))
	}
	if _, err := grid.ParseHeaderCase(c.Grid.HeaderCase); err != nil {
		errs = append(errs, fmt.Errorf("grid.header_case: %w", err))
	}
	if c.Grid.CellWidth < 0 {
		errs = append(errs, fmt.Errorf("grid.cell_width: negative width %d", c.Grid.CellWidth))
	}
	if strings.TrimSpace(c.Export.CSVName) == "" {
		errs = append(errs, errors.New("export.csv_name: empty file name"))
	}
	if strings.TrimSpace(c.Export.XLSXName) == "" {
		errs = append(errs, errors.New("export.xlsx_name: empty file name"))
	}
	return errors.Join(errs...)
}

// State returns the initial session state described by c, with no document.
func (c *Config) State() session.State {
	s := session.State{
		LineNumbers: c.Viewer.LineNumbers,
		Lenient:     c.Parse.Lenient,
	}
	if c.Viewer.Theme == "dark" {
		s.Theme = session.Dark
	}
	if c.Viewer.View == "tab" {
		s.View = session.Tabs
	}
	return s
}

// ExportOptions returns the export settings described by c.
func (c *Config) ExportOptions() export.Options {
	hc, _ := grid.ParseHeaderCase(c.Grid.HeaderCase)
	return export.Options{
		Sheet:      c.Export.Sheet,
		MaxWidth:   c.Grid.CellWidth,
		HeaderCase: hc,
	}
}

// FileName returns the configured file name for an export in format f.
func (c *Config) FileName(f export.Format) string {
	switch f {
	case export.CSV:
		return c.Export.CSVName
	case export.XLSX:
		return c.Export.XLSXName
	}
	return f.DefaultName()
}
