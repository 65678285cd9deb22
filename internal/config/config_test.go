// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/grid"
	"github.com/creachadair/jgrid/internal/config"
	"github.com/creachadair/jgrid/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaults(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "light", cfg.Viewer.Theme)
	assert.Equal(t, "split", cfg.Viewer.View)
	assert.True(t, cfg.Viewer.LineNumbers)
	assert.Equal(t, "raw", cfg.Grid.HeaderCase)
	assert.Equal(t, "data.csv", cfg.Export.CSVName)
	assert.Equal(t, "data.xlsx", cfg.Export.XLSXName)
	assert.False(t, cfg.Parse.Lenient)

	s := cfg.State()
	assert.Equal(t, session.Light, s.Theme)
	assert.Equal(t, session.Split, s.View)
	assert.True(t, s.LineNumbers)
	assert.Nil(t, s.Doc)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jgrid.yaml")
	writeFile(t, path, `
viewer:
  theme: dark
  view: tab
  line_numbers: false
  dark_style: dracula
grid:
  header_case: screaming
  cell_width: 10
export:
  csv_name: users.csv
  sheet: users
parse:
  lenient: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Viewer.Theme)
	assert.Equal(t, "dracula", cfg.Viewer.DarkStyle)
	assert.Equal(t, "github", cfg.Viewer.LightStyle, "unset values keep defaults")
	assert.Equal(t, "users.csv", cfg.FileName(export.CSV))
	assert.Equal(t, "data.xlsx", cfg.FileName(export.XLSX))
	assert.Equal(t, "", cfg.FileName(export.Table))

	s := cfg.State()
	assert.Equal(t, session.Dark, s.Theme)
	assert.Equal(t, session.Tabs, s.View)
	assert.False(t, s.LineNumbers)
	assert.True(t, s.Lenient)

	opts := cfg.ExportOptions()
	assert.Equal(t, export.Options{Sheet: "users", MaxWidth: 10, HeaderCase: grid.Screaming}, opts)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "nonesuch.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "viewer: [not, a, map")
	_, err = config.Load(bad)
	assert.ErrorContains(t, err, "parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, `
viewer:
  theme: purple
  view: stacked
  light_style: nonesuch
grid:
  header_case: Title
  cell_width: -1
export:
  csv_name: ""
  xlsx_name: "  "
`)
	_, err = config.Load(invalid)
	require.Error(t, err)
	for _, want := range []string{
		`viewer.theme: unknown theme "purple"`,
		`viewer.view: unknown view "stacked"`,
		`viewer.light_style: unknown style "nonesuch"`,
		`grid.header_case: unknown header case "Title"`,
		`grid.cell_width: negative width -1`,
		`export.csv_name: empty file name`,
		`export.xlsx_name: empty file name`,
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	assert.Equal(t, "", config.Find(deep))

	top := filepath.Join(root, "a", ".jgrid.yml")
	writeFile(t, top, "parse:\n  lenient: true\n")
	assert.Equal(t, top, config.Find(deep))

	near := filepath.Join(root, "a", "b", ".jgrid.yaml")
	writeFile(t, near, "")
	assert.Equal(t, near, config.Find(deep))

	// A directory with a configuration file's name is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(deep, ".jgrid.yaml"), 0o755))
	assert.Equal(t, near, config.Find(deep))
}
