// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program jgrid checks, formats, and explores JSON documents as grids.
//
// Usage:
//
//	jgrid [flags] <command> [args]
//
// With no command, jgrid opens the named file (or stdin, or a sample
// document) in the terminal viewer. Run "jgrid --help" for the commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jgrid/internal/config"
	"github.com/creachadair/jgrid/session"
	"golang.org/x/term"
)

// Version is the version of the jgrid program.
const Version = "0.1.0"

// Globals are flags shared by all commands.
type Globals struct {
	Config  string `help:"Path of the configuration file (default: search for .jgrid.yaml)." type:"path" placeholder:"FILE"`
	Debug   bool   `help:"Log diagnostics to stderr." short:"d"`
	Lenient bool   `help:"Allow comments and trailing commas in the input." short:"l"`
	LogFile string `help:"Write viewer diagnostics to this file." type:"path" placeholder:"FILE"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Check   checkCmd   `cmd:"" help:"Report whether the input is valid JSON and how it projects onto a grid."`
	Format  formatCmd  `cmd:"" help:"Print the input in canonical form."`
	Grid    gridCmd    `cmd:"" help:"Print the grid projection of the input as a table."`
	Locate  locateCmd  `cmd:"" help:"Print the span of canonical text a grid cell came from."`
	Export  exportCmd  `cmd:"" help:"Export the grid to CSV, XLSX, or a text table."`
	View    viewCmd    `cmd:"" default:"withargs" help:"Open the input in the terminal viewer."`
	Version versionCmd `cmd:"" help:"Print version information."`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, UserFriendlyError(err))
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...kong.Option) error {
	var cli CLI
	parser, err := kong.New(&cli, append([]kong.Option{
		kong.Name("jgrid"),
		kong.Description("Check, format, and explore JSON documents as grids."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	}, opts...)...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	e, err := newEnv(cli.Globals, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	e.log.Printf("running %q", ctx.Command())
	return ctx.Run(e)
}

// env is the environment shared by the commands.
type env struct {
	cfg     *config.Config
	log     *log.Logger
	lenient bool
	logFile string

	stdin          io.Reader
	stdout, stderr io.Writer
}

func newEnv(g Globals, stdin io.Reader, stdout, stderr io.Writer) (*env, error) {
	logger := log.New(io.Discard, "jgrid: ", log.LstdFlags)
	if g.Debug {
		logger.SetOutput(stderr)
	}
	path := g.Config
	if path == "" {
		path = config.Find(".")
	}
	cfg := config.New()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, newError(ErrorTypeConfig, "cannot load configuration", err)
		}
		logger.Printf("loaded configuration from %q", path)
	}
	return &env{
		cfg:     cfg,
		log:     logger,
		lenient: g.Lenient || cfg.Parse.Lenient,
		logFile: g.LogFile,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

// isTerminal reports whether f is an *os.File attached to a terminal.
func isTerminal(f any) bool {
	file, ok := f.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// readInput returns the contents of the named file, or of stdin if name is
// empty or "-". Reading from a terminal is not allowed.
func (e *env) readInput(name string) (string, error) {
	if name == "" || name == "-" {
		if isTerminal(e.stdin) {
			return "", newError(ErrorTypeInput, "no input provided", ErrNoInput)
		}
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", newError(ErrorTypeInput, "failed to read from stdin", err)
		}
		e.log.Printf("read %d bytes from stdin", len(data))
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", newError(ErrorTypeInput, fmt.Sprintf("file %q not found", name), ErrFileNotFound)
	} else if err != nil {
		return "", newError(ErrorTypeInput, fmt.Sprintf("failed to read %q", name), err)
	}
	e.log.Printf("read %d bytes from %q", len(data), name)
	return string(data), nil
}

// newSession returns a new session for text with the configured settings.
func (e *env) newSession(text string) session.State {
	st := e.cfg.State()
	st.Lenient = e.lenient
	return session.New(text, st)
}

// load reads and parses the named input. It reports an error if the input
// is not valid JSON.
func (e *env) load(name string) (session.State, error) {
	text, err := e.readInput(name)
	if err != nil {
		return session.State{}, err
	}
	st := e.newSession(text)
	if err := st.Doc.Err; err != nil {
		return st, newError(ErrorTypeParsing, "invalid JSON", err)
	}
	e.log.Printf("document is %v", st.Doc.Phase())
	return st, nil
}

// loadGrid is as load, but also reports an error if the input is not
// tabular.
func (e *env) loadGrid(name string) (session.State, error) {
	st, err := e.load(name)
	if err != nil {
		return st, err
	}
	if st.Doc.Grid == nil {
		if st.Doc.Value == nil {
			return st, newError(ErrorTypeInput, "the input is empty", ErrNoInput)
		}
		return st, newError(ErrorTypeGrid, "no grid projection", st.Doc.GridErr)
	}
	return st, nil
}
