// Command jsonfix checks, repairs and formats JSON documents.
//
//	jsonfix [flags] check|repair|fmt|min|tokens [file]
//
// The document is read from file, or from standard input when file is
// omitted or "-". Exit status is 1 when the document is not valid JSON and 2
// on usage errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/jsonfix"
	"charm.land/jsonfix/highlight"
	"github.com/charmbracelet/log/v2"
	"github.com/charmbracelet/x/term"
	_ "github.com/joho/godotenv/autoload"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

var errUnsupportedUpload = errors.New("unsupported file type")

var uploadExtensions = map[string]bool{
	".json":  true,
	".jsonc": true,
	".json5": true,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Environ()))
}

type cli struct {
	stdout io.Writer
	color  bool
	opts   []jsonfix.Option
	logger *log.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, environ []string) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "jsonfix"})

	cfg, err := jsonfix.LoadConfig(environ)
	if err != nil {
		logger.Error("could not load configuration", "err", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("jsonfix", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, "strict grammar: encoding/json or jsontext")
	fs.BoolVar(&cfg.Fallback, "fallback", cfg.Fallback, "try the fallback repair rules")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "deepest nesting repair accepts")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	colorMode := fs.String("color", "auto", "auto, always or never")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: jsonfix [flags] check|repair|fmt|min|tokens [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, "jsonfix", jsonfix.Version)
		return exitOK
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error("invalid log level", "level", cfg.LogLevel)
		return exitUsage
	}
	logger.SetLevel(level)
	slog.SetDefault(slog.New(logger))

	opts, err := cfg.Options()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return exitUsage
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return exitUsage
	}
	command, name := fs.Arg(0), fs.Arg(1)

	text, err := readInput(name, stdin)
	if err != nil {
		logger.Error("could not read input", "err", err)
		return exitUsage
	}

	c := cli{
		stdout: stdout,
		color:  useColor(*colorMode, stdout),
		opts:   opts,
		logger: logger,
	}
	if name == "" {
		name = "stdin"
	}
	doc := jsonfix.Check(text, opts...)

	switch command {
	case "check":
		return c.check(name, doc)
	case "repair":
		return c.repair(name, doc)
	case "fmt":
		return c.format(name, doc, jsonfix.Document.Pretty)
	case "min":
		return c.format(name, doc, jsonfix.Document.Minify)
	case "tokens":
		return c.tokens(doc)
	default:
		logger.Error("unknown command", "command", command)
		fs.Usage()
		return exitUsage
	}
}

func readInput(name string, stdin io.Reader) (string, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	if ext := strings.ToLower(filepath.Ext(name)); !uploadExtensions[ext] {
		return "", fmt.Errorf("%w: %s", errUnsupportedUpload, ext)
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func (c cli) print(text string) {
	if c.color {
		text = highlight.Render(text, highlight.DefaultTheme())
	}
	fmt.Fprintln(c.stdout, text)
}

// report prints why doc is not valid and returns the exit status for it.
func (c cli) report(name string, doc jsonfix.Document) int {
	if doc.State == jsonfix.StateEmpty {
		fmt.Fprintf(c.stdout, "%s: %v\n", name, jsonfix.ErrEmptyInput)
		return exitInvalid
	}
	d := doc.Diagnostic()
	if d == nil {
		fmt.Fprintf(c.stdout, "%s: %v\n", name, doc.Err())
		return exitInvalid
	}
	if d.HasLineColumn() {
		fmt.Fprintf(c.stdout, "%s:%d:%d: %s\n", name, d.Line, d.Column, d.Message)
	} else {
		fmt.Fprintf(c.stdout, "%s: %s\n", name, d.Message)
	}
	return exitInvalid
}

func (c cli) check(name string, doc jsonfix.Document) int {
	if !doc.Valid() {
		return c.report(name, doc)
	}
	fmt.Fprintf(c.stdout, "%s: valid\n", name)
	return exitOK
}

func (c cli) repair(name string, doc jsonfix.Document) int {
	if doc.State == jsonfix.StateInvalid {
		doc = doc.Repair(c.opts...)
	}
	if !doc.Valid() {
		c.logger.Warn("no safe repair found", "input", name)
		return c.report(name, doc)
	}
	c.print(doc.Input)
	return exitOK
}

func (c cli) format(name string, doc jsonfix.Document, render func(jsonfix.Document) (string, error)) int {
	out, err := render(doc)
	if err != nil {
		return c.report(name, doc)
	}
	c.print(out)
	return exitOK
}

func (c cli) tokens(doc jsonfix.Document) int {
	for _, tok := range doc.Tokens() {
		fmt.Fprintf(c.stdout, "%-12s %s\n", tok.Kind, strconv.Quote(tok.Text))
	}
	return exitOK
}
