// Command goidl generates schema packages and works with polymorphic
// envelopes of the bundled idltest types.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/reoring/goidl/i18n"
	"github.com/reoring/goidl/internal/logging"
)

type command func(args []string, s streams) int

var commands = map[string]command{
	"create":   createCmd,
	"validate": validateCmd,
	"types":    typesCmd,
	"schema":   schemaCmd,
	"gen":      genCmd,
}

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}))
}

func run(args []string, s streams) int {
	if len(args) < 1 {
		usage(s.stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(s.stderr)
		return 2
	}
	return cmd(args[1:], s)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintf(w, `goidl CLI

Usage:
  goidl create [-in FORMAT] [-out FORMAT] FILE
  goidl validate FILE...
  goidl types
  goidl schema [-type NAME]
  goidl gen -module PATH [-o DIR] [-check] SCHEMA...

Commands: %s
A FILE of "-" reads standard input. Every command accepts -log-level, -lang
and -color (also GOIDL_LOG_LEVEL, GOIDL_LANG and GOIDL_COLOR).
`, strings.Join(names, ", "))
}

// common holds the flags every subcommand accepts.
type common struct {
	logLevel string
	lang     string
	color    string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error (default $"+logging.EnvLevel+" or warn)")
	fs.StringVar(&c.lang, "lang", os.Getenv("GOIDL_LANG"), "message language: en or ja")
	fs.StringVar(&c.color, "color", envOr("GOIDL_COLOR", "auto"), "colour output: auto, always or never")
}

// session is the per-invocation state built from common flags.
type session struct {
	streams
	log              *zap.Logger
	red, green, bold *color.Color
}

func (c *common) open(s streams) (*session, error) {
	lvl, err := logging.Level(c.logLevel)
	if err != nil {
		return nil, err
	}
	if c.lang != "" {
		i18n.SetLanguage(c.lang)
	}
	var on bool
	switch c.color {
	case "always":
		on = true
	case "never":
		on = false
	case "auto", "":
		on = os.Getenv("NO_COLOR") == "" && logging.IsTerminal(s.stdout)
	default:
		return nil, fmt.Errorf("unknown -color %q", c.color)
	}
	paint := func(attrs ...color.Attribute) *color.Color {
		cl := color.New(attrs...)
		if on {
			cl.EnableColor()
		} else {
			cl.DisableColor()
		}
		return cl
	}
	return &session{
		streams: s,
		log:     logging.New(lvl, s.stderr),
		red:     paint(color.FgRed),
		green:   paint(color.FgGreen),
		bold:    paint(color.Bold),
	}, nil
}

func (s *session) close() { _ = s.log.Sync() }

func (s *session) fail(err error) int {
	s.red.Fprintf(s.stderr, "error: ")
	fmt.Fprintln(s.stderr, err)
	return 1
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parse parses args into fs and opens a session. A nil session means the
// caller should return code.
func parse(fs *flag.FlagSet, c *common, args []string, s streams) (*session, int) {
	fs.SetOutput(s.stderr)
	if err := fs.Parse(args); err != nil {
		return nil, 2
	}
	sess, err := c.open(s)
	if err != nil {
		fmt.Fprintln(s.stderr, "error:", err)
		return nil, 2
	}
	return sess, 0
}
