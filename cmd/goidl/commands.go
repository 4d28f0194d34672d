package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/goidl"
	"github.com/reoring/goidl/codec"
	"github.com/reoring/goidl/gen"
	"github.com/reoring/goidl/idl"
	"github.com/reoring/goidl/idltest"
	js "github.com/reoring/goidl/jsonschema"
)

func createCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	var c common
	c.register(fs)
	in := fs.String("in", "", "input format: json or yaml (default from the file extension)")
	out := fs.String("out", "json", "output format: json or yaml")
	dups := fs.Bool("allow-duplicate-keys", false, "let repeated keys through, the last one wins")
	sess, code := parse(fs, &c, args, s)
	if sess == nil {
		return code
	}
	defer sess.close()
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	outFmt, err := codec.ByName(*out)
	if err != nil {
		return sess.fail(err)
	}
	v, err := sess.create(fs.Arg(0), *in, codec.DecodeOpt{AllowDuplicateKeys: *dups})
	if err != nil {
		sess.report(err)
		return 1
	}
	data, err := codec.Encode(outFmt, v)
	if err != nil {
		sess.report(err)
		return 1
	}
	sess.stdout.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		io.WriteString(sess.stdout, "\n")
	}
	return 0
}

func validateCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	var c common
	c.register(fs)
	in := fs.String("in", "", "input format: json or yaml (default from the file extension)")
	sess, code := parse(fs, &c, args, s)
	if sess == nil {
		return code
	}
	defer sess.close()
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	failed := 0
	for _, p := range fs.Args() {
		v, err := sess.create(p, *in, codec.DecodeOpt{})
		if err == nil {
			_, err = v.Serialize()
		}
		if err != nil {
			failed++
			sess.red.Fprint(sess.stdout, "FAIL")
			fmt.Fprintf(sess.stdout, " %s\n", p)
			sess.report(err)
			continue
		}
		sess.green.Fprint(sess.stdout, "ok")
		fmt.Fprintf(sess.stdout, "   %s %s\n", p, v.FullClassName())
	}
	sess.log.Debug("validated", zap.Int("files", fs.NArg()), zap.Int("failed", failed))
	if failed > 0 {
		return 1
	}
	return 0
}

func typesCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	var c common
	c.register(fs)
	sess, code := parse(fs, &c, args, s)
	if sess == nil {
		return code
	}
	defer sess.close()
	for _, d := range idltest.Descriptors() {
		fmt.Fprintf(sess.stdout, "%s\t0x%016x\n", d.FullClassName, d.Fingerprint())
	}
	return 0
}

func schemaCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	var c common
	c.register(fs)
	typ := fs.String("type", "", "print the schema of one type (full class name or package name) instead of the envelope union")
	sess, code := parse(fs, &c, args, s)
	if sess == nil {
		return code
	}
	defer sess.close()
	var out *js.Schema
	if *typ == "" {
		out = idltest.NewRegistry(goidl.WithLogger(sess.log)).JSONSchema()
	} else {
		for _, d := range idltest.Descriptors() {
			if d.FullClassName == *typ || d.PackageName == *typ {
				out = d.JSONSchema()
				out.Schema = js.Draft
			}
		}
		if out == nil {
			return sess.fail(fmt.Errorf("unknown type %q", *typ))
		}
	}
	data, err := gojson.MarshalIndent(out, "", "  ")
	if err != nil {
		return sess.fail(err)
	}
	sess.stdout.Write(append(data, '\n'))
	return 0
}

func genCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	var c common
	c.register(fs)
	var cfg gen.Config
	fs.StringVar(&cfg.OutDir, "o", ".", "output directory, the root of -module")
	fs.StringVar(&cfg.ModulePath, "module", "", "import path of the output directory")
	fs.StringVar(&cfg.Runtime, "runtime", gen.DefaultRuntime, "import path of the runtime package")
	fs.IntVar(&cfg.Concurrency, "j", 0, "render at most N units at once (0 means no limit)")
	check := fs.Bool("check", false, "report files that differ from the generated output instead of writing")
	sess, code := parse(fs, &c, args, s)
	if sess == nil {
		return code
	}
	defer sess.close()
	if cfg.ModulePath == "" || fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cfg.Logger = sess.log

	files, err := idl.Load(fs.Args()...)
	if err != nil {
		return sess.fail(err)
	}
	types, err := idl.Resolve(files)
	if err != nil {
		return sess.fail(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	units, err := gen.Generate(ctx, cfg, types)
	if err != nil {
		return sess.fail(err)
	}
	if !*check {
		if err := gen.Write(cfg, units); err != nil {
			return sess.fail(err)
		}
		return 0
	}
	drifts, err := gen.Check(cfg, units)
	if err != nil {
		return sess.fail(err)
	}
	for _, d := range drifts {
		sess.printDrift(d)
	}
	if len(drifts) > 0 {
		return 1
	}
	return 0
}

// create reads an envelope from path and builds it with the idltest
// registry.
func (s *session) create(path, format string, opt codec.DecodeOpt) (goidl.Struct, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	f := codec.JSON
	switch {
	case format != "":
		if f, err = codec.ByName(format); err != nil {
			return nil, err
		}
	case path != "-":
		f = codec.ForPath(path)
	}
	reg := idltest.NewRegistry(goidl.WithLogger(s.log))
	return codec.Create(reg, f, data, opt)
}

func (s *session) read(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(s.stdin)
	}
	return os.ReadFile(path)
}

// report prints issues one per line, or err itself.
func (s *session) report(err error) {
	iss, ok := goidl.AsIssues(err)
	if !ok {
		s.fail(err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(s.stderr, "  %s ", it.Path)
		s.red.Fprintf(s.stderr, "[%s]", it.Code)
		fmt.Fprintf(s.stderr, " %s\n", it.Message)
	}
}

func (s *session) printDrift(d gen.Drift) {
	if d.Missing {
		s.bold.Fprintf(s.stdout, "missing %s\n", d.File)
		return
	}
	s.bold.Fprintf(s.stdout, "drift %s\n", d.File)
	for _, line := range strings.SplitAfter(d.Diff, "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			s.red.Fprint(s.stdout, line)
		case strings.HasPrefix(line, "+"):
			s.green.Fprint(s.stdout, line)
		default:
			io.WriteString(s.stdout, line)
		}
	}
}
