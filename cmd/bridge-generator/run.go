package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/config"
	"bridge-generator/internal/gen"
	"bridge-generator/internal/logging"
	"bridge-generator/internal/mapping"
	"bridge-generator/internal/plan"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const (
	cmdGen   = "gen"
	cmdCheck = "check"
)

// errOutdated is returned by check when generated files need regenerating.
var errOutdated = errors.New("generated files are out of date")

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)

	return nil
}

type options struct {
	command string
	dir     string
	pkgs    listFlag
	mapping string
	config  string
	output  string
	tag     string
	dryRun  bool
	dump    bool
	verbose bool
	color   string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{command: cmdGen}

	if len(args) > 0 && (args[0] == cmdGen || args[0] == cmdCheck) {
		opts.command, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("bridge-generator "+opts.command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: bridge-generator [gen|check] [flags]")
		fmt.Fprintln(stderr, "  gen    write conversion code (default)")
		fmt.Fprintln(stderr, "  check  fail if generated code is out of date")
		fs.PrintDefaults()
	}

	fs.Var(&opts.pkgs, "pkg", "Package pattern to generate for (repeatable, default from config or .)")
	fs.StringVar(&opts.dir, "C", "", "Run as if started in this directory")
	fs.StringVar(&opts.mapping, "mapping", "", "Mapping file declaring pairs and field overrides")
	fs.StringVar(&opts.config, "config", "", "Config file (default: nearest bridgegen.yaml/.toml)")
	fs.StringVar(&opts.output, "o", "", "Name of the generated file in each package")
	fs.StringVar(&opts.tag, "tag", "", "Struct tag key holding field directives")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print generated code instead of writing it")
	fs.BoolVar(&opts.dump, "dump", false, "Dump the resolved plan")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	fs.StringVar(&opts.color, "c", colorAuto, "Colorize diagnostics: auto, always or never")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		fs.Usage()

		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	switch opts.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return nil, fmt.Errorf("invalid -c value %q", opts.color)
	}

	return opts, nil
}

// loadConfig loads the config file and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if o.config != "" {
		cfg, err = config.Load(o.config)
	} else {
		cfg, err = config.FindAndLoad(o.workDir())
	}

	if err != nil {
		return nil, err
	}

	if len(o.pkgs) > 0 {
		cfg.Packages = o.pkgs
	}

	if o.output != "" {
		cfg.Output = o.output
	}

	if o.tag != "" {
		cfg.Tag = o.tag
	}

	if o.mapping != "" {
		if cfg.Mapping, err = filepath.Abs(o.mapping); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (o *options) workDir() string {
	if o.dir == "" {
		return "."
	}

	return o.dir
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitUsage
	}

	log, err := logging.New(opts.verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitFailure
	}

	logging.SetLogger(log)
	defer func() {
		_ = log.Sync()
		logging.SetLogger(nil)
	}()

	st := newStyles(stderr, opts.color)

	if err := generate(ctx, opts, stdout, stderr, st); err != nil {
		fmt.Fprintln(stderr, st.err.Render("Error: "+err.Error()))

		return exitFailure
	}

	return exitOK
}

func generate(ctx context.Context, opts *options, stdout, stderr io.Writer, st *styles) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log := logging.Logger()
	log.Debug("configuration", zap.String("file", cfg.Path), zap.Strings("packages", cfg.Packages))

	graph, err := analyze.NewAnalyzer(cfg.Analyzer(opts.dir)).LoadPackages(ctx, cfg.Packages...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	if path := cfg.MappingPath(); path != "" {
		mf, err := mapping.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load mapping file: %w", err)
		}

		graph.Diagnostics.Merge(*mapping.Apply(mf, graph))
	}

	p := plan.NewResolver(graph, cfg.Resolution()).Resolve()

	if opts.dump {
		dumpPlan(stdout, p)
	}

	printDiagnostics(stderr, &p.Diagnostics, st)

	if p.Diagnostics.HasErrors() {
		return fmt.Errorf("%d generation error(s)", len(p.Diagnostics.Errors))
	}

	files, err := gen.NewGenerator(cfg.Generator()).Generate(ctx, p)
	if err != nil {
		return err
	}

	switch {
	case opts.command == cmdCheck:
		return check(files, stderr, st)
	case opts.dryRun:
		for _, f := range files {
			if f.Remove {
				fmt.Fprintf(stdout, "// remove %s\n", f.Path())

				continue
			}

			fmt.Fprintf(stdout, "// === %s ===\n%s\n", f.Path(), f.Content)
		}

		return nil
	default:
		if err := gen.WriteFiles(files); err != nil {
			return err
		}

		fmt.Fprintln(stderr, st.ok.Render(fmt.Sprintf("generated %d pair(s) in %d file(s)", len(p.Pairs), len(files))))

		return nil
	}
}

func check(files []gen.GeneratedFile, stderr io.Writer, st *styles) error {
	outdated, err := gen.Outdated(files)
	if err != nil {
		return err
	}

	for _, path := range outdated {
		fmt.Fprintln(stderr, st.warn.Render("outdated: ")+path)
	}

	if len(outdated) > 0 {
		return errOutdated
	}

	fmt.Fprintln(stderr, st.ok.Render("generated files are up to date"))

	return nil
}

// pairDump is the -dump view of a resolved pair.
type pairDump struct {
	Native     string
	Bridge     string
	Shape      string
	ToBridge   map[string]string
	FromBridge map[string]string
}

func dumpPlan(w io.Writer, p *plan.Plan) {
	out := make([]pairDump, 0, len(p.Pairs))

	for _, pair := range p.Pairs {
		out = append(out, pairDump{
			Native:     pair.Native.String(),
			Bridge:     pair.Bridge.String(),
			Shape:      pair.Shape.String(),
			ToBridge:   chains(pair.ToBridge),
			FromBridge: chains(pair.FromBridge),
		})
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, out)
}

func chains(fields []plan.FieldConversion) map[string]string {
	out := make(map[string]string, len(fields))

	for _, f := range fields {
		var parts []string

		f.Conv.Walk(func(c *plan.Conversion) { parts = append(parts, c.Strategy.String()) })
		out[f.Field] = strings.Join(parts, " > ")
	}

	return out
}

// stdFile returns w as a file if it is one.
func stdFile(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)

	return f, ok
}
