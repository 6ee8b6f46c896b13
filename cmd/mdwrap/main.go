package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/truncate"
	diff "github.com/shogoki/gotextdiff"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdwrap"
	"pkt.systems/version"
)

const previewWidth = 60

var errUsage = errors.New("usage")

func init() {
	version.SetDefaultModule("pkt.systems/mdwrap")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliOptions struct {
	width       int
	list        bool
	diff        bool
	check       bool
	noTables    bool
	verify      bool
	reportLong  bool
	strict      bool
	showVersion bool
	configPath  string
	root        string
}

// run executes the command line and returns the process exit code: 0 on
// success, 1 when any input failed (or would change under --check) and 2 on
// usage errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts cliOptions
	flags := pflag.NewFlagSet("mdwrap", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.IntVarP(&opts.width, "width", "w", mdwrap.DefaultWidth, "Maximum line width in bytes")
	flags.BoolVarP(&opts.list, "list", "l", false, "List files that would change instead of writing them")
	flags.BoolVarP(&opts.diff, "diff", "d", false, "Print unified diffs instead of writing files")
	flags.BoolVar(&opts.check, "check", false, "Like --list, but exit 1 when any file would change")
	flags.BoolVar(&opts.noTables, "no-tables", false, "Keep wide pipe tables instead of converting them to HTML")
	flags.BoolVar(&opts.verify, "verify", false, "Refuse to write when formatting changes the block structure")
	flags.BoolVar(&opts.reportLong, "report-long", false, "Report lines still wider than the limit after formatting")
	flags.BoolVar(&opts.strict, "strict", false, "Require explicit inputs instead of discovering files")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default <root>/"+defaultConfigName+" if present)")
	flags.StringVar(&opts.root, "root", ".", "Root directory for discovery and the default config file")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdwrap [flags] [files|dirs|urls|-]\n")
		fmt.Fprintln(stderr, "\nWithout inputs, files matching the configured include globs are formatted in place.")
		fmt.Fprintln(stderr, "If none are found and stdin is not a terminal, stdin is formatted to stdout.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	cfg, err := loadConfig(opts.configPath, opts.root)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	width := opts.width
	if !flags.Changed("width") && cfg.Width > 0 {
		width = cfg.Width
	}
	if width <= 0 {
		fmt.Fprintf(stderr, "error: width must be positive, got %d\n", width)
		return 2
	}

	r := &runner{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		opts:   opts,
		width:  width,
		format: []mdwrap.FormatOption{
			mdwrap.WithWidth(width),
			mdwrap.WithTableConversion(*cfg.Tables && !opts.noTables),
		},
		exclude: cfg.Exclude,
	}

	inputs := flags.Args()
	if len(inputs) == 0 {
		if err := r.runDiscovered(cfg.Include); err != nil {
			if errors.Is(err, errUsage) {
				flags.Usage()
				return 2
			}
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return r.exitCode()
	}
	for _, input := range inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(stderr, "error: %v\n", ctx.Err())
			return 1
		}
		r.runInput(ctx, input)
	}
	return r.exitCode()
}

type runner struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	opts    cliOptions
	width   int
	format  []mdwrap.FormatOption
	exclude []string
	client  *http.Client

	failed  bool
	changed bool
}

func (r *runner) exitCode() int {
	if r.failed || (r.opts.check && r.changed) {
		return 1
	}
	return 0
}

// runDiscovered formats every file found under the root. With nothing to do
// it falls back to stdin when stdin is piped.
func (r *runner) runDiscovered(include []string) error {
	if r.opts.strict {
		return errUsage
	}
	paths, err := discover(r.opts.root, include, r.exclude)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if isTerminal(r.stdin) {
			return errUsage
		}
		r.formatStdin()
		return nil
	}
	for _, path := range paths {
		r.formatFile(path)
	}
	return nil
}

func (r *runner) runInput(ctx context.Context, input string) {
	switch {
	case input == "-":
		r.formatStdin()
	case isRemote(input):
		r.formatRemote(ctx, input)
	default:
		info, err := os.Stat(input)
		if err == nil && info.IsDir() {
			paths, err := discover(input, []string{markdownPattern}, r.exclude)
			if err != nil {
				fmt.Fprintf(r.stderr, "error: %v\n", err)
				r.failed = true
				return
			}
			for _, path := range paths {
				r.formatFile(path)
			}
			return
		}
		r.formatFile(input)
	}
}

func (r *runner) formatStdin() {
	src, err := io.ReadAll(r.stdin)
	if err != nil {
		fmt.Fprintf(r.stderr, "error: stdin: %v\n", err)
		r.failed = true
		return
	}
	out, ok := r.transform("-", src)
	if !ok {
		return
	}
	if r.inspectOnly() {
		r.inspect("-", src, out)
		return
	}
	if _, err := r.stdout.Write(out); err != nil {
		fmt.Fprintf(r.stderr, "error: stdout: %v\n", err)
		r.failed = true
	}
}

func (r *runner) formatRemote(ctx context.Context, rawURL string) {
	err := mdwrap.FetchFormat(ctx, mdwrap.FetchRequest{
		URL:     rawURL,
		Client:  r.client,
		Writer:  r.stdout,
		Options: r.format,
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "error: %s: %v\n", rawURL, err)
		r.failed = true
	}
}

// formatFile rewrites a file in place once its whole transform succeeded.
func (r *runner) formatFile(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		fmt.Fprintf(r.stderr, "warning: skipping non-file %s\n", path)
		return
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.stderr, "error: %s: %v\n", path, err)
		r.failed = true
		return
	}
	out, ok := r.transform(path, src)
	if !ok {
		return
	}
	if r.inspectOnly() {
		r.inspect(path, src, out)
		return
	}
	if bytes.Equal(src, out) {
		fmt.Fprintf(r.stdout, "unchanged %s\n", path)
		return
	}
	if err := writeFileAtomic(path, out, info.Mode().Perm()); err != nil {
		fmt.Fprintf(r.stderr, "error: %s: %v\n", path, err)
		r.failed = true
		return
	}
	fmt.Fprintf(r.stdout, "formatted %s\n", path)
}

// transform formats src and runs the optional structure check and long line
// report. It reports failures itself and returns false when nothing may be
// written.
func (r *runner) transform(name string, src []byte) ([]byte, bool) {
	out, err := mdwrap.FormatBytes(src, r.format...)
	if err != nil {
		fmt.Fprintf(r.stderr, "error: %s: %v\n", name, err)
		r.failed = true
		return nil, false
	}
	if r.opts.verify {
		if err := mdwrap.Verify(src, out); err != nil {
			fmt.Fprintf(r.stderr, "error: %s: %v\n", name, err)
			r.failed = true
			return nil, false
		}
	}
	if r.opts.reportLong {
		r.report(name, out)
	}
	return out, true
}

func (r *runner) inspectOnly() bool {
	return r.opts.list || r.opts.check || r.opts.diff
}

func (r *runner) inspect(name string, src, out []byte) {
	if bytes.Equal(src, out) {
		return
	}
	r.changed = true
	if r.opts.diff {
		_, _ = r.stdout.Write(diff.Diff(name, src, name, out))
		return
	}
	fmt.Fprintln(r.stdout, name)
}

func (r *runner) report(name string, out []byte) {
	for _, long := range mdwrap.Overlong(out, r.width, r.format...) {
		preview := truncate.StringWithTail(strings.TrimSpace(long.Text), previewWidth, "...")
		fmt.Fprintf(r.stderr, "%s:%d: %s (%d bytes): %s\n", name, long.Line, long.Kind, long.Bytes, preview)
	}
}

func isRemote(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	}
	return false
}

// writeFileAtomic replaces path through a temporary file in the same
// directory so a failed write never leaves a truncated document behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".mdwrap-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
