// Command hexseek searches files and object-store blobs for the byte
// encoding of a typed value.
//
//	hexseek [flags] VALUE SOURCE...
//
// SOURCE is a file path (.zst and .lz4 files are decompressed), an
// s3://bucket/key URL or a minio://bucket/key URL. With one source and a
// terminal on stdout the matches are browsed interactively; otherwise each
// match is printed as "source<TAB>0xOFFSET".
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/mhr3/hexseek/internal/config"
	"github.com/mhr3/hexseek/internal/driver"
	"github.com/mhr3/hexseek/internal/logging"
	"github.com/mhr3/hexseek/internal/tui"
	"github.com/mhr3/hexseek/internal/watch"
	"github.com/mhr3/hexseek/needle"
	"github.com/mhr3/hexseek/search"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "hexseek:", err)
		os.Exit(1)
	}
}

type options struct {
	typ       string
	signed    bool
	endian    string
	encoding  string
	config    string
	plain     bool
	watch     bool
	unbounded bool
	logLevel  string
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	var o options
	fs := flag.NewFlagSet("hexseek", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: hexseek [flags] VALUE SOURCE...")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.typ, "type", "string", "value type: u8, u16, u32, u64, bytes or string")
	fs.BoolVar(&o.signed, "signed", false, "parse integer values as signed")
	fs.StringVar(&o.endian, "endian", "", "byte order of integer values: le or be (default from config)")
	fs.StringVar(&o.encoding, "encoding", "utf8", "string encoding: utf8, utf16le or utf16be")
	fs.StringVar(&o.config, "config", "", "path to a TOML config file")
	fs.BoolVar(&o.plain, "plain", false, "print matches as lines even on a terminal")
	fs.BoolVar(&o.watch, "watch", false, "search again whenever the file changes")
	fs.BoolVar(&o.unbounded, "unbounded", false, "let the search run ahead of the output without limit")
	fs.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error (default from config)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return nil, nil, errors.New("need a value and at least one source")
	}
	return &o, fs.Args(), nil
}

func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnvOverrides()
	if o.endian != "" {
		cfg.Search.Endian = o.endian
	}
	if o.logLevel != "" {
		cfg.Output.LogLevel = o.logLevel
	}
	if o.unbounded {
		cfg.Search.Unbounded = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *logging.Logger {
	level, _ := logging.ParseLevel(cfg.Output.LogLevel)
	if cfg.Output.LogFormat == "json" {
		return logging.NewJSONLogger(w, level)
	}
	return logging.NewTextLogger(w, level)
}

func buildNeedle(o *options, cfg *config.Config, value string) (needle.Owned, error) {
	typ, err := needle.ParseSearchType(o.typ)
	if err != nil {
		return needle.Owned{}, err
	}
	enc, err := needle.ParseTextEncoding(o.encoding)
	if err != nil {
		return needle.Owned{}, err
	}
	q := needle.Query{
		Type:     typ,
		Signed:   o.signed,
		Order:    cfg.Order(),
		Encoding: enc,
		Input:    value,
	}
	return q.Owned()
}

func sessionOptions(cfg *config.Config, log *logging.Logger) []search.Option {
	opts := []search.Option{
		search.WithBuffer(cfg.Search.Buffer),
		search.WithChunkSize(cfg.Search.ChunkSize),
		search.WithLogger(log),
	}
	if cfg.Search.Unbounded {
		opts = append(opts, search.WithUnbounded())
	}
	return opts
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	log := newLogger(cfg, stderr)

	n, err := buildNeedle(o, cfg, rest[0])
	if err != nil {
		return err
	}
	names := rest[1:]
	op := &opener{cfg: cfg}

	var w *watch.Watcher
	if o.watch {
		if len(names) != 1 || isRemote(names[0]) {
			return errors.New("-watch needs exactly one local file")
		}
		if w, err = watch.New(names[0], cfg.Watch.Debounce, log); err != nil {
			return err
		}
		defer w.Close()
	}

	if f, ok := stdout.(*os.File); ok && !o.plain && len(names) == 1 && term.IsTerminal(int(f.Fd())) {
		return runTUI(ctx, op, names[0], n, cfg, log, w)
	}
	return runPlain(ctx, op, names, n, cfg, log, w, stdout)
}

func runPlain(ctx context.Context, op *opener, names []string, n needle.Owned, cfg *config.Config, log *logging.Logger, w *watch.Watcher, stdout io.Writer) error {
	sources := make([]driver.Source, len(names))
	for i, name := range names {
		sources[i] = op.source(name)
	}
	opts := driver.Options{
		Parallel: cfg.Search.Parallel,
		Interval: cfg.Output.Interval,
		PerTick:  cfg.Search.ResultsPerTick,
		Session:  sessionOptions(cfg, log),
	}

	out := bufio.NewWriter(stdout)
	for {
		err := driver.SearchAll(ctx, sources, n, opts, func(src string, off int) error {
			_, err := fmt.Fprintf(out, "%s\t0x%08X\n", src, off)
			return err
		})
		if ferr := out.Flush(); err == nil {
			err = ferr
		}
		if err != nil || w == nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			log.InfoContext(ctx, "file changed, searching again", "path", names[0])
		}
	}
}

func runTUI(ctx context.Context, op *opener, name string, n needle.Owned, cfg *config.Config, log *logging.Logger, w *watch.Watcher) error {
	var current io.Closer
	restart := func() (*search.Session, []byte, error) {
		h, err := op.open(ctx, name)
		// The model drops the previous view on every restart.
		if current != nil {
			_ = current.Close()
			current = nil
		}
		if err != nil {
			return nil, nil, err
		}
		if c, ok := h.(io.Closer); ok {
			current = c
		}
		s := search.Start(h, n, sessionOptions(cfg, log)...)
		return s, h.Bytes(), nil
	}

	s, data, err := restart()
	if err != nil {
		return err
	}
	defer func() {
		if current != nil {
			_ = current.Close()
		}
	}()

	tc := tui.Config{
		Source:         name,
		Needle:         n,
		Frame:          cfg.TUI.Frame,
		PageSize:       cfg.TUI.PageSize,
		PreviewBytes:   cfg.TUI.PreviewBytes,
		ResultsPerTick: cfg.Search.ResultsPerTick,
		Restart:        restart,
	}
	if w != nil {
		tc.Changes = w.Changes()
	}
	return tui.Run(tui.New(tc, s, data))
}
