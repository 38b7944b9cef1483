package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/scottcagno/hashtrace/pkg/hash"
	"github.com/scottcagno/hashtrace/pkg/logging"
	"github.com/scottcagno/hashtrace/pkg/probe"
	"github.com/scottcagno/hashtrace/pkg/sim"
)

const (
	exitOK = iota
	exitFailure
	exitConfig
	exitTableFull
)

type options struct {
	mode  string
	addr  string
	level string
	json  bool
	clear bool
	conf  *sim.Config
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	def := sim.DefaultConfig()
	opts := &options{conf: def}
	fs := flag.NewFlagSet("hashtrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", "play", "play (terminal), web or dump")
	fs.StringVar(&opts.addr, "addr", "localhost:8080", "listen address for -mode web")
	fs.StringVar(&opts.level, "log", "info", "log level: off, error, warn, info or debug")
	fs.BoolVar(&opts.json, "json", false, "with -mode dump, print the trace as JSON")
	fs.BoolVar(&opts.clear, "clear", true, "with -mode play, clear the screen between frames")
	fs.IntVar(&def.TableSize, "size", def.TableSize, "number of buckets in the table")
	fs.IntVar(&def.NumKeys, "nkeys", def.NumKeys, "number of generated keys")
	fs.Int64Var(&def.Seed, "seed", def.Seed, "shuffle seed for generated keys")
	fs.StringVar(&def.Hash, "hash", def.Hash, fmt.Sprintf("hash function %v", hash.Names()))
	fs.DurationVar(&def.Interval, "interval", def.Interval, "playback tick interval")
	fs.BoolVar(&def.StartPaused, "paused", false, "start playback paused")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: hashtrace [flags] [keys...]\n\n")
		fmt.Fprintf(fs.Output(), "Keys: space pause/resume, right/n step forward, left/b step back, r reset, q quit.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		def.Keys = fs.Args()
	}
	switch opts.mode {
	case "play", "web", "dump":
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
	return opts, nil
}

// exitCode tells a bad configuration apart from a table that ran out of
// room; both stop the program before any playback starts
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, probe.ErrTableFull):
		return exitTableFull
	case errors.Is(err, probe.ErrInvalidConfig),
		errors.Is(err, hash.ErrUnknownHash),
		errors.Is(err, sim.ErrNoKeys),
		errors.Is(err, sim.ErrTableTooLarge):
		return exitConfig
	}
	return exitFailure
}

func describe(err error) string {
	switch exitCode(err) {
	case exitTableFull:
		return "table capacity exceeded"
	case exitConfig:
		return "configuration error"
	}
	return "error"
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	level, err := logging.ParseLevel(opts.level)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	logger := logging.NewLevelLogger(stderr, level)
	opts.conf.Logger = logger

	session, err := sim.Open(opts.conf)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", describe(err), err)
		return exitCode(err)
	}
	logger.Debug("config:\n%s", session.Config())

	switch opts.mode {
	case "dump":
		err = dump(session, stdout, opts.json)
	case "web":
		err = serve(ctx, session, opts.addr, logger)
	default:
		err = play(ctx, session, stdin, stdout, opts.clear)
	}
	if err != nil {
		logger.Error("%v", err)
		return exitFailure
	}
	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
