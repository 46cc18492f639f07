// Command lander runs the game headless: it loads settings, replays an
// optional input script for a fixed duration and logs what happened.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"lander/internal/game"
	"lander/internal/input"
	"lander/internal/logging"
	"lander/internal/settings"
	"lander/internal/world"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type options struct {
	config   string
	script   string
	logLevel string
	dev      bool
	duration float64
	frame    float64
	initial  string
}

func parseFlags(args []string) (options, error) {
	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return options{}, fmt.Errorf("load .env: %w", err)
	}

	var o options
	fset := flag.NewFlagSet("lander", flag.ContinueOnError)
	fset.StringVar(&o.config, "config", os.Getenv("LANDER_CONFIG"), "settings file (.yaml, .yml or .json)")
	fset.StringVar(&o.script, "input", os.Getenv("LANDER_INPUT"), "input script to replay")
	fset.StringVar(&o.logLevel, "log-level", envOr("LANDER_LOG_LEVEL", ""), "log level, overrides the settings file")
	fset.BoolVar(&o.dev, "dev", false, "human readable logs")
	fset.Float64Var(&o.duration, "duration", 10, "simulated seconds to run")
	fset.Float64Var(&o.frame, "frame", 1.0/60, "rendered frame length in seconds")
	fset.StringVar(&o.initial, "state", game.StateStart.String(), "initial game state")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	if o.frame <= 0 || o.duration < 0 {
		return options{}, fmt.Errorf("frame must be positive and duration not negative")
	}
	return o, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lander:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	s, err := settings.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		s.Log.Level = opts.logLevel
	}
	log, err := logging.New(s.Log.Level, opts.dev || s.Log.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	initial, ok := game.ParseState(opts.initial)
	if !ok {
		return fmt.Errorf("unknown state %q", opts.initial)
	}

	w, err := world.New(s, log)
	if err != nil {
		return err
	}
	w.Game.Transitioned.AddListener(func(t game.Transition) {
		log.Info("state changed",
			zap.Stringer("from", t.From),
			zap.Stringer("to", t.To),
			zap.Int("frame", w.Frames()))
	})

	var timeline *input.Timeline
	if opts.script != "" {
		script, err := input.LoadScript(opts.script)
		if err != nil {
			return err
		}
		timeline = input.NewTimeline(script, w.Input)
	}

	if err := w.Start(initial); err != nil {
		return err
	}

	frame := float32(opts.frame)
	frames := int(opts.duration / opts.frame)
	for i := 0; i < frames; i++ {
		if timeline != nil {
			timeline.Advance(frame)
		}
		w.Step(frame)
	}

	log.Info("run finished", w.Summary().Fields()...)
	return nil
}
