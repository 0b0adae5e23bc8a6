package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/config"
	"github.com/olivier-w/barscope/internal/source"
	"github.com/olivier-w/barscope/internal/theme"
	"github.com/olivier-w/barscope/internal/ui"
)

type options struct {
	configPath string
	logPath    string
	debug      bool
	listThemes bool

	theme  string
	mode   string
	scale  string
	layout string
	radial bool
	leds   bool
	stereo bool
	fps    int
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("barscope", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/barscope/config.yaml)")
	fs.StringVar(&o.logPath, "log", "", "write logs to this file")
	fs.BoolVar(&o.debug, "debug", false, "log at debug level")
	fs.BoolVar(&o.listThemes, "list-themes", false, "print the available themes and exit")
	fs.StringVar(&o.theme, "theme", "", "color theme")
	fs.StringVar(&o.mode, "mode", "", `band mode: "discrete" or an octave fraction like "1/3"`)
	fs.StringVar(&o.scale, "scale", "", "frequency scale: log, bark, mel or linear")
	fs.StringVar(&o.layout, "layout", "", "channel layout: single, dual-vertical, dual-horizontal or dual-combined")
	fs.BoolVar(&o.radial, "radial", false, "radial analyzer")
	fs.BoolVar(&o.leds, "leds", false, "LED bars")
	fs.BoolVar(&o.stereo, "stereo", false, "generate two channels")
	fs.IntVar(&o.fps, "fps", 0, "frame rate (default from config)")
	err := fs.Parse(args)
	return o, err
}

func newLogger(o options) (*log.Logger, func(), error) {
	if o.logPath == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	level := log.InfoLevel
	if o.debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

// override applies command line settings on top of the config file.
func override(c *config.Config, o options) {
	if o.theme != "" {
		c.Color.Theme = o.theme
	}
	if o.mode != "" {
		c.Spectrum.BandMode = o.mode
	}
	if o.scale != "" {
		c.Spectrum.Scale = o.scale
	}
	if o.layout != "" {
		c.Geometry.Layout = o.layout
	}
	if o.radial {
		c.Geometry.Radial = true
	}
	if o.leds {
		c.Bars.Leds = true
	}
	if o.stereo {
		c.Source.Stereo = true
	}
	if o.fps > 0 {
		c.Source.FPS = o.fps
	}
	if c.Geometry.Layout != "" && c.Geometry.Layout != "single" {
		c.Source.Stereo = true
	}
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := config.DefaultConfig()
	if o.configPath != "" {
		err = cfg.LoadFromFile(o.configPath)
	} else {
		err = cfg.TryLoadDefault()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Path != "" {
		logger.Info("loaded config", "path", cfg.Path)
	}

	themes := theme.NewRegistry()
	if err := cfg.RegisterThemes(themes); err != nil {
		logger.Warn("skipped user themes", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if o.listThemes {
		fmt.Println(strings.Join(themes.Names(), "\n"))
		return
	}

	override(cfg, o)
	engineCfg, err := cfg.Engine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	engine, warnings := analyzer.New(engineCfg, themes, logger)

	src := source.New(source.Config{
		SampleRate: engine.Config().Spectrum.SampleRate,
		FFTSize:    engine.Config().Spectrum.FFTSize,
		Smoothing:  cfg.Source.Smoothing,
		Tones:      cfg.Source.Tones,
		Noise:      cfg.Source.Noise,
		Sweep:      cfg.Source.Sweep,
		Stereo:     cfg.Source.Stereo,
	}, logger.WithPrefix("source"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := src.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("source stopped", "err", err)
		}
	}()

	model := ui.New(engine, src, cfg.Source.FPS, logger).WithWarnings(warnings)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
