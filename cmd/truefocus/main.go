package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/truefocus/internal/config"
	"github.com/csheth/truefocus/internal/focus"
	"github.com/csheth/truefocus/internal/source"
	"github.com/csheth/truefocus/internal/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "truefocus:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("truefocus", flag.ContinueOnError)
	presetFile := fs.String("config", "", "YAML preset file")
	preset := fs.String("preset", "", "preset name (hero, manual, timer or one from -config)")
	from := fs.String("from", "", "take the sentence from a text or PDF file")
	noAltScreen := fs.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	headless := fs.Bool("headless", false, "run without a terminal UI and write a JSON lines trace")
	tracePath := fs.String("trace", "", "trace output file for -headless (default stdout)")
	logPath := fs.String("log", "", "write debug logs to this file")
	colors := tui.DefaultColors()
	fs.StringVar(&colors.Text, "text-color", colors.Text, "word colour (hex)")
	fs.StringVar(&colors.Background, "background-color", colors.Background, "background colour blur fades toward (hex)")
	fs.StringVar(&colors.Border, "border", colors.Border, "frame corner colour (hex)")
	fs.StringVar(&colors.Glow, "glow", colors.Glow, "active word glow colour (hex)")
	overrides := config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(*presetFile, *preset, *from, overrides)
	if err != nil {
		return err
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		out, closeOut, err := openTrace(*tracePath, stdout)
		if err != nil {
			return err
		}
		defer closeOut()
		return runHeadless(ctx, cfg, nil, stdin, out)
	}

	model, err := tui.New(tui.Config{Focus: cfg, Colors: colors})
	if err != nil {
		return err
	}
	opts := []tea.ProgramOption{tea.WithMouseAllMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// loadConfig layers defaults, presets and environment, then the sentence
// file, then explicit flags.
func loadConfig(file, preset, from string, overrides *config.Flags) (focus.Config, error) {
	cfg, err := config.Load(config.Options{File: file, Preset: preset, DotEnv: ".env"})
	if err != nil {
		return cfg, err
	}
	if from != "" {
		sentence, err := source.Load(from)
		if err != nil {
			return cfg, err
		}
		cfg.Sentence = sentence
	}
	if err := overrides.Apply(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "truefocus")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func openTrace(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			log.Printf("[main] close trace: %v", err)
		}
	}, nil
}
