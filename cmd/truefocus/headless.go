package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/csheth/truefocus/internal/focus"
	"github.com/csheth/truefocus/internal/trace"
)

// runHeadless drives the effect without a terminal and writes every distinct
// frame as a JSON line. In manual mode pointer events are read from in, one
// per line: "focus N" (or just N), "leave" and "stop". End of input stops the
// effect.
func runHeadless(ctx context.Context, cfg focus.Config, clock clockwork.Clock, in io.Reader, out io.Writer) error {
	ctrl, err := focus.New(cfg, nil)
	if err != nil {
		return err
	}
	recorder := trace.NewRecorder(out, clock)
	runner := focus.NewRunner(ctrl, clock, recorder.FrameFunc())

	if cfg.Manual {
		go func() {
			if err := feedEvents(ctx, runner, in); err != nil {
				log.Printf("[headless] %v", err)
			}
			runner.Stop()
		}()
	}

	err = runner.Run(ctx)
	log.Printf("[headless] finished in phase %s after %d frame(s)", ctrl.Phase(), recorder.Len())
	return err
}

func feedEvents(ctx context.Context, runner *focus.Runner, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		var err error
		switch {
		case fields[0] == "stop":
			return nil
		case fields[0] == "leave":
			err = runner.Unfocus(ctx)
		case fields[0] == "focus" && len(fields) == 2:
			err = focusIndex(ctx, runner, fields[1])
		case len(fields) == 1:
			err = focusIndex(ctx, runner, fields[0])
		default:
			err = fmt.Errorf("unknown command %q", scanner.Text())
		}
		if err != nil {
			log.Printf("[headless] line %d: %v", line, err)
		}
		select {
		case <-runner.Done():
			return nil
		default:
		}
	}
	return scanner.Err()
}

func focusIndex(ctx context.Context, runner *focus.Runner, value string) error {
	index, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("bad word index %q", value)
	}
	return runner.Focus(ctx, index)
}
