package main

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/scottcagno/hashtrace/pkg/playback"
	"github.com/scottcagno/hashtrace/pkg/render"
	"github.com/scottcagno/hashtrace/pkg/sim"
)

const clearScreen = "\033[H\033[2J"

// terminalBindings adds line friendly aliases to the default keys, since
// a terminal in cooked mode hands us whole lines rather than key presses
var terminalBindings = playback.Bindings{
	" ":     playback.TogglePause,
	"space": playback.TogglePause,
	"p":     playback.TogglePause,
	"right": playback.StepForward,
	"n":     playback.StepForward,
	"":      playback.StepForward,
	"left":  playback.StepBackward,
	"b":     playback.StepBackward,
	"r":     playback.Reset,
	"q":     playback.Quit,
}

// readLines sends every line of r on the returned channel and closes it
// at EOF or once ctx is done
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- strings.TrimRight(sc.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// play drives the session from stdin lines and a fixed interval ticker.
// Input is drained before a tick is applied. Once stdin is exhausted the
// player runs until the last frame and returns.
func play(ctx context.Context, s *sim.Session, stdin io.Reader, stdout io.Writer, clear bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	disp := playback.NewDispatcher(s.Controller(), terminalBindings)
	draw := func() error {
		if clear {
			if _, err := io.WriteString(stdout, clearScreen); err != nil {
				return err
			}
		}
		return s.Render(stdout, render.Text{})
	}
	if err := draw(); err != nil {
		return err
	}

	ticker := time.NewTicker(s.Config().Interval)
	defer ticker.Stop()
	lines := readLines(ctx, stdin)
	for {
		tick := false
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				break
			}
			disp.Key(line)
		case <-ticker.C:
			tick = true
		}
		// pick up input that is already waiting so it goes before the tick
	drain:
		for lines != nil {
			select {
			case line, ok := <-lines:
				if !ok {
					lines = nil
					break drain
				}
				disp.Key(line)
			default:
				break drain
			}
		}
		if tick {
			disp.Tick()
		}
		res := disp.Flush()
		if res.Changed {
			if err := draw(); err != nil {
				return err
			}
		}
		if res.Quit {
			return nil
		}
		if lines == nil && s.Controller().AtEnd() {
			return nil
		}
		if lines == nil && s.Controller().Paused() {
			// nobody is left to resume playback
			return nil
		}
	}
}
