// Package sim wires the trace generator, the playback cursor and the
// renderers together into a Session that a host (terminal or browser)
// can drive.
package sim

import (
	"fmt"
	"io"

	"github.com/scottcagno/hashtrace/pkg/hash"
	"github.com/scottcagno/hashtrace/pkg/logging"
	"github.com/scottcagno/hashtrace/pkg/playback"
	"github.com/scottcagno/hashtrace/pkg/probe"
	"github.com/scottcagno/hashtrace/pkg/render"
)

// Session is one generated trace plus the cursor scrubbing through it.
// A Session is not safe for concurrent use; the host serializes calls.
type Session struct {
	conf  *Config
	log   *logging.LevelLogger
	trace *probe.Trace[string]
	ctrl  *playback.Controller
	disp  *playback.Dispatcher
}

// Open generates the whole trace described by conf and returns a Session
// positioned on its first frame. Generation errors are returned as is,
// so callers can tell probe.ErrInvalidConfig and probe.ErrTableFull apart.
func Open(conf *Config) (*Session, error) {
	conf = checkConfig(conf)
	if conf.TableSize > maxTableSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrTableTooLarge, conf.TableSize, maxTableSize)
	}
	h, err := hash.ByName(conf.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %v)", err, conf.Hash, hash.Names())
	}
	keys := conf.Keys
	if len(keys) == 0 {
		keys = GenerateKeys(conf.NumKeys, conf.Seed)
	}
	conf.Logger.Debug("generating trace: %d keys, %d buckets, hash %s", len(keys), conf.TableSize, conf.Hash)
	tr, err := probe.Generate(keys, conf.TableSize, h)
	if err != nil {
		conf.Logger.Error("trace generation failed: %v", err)
		return nil, err
	}
	if tr.Len() == 0 {
		return nil, ErrNoKeys
	}
	ctrl, err := playback.New(tr.Len(), conf.StartPaused)
	if err != nil {
		return nil, err
	}
	conf.Logger.Info("generated %d frames for %d keys, final load factor %.2f",
		tr.Len(), tr.Steps, tr.LoadFactors[len(tr.LoadFactors)-1])
	return &Session{
		conf:  conf,
		log:   conf.Logger,
		trace: tr,
		ctrl:  ctrl,
		disp:  playback.NewDispatcher(ctrl, nil),
	}, nil
}

// Config returns the checked configuration the Session was opened with
func (s *Session) Config() *Config {
	return s.conf
}

// Trace returns the generated trace
func (s *Session) Trace() *probe.Trace[string] {
	return s.trace
}

// Controller returns the playback cursor
func (s *Session) Controller() *playback.Controller {
	return s.ctrl
}

// Dispatcher returns the event queue feeding the cursor
func (s *Session) Dispatcher() *playback.Dispatcher {
	return s.disp
}

// Do applies cmd immediately and returns the resulting view
func (s *Session) Do(cmd playback.Command) render.View {
	s.disp.Command(cmd)
	s.disp.Flush()
	s.log.Debug("command %s -> frame %d", cmd, s.ctrl.Index())
	return s.View()
}

// View returns the view of the current frame
func (s *Session) View() render.View {
	v := render.NewView(s.trace, s.ctrl.Index())
	v.Paused = s.ctrl.Paused()
	return v
}

// Render draws the current frame with r
func (s *Session) Render(w io.Writer, r render.Renderer) error {
	return r.Render(w, s.View())
}

// Summary writes one line per step: key, start bucket, final bucket and
// the number of collisions it passed
func (s *Session) Summary(w io.Writer) error {
	for i := range s.trace.Frames {
		f := &s.trace.Frames[i]
		if !f.Placed {
			continue
		}
		_, err := fmt.Fprintf(w, "step %3d  key %-8s start %3d  placed %3d  probes %3d  load %.2f\n",
			f.Step, f.Key, f.StartIndex, f.CurrentIndex, f.Probes, s.trace.LoadFactors[f.Step-1])
		if err != nil {
			return err
		}
	}
	return nil
}
