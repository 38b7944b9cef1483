// Package viewer serves a Session over HTTP: a single page that draws
// the current frame as SVG, plus a small JSON API the page (or anything
// else) uses to drive playback.
package viewer

import (
	"embed"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/scottcagno/hashtrace/pkg/logging"
	"github.com/scottcagno/hashtrace/pkg/playback"
	"github.com/scottcagno/hashtrace/pkg/render"
	"github.com/scottcagno/hashtrace/pkg/sim"
	"github.com/scottcagno/hashtrace/pkg/web"
)

//go:embed templates/*.html
var templates embed.FS

var (
	ErrUnknownCommand = errors.New("viewer: unknown command")
	ErrBadFrame       = errors.New("viewer: bad frame index")
)

// Server is the HTTP host of a Session. Every request touching the
// Session goes through one mutex, which plays the part of the single
// event queue the playback package expects.
type Server struct {
	lock    sync.Mutex
	session *sim.Session
	logger  *logging.LevelLogger
	tc      *web.TemplateCache
	mux     *web.ServeMux
	svg     render.SVG
}

// NewServer returns a Server for session with all routes registered
func NewServer(session *sim.Session, logger *logging.LevelLogger) (*Server, error) {
	tc, err := web.NewTemplateCache(templates, "templates/*.html", nil, logger)
	if err != nil {
		return nil, err
	}
	s := &Server{
		session: session,
		logger:  logger,
		tc:      tc,
		mux:     web.NewServeMux(logger),
	}
	s.mux.Get("/", s.index())
	s.mux.Get("/api/trace", s.trace())
	s.mux.Get("/api/view", s.view())
	s.mux.Get("/api/view.svg", s.viewSVG())
	s.mux.Post("/api/cmd/", s.command())
	s.mux.Post("/api/seek", s.seek())
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type indexData struct {
	Steps, Size, Frames, Last int
	IntervalMillis            int64
}

func (s *Server) index() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		tr := s.session.Trace()
		s.tc.Render(w, "index.html", indexData{
			Steps:          tr.Steps,
			Size:           tr.Size,
			Frames:         tr.Len(),
			Last:           tr.Len() - 1,
			IntervalMillis: s.session.Config().Interval.Milliseconds(),
		})
	}
	return http.HandlerFunc(fn)
}

func (s *Server) trace() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		// the trace never changes once generated, no lock needed
		if err := web.WriteJSON(w, http.StatusOK, s.session.Trace()); err != nil {
			s.logger.Error("writing trace: %v", err)
		}
	}
	return http.HandlerFunc(fn)
}

func (s *Server) currentView() render.View {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.session.View()
}

func (s *Server) view() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if err := web.WriteJSON(w, http.StatusOK, s.currentView()); err != nil {
			s.logger.Error("writing view: %v", err)
		}
	}
	return http.HandlerFunc(fn)
}

func (s *Server) viewSVG() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		bufPool := web.OpenBufferPool()
		buffer := bufPool.Get()
		defer bufPool.Put(buffer)
		if err := s.svg.Render(buffer, s.currentView()); err != nil {
			s.logger.Error("rendering svg: %v", err)
			code := http.StatusInternalServerError
			http.Error(w, http.StatusText(code), code)
			return
		}
		web.ContentType(w, web.ContentTypeSVGXML)
		w.Header().Set("Cache-Control", "no-store")
		if _, err := buffer.WriteTo(w); err != nil {
			s.logger.Error("writing svg: %v", err)
		}
	}
	return http.HandlerFunc(fn)
}

func (s *Server) command() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/cmd/")
		cmd := playback.ParseCommand(name)
		if cmd == playback.None || cmd == playback.Quit {
			if err := web.WriteError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrUnknownCommand, name)); err != nil {
				s.logger.Error("writing error: %v", err)
			}
			return
		}
		s.lock.Lock()
		v := s.session.Do(cmd)
		s.lock.Unlock()
		if err := web.WriteJSON(w, http.StatusOK, v); err != nil {
			s.logger.Error("writing view: %v", err)
		}
	}
	return http.HandlerFunc(fn)
}

func (s *Server) seek() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		i, err := strconv.Atoi(r.URL.Query().Get("frame"))
		if err != nil {
			if err := web.WriteError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrBadFrame, err)); err != nil {
				s.logger.Error("writing error: %v", err)
			}
			return
		}
		s.lock.Lock()
		s.session.Controller().Seek(i)
		v := s.session.View()
		s.lock.Unlock()
		if err := web.WriteJSON(w, http.StatusOK, v); err != nil {
			s.logger.Error("writing view: %v", err)
		}
	}
	return http.HandlerFunc(fn)
}
