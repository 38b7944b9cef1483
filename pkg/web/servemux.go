package web

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/scottcagno/hashtrace/pkg/logging"
)

type muxEntry struct {
	method  string
	pattern string
	handler http.Handler
}

func (m muxEntry) String() string {
	return fmt.Sprintf("%-6s %s", m.method, m.pattern)
}

// ServeMux is a small request multiplexer that matches on method and
// path. Patterns ending in a slash match every path below them; longer
// prefixes win.
type ServeMux struct {
	lock   sync.RWMutex
	logger *logging.LevelLogger
	em     map[string]muxEntry
	es     []muxEntry
}

// NewServeMux returns a ServeMux with the /info route registered. A nil
// logger disables request logging.
func NewServeMux(logger *logging.LevelLogger) *ServeMux {
	mux := &ServeMux{
		logger: logger,
		em:     make(map[string]muxEntry),
		es:     make([]muxEntry, 0),
	}
	mux.Get("/favicon.ico", http.NotFoundHandler())
	mux.Get("/info", mux.info())
	return mux
}

func (s *ServeMux) Handle(method string, pattern string, handler http.Handler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if pattern == "" {
		panic("http: invalid pattern")
	}
	if handler == nil {
		panic("http: nil handler")
	}
	key := method + " " + pattern
	if _, exist := s.em[key]; exist {
		panic("http: multiple registrations for " + key)
	}
	entry := muxEntry{
		method:  method,
		pattern: pattern,
		handler: handler,
	}
	s.em[key] = entry
	if pattern[len(pattern)-1] == '/' {
		s.es = appendSorted(s.es, entry)
	}
}

// appendSorted keeps es ordered from the longest pattern to the shortest
func appendSorted(es []muxEntry, e muxEntry) []muxEntry {
	n := len(es)
	i := sort.Search(n, func(i int) bool {
		return len(es[i].pattern) < len(e.pattern)
	})
	if i == n {
		return append(es, e)
	}
	es = append(es, muxEntry{})
	copy(es[i+1:], es[i:])
	es[i] = e
	return es
}

func (s *ServeMux) HandleFunc(method, pattern string, handler func(http.ResponseWriter, *http.Request)) {
	if handler == nil {
		panic("http: nil handler")
	}
	s.Handle(method, pattern, http.HandlerFunc(handler))
}

func (s *ServeMux) Get(pattern string, handler http.Handler) {
	s.Handle(http.MethodGet, pattern, handler)
}

func (s *ServeMux) Post(pattern string, handler http.Handler) {
	s.Handle(http.MethodPost, pattern, handler)
}

// Routes returns every registered route as "METHOD pattern", sorted
func (s *ServeMux) Routes() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	routes := make([]string, 0, len(s.em))
	for _, entry := range s.em {
		routes = append(routes, entry.String())
	}
	sort.Strings(routes)
	return routes
}

// match returns the handler for method and path. The second value
// reports whether the path is known under any method.
func (s *ServeMux) match(method, path string) (http.Handler, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if e, ok := s.em[method+" "+path]; ok {
		return e.handler, true
	}
	known := false
	for _, e := range s.em {
		if e.pattern == path {
			known = true
		}
	}
	// only the longest matching prefix counts
	var best string
	for _, e := range s.es {
		if !strings.HasPrefix(path, e.pattern) {
			continue
		}
		if best == "" {
			best = e.pattern
		}
		if e.pattern != best {
			continue
		}
		if e.method == method {
			return e.handler, true
		}
		known = true
	}
	return nil, known
}

func (s *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, known := s.match(r.Method, r.URL.Path)
	if h == nil {
		if known {
			h = methodNotAllowed()
		} else {
			h = http.NotFoundHandler()
		}
	}
	// if logging is configured, then log, otherwise skip
	if s.logger != nil {
		h = s.requestLogger(h)
	}
	h.ServeHTTP(w, r)
}

func methodNotAllowed() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusMethodNotAllowed
		http.Error(w, http.StatusText(code), code)
	}
	return http.HandlerFunc(fn)
}

func (s *ServeMux) info() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		routes := s.Routes()
		ContentType(w, ContentTypeTextPlain)
		_, err := fmt.Fprintf(w, "Registered Routes (%d)\n%s\n", len(routes), strings.Join(routes, "\n"))
		if err != nil {
			s.logger.Error("writing route info: %v", err)
		}
	}
	return http.HandlerFunc(fn)
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.data.size += size
	return size, err
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.data.status = statusCode
}

func (s *ServeMux) requestLogger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				s.logger.Error("err: %v, trace: %s", err, debug.Stack())
			}
		}()
		lrw := loggingResponseWriter{
			ResponseWriter: w,
			data: &responseData{
				status: http.StatusOK,
			},
		}
		next.ServeHTTP(&lrw, r)
		str, args := logRequest(lrw.data, r)
		if 400 <= lrw.data.status && lrw.data.status <= 599 {
			s.logger.Error(str, args...)
			return
		}
		s.logger.Info(str, args...)
	}
	return http.HandlerFunc(fn)
}

func logRequest(data *responseData, r *http.Request) (string, []interface{}) {
	format, values := "# %s - - [%s] \"%s %s %s\" %d %d", []interface{}{
		r.RemoteAddr,
		time.Now().Format(time.RFC1123Z),
		r.Method,
		r.URL.EscapedPath(),
		r.Proto,
		data.status,
		data.size,
	}
	return format, values
}
