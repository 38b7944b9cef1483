package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/scottcagno/hashtrace/pkg/logging"
)

type TemplateCache struct {
	cache  *template.Template
	logger *logging.LevelLogger
}

// NewTemplateCache parses every template in fsys matching pattern, for
// example "templates/*.html", and returns a new *TemplateCache.
func NewTemplateCache(fsys fs.FS, pattern string, fm template.FuncMap, logger *logging.LevelLogger) (*TemplateCache, error) {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoTemplates, pattern)
	}
	t, err := template.New("*").Funcs(fm).ParseFS(fsys, pattern)
	if err != nil {
		return nil, err
	}
	return &TemplateCache{
		cache:  t,
		logger: logger,
	}, nil
}

func (t *TemplateCache) Lookup(name string) *template.Template {
	return t.cache.Lookup(name)
}

func (t *TemplateCache) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	if t.cache.Lookup(name) == nil {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t.cache.ExecuteTemplate(w, name, data)
}

// Render executes the named template into a pooled buffer first, so a
// failing template never leaves a half written page behind
func (t *TemplateCache) Render(w http.ResponseWriter, tmpl string, data interface{}) {
	bufPool := OpenBufferPool()
	buffer := bufPool.Get()
	defer bufPool.Put(buffer)
	err := t.ExecuteTemplate(buffer, tmpl, data)
	if err != nil {
		t.logger.Error("executing template (%s): %v", tmpl, err)
		code := http.StatusInternalServerError
		http.Error(w, http.StatusText(code), code)
		return
	}
	ContentType(w, ContentTypeTextHTML)
	_, err = buffer.WriteTo(w)
	if err != nil {
		t.logger.Error("writing template (%s) to ResponseWriter: %v", tmpl, err)
	}
}
