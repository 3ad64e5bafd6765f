package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"regexp"
	"sync"
	"time"
)

//go:embed templates
var embedded embed.FS

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// FragmentLoader fetches the markup of a view.
type FragmentLoader interface {
	Load(id ID) (*template.Template, error)
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// TemplateLoader reads fragments from templates/views/<id>.html and the
// page shell from templates/layout.html.
type TemplateLoader struct {
	fsys fs.FS

	mu    sync.RWMutex
	cache map[ID]*template.Template

	layoutOnce sync.Once
	layout     *template.Template
	layoutErr  error
}

// NewTemplateLoader serves the templates compiled into the binary.
func NewTemplateLoader() *TemplateLoader {
	return NewTemplateLoaderFS(embedded)
}

func NewTemplateLoaderFS(fsys fs.FS) *TemplateLoader {
	return &TemplateLoader{fsys: fsys, cache: make(map[ID]*template.Template)}
}

func (l *TemplateLoader) Load(id ID) (*template.Template, error) {
	if !idPattern.MatchString(string(id)) {
		return nil, fmt.Errorf("%w: %q", ErrViewNotFound, string(id))
	}

	l.mu.RLock()
	tmpl, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	name := "templates/views/" + string(id) + ".html"
	if _, err := fs.Stat(l.fsys, name); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrViewNotFound, string(id))
	}
	tmpl, err := template.New(string(id) + ".html").Funcs(funcs).ParseFS(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("parse view %q: %w", string(id), err)
	}

	l.mu.Lock()
	l.cache[id] = tmpl
	l.mu.Unlock()
	return tmpl, nil
}

// Page is the data handed to the shell template.
type Page struct {
	Username string
	Active   ID
	Nav      []ID
	Content  template.HTML
	Toast    string
	Alert    string
}

var navViews = []ID{Dashboard, Products, Sales, Reports}

// RenderPage writes the container's content inside the page shell.
func (l *TemplateLoader) RenderPage(w io.Writer, c *Container) error {
	l.layoutOnce.Do(func() {
		l.layout, l.layoutErr = template.New("layout.html").Funcs(funcs).ParseFS(l.fsys, "templates/layout.html")
	})
	if l.layoutErr != nil {
		return fmt.Errorf("parse layout: %w", l.layoutErr)
	}

	content, err := c.HTML()
	if err != nil {
		return fmt.Errorf("render %q: %w", string(c.Active()), err)
	}
	page := Page{
		Active:  c.Active(),
		Content: content,
		Toast:   c.ToastMessage(),
		Alert:   c.AlertMessage(),
	}
	if c.Session() != nil {
		page.Username = c.Session().Username()
	}
	if page.Username != "" {
		page.Nav = navViews
	}
	return l.layout.Execute(w, page)
}
