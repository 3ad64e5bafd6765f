package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
)

// Listener handles one named event for the mounted view.
type Listener func(ctx context.Context, ev Event) error

// Container is the element the router renders views into. Each request
// owns its own container.
type Container struct {
	session Session
	params  map[string]string

	active    ID
	fragment  *template.Template
	data      map[string]any
	listeners map[string]Listener
	failure   string

	redirect ID
	toast    string
	alert    string
	inline   string
}

func NewContainer(session Session, params map[string]string) *Container {
	if params == nil {
		params = map[string]string{}
	}
	return &Container{
		session:   session,
		params:    params,
		data:      map[string]any{},
		listeners: map[string]Listener{},
	}
}

func (c *Container) Session() Session { return c.session }

// Param returns a query parameter of the current request.
func (c *Container) Param(key string) string { return c.params[key] }

// Set exposes a value to the view's fragment template.
func (c *Container) Set(key string, value any) { c.data[key] = value }

func (c *Container) Get(key string) any { return c.data[key] }

// On binds a listener; a later binding for the same name replaces it.
func (c *Container) On(name string, fn Listener) { c.listeners[name] = fn }

func (c *Container) listener(name string) (Listener, bool) {
	fn, ok := c.listeners[name]
	return fn, ok
}

func (c *Container) Toast(msg string)       { c.toast = msg }
func (c *Container) Alert(msg string)       { c.alert = msg }
func (c *Container) InlineError(msg string) { c.inline = msg }

// Redirect asks the browser to navigate to another view.
func (c *Container) Redirect(id ID) { c.redirect = id }

// Redirected reports the pending redirect, if any.
func (c *Container) Redirected() (ID, bool) { return c.redirect, c.redirect != "" }

func (c *Container) Active() ID            { return c.active }
func (c *Container) ToastMessage() string  { return c.toast }
func (c *Container) AlertMessage() string  { return c.alert }
func (c *Container) InlineMessage() string { return c.inline }
func (c *Container) Failure() string       { return c.failure }

// HasListener reports whether the mounted view handles the event.
func (c *Container) HasListener(name string) bool {
	_, ok := c.listeners[name]
	return ok
}

// load replaces the content with a fresh fragment. Messages survive so a
// listener's feedback is shown after the view is mounted again.
func (c *Container) load(id ID, fragment *template.Template) {
	c.active = id
	c.fragment = fragment
	c.data = map[string]any{}
	c.failure = ""
}

func (c *Container) unbind() {
	c.listeners = map[string]Listener{}
}

// fail replaces the content with the load-failure message.
func (c *Container) fail(id ID) {
	c.active = id
	c.fragment = nil
	c.data = map[string]any{}
	c.failure = fmt.Sprintf("Failed to load %q view.", string(id))
}

// Render writes the current content.
func (c *Container) Render(w io.Writer) error {
	if c.failure != "" || c.fragment == nil {
		msg := c.failure
		if msg == "" {
			msg = fmt.Sprintf("Failed to load %q view.", string(c.active))
		}
		_, err := fmt.Fprintf(w, `<p class="view-error" style="color:red">%s</p>`, template.HTMLEscapeString(msg))
		return err
	}
	data := make(map[string]any, len(c.data)+1)
	for k, v := range c.data {
		data[k] = v
	}
	data["Inline"] = c.inline
	return c.fragment.Execute(w, data)
}

// HTML renders the content for embedding in the page shell.
func (c *Container) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
