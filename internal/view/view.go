package view

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

// ID names a view; it is also the fragment after "#" in app links.
type ID string

const (
	Landing   ID = "landing"
	Dashboard ID = "dashboard"
	Products  ID = "products"
	Sales     ID = "sales"
	Reports   ID = "reports"
)

// DefaultView is shown when a link carries no fragment.
const DefaultView = Dashboard

// ParseID strips the leading "#" or "/" of a fragment.
func ParseID(fragment string) ID {
	id := strings.TrimLeft(strings.TrimSpace(fragment), "#/")
	if id == "" {
		return DefaultView
	}
	return ID(id)
}

var (
	ErrNoListener   = errors.New("no listener bound for event")
	ErrViewNotFound = errors.New("view not found")
)

// Session is the browser session a view renders for.
type Session interface {
	ID() string
	Username() string
	Token() string
	// Regenerate moves the session to a fresh ID, keeping its data.
	Regenerate() error
	SignIn(username, token string)
	SignOut()
}

// Form gives listeners access to the submitted fields.
type Form interface {
	Value(key string) string
	File(key string) (*multipart.FileHeader, error)
}

// Event is a named browser action, usually a form submission.
type Event struct {
	Name string
	Form Form
}

// Value returns a trimmed form field, or "" when the event has no form.
func (e Event) Value(key string) string {
	if e.Form == nil {
		return ""
	}
	return strings.TrimSpace(e.Form.Value(key))
}

// File returns an uploaded file, or nil when none was sent.
func (e Event) File(key string) *multipart.FileHeader {
	if e.Form == nil {
		return nil
	}
	fh, err := e.Form.File(key)
	if err != nil {
		return nil
	}
	return fh
}

// MapForm is a Form without files.
type MapForm map[string]string

func (m MapForm) Value(key string) string { return m[key] }

func (m MapForm) File(key string) (*multipart.FileHeader, error) {
	return nil, http.ErrMissingFile
}
