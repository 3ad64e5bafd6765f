package handler

import (
	"bytes"
	"errors"
	"mime/multipart"

	"inventory-spa/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionUsername = "username"
	sessionToken    = "token"
)

// AppHandler serves the single-page shell: each request gets its own router
// and container over the shared view registry.
type AppHandler struct {
	registry *view.Registry
	loader   *view.TemplateLoader
	sessions *session.Store
}

func NewAppHandler(registry *view.Registry, loader *view.TemplateLoader, sessions *session.Store) *AppHandler {
	return &AppHandler{
		registry: registry,
		loader:   loader,
		sessions: sessions,
	}
}

// Show renders a view
// GET /app, GET /app/:view
func (h *AppHandler) Show(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return serverError(c, "load session", err)
	}
	router := h.router(c, sess)
	defer router.Close()

	router.Navigate(c.UserContext(), c.Params("view"))
	return h.respond(c, sess, router)
}

// Event delivers a form submission to the mounted view
// POST /app/:view (field "event" names the listener)
func (h *AppHandler) Event(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return serverError(c, "load session", err)
	}
	router := h.router(c, sess)
	defer router.Close()

	router.Navigate(c.UserContext(), c.Params("view"))
	if _, redirected := router.Container().Redirected(); redirected {
		return h.respond(c, sess, router)
	}

	err = router.Dispatch(c.UserContext(), view.Event{Name: c.FormValue("event"), Form: fiberForm{c}})
	switch {
	case err == nil:
	case errors.Is(err, view.ErrNoListener):
		return c.Status(fiber.StatusBadRequest).SendString("Unknown event")
	default:
		return serverError(c, "dispatch "+c.FormValue("event"), err)
	}
	return h.respond(c, sess, router)
}

func (h *AppHandler) router(c *fiber.Ctx, sess *session.Session) *view.Router {
	container := view.NewContainer(fiberSession{sess}, c.Queries())
	return view.NewRouter(h.registry, h.loader, container)
}

// respond renders before saving: a saved session goes back to fiber's pool
// and must not be read again.
func (h *AppHandler) respond(c *fiber.Ctx, sess *session.Session, router *view.Router) error {
	to, redirected := router.Container().Redirected()

	var page bytes.Buffer
	if !redirected {
		if err := h.loader.RenderPage(&page, router.Container()); err != nil {
			return serverError(c, "render page", err)
		}
	}

	if err := sess.Save(); err != nil {
		return serverError(c, "save session", err)
	}

	if redirected {
		return c.Redirect("/app/"+string(to), fiber.StatusSeeOther)
	}
	c.Type("html", "utf-8")
	return c.Send(page.Bytes())
}

type fiberSession struct {
	s *session.Session
}

func (f fiberSession) ID() string { return f.s.ID() }

func (f fiberSession) Username() string {
	v, _ := f.s.Get(sessionUsername).(string)
	return v
}

func (f fiberSession) Token() string {
	v, _ := f.s.Get(sessionToken).(string)
	return v
}

func (f fiberSession) Regenerate() error { return f.s.Regenerate() }

func (f fiberSession) SignIn(username, token string) {
	f.s.Set(sessionUsername, username)
	f.s.Set(sessionToken, token)
}

func (f fiberSession) SignOut() {
	f.s.Delete(sessionUsername)
	f.s.Delete(sessionToken)
}

type fiberForm struct {
	c *fiber.Ctx
}

func (f fiberForm) Value(key string) string { return f.c.FormValue(key) }

func (f fiberForm) File(key string) (*multipart.FileHeader, error) {
	return f.c.FormFile(key)
}
