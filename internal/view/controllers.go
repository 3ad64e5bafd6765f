package view

import (
	"context"
	"errors"
	"mime/multipart"

	"inventory-spa/internal/model"
	"inventory-spa/internal/service"
)

// Authenticator signs a user in.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*service.LoginResponse, error)
}

// StockAPI is the token-guarded stock API.
type StockAPI interface {
	ListStock(ctx context.Context, token string) ([]model.StockItem, error)
	AddStock(ctx context.Context, token string, in service.CreateStockInput, image *multipart.FileHeader) error
}

// CatalogStore hands out per-session catalogs.
type CatalogStore interface {
	For(sessionID string) *service.Catalog
	Drop(sessionID string)
}

type Deps struct {
	Auth     Authenticator
	Stock    StockAPI
	Catalogs CatalogStore
}

// RegisterControllers installs the application's views.
func RegisterControllers(r *Registry, d Deps) {
	r.Register(Landing, landingController(d.Auth))
	r.Register(Dashboard, dashboardController(d.Stock, d.Catalogs))
	r.Register(Products, productsController(d.Catalogs))
	r.Register(Sales, salesController(d.Catalogs))
	r.Register(Reports, reportsController(d.Catalogs))
}

// signedIn sends anonymous visitors to the landing view and binds the
// logout listener shared by every signed-in view.
func signedIn(c *Container, catalogs CatalogStore) bool {
	sess := c.Session()
	if sess == nil || sess.Username() == "" {
		c.Redirect(Landing)
		return false
	}
	c.Set("Username", sess.Username())
	c.On("logout", func(ctx context.Context, ev Event) error {
		signOut(c, catalogs)
		return nil
	})
	return true
}

func signOut(c *Container, catalogs CatalogStore) {
	sess := c.Session()
	catalogs.Drop(sess.ID())
	sess.SignOut()
	c.Redirect(Landing)
}

func isAuthError(err error) bool {
	return errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrForbidden)
}
