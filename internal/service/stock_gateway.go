package service

import (
	"context"
	"mime/multipart"

	"inventory-spa/internal/model"
)

// StockGateway is the stock API as seen by a signed-in browser session:
// every call presents the session's bearer token and is refused the same
// way the HTTP endpoints refuse it.
type StockGateway struct {
	auth  AuthService
	stock StockService
}

func NewStockGateway(auth AuthService, stock StockService) *StockGateway {
	return &StockGateway{auth: auth, stock: stock}
}

func (g *StockGateway) ListStock(ctx context.Context, token string) ([]model.StockItem, error) {
	if _, err := g.auth.Authenticate(token); err != nil {
		return nil, err
	}
	return g.stock.GetAllStock(ctx)
}

func (g *StockGateway) AddStock(ctx context.Context, token string, in CreateStockInput, image *multipart.FileHeader) error {
	username, err := g.auth.Authenticate(token)
	if err != nil {
		return err
	}
	_, err = g.stock.CreateStock(ctx, in, image, username)
	return err
}
