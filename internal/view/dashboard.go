package view

import (
	"context"
	"errors"
	"log"

	"inventory-spa/internal/service"
)

func dashboardController(stock StockAPI, catalogs CatalogStore) InitFunc {
	return func(ctx context.Context, c *Container) error {
		if !signedIn(c, catalogs) {
			return nil
		}
		token := c.Session().Token()

		order := c.Param("sort-order")
		if order != service.SortEarliest {
			order = service.SortLatest
		}
		c.Set("SortOrder", order)

		items, err := stock.ListStock(ctx, token)
		if err != nil {
			if isAuthError(err) {
				signOut(c, catalogs)
				return nil
			}
			log.Printf("view: list stock: %v", err)
			c.Alert("Error: could not load stock")
		}
		service.SortStock(items, order)
		c.Set("Stock", items)
		c.Set("Stats", service.SummarizeStock(items))

		c.On("add-stock", func(ctx context.Context, ev Event) error {
			image := ev.File("image")
			price := ev.Value("price")
			if price == "" {
				price = ev.Value("purchasePrice")
			}
			if ev.Value("name") == "" || price == "" || ev.Value("quantity") == "" || ev.Value("date") == "" || image == nil {
				c.Alert("Fill all fields properly.")
				return nil
			}
			in, err := service.ParseStockForm(ev.Value)
			if err != nil {
				c.Alert("Fill all fields properly.")
				return nil
			}

			err = stock.AddStock(ctx, token, in, image)
			switch {
			case err == nil:
				c.Alert("Stock added and saved!")
			case isAuthError(err):
				signOut(c, catalogs)
			case errors.Is(err, service.ErrValidation):
				c.Alert("Error: " + service.ValidationDetail(err))
			default:
				log.Printf("view: add stock: %v", err)
				c.Alert("Server error.")
			}
			return nil
		})
		return nil
	}
}
