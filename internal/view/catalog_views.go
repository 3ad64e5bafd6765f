package view

import (
	"context"
	"errors"
	"strconv"

	"inventory-spa/internal/service"
)

func productsController(catalogs CatalogStore) InitFunc {
	return func(ctx context.Context, c *Container) error {
		if !signedIn(c, catalogs) {
			return nil
		}
		cat := catalogs.For(c.Session().ID())
		c.Set("Products", cat.Products())
		if p, ok := cat.Product(c.Param("edit")); ok {
			c.Set("Edit", p)
		}

		c.On("add-product", func(ctx context.Context, ev Event) error {
			id, name, qty := ev.Value("id"), ev.Value("name"), ev.Value("quantity")
			if id == "" || name == "" || qty == "" {
				c.Alert("Please fill all fields.")
				return nil
			}
			n, err := strconv.Atoi(qty)
			if err != nil {
				c.Alert("Please enter valid product details.")
				return nil
			}
			_, err = cat.AddProduct(service.ProductInput{ID: id, Name: name, Quantity: n})
			switch {
			case err == nil:
			case errors.Is(err, service.ErrDuplicateProduct):
				c.Alert("Product ID already exists.")
			default:
				c.Alert("Please enter valid product details.")
			}
			return nil
		})

		c.On("edit-product", func(ctx context.Context, ev Event) error {
			n, err := strconv.Atoi(ev.Value("quantity"))
			if ev.Value("name") == "" || err != nil || n < 0 {
				c.Alert("Please enter valid product details.")
				return nil
			}
			if _, err := cat.EditProduct(ev.Value("id"), ev.Value("name"), n); err != nil {
				if errors.Is(err, service.ErrProductNotFound) {
					c.Alert("Product not found.")
					return nil
				}
				c.Alert("Please enter valid product details.")
			}
			return nil
		})
		return nil
	}
}

func salesController(catalogs CatalogStore) InitFunc {
	return func(ctx context.Context, c *Container) error {
		if !signedIn(c, catalogs) {
			return nil
		}
		cat := catalogs.For(c.Session().ID())
		c.Set("Products", cat.Available())

		c.On("sell", func(ctx context.Context, ev Event) error {
			id := ev.Value("product")
			n, err := strconv.Atoi(ev.Value("quantity"))
			if err != nil {
				n = 0
			}

			_, err = cat.Sell(id, n)
			switch {
			case err == nil:
				c.Toast("Sale complete!")
			case errors.Is(err, service.ErrNothingToSell):
				c.Alert("No products available for sale.")
			case errors.Is(err, service.ErrInsufficientStock):
				p, _ := cat.Product(id)
				c.Alert("Not enough stock for " + p.Name)
			default:
				c.Alert("Please select a product and enter a valid quantity.")
			}
			return nil
		})
		return nil
	}
}

func reportsController(catalogs CatalogStore) InitFunc {
	return func(ctx context.Context, c *Container) error {
		if !signedIn(c, catalogs) {
			return nil
		}
		c.Set("Lines", catalogs.For(c.Session().ID()).ReportLines())
		return nil
	}
}
