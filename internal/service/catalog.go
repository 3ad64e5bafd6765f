package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"inventory-spa/internal/model"
	"inventory-spa/pkg/validator"
)

var (
	ErrDuplicateProduct  = errors.New("product ID already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrNothingToSell     = errors.New("no products available for sale")
)

// ReportTimeLayout formats sale timestamps in report lines.
const ReportTimeLayout = "2006-01-02 15:04:05"

type ProductInput struct {
	ID       string `validate:"notblank"`
	Name     string `validate:"notblank"`
	Quantity int    `validate:"gte=0"`
}

// Catalog holds the products and sales of one browser session. Nothing in
// it is persisted.
type Catalog struct {
	mu       sync.Mutex
	products []model.Product
	sales    []model.Sale
	now      func() time.Time
}

func NewCatalog(products []model.Product, sales []model.Sale) *Catalog {
	return &Catalog{
		products: append([]model.Product(nil), products...),
		sales:    append([]model.Sale(nil), sales...),
		now:      time.Now,
	}
}

func (c *Catalog) indexOf(id string) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) AddProduct(in ProductInput) (model.Product, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	if errs := validator.ValidateStruct(&in); len(errs) > 0 {
		return model.Product{}, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(errs))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(in.ID) >= 0 {
		return model.Product{}, ErrDuplicateProduct
	}
	p := model.Product{ID: in.ID, Name: in.Name, Quantity: in.Quantity}
	c.products = append(c.products, p)
	return p, nil
}

func (c *Catalog) EditProduct(id, name string, quantity int) (model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || quantity < 0 {
		return model.Product{}, fmt.Errorf("%w: name is required and quantity must be at least 0", ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return model.Product{}, ErrProductNotFound
	}
	c.products[i].Name = name
	c.products[i].Quantity = quantity
	return c.products[i], nil
}

func (c *Catalog) Product(id string) (model.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.products[i], true
	}
	return model.Product{}, false
}

// Products returns a copy in insertion order.
func (c *Catalog) Products() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Product(nil), c.products...)
}

// Available returns the products that still have stock.
func (c *Catalog) Available() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []model.Product
	for _, p := range c.products {
		if p.Quantity > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Sell checks and decrements under one lock, so repeated submissions can
// never take a product below zero. With nothing in stock it fails with
// ErrNothingToSell before looking at the arguments.
func (c *Catalog) Sell(productID string, quantity int) (model.Sale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.anyInStock() {
		return model.Sale{}, ErrNothingToSell
	}
	if quantity <= 0 {
		return model.Sale{}, fmt.Errorf("%w: quantity must be greater than 0", ErrValidation)
	}

	i := c.indexOf(productID)
	if i < 0 {
		return model.Sale{}, ErrProductNotFound
	}
	p := &c.products[i]
	if quantity > p.Quantity {
		return model.Sale{}, fmt.Errorf("%w for %s", ErrInsufficientStock, p.Name)
	}

	p.Quantity -= quantity
	sale := model.Sale{
		Items:     []model.SaleItem{{Name: p.Name, SoldQty: quantity}},
		Timestamp: c.now(),
	}
	c.sales = append(c.sales, sale)
	return sale, nil
}

func (c *Catalog) anyInStock() bool {
	for _, p := range c.products {
		if p.Quantity > 0 {
			return true
		}
	}
	return false
}

func (c *Catalog) Sales() []model.Sale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Sale(nil), c.sales...)
}

// ReportLines renders each sale as "timestamp | name x qty, ...".
func (c *Catalog) ReportLines() []string {
	sales := c.Sales()
	lines := make([]string, 0, len(sales))
	for _, s := range sales {
		items := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, fmt.Sprintf("%s x %d", it.Name, it.SoldQty))
		}
		lines = append(lines, s.Timestamp.Format(ReportTimeLayout)+" | "+strings.Join(items, ", "))
	}
	return lines
}

// Catalogs keeps one Catalog per browser session.
type Catalogs struct {
	mu       sync.Mutex
	catalogs map[string]*catalogEntry
	now      func() time.Time
}

type catalogEntry struct {
	catalog  *Catalog
	lastUsed time.Time
}

func NewCatalogs() *Catalogs {
	return &Catalogs{catalogs: make(map[string]*catalogEntry), now: time.Now}
}

// For returns the session's catalog, creating an empty one on first use.
func (c *Catalogs) For(sessionID string) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.catalogs[sessionID]
	if !ok {
		e = &catalogEntry{catalog: NewCatalog(nil, nil)}
		c.catalogs[sessionID] = e
	}
	e.lastUsed = c.now()
	return e.catalog
}

func (c *Catalogs) Drop(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.catalogs, sessionID)
}

// Prune forgets catalogs idle for longer than maxIdle and reports how many
// were removed.
func (c *Catalogs) Prune(maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-maxIdle)
	removed := 0
	for id, e := range c.catalogs {
		if e.lastUsed.Before(cutoff) {
			delete(c.catalogs, id)
			removed++
		}
	}
	return removed
}

func (c *Catalogs) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.catalogs)
}
