package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"
	"time"

	"inventory-spa/internal/model"
	"inventory-spa/internal/repository"
	"inventory-spa/internal/upload"
	"inventory-spa/pkg/validator"
)

// EventPublisher fans events out to live clients.
type EventPublisher interface {
	Publish(event any)
}

type StockService interface {
	CreateStock(ctx context.Context, in CreateStockInput, image *multipart.FileHeader, createdBy string) (*model.StockItem, error)
	GetAllStock(ctx context.Context) ([]model.StockItem, error)
}

type CreateStockInput struct {
	Name          string    `validate:"notblank"`
	PurchasePrice float64   `validate:"gte=0"`
	Quantity      int       `validate:"gte=0"`
	Date          time.Time `validate:"-"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ParseStockForm reads a stock submission from form fields. The price may
// arrive as purchasePrice or price; empty numbers count as zero.
func ParseStockForm(get func(key string) string) (CreateStockInput, error) {
	in := CreateStockInput{Name: strings.TrimSpace(get("name"))}

	price := strings.TrimSpace(get("purchasePrice"))
	if price == "" {
		price = strings.TrimSpace(get("price"))
	}
	if price != "" {
		v, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return in, fmt.Errorf("%w: purchasePrice must be a number", ErrValidation)
		}
		in.PurchasePrice = v
	}

	if qty := strings.TrimSpace(get("quantity")); qty != "" {
		v, err := strconv.Atoi(qty)
		if err != nil {
			return in, fmt.Errorf("%w: quantity must be a whole number", ErrValidation)
		}
		in.Quantity = v
	}

	if date := strings.TrimSpace(get("date")); date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return in, err
		}
		in.Date = parsed
	}
	return in, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must look like YYYY-MM-DD", ErrValidation)
}

type stockService struct {
	stockRepo repository.StockRepository
	uploads   upload.Store
	events    EventPublisher
	now       func() time.Time
}

func NewStockService(stockRepo repository.StockRepository, uploads upload.Store, events EventPublisher) StockService {
	return &stockService{
		stockRepo: stockRepo,
		uploads:   uploads,
		events:    events,
		now:       time.Now,
	}
}

func (s *stockService) CreateStock(ctx context.Context, in CreateStockInput, image *multipart.FileHeader, createdBy string) (*model.StockItem, error) {
	// 1. Validate
	if errs := validator.ValidateStruct(&in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(errs))
	}

	// 2. Store the image, if any
	var ref string
	if image != nil {
		var err error
		if ref, err = s.uploads.Save(ctx, image); err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
	}

	item := &model.StockItem{
		Name:          strings.TrimSpace(in.Name),
		Image:         ref,
		PurchasePrice: in.PurchasePrice,
		Quantity:      in.Quantity,
		Date:          in.Date,
		CreatedBy:     createdBy,
	}
	if item.Date.IsZero() {
		item.Date = s.now()
	}

	// 3. Persist
	if err := s.stockRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create stock: %w", err)
	}

	// 4. Notify live dashboards
	if s.events != nil {
		s.events.Publish(map[string]interface{}{
			"type":   "stock_update",
			"action": "stock_created",
			"stock": map[string]interface{}{
				"id":            item.ID,
				"name":          item.Name,
				"image":         item.Image,
				"purchasePrice": item.PurchasePrice,
				"quantity":      item.Quantity,
			},
			"user":    createdBy,
			"message": fmt.Sprintf("%s added %d units of '%s'", createdBy, item.Quantity, item.Name),
		})
	}

	return item, nil
}

func (s *stockService) GetAllStock(ctx context.Context) ([]model.StockItem, error) {
	return s.stockRepo.FindAll(ctx)
}

const (
	SortLatest   = "latest"
	SortEarliest = "earliest"
)

// SortStock orders items by purchase date, newest first unless order is
// SortEarliest.
func SortStock(items []model.StockItem, order string) {
	earliest := order == SortEarliest
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Date.Equal(b.Date) {
			if earliest {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if earliest {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
