package repository

import (
	"context"

	"inventory-spa/internal/model"

	"gorm.io/gorm"
)

type StockRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	FindAll(ctx context.Context) ([]model.StockItem, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) Create(ctx context.Context, item *model.StockItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *stockRepo) FindAll(ctx context.Context) ([]model.StockItem, error) {
	items := []model.StockItem{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, translate(err)
}
