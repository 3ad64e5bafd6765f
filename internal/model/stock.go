package model

import "time"

// StockItem is a purchased batch of goods with an optional product photo.
type StockItem struct {
	BaseModel
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Image         string    `gorm:"type:varchar(1024)" json:"image"`
	PurchasePrice float64   `json:"purchasePrice"`
	Quantity      int       `json:"quantity"`
	Date          time.Time `gorm:"index" json:"date"`
	CreatedBy     string    `gorm:"type:varchar(255)" json:"createdBy"`
}

// TableName overrides the default "stock_items"
func (StockItem) TableName() string {
	return "stocks"
}
