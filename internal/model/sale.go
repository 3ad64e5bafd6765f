package model

import "time"

type SaleItem struct {
	Name    string `json:"name"`
	SoldQty int    `json:"soldQty"`
}

// Sale records one confirmed sale against the session catalog.
type Sale struct {
	Items     []SaleItem `json:"items"`
	Timestamp time.Time  `json:"timestamp"`
}
