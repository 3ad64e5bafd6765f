package model

// Product lives only in a browser session's catalog; it is never stored.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
