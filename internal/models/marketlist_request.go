package models

// CreateListRequest represents the request body for creating a market list
type CreateListRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateListRequest represents the request body for renaming a market list
type UpdateListRequest struct {
	Title string `json:"title" binding:"required"`
}

// PriceInput is one observed price attached to a new list item
type PriceInput struct {
	Type  string `json:"type" binding:"required"`
	Value int    `json:"value" binding:"min=0"` // Smallest currency unit (cents)
	Unit  string `json:"unit" binding:"required"`
}

// CreateItemRequest represents the request body for adding an item to a list
type CreateItemRequest struct {
	Name     string       `json:"name" binding:"required"`
	Brand    string       `json:"brand"`
	Quantity int          `json:"quantity" binding:"required,min=1"`
	Weight   *string      `json:"weight,omitempty"`
	Currency string       `json:"currency" binding:"required"`
	Prices   []PriceInput `json:"prices" binding:"dive"`
}
