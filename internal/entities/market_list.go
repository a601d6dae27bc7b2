package entities

import "time"

// MarketList represents a shopping list owned by a user
type MarketList struct {
	ID        string    `json:"id"` // UUID
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"` // UUID, FK to users
	CreatedAt time.Time `json:"created_at"`
}

// MarketListItem represents a single product entry on a market list
type MarketListItem struct {
	ID           string  `json:"id"` // UUID
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Quantity     int     `json:"quantity"`
	Weight       *string `json:"weight,omitempty"` // Pointer allows nil (unspecified weight)
	Currency     string  `json:"currency"`
	MarketListID string  `json:"market_list_id"` // UUID, FK to market_lists
}

// Price represents one observed price for a list item (e.g. per-unit, per-kg)
type Price struct {
	ID               string `json:"id"` // UUID
	Type             string `json:"type"`
	Value            int    `json:"value"` // Smallest currency unit (cents)
	Unit             string `json:"unit"`
	MarketListItemID string `json:"market_list_item_id"` // UUID, FK to market_list_items
}
