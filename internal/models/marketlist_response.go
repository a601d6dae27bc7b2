package models

import "market-helper-be/internal/entities"

// ItemWithPrices pairs a list item with its price rows
type ItemWithPrices struct {
	Item   entities.MarketListItem `json:"item"`
	Prices []entities.Price        `json:"prices"`
}

// ListWithItemsResponse is the aggregated view of a list: the list row plus
// every item with its prices
type ListWithItemsResponse struct {
	MarketList entities.MarketList `json:"market_list"`
	Items      []ItemWithPrices    `json:"items"`
}
