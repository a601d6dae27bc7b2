package repository

import (
	"database/sql"
	"fmt"

	"market-helper-be/internal/entities"
)

// MarketListRepository defines the interface for market list, item, and price
// database operations. Every read and delete is scoped by the owning user
// (directly, or through the list for items and prices).
type MarketListRepository interface {
	CreateList(title, userID string) (*entities.MarketList, error)
	FindListByID(listID, userID string) (*entities.MarketList, error)
	UpdateListTitle(listID, userID, title string) (*entities.MarketList, error)
	DeleteList(listID, userID string) error

	CreateItem(item *entities.MarketListItem, prices []entities.Price) (*entities.MarketListItem, []entities.Price, error)
	FindItemByID(itemID, listID string) (*entities.MarketListItem, error)
	ListItems(listID string) ([]*entities.MarketListItem, error)
	ListPricesByItem(itemID string) ([]entities.Price, error)
	DeleteItem(itemID, listID string) error

	DeleteAll() error
}

type marketListRepository struct {
	db *sql.DB
}

// NewMarketListRepository creates a new market list repository
func NewMarketListRepository(db *sql.DB) MarketListRepository {
	return &marketListRepository{db: db}
}

func scanList(row *sql.Row) (*entities.MarketList, error) {
	var list entities.MarketList
	err := row.Scan(&list.ID, &list.Title, &list.UserID, &list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan market list: %w", err)
	}
	return &list, nil
}

// CreateList inserts a new market list owned by the user
func (r *marketListRepository) CreateList(title, userID string) (*entities.MarketList, error) {
	query := `
		INSERT INTO market_lists (title, user_id)
		VALUES ($1, $2)
		RETURNING id, title, user_id, created_at
	`

	list, err := scanList(r.db.QueryRow(query, title, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create market list: %w", err)
	}
	return list, nil
}

// FindListByID finds a list by id, scoped to its owner. A list owned by
// someone else is indistinguishable from a missing one.
func (r *marketListRepository) FindListByID(listID, userID string) (*entities.MarketList, error) {
	query := `
		SELECT id, title, user_id, created_at
		FROM market_lists
		WHERE id = $1 AND user_id = $2
	`
	return scanList(r.db.QueryRow(query, listID, userID))
}

// UpdateListTitle renames a list, scoped to its owner
func (r *marketListRepository) UpdateListTitle(listID, userID, title string) (*entities.MarketList, error) {
	query := `
		UPDATE market_lists
		SET title = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, user_id, created_at
	`
	return scanList(r.db.QueryRow(query, listID, userID, title))
}

// DeleteList removes a list with its items and prices in one transaction, so
// a failure partway through leaves no orphaned rows. Children go first:
// prices, then items, then the list itself.
func (r *marketListRepository) DeleteList(listID, userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Ownership check up front so an unowned list deletes nothing at all
	var owned string
	err = tx.QueryRow(`SELECT id FROM market_lists WHERE id = $1 AND user_id = $2`, listID, userID).Scan(&owned)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check list ownership: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM prices
		WHERE market_list_item_id IN (
			SELECT id FROM market_list_items WHERE market_list_id = $1
		)`, listID)
	if err != nil {
		return fmt.Errorf("failed to delete prices: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM market_list_items WHERE market_list_id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM market_lists WHERE id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete market list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// CreateItem inserts an item and its price rows in one transaction
func (r *marketListRepository) CreateItem(item *entities.MarketListItem, prices []entities.Price) (*entities.MarketListItem, []entities.Price, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	itemQuery := `
		INSERT INTO market_list_items (name, brand, quantity, weight, currency, market_list_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var created entities.MarketListItem = *item
	err = tx.QueryRow(itemQuery, item.Name, item.Brand, item.Quantity, item.Weight, item.Currency, item.MarketListID).
		Scan(&created.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create item: %w", err)
	}

	priceQuery := `
		INSERT INTO prices (type, value, unit, market_list_item_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	createdPrices := make([]entities.Price, 0, len(prices))
	for _, price := range prices {
		price.MarketListItemID = created.ID
		if err := tx.QueryRow(priceQuery, price.Type, price.Value, price.Unit, created.ID).Scan(&price.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to create price: %w", err)
		}
		createdPrices = append(createdPrices, price)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit item: %w", err)
	}
	return &created, createdPrices, nil
}

// FindItemByID finds an item by id, scoped to its list
func (r *marketListRepository) FindItemByID(itemID, listID string) (*entities.MarketListItem, error) {
	query := `
		SELECT id, name, brand, quantity, weight, currency, market_list_id
		FROM market_list_items
		WHERE id = $1 AND market_list_id = $2
	`

	var item entities.MarketListItem
	err := r.db.QueryRow(query, itemID, listID).Scan(
		&item.ID,
		&item.Name,
		&item.Brand,
		&item.Quantity,
		&item.Weight,
		&item.Currency,
		&item.MarketListID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

// ListItems returns all items on a list
func (r *marketListRepository) ListItems(listID string) ([]*entities.MarketListItem, error) {
	query := `
		SELECT id, name, brand, quantity, weight, currency, market_list_id
		FROM market_list_items
		WHERE market_list_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*entities.MarketListItem
	for rows.Next() {
		var item entities.MarketListItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Brand,
			&item.Quantity,
			&item.Weight,
			&item.Currency,
			&item.MarketListID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// ListPricesByItem returns all price rows for an item
func (r *marketListRepository) ListPricesByItem(itemID string) ([]entities.Price, error) {
	query := `
		SELECT id, type, value, unit, market_list_item_id
		FROM prices
		WHERE market_list_item_id = $1
	`

	rows, err := r.db.Query(query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var prices []entities.Price
	for rows.Next() {
		var price entities.Price
		if err := rows.Scan(&price.ID, &price.Type, &price.Value, &price.Unit, &price.MarketListItemID); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prices: %w", err)
	}

	return prices, nil
}

// DeleteItem removes an item and its prices in one transaction, prices first
func (r *marketListRepository) DeleteItem(itemID, listID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM prices WHERE market_list_item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete prices: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM market_list_items WHERE id = $1 AND market_list_id = $2`, itemID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// DeleteAll removes every price, item, and list row in dependency order
func (r *marketListRepository) DeleteAll() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM prices`,
		`DELETE FROM market_list_items`,
		`DELETE FROM market_lists`,
	} {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to wipe market list data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wipe: %w", err)
	}
	return nil
}
