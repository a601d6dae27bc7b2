package service

import (
	"errors"

	"market-helper-be/internal/apperror"
	"market-helper-be/internal/entities"
	"market-helper-be/internal/models"
	"market-helper-be/internal/repository"
)

// MarketListService defines the interface for market list business logic.
// Every operation takes the authenticated user's id and scopes queries by it;
// an existing but unowned resource is reported as NotFound, never Forbidden.
type MarketListService interface {
	CreateList(userID string, req *models.CreateListRequest) (*entities.MarketList, error)
	GetList(listID, userID string) (*entities.MarketList, error)
	UpdateList(listID, userID string, req *models.UpdateListRequest) (*entities.MarketList, error)
	DeleteList(listID, userID string) error

	GetListWithItems(listID, userID string) (*models.ListWithItemsResponse, error)
	CreateItem(listID, userID string, req *models.CreateItemRequest) (*models.ItemWithPrices, error)
	GetItem(listID, itemID, userID string) (*models.ItemWithPrices, error)
	DeleteItem(listID, itemID, userID string) error
}

type marketListService struct {
	repo repository.MarketListRepository
}

// NewMarketListService creates a new market list service
func NewMarketListService(repo repository.MarketListRepository) MarketListService {
	return &marketListService{repo: repo}
}

var errListNotFound = apperror.NewNotFound("this list could not be found", nil)

// CreateList creates a new market list for the user
func (s *marketListService) CreateList(userID string, req *models.CreateListRequest) (*entities.MarketList, error) {
	list, err := s.repo.CreateList(req.Title, userID)
	if err != nil {
		return nil, apperror.NewServerError("cannot create list, try again later", err)
	}
	return list, nil
}

// GetList returns a single list owned by the user
func (s *marketListService) GetList(listID, userID string) (*entities.MarketList, error) {
	list, err := s.repo.FindListByID(listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errListNotFound
		}
		return nil, apperror.NewServerError("failed to load list", err)
	}
	return list, nil
}

// UpdateList renames a list owned by the user
func (s *marketListService) UpdateList(listID, userID string, req *models.UpdateListRequest) (*entities.MarketList, error) {
	list, err := s.repo.UpdateListTitle(listID, userID, req.Title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errListNotFound
		}
		return nil, apperror.NewServerError("failed to update list", err)
	}
	return list, nil
}

// DeleteList removes a list with all its items and prices
func (s *marketListService) DeleteList(listID, userID string) error {
	if err := s.repo.DeleteList(listID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errListNotFound
		}
		return apperror.NewServerError("failed to delete list", err)
	}
	return nil
}

// GetListWithItems returns the list together with every item and its prices
func (s *marketListService) GetListWithItems(listID, userID string) (*models.ListWithItemsResponse, error) {
	list, err := s.repo.FindListByID(listID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errListNotFound
		}
		return nil, apperror.NewServerError("failed to load list", err)
	}

	items, err := s.repo.ListItems(listID)
	if err != nil {
		return nil, apperror.NewServerError("failed to load items", err)
	}

	withPrices := make([]models.ItemWithPrices, 0, len(items))
	for _, item := range items {
		prices, err := s.repo.ListPricesByItem(item.ID)
		if err != nil {
			return nil, apperror.NewServerError("failed to load prices", err)
		}
		withPrices = append(withPrices, models.ItemWithPrices{Item: *item, Prices: prices})
	}

	return &models.ListWithItemsResponse{MarketList: *list, Items: withPrices}, nil
}

// CreateItem adds an item (with its prices) to a list owned by the user
func (s *marketListService) CreateItem(listID, userID string, req *models.CreateItemRequest) (*models.ItemWithPrices, error) {
	if _, err := s.repo.FindListByID(listID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errListNotFound
		}
		return nil, apperror.NewServerError("failed to load list", err)
	}

	item := &entities.MarketListItem{
		Name:         req.Name,
		Brand:        req.Brand,
		Quantity:     req.Quantity,
		Weight:       req.Weight,
		Currency:     req.Currency,
		MarketListID: listID,
	}
	prices := make([]entities.Price, len(req.Prices))
	for i, p := range req.Prices {
		prices[i] = entities.Price{Type: p.Type, Value: p.Value, Unit: p.Unit}
	}

	created, createdPrices, err := s.repo.CreateItem(item, prices)
	if err != nil {
		return nil, apperror.NewServerError("failed to create item", err)
	}

	return &models.ItemWithPrices{Item: *created, Prices: createdPrices}, nil
}

// GetItem returns one item with its prices, scoped through the owning list
func (s *marketListService) GetItem(listID, itemID, userID string) (*models.ItemWithPrices, error) {
	if _, err := s.repo.FindListByID(listID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errListNotFound
		}
		return nil, apperror.NewServerError("failed to load list", err)
	}

	item, err := s.repo.FindItemByID(itemID, listID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFound("this item could not be found", nil)
		}
		return nil, apperror.NewServerError("failed to load item", err)
	}

	prices, err := s.repo.ListPricesByItem(item.ID)
	if err != nil {
		return nil, apperror.NewServerError("failed to load prices", err)
	}

	return &models.ItemWithPrices{Item: *item, Prices: prices}, nil
}

// DeleteItem removes one item and its prices from a list owned by the user
func (s *marketListService) DeleteItem(listID, itemID, userID string) error {
	if _, err := s.repo.FindListByID(listID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errListNotFound
		}
		return apperror.NewServerError("failed to load list", err)
	}

	if err := s.repo.DeleteItem(itemID, listID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFound("this item could not be found", nil)
		}
		return apperror.NewServerError("failed to delete item", err)
	}
	return nil
}
