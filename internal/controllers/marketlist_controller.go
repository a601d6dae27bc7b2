package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market-helper-be/internal/middleware"
	"market-helper-be/internal/models"
	"market-helper-be/internal/service"
)

type MarketListController struct {
	listService service.MarketListService
}

func NewMarketListController(listService service.MarketListService) *MarketListController {
	return &MarketListController{
		listService: listService,
	}
}

// CreateList handles POST /api/v1/market-list
func (mc *MarketListController) CreateList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	list, err := mc.listService.CreateList(user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "List created successfully",
		"data":    list,
	})
}

// GetList handles GET /api/v1/market-list/:listID
func (mc *MarketListController) GetList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	list, err := mc.listService.GetList(c.Param("listID"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateList handles PATCH /api/v1/market-list/:listID
func (mc *MarketListController) UpdateList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req models.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	list, err := mc.listService.UpdateList(c.Param("listID"), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// DeleteList handles DELETE /api/v1/market-list/:listID - removes the list,
// its items, and their prices in one transaction
func (mc *MarketListController) DeleteList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if err := mc.listService.DeleteList(c.Param("listID"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "List deleted successfully",
	})
}

// GetListItems handles GET /api/v1/market-list/:listID/items
func (mc *MarketListController) GetListItems(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	response, err := mc.listService.GetListWithItems(c.Param("listID"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateItem handles POST /api/v1/market-list/:listID/items
func (mc *MarketListController) CreateItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, err := mc.listService.CreateItem(c.Param("listID"), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /api/v1/market-list/:listID/items/:itemID
func (mc *MarketListController) GetItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	item, err := mc.listService.GetItem(c.Param("listID"), c.Param("itemID"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/market-list/:listID/items/:itemID
func (mc *MarketListController) DeleteItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if err := mc.listService.DeleteItem(c.Param("listID"), c.Param("itemID"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
	})
}
