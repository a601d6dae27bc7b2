package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market-helper-be/internal/models"
	"market-helper-be/internal/service"
)

type UsersController struct {
	userService service.UserService
}

func NewUsersController(userService service.UserService) *UsersController {
	return &UsersController{
		userService: userService,
	}
}

// Register handles POST /api/v1/users
func (uc *UsersController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := uc.userService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListUsers handles GET /api/v1/users - public user projections only
func (uc *UsersController) ListUsers(c *gin.Context) {
	users, err := uc.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// WipeAll handles DELETE /api/v1/users - removes every row in the database.
// Kept for development/reset tooling; the route sits behind authentication.
func (uc *UsersController) WipeAll(c *gin.Context) {
	if err := uc.userService.WipeAll(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All data deleted",
	})
}
