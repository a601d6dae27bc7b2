package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"market-helper-be/internal/models"
	"market-helper-be/internal/service"
)

const sessionCookieName = "access_token"

type AuthController struct {
	sessions service.SessionService
}

func NewAuthController(sessions service.SessionService) *AuthController {
	return &AuthController{
		sessions: sessions,
	}
}

// SignIn handles POST /api/v1/auth/signin
func (ac *AuthController) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.sessions.SignIn(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(response.Token.ExpiresAt).Seconds())
	c.SetCookie(sessionCookieName, response.Token.Token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, response)
}

// SignOut handles POST /api/v1/auth/signout. The session cookie is cleared
// whether or not the token row deletion succeeds.
func (ac *AuthController) SignOut(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", true, true)

	var req models.SignOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.sessions.SignOut(req.AuthTokenID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.sessions.IssuePasswordReset(req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset email sent",
	})
}
