package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"market-helper-be/internal/middleware"
	"market-helper-be/internal/service"
)

type QRCodeController struct {
	listService service.MarketListService
	frontendURL string
}

func NewQRCodeController(listService service.MarketListService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		listService: listService,
		frontendURL: frontendURL,
	}
}

// GenerateQRCode handles GET /api/v1/market-list/:listID/qrcode - renders a
// QR code pointing at the list in the frontend. Ownership is checked first so
// the endpoint can't be used to probe for other users' list ids.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	list, err := qc.listService.GetList(c.Param("listID"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	shareURL := fmt.Sprintf("%s/market-list/%s", qc.frontendURL, list.ID)

	qrCode, err := qrcode.New(shareURL, qrcode.Medium)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code image",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
