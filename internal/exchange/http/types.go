package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reco-hub/reco-backend/internal/exchange/domain"
)

type createQueryReq struct {
	QueryTitle       string `json:"queryTitle"`
	ProductName      string `json:"productName"`
	ProductBrand     string `json:"productBrand"`
	ProductImage     string `json:"productImage"`
	BoycottingReason string `json:"boycottingReason"`
}

type createRecommendationReq struct {
	QueryID         string `json:"queryId"`
	QueryTitle      string `json:"queryTitle"`
	ProductName     string `json:"productName"`
	QueryOwnerEmail string `json:"userEmail"`

	RecommendationTitle     string `json:"recommendationTitle"`
	RecommendedProductName  string `json:"recommendedProductName"`
	RecommendedProductImage string `json:"recommendedProductImage"`
	RecommendationReason    string `json:"recommendationReason"`
}

// writeDomainErr translates service errors into status codes. Unexpected
// errors are logged and surfaced as a generic message.
func writeDomainErr(c *gin.Context, err error, logPrefix string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "malformed id"})
	case errors.Is(err, domain.ErrQueryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "query not found"})
	case errors.Is(err, domain.ErrRecommendationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "recommendation not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
	default:
		log.Printf("[%s] %v", logPrefix, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
