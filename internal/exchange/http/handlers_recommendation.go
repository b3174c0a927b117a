package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reco-hub/reco-backend/internal/auth"
	"github.com/reco-hub/reco-backend/internal/exchange/domain"
	"github.com/reco-hub/reco-backend/internal/exchange/service"
)

type RecommendationHandler struct {
	svc *service.RecommendationService
}

func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

func (h *RecommendationHandler) list(c *gin.Context) {
	queryID := strings.TrimSpace(c.Query("queryId"))

	items, err := h.svc.List(c.Request.Context(), queryID)
	if err != nil {
		writeDomainErr(c, err, "recommendations.list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "recommendations": items})
}

func (h *RecommendationHandler) create(c *gin.Context) {
	var req createRecommendationReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.QueryID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), domain.CreateRecommendationRequest{
		RecommenderEmail: auth.PrincipalEmail(c),
		RecommenderName:  auth.PrincipalName(c),

		QueryID:         strings.TrimSpace(req.QueryID),
		QueryTitle:      req.QueryTitle,
		ProductName:     req.ProductName,
		QueryOwnerEmail: req.QueryOwnerEmail,

		RecommendationTitle:     req.RecommendationTitle,
		RecommendedProductName:  req.RecommendedProductName,
		RecommendedProductImage: req.RecommendedProductImage,
		RecommendationReason:    req.RecommendationReason,
	})
	if err != nil {
		writeDomainErr(c, err, "recommendations.create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "recommendation": rec})
}

func (h *RecommendationHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainErr(c, err, "recommendations.delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *RecommendationHandler) listMine(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email is required"})
		return
	}

	items, err := h.svc.ListByRecommender(c.Request.Context(), auth.PrincipalEmail(c), email)
	if err != nil {
		writeDomainErr(c, err, "recommendations.mine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "recommendations": items})
}

func (h *RecommendationHandler) listForMe(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email is required"})
		return
	}

	items, err := h.svc.ListForOwner(c.Request.Context(), auth.PrincipalEmail(c), email)
	if err != nil {
		writeDomainErr(c, err, "recommendations.forme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "recommendations": items})
}
