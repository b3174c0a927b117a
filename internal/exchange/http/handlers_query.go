package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reco-hub/reco-backend/internal/auth"
	"github.com/reco-hub/reco-backend/internal/exchange/domain"
	"github.com/reco-hub/reco-backend/internal/exchange/service"
)

type QueryHandler struct {
	svc *service.QueryService
}

func NewQueryHandler(svc *service.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

func (h *QueryHandler) list(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	items, err := h.svc.List(c.Request.Context(), search)
	if err != nil {
		writeDomainErr(c, err, "queries.list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "queries": items})
}

func (h *QueryHandler) get(c *gin.Context) {
	q, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainErr(c, err, "queries.get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "query": q})
}

func (h *QueryHandler) create(c *gin.Context) {
	var req createQueryReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	q, err := h.svc.Create(c.Request.Context(), domain.CreateQueryRequest{
		OwnerEmail: auth.PrincipalEmail(c),
		OwnerName:  auth.PrincipalName(c),
		OwnerPhoto: auth.PrincipalPhoto(c),

		QueryTitle:       req.QueryTitle,
		ProductName:      strings.TrimSpace(req.ProductName),
		ProductBrand:     req.ProductBrand,
		ProductImage:     req.ProductImage,
		BoycottingReason: req.BoycottingReason,
	})
	if err != nil {
		writeDomainErr(c, err, "queries.create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "query": q})
}

func (h *QueryHandler) listMine(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email is required"})
		return
	}

	items, err := h.svc.ListByOwner(c.Request.Context(), auth.PrincipalEmail(c), email)
	if err != nil {
		writeDomainErr(c, err, "queries.mine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "queries": items})
}

func (h *QueryHandler) update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	q, err := h.svc.Update(c.Request.Context(), c.Param("id"), auth.PrincipalEmail(c), fields)
	if err != nil {
		writeDomainErr(c, err, "queries.update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "query": q})
}

func (h *QueryHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.PrincipalEmail(c)); err != nil {
		writeDomainErr(c, err, "queries.delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
