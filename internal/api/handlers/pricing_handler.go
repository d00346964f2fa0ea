package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/service"
)

type PricingHandler struct {
	service *service.PricingService
}

func NewPricingHandler(service *service.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

func (h *PricingHandler) Detail(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err, "failed to compute pricing")
		return
	}

	c.JSON(http.StatusOK, detail)
}

type summaryRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

func (h *PricingHandler) Summary(c *gin.Context) {
	ids, ok := parseSummaryRequest(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *PricingHandler) ExportSummary(c *gin.Context) {
	ids, ok := parseSummaryRequest(c)
	if !ok {
		return
	}

	key, err := h.service.ExportSummary(c.Request.Context(), ids)
	if err != nil {
		if errors.Is(err, service.ErrReportsDisabled) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *PricingHandler) ListExports(c *gin.Context) {
	exports, err := h.service.ListExports(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrReportsDisabled) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exports": exports})
}

// parseSummaryRequest reads an optional id list; an empty body means
// the whole active catalog.
func parseSummaryRequest(c *gin.Context) ([]uuid.UUID, bool) {
	if c.Request.ContentLength == 0 {
		return nil, true
	}

	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid summary payload", "details": err.Error()})
		return nil, false
	}
	return req.ProductIDs, true
}
