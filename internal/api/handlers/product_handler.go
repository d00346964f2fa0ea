package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/repository"
	"github.com/shopmetrics/pricecast/internal/service"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) parseFilter(c *gin.Context) domain.ProductFilter {
	filter := domain.ProductFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = search
	}

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = category
	}

	parseFloat64 := func(param string) *float64 {
		value := strings.TrimSpace(c.Query(param))
		if value == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return &f
		}
		return nil
	}

	filter.MinPrice = parseFloat64("min_price")
	filter.MaxPrice = parseFloat64("max_price")

	return filter
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := h.parseFilter(c)
	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err, "failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload", "details": err.Error()})
		return
	}

	product, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var update domain.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload", "details": err.Error()})
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, update)
	if err != nil {
		respondProductError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondProductError(c, err, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *ProductHandler) BulkUpdatePrices(c *gin.Context) {
	var payload struct {
		Updates []domain.PriceUpdate `json:"updates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bulk price payload", "details": err.Error()})
		return
	}

	updated, err := h.service.BulkUpdatePrices(c.Request.Context(), payload.Updates)
	if err != nil {
		respondProductError(c, err, "failed to update prices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": updated})
}

func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondProductError(c *gin.Context, err error, message string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
}
