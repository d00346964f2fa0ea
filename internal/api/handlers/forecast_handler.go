package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopmetrics/pricecast/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) Forecast(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	forecast, err := h.service.Forecast(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err, "failed to compute forecast")
		return
	}

	c.JSON(http.StatusOK, forecast)
}

func (h *ForecastHandler) Projection(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	years, _ := strconv.Atoi(c.DefaultQuery("years", "0"))

	// Optional seed pins the market-trend jitter for stable charts.
	var seed *int64
	if raw := strings.TrimSpace(c.Query("seed")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
			return
		}
		seed = &parsed
	}

	projection, err := h.service.Projection(c.Request.Context(), id, years, seed)
	if err != nil {
		respondProductError(c, err, "failed to compute projection")
		return
	}

	c.JSON(http.StatusOK, projection)
}
