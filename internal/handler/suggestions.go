package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tickerpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

const maxLookupLimit = 200

// GetSuggestions godoc
// @Summary      Watchlist suggestions
// @Description  Returns buy candidates from the tracked stocks and commodities plus every tracked forex pair.
// @Description  Serves the last scheduled refresh unless refresh=true or no refresh has completed yet.
// @Tags         suggestions
// @Produce      json
// @Param        refresh  query  bool  false  "Force a live refresh"
// @Success      200  {object}  domain.SuggestionSet
// @Failure      503  {object}  map[string]string
// @Router       /api/suggestions [get]
func (h *Handler) GetSuggestions(c *gin.Context) {
	if h.quoteService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-suggestions")
	defer span.End()

	refresh, _ := strconv.ParseBool(strings.TrimSpace(c.Query("refresh")))
	span.SetAttributes(attribute.Bool("refresh", refresh))
	if !refresh && h.snapshot != nil {
		if set := h.snapshot.Latest(); set != nil {
			c.JSON(http.StatusOK, set)
			return
		}
	}

	set, err := h.quoteService.Suggestions(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, set)
}

// GetWatchlist godoc
// @Summary      Tracked tickers
// @Tags         suggestions
// @Produce      json
// @Success      200  {object}  domain.Watchlist
// @Router       /api/watchlist [get]
func (h *Handler) GetWatchlist(c *gin.Context) {
	if h.quoteService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}
	c.JSON(http.StatusOK, h.quoteService.Watchlist())
}

// GetLookups godoc
// @Summary      Recent lookups
// @Description  Returns the most recent quote lookups, newest first
// @Tags         quotes
// @Produce      json
// @Param        limit  query  int  false  "Number of lookups (default 20, max 200)"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/lookups [get]
func (h *Handler) GetLookups(c *gin.Context) {
	if h.quoteService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-lookups")
	defer span.End()

	limit := 0
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > maxLookupLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
			return
		}
		limit = n
	}

	lookups, err := h.quoteService.RecentLookups(ctx, limit)
	if errors.Is(err, service.ErrHistoryDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lookups": lookups})
}
