package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetQuote godoc
// @Summary      Look up a quote
// @Description  Classifies the symbol, fetches its latest price and returns buy/sell/wait advice
// @Tags         quotes
// @Produce      json
// @Param        symbol  path  string  true  "Ticker, forex pair or commodity (e.g., NVDA, EURUSD, GC=F)"
// @Success      200  {object}  domain.Report
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/quotes/{symbol} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	if h.quoteService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-quote")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", c.Param("symbol")))

	report, err := h.quoteService.Lookup(ctx, c.Param("symbol"))
	if err != nil {
		span.RecordError(err)
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ClassifySymbol godoc
// @Summary      Classify a symbol
// @Description  Reports whether a symbol is treated as a stock, forex pair or commodity
// @Tags         quotes
// @Produce      json
// @Param        symbol  path  string  true  "Symbol to classify"
// @Success      200  {object}  domain.Classification
// @Failure      400  {object}  map[string]string
// @Router       /api/classify/{symbol} [get]
func (h *Handler) ClassifySymbol(c *gin.Context) {
	if h.quoteService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}

	classification, err := h.quoteService.Classify(c.Param("symbol"))
	if err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, classification)
}
