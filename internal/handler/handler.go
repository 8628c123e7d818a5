package handler

import (
	"errors"
	"net/http"

	"tickerpulse/internal/domain"
	"tickerpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SuggestionSnapshot exposes the most recent scheduled suggestion set.
type SuggestionSnapshot interface {
	Latest() *domain.SuggestionSet
}

type Handler struct {
	tracer       trace.Tracer
	quoteService *service.QuoteService
	snapshot     SuggestionSnapshot
}

func New(
	tracer trace.Tracer,
	quoteService *service.QuoteService,
	snapshot SuggestionSnapshot,
) *Handler {
	return &Handler{
		tracer:       tracer,
		quoteService: quoteService,
		snapshot:     snapshot,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/quotes/:symbol", h.GetQuote)
	r.GET("/api/classify/:symbol", h.ClassifySymbol)
	r.GET("/api/suggestions", h.GetSuggestions)
	r.GET("/api/watchlist", h.GetWatchlist)
	r.GET("/api/lookups", h.GetLookups)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StatusFor maps a lookup error kind onto an HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindEmpty:
		return http.StatusBadRequest
	case domain.ErrorKindNotFound, domain.ErrorKindNoData:
		return http.StatusNotFound
	case domain.ErrorKindRateLimit:
		return http.StatusTooManyRequests
	case domain.ErrorKindNetwork, domain.ErrorKindMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeLookupError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	body := gin.H{"error": domain.UserMessage("", "", err), "kind": kind}
	var le *domain.LookupError
	if errors.As(err, &le) {
		body["error"] = le.Message()
		if le.Symbol != "" {
			body["symbol"] = le.Symbol
		}
	}
	c.JSON(StatusFor(kind), body)
}
