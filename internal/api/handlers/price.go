package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"btc-ltv-planner/internal/api/models"
	"btc-ltv-planner/internal/metrics"
	"btc-ltv-planner/internal/pricefeed"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// PriceHandler serves the live spot price. It owns the time of the last fetch attempt,
// so the cooldown is per handler rather than process-wide.
type PriceHandler struct {
	client  *pricefeed.Client
	metrics *metrics.Registry
	log     zerolog.Logger
	now     func() time.Time

	mu        sync.Mutex
	lastFetch time.Time
}

// NewPriceHandler creates a new price handler. reg may be nil.
func NewPriceHandler(client *pricefeed.Client, reg *metrics.Registry, logger zerolog.Logger) *PriceHandler {
	return &PriceHandler{
		client:  client,
		metrics: reg,
		log:     logger.With().Str("component", "price").Logger(),
		now:     time.Now,
	}
}

// GetSpot handles GET /api/v1/price
func (h *PriceHandler) GetSpot(c *gin.Context) {
	// Claim the attempt before going upstream. Failed attempts count toward the cooldown
	// too, and callers arriving during the fetch see ErrCooldown without waiting on it.
	h.mu.Lock()
	last := h.lastFetch
	if h.client.CooldownRemaining(last) == 0 {
		h.lastFetch = h.now()
	}
	h.mu.Unlock()

	q, err := h.client.Spot(c.Request.Context(), last)

	if err != nil {
		h.observe("error")
		h.writePriceError(c, err, last)
		return
	}
	h.observe("ok")
	c.JSON(http.StatusOK, models.PriceResponse{
		Price:     q.Price,
		Currency:  q.Currency,
		Source:    q.Source,
		FetchedAt: q.FetchedAt,
	})
}

func (h *PriceHandler) writePriceError(c *gin.Context, err error, last time.Time) {
	var pe *pricefeed.PriceError
	switch {
	case errors.Is(err, pricefeed.ErrCooldown):
		wait := h.client.CooldownRemaining(last)
		c.Header("Retry-After", formatSeconds(wait))
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "COOLDOWN",
				Message: err.Error(),
				Details: map[string]interface{}{"retry_after_seconds": math.Ceil(wait.Seconds())},
			},
		})
	case errors.As(err, &pe):
		status := http.StatusBadGateway
		if pe.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    pe.Code,
				Message: pe.Message,
				Details: map[string]interface{}{
					"status_code": pe.StatusCode,
					"retry_after": pe.RetryAfter,
				},
			},
		})
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PRICE_FEED_UNAVAILABLE", Message: err.Error()},
		})
	default:
		h.log.Error().Err(err).Msg("price fetch failed")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PRICE_FETCH_ERROR", Message: err.Error()},
		})
	}
}

func (h *PriceHandler) observe(result string) {
	if h.metrics != nil {
		h.metrics.ObservePrice(result)
	}
}

// formatSeconds renders d as whole seconds for a Retry-After header.
func formatSeconds(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
