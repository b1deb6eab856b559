package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"comerzio/internal/app/dto"
	"comerzio/internal/app/handlers/quotes"
	"comerzio/internal/app/queries"
	domaincatalog "comerzio/internal/domain/catalog"
	domainpricing "comerzio/internal/domain/pricing"
)

type QuoteHandler struct {
	Queries queries.Bus
}

type calculateQuoteRequest struct {
	ServiceID       string    `json:"service_id" binding:"required"`
	PricingOptionID string    `json:"pricing_option_id"`
	Start           time.Time `json:"start" binding:"required"`
	End             time.Time `json:"end" binding:"required"`
}

func (h QuoteHandler) Calculate(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	var req calculateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote, err := queries.Ask[quotes.CalculateQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, quotes.CalculateQuoteQuery{
		ServiceID:       req.ServiceID,
		PricingOptionID: req.PricingOptionID,
		Start:           req.Start,
		End:             req.End,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h QuoteHandler) Estimate(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	// Estimates never fail: unreadable spans get the zero estimate.
	hours, hoursErr := optionalFloat(c.Query("hours"))
	days, daysErr := optionalFloat(c.Query("days"))
	if hoursErr != nil || daysErr != nil {
		c.JSON(http.StatusOK, dto.MapEstimate(domainpricing.FailedEstimate()))
		return
	}
	est, err := queries.Ask[quotes.QuickEstimateQuery, dto.Estimate](c.Request.Context(), h.Queries, quotes.QuickEstimateQuery{
		ServiceID:       c.Param("id"),
		PricingOptionID: c.Query("pricing_option_id"),
		Hours:           hours,
		Days:            days,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, est)
}

func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domaincatalog.ErrServiceNotFound), errors.Is(err, domaincatalog.ErrPricingOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainpricing.ErrInvalidRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, quotes.ErrServiceIDRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var _ QuoteHTTP = QuoteHandler{}
