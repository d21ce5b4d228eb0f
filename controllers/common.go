package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/princinho/sahoinsure/database"
	"github.com/princinho/sahoinsure/insurance"
)

// Clock supplies "now" to validation and pricing.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }

// bindQuoteRequest decodes a free-form quote request, keeping numbers as
// json.Number so integer inputs are not rounded through float64.
func bindQuoteRequest(c *gin.Context) (insurance.QuoteRequest, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var req insurance.QuoteRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid quote request: %w", err)
	}
	if req == nil {
		return nil, errors.New("invalid quote request: empty body")
	}
	return req.Normalize(), nil
}

// storeError answers with the status matching a store error.
func storeError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, database.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " id"})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
