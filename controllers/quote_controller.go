package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/database"
	"github.com/princinho/sahoinsure/dto"
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/middleware"
	"github.com/princinho/sahoinsure/models"
	"github.com/princinho/sahoinsure/pricing"
	"github.com/princinho/sahoinsure/quoting"
	"github.com/princinho/sahoinsure/utils"
	"github.com/princinho/sahoinsure/validation"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type breakdown struct {
	BasePrice  float64          `json:"basePrice"`
	Multiplier float64          `json:"multiplier"`
	Factors    []pricing.Factor `json:"factors"`
}

func breakdownOf(q pricing.Quote) breakdown {
	return breakdown{BasePrice: q.BasePrice, Multiplier: q.Multiplier, Factors: q.Factors}
}

// ValidateQuote validates the posted request. With ?field= only that field
// is checked. Validation failures are not HTTP errors.
func ValidateQuote(clock Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindQuoteRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := clock()

		if field := strings.TrimSpace(c.Query("field")); field != "" {
			outcome, ok := validation.ValidateField(req, field, now)
			if !ok {
				// not part of this product's schema
				c.JSON(http.StatusOK, gin.H{"field": field, "validated": false, "outcome": validation.FieldOutcome{Valid: true}})
				return
			}
			c.JSON(http.StatusOK, gin.H{"field": field, "validated": true, "outcome": outcome})
			return
		}

		outcome := validation.Validate(req, now)
		c.JSON(http.StatusOK, gin.H{"valid": outcome.Valid(), "fields": outcome})
	}
}

// CreateQuote validates, stores and prices a quote request. Pricing only
// runs once the store has acknowledged the quote.
func CreateQuote(quotes database.QuoteStore, clock Clock, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		req, err := bindQuoteRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := clock()

		outcome := validation.Validate(req, now)
		if !outcome.Valid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "quote request is invalid",
				"fields": outcome,
				"errors": outcome.Errors(),
			})
			return
		}

		stored, err := quotes.Submit(ctx, &models.Quote{
			Category:  req.Category(),
			Product:   req.Product(),
			Request:   req,
			Status:    models.QuoteStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			log.Error().Err(err).Str("product", string(req.Product())).Msg("submit quote failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to submit quote", "details": err.Error()})
			return
		}

		q := pricing.Compute(req, now)
		log.Info().
			Str("quoteId", stored.ID.Hex()).
			Str("product", string(stored.Product)).
			Float64("monthly", q.Monthly).
			Msg("quote priced")

		c.JSON(http.StatusCreated, gin.H{
			"quote":     stored,
			"pricing":   q.Result,
			"breakdown": breakdownOf(q),
			"details":   quoting.DetailSections(req),
		})
	}
}

func GetQuotes(quotes database.QuoteStore, defaultLimit, maxLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		page, limit, skip := utils.Pagination(c.Query("page"), c.Query("limit"), defaultLimit, maxLimit)
		filter := database.QuoteFilter{Skip: skip, Limit: int64(limit)}

		if s := strings.TrimSpace(c.Query("status")); s != "" {
			status, ok := models.ParseQuoteStatus(s)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			filter.Status = status
		}
		if s := strings.TrimSpace(c.Query("category")); s != "" {
			category, ok := insurance.ParseCategory(s)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
				return
			}
			filter.Category = category
		}

		items, total, err := quotes.List(ctx, filter)
		if err != nil {
			storeError(c, err, "quote")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GetQuote returns a stored quote priced as of now.
func GetQuote(quotes database.QuoteStore, clock Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := quotes.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			storeError(c, err, "quote")
			return
		}
		priced := pricing.Compute(q.Request, clock())
		c.JSON(http.StatusOK, gin.H{
			"quote":     q,
			"pricing":   priced.Result,
			"breakdown": breakdownOf(priced),
			"details":   quoting.DetailSections(q.Request),
		})
	}
}

func UpdateQuoteStatus(quotes database.QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateQuoteStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, _ := models.ParseQuoteStatus(body.Status)

		if err := quotes.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
			storeError(c, err, "quote")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}

func AddQuoteNote(quotes database.QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateQuoteNoteDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		uid, err := bson.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth user"})
			return
		}

		note := models.QuoteNote{
			ID:          bson.NewObjectID(),
			AuthorID:    uid,
			AuthorEmail: c.GetString(middleware.EmailKey),
			Content:     strings.TrimSpace(body.Content),
			CreatedAt:   time.Now().UTC(),
		}
		if err := quotes.AddNote(c.Request.Context(), c.Param("id"), note); err != nil {
			storeError(c, err, "quote")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"noteId": note.ID})
	}
}
