package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func quoteRouter(store *memQuoteStore) *gin.Engine {
	r := gin.New()
	r.POST("/quotes/validate", ValidateQuote(fixedClock))
	r.POST("/quotes", CreateQuote(store, fixedClock, zerolog.Nop()))

	admin := r.Group("/admin", asUser(bson.NewObjectID().Hex(), "uw@example.com"))
	admin.GET("/quotes", GetQuotes(store, 20, 100))
	admin.GET("/quotes/:id", GetQuote(store, fixedClock))
	admin.PATCH("/quotes/:id/status", UpdateQuoteStatus(store))
	admin.POST("/quotes/:id/notes", AddQuoteNote(store))
	return r
}

func TestCreateQuote(t *testing.T) {
	store := &memQuoteStore{}
	w := doJSON(quoteRouter(store), http.MethodPost, "/quotes", travelRequest())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)

	assert.Equal(t, map[string]any{"monthly": 50.0, "annual": 540.0, "fee": 15.0, "totalMonthly": 65.0}, body["pricing"])
	breakdown := body["breakdown"].(map[string]any)
	assert.Equal(t, 25.0, breakdown["basePrice"])
	assert.Equal(t, 2.0, breakdown["multiplier"])
	assert.Len(t, body["details"], 2)

	quote := body["quote"].(map[string]any)
	assert.Equal(t, "pending", quote["status"])
	assert.Equal(t, "Travel Insurance", quote["product"])

	require.Len(t, store.quotes, 1)
	assert.Equal(t, insurance.CategoryShortTerm, store.quotes[0].Category)
}

func TestCreateQuoteLegacyKeys(t *testing.T) {
	req := travelRequest()
	req["insuranceType"] = req["category"]
	req["subType"] = req["product"]
	delete(req, "category")
	delete(req, "product")

	store := &memQuoteStore{}
	w := doJSON(quoteRouter(store), http.MethodPost, "/quotes", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, insurance.ProductTravel, store.quotes[0].Product)
}

func TestCreateQuoteInvalid(t *testing.T) {
	req := travelRequest()
	delete(req, "email")
	req["travelEndDate"] = "2025-07-01"

	store := &memQuoteStore{}
	w := doJSON(quoteRouter(store), http.MethodPost, "/quotes", req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]any{
		"email":         "Email address is required",
		"travelEndDate": "End date must be after start date",
	}, body["errors"])
	assert.NotContains(t, body, "pricing")
	assert.Empty(t, store.quotes)
}

func TestCreateQuoteStoreFailure(t *testing.T) {
	store := &memQuoteStore{submitErr: errors.New("connection refused")}
	w := doJSON(quoteRouter(store), http.MethodPost, "/quotes", travelRequest())

	require.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "pricing")
	assert.Equal(t, "connection refused", body["details"])
}

func TestCreateQuoteBadJSON(t *testing.T) {
	w := doJSON(quoteRouter(&memQuoteStore{}), http.MethodPost, "/quotes", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(quoteRouter(&memQuoteStore{}), http.MethodPost, "/quotes", "null")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateQuote(t *testing.T) {
	r := quoteRouter(&memQuoteStore{})

	w := doJSON(r, http.MethodPost, "/quotes/validate", travelRequest())
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["valid"])
	assert.Len(t, body["fields"], 11)

	req := travelRequest()
	req["travelEndDate"] = "2025-06-30"
	w = doJSON(r, http.MethodPost, "/quotes/validate?field=travelEndDate", req)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["validated"])
	assert.Equal(t, map[string]any{"valid": false, "message": "End date must be after start date"}, body["outcome"])

	w = doJSON(r, http.MethodPost, "/quotes/validate?field=vehicleVin", travelRequest())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["validated"])
}

func seedQuotes(store *memQuoteStore) []models.Quote {
	life := insurance.QuoteRequest{
		"category":       "life",
		"product":        "Term Life Insurance",
		"coverageAmount": 100000,
		"dateOfBirth":    "2000-01-01",
		"smokingStatus":  "current",
	}
	for _, q := range []models.Quote{
		{Category: insurance.CategoryShortTerm, Product: insurance.ProductTravel, Request: insurance.QuoteRequest(travelRequest()), Status: models.QuoteStatusPending},
		{Category: insurance.CategoryLife, Product: insurance.ProductTermLife, Request: life, Status: models.QuoteStatusPending},
		{Category: insurance.CategoryLife, Product: insurance.ProductTermLife, Request: life, Status: models.QuoteStatusRejected},
	} {
		_, _ = store.Submit(context.Background(), &q)
	}
	return store.quotes
}

func TestGetQuotes(t *testing.T) {
	store := &memQuoteStore{}
	seedQuotes(store)
	r := quoteRouter(store)

	w := doJSON(r, http.MethodGet, "/admin/quotes?status=pending&category=life", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 1.0, body["total"])
	assert.Len(t, body["items"], 1)

	w = doJSON(r, http.MethodGet, "/admin/quotes?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, 3.0, body["total"])
	assert.Len(t, body["items"], 1)

	w = doJSON(r, http.MethodGet, "/admin/quotes?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodGet, "/admin/quotes?category=pets", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuote(t *testing.T) {
	store := &memQuoteStore{}
	quotes := seedQuotes(store)
	r := quoteRouter(store)

	w := doJSON(r, http.MethodGet, "/admin/quotes/"+quotes[1].ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	pricing := decode(t, w)["pricing"].(map[string]any)
	// 30 x 2.5 for a current smoker
	assert.Equal(t, 75.0, pricing["monthly"])

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/admin/quotes/xyz", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/admin/quotes/"+bson.NewObjectID().Hex(), nil).Code)
}

func TestUpdateQuoteStatus(t *testing.T) {
	store := &memQuoteStore{}
	quotes := seedQuotes(store)
	r := quoteRouter(store)
	path := "/admin/quotes/" + quotes[0].ID.Hex() + "/status"

	w := doJSON(r, http.MethodPatch, path, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.QuoteStatusAccepted, store.quotes[0].Status)

	w = doJSON(r, http.MethodPatch, path, map[string]string{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddQuoteNote(t *testing.T) {
	store := &memQuoteStore{}
	quotes := seedQuotes(store)
	r := quoteRouter(store)

	w := doJSON(r, http.MethodPost, "/admin/quotes/"+quotes[2].ID.Hex()+"/notes", map[string]string{"content": "  smoker, refer to underwriting  "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.quotes[2].Notes, 1)
	assert.Equal(t, "smoker, refer to underwriting", store.quotes[2].Notes[0].Content)
	assert.Equal(t, "uw@example.com", store.quotes[2].Notes[0].AuthorEmail)

	w = doJSON(r, http.MethodPost, "/admin/quotes/"+quotes[2].ID.Hex()+"/notes", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
