package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/database"
	"github.com/princinho/sahoinsure/dto"
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/models"
	"github.com/princinho/sahoinsure/pricing"
	"github.com/princinho/sahoinsure/quoting"
	"github.com/princinho/sahoinsure/utils"
	"github.com/princinho/sahoinsure/validation"
	"github.com/rs/zerolog"
)

// policyView is a stored policy as shown to clients, with its status
// evaluated against today.
type policyView struct {
	models.Policy
	Status        models.PolicyStatus `json:"status"`
	DaysRemaining int                 `json:"daysRemaining"`
}

// CreatePolicy re-validates and re-prices the accepted request, so the
// stored premium never comes from the client. With a quoteId the policy is
// built from the stored request of a pending quote; a posted request must
// then carry the same answers.
func CreatePolicy(policies database.PolicyStore, quotes database.QuoteStore, clock Clock, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreatePolicyDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req := body.Request.Normalize()
		now := clock()

		var stored *models.Quote
		if body.QuoteID != "" {
			q, err := quotes.Get(ctx, body.QuoteID)
			if err != nil {
				storeError(c, err, "quote")
				return
			}
			if q.Status != models.QuoteStatusPending {
				c.JSON(http.StatusConflict, gin.H{"error": "quote is " + string(q.Status) + ", only pending quotes can be accepted"})
				return
			}
			if len(req) > 0 && !sameAnswers(req, q.Request) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "request does not match the stored quote"})
				return
			}
			stored = q
			req = q.Request.Clone().Normalize()
		}

		outcome := validation.Validate(req, now)
		if !outcome.Valid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "quote request is invalid",
				"fields": outcome,
				"errors": outcome.Errors(),
			})
			return
		}

		policy := quoting.BuildPolicy(req, pricing.ComputePrice(req, now), now)
		if stored != nil {
			policy.QuoteID = stored.ID.Hex()
		}

		created, err := policies.Create(ctx, &policy)
		if err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "policy number already exists, retry"})
				return
			}
			log.Error().Err(err).Msg("create policy failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create policy"})
			return
		}

		if stored != nil {
			if err := quotes.UpdateStatus(ctx, created.QuoteID, models.QuoteStatusAccepted); err != nil {
				log.Warn().Err(err).Str("quoteId", created.QuoteID).Msg("mark quote accepted failed")
			}
		}

		log.Info().
			Str("policyNumber", created.PolicyNumber).
			Str("product", string(created.Type)).
			Msg("policy created")
		c.JSON(http.StatusCreated, created)
	}
}

// sameAnswers compares two requests by the textual form of every field, so
// a stored json.Number and a posted float of the same value match.
func sameAnswers(a, b insurance.QuoteRequest) bool {
	a, b = a.Clone().Normalize(), b.Clone().Normalize()
	for k := range a {
		if a.String(k) != b.String(k) {
			return false
		}
	}
	for k := range b {
		if a.String(k) != b.String(k) {
			return false
		}
	}
	return true
}

func GetPolicies(policies database.PolicyStore, clock Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := policies.List(c.Request.Context())
		if err != nil {
			storeError(c, err, "policy")
			return
		}

		now := clock()
		views := make([]policyView, 0, len(items))
		for _, p := range items {
			views = append(views, policyView{
				Policy:        p,
				Status:        quoting.EffectiveStatus(p, now),
				DaysRemaining: quoting.DaysRemaining(p, now),
			})
		}
		c.JSON(http.StatusOK, views)
	}
}

// DeletePolicy removes the policy and, best effort, its uploaded document.
func DeletePolicy(policies database.PolicyStore, store utils.ObjectStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		policy, err := policies.Get(ctx, id)
		if err != nil {
			storeError(c, err, "policy")
			return
		}
		if err := policies.Delete(ctx, id); err != nil {
			storeError(c, err, "policy")
			return
		}

		if store != nil && policy.Document != nil {
			if err := store.Delete(ctx, policy.Document.ObjectName); err != nil {
				log.Warn().Err(err).Str("policyId", id).Msg("delete policy document failed")
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Policy deleted successfully"})
	}
}

// UploadPolicyDocument attaches the multipart "document" file to a policy.
func UploadPolicyDocument(policies database.PolicyStore, store utils.ObjectStore, fv *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document storage is not configured"})
			return
		}
		ctx := c.Request.Context()
		id := c.Param("id")

		policy, err := policies.Get(ctx, id)
		if err != nil {
			storeError(c, err, "policy")
			return
		}

		fileHeader, err := c.FormFile("document")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
			return
		}
		mimeType, err := fv.ValidateFile(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		doc, err := utils.UploadPolicyDocument(ctx, store, id, fileHeader, mimeType)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload document"})
			return
		}
		if err := policies.AttachDocument(ctx, id, *doc); err != nil {
			_ = store.Delete(ctx, doc.ObjectName)
			storeError(c, err, "policy")
			return
		}
		if policy.Document != nil {
			_ = store.Delete(ctx, policy.Document.ObjectName)
		}

		c.JSON(http.StatusOK, doc)
	}
}
