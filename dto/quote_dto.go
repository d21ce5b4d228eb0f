package dto

import "github.com/princinho/sahoinsure/insurance"

type UpdateQuoteStatusDTO struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected expired"`
}

type CreateQuoteNoteDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CreatePolicyDTO accepts a quote. With QuoteID the stored quote's request
// is used and Request may be omitted.
type CreatePolicyDTO struct {
	QuoteID string                 `json:"quoteId"`
	Request insurance.QuoteRequest `json:"request" binding:"required_without=QuoteID"`
}
