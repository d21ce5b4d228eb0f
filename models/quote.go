package models

import (
	"time"

	"github.com/princinho/sahoinsure/insurance"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

var quoteStatuses = map[QuoteStatus]bool{
	QuoteStatusPending:  true,
	QuoteStatusAccepted: true,
	QuoteStatusRejected: true,
	QuoteStatusExpired:  true,
}

func ParseQuoteStatus(s string) (QuoteStatus, bool) {
	st := QuoteStatus(s)
	return st, quoteStatuses[st]
}

type QuoteNote struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	AuthorID    bson.ObjectID `bson:"authorId" json:"authorId"`
	AuthorEmail string        `bson:"authorEmail" json:"authorEmail"`

	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Quote is a submitted quote request as kept by the quote store.
type Quote struct {
	ID bson.ObjectID `bson:"_id,omitempty" json:"id"`

	Category insurance.Category     `bson:"category" json:"category"`
	Product  insurance.Product      `bson:"product" json:"product"`
	Request  insurance.QuoteRequest `bson:"request" json:"request"`

	Status QuoteStatus `bson:"status" json:"status"`
	Notes  []QuoteNote `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
