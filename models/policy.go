package models

import (
	"time"

	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/pricing"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "Active"
	PolicyStatusPending   PolicyStatus = "Pending"
	PolicyStatusExpired   PolicyStatus = "Expired"
	PolicyStatusCancelled PolicyStatus = "Cancelled"
)

type CustomerInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type PolicyDocument struct {
	PublicURL  string    `bson:"publicUrl" json:"publicUrl"`
	ObjectName string    `bson:"objectName" json:"objectName"`
	MimeType   string    `bson:"mimeType" json:"mimeType"`
	SizeBytes  int64     `bson:"sizeBytes" json:"sizeBytes"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

type Policy struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	PolicyNumber string        `bson:"policyNumber" json:"policyNumber"`
	QuoteID      string        `bson:"quoteId,omitempty" json:"quoteId,omitempty"`

	Type     insurance.Product  `bson:"type" json:"type"`
	Category insurance.Category `bson:"category" json:"category"`
	Status   PolicyStatus       `bson:"status" json:"status"`

	MonthlyPremium float64        `bson:"monthlyPremium" json:"monthlyPremium"`
	AnnualPremium  float64        `bson:"annualPremium" json:"annualPremium"`
	Pricing        pricing.Result `bson:"pricing" json:"pricing"`

	// YYYY-MM-DD
	StartDate string `bson:"startDate" json:"startDate"`
	EndDate   string `bson:"endDate" json:"endDate"`

	CustomerInfo CustomerInfo           `bson:"customerInfo" json:"customerInfo"`
	Details      insurance.QuoteRequest `bson:"details" json:"details"`
	Document     *PolicyDocument        `bson:"document,omitempty" json:"document,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
