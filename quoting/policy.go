// Package quoting turns a validated, priced quote request into the
// artifacts shown to and stored for the customer: policies, detail
// sections and the product catalog.
package quoting

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/models"
	"github.com/princinho/sahoinsure/pricing"
)

// PolicyTerm is the validity window of a new policy.
const PolicyTerm = 365 * 24 * time.Hour

// BuildPolicy assembles the policy payload for an accepted quote. The
// policy starts today and ends PolicyTerm later.
func BuildPolicy(req insurance.QuoteRequest, price pricing.Result, now time.Time) models.Policy {
	now = now.UTC()
	name := strings.TrimSpace(req.String(insurance.FieldFirstName) + " " + req.String(insurance.FieldLastName))

	return models.Policy{
		PolicyNumber:   NewPolicyNumber(),
		Type:           req.Product(),
		Category:       req.Category(),
		Status:         models.PolicyStatusActive,
		MonthlyPremium: price.TotalMonthly,
		AnnualPremium:  pricing.Round2(price.Annual + price.Fee*12),
		Pricing:        price,
		StartDate:      now.Format(insurance.DateLayout),
		EndDate:        now.Add(PolicyTerm).Format(insurance.DateLayout),
		CustomerInfo: models.CustomerInfo{
			Name:  name,
			Email: req.String(insurance.FieldEmail),
			Phone: req.String(insurance.FieldPhone),
		},
		Details:   req.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewPolicyNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "POL-" + id[:12]
}

// DaysRemaining is the number of days, rounded up, until the policy ends.
// It is negative once the end date has passed.
func DaysRemaining(p models.Policy, now time.Time) int {
	end, ok := insurance.ParseDate(p.EndDate)
	if !ok {
		return 0
	}
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// EffectiveStatus reports an active policy whose end date has passed as
// expired.
func EffectiveStatus(p models.Policy, now time.Time) models.PolicyStatus {
	if p.Status == models.PolicyStatusActive && DaysRemaining(p, now) < 0 {
		return models.PolicyStatusExpired
	}
	return p.Status
}
