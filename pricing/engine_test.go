package pricing

import (
	"testing"
	"time"

	"github.com/princinho/sahoinsure/insurance"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestComputeTravelExample(t *testing.T) {
	req := insurance.QuoteRequest{
		"category":        "short-term",
		"product":         "Travel Insurance",
		"travelersCount":  2,
		"travelStartDate": "2025-01-01",
		"travelEndDate":   "2025-01-08",
		"destination":     "Thailand",
	}

	got := ComputePrice(req, now)
	assert.Equal(t, Result{Monthly: 50, Annual: 540, Fee: 15, TotalMonthly: 65}, got)
}

func TestComputeTravelLongTripAndRegion(t *testing.T) {
	req := insurance.QuoteRequest{
		"product":         "Travel Insurance",
		"travelersCount":  1,
		"travelStartDate": "2025-01-01",
		"travelEndDate":   "2025-01-15",
		"destination":     "South-East Asia",
	}

	q := Compute(req, now)
	// 1 traveler x 14/7 days x 1.5 region
	assert.InDelta(t, 3.0, q.Multiplier, 1e-9)
	assert.Equal(t, 75.0, q.Monthly)
	assert.Empty(t, q.Defaulted)
}

func TestComputeFamilyCoverExample(t *testing.T) {
	req := insurance.QuoteRequest{
		"category":       "life",
		"product":        "Family Cover",
		"coverageAmount": 500000,
		"dateOfBirth":    "1980-01-01",
		"smokingStatus":  "never",
		"familyMembers":  4,
	}

	q := Compute(req, now)
	assert.InDelta(t, 21.0, q.Multiplier, 1e-9)
	assert.Equal(t, 2520.0, q.Monthly)
	assert.Equal(t, 2535.0, q.TotalMonthly)
}

func TestComputeUnknownProduct(t *testing.T) {
	q := Compute(insurance.QuoteRequest{"product": "Pet Insurance"}, now)
	assert.Equal(t, 50.0, q.BasePrice)
	assert.Equal(t, 1.0, q.Multiplier)
	assert.Equal(t, 50.0, q.Monthly)
	assert.Equal(t, 540.0, q.Annual)
	assert.Empty(t, q.Factors)
}

// deviceValue is required by the schema; pricing an unvalidated request
// falls back to the default and reports it.
func TestComputeGadgetMissingValueIsDefaulted(t *testing.T) {
	q := Compute(insurance.QuoteRequest{
		"product":     "Gadget Insurance",
		"deviceBrand": "Nokia",
	}, now)

	assert.Equal(t, 1.0, q.Multiplier)
	assert.Equal(t, 15.0, q.Monthly)
	assert.Equal(t, []string{insurance.FieldDeviceValue}, q.Defaulted)
}

func TestComputeGadgetPremiumBrand(t *testing.T) {
	q := Compute(insurance.QuoteRequest{
		"product":     "Gadget Insurance",
		"deviceBrand": "Samsung",
		"deviceValue": "100000",
	}, now)
	// max(1, 100 * 0.02) * 1.2
	assert.InDelta(t, 2.4, q.Multiplier, 1e-9)
	assert.Equal(t, 36.0, q.Monthly)
}

func TestComputeEvent(t *testing.T) {
	q := Compute(insurance.QuoteRequest{
		"product":        "Event Insurance",
		"eventType":      "Music Festival",
		"expectedGuests": 400,
		"eventBudget":    20000,
	}, now)
	// 400/100 * sqrt(20000/5000) * 1.8
	assert.InDelta(t, 14.4, q.Multiplier, 1e-9)
	assert.Equal(t, 720.0, q.Monthly)
}

func TestComputeLifeSmoker(t *testing.T) {
	tests := map[string]float64{
		insurance.SmokingNever:   30,
		insurance.SmokingFormer:  39,
		insurance.SmokingCurrent: 75,
	}
	for status, monthly := range tests {
		q := Compute(insurance.QuoteRequest{
			"category":       "life",
			"product":        "Term Life Insurance",
			"coverageAmount": 100000,
			"dateOfBirth":    "2000-01-01",
			"smokingStatus":  status,
		}, now)
		assert.Equal(t, monthly, q.Monthly, status)
	}
}

func TestComputeLifeMissingBirthDateUsesDefaultAge(t *testing.T) {
	q := Compute(insurance.QuoteRequest{
		"category":       "life",
		"product":        "Whole Life Insurance",
		"coverageAmount": 200000,
	}, now)
	assert.InDelta(t, 2.0, q.Multiplier, 1e-9)
	assert.Contains(t, q.Defaulted, insurance.FieldDateOfBirth)
}

func TestComputeAuto(t *testing.T) {
	tests := []struct {
		name       string
		req        insurance.QuoteRequest
		multiplier float64
	}{
		{
			name: "new car experienced driver",
			req: insurance.QuoteRequest{
				"category": "auto", "product": "Comprehensive Auto",
				"vehicleYear": 2025, "annualMileage": 10000, "drivingExperience": 12,
				"vehicleMake": "Toyota",
			},
			multiplier: 1.5 * 0.8,
		},
		{
			name: "old car new driver luxury make",
			req: insurance.QuoteRequest{
				"category": "auto", "product": "Premium Auto",
				"vehicleYear": 2000, "annualMileage": 30000, "drivingExperience": 1,
				"vehicleMake": "BMW",
			},
			multiplier: 0.5 * 2 * 1.5 * 1.4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compute(tt.req, now)
			assert.InDelta(t, tt.multiplier, q.Multiplier, 1e-9)
		})
	}
}

// A present zero is an answer, not a missing value: no experience prices
// as a new driver rather than falling back to the default.
func TestComputeAutoZeroExperience(t *testing.T) {
	q := Compute(insurance.QuoteRequest{
		"category": "auto", "product": "Comprehensive Auto",
		"vehicleYear": 2025, "annualMileage": 12000, "drivingExperience": 0,
		"vehicleMake": "Toyota",
	}, now)

	assert.InDelta(t, 1.5*1.5, q.Multiplier, 1e-9)
	assert.Contains(t, q.Factors, Factor{Name: "new driver", Value: 1.5})
	assert.NotContains(t, q.Defaulted, insurance.FieldDrivingExperience)

	missing := Compute(insurance.QuoteRequest{
		"category": "auto", "product": "Comprehensive Auto",
		"vehicleYear": 2025, "annualMileage": 12000,
	}, now)
	assert.InDelta(t, 1.5, missing.Multiplier, 1e-9)
	assert.Contains(t, missing.Defaulted, insurance.FieldDrivingExperience)
}

func TestComputeDependsOnNow(t *testing.T) {
	req := insurance.QuoteRequest{
		"category": "auto", "product": "Third Party Only",
		"vehicleYear": 2015, "annualMileage": 12000, "drivingExperience": 5,
	}
	earlier := Compute(req, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	later := Compute(req, now)
	assert.Greater(t, earlier.Monthly, later.Monthly)
}

func TestComputeIsDeterministic(t *testing.T) {
	req := insurance.QuoteRequest{
		"category":       "life",
		"product":        "Family Cover",
		"coverageAmount": "750000",
		"dateOfBirth":    "1971-03-09",
		"smokingStatus":  "former",
		"familyMembers":  "6",
	}
	first := Compute(req, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(req, now))
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005+1e-12))
	assert.Equal(t, 2.5, Round2(2.499999))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.Equal(t, 65.0, Round2(65))
}
