// Package pricing computes monthly and annual premiums for a validated quote
// request.
//
// Results depend on the supplied now (applicant age, vehicle age), so the
// same request prices differently on different days. Callers that need
// reproducible output must pass a fixed now.
package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/princinho/sahoinsure/insurance"
)

const (
	// AdminFee is the flat monthly surcharge added to every product.
	AdminFee = 15.0
	// AnnualDiscount is applied to twelve months of the base premium.
	AnnualDiscount = 0.10
)

// Defaults substituted when a pricing input is absent or unparsable.
const (
	DefaultTravelers       = 1
	DefaultTravelDays      = 7
	DefaultDeviceValue     = 1000
	DefaultGuests          = 50
	DefaultEventBudget     = 5000
	DefaultCoverage        = 100000
	DefaultAge             = 30
	DefaultVehicleYear     = 2020
	DefaultAnnualMileage   = 12000
	DefaultExperienceYears = 5
)

type Result struct {
	Monthly      float64 `json:"monthly" bson:"monthly"`
	Annual       float64 `json:"annual" bson:"annual"`
	Fee          float64 `json:"fee" bson:"fee"`
	TotalMonthly float64 `json:"totalMonthly" bson:"totalMonthly"`
}

// Factor is one multiplicative adjustment applied to the base price.
type Factor struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Quote is a Result with the figures it was derived from.
type Quote struct {
	Result
	BasePrice  float64  `json:"basePrice"`
	Multiplier float64  `json:"multiplier"`
	Factors    []Factor `json:"factors"`
	// Defaulted lists inputs that were missing and replaced by a default.
	Defaulted []string `json:"defaulted,omitempty"`
}

// ComputePrice prices req as of now. req is expected to have passed
// validation; missing inputs fall back to the package defaults.
func ComputePrice(req insurance.QuoteRequest, now time.Time) Result {
	return Compute(req, now).Result
}

// Compute is ComputePrice with the base price, multiplier and applied
// factors exposed.
func Compute(req insurance.QuoteRequest, now time.Time) Quote {
	product := req.Product()
	base := product.BasePrice()

	f := newFactors(req)
	switch {
	case product == insurance.ProductTravel:
		f.travel()
	case product == insurance.ProductGadget:
		f.gadget()
	case product == insurance.ProductEvent:
		f.event()
	case req.Category() == insurance.CategoryLife:
		f.life(now)
	case req.Category() == insurance.CategoryAuto:
		f.auto(now)
	}

	monthly := Round2(base * f.multiplier)
	return Quote{
		Result: Result{
			Monthly:      monthly,
			Annual:       Round2(monthly * 12 * (1 - AnnualDiscount)),
			Fee:          AdminFee,
			TotalMonthly: Round2(monthly + AdminFee),
		},
		BasePrice:  base,
		Multiplier: f.multiplier,
		Factors:    f.applied,
		Defaulted:  f.defaulted,
	}
}

// Round2 rounds half up to two decimals.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

type factors struct {
	req        insurance.QuoteRequest
	multiplier float64
	applied    []Factor
	defaulted  []string
}

func newFactors(req insurance.QuoteRequest) *factors {
	return &factors{req: req, multiplier: 1, applied: []Factor{}}
}

// set replaces the running multiplier with the branch's starting value.
func (f *factors) set(name string, v float64) {
	f.multiplier = v
	f.applied = append(f.applied, Factor{Name: name, Value: v})
}

func (f *factors) times(name string, v float64) {
	f.multiplier *= v
	f.applied = append(f.applied, Factor{Name: name, Value: v})
}

func (f *factors) intOr(field string, def int) int {
	if n, ok := f.req.Int(field); ok {
		return n
	}
	f.defaulted = append(f.defaulted, field)
	return def
}

func (f *factors) travel() {
	travelers := f.intOr(insurance.FieldTravelersCount, DefaultTravelers)

	days := float64(DefaultTravelDays)
	start, okStart := f.req.Date(insurance.FieldTravelStartDate)
	end, okEnd := f.req.Date(insurance.FieldTravelEndDate)
	if okStart && okEnd {
		days = math.Ceil(end.Sub(start).Hours() / 24)
	} else {
		f.defaulted = append(f.defaulted, "travelDays")
	}

	f.set("travelers", float64(travelers)*math.Max(1, days/7))
	if containsAny(f.req.String(insurance.FieldDestination), "europe", "asia", "australia") {
		f.times("international destination", 1.5)
	}
}

func (f *factors) gadget() {
	value := f.intOr(insurance.FieldDeviceValue, DefaultDeviceValue)
	f.set("device value", math.Max(1, float64(value)/1000*0.02))
	if containsAny(f.req.String(insurance.FieldDeviceBrand), "apple", "samsung", "sony") {
		f.times("premium brand", 1.2)
	}
}

func (f *factors) event() {
	guests := f.intOr(insurance.FieldExpectedGuests, DefaultGuests)
	budget := f.intOr(insurance.FieldEventBudget, DefaultEventBudget)
	f.set("event size", math.Max(1, float64(guests)/100*math.Sqrt(float64(budget)/5000)))
	if containsAny(f.req.String(insurance.FieldEventType), "concert", "festival") {
		f.times("high-risk event", 1.8)
	}
}

func (f *factors) life(now time.Time) {
	coverage := f.intOr(insurance.FieldCoverageAmount, DefaultCoverage)

	age := DefaultAge
	if dob, ok := f.req.Date(insurance.FieldDateOfBirth); ok {
		age = insurance.Age(dob, now)
	} else {
		f.defaulted = append(f.defaulted, insurance.FieldDateOfBirth)
	}

	f.set("coverage and age", float64(coverage)/100000*math.Max(1, float64(age)/30))
	switch f.req.String(insurance.FieldSmokingStatus) {
	case insurance.SmokingCurrent:
		f.times("current smoker", 2.5)
	case insurance.SmokingFormer:
		f.times("former smoker", 1.3)
	}

	if f.req.Product() == insurance.ProductFamilyCover {
		if members, ok := f.req.Int(insurance.FieldFamilyMembers); ok {
			f.times("family members", math.Max(1, float64(members)*0.7))
		}
	}
}

func (f *factors) auto(now time.Time) {
	year := f.intOr(insurance.FieldVehicleYear, DefaultVehicleYear)
	mileage := f.intOr(insurance.FieldAnnualMileage, DefaultAnnualMileage)
	experience := f.intOr(insurance.FieldDrivingExperience, DefaultExperienceYears)

	vehicleAge := now.Year() - year
	f.set("vehicle age and mileage",
		math.Max(0.5, float64(15-vehicleAge)/10)*math.Max(1, float64(mileage)/15000))

	switch {
	case experience >= 10:
		f.times("experienced driver", 0.8)
	case experience < 3:
		f.times("new driver", 1.5)
	}
	if containsAny(f.req.String(insurance.FieldVehicleMake), "bmw", "mercedes", "audi", "lexus") {
		f.times("luxury make", 1.4)
	}
}

func containsAny(s string, needles ...string) bool {
	s = strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
