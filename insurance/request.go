package insurance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Field names understood by validation, pricing and the policy builder.
const (
	FieldCategory    = "category"
	FieldProduct     = "product"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldDateOfBirth = "dateOfBirth"

	FieldDestination     = "destination"
	FieldTravelStartDate = "travelStartDate"
	FieldTravelEndDate   = "travelEndDate"
	FieldTravelersCount  = "travelersCount"

	FieldDeviceType   = "deviceType"
	FieldDeviceBrand  = "deviceBrand"
	FieldDeviceModel  = "deviceModel"
	FieldPurchaseDate = "purchaseDate"
	FieldDeviceValue  = "deviceValue"

	FieldEventType      = "eventType"
	FieldEventDate      = "eventDate"
	FieldEventLocation  = "eventLocation"
	FieldExpectedGuests = "expectedGuests"
	FieldEventBudget    = "eventBudget"

	FieldCoverageAmount          = "coverageAmount"
	FieldBeneficiaryName         = "beneficiaryName"
	FieldBeneficiaryRelationship = "beneficiaryRelationship"
	FieldSmokingStatus           = "smokingStatus"
	FieldFamilyMembers           = "familyMembers"

	FieldVehicleMake       = "vehicleMake"
	FieldVehicleModel      = "vehicleModel"
	FieldVehicleYear       = "vehicleYear"
	FieldVehicleVIN        = "vehicleVin"
	FieldAnnualMileage     = "annualMileage"
	FieldDrivingExperience = "drivingExperience"
)

// older clients sent these keys
var legacyKeys = map[string]string{
	"insuranceType": FieldCategory,
	"subType":       FieldProduct,
}

const DateLayout = "2006-01-02"

// QuoteRequest is the flat record of a user's answers. Values are strings,
// numbers or date strings. Unknown keys are carried untouched.
type QuoteRequest map[string]any

// Normalize copies legacy keys onto their current names when the current
// name is absent or empty.
func (r QuoteRequest) Normalize() QuoteRequest {
	for old, cur := range legacyKeys {
		v, ok := r[old]
		if !ok {
			continue
		}
		if r.String(cur) == "" {
			r[cur] = v
		}
		delete(r, old)
	}
	return r
}

// Clone returns a shallow copy.
func (r QuoteRequest) Clone() QuoteRequest {
	out := make(QuoteRequest, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r QuoteRequest) Category() Category { return Category(r.String(FieldCategory)) }

func (r QuoteRequest) Product() Product { return Product(r.String(FieldProduct)) }

// Has reports whether field is present with a non-blank value.
func (r QuoteRequest) Has(field string) bool {
	return r.String(field) != ""
}

// String returns the trimmed textual form of a value, "" when absent.
func (r QuoteRequest) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(DateLayout)
	}
	return ""
}

// Number parses the value as a float. ok is false when the value is absent
// or not numeric.
func (r QuoteRequest) Number(field string) (float64, bool) {
	s := r.String(field)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int parses the leading integer of the value ("12.7" is 12, "3 cars" is 3).
// ok is false when no leading integer exists.
func (r QuoteRequest) Int(field string) (int, bool) {
	s := r.String(field)
	if f, ok := r.Number(field); ok {
		if math.Abs(f) >= 1<<53 {
			return 0, false
		}
		return int(f), true
	}
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Date parses YYYY-MM-DD or RFC 3339 values.
func (r QuoteRequest) Date(field string) (time.Time, bool) {
	if t, ok := r[field].(time.Time); ok {
		return t, true
	}
	return ParseDate(r.String(field))
}

func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
