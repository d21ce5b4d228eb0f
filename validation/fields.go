package validation

import (
	"regexp"
	"time"

	"github.com/princinho/sahoinsure/insurance"
)

const (
	FormatEmail = "email"

	numberTypeMessage = "Please enter a valid number"
	dateTypeMessage   = "Please enter a valid date"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]{10,15}$`)
	// 17 characters, I, O and Q excluded
	vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
)

func bound(v float64, msg string) *Bound { return &Bound{Value: v, Message: msg} }

func dateBound(t time.Time, msg string) *DateBound { return &DateBound{Value: t, Message: msg} }

func pattern(re *regexp.Regexp, msg string) *Pattern {
	return &Pattern{Regexp: re, Source: re.String(), Message: msg}
}

func requiredString(field, msg string) FieldConstraint {
	return FieldConstraint{Field: field, Type: TypeString, Required: true, RequiredMessage: msg}
}

func requiredNumber(field, msg string, lo, hi *Bound) FieldConstraint {
	return FieldConstraint{
		Field:           field,
		Type:            TypeNumber,
		Required:        true,
		RequiredMessage: msg,
		TypeMessage:     numberTypeMessage,
		Min:             lo,
		Max:             hi,
	}
}

func requiredDate(field, msg string) FieldConstraint {
	return FieldConstraint{
		Field:           field,
		Type:            TypeDate,
		Required:        true,
		RequiredMessage: msg,
		TypeMessage:     dateTypeMessage,
	}
}

func universalFields(now time.Time) Schema {
	categories := insurance.Categories()
	allowed := make([]string, len(categories))
	for i, c := range categories {
		allowed[i] = string(c)
	}

	dob := requiredDate(insurance.FieldDateOfBirth, "Date of birth is required")
	dob.MaxDate = dateBound(now, "Date of birth cannot be in the future")
	dob.Predicates = []Predicate{{
		Name:    "age",
		Message: "You must be at least 18 years old",
		Test: func(value any, _ insurance.QuoteRequest) bool {
			birth, ok := value.(time.Time)
			return ok && insurance.Age(birth, now) >= 18
		},
	}}

	return Schema{
		{
			Field:           insurance.FieldCategory,
			Type:            TypeString,
			Required:        true,
			RequiredMessage: "Please select an insurance type",
			OneOf:           &Enum{Values: allowed, Message: "Invalid insurance type"},
		},
		{
			Field:           insurance.FieldProduct,
			Type:            TypeString,
			Required:        true,
			RequiredMessage: "Please select a specific insurance product",
			MinLength:       bound(3, "Invalid insurance product"),
		},
		personName(insurance.FieldFirstName, "First name"),
		personName(insurance.FieldLastName, "Last name"),
		{
			Field:           insurance.FieldEmail,
			Type:            TypeString,
			Required:        true,
			RequiredMessage: "Email address is required",
			Format:          &Format{Name: FormatEmail, Message: "Please enter a valid email address"},
			MinLength:       bound(5, "Email must be at least 5 characters"),
		},
		{
			Field:           insurance.FieldPhone,
			Type:            TypeString,
			Required:        true,
			RequiredMessage: "Phone number is required",
			Pattern:         pattern(phonePattern, "Please enter a valid phone number"),
			MinLength:       bound(10, "Phone number must be at least 10 digits"),
			MaxLength:       bound(15, "Phone number must be at most 15 characters"),
		},
		dob,
	}
}

func personName(field, label string) FieldConstraint {
	return FieldConstraint{
		Field:           field,
		Type:            TypeString,
		Required:        true,
		RequiredMessage: label + " is required",
		MinLength:       bound(2, label+" must be at least 2 characters"),
		MaxLength:       bound(50, label+" must be less than 50 characters"),
		Pattern:         pattern(namePattern, label+" can only contain letters"),
	}
}

func travelFields(now time.Time) []FieldConstraint {
	start := requiredDate(insurance.FieldTravelStartDate, "Travel start date is required")
	start.MinDate = dateBound(now, "Travel date must be in the future")

	end := requiredDate(insurance.FieldTravelEndDate, "Travel end date is required")
	end.Predicates = []Predicate{{
		Name:    "end-after-start",
		Message: "End date must be after start date",
		Reads:   []string{insurance.FieldTravelStartDate},
		Test: func(value any, req insurance.QuoteRequest) bool {
			from, ok := req.Date(insurance.FieldTravelStartDate)
			if !ok {
				// reported on travelStartDate
				return true
			}
			to, _ := value.(time.Time)
			return to.After(from)
		},
	}}

	return []FieldConstraint{
		requiredString(insurance.FieldDestination, "Destination is required"),
		start,
		end,
		requiredNumber(insurance.FieldTravelersCount, "Number of travelers is required",
			bound(1, "At least 1 traveler required"),
			bound(20, "Maximum 20 travelers allowed")),
	}
}

func gadgetFields(now time.Time) []FieldConstraint {
	purchased := requiredDate(insurance.FieldPurchaseDate, "Purchase date is required")
	purchased.MaxDate = dateBound(now, "Purchase date cannot be in the future")

	return []FieldConstraint{
		requiredString(insurance.FieldDeviceType, "Device type is required"),
		requiredString(insurance.FieldDeviceBrand, "Device brand is required"),
		requiredString(insurance.FieldDeviceModel, "Device model is required"),
		purchased,
		requiredNumber(insurance.FieldDeviceValue, "Device value is required",
			bound(100, "Minimum device value is $100"),
			bound(50000, "Maximum device value is $50,000")),
	}
}

func eventFields(now time.Time) []FieldConstraint {
	date := requiredDate(insurance.FieldEventDate, "Event date is required")
	date.MinDate = dateBound(now, "Event date must be in the future")

	return []FieldConstraint{
		requiredString(insurance.FieldEventType, "Event type is required"),
		date,
		requiredString(insurance.FieldEventLocation, "Event location is required"),
		requiredNumber(insurance.FieldExpectedGuests, "Expected guests is required",
			bound(1, "At least 1 guest expected"),
			bound(10000, "Maximum 10,000 guests allowed")),
		requiredNumber(insurance.FieldEventBudget, "Event budget is required",
			bound(500, "Minimum event budget is $500"), nil),
	}
}

func lifeFields(time.Time) []FieldConstraint {
	beneficiary := requiredString(insurance.FieldBeneficiaryName, "Beneficiary name is required")
	beneficiary.MinLength = bound(2, "Beneficiary name must be at least 2 characters")

	smoking := requiredString(insurance.FieldSmokingStatus, "Smoking status is required")
	smoking.OneOf = &Enum{
		Values:  []string{insurance.SmokingNever, insurance.SmokingFormer, insurance.SmokingCurrent},
		Message: "Invalid smoking status",
	}

	return []FieldConstraint{
		requiredNumber(insurance.FieldCoverageAmount, "Coverage amount is required",
			bound(10000, "Minimum coverage is $10,000"),
			bound(5000000, "Maximum coverage is $5,000,000")),
		beneficiary,
		requiredString(insurance.FieldBeneficiaryRelationship, "Beneficiary relationship is required"),
		smoking,
	}
}

func familyFields(time.Time) []FieldConstraint {
	return []FieldConstraint{
		requiredNumber(insurance.FieldFamilyMembers, "Number of family members is required",
			bound(2, "Family cover requires at least 2 members"),
			bound(10, "Maximum 10 family members allowed")),
	}
}

func autoFields(now time.Time) []FieldConstraint {
	vin := requiredString(insurance.FieldVehicleVIN, "Vehicle VIN is required")
	vin.Pattern = pattern(vinPattern, "Please enter a valid 17-character VIN")

	return []FieldConstraint{
		requiredString(insurance.FieldVehicleMake, "Vehicle make is required"),
		requiredString(insurance.FieldVehicleModel, "Vehicle model is required"),
		requiredNumber(insurance.FieldVehicleYear, "Vehicle year is required",
			bound(1990, "Vehicle must be 1990 or newer"),
			bound(float64(now.Year()+1), "Invalid vehicle year")),
		vin,
		requiredNumber(insurance.FieldAnnualMileage, "Annual mileage is required",
			bound(1000, "Minimum annual mileage is 1,000 miles"),
			bound(100000, "Maximum annual mileage is 100,000 miles")),
		requiredNumber(insurance.FieldDrivingExperience, "Years of driving experience is required",
			bound(0, "Driving experience cannot be negative"),
			bound(70, "Maximum driving experience is 70 years")),
	}
}
