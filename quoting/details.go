package quoting

import (
	"strings"

	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/utils"
)

type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DetailSection struct {
	Title string      `json:"title"`
	Rows  []DetailRow `json:"data"`
}

const displayDate = "Jan 2, 2006"

// DetailSections lays out a quote request for review: personal details
// first, then one section for the selected product family.
func DetailSections(req insurance.QuoteRequest) []DetailSection {
	sections := []DetailSection{{
		Title: "Personal Information",
		Rows: []DetailRow{
			{"Name", strings.TrimSpace(req.String(insurance.FieldFirstName) + " " + req.String(insurance.FieldLastName))},
			{"Email", req.String(insurance.FieldEmail)},
			{"Phone", req.String(insurance.FieldPhone)},
			{"Date of Birth", date(req, insurance.FieldDateOfBirth)},
		},
	}}

	switch req.Product() {
	case insurance.ProductTravel:
		sections = append(sections, DetailSection{
			Title: "Travel Details",
			Rows: []DetailRow{
				{"Destination", req.String(insurance.FieldDestination)},
				{"Travel Period", date(req, insurance.FieldTravelStartDate) + " - " + date(req, insurance.FieldTravelEndDate)},
				{"Number of Travelers", req.String(insurance.FieldTravelersCount)},
			},
		})
	case insurance.ProductGadget:
		sections = append(sections, DetailSection{
			Title: "Device Information",
			Rows: []DetailRow{
				{"Device", join(req.String(insurance.FieldDeviceBrand), req.String(insurance.FieldDeviceModel))},
				{"Device Type", req.String(insurance.FieldDeviceType)},
				{"Purchase Date", date(req, insurance.FieldPurchaseDate)},
				{"Current Value", money(req, insurance.FieldDeviceValue)},
			},
		})
	case insurance.ProductEvent:
		sections = append(sections, DetailSection{
			Title: "Event Details",
			Rows: []DetailRow{
				{"Event Type", req.String(insurance.FieldEventType)},
				{"Event Date", date(req, insurance.FieldEventDate)},
				{"Location", req.String(insurance.FieldEventLocation)},
				{"Expected Guests", req.String(insurance.FieldExpectedGuests)},
				{"Budget", money(req, insurance.FieldEventBudget)},
			},
		})
	}

	switch req.Category() {
	case insurance.CategoryLife:
		rows := []DetailRow{
			{"Coverage Amount", money(req, insurance.FieldCoverageAmount)},
			{"Primary Beneficiary", req.String(insurance.FieldBeneficiaryName)},
			{"Relationship", req.String(insurance.FieldBeneficiaryRelationship)},
			{"Smoking Status", smokingLabel(req.String(insurance.FieldSmokingStatus))},
		}
		if req.Has(insurance.FieldFamilyMembers) {
			rows = append(rows, DetailRow{"Family Members", req.String(insurance.FieldFamilyMembers)})
		}
		sections = append(sections, DetailSection{Title: "Life Insurance Details", Rows: rows})
	case insurance.CategoryAuto:
		sections = append(sections, DetailSection{
			Title: "Vehicle Information",
			Rows: []DetailRow{
				{"Vehicle", join(req.String(insurance.FieldVehicleYear), req.String(insurance.FieldVehicleMake), req.String(insurance.FieldVehicleModel))},
				{"VIN", req.String(insurance.FieldVehicleVIN)},
				{"Annual Mileage", number(req, insurance.FieldAnnualMileage) + " miles"},
				{"Driving Experience", req.String(insurance.FieldDrivingExperience) + " years"},
			},
		})
	}

	return sections
}

func smokingLabel(status string) string {
	switch status {
	case insurance.SmokingNever:
		return "Non-smoker"
	case insurance.SmokingFormer:
		return "Former smoker"
	case insurance.SmokingCurrent:
		return "Current smoker"
	}
	return status
}

func date(req insurance.QuoteRequest, field string) string {
	t, ok := req.Date(field)
	if !ok {
		return req.String(field)
	}
	return t.Format(displayDate)
}

func money(req insurance.QuoteRequest, field string) string {
	n, ok := req.Int(field)
	if !ok {
		return req.String(field)
	}
	return utils.FormatMoney(n)
}

func number(req insurance.QuoteRequest, field string) string {
	n, ok := req.Int(field)
	if !ok {
		return req.String(field)
	}
	return utils.FormatNumber(n)
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
