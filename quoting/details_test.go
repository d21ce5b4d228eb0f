package quoting

import (
	"testing"

	"github.com/princinho/sahoinsure/insurance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailSectionsFamilyCover(t *testing.T) {
	req := insurance.QuoteRequest{
		"category":                "life",
		"product":                 "Family Cover",
		"firstName":               "Jane",
		"lastName":                "Doe",
		"dateOfBirth":             "1980-01-01",
		"coverageAmount":          500000,
		"beneficiaryName":         "John Doe",
		"beneficiaryRelationship": "Spouse",
		"smokingStatus":           "former",
		"familyMembers":           4,
	}

	sections := DetailSections(req)
	require.Len(t, sections, 2)
	assert.Equal(t, "Personal Information", sections[0].Title)
	assert.Equal(t, DetailRow{"Date of Birth", "Jan 1, 1980"}, sections[0].Rows[3])

	life := sections[1]
	assert.Equal(t, "Life Insurance Details", life.Title)
	assert.Equal(t, []DetailRow{
		{"Coverage Amount", "$500,000"},
		{"Primary Beneficiary", "John Doe"},
		{"Relationship", "Spouse"},
		{"Smoking Status", "Former smoker"},
		{"Family Members", "4"},
	}, life.Rows)
}

func TestDetailSectionsAuto(t *testing.T) {
	req := insurance.QuoteRequest{
		"category":          "auto",
		"product":           "Premium Auto",
		"vehicleYear":       2022,
		"vehicleMake":       "Audi",
		"vehicleModel":      "A4",
		"vehicleVin":        "1HGCM82633A004352",
		"annualMileage":     15000,
		"drivingExperience": 9,
	}

	sections := DetailSections(req)
	require.Len(t, sections, 2)
	assert.Equal(t, []DetailRow{
		{"Vehicle", "2022 Audi A4"},
		{"VIN", "1HGCM82633A004352"},
		{"Annual Mileage", "15,000 miles"},
		{"Driving Experience", "9 years"},
	}, sections[1].Rows)
}

func TestDetailSectionsTravel(t *testing.T) {
	req := insurance.QuoteRequest{
		"product":         "Travel Insurance",
		"destination":     "Japan",
		"travelStartDate": "2025-07-01",
		"travelEndDate":   "2025-07-08",
		"travelersCount":  2,
	}

	sections := DetailSections(req)
	require.Len(t, sections, 2)
	assert.Equal(t, "Travel Details", sections[1].Title)
	assert.Equal(t, DetailRow{"Travel Period", "Jul 1, 2025 - Jul 8, 2025"}, sections[1].Rows[1])
}

func TestDetailSectionsUnknownProduct(t *testing.T) {
	sections := DetailSections(insurance.QuoteRequest{"product": "Pet Insurance", "firstName": "Jane"})
	require.Len(t, sections, 1)
	assert.Equal(t, DetailRow{"Name", "Jane"}, sections[0].Rows[0])
}
