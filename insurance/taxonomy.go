// Package insurance holds the closed product taxonomy and the quote
// request record shared by validation and pricing.
package insurance

type Category string

const (
	CategoryShortTerm Category = "short-term"
	CategoryLife      Category = "life"
	CategoryAuto      Category = "auto"
)

// Product values are the literal names used by stored quotes and policies.
// Do not rename them.
type Product string

const (
	ProductTravel        Product = "Travel Insurance"
	ProductGadget        Product = "Gadget Insurance"
	ProductEvent         Product = "Event Insurance"
	ProductTermLife      Product = "Term Life Insurance"
	ProductWholeLife     Product = "Whole Life Insurance"
	ProductFamilyCover   Product = "Family Cover"
	ProductComprehensive Product = "Comprehensive Auto"
	ProductThirdParty    Product = "Third Party Only"
	ProductPremiumAuto   Product = "Premium Auto"
)

type categoryInfo struct {
	title       string
	description string
	products    []Product
}

type productInfo struct {
	category    Category
	basePrice   float64
	description string
}

var categoryOrder = []Category{CategoryShortTerm, CategoryLife, CategoryAuto}

var categories = map[Category]categoryInfo{
	CategoryShortTerm: {
		title:       "Short-Term Insurance",
		description: "Flexible cover for trips, devices and one-off events.",
		products:    []Product{ProductTravel, ProductGadget, ProductEvent},
	},
	CategoryLife: {
		title:       "Life Insurance",
		description: "Long-term protection for you and the people who depend on you.",
		products:    []Product{ProductTermLife, ProductWholeLife, ProductFamilyCover},
	},
	CategoryAuto: {
		title:       "Auto Insurance",
		description: "Cover for your vehicle, from third party to premium.",
		products:    []Product{ProductComprehensive, ProductThirdParty, ProductPremiumAuto},
	},
}

// monthly base prices, currency units
var products = map[Product]productInfo{
	ProductTravel:        {CategoryShortTerm, 25, "Medical, cancellation and luggage cover for your trip."},
	ProductGadget:        {CategoryShortTerm, 15, "Accidental damage and theft cover for personal devices."},
	ProductEvent:         {CategoryShortTerm, 50, "Cancellation and liability cover for a single event."},
	ProductTermLife:      {CategoryLife, 30, "Fixed-term life cover at an affordable premium."},
	ProductWholeLife:     {CategoryLife, 75, "Lifelong cover with a guaranteed payout."},
	ProductFamilyCover:   {CategoryLife, 120, "One policy covering the whole household."},
	ProductComprehensive: {CategoryAuto, 85, "Own damage, theft and third party liability."},
	ProductThirdParty:    {CategoryAuto, 45, "The legal minimum: damage you cause to others."},
	ProductPremiumAuto:   {CategoryAuto, 125, "Comprehensive cover plus courtesy car and roadside assistance."},
}

const (
	SmokingNever   = "never"
	SmokingFormer  = "former"
	SmokingCurrent = "current"
)

// DefaultBasePrice applies to product names outside the catalog.
const DefaultBasePrice = 50.0

func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Products lists every product in catalog order.
func Products() []Product {
	out := make([]Product, 0, len(products))
	for _, c := range categoryOrder {
		out = append(out, categories[c].products...)
	}
	return out
}

func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categories[c]
	return c, ok
}

func ParseProduct(s string) (Product, bool) {
	p := Product(s)
	_, ok := products[p]
	return p, ok
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) Title() string { return categories[c].title }

func (c Category) Description() string { return categories[c].description }

func (c Category) Products() []Product {
	info, ok := categories[c]
	if !ok {
		return nil
	}
	out := make([]Product, len(info.products))
	copy(out, info.products)
	return out
}

func (p Product) Valid() bool {
	_, ok := products[p]
	return ok
}

// Category returns the owning category, or "" for unknown products.
func (p Product) Category() Category { return products[p].category }

func (p Product) Description() string { return products[p].description }

// BasePrice returns the monthly base price, DefaultBasePrice when p is not
// in the catalog.
func (p Product) BasePrice() float64 {
	info, ok := products[p]
	if !ok {
		return DefaultBasePrice
	}
	return info.basePrice
}
