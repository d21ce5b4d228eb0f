// Package validation builds the per-product field schema of a quote
// request and checks requests against it.
package validation

import (
	"regexp"
	"time"

	"github.com/princinho/sahoinsure/insurance"
)

type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeDate   FieldType = "date"
)

// Bound is a numeric limit (length or value) with the message shown when it
// is crossed.
type Bound struct {
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

type DateBound struct {
	Value   time.Time `json:"value"`
	Message string    `json:"message"`
}

type Pattern struct {
	Regexp  *regexp.Regexp `json:"-"`
	Source  string         `json:"pattern"`
	Message string         `json:"message"`
}

type Enum struct {
	Values  []string `json:"values"`
	Message string   `json:"message"`
}

type Format struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// PredicateFunc receives the parsed field value and the whole request so it
// can read sibling fields.
type PredicateFunc func(value any, req insurance.QuoteRequest) bool

// Predicate is a custom rule attached to one field.
type Predicate struct {
	Name    string        `json:"name"`
	Message string        `json:"message"`
	Reads   []string      `json:"reads,omitempty"`
	Test    PredicateFunc `json:"-"`
}

type FieldConstraint struct {
	Field           string      `json:"field"`
	Type            FieldType   `json:"type"`
	Required        bool        `json:"required"`
	RequiredMessage string      `json:"requiredMessage,omitempty"`
	TypeMessage     string      `json:"typeMessage,omitempty"`
	OneOf           *Enum       `json:"oneOf,omitempty"`
	MinLength       *Bound      `json:"minLength,omitempty"`
	MaxLength       *Bound      `json:"maxLength,omitempty"`
	Format          *Format     `json:"format,omitempty"`
	Pattern         *Pattern    `json:"pattern,omitempty"`
	Min             *Bound      `json:"min,omitempty"`
	Max             *Bound      `json:"max,omitempty"`
	MinDate         *DateBound  `json:"minDate,omitempty"`
	MaxDate         *DateBound  `json:"maxDate,omitempty"`
	Predicates      []Predicate `json:"predicates,omitempty"`
}

// Schema is the ordered set of constraints for one (category, product).
type Schema []FieldConstraint

func (s Schema) Lookup(field string) (FieldConstraint, bool) {
	for _, c := range s {
		if c.Field == field {
			return c, true
		}
	}
	return FieldConstraint{}, false
}

// Fields returns field names in schema order.
func (s Schema) Fields() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Field
	}
	return out
}

// Required returns the names of required fields in schema order.
func (s Schema) Required() []string {
	out := make([]string, 0, len(s))
	for _, c := range s {
		if c.Required {
			out = append(out, c.Field)
		}
	}
	return out
}

// extension adds fields when applies matches the selected category/product.
type extension struct {
	name    string
	applies func(insurance.Category, insurance.Product) bool
	fields  func(now time.Time) []FieldConstraint
}

var extensions = []extension{
	{"travel", productIs(insurance.ProductTravel), travelFields},
	{"gadget", productIs(insurance.ProductGadget), gadgetFields},
	{"event", productIs(insurance.ProductEvent), eventFields},
	{"life", categoryIs(insurance.CategoryLife), lifeFields},
	{"family", func(c insurance.Category, p insurance.Product) bool {
		return c == insurance.CategoryLife && p == insurance.ProductFamilyCover
	}, familyFields},
	{"auto", categoryIs(insurance.CategoryAuto), autoFields},
}

func productIs(want insurance.Product) func(insurance.Category, insurance.Product) bool {
	return func(_ insurance.Category, p insurance.Product) bool { return p == want }
}

func categoryIs(want insurance.Category) func(insurance.Category, insurance.Product) bool {
	return func(c insurance.Category, _ insurance.Product) bool { return c == want }
}

// BuildSchema returns the universal constraints followed by every extension
// selected by category and product. It does not check that product belongs
// to category. now anchors the date rules.
func BuildSchema(category insurance.Category, product insurance.Product, now time.Time) Schema {
	schema := universalFields(now)
	for _, ext := range extensions {
		if ext.applies(category, product) {
			schema = append(schema, ext.fields(now)...)
		}
	}
	return schema
}

// Extensions names the field groups BuildSchema would add for category and
// product, in application order.
func Extensions(category insurance.Category, product insurance.Product) []string {
	names := []string{}
	for _, ext := range extensions {
		if ext.applies(category, product) {
			names = append(names, ext.name)
		}
	}
	return names
}
