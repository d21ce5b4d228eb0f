package validation

import (
	"slices"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/princinho/sahoinsure/insurance"
)

var formats = validator.New()

type FieldOutcome struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func pass() FieldOutcome { return FieldOutcome{Valid: true} }

func fail(msg string) FieldOutcome { return FieldOutcome{Message: msg} }

// Outcome maps every schema field to its result. Fields outside the schema
// are never reported.
type Outcome map[string]FieldOutcome

// Valid reports whether the request may be submitted.
func (o Outcome) Valid() bool {
	for _, f := range o {
		if !f.Valid {
			return false
		}
	}
	return true
}

// Errors returns the failing fields and their messages.
func (o Outcome) Errors() map[string]string {
	out := make(map[string]string)
	for field, f := range o {
		if !f.Valid {
			out[field] = f.Message
		}
	}
	return out
}

// Validate checks req against the schema selected by its own category and
// product.
func Validate(req insurance.QuoteRequest, now time.Time) Outcome {
	return BuildSchema(req.Category(), req.Product(), now).Validate(req)
}

// ValidateField checks a single field, as done on every form change. ok is
// false when the field is not part of the request's schema.
func ValidateField(req insurance.QuoteRequest, field string, now time.Time) (FieldOutcome, bool) {
	c, found := BuildSchema(req.Category(), req.Product(), now).Lookup(field)
	if !found {
		return FieldOutcome{}, false
	}
	return c.Check(req), true
}

func (s Schema) Validate(req insurance.QuoteRequest) Outcome {
	out := make(Outcome, len(s))
	for _, c := range s {
		out[c.Field] = c.Check(req)
	}
	return out
}

// Check returns the first failing rule of c, in the order: presence, type,
// allowed values, format, length, pattern, numeric bounds, date bounds,
// predicates.
func (c FieldConstraint) Check(req insurance.QuoteRequest) FieldOutcome {
	raw := req.String(c.Field)
	if raw == "" {
		if c.Required {
			return fail(c.RequiredMessage)
		}
		return pass()
	}

	var value any = raw
	switch c.Type {
	case TypeNumber:
		n, parsed := req.Number(c.Field)
		if !parsed {
			return fail(c.TypeMessage)
		}
		value = n
	case TypeDate:
		t, parsed := req.Date(c.Field)
		if !parsed {
			return fail(c.TypeMessage)
		}
		value = t
	}

	if c.OneOf != nil && !slices.Contains(c.OneOf.Values, raw) {
		return fail(c.OneOf.Message)
	}
	if c.Format != nil && c.Format.Name == FormatEmail {
		if err := formats.Var(raw, "email"); err != nil {
			return fail(c.Format.Message)
		}
	}
	if c.Type == TypeString {
		n := float64(utf8.RuneCountInString(raw))
		if c.MinLength != nil && n < c.MinLength.Value {
			return fail(c.MinLength.Message)
		}
		if c.MaxLength != nil && n > c.MaxLength.Value {
			return fail(c.MaxLength.Message)
		}
	}
	if c.Pattern != nil && !c.Pattern.Regexp.MatchString(raw) {
		return fail(c.Pattern.Message)
	}
	if n, isNum := value.(float64); isNum {
		if c.Min != nil && n < c.Min.Value {
			return fail(c.Min.Message)
		}
		if c.Max != nil && n > c.Max.Value {
			return fail(c.Max.Message)
		}
	}
	if t, isDate := value.(time.Time); isDate {
		if c.MinDate != nil && insurance.SameDayOrder(t, c.MinDate.Value) < 0 {
			return fail(c.MinDate.Message)
		}
		if c.MaxDate != nil && insurance.SameDayOrder(t, c.MaxDate.Value) > 0 {
			return fail(c.MaxDate.Message)
		}
	}
	for _, p := range c.Predicates {
		if p.Test != nil && !p.Test(value, req) {
			return fail(p.Message)
		}
	}
	return pass()
}
