// Package validation holds the declarative field rules applied at the HTTP
// boundary before a request reaches the journal core. A Schema is plain data
// (field name plus checks, evaluated in order) so the rules stay decoupled
// from both the entity types and the transport layer.
package validation

import "fmt"

// Error is a validation failure for a single field.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Checker inspects one value and returns a problem description, or "" when
// the value is acceptable.
type Checker func(value interface{}) string

// Field binds a name to its ordered checks.
type Field struct {
	Name   string
	Checks []Checker
}

// Schema is an ordered list of field rules.
type Schema []Field

// Validate runs the schema against the given values. Fields absent from the
// map are validated with a nil value, so Required still fires on them.
// Returns the first failure as *Error.
func (s Schema) Validate(values map[string]interface{}) error {
	for _, field := range s {
		value := values[field.Name]
		for _, check := range field.Checks {
			if msg := check(value); msg != "" {
				return &Error{Field: field.Name, Message: msg}
			}
		}
	}
	return nil
}

// NonEmpty requires a non-empty string.
func NonEmpty() Checker {
	return func(value interface{}) string {
		s, ok := value.(string)
		if !ok || s == "" {
			return "must be a non-empty string"
		}
		return ""
	}
}

// IntBetween requires an integer within [min, max].
func IntBetween(min, max int) Checker {
	return func(value interface{}) string {
		n, ok := value.(int)
		if !ok {
			return "must be a number"
		}
		if n < min || n > max {
			return fmt.Sprintf("must be between %d and %d", min, max)
		}
		return ""
	}
}

// MinInt requires an integer of at least min.
func MinInt(min int) Checker {
	return func(value interface{}) string {
		n, ok := value.(int)
		if !ok {
			return "must be a number"
		}
		if n < min {
			return fmt.Sprintf("must be at least %d", min)
		}
		return ""
	}
}

// OneOf requires the value to be one of the allowed strings.
func OneOf(allowed ...string) Checker {
	return func(value interface{}) string {
		s, ok := value.(string)
		if ok {
			for _, a := range allowed {
				if s == a {
					return ""
				}
			}
		}
		return fmt.Sprintf("must be one of %v", allowed)
	}
}

// Optional skips the wrapped check when the value is absent: nil, "" or 0.
func Optional(check Checker) Checker {
	return func(value interface{}) string {
		switch v := value.(type) {
		case nil:
			return ""
		case string:
			if v == "" {
				return ""
			}
		case int:
			if v == 0 {
				return ""
			}
		}
		return check(value)
	}
}
