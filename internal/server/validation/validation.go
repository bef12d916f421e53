// Package validation schema-checks request bodies before any side effect.
// Each operation declares an ordered field schema; validation returns the
// first structural error found, with the offending field's path.
package validation

import (
	"fmt"
	"regexp"
)

// Kind enumerates the JSON value kinds the schemas distinguish.
type Kind int

const (
	String Kind = iota
	Number
	List
	Object
)

// Rule constrains a single field. For List rules, Elem describes each
// element; for Object rules, Elem describes the nested fields.
type Rule struct {
	Name     string
	Kind     Kind
	Required bool
	MinLen   int
	MaxLen   int
	Format   string // "email" is the only recognized format
	Elem     Schema
}

// Schema is an ordered list of field rules. Order determines which error is
// reported when several fields are invalid.
type Schema []Rule

// FieldError is the first structural problem found in a request body.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%q %s", e.Field, e.Reason)
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks body against the schema and returns the first violation,
// or nil when the body conforms. Unknown fields are ignored.
func (s Schema) Validate(body map[string]any) *FieldError {
	return s.validate("", body)
}

func (s Schema) validate(prefix string, body map[string]any) *FieldError {
	for _, r := range s {
		path := r.Name
		if prefix != "" {
			path = prefix + "." + r.Name
		}

		v, ok := body[r.Name]
		if !ok || v == nil {
			if r.Required {
				return &FieldError{Field: path, Reason: "is required"}
			}
			continue
		}

		if err := r.check(path, v); err != nil {
			return err
		}
	}
	return nil
}

func (r Rule) check(path string, v any) *FieldError {
	switch r.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return &FieldError{Field: path, Reason: "must be a string"}
		}
		if r.Required && s == "" {
			return &FieldError{Field: path, Reason: "is not allowed to be empty"}
		}
		if r.MinLen > 0 && len(s) < r.MinLen {
			return &FieldError{Field: path, Reason: fmt.Sprintf("length must be at least %d characters long", r.MinLen)}
		}
		if r.MaxLen > 0 && len(s) > r.MaxLen {
			return &FieldError{Field: path, Reason: fmt.Sprintf("length must be less than or equal to %d characters long", r.MaxLen)}
		}
		if r.Format == "email" && !emailRe.MatchString(s) {
			return &FieldError{Field: path, Reason: "must be a valid email"}
		}
	case Number:
		if _, ok := v.(float64); !ok {
			return &FieldError{Field: path, Reason: "must be a number"}
		}
	case List:
		items, ok := v.([]any)
		if !ok {
			return &FieldError{Field: path, Reason: "must be an array"}
		}
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return &FieldError{Field: fmt.Sprintf("%s[%d]", path, i), Reason: "must be an object"}
			}
			if err := r.Elem.validate(fmt.Sprintf("%s[%d]", path, i), m); err != nil {
				return err
			}
		}
	case Object:
		m, ok := v.(map[string]any)
		if !ok {
			return &FieldError{Field: path, Reason: "must be an object"}
		}
		if err := r.Elem.validate(path, m); err != nil {
			return err
		}
	}
	return nil
}
