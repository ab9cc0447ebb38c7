package form

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Kind is the scalar type a field holds.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindChoice
	KindBool
)

// Values maps a field key to its current value. Text, number and choice
// fields hold strings (or numbers decoded from an envelope), bool fields
// hold a bool and stay nil until answered.
type Values map[string]any

// Field describes one input on a step.
type Field struct {
	Key   string
	Label string
	Kind  Kind

	// Options is the fixed option list of a choice field. OptionsFunc takes
	// precedence when the list depends on other answers.
	Options     []string
	OptionsFunc func(Values) []string

	Required bool
	// RequiredWhen makes the field conditionally required.
	RequiredWhen func(Values) bool
	// DependsOn lists keys whose change resets this field.
	DependsOn []string

	Check          func(string) bool
	MissingMessage string
	InvalidMessage string
}

// IsRequired reports whether the field must be filled given the other answers.
func (f Field) IsRequired(values Values) bool {
	if f.Required {
		return true
	}
	return f.RequiredWhen != nil && f.RequiredWhen(values)
}

// OptionsFor returns the selectable options for a choice field.
func (f Field) OptionsFor(values Values) []string {
	if f.OptionsFunc != nil {
		return f.OptionsFunc(values)
	}
	return f.Options
}

// Validate returns an error message for the field, or "" when the value is acceptable.
func (f Field) Validate(values Values) string {
	value := values[f.Key]
	if IsEmpty(value) {
		if f.IsRequired(values) {
			return f.MissingMessage
		}
		return ""
	}

	switch f.Kind {
	case KindBool:
		if _, ok := value.(bool); !ok {
			return f.InvalidMessage
		}
		return ""
	case KindChoice:
		if !slices.Contains(f.OptionsFor(values), AsString(value)) {
			return f.InvalidMessage
		}
	}

	if f.Check != nil && !f.Check(AsString(value)) {
		return f.InvalidMessage
	}
	return ""
}

func (f Field) zero() any {
	if f.Kind == KindBool {
		return nil
	}
	return ""
}

// IsEmpty reports whether a value counts as not filled in.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case json.Number:
		return v.String() == ""
	default:
		return false
	}
}

// AsString renders a field value the way validators and messages see it.
func AsString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Step is one screen of fields.
type Step struct {
	Title  string
	Fields []Field
}

// Validate collects error messages for every field on the step.
func (s Step) Validate(values Values) map[string]string {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		if msg := f.Validate(values); msg != "" {
			errs[f.Key] = msg
		}
	}
	return errs
}
