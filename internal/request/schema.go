package request

import (
	"fmt"
)

// FieldType enumerates the value types a response field may declare.
type FieldType string

// Supported field types.
const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeArray  FieldType = "array"
	TypeObject FieldType = "object"
)

// FieldSpec declares the contract for one response field.
type FieldSpec struct {
	Type     FieldType
	Required bool
	// Default fills the field when it is absent and not required.
	Default any
	// Min and Max bound numeric fields when set. Out-of-range values are a
	// schema violation, never clamped.
	Min *float64
	Max *float64
}

// ResponseSchema maps field names to their declared contracts.
type ResponseSchema map[string]FieldSpec

// Bounds is a convenience for numeric range constraints.
func Bounds(min, max float64) (*float64, *float64) {
	return &min, &max
}

// Format verifies raw against the schema and produces a new map containing
// exactly the schema's keys. Missing optional fields are filled with their
// declared default; undeclared fields are dropped. Format never mutates raw.
// Any violation returns a *Error with KindSchemaViolation naming the field.
func Format(raw map[string]any, schema ResponseSchema) (map[string]any, error) {
	if raw == nil {
		return nil, NewError(KindSchemaViolation, "response payload is empty", nil)
	}

	formatted := make(map[string]any, len(schema))
	for name, spec := range schema {
		value, present := raw[name]
		if !present || value == nil {
			if spec.Required {
				return nil, NewError(KindSchemaViolation,
					fmt.Sprintf("missing required field %q", name), nil)
			}
			formatted[name] = spec.Default
			continue
		}

		checked, err := checkField(name, value, spec)
		if err != nil {
			return nil, err
		}
		formatted[name] = checked
	}
	return formatted, nil
}

// checkField type-checks one present value against its spec.
func checkField(name string, value any, spec FieldSpec) (any, error) {
	switch spec.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, typeMismatch(name, spec.Type, value)
		}
		return s, nil

	case TypeNumber:
		n, ok := toFloat(value)
		if !ok {
			return nil, typeMismatch(name, spec.Type, value)
		}
		if spec.Min != nil && n < *spec.Min {
			return nil, NewError(KindSchemaViolation,
				fmt.Sprintf("field %q value %v is below minimum %v", name, n, *spec.Min), nil)
		}
		if spec.Max != nil && n > *spec.Max {
			return nil, NewError(KindSchemaViolation,
				fmt.Sprintf("field %q value %v exceeds maximum %v", name, n, *spec.Max), nil)
		}
		return n, nil

	case TypeArray:
		a, ok := value.([]any)
		if !ok {
			return nil, typeMismatch(name, spec.Type, value)
		}
		// Copy so formatted output never aliases caller-owned data.
		out := make([]any, len(a))
		copy(out, a)
		return out, nil

	case TypeObject:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, typeMismatch(name, spec.Type, value)
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil

	default:
		return nil, NewError(KindSchemaViolation,
			fmt.Sprintf("field %q declares unsupported type %q", name, spec.Type), nil)
	}
}

func typeMismatch(name string, want FieldType, got any) *Error {
	return NewError(KindSchemaViolation,
		fmt.Sprintf("field %q expected %s, got %T", name, want, got), nil)
}

// toFloat accepts the numeric representations a JSON decode can produce.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
