package call

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FieldType is the declared type of an operation input field.
type FieldType int

const (
	// FieldString accepts string values.
	FieldString FieldType = iota
	// FieldNumber accepts float64, int, or numeric strings.
	FieldNumber
	// FieldInt accepts int, whole float64, or integer strings.
	FieldInt
	// FieldBool accepts bool or "true"/"false" strings.
	FieldBool
)

// String returns the field type name.
func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldNumber:
		return "number"
	case FieldInt:
		return "int"
	case FieldBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Field declares one input field of an operation.
type Field struct {
	// Name is the input key.
	Name string
	// Type is the declared type; inputs are coerced to it.
	Type FieldType
	// Default is applied when an optional field is absent.
	Default any
}

// Operation is a named logical action against a provider.
type Operation struct {
	// Name identifies the operation (e.g., "create_product").
	Name string
	// Required are inputs the caller must supply.
	Required []Field
	// Optional are inputs with defaults.
	Optional []Field
	// Timeout overrides the provider's call timeout. Zero keeps it.
	Timeout time.Duration
	// Fallback declares what to return when the provider is
	// unconfigured, unreachable, or answers with an error.
	Fallback FallbackPolicy
}

// Inputs carries the caller-supplied arguments for one invocation.
type Inputs map[string]any

// String returns the named input as a string, or "" when absent.
func (in Inputs) String(name string) string {
	s, _ := in[name].(string)
	return s
}

// Number returns the named input as a float64, or 0 when absent.
func (in Inputs) Number(name string) float64 {
	switch v := in[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the named input as an int, or 0 when absent.
func (in Inputs) Int(name string) int {
	switch v := in[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns the named input as a bool, or false when absent.
func (in Inputs) Bool(name string) bool {
	b, _ := in[name].(bool)
	return b
}

// InputError reports a validation failure for a specific field.
type InputError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("input %q: %s", e.Field, e.Reason)
}

// ValidateInputs checks the caller-supplied inputs against the
// operation's declared fields and returns a coerced copy. Missing
// required fields and uncoercible values fail with an *InputError;
// no network I/O happens on that path.
func (op Operation) ValidateInputs(in Inputs) (Inputs, error) {
	out := make(Inputs, len(op.Required)+len(op.Optional))

	for _, f := range op.Required {
		raw, ok := in[f.Name]
		if !ok || raw == nil {
			return nil, &InputError{Field: f.Name, Reason: "required field missing"}
		}
		v, err := coerce(raw, f.Type)
		if err != nil {
			return nil, &InputError{Field: f.Name, Reason: err.Error()}
		}
		out[f.Name] = v
	}

	for _, f := range op.Optional {
		raw, ok := in[f.Name]
		if !ok || raw == nil {
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}
		v, err := coerce(raw, f.Type)
		if err != nil {
			return nil, &InputError{Field: f.Name, Reason: err.Error()}
		}
		out[f.Name] = v
	}

	return out, nil
}

// coerce converts a raw input value to the declared field type.
func coerce(raw any, t FieldType) (any, error) {
	switch t {
	case FieldString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected string, got %T", raw)

	case FieldNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", v)
			}
			return f, nil
		}
		return nil, fmt.Errorf("expected number, got %T", raw)

	case FieldInt:
		switch v := raw.(type) {
		case int:
			return v, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("%v is not a whole number", v)
			}
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%q is not an integer", v)
			}
			return n, nil
		}
		return nil, fmt.Errorf("expected int, got %T", raw)

	case FieldBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%q is not a bool", v)
			}
			return b, nil
		}
		return nil, fmt.Errorf("expected bool, got %T", raw)
	}

	return nil, fmt.Errorf("unknown field type %d", t)
}

// validateDescriptor checks an operation descriptor for construction-time
// bugs: empty names, duplicate fields, substitute policies without a
// value. These are programming errors and surface from Invoker
// construction, not from Invoke.
func (op Operation) validateDescriptor() error {
	if op.Name == "" {
		return fmt.Errorf("operation with empty name")
	}
	seen := map[string]struct{}{}
	for _, f := range append(append([]Field{}, op.Required...), op.Optional...) {
		if f.Name == "" {
			return fmt.Errorf("operation %q: field with empty name", op.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("operation %q: duplicate field %q", op.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	if err := op.Fallback.validate(); err != nil {
		return fmt.Errorf("operation %q: %w", op.Name, err)
	}
	return nil
}
