package settings

import (
	"encoding/json"
	"strconv"
)

// Value is a resolved setting in its persisted string form. The zero Value
// is absent; accessors coerce on demand so a lookup carries no type until
// the caller picks one.
type Value struct {
	raw     string
	present bool
}

// NewValue wraps a raw serialized string as a present Value. Mostly useful
// in tests and when feeding caller-supplied defaults through Or.
func NewValue(raw string) Value {
	return Value{raw: raw, present: true}
}

// Exists reports whether the lookup resolved anywhere in the chain,
// including the built-in default table.
func (v Value) Exists() bool { return v.present }

// Raw returns the persisted string form, "" when absent.
func (v Value) Raw() string { return v.raw }

// Or substitutes a caller default for an absent Value. The default is a raw
// serialized string and flows through the same accessors as a stored value.
func (v Value) Or(raw string) Value {
	if v.present {
		return v
	}
	return Value{raw: raw, present: true}
}

// String returns the value as a plain string, "" when absent.
func (v Value) String() string { return v.raw }

// Bool reports whether the value equals the literal "True". Everything else
// ("true", "1", "", absent) is false. The convention is case sensitive.
func (v Value) Bool() bool { return v.present && v.raw == "True" }

// Int parses the value as a base-10 integer.
func (v Value) Int() (int64, error) {
	if !v.present {
		return 0, &CoercionError{Target: "int"}
	}
	n, err := strconv.ParseInt(v.raw, 10, 64)
	if err != nil {
		return 0, &CoercionError{Raw: v.raw, Target: "int", Err: err}
	}
	return n, nil
}

// Float parses the value as a float.
func (v Value) Float() (float64, error) {
	if !v.present {
		return 0, &CoercionError{Target: "float"}
	}
	f, err := strconv.ParseFloat(v.raw, 64)
	if err != nil {
		return 0, &CoercionError{Raw: v.raw, Target: "float", Err: err}
	}
	return f, nil
}

// Slice JSON-decodes the value into a []any.
func (v Value) Slice() ([]any, error) {
	var out []any
	if err := v.decode(&out, "list"); err != nil {
		return nil, err
	}
	return out, nil
}

// StringSlice JSON-decodes the value into a []string.
func (v Value) StringSlice() ([]string, error) {
	var out []string
	if err := v.decode(&out, "string list"); err != nil {
		return nil, err
	}
	return out, nil
}

func (v Value) decode(dst any, target string) error {
	if !v.present {
		return &CoercionError{Target: target}
	}
	if err := json.Unmarshal([]byte(v.raw), dst); err != nil {
		return &CoercionError{Raw: v.raw, Target: target, Err: err}
	}
	return nil
}
