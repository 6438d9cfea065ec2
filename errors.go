package settings

import (
	"errors"
	"fmt"
)

// ErrOwnerCycle reports a loop in the ownership chain. A cycle is a
// configuration error: resolution stops instead of walking forever.
var ErrOwnerCycle = errors.New("settings: cycle in ownership chain")

// SerializationError is returned by Set when the value's Go type has no
// string form under the serialization contract (maps included).
type SerializationError struct {
	GoType string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("settings: unable to serialize %s into a setting", e.GoType)
}

// CoercionError is returned by Value accessors when the stored string cannot
// be coerced into the requested type. Err carries the parse/decode cause,
// if any.
type CoercionError struct {
	Raw    string
	Target string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("settings: cannot coerce %q to %s: %v", e.Raw, e.Target, e.Err)
	}
	return fmt.Sprintf("settings: cannot coerce %q to %s", e.Raw, e.Target)
}

func (e *CoercionError) Unwrap() error { return e.Err }
