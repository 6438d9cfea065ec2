package settings

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Serialize converts a typed value into its persisted string form.
//
//	string            -> unchanged
//	bool              -> "True" / "False" (literal convention, see Value.Bool)
//	integers, floats  -> decimal form
//	slices, arrays    -> JSON
//	anything else     -> *SerializationError naming the Go type
//
// Maps are deliberately unsupported; structured settings are stored as JSON
// lists or pre-encoded strings.
func Serialize(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "True", nil
		}
		return "False", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	}

	if value != nil {
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(rv.Int(), 10), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(rv.Uint(), 10), nil
		case reflect.Slice, reflect.Array:
			b, err := json.Marshal(value)
			if err != nil {
				return "", &SerializationError{GoType: fmt.Sprintf("%T", value)}
			}
			return string(b), nil
		}
	}

	return "", &SerializationError{GoType: fmt.Sprintf("%T", value)}
}
