package settings

// builtinDefaults is the process-wide default table, consulted only after
// the whole ownership chain failed to resolve a key. Values are stored in
// their serialized string form like any other setting.
var builtinDefaults = map[string]string{
	"user_mail_required":      "False",
	"max_items_per_order":     "10",
	"attendee_names_asked":    "True",
	"attendee_names_required": "False",
}

// Default returns the built-in default for key, if one exists. The table is
// read-only; there is no mutation API.
func Default(key string) (string, bool) {
	v, ok := builtinDefaults[key]
	return v, ok
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
