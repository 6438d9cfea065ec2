package settings

import (
	"github.com/ticketforge/settings/store"
)

// Options configure a Proxy. Owner and Store are required; others have
// sensible defaults.
type Options struct {
	// Required
	Owner store.Owner
	Store store.Store

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// New constructs a Proxy for one owner. Construction is cheap: the owner's
// records are loaded on first read or write, not here.
func New(opts Options) (*Proxy, error) {
	return newProxy(opts)
}
