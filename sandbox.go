package settings

import "context"

// Sandbox is a namespaced view over a Proxy. Every operation rewrites the
// requested key to "{type}_{key}_{item}" before delegating; the sandbox
// keeps no state of its own. Values pass through untyped, so the caller's
// requested coercion is always honored.
type Sandbox struct {
	typ   string
	key   string
	proxy *Proxy
}

// NewSandbox scopes access to proxy under the given scope type and sub-key,
// e.g. NewSandbox("plugin", "foo", p) maps "bar" to "plugin_foo_bar".
func NewSandbox(scopeType, key string, proxy *Proxy) *Sandbox {
	return &Sandbox{typ: scopeType, key: key, proxy: proxy}
}

func (s *Sandbox) convertKey(item string) string {
	return s.typ + "_" + s.key + "_" + item
}

// Get resolves the prefixed key through the underlying proxy.
func (s *Sandbox) Get(ctx context.Context, item string) (Value, error) {
	return s.proxy.Get(ctx, s.convertKey(item))
}

// Set writes the prefixed key through the underlying proxy.
func (s *Sandbox) Set(ctx context.Context, item string, value any) error {
	return s.proxy.Set(ctx, s.convertKey(item), value)
}

// Delete removes the prefixed key through the underlying proxy.
func (s *Sandbox) Delete(ctx context.Context, item string) error {
	return s.proxy.Delete(ctx, s.convertKey(item))
}
