// Package codec provides pluggable blob codecs. The snapshot store uses a
// Codec over []store.Record; the redis store uses one per record.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
