// Package codec defines the serialization strategies the stock refresher
// backends use to turn authoritative payloads into cached values.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
