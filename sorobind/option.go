package sorobind

import (
	"github.com/stellar/go/xdr"
)

// Option mirrors Soroban's Option<T>: None encodes as ScvVoid, Some as the
// bare value.
type Option[T any] struct {
	IsSome bool
	Value  T
}

// Some creates an Option holding a value.
func Some[T any](value T) Option[T] {
	return Option[T]{IsSome: true, Value: value}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the contained value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.IsSome
}

// EncodeOption serializes an Option using the given element encoder.
func EncodeOption[T any](o Option[T], encode func(T) (xdr.ScVal, error)) (xdr.ScVal, error) {
	if !o.IsSome {
		return Void(), nil
	}
	return encode(o.Value)
}

// DecodeOption deserializes an Option using the given element decoder. A void
// value decodes to None; anything else must decode as the element type.
func DecodeOption[T any](v xdr.ScVal, decode func(xdr.ScVal) (T, error)) (Option[T], error) {
	if v.Type == xdr.ScValTypeScvVoid {
		return None[T](), nil
	}
	value, err := decode(v)
	if err != nil {
		return None[T](), err
	}
	return Some(value), nil
}
