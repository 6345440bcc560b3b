package ot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// MarshalJSON encodes t as an array in which a positive integer is a retain, a
// string is an insert and a negative integer is a delete, e.g. [2,"ho",2].
func (t *TextOp) MarshalJSON() ([]byte, error) {
	vs := make([]any, 0, len(t.ops))
	for op := range t.All() {
		switch op := op.(type) {
		case Retain:
			vs = append(vs, int(op))
		case Insert:
			vs = append(vs, string(op))
		case Delete:
			vs = append(vs, -int(op))
		}
	}
	return json.Marshal(vs)
}

// UnmarshalJSON decodes the form written by MarshalJSON. The primitives are
// appended through the builder, so the result is canonical.
func (t *TextOp) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var vs []any
	if err := dec.Decode(&vs); err != nil {
		return newError("decode", "invalid operation JSON", fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return newError("decode", "trailing data after operation JSON", ErrInvalidArgument)
	}

	op := New()
	for _, v := range vs {
		var p Op
		switch v := v.(type) {
		case string:
			if v == "" {
				return newError("decode", "empty insert", ErrInvalidArgument)
			}
			p = Insert(v)
		case json.Number:
			n, err := v.Int64()
			if err != nil || n > math.MaxInt || n < -math.MaxInt {
				return newError("decode", fmt.Sprintf("invalid count %s", v), ErrInvalidArgument)
			}
			switch {
			case n > 0:
				p = Retain(n)
			case n < 0:
				p = Delete(-n)
			default:
				return newError("decode", "zero-length primitive", ErrInvalidArgument)
			}
		default:
			return newError("decode", fmt.Sprintf("unexpected element %v", v), ErrInvalidArgument)
		}
		if err := op.appendDecoded(p); err != nil {
			return err
		}
	}
	*t = *op
	return nil
}
