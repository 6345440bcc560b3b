package ot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Op is a single primitive of a TextOp: Retain, Insert or Delete.
type Op interface {
	Encode() string
	String() string
	// Len returns the number of characters the primitive retains, inserts or
	// deletes.
	Len() int
	isOp()
}

// Retain keeps the next n characters of the input.
type Retain int

// Insert injects a string into the output without consuming input.
type Insert string

// Delete consumes n characters of the input and emits nothing.
type Delete int

func (Retain) isOp() {}
func (Insert) isOp() {}
func (Delete) isOp() {}

func (op Retain) Len() int { return int(op) }
func (op Insert) Len() int { return utf8.RuneCountInString(string(op)) }
func (op Delete) Len() int { return int(op) }

func (op Retain) Encode() string {
	return fmt.Sprintf("r,%d", int(op))
}

func (op Insert) Encode() string {
	return "i," + string(op)
}

func (op Delete) Encode() string {
	return fmt.Sprintf("d,%d", int(op))
}

func (op Retain) String() string {
	return fmt.Sprintf("retain %d", int(op))
}

func (op Insert) String() string {
	return fmt.Sprintf("insert '%s'", string(op))
}

func (op Delete) String() string {
	return fmt.Sprintf("delete %d", int(op))
}

// DecodeOp returns an Op given an encoded op.
func DecodeOp(s string) (Op, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) < 2 {
		return nil, newError("decode", fmt.Sprintf("failed to parse op %q", s), ErrInvalidArgument)
	}
	t := parts[0]
	switch t {
	case "i":
		if parts[1] == "" {
			return nil, newError("decode", fmt.Sprintf("empty insert %q", s), ErrInvalidArgument)
		}
		return Insert(parts[1]), nil
	case "r", "d":
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, newError("decode", fmt.Sprintf("failed to parse op %q", s), fmt.Errorf("%w: %w", ErrInvalidArgument, err))
		}
		if n <= 0 {
			return nil, newError("decode", fmt.Sprintf("non-positive count in %q", s), ErrInvalidArgument)
		}
		if t == "r" {
			return Retain(n), nil
		}
		return Delete(n), nil
	default:
		return nil, newError("decode", fmt.Sprintf("unknown op type %q", t), ErrInvalidArgument)
	}
}

func EncodeOps(ops []Op) []string {
	strs := make([]string, len(ops))
	for i, v := range ops {
		strs[i] = v.Encode()
	}
	return strs
}

// DecodeOps decodes strs and appends the ops to a new TextOp, so the result is
// in canonical form regardless of how the input was split.
func DecodeOps(strs []string) (*TextOp, error) {
	t := New()
	for _, v := range strs {
		op, err := DecodeOp(v)
		if err != nil {
			return nil, err
		}
		if err := t.appendDecoded(op); err != nil {
			return nil, err
		}
	}
	return t, nil
}
