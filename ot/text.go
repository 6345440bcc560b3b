package ot

import (
	"iter"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// TextOp is an edit of a plain-text document, expressed as a sequence of
// Retain, Insert and Delete primitives. The primitives are kept in canonical
// form: adjacent primitives of the same kind are merged, an Insert next to a
// Delete always comes first, and zero-length primitives are never stored.
//
// A TextOp is built with Retain, Insert and Delete and must not be modified
// once handed to Compose, Transform or another goroutine. Lengths count
// Unicode code points.
type TextOp struct {
	ops       []Op
	baseLen   int
	targetLen int
}

// New returns an empty TextOp.
func New() *TextOp {
	return &TextOp{}
}

// BaseLen returns the length of documents the operation can be applied to.
func (t *TextOp) BaseLen() int {
	return t.baseLen
}

// TargetLen returns the length of the document after the operation is applied.
func (t *TextOp) TargetLen() int {
	return t.targetLen
}

// Ops returns a copy of the primitives.
func (t *TextOp) Ops() []Op {
	return slices.Clone(t.ops)
}

// All returns an iterator over the primitives.
func (t *TextOp) All() iter.Seq[Op] {
	return slices.Values(t.ops)
}

func (t *TextOp) at(i int) Op {
	if i < 0 || i >= len(t.ops) {
		return nil
	}
	return t.ops[i]
}

func checkCount(op string, n int) {
	if n < 0 {
		panic(newError(op, "negative count", ErrInvalidArgument))
	}
}

// Retain skips over n characters. It panics if n is negative.
func (t *TextOp) Retain(n int) *TextOp {
	checkCount("retain", n)
	if n == 0 {
		return t
	}
	t.baseLen += n
	t.targetLen += n
	if last, ok := t.at(len(t.ops) - 1).(Retain); ok {
		t.ops[len(t.ops)-1] = last + Retain(n)
	} else {
		t.ops = append(t.ops, Retain(n))
	}
	return t
}

// Insert inserts s at the current position.
func (t *TextOp) Insert(s string) *TextOp {
	if s == "" {
		return t
	}
	t.targetLen += utf8.RuneCountInString(s)
	n := len(t.ops)
	switch last := t.at(n - 1).(type) {
	case Insert:
		t.ops[n-1] = last + Insert(s)
	case Delete:
		// Insert-before-delete keeps operations with the same effect equal.
		if prev, ok := t.at(n - 2).(Insert); ok {
			t.ops[n-2] = prev + Insert(s)
		} else {
			t.ops = append(t.ops, last)
			t.ops[n-1] = Insert(s)
		}
	default:
		t.ops = append(t.ops, Insert(s))
	}
	return t
}

// Delete deletes n characters at the current position. It panics if n is
// negative.
func (t *TextOp) Delete(n int) *TextOp {
	checkCount("delete", n)
	if n == 0 {
		return t
	}
	t.baseLen += n
	if last, ok := t.at(len(t.ops) - 1).(Delete); ok {
		t.ops[len(t.ops)-1] = last + Delete(n)
	} else {
		t.ops = append(t.ops, Delete(n))
	}
	return t
}

// DeleteString deletes as many characters as s has.
func (t *TextOp) DeleteString(s string) *TextOp {
	return t.Delete(utf8.RuneCountInString(s))
}

// Append appends a single primitive using the same merge rules as Retain,
// Insert and Delete.
func (t *TextOp) Append(op Op) *TextOp {
	switch op := op.(type) {
	case Retain:
		return t.Retain(int(op))
	case Insert:
		return t.Insert(string(op))
	case Delete:
		return t.Delete(int(op))
	}
	return t
}

// appendDecoded appends a primitive read from untrusted input, failing
// instead of letting either length overflow.
func (t *TextOp) appendDecoded(op Op) error {
	n := op.Len()
	_, isInsert := op.(Insert)
	_, isDelete := op.(Delete)
	if (!isInsert && t.baseLen > math.MaxInt-n) || (!isDelete && t.targetLen > math.MaxInt-n) {
		return newError("decode", "operation length overflows int", ErrInvalidArgument)
	}
	t.Append(op)
	return nil
}

// IsNoop reports whether the operation leaves every document unchanged.
func (t *TextOp) IsNoop() bool {
	if len(t.ops) == 0 {
		return true
	}
	_, ok := t.ops[0].(Retain)
	return len(t.ops) == 1 && ok
}

// Equal reports whether t and other consist of the same primitives.
func (t *TextOp) Equal(other *TextOp) bool {
	return t.baseLen == other.baseLen &&
		t.targetLen == other.targetLen &&
		slices.Equal(t.ops, other.ops)
}

func (t *TextOp) String() string {
	strs := make([]string, 0, len(t.ops))
	for op := range t.All() {
		strs = append(strs, op.String())
	}
	return strings.Join(strs, ", ")
}

// Apply applies the operation to s and returns the result.
func (t *TextOp) Apply(s string) (string, error) {
	text := []rune(s)
	if len(text) != t.baseLen {
		return "", newError("apply", "the operation's base length must be equal to the string's length", ErrInvalidArgument)
	}
	var b strings.Builder
	pos := 0
	for _, op := range t.ops {
		switch op := op.(type) {
		case Retain:
			if pos+int(op) > len(text) {
				return "", newError("apply", "the operation didn't operate on the whole string", ErrInvalidArgument)
			}
			b.WriteString(string(text[pos : pos+int(op)]))
			pos += int(op)
		case Insert:
			b.WriteString(string(op))
		case Delete:
			pos += int(op)
		}
	}
	if pos != len(text) {
		return "", newError("apply", "the operation didn't operate on the whole string", ErrInvalidArgument)
	}
	return b.String(), nil
}

// Invert returns the operation that undoes t, given the document s that t
// was applied to.
func (t *TextOp) Invert(s string) (*TextOp, error) {
	text := []rune(s)
	if len(text) != t.baseLen {
		return nil, newError("invert", "the operation's base length must be equal to the string's length", ErrInvalidArgument)
	}
	inverse := New()
	pos := 0
	for _, op := range t.ops {
		switch op := op.(type) {
		case Retain:
			inverse.Retain(int(op))
			pos += int(op)
		case Insert:
			inverse.Delete(op.Len())
		case Delete:
			inverse.Insert(string(text[pos : pos+int(op)]))
			pos += int(op)
		}
	}
	return inverse, nil
}

// TransformIndex maps a character index in a document the operation applies
// to onto the same position in the resulting document. Text inserted at the
// index pushes it forward; an index inside a deleted range moves to the start
// of that range.
func (t *TextOp) TransformIndex(index int) int {
	newIndex := index
	for _, op := range t.ops {
		switch op := op.(type) {
		case Retain:
			index -= int(op)
		case Insert:
			newIndex += op.Len()
		case Delete:
			newIndex -= min(index, int(op))
			index -= int(op)
		}
		if index < 0 {
			break
		}
	}
	return newIndex
}
