package ot

import "fmt"

// Compose merges t with the operation that follows it. See Compose.
func (t *TextOp) Compose(other *TextOp) (*TextOp, error) {
	return Compose(t, other)
}

// Compose merges two consecutive operations into one that preserves the
// changes of both: for every string s and operations a, b,
// apply(apply(s, a), b) == apply(s, Compose(a, b)). The target length of a
// must equal the base length of b.
func Compose(a, b *TextOp) (*TextOp, error) {
	c, err := compose(a, b)
	if err != nil {
		log.V(2).Info("compose failed", "a", a.String(), "b", b.String(), "err", err.Error())
		return nil, err
	}
	log.V(4).Info("composed", "base-len", c.baseLen, "target-len", c.targetLen, "ops", len(c.ops))
	return c, nil
}

func compose(a, b *TextOp) (*TextOp, error) {
	if a.targetLen != b.baseLen {
		return nil, newError("compose", "the base length of the second operation has to be the target length of the first operation", ErrInvalidArgument)
	}

	c := New()
	ops1, ops2 := newIterator(a), newIterator(b)
	op1, op2 := ops1.next(), ops2.next()

	for op1 != nil || op2 != nil {
		// Deletes in a and inserts in b pass through untouched.
		if d, ok := op1.(Delete); ok {
			c.Delete(int(d))
			op1 = ops1.next()
			continue
		}
		if ins, ok := op2.(Insert); ok {
			c.Insert(string(ins))
			op2 = ops2.next()
			continue
		}

		if op1 == nil {
			return nil, newError("compose", "first operation is too short", ErrMalformed)
		}
		if op2 == nil {
			return nil, newError("compose", "first operation is too long", ErrMalformed)
		}

		n := min(op1.Len(), op2.Len())
		switch o1 := op1.(type) {
		case Retain:
			switch op2.(type) {
			case Retain:
				c.Retain(n)
			case Delete:
				c.Delete(n)
			default:
				return nil, unreachable("compose", op1, op2)
			}
		case Insert:
			switch op2.(type) {
			case Retain:
				head, _ := o1.split(n)
				c.Insert(string(head))
			case Delete:
				// Inserted and then deleted again.
			default:
				return nil, unreachable("compose", op1, op2)
			}
		default:
			return nil, unreachable("compose", op1, op2)
		}
		op1 = consume(op1, n, ops1)
		op2 = consume(op2, n, ops2)
	}

	return c, nil
}

func unreachable(op string, op1, op2 Op) error {
	return newError(op, fmt.Sprintf("unexpected primitives %q and %q", op1.Encode(), op2.Encode()), ErrMalformed)
}
