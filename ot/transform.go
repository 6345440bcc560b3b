package ot

// Transform takes two operations a and b that were made concurrently on the
// same document and returns ap and bp such that
// apply(apply(s, a), bp) == apply(apply(s, b), ap). When both insert at the
// same position, a's text comes first.
func Transform(a, b *TextOp) (ap, bp *TextOp, err error) {
	ap, bp, err = transform(a, b)
	if err != nil {
		log.V(2).Info("transform failed", "a", a.String(), "b", b.String(), "err", err.Error())
		return nil, nil, err
	}
	log.V(4).Info("transformed", "base-len", a.baseLen, "a-target-len", ap.targetLen, "b-target-len", bp.targetLen)
	return ap, bp, nil
}

func transform(a, b *TextOp) (*TextOp, *TextOp, error) {
	if a.baseLen != b.baseLen {
		return nil, nil, newError("transform", "both operations have to have the same base length", ErrInvalidArgument)
	}

	ap, bp := New(), New()
	ops1, ops2 := newIterator(a), newIterator(b)
	op1, op2 := ops1.next(), ops2.next()

	// Both cursors always sit at the same position of the input string.
	for op1 != nil || op2 != nil {
		if ins, ok := op1.(Insert); ok {
			ap.Insert(string(ins))
			bp.Retain(ins.Len())
			op1 = ops1.next()
			continue
		}
		if ins, ok := op2.(Insert); ok {
			ap.Retain(ins.Len())
			bp.Insert(string(ins))
			op2 = ops2.next()
			continue
		}

		if op1 == nil {
			return nil, nil, newError("transform", "first operation is too short", ErrMalformed)
		}
		if op2 == nil {
			return nil, nil, newError("transform", "first operation is too long", ErrMalformed)
		}

		n := min(op1.Len(), op2.Len())
		switch op1.(type) {
		case Retain:
			switch op2.(type) {
			case Retain:
				ap.Retain(n)
				bp.Retain(n)
			case Delete:
				bp.Delete(n)
			default:
				return nil, nil, unreachable("transform", op1, op2)
			}
		case Delete:
			switch op2.(type) {
			case Retain:
				ap.Delete(n)
			case Delete:
				// Both deleted the same text.
			default:
				return nil, nil, unreachable("transform", op1, op2)
			}
		default:
			return nil, nil, unreachable("transform", op1, op2)
		}
		op1 = consume(op1, n, ops1)
		op2 = consume(op2, n, ops2)
	}

	return ap, bp, nil
}
