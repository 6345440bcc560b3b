package ot

// iterator walks the primitives of a TextOp once. next returns nil when the
// primitives are exhausted.
type iterator struct {
	ops []Op
	i   int
}

func newIterator(t *TextOp) *iterator {
	return &iterator{ops: t.ops}
}

func (it *iterator) next() Op {
	if it.i >= len(it.ops) {
		return nil
	}
	op := it.ops[it.i]
	it.i++
	return op
}

// consume takes n characters off the front of op. It returns what is left of
// op, or the next primitive from it if op was used up.
func consume(op Op, n int, it *iterator) Op {
	switch op := op.(type) {
	case Retain:
		if int(op) > n {
			return op - Retain(n)
		}
	case Delete:
		if int(op) > n {
			return op - Delete(n)
		}
	case Insert:
		if _, rest := op.split(n); rest != "" {
			return rest
		}
	}
	return it.next()
}

// split splits op after n characters.
func (op Insert) split(n int) (Insert, Insert) {
	i := 0
	for pos := range string(op) {
		if i == n {
			return op[:pos], op[pos:]
		}
		i++
	}
	return op, ""
}
