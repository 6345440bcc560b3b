package ot

import "fmt"

// Operation is an edit that can be applied to a document. It is implemented by
// *TextOp and *Wrapped.
type Operation interface {
	Apply(s string) (string, error)
	BaseLen() int
	TargetLen() int
}

// MetaComposer is implemented by metadata that knows how to combine itself
// with the metadata of a following operation.
type MetaComposer interface {
	Compose(other any) any
}

// MetaMerger is consulted when metadata does not implement MetaComposer.
type MetaMerger interface {
	Merge(other any) any
}

// MetaTransformer is implemented by metadata that must change when its
// operation is transformed against a concurrent one, e.g. cursor positions.
// The argument is the concurrent operation before transformation.
type MetaTransformer interface {
	Transform(other *Wrapped) any
}

// Wrapped pairs an operation with arbitrary metadata that follows it through
// Compose and TransformWrapped. The wrapped operation may itself be a
// *Wrapped.
type Wrapped struct {
	Wrapped Operation
	Meta    any
}

// Wrap returns op with meta attached.
func Wrap(op Operation, meta any) *Wrapped {
	return &Wrapped{Wrapped: op, Meta: meta}
}

func (w *Wrapped) Apply(s string) (string, error) {
	return w.Wrapped.Apply(s)
}

func (w *Wrapped) BaseLen() int {
	return w.Wrapped.BaseLen()
}

func (w *Wrapped) TargetLen() int {
	return w.Wrapped.TargetLen()
}

func (w *Wrapped) String() string {
	return fmt.Sprintf("%v (meta %v)", w.Wrapped, w.Meta)
}

// Compose composes w with the operation that follows it. If w's metadata
// implements MetaComposer or MetaMerger it decides the new metadata, otherwise
// other's metadata wins.
func (w *Wrapped) Compose(other *Wrapped) (*Wrapped, error) {
	op, err := composeOperations(w.Wrapped, other.Wrapped)
	if err != nil {
		return nil, err
	}
	return &Wrapped{Wrapped: op, Meta: composeMeta(w.Meta, other.Meta)}, nil
}

// TransformWrapped transforms two concurrent wrapped operations. Metadata
// implementing MetaTransformer is transformed against the other original
// operation; other metadata is carried over as is.
func TransformWrapped(a, b *Wrapped) (ap, bp *Wrapped, err error) {
	opa, opb, err := transformOperations(a.Wrapped, b.Wrapped)
	if err != nil {
		return nil, nil, err
	}
	ap = &Wrapped{Wrapped: opa, Meta: transformMeta(a.Meta, b)}
	bp = &Wrapped{Wrapped: opb, Meta: transformMeta(b.Meta, a)}
	return ap, bp, nil
}

func composeMeta(meta, other any) any {
	switch m := meta.(type) {
	case MetaComposer:
		return m.Compose(other)
	case MetaMerger:
		return m.Merge(other)
	default:
		return other
	}
}

func transformMeta(meta any, other *Wrapped) any {
	if m, ok := meta.(MetaTransformer); ok {
		return m.Transform(other)
	}
	return meta
}

func composeOperations(a, b Operation) (Operation, error) {
	switch a := a.(type) {
	case *TextOp:
		if b, ok := b.(*TextOp); ok {
			c, err := a.Compose(b)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	case *Wrapped:
		if b, ok := b.(*Wrapped); ok {
			c, err := a.Compose(b)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	return nil, newError("compose", fmt.Sprintf("cannot compose %T with %T", a, b), ErrMalformed)
}

func transformOperations(a, b Operation) (Operation, Operation, error) {
	switch a := a.(type) {
	case *TextOp:
		if b, ok := b.(*TextOp); ok {
			ap, bp, err := Transform(a, b)
			if err != nil {
				return nil, nil, err
			}
			return ap, bp, nil
		}
	case *Wrapped:
		if b, ok := b.(*Wrapped); ok {
			ap, bp, err := TransformWrapped(a, b)
			if err != nil {
				return nil, nil, err
			}
			return ap, bp, nil
		}
	}
	return nil, nil, newError("transform", fmt.Sprintf("cannot transform %T against %T", a, b), ErrMalformed)
}
