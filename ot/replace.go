package ot

import (
	"fmt"
	"unicode/utf8"
)

// ReplaceRequest describes replacing part of a document: starting at From,
// delete Delete characters (or as many as DeleteText has, if Delete is zero)
// and insert Insert.
type ReplaceRequest struct {
	From       int
	Delete     int
	DeleteText string
	Insert     string
}

// Replace builds the operation that performs req on base.
func Replace(base string, req ReplaceRequest) (*TextOp, error) {
	baseLen := utf8.RuneCountInString(base)
	del := req.Delete
	if del == 0 {
		del = utf8.RuneCountInString(req.DeleteText)
	}
	if req.From < 0 || del < 0 || req.From+del > baseLen {
		return nil, newError("replace", fmt.Sprintf("range [%d, %d) out of bounds for length %d", req.From, req.From+del, baseLen), ErrInvalidArgument)
	}

	t := New()
	t.Retain(req.From)
	t.Delete(del)
	t.Insert(req.Insert)
	t.Retain(baseLen - req.From - del)
	return t, nil
}
