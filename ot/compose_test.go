package ot_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/asadovsky/ottext/ot"
)

func TestCompose(t *testing.T) {
	g := NewWithT(t)
	op1 := replace(t, "hoge", ot.ReplaceRequest{From: 2, Insert: "ho"})
	op2 := replace(t, "hohoge", ot.ReplaceRequest{From: 3, DeleteText: "o", Insert: "i"})

	c, err := op1.Compose(op2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c.Ops()).To(Equal([]ot.Op{ot.Retain(2), ot.Insert("hi"), ot.Retain(2)}))
	g.Expect(c.BaseLen()).To(Equal(4))
	g.Expect(c.TargetLen()).To(Equal(6))
	g.Expect(apply(t, c, "hoge")).To(Equal("hohige"))

	// The inputs are left untouched.
	g.Expect(op1.String()).To(Equal("retain 2, insert 'ho', retain 2"))
	g.Expect(op2.String()).To(Equal("retain 3, insert 'i', delete 1, retain 2"))
}

func TestComposeCases(t *testing.T) {
	g := NewWithT(t)
	run := func(base string, a, b *ot.TextOp, want []ot.Op) {
		c, err := ot.Compose(a, b)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(c.Ops()).To(Equal(want), "%v + %v", a, b)
		g.Expect(apply(t, c, base)).To(Equal(apply(t, b, apply(t, a, base))))
	}

	// Insert then delete the inserted text.
	run("ab", ot.New().Retain(1).Insert("xyz").Retain(1), ot.New().Retain(1).Delete(3).Retain(1),
		[]ot.Op{ot.Retain(2)})
	// Delete part of an insert.
	run("ab", ot.New().Retain(1).Insert("xyz").Retain(1), ot.New().Retain(2).Delete(1).Retain(2),
		[]ot.Op{ot.Retain(1), ot.Insert("xz"), ot.Retain(1)})
	// Deletes in the first operation pass through.
	run("abcd", ot.New().Delete(2).Retain(2), ot.New().Delete(1).Retain(1),
		[]ot.Op{ot.Delete(3), ot.Retain(1)})
	// Inserts in the second operation pass through.
	run("ab", ot.New().Retain(2), ot.New().Insert("x").Retain(2).Insert("y"),
		[]ot.Op{ot.Insert("x"), ot.Retain(2), ot.Insert("y")})
	// Retain of an insert keeps it, split by rune.
	run("", ot.New().Insert("äöü"), ot.New().Retain(1).Delete(1).Retain(1),
		[]ot.Op{ot.Insert("äü")})
	// Noops.
	run("", ot.New(), ot.New(), nil)
	run("ab", ot.New().Retain(2), ot.New().Retain(2), []ot.Op{ot.Retain(2)})
}

func TestComposeLengthMismatch(t *testing.T) {
	g := NewWithT(t)
	_, err := ot.Compose(ot.New().Retain(2), ot.New().Retain(3))
	g.Expect(err).To(MatchError(ot.ErrInvalidArgument))
	g.Expect(err.Error()).To(ContainSubstring("compose"))
}
