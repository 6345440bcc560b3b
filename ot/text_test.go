package ot_test

import (
	"errors"
	"slices"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	. "github.com/onsi/gomega"

	"github.com/asadovsky/ottext/ot"
)

func replace(t *testing.T, base string, req ot.ReplaceRequest) *ot.TextOp {
	t.Helper()
	op, err := ot.Replace(base, req)
	if err != nil {
		t.Fatal(err)
	}
	return op
}

func apply(t *testing.T, op ot.Operation, s string) string {
	t.Helper()
	res, err := op.Apply(s)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRetainMerges(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Retain(2).Retain(0).Retain(3)
	g.Expect(op.Ops()).To(Equal([]ot.Op{ot.Retain(5)}))
	g.Expect(op.BaseLen()).To(Equal(5))
	g.Expect(op.TargetLen()).To(Equal(5))
}

func TestInsertMerges(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Insert("fo").Insert("").Insert("o")
	g.Expect(op.Ops()).To(Equal([]ot.Op{ot.Insert("foo")}))
	g.Expect(op.BaseLen()).To(Equal(0))
	g.Expect(op.TargetLen()).To(Equal(3))
}

func TestDeleteMerges(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Delete(1).Delete(0).DeleteString("ab")
	g.Expect(op.Ops()).To(Equal([]ot.Op{ot.Delete(3)}))
	g.Expect(op.BaseLen()).To(Equal(3))
	g.Expect(op.TargetLen()).To(Equal(0))
}

func TestInsertBeforeDelete(t *testing.T) {
	g := NewWithT(t)

	op := ot.New().Retain(1).Delete(2).Insert("x")
	g.Expect(op.Ops()).To(Equal([]ot.Op{ot.Retain(1), ot.Insert("x"), ot.Delete(2)}))

	// A second insert joins the one already in front of the delete.
	op.Insert("y")
	g.Expect(op.Ops()).To(Equal([]ot.Op{ot.Retain(1), ot.Insert("xy"), ot.Delete(2)}))
	g.Expect(op.BaseLen()).To(Equal(3))
	g.Expect(op.TargetLen()).To(Equal(3))
}

func TestCanonicalForm(t *testing.T) {
	builds := []func() *ot.TextOp{
		func() *ot.TextOp { return ot.New().Retain(1).Insert("ab").Delete(2).Retain(1) },
		func() *ot.TextOp { return ot.New().Retain(1).Delete(2).Insert("ab").Retain(1) },
		func() *ot.TextOp { return ot.New().Retain(1).Delete(1).Insert("a").Delete(1).Insert("b").Retain(1) },
		func() *ot.TextOp { return ot.New().Retain(1).Insert("a").Delete(1).Insert("b").Delete(1).Retain(1) },
	}
	g := NewWithT(t)
	seen := mapset.NewSet[string]()
	first := builds[0]()
	for _, build := range builds {
		op := build()
		seen.Add(op.String())
		g.Expect(op.Equal(first)).To(BeTrue(), op.String())
		g.Expect(apply(t, op, "hoge")).To(Equal("habe"))
	}
	g.Expect(seen.Cardinality()).To(Equal(1))
}

func TestNegativeCountPanics(t *testing.T) {
	g := NewWithT(t)
	for _, f := range []func(){
		func() { ot.New().Retain(-1) },
		func() { ot.New().Delete(-1) },
	} {
		g.Expect(f).To(PanicWith(MatchError(ot.ErrInvalidArgument)))
	}
}

func TestIsNoop(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ot.New().IsNoop()).To(BeTrue())
	g.Expect(ot.New().Retain(4).IsNoop()).To(BeTrue())
	g.Expect(ot.New().Retain(2).Insert("x").IsNoop()).To(BeFalse())
	g.Expect(ot.New().Delete(1).IsNoop()).To(BeFalse())

	op := ot.New().Retain(4)
	g.Expect(apply(t, op, "hoge")).To(Equal("hoge"))
	g.Expect(apply(t, ot.New(), "")).To(Equal(""))
}

func TestString(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Retain(2).Insert("ho").Delete(1).Retain(1)
	g.Expect(op.String()).To(Equal("retain 2, insert 'ho', delete 1, retain 1"))
	g.Expect(ot.New().String()).To(Equal(""))
}

func TestAll(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Retain(2).Delete(1).Insert("ho").Retain(1)
	g.Expect(slices.Collect(op.All())).To(Equal([]ot.Op{ot.Retain(2), ot.Insert("ho"), ot.Delete(1), ot.Retain(1)}))
	g.Expect(slices.Collect(ot.New().All())).To(BeEmpty())

	var seen []ot.Op
	for p := range op.All() {
		seen = append(seen, p)
		if _, ok := p.(ot.Insert); ok {
			break
		}
	}
	g.Expect(seen).To(Equal([]ot.Op{ot.Retain(2), ot.Insert("ho")}))
}

func TestApply(t *testing.T) {
	g := NewWithT(t)
	op := replace(t, "hoge", ot.ReplaceRequest{From: 2, Insert: "ho"})
	g.Expect(op.Ops()).To(Equal([]ot.Op{ot.Retain(2), ot.Insert("ho"), ot.Retain(2)}))
	g.Expect(apply(t, op, "hoge")).To(Equal("hohoge"))

	op = ot.New().Delete(3).Insert("base").Retain(3).Insert("ball").Delete(0)
	g.Expect(apply(t, op, "foobar")).To(Equal("basebarball"))
}

func TestApplyCountsRunes(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Retain(1).Insert("ü").Delete(1).Retain(1)
	g.Expect(op.BaseLen()).To(Equal(3))
	g.Expect(op.TargetLen()).To(Equal(3))
	g.Expect(apply(t, op, "aéb")).To(Equal("aüb"))
}

func TestApplyLengthMismatch(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Retain(2).Insert("x")
	for _, s := range []string{"", "a", "abc"} {
		_, err := op.Apply(s)
		g.Expect(err).To(MatchError(ot.ErrInvalidArgument))
		var oerr *ot.Error
		g.Expect(errors.As(err, &oerr)).To(BeTrue())
		g.Expect(oerr.Op).To(Equal("apply"))
	}
}

func TestInvert(t *testing.T) {
	g := NewWithT(t)
	op := ot.New().Retain(1).Insert("xy").Delete(2).Retain(1)
	inv, err := op.Invert("hoge")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(inv.Ops()).To(Equal([]ot.Op{ot.Retain(1), ot.Insert("og"), ot.Delete(2), ot.Retain(1)}))
	g.Expect(apply(t, inv, apply(t, op, "hoge"))).To(Equal("hoge"))

	_, err = op.Invert("hog")
	g.Expect(err).To(MatchError(ot.ErrInvalidArgument))
}

func TestTransformIndex(t *testing.T) {
	g := NewWithT(t)
	// "hoge" -> "hXoe": insert X at 1, delete "g".
	op := ot.New().Retain(1).Insert("X").Retain(1).Delete(1).Retain(1)
	run := func(index, want int) {
		g.Expect(op.TransformIndex(index)).To(Equal(want), "index %d", index)
	}
	run(0, 0)
	run(1, 2)
	run(2, 3)
	run(3, 3)
	run(4, 4)
}

func TestReplace(t *testing.T) {
	g := NewWithT(t)
	run := func(base string, req ot.ReplaceRequest, want []ot.Op, out string) {
		op := replace(t, base, req)
		g.Expect(op.Ops()).To(Equal(want))
		g.Expect(apply(t, op, base)).To(Equal(out))
	}
	run("hoge", ot.ReplaceRequest{From: 0, Insert: "a"}, []ot.Op{ot.Insert("a"), ot.Retain(4)}, "ahoge")
	run("hoge", ot.ReplaceRequest{From: 4, Insert: "a"}, []ot.Op{ot.Retain(4), ot.Insert("a")}, "hogea")
	run("hohoge", ot.ReplaceRequest{From: 3, DeleteText: "o", Insert: "i"},
		[]ot.Op{ot.Retain(3), ot.Insert("i"), ot.Delete(1), ot.Retain(2)}, "hohige")
	run("hoge", ot.ReplaceRequest{From: 1, Delete: 3}, []ot.Op{ot.Retain(1), ot.Delete(3)}, "h")
	run("", ot.ReplaceRequest{}, nil, "")

	for _, req := range []ot.ReplaceRequest{
		{From: -1},
		{From: 5},
		{From: 2, Delete: 3},
		{From: 0, DeleteText: "hogehoge"},
	} {
		_, err := ot.Replace("hoge", req)
		g.Expect(err).To(MatchError(ot.ErrInvalidArgument), "%+v", req)
	}
}
