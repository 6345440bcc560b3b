// Package ot implements operational transformation for plain text.
//
// An edit is a TextOp: a sequence of Retain, Insert and Delete primitives that
// walks over a document from start to end. Compose merges two consecutive
// edits into one. Transform takes two concurrent edits made on the same
// document and rewrites each so that it applies after the other; both orders
// of application produce the same document.
//
//	a, _ := ot.Replace("hoge", ot.ReplaceRequest{From: 3, Insert: "g"})
//	b, _ := ot.Replace("hoge", ot.ReplaceRequest{From: 2, Insert: "o"})
//	ap, bp, _ := ot.Transform(a, b)
//	// a then bp, and b then ap, both turn "hoge" into "hoogge".
//
// Wrapped attaches caller metadata to an edit and carries it through the same
// algebra. Metadata can opt into custom behavior by implementing MetaComposer,
// MetaMerger or MetaTransformer.
//
// All functions are pure: inputs are never modified and results are freshly
// allocated, so a finished TextOp can be shared between goroutines.
package ot
