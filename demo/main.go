// Command demo applies, composes or transforms text operations given on the
// command line and prints the results.
//
// Operations are read from JSON or YAML files holding the array form, e.g.
// [2, "ho", 2], or built from replace flags:
//
//	demo -mode transform -base hoge -a-from 3 -a-insert g -b-from 2 -b-insert o
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/yaml"

	"github.com/asadovsky/ottext/ot"
)

// clientMeta rides along with each client's operation: who made it, and where
// that client's cursor sits in the document the operation applies to.
type clientMeta struct {
	Author uuid.UUID
	Cursor int
}

func (m clientMeta) Transform(other *ot.Wrapped) any {
	op := other.Wrapped.(*ot.TextOp)
	return clientMeta{Author: m.Author, Cursor: op.TransformIndex(m.Cursor)}
}

// Compose keeps m: the composed operation applies to the same document as the
// first one.
func (m clientMeta) Compose(any) any {
	return m
}

type opFlags struct {
	file   string
	from   int
	delete int
	insert string
	author string
}

func (f *opFlags) bind(fs *flag.FlagSet, name string) {
	fs.StringVar(&f.file, name, "", fmt.Sprintf("File holding operation %s as a JSON or YAML array.", name))
	fs.IntVar(&f.from, name+"-from", 0, fmt.Sprintf("Offset of the replace performed by operation %s.", name))
	fs.IntVar(&f.delete, name+"-delete", 0, fmt.Sprintf("Number of characters operation %s deletes at the offset.", name))
	fs.StringVar(&f.insert, name+"-insert", "", fmt.Sprintf("Text operation %s inserts at the offset.", name))
	fs.StringVar(&f.author, name+"-author", "", fmt.Sprintf("UUID of the author of operation %s (random if empty).", name))
}

// load returns the operation described by f, wrapped with its author and the
// cursor position of the edit. doc is the document the operation applies to.
func (f *opFlags) load(doc string) (*ot.Wrapped, error) {
	var op *ot.TextOp
	cursor := 0
	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, err
		}
		op = ot.New()
		if err := yaml.Unmarshal(data, op); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.file, err)
		}
	} else {
		var err error
		op, err = ot.Replace(doc, ot.ReplaceRequest{From: f.from, Delete: f.delete, Insert: f.insert})
		if err != nil {
			return nil, err
		}
		cursor = f.from
	}

	author := uuid.New()
	if f.author != "" {
		var err error
		if author, err = uuid.Parse(f.author); err != nil {
			return nil, err
		}
	}
	return ot.Wrap(op, clientMeta{Author: author, Cursor: cursor}), nil
}

func marshalOrDie(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	var base, mode string
	var dump bool
	var a, b opFlags
	fs.StringVar(&base, "base", "", "The document the operations apply to.")
	fs.StringVar(&mode, "mode", "apply", "One of apply, compose or transform.")
	fs.BoolVar(&dump, "dump", false, "Dump the resulting operations.")
	a.bind(fs, "a")
	b.bind(fs, "b")

	opts := zap.Options{
		Development:     true,
		DestWriter:      os.Stderr,
		StacktraceLevel: zapcore.Level(3),
		TimeEncoder:     zapcore.RFC3339NanoTimeEncoder,
	}
	opts.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zap.New(zap.UseFlagOptions(&opts)).WithName("ottext")
	ot.SetLogger(logger)
	log := logger.WithName("demo")

	wa, err := a.load(base)
	if err != nil {
		return fmt.Errorf("operation a: %w", err)
	}
	log.V(1).Info("loaded operation", "name", "a", "op", wa.Wrapped)

	var results []*ot.Wrapped
	switch mode {
	case "apply":
		results, err = runApply(stdout, base, wa)
	case "compose":
		results, err = runCompose(stdout, log, base, wa, &b)
	case "transform":
		results, err = runTransform(stdout, log, base, wa, &b)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}

	if dump {
		fmt.Fprintln(stdout, litter.Options{HidePrivateFields: false}.Sdump(results))
	}
	return nil
}

func runApply(stdout io.Writer, base string, wa *ot.Wrapped) ([]*ot.Wrapped, error) {
	doc, err := wa.Apply(base)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "a: %s\n", marshalOrDie(wa.Wrapped))
	fmt.Fprintf(stdout, "result: %q\n", doc)
	return []*ot.Wrapped{wa}, nil
}

func runCompose(stdout io.Writer, log logr.Logger, base string, wa *ot.Wrapped, b *opFlags) ([]*ot.Wrapped, error) {
	mid, err := wa.Apply(base)
	if err != nil {
		return nil, err
	}
	wb, err := b.load(mid)
	if err != nil {
		return nil, fmt.Errorf("operation b: %w", err)
	}
	log.V(1).Info("loaded operation", "name", "b", "op", wb.Wrapped)

	c, err := wa.Compose(wb)
	if err != nil {
		return nil, err
	}
	doc, err := c.Apply(base)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "composed: %s\n", marshalOrDie(c.Wrapped))
	fmt.Fprintf(stdout, "result: %q\n", doc)
	fmt.Fprintf(stdout, "cursor: %d\n", c.Meta.(clientMeta).Cursor)
	return []*ot.Wrapped{c}, nil
}

func runTransform(stdout io.Writer, log logr.Logger, base string, wa *ot.Wrapped, b *opFlags) ([]*ot.Wrapped, error) {
	wb, err := b.load(base)
	if err != nil {
		return nil, fmt.Errorf("operation b: %w", err)
	}
	log.V(1).Info("loaded operation", "name", "b", "op", wb.Wrapped)

	ap, bp, err := ot.TransformWrapped(wa, wb)
	if err != nil {
		return nil, err
	}

	left, err := wa.Compose(bp)
	if err != nil {
		return nil, err
	}
	right, err := wb.Compose(ap)
	if err != nil {
		return nil, err
	}
	docA, err := left.Apply(base)
	if err != nil {
		return nil, err
	}
	docB, err := right.Apply(base)
	if err != nil {
		return nil, err
	}
	if docA != docB {
		return nil, errors.New("transformed operations did not converge")
	}

	fmt.Fprintf(stdout, "a': %s\n", marshalOrDie(ap.Wrapped))
	fmt.Fprintf(stdout, "b': %s\n", marshalOrDie(bp.Wrapped))
	fmt.Fprintf(stdout, "result: %q\n", docA)
	fmt.Fprintf(stdout, "cursor a: %d\n", ap.Meta.(clientMeta).Cursor)
	fmt.Fprintf(stdout, "cursor b: %d\n", bp.Meta.(clientMeta).Cursor)
	return []*ot.Wrapped{ap, bp}, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
