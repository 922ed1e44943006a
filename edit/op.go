package edit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/treedit/debug"
	"github.com/signadot/treedit/ir"
)

const (
	// DefaultText is the text of scalars created by AddProperty and by
	// ChangeType to "value".
	DefaultText = "newValue"
	// KeyPrefix prefixes the keys created by AddProperty.
	KeyPrefix = "key-"
)

// Op is one edit of a tree.  Apply never modifies doc.
type Op interface {
	Apply(doc *ir.Node) (*ir.Node, error)
	Path() ir.Path
	String() string
}

// Apply applies o to doc.  On failure doc remains the valid current tree
// and no result is returned.
func Apply(doc *ir.Node, o Op) (*ir.Node, error) {
	if debug.Op() {
		debug.Logf("op %s\n", o)
	}
	res, err := o.Apply(doc)
	if err != nil {
		if debug.Path() && errors.Is(err, ir.ErrInvalidPath) {
			debug.Logf("op %s failed on\n%v", o, doc)
		}
		return nil, fmt.Errorf("%s: %w", o, err)
	}
	return res, nil
}

type op struct {
	name Name
	path ir.Path
	args []string
}

func (o op) Path() ir.Path {
	return o.path
}

func (o op) String() string {
	buf := &strings.Builder{}
	buf.WriteString(o.name.String())
	buf.WriteByte(' ')
	buf.WriteString(quoteArg(o.path.String()))
	for _, a := range o.args {
		buf.WriteByte(' ')
		buf.WriteString(quoteArg(a))
	}
	return buf.String()
}

func quoteArg(a string) string {
	if a == "" || strings.ContainsAny(a, " \t\"#") || !strconv.CanBackquote(a) {
		return strconv.Quote(a)
	}
	return a
}

// Default returns a fresh value of kind t.
func Default(t ir.Type) *ir.Node {
	switch t {
	case ir.ScalarType:
		return ir.FromString(DefaultText)
	case ir.ObjectType:
		return ir.NewObject()
	case ir.ArrayType:
		return ir.NewArray()
	default:
		return ir.Undefined()
	}
}

func objectAt(doc *ir.Node, p ir.Path) (*ir.Node, error) {
	obj, err := ir.Resolve(doc, p)
	if err != nil {
		return nil, err
	}
	if obj.Type() != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotObject, p, obj.Type())
	}
	return obj, nil
}

// mapEntries rebuilds obj applying f to each entry in order.
func mapEntries(obj *ir.Node, f func(ir.KeyVal) (ir.KeyVal, error)) (*ir.Node, error) {
	kvs := obj.KeyVals()
	for i := range kvs {
		kv, err := f(kvs[i])
		if err != nil {
			return nil, err
		}
		kvs[i] = kv
	}
	return ir.FromKeyVals(kvs), nil
}

// mapValue rebuilds obj with the value under key replaced by f's result.
// A missing key leaves the entries as they are.
func mapValue(obj *ir.Node, key string, f func(*ir.Node) (*ir.Node, error)) (*ir.Node, error) {
	return mapEntries(obj, func(kv ir.KeyVal) (ir.KeyVal, error) {
		if kv.Key != key {
			return kv, nil
		}
		v, err := f(kv.Val)
		if err != nil {
			return kv, err
		}
		return ir.KeyVal{Key: kv.Key, Val: v}, nil
	})
}
