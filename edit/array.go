package edit

import (
	"fmt"
	"strconv"

	"github.com/signadot/treedit/ir"
)

var (
	addElemSym    = &addElemSymbol{addElemName}
	removeElemSym = &removeElemSymbol{removeElemName}
)

func AddArrayElementSymbol() Symbol {
	return addElemSym
}

func RemoveArrayElementSymbol() Symbol {
	return removeElemSym
}

const (
	addElemName    name = "add-elem"
	removeElemName name = "remove-elem"
)

type addElemSymbol struct {
	name
}

func (s addElemSymbol) ArgNames() []string { return []string{"key"} }

func (s addElemSymbol) Instance(p ir.Path, args []string) (Op, error) {
	if err := checkArgs(s, args); err != nil {
		return nil, err
	}
	return AddArrayElement(p, args[0]), nil
}

type removeElemSymbol struct {
	name
}

func (s removeElemSymbol) ArgNames() []string { return []string{"key", "index"} }

func (s removeElemSymbol) Instance(p ir.Path, args []string) (Op, error) {
	if err := checkArgs(s, args); err != nil {
		return nil, err
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: index %q: %w", ErrBadArgs, args[1], err)
	}
	return RemoveArrayElement(p, args[0], i), nil
}

type addElemOp struct {
	op
	key string
}

// AddArrayElement appends an empty object to the array under key in the
// object at p.
func AddArrayElement(p ir.Path, key string) Op {
	return addElemOp{
		op:  op{name: addElemName, path: p, args: []string{key}},
		key: key,
	}
}

func (o addElemOp) Apply(doc *ir.Node) (*ir.Node, error) {
	return applyToArray(doc, o.path, o.key, func(elts []*ir.Node) []*ir.Node {
		return append(elts, ir.NewObject())
	})
}

type removeElemOp struct {
	op
	key   string
	index int
}

// RemoveArrayElement removes element index from the array under key in
// the object at p.  An index out of range removes nothing.
func RemoveArrayElement(p ir.Path, key string, index int) Op {
	return removeElemOp{
		op:    op{name: removeElemName, path: p, args: []string{key, strconv.Itoa(index)}},
		key:   key,
		index: index,
	}
}

func (o removeElemOp) Apply(doc *ir.Node) (*ir.Node, error) {
	return applyToArray(doc, o.path, o.key, func(elts []*ir.Node) []*ir.Node {
		res := elts[:0]
		for i, elt := range elts {
			if i != o.index {
				res = append(res, elt)
			}
		}
		return res
	})
}

func applyToArray(doc *ir.Node, p ir.Path, key string, f func([]*ir.Node) []*ir.Node) (*ir.Node, error) {
	obj, err := objectAt(doc, p)
	if err != nil {
		return nil, err
	}
	res, err := mapValue(obj, key, func(v *ir.Node) (*ir.Node, error) {
		if v.Type() != ir.ArrayType {
			return nil, fmt.Errorf("%w: %s is %s", ErrNotArray, p.Field(key), v.Type())
		}
		return ir.FromSlice(f(v.Elems())), nil
	})
	if err != nil {
		return nil, err
	}
	return SetAtPath(doc, p, res)
}
