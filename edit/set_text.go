package edit

import (
	"fmt"

	"github.com/signadot/treedit/ir"
)

var setTextSym = &setTextSymbol{setTextName}

func SetTextSymbol() Symbol {
	return setTextSym
}

const (
	setTextName name = "set-text"
)

type setTextSymbol struct {
	name
}

func (s setTextSymbol) ArgNames() []string { return []string{"key", "text"} }

func (s setTextSymbol) Instance(p ir.Path, args []string) (Op, error) {
	if err := checkArgs(s, args); err != nil {
		return nil, err
	}
	return SetText(p, args[0], args[1]), nil
}

type setTextOp struct {
	op
	key, text string
}

// SetText sets the value under key in the object at p to a scalar holding
// text.  When the node at p is itself a scalar or undefined, key is
// ignored and that node is replaced.
func SetText(p ir.Path, key, text string) Op {
	return setTextOp{
		op:   op{name: setTextName, path: p, args: []string{key, text}},
		key:  key,
		text: text,
	}
}

func (o setTextOp) Apply(doc *ir.Node) (*ir.Node, error) {
	cur, err := ir.Resolve(doc, o.path)
	if err != nil {
		return nil, err
	}
	switch cur.Type() {
	case ir.ObjectType:
		res, err := mapValue(cur, o.key, func(*ir.Node) (*ir.Node, error) {
			return ir.FromString(o.text), nil
		})
		if err != nil {
			return nil, err
		}
		return SetAtPath(doc, o.path, res)
	case ir.ArrayType:
		return nil, fmt.Errorf("%w: %s is %s", ErrNotObject, o.path, cur.Type())
	default:
		return SetAtPath(doc, o.path, ir.FromString(o.text))
	}
}
