package edit

import (
	"fmt"

	"github.com/signadot/treedit/ir"
)

var changeTypeSym = &changeTypeSymbol{changeTypeName}

func ChangeTypeSymbol() Symbol {
	return changeTypeSym
}

const (
	changeTypeName name = "change-type"
)

type changeTypeSymbol struct {
	name
}

func (s changeTypeSymbol) ArgNames() []string { return []string{"key", "type"} }

func (s changeTypeSymbol) Instance(p ir.Path, args []string) (Op, error) {
	if err := checkArgs(s, args); err != nil {
		return nil, err
	}
	t, err := ir.ParseType(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgs, err)
	}
	return ChangeType(p, args[0], t), nil
}

type changeTypeOp struct {
	op
	key string
	to  ir.Type
}

// ChangeType replaces the value under key in the object at p with
// Default(to).  The old value is discarded.
func ChangeType(p ir.Path, key string, to ir.Type) Op {
	return changeTypeOp{
		op:  op{name: changeTypeName, path: p, args: []string{key, to.String()}},
		key: key,
		to:  to,
	}
}

func (o changeTypeOp) Apply(doc *ir.Node) (*ir.Node, error) {
	obj, err := objectAt(doc, o.path)
	if err != nil {
		return nil, err
	}
	res, err := mapValue(obj, o.key, func(*ir.Node) (*ir.Node, error) {
		return Default(o.to), nil
	})
	if err != nil {
		return nil, err
	}
	return SetAtPath(doc, o.path, res)
}
