package edit

import (
	"github.com/signadot/treedit/ir"
)

var renameSym = &renameSymbol{renameName}

func RenamePropertySymbol() Symbol {
	return renameSym
}

const (
	renameName name = "rename"
)

type renameSymbol struct {
	name
}

func (s renameSymbol) ArgNames() []string { return []string{"key", "to"} }

func (s renameSymbol) Instance(p ir.Path, args []string) (Op, error) {
	if err := checkArgs(s, args); err != nil {
		return nil, err
	}
	return RenameProperty(p, args[0], args[1]), nil
}

type renameOp struct {
	op
	from, to string
}

// RenameProperty renames key from to to in the object at p, keeping its
// slot.  If to names another existing key the entries collapse: the key
// keeps the first slot and the value of the later entry.
func RenameProperty(p ir.Path, from, to string) Op {
	return renameOp{
		op:   op{name: renameName, path: p, args: []string{from, to}},
		from: from,
		to:   to,
	}
}

func (o renameOp) Apply(doc *ir.Node) (*ir.Node, error) {
	obj, err := objectAt(doc, o.path)
	if err != nil {
		return nil, err
	}
	res, err := mapEntries(obj, func(kv ir.KeyVal) (ir.KeyVal, error) {
		if kv.Key == o.from {
			kv.Key = o.to
		}
		return kv, nil
	})
	if err != nil {
		return nil, err
	}
	return SetAtPath(doc, o.path, res)
}
