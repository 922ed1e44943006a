package edit

import (
	"strconv"

	"github.com/signadot/treedit/ir"
)

var addPropSym = &addPropSymbol{addPropName}

func AddPropertySymbol() Symbol {
	return addPropSym
}

const (
	addPropName name = "add-prop"
)

type addPropSymbol struct {
	name
}

func (s addPropSymbol) ArgNames() []string { return nil }

func (s addPropSymbol) Instance(p ir.Path, args []string) (Op, error) {
	if err := checkArgs(s, args); err != nil {
		return nil, err
	}
	return AddProperty(p), nil
}

type addPropOp struct {
	op
}

// AddProperty appends the key "key-<n>", n being the object's current
// key count, holding DefaultText.  The counter is not monotonic: after
// removals or renames key-<n> may already exist, in which case its value
// is overwritten in place.
func AddProperty(p ir.Path) Op {
	return addPropOp{op: op{name: addPropName, path: p}}
}

func (o addPropOp) Apply(doc *ir.Node) (*ir.Node, error) {
	obj, err := objectAt(doc, o.path)
	if err != nil {
		return nil, err
	}
	kvs := append(obj.KeyVals(), ir.KeyVal{
		Key: KeyPrefix + strconv.Itoa(obj.Len()),
		Val: ir.FromString(DefaultText),
	})
	return SetAtPath(doc, o.path, ir.FromKeyVals(kvs))
}
