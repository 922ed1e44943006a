package edit

import (
	"github.com/signadot/treedit/ir"
)

// SetAtPath returns a new tree in which the node at p is replaced by
// value.  Only the nodes from the root down to p are rebuilt; every other
// subtree of tree is shared with the result.
//
// When the node at p is a container of the same kind as value, the
// replacement is a fresh container holding value's entries in value's
// order.  Otherwise value takes the slot of the node at p in its parent,
// or becomes the new root when p is empty.  A nil value is Undefined.
func SetAtPath(tree *ir.Node, p ir.Path, value *ir.Node) (*ir.Node, error) {
	if value == nil {
		value = ir.Undefined()
	}
	cur, err := ir.Resolve(tree, p)
	if err != nil {
		return nil, err
	}
	if !cur.Type().IsLeaf() && cur.Type() == value.Type() {
		value = refill(value)
	}
	return replaceAt(tree, p, value), nil
}

func refill(value *ir.Node) *ir.Node {
	if value.Type() == ir.ObjectType {
		return ir.FromKeyVals(value.KeyVals())
	}
	return ir.FromSlice(value.Elems())
}

// replaceAt assumes p resolves in node.
func replaceAt(node *ir.Node, p ir.Path, value *ir.Node) *ir.Node {
	if len(p) == 0 {
		return value
	}
	seg := p[0]
	if seg.Field != nil {
		kvs := node.KeyVals()
		i := node.IndexOf(*seg.Field)
		kvs[i].Val = replaceAt(kvs[i].Val, p[1:], value)
		return ir.FromKeyVals(kvs)
	}
	elts := node.Elems()
	i := *seg.Index
	elts[i] = replaceAt(elts[i], p[1:], value)
	return ir.FromSlice(elts)
}
