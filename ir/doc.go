// Package ir provides the tree model edited by treedit.
//
// # Overview
//
// A document is a tree of *Node values.  Every node has one of four kinds
// (Type):
//
//   - UndefinedType: the undefined marker, distinct from a missing key
//   - ScalarType: a leaf text value
//   - ObjectType: an ordered mapping from unique string keys to nodes
//   - ArrayType: an ordered list of nodes
//
// Object key order is insertion order and is semantically visible: new
// keys append, and rebuilding an object keeps each surviving key in the
// slot of its first occurrence.
//
// # Immutability
//
// Nodes are immutable.  Their fields are unexported and every constructor
// copies its inputs, so once a tree is published no holder of a reference
// can change it.  Edits (see package edit) build new trees, and untouched
// subtrees are shared by reference between the old and new tree.
//
// # Creating Nodes
//
//	s := ir.FromString("hello")
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "key", Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.NewObject(), ir.Undefined()})
//
// # Paths
//
// A Path is a sequence of segments, each a field or an index.  The text
// form is JSONPath-like:
//
//	$              the root
//	$.a.b[0]       field a, field b, index 0
//	$.'a.b'[2]     field "a.b", index 2
//	$.''           the empty field
//
// Resolve follows a path through a tree and fails with ErrInvalidPath when
// a segment does not fit the node it is applied to.
//
// # Thread Safety
//
// Since nodes never change, trees may be read from any number of
// goroutines.
package ir
