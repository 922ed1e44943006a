// Package edit is the path-addressed mutation engine.
//
// An Op targets the node at a path in a tree and computes a new tree
// reflecting one edit.  The input tree is never modified: every op ends in
// a call to SetAtPath, which rebuilds only the chain of nodes from the root
// down to the edited container and shares all other subtrees.
//
// The six ops, by script name:
//
//	add-prop    <path>                   append key-<n>: "newValue"
//	rename      <path> <key> <to>        rename a key in place
//	change-type <path> <key> <type>      reset a value to a default of type
//	set-text    <path> <key> <text>      set a value to a scalar
//	add-elem    <path> <key>             append {} to an array
//	remove-elem <path> <key> <index>     remove an array element
//
// <type> is one of undefined, value, object or array.  Ops can be built
// with their constructors (AddProperty, RenameProperty, ...), from a
// script line with ParseLine, or from a registered Symbol.
package edit
