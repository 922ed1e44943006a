// Package parse decodes JSON and YAML documents into ir trees.
//
// Key order is kept as written.  Since the tree model has no null, number
// or boolean kinds, null decodes to the undefined marker and numbers and
// booleans decode to scalars holding their text:
//
//	{"a": 1, "b": true, "c": null}
//
// yields an object with scalars "1" and "true" under a and b, and the
// undefined marker under c.
package parse
