// Package eval evaluates expr-lang expressions against trees.
//
// Expressions see the tree as the variable doc, in the plain Go form
// produced by ToAny: objects are map[string]any, arrays []any, scalars
// string and the undefined marker nil.  Since Go maps are unordered,
// expressions which care about key order use the keys function.
//
// Functions available to expressions, each taking a path such as
// "$.a[0]" (the leading "$" may be omitted):
//
//	get(path)    the value at path
//	has(path)    whether path resolves
//	kind(path)   one of "undefined", "value", "object", "array"
//	keys(path)   the keys of the object at path, in order
//	getenv(name) an environment variable
package eval
