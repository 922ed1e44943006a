package ir

import (
	"iter"
	"slices"
)

// Node is an immutable tree value.  Once constructed a Node is never
// modified, so subtrees may be shared freely between snapshots.
type Node struct {
	typ    Type
	text   string
	fields []string
	values []*Node
}

var undefined = &Node{typ: UndefinedType}

// Undefined returns the undefined marker.
func Undefined() *Node {
	return undefined
}

func FromString(v string) *Node {
	return &Node{typ: ScalarType, text: v}
}

func NewObject() *Node {
	return &Node{typ: ObjectType}
}

func NewArray() *Node {
	return &Node{typ: ArrayType}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object from kvs in order.  A key occurring more
// than once keeps the slot of its first occurrence and the value of its
// last.  Nil values are stored as Undefined.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		typ:    ObjectType,
		fields: make([]string, 0, len(kvs)),
		values: make([]*Node, 0, len(kvs)),
	}
	slots := make(map[string]int, len(kvs))
	for _, kv := range kvs {
		val := kv.Val
		if val == nil {
			val = undefined
		}
		if i, ok := slots[kv.Key]; ok {
			res.values[i] = val
			continue
		}
		slots[kv.Key] = len(res.fields)
		res.fields = append(res.fields, kv.Key)
		res.values = append(res.values, val)
	}
	return res
}

// FromSlice builds an array holding the nodes of vs.  Nil elements are
// stored as Undefined.
func FromSlice(vs []*Node) *Node {
	res := &Node{
		typ:    ArrayType,
		values: make([]*Node, len(vs)),
	}
	for i, v := range vs {
		if v == nil {
			v = undefined
		}
		res.values[i] = v
	}
	return res
}

func (y *Node) Type() Type {
	return y.typ
}

// Text returns the text of a scalar, and "" for other kinds.
func (y *Node) Text() string {
	return y.text
}

// Len returns the number of entries of an object or elements of an array.
func (y *Node) Len() int {
	return len(y.values)
}

// Key returns the i'th key of an object.
func (y *Node) Key(i int) string {
	return y.fields[i]
}

// At returns the i'th entry value of an object or the i'th element of an
// array.
func (y *Node) At(i int) *Node {
	return y.values[i]
}

// IndexOf returns the ordinal position of key in an object, or -1.
func (y *Node) IndexOf(key string) int {
	if y.typ != ObjectType {
		return -1
	}
	return slices.Index(y.fields, key)
}

// Get returns the value under key in an object.
func (y *Node) Get(key string) (*Node, bool) {
	i := y.IndexOf(key)
	if i == -1 {
		return nil, false
	}
	return y.values[i], true
}

// Index returns the i'th element of an array.
func (y *Node) Index(i int) (*Node, bool) {
	if y.typ != ArrayType || i < 0 || i >= len(y.values) {
		return nil, false
	}
	return y.values[i], true
}

func (y *Node) Keys() []string {
	return slices.Clone(y.fields)
}

func (y *Node) KeyVals() []KeyVal {
	res := make([]KeyVal, len(y.fields))
	for i, f := range y.fields {
		res[i] = KeyVal{Key: f, Val: y.values[i]}
	}
	return res
}

func (y *Node) Elems() []*Node {
	return slices.Clone(y.values)
}

func (y *Node) Entries() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for i, f := range y.fields {
			if !yield(f, y.values[i]) {
				return
			}
		}
	}
}

func (y *Node) Items() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if y.typ != ArrayType {
			return
		}
		for i, v := range y.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Visit calls f on y and its descendants in document order, passing the
// path of each node relative to y.  f returns whether to descend.
func (y *Node) Visit(f func(p Path, y *Node) (bool, error)) error {
	return y.visit(nil, f)
}

func (y *Node) visit(p Path, f func(Path, *Node) (bool, error)) error {
	dive, err := f(p, y)
	if err != nil {
		return err
	}
	if !dive {
		return nil
	}
	switch y.typ {
	case ObjectType:
		for i, yy := range y.values {
			if err := yy.visit(p.Field(y.fields[i]), f); err != nil {
				return err
			}
		}
	case ArrayType:
		for i, yy := range y.values {
			if err := yy.visit(p.Index(i), f); err != nil {
				return err
			}
		}
	}
	return nil
}
