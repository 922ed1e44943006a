package ir

import "fmt"

type Type int

const (
	UndefinedType Type = iota
	ScalarType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		UndefinedType: "undefined",
		ScalarType:    "value",
		ObjectType:    "object",
		ArrayType:     "array",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType parses the text form of a Type.  "scalar" is accepted as an
// alias of "value".
func ParseType(v string) (Type, error) {
	tt, ok := map[string]Type{
		"undefined": UndefinedType,
		"value":     ScalarType,
		"scalar":    ScalarType,
		"object":    ObjectType,
		"array":     ArrayType,
	}[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadType, v)
	}
	return tt, nil
}

func Types() []Type {
	return []Type{
		UndefinedType,
		ScalarType,
		ObjectType,
		ArrayType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}

// KindOf classifies node.  A nil node is undefined.
func KindOf(node *Node) Type {
	if node == nil {
		return UndefinedType
	}
	return node.typ
}
