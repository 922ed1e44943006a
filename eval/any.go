package eval

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/parse"
)

// ToAny converts node to plain Go values.
func ToAny(node *ir.Node) any {
	switch node.Type() {
	case ir.ObjectType:
		res := make(map[string]any, node.Len())
		for k, v := range node.Entries() {
			res[k] = ToAny(v)
		}
		return res
	case ir.ArrayType:
		res := make([]any, node.Len())
		for i, v := range node.Items() {
			res[i] = ToAny(v)
		}
		return res
	case ir.ScalarType:
		return node.Text()
	default:
		return nil
	}
}

// FromAny converts a plain Go value into a tree.  Map keys are sorted.
// Numbers and bools become scalars holding their text.  Values of other
// types are converted through their JSON encoding.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Undefined(), nil
	case *ir.Node:
		return x, nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromString(strconv.FormatBool(x)), nil
	case int:
		return ir.FromString(strconv.Itoa(x)), nil
	case int64:
		return ir.FromString(strconv.FormatInt(x, 10)), nil
	case float64:
		return ir.FromString(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case json.Number:
		return ir.FromString(x.String()), nil
	case []any:
		elts := make([]*ir.Node, len(x))
		for i, elt := range x {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			elts[i] = n
		}
		return ir.FromSlice(elts), nil
	case map[string]any:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: n})
		}
		return ir.FromKeyVals(kvs), nil
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d)
}
