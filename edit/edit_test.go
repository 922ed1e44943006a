package edit

import (
	"errors"
	"strconv"
	"testing"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/parse"
)

type editTest struct {
	Doc   string
	Op    Op
	Res   string
	Error error
}

func mustParse(t *testing.T, doc string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse %s: %v", doc, err)
	}
	return node
}

func wire(node *ir.Node) string {
	return encode.MustString(node, encode.EncodeWire(true))
}

func TestApply(t *testing.T) {
	root := ir.Path{}
	tests := []editTest{
		{
			Doc: `{}`,
			Op:  AddProperty(root),
			Res: `{"key-0":"newValue"}`,
		},
		{
			Doc: `{"a":"x"}`,
			Op:  AddProperty(root),
			Res: `{"a":"x","key-1":"newValue"}`,
		},
		{
			Doc: `{"key-1":"x"}`,
			Op:  AddProperty(root),
			Res: `{"key-1":"newValue"}`,
		},
		{
			Doc: `{"key-0":"newValue"}`,
			Op:  ChangeType(root, "key-0", ir.ArrayType),
			Res: `{"key-0":[]}`,
		},
		{
			Doc: `{"a":[{"b":"c"}],"z":"1"}`,
			Op:  ChangeType(root, "a", ir.ObjectType),
			Res: `{"a":{},"z":"1"}`,
		},
		{
			Doc: `{"a":{},"z":"1"}`,
			Op:  ChangeType(root, "a", ir.UndefinedType),
			Res: `{"a":null,"z":"1"}`,
		},
		{
			Doc: `{"a":null}`,
			Op:  ChangeType(root, "a", ir.ScalarType),
			Res: `{"a":"newValue"}`,
		},
		{
			Doc: `{"a":"x"}`,
			Op:  ChangeType(root, "missing", ir.ArrayType),
			Res: `{"a":"x"}`,
		},
		{
			Doc: `{"key-0":[]}`,
			Op:  AddArrayElement(root, "key-0"),
			Res: `{"key-0":[{}]}`,
		},
		{
			Doc: `{"key-0":[{}]}`,
			Op:  AddArrayElement(root, "key-0"),
			Res: `{"key-0":[{},{}]}`,
		},
		{
			Doc: `{"key-0":[{"i":"0"},{"i":"1"}]}`,
			Op:  RemoveArrayElement(root, "key-0", 0),
			Res: `{"key-0":[{"i":"1"}]}`,
		},
		{
			Doc: `{"l":["a","b","c"]}`,
			Op:  RemoveArrayElement(root, "l", 1),
			Res: `{"l":["a","c"]}`,
		},
		{
			Doc: `{"l":["a","b"]}`,
			Op:  RemoveArrayElement(root, "l", 5),
			Res: `{"l":["a","b"]}`,
		},
		{
			Doc: `{"l":["a","b"]}`,
			Op:  RemoveArrayElement(root, "l", -1),
			Res: `{"l":["a","b"]}`,
		},
		{
			Doc:   `{"l":"a"}`,
			Op:    AddArrayElement(root, "l"),
			Error: ErrNotArray,
		},
		{
			Doc:   `{"l":{}}`,
			Op:    RemoveArrayElement(root, "l", 0),
			Error: ErrNotArray,
		},
		{
			Doc: `{"a":"x","b":"y"}`,
			Op:  RenameProperty(root, "a", "b"),
			Res: `{"b":"y"}`,
		},
		{
			Doc: `{"b":"y","a":"x"}`,
			Op:  RenameProperty(root, "a", "b"),
			Res: `{"b":"x"}`,
		},
		{
			Doc: `{"a":"1","b":"2","c":"3"}`,
			Op:  RenameProperty(root, "b", "z"),
			Res: `{"a":"1","z":"2","c":"3"}`,
		},
		{
			Doc: `{"a":"1"}`,
			Op:  RenameProperty(root, "a", ""),
			Res: `{"":"1"}`,
		},
		{
			Doc: `{"a":"1"}`,
			Op:  RenameProperty(root, "nope", "b"),
			Res: `{"a":"1"}`,
		},
		{
			Doc: `{"a":"1","b":"2"}`,
			Op:  SetText(root, "b", "hi there"),
			Res: `{"a":"1","b":"hi there"}`,
		},
		{
			Doc: `{"a":{}}`,
			Op:  SetText(root, "a", ""),
			Res: `{"a":""}`,
		},
		{
			Doc: `"hello"`,
			Op:  SetText(root, "", "world"),
			Res: `"world"`,
		},
		{
			Doc: `null`,
			Op:  SetText(root, "ignored", "v"),
			Res: `"v"`,
		},
		{
			Doc: `{"l":["a","b"]}`,
			Op:  SetText(ir.MustParsePath("$.l[1]"), "", "z"),
			Res: `{"l":["a","z"]}`,
		},
		{
			Doc: `{"o":{"s":"x"}}`,
			Op:  SetText(ir.MustParsePath("$.o.s"), "", "y"),
			Res: `{"o":{"s":"y"}}`,
		},
		{
			Doc:   `{"l":["a"]}`,
			Op:    SetText(ir.MustParsePath("$.l"), "0", "z"),
			Error: ErrNotObject,
		},
		{
			Doc: `{"a":{"b":{"c":"d"}},"e":"f"}`,
			Op:  AddProperty(ir.MustParsePath("$.a.b")),
			Res: `{"a":{"b":{"c":"d","key-1":"newValue"}},"e":"f"}`,
		},
		{
			Doc: `{"l":[{"x":"1"},{"x":"2"}]}`,
			Op:  RenameProperty(ir.MustParsePath("$.l[1]"), "x", "y"),
			Res: `{"l":[{"x":"1"},{"y":"2"}]}`,
		},
		{
			Doc:   `"hello"`,
			Op:    AddProperty(root),
			Error: ErrNotObject,
		},
		{
			Doc:   `[]`,
			Op:    RenameProperty(root, "a", "b"),
			Error: ErrNotObject,
		},
		{
			Doc:   `{"a":"x"}`,
			Op:    AddProperty(ir.MustParsePath("$.nope")),
			Error: ir.ErrInvalidPath,
		},
		{
			Doc:   `{"a":"x"}`,
			Op:    AddProperty(ir.MustParsePath("$.a.b")),
			Error: ir.ErrInvalidPath,
		},
		{
			Doc:   `{"l":[]}`,
			Op:    SetText(ir.MustParsePath("$.l[0]"), "", "x"),
			Error: ir.ErrInvalidPath,
		},
	}
	for i, test := range tests {
		doc := mustParse(t, test.Doc)
		before := wire(doc)
		res, err := Apply(doc, test.Op)
		if after := wire(doc); after != before {
			t.Errorf("test %d (%s): input modified: %s -> %s", i, test.Op, before, after)
		}
		if test.Error != nil {
			if !errors.Is(err, test.Error) {
				t.Errorf("test %d (%s): expected error %v, got %v", i, test.Op, test.Error, err)
			}
			if res != nil {
				t.Errorf("test %d (%s): expected no result on error", i, test.Op)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d (%s): %v", i, test.Op, err)
			continue
		}
		if got := wire(res); got != test.Res {
			t.Errorf("test %d (%s): got %s want %s", i, test.Op, got, test.Res)
		}
	}
}

func TestScenarioSequence(t *testing.T) {
	root := ir.Path{}
	doc := ir.NewObject()
	steps := []struct {
		op  Op
		res string
	}{
		{AddProperty(root), `{"key-0":"newValue"}`},
		{ChangeType(root, "key-0", ir.ArrayType), `{"key-0":[]}`},
		{AddArrayElement(root, "key-0"), `{"key-0":[{}]}`},
		{AddArrayElement(root, "key-0"), `{"key-0":[{},{}]}`},
		{AddProperty(ir.MustParsePath("$.key-0[1]")), `{"key-0":[{},{"key-0":"newValue"}]}`},
		{RemoveArrayElement(root, "key-0", 0), `{"key-0":[{"key-0":"newValue"}]}`},
	}
	snapshots := []*ir.Node{}
	for i, step := range steps {
		next, err := Apply(doc, step.op)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := wire(next); got != step.res {
			t.Fatalf("step %d: got %s want %s", i, got, step.res)
		}
		snapshots = append(snapshots, next)
		doc = next
	}
	for i, snap := range snapshots {
		if got := wire(snap); got != steps[i].res {
			t.Errorf("snapshot %d changed after later edits: %s", i, got)
		}
	}
}

func TestCopyOnPath(t *testing.T) {
	doc := mustParse(t, `{"a":{"b":{"c":"d"},"side":["x"]},"other":{"k":"v"}}`)
	res, err := Apply(doc, SetText(ir.MustParsePath("$.a.b"), "c", "e"))
	if err != nil {
		t.Fatal(err)
	}
	get := func(n *ir.Node, p string) *ir.Node {
		t.Helper()
		v, err := n.GetPath(p)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	for _, p := range []string{"$", "$.a", "$.a.b"} {
		if get(doc, p) == get(res, p) {
			t.Errorf("%s: expected a fresh node on the edited path", p)
		}
	}
	for _, p := range []string{"$.other", "$.a.side"} {
		if get(doc, p) != get(res, p) {
			t.Errorf("%s: expected untouched subtree to be shared", p)
		}
	}
	if got := get(doc, "$.a.b.c").Text(); got != "d" {
		t.Errorf("old tree changed: %q", got)
	}
}

func TestRemoveOutOfRangeIsFreshTree(t *testing.T) {
	doc := mustParse(t, `{"l":[{}]}`)
	res, err := Apply(doc, RemoveArrayElement(ir.Path{}, "l", 3))
	if err != nil {
		t.Fatal(err)
	}
	if res == doc {
		t.Errorf("expected a new tree")
	}
	if !ir.Equal(res, doc) {
		t.Errorf("expected equal trees, got %s", wire(res))
	}
}

func TestSetAtPath(t *testing.T) {
	doc := mustParse(t, `{"a":{"x":"1"},"l":["p","q"]}`)
	tests := []struct {
		path  string
		value *ir.Node
		res   string
		err   error
	}{
		{"$", ir.FromString("s"), `"s"`, nil},
		{"$.a", ir.FromKeyVals([]ir.KeyVal{{Key: "y", Val: ir.FromString("2")}}), `{"a":{"y":"2"},"l":["p","q"]}`, nil},
		{"$.a", ir.NewArray(), `{"a":[],"l":["p","q"]}`, nil},
		{"$.l[0]", ir.NewObject(), `{"a":{"x":"1"},"l":[{},"q"]}`, nil},
		{"$.l", ir.FromSlice([]*ir.Node{ir.Undefined()}), `{"a":{"x":"1"},"l":[null]}`, nil},
		{"$.a", nil, `{"a":null,"l":["p","q"]}`, nil},
		{"$", nil, "null", nil},
		{"$.l[2]", ir.NewObject(), "", ir.ErrInvalidPath},
		{"$.a.x.y", ir.NewObject(), "", ir.ErrInvalidPath},
	}
	for _, test := range tests {
		res, err := SetAtPath(doc, ir.MustParsePath(test.path), test.value)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("%s: expected %v got %v", test.path, test.err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", test.path, err)
			continue
		}
		if got := wire(res); got != test.res {
			t.Errorf("%s: got %s want %s", test.path, got, test.res)
		}
	}
	if got := wire(doc); got != `{"a":{"x":"1"},"l":["p","q"]}` {
		t.Errorf("input modified: %s", got)
	}
}

// checkUniqueKeys fails if any object in node repeats a key.
func checkUniqueKeys(t *testing.T, node *ir.Node) {
	t.Helper()
	err := node.Visit(func(p ir.Path, n *ir.Node) (bool, error) {
		if n.Type() != ir.ObjectType {
			return true, nil
		}
		seen := map[string]bool{}
		for _, k := range n.Keys() {
			if seen[k] {
				t.Errorf("%s: duplicate key %q", p, k)
			}
			seen[k] = true
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestInvariantsAcrossScript(t *testing.T) {
	root := ir.Path{}
	ops := []Op{
		AddProperty(root),
		AddProperty(root),
		AddProperty(root),
		RenameProperty(root, "key-0", "key-2"),
		AddProperty(root),
		ChangeType(root, "key-1", ir.ObjectType),
		AddProperty(ir.MustParsePath("$.key-1")),
		RenameProperty(root, "key-1", "key-2"),
		ChangeType(root, "key-2", ir.ArrayType),
		AddArrayElement(root, "key-2"),
		AddArrayElement(root, "key-2"),
		AddProperty(ir.MustParsePath("$.key-2[0]")),
		RemoveArrayElement(root, "key-2", 7),
		RemoveArrayElement(root, "key-2", 1),
		SetText(root, "key-2", "done"),
	}
	doc := ir.NewObject()
	for i, o := range ops {
		prevKeys := doc.Keys()
		next, err := Apply(doc, o)
		if err != nil {
			t.Fatalf("op %d %s: %v", i, o, err)
		}
		checkUniqueKeys(t, next)
		if _, ok := o.(addPropOp); ok {
			keys := next.Keys()
			if len(keys) > len(prevKeys) && keys[len(keys)-1] != KeyPrefix+strconv.Itoa(len(prevKeys)) {
				t.Errorf("op %d: add-prop did not append last: %v", i, keys)
			}
		}
		doc = next
	}
	if got := wire(doc); got != `{"key-2":"done"}` {
		t.Errorf("got %s", got)
	}
}
