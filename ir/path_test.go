package ir_test

import (
	"errors"
	"testing"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/parse"
)

type pathTest struct {
	Path    string
	Doc     string
	Res     string
	Invalid bool
}

var pathTests = []pathTest{
	{
		Path: "$",
		Doc:  "null",
		Res:  "null",
	},
	{
		Path: "$.f",
		Doc:  `{"f": 1}`,
		Res:  `"1"`,
	},
	{
		Path: "$[0]",
		Doc:  "[1,2,3]",
		Res:  `"1"`,
	},
	{
		Path: "$",
		Doc:  "[1,2,3]",
		Res:  "[\n  \"1\",\n  \"2\",\n  \"3\"\n]",
	},
	{
		Path: "$[1].f",
		Doc:  `[0, {"f": 2, "g": 3}]`,
		Res:  `"2"`,
	},
	{
		Path: "$.f[3]",
		Doc:  `{"a": [1,2], "f": [0,1,2,"three"]}`,
		Res:  `"three"`,
	},
	{
		Path: "$.'f[3]'[2]",
		Doc:  `{"a": [1,2], "f[3]": [0,1,2,"three"]}`,
		Res:  `"2"`,
	},
	{
		Path: "$.'$f[\\'3]'[2]",
		Doc:  `{"a": [1,2], "$f['3]": [0,1,2,"three"]}`,
		Res:  `"2"`,
	},
	{
		Path: "$.''",
		Doc:  `{"": "empty"}`,
		Res:  `"empty"`,
	},
	{
		Path: "$.'a b'.c",
		Doc:  `{"a b": {"c": true}}`,
		Res:  `"true"`,
	},
	{
		Path:    "$.g",
		Doc:     `{"f": 1}`,
		Invalid: true,
	},
	{
		Path:    "$[3]",
		Doc:     "[1,2,3]",
		Invalid: true,
	},
	{
		Path:    "$.f",
		Doc:     "[1,2,3]",
		Invalid: true,
	},
	{
		Path:    "$[0]",
		Doc:     `{"0": 1}`,
		Invalid: true,
	},
	{
		Path:    "$.f.g",
		Doc:     `{"f": "x"}`,
		Invalid: true,
	},
}

func TestPathGet(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		node, err := parse.Parse([]byte(pathTest.Doc))
		if err != nil {
			t.Errorf("# doc\n%s\n---\n# %v\n", pathTest.Doc, err)
			continue
		}
		res, err := node.GetPath(pathTest.Path)
		if pathTest.Invalid {
			if !errors.Is(err, ir.ErrInvalidPath) {
				t.Errorf("%s on %s: expected invalid path, got %v", pathTest.Path, pathTest.Doc, err)
			}
			continue
		}
		if err != nil {
			t.Error(err)
			continue
		}
		pp, err := ir.ParsePath(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if pp.String() != pathTest.Path {
			t.Errorf("path %q printed as %q", pathTest.Path, pp.String())
		}
		out := encode.MustString(res)
		if out != pathTest.Res {
			t.Errorf("got %q want %q", out, pathTest.Res)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{
		"",
		"a.b",
		"$.",
		"$..a",
		"$[",
		"$[-1]",
		"$[x]",
		"$[1",
		"$.'open",
		"$a",
		"$.a[0]b",
	} {
		_, err := ir.ParsePath(p)
		if !errors.Is(err, ir.ErrBadPath) {
			t.Errorf("%q: expected ErrBadPath, got %v", p, err)
		}
	}
}

func TestPathBuild(t *testing.T) {
	root := ir.Path{}
	if root.String() != "$" {
		t.Errorf("root printed as %q", root)
	}
	p := root.Field("a").Index(2).Field("b.c")
	if got := p.String(); got != "$.a[2].'b.c'" {
		t.Errorf("got %q", got)
	}
	// extending a parent must not clobber a sibling built from it
	parent := p.Parent()
	left := parent.Field("left")
	right := parent.Field("right")
	if left.String() != "$.a[2].left" || right.String() != "$.a[2].right" {
		t.Errorf("siblings %s %s", left, right)
	}
	if !p.Equal(ir.MustParsePath(p.String())) {
		t.Errorf("%s does not reparse", p)
	}
	if last, ok := p.Last(); !ok || !last.IsField() || *last.Field != "b.c" {
		t.Errorf("last segment %v", last)
	}
	if _, ok := root.Last(); ok {
		t.Errorf("root has no last segment")
	}
	if len(root.Parent()) != 0 {
		t.Errorf("parent of root should be root")
	}
	var q ir.Path
	if err := q.UnmarshalText([]byte("$.x[0]")); err != nil {
		t.Fatal(err)
	}
	if d, _ := q.MarshalText(); string(d) != "$.x[0]" {
		t.Errorf("text round trip gave %s", d)
	}
}

func TestVisit(t *testing.T) {
	node, err := parse.Parse([]byte(`{"a": [1, {"b": null}], "c": "d"}`))
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	err = node.Visit(func(p ir.Path, y *ir.Node) (bool, error) {
		paths = append(paths, p.String()+" "+y.Type().String())
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"$ object",
		"$.a array",
		"$.a[0] value",
		"$.a[1] object",
		"$.a[1].b undefined",
		"$.c value",
	}
	if len(paths) != len(want) {
		t.Fatalf("got %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("visit %d: got %q want %q", i, paths[i], want[i])
		}
	}
}
