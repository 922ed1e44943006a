package libdiff

import (
	"testing"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"
)

func TestMergePatch(t *testing.T) {
	from := mustParse(t, `{"a": "x", "b": {"c": "1", "d": "2"}, "e": ["1"]}`)
	to := mustParse(t, `{"a": "x", "b": {"c": "3"}, "e": ["1", "2"], "f": {}}`)
	patch, err := MergePatch(from, to)
	if err != nil {
		t.Fatal(err)
	}
	got := mustParse(t, string(patch))
	want := mustParse(t, `{"b": {"c": "3", "d": null}, "e": ["1", "2"], "f": {}}`)
	if !ir.Equal(got, want) {
		t.Errorf("patch %s", patch)
	}
	res, err := ApplyMergePatch(from, patch)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(res, to) {
		t.Errorf("applying patch gave %s", encode.MustString(res, encode.EncodeWire(true)))
	}
}

func TestApplyJSONPatch(t *testing.T) {
	doc := mustParse(t, `{"a": "x", "l": ["p"]}`)
	patch := []byte(`[
		{"op": "add", "path": "/l/-", "value": "q"},
		{"op": "replace", "path": "/a", "value": "y"},
		{"op": "add", "path": "/m", "value": {"k": null}}
	]`)
	res, err := ApplyJSONPatch(doc, patch)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":"y","l":["p","q"],"m":{"k":null}}`
	if got := encode.MustString(res, encode.EncodeWire(true)); got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if got := encode.MustString(doc, encode.EncodeWire(true)); got != `{"a":"x","l":["p"]}` {
		t.Errorf("input modified: %s", got)
	}
	if _, err := ApplyJSONPatch(doc, []byte(`[{"op": "remove", "path": "/nope"}]`)); err == nil {
		t.Errorf("expected error removing a missing key")
	}
	if _, err := ApplyJSONPatch(doc, []byte(`{`)); err == nil {
		t.Errorf("expected error decoding a bad patch")
	}
}
