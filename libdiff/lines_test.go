package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/format"
)

func TestUnified(t *testing.T) {
	a := mustParse(t, `{"a": "1", "b": "2"}`)
	b := mustParse(t, `{"a": "1", "b": "3"}`)
	got, err := Unified(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := `--- a
+++ b
@@ -1,4 +1,4 @@
 {
   "a": "1",
-  "b": "2"
+  "b": "3"
 }
`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	same, err := Unified(a, mustParse(t, `{"a": "1", "b": "2"}`))
	if err != nil {
		t.Fatal(err)
	}
	if same != "" {
		t.Errorf("expected empty diff, got\n%s", same)
	}
}

func TestLinesYAML(t *testing.T) {
	a := mustParse(t, `{"l": ["x"]}`)
	b := mustParse(t, `{"l": ["x", {}]}`)
	lines, err := Lines(a, b, encode.EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, ln := range lines {
		got = append(got, ln.String())
	}
	want := []string{
		" l:",
		`   - "x"`,
		"+  - {}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestHunks(t *testing.T) {
	lines := []Line{{Op: LineDelete, Text: "d"}}
	for range 8 {
		lines = append(lines, Line{Text: "e"})
	}
	lines = append(lines, Line{Op: LineInsert, Text: "i"})
	hunks := Hunks(lines, 1)
	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}
	var headers []string
	for i := range hunks {
		headers = append(headers, hunks[i].Header())
	}
	if diff := cmp.Diff([]string{"@@ -1,2 +1,1 @@", "@@ -9,1 +8,2 @@"}, headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
	if len(Hunks(lines, 4)) != 1 {
		t.Errorf("expected overlapping context to merge hunks")
	}
	if Hunks(lines[1:9], 3) != nil {
		t.Errorf("expected no hunks without changes")
	}
}
