package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromKeyVals(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "b", Val: FromString("1")},
		{Key: "a", Val: nil},
		{Key: "b", Val: FromString("2")},
		{Key: "c", Val: NewArray()},
	})
	if diff := cmp.Diff([]string{"b", "a", "c"}, obj.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	b, ok := obj.Get("b")
	if !ok || b.Text() != "2" {
		t.Errorf("b: %v %v", b, ok)
	}
	a, _ := obj.Get("a")
	if a.Type() != UndefinedType {
		t.Errorf("nil value stored as %s", a.Type())
	}
	if _, ok := obj.Get("z"); ok {
		t.Errorf("unexpected z")
	}
	if obj.IndexOf("c") != 2 || obj.IndexOf("z") != -1 {
		t.Errorf("IndexOf")
	}
}

func TestAccessorsCopy(t *testing.T) {
	arr := FromSlice([]*Node{FromString("x"), nil})
	elts := arr.Elems()
	elts[0] = FromString("changed")
	if v, _ := arr.Index(0); v.Text() != "x" {
		t.Errorf("Elems aliases the node")
	}
	if v, _ := arr.Index(1); v != Undefined() {
		t.Errorf("nil element not undefined")
	}
	if _, ok := arr.Index(2); ok {
		t.Errorf("index out of range")
	}
	if _, ok := arr.Index(-1); ok {
		t.Errorf("negative index")
	}

	obj := FromKeyVals([]KeyVal{{Key: "k", Val: FromString("v")}})
	kvs := obj.KeyVals()
	kvs[0].Key = "changed"
	keys := obj.Keys()
	keys[0] = "changed"
	if obj.Key(0) != "k" {
		t.Errorf("KeyVals or Keys alias the node")
	}
	if _, ok := obj.Index(0); ok {
		t.Errorf("Index on object")
	}
	if arr.IndexOf("0") != -1 {
		t.Errorf("IndexOf on array")
	}
}

func TestIterators(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "x", Val: FromString("1")},
		{Key: "y", Val: FromString("2")},
		{Key: "z", Val: FromString("3")},
	})
	var got []string
	for k, v := range obj.Entries() {
		got = append(got, k+"="+v.Text())
		if k == "y" {
			break
		}
	}
	if diff := cmp.Diff([]string{"x=1", "y=2"}, got); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	got = nil
	for i, v := range FromSlice([]*Node{FromString("a"), FromString("b")}).Items() {
		got = append(got, string(rune('0'+i))+v.Text())
	}
	if diff := cmp.Diff([]string{"0a", "1b"}, got); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	for range obj.Items() {
		t.Errorf("Items on object yielded")
	}
}

func TestKinds(t *testing.T) {
	if KindOf(nil) != UndefinedType {
		t.Errorf("nil kind")
	}
	for _, typ := range Types() {
		d, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != typ {
			t.Errorf("%s round tripped to %s", typ, back)
		}
	}
	if typ, err := ParseType("scalar"); err != nil || typ != ScalarType {
		t.Errorf("scalar alias: %v %v", typ, err)
	}
	if _, err := ParseType("tuple"); !errors.Is(err, ErrBadType) {
		t.Errorf("expected ErrBadType, got %v", err)
	}
	if !UndefinedType.IsLeaf() || !ScalarType.IsLeaf() || ObjectType.IsLeaf() || ArrayType.IsLeaf() {
		t.Errorf("IsLeaf")
	}
}

func TestCompare(t *testing.T) {
	obj := func(kvs ...string) *Node {
		res := []KeyVal{}
		for i := 0; i < len(kvs); i += 2 {
			res = append(res, KeyVal{Key: kvs[i], Val: FromString(kvs[i+1])})
		}
		return FromKeyVals(res)
	}
	tests := []struct {
		a, b *Node
		want int
	}{
		{Undefined(), Undefined(), 0},
		{Undefined(), FromString(""), -1},
		{FromString("a"), FromString("b"), -1},
		{FromString("a"), NewObject(), -1},
		{NewObject(), NewArray(), -1},
		{obj("a", "1", "b", "2"), obj("a", "1", "b", "2"), 0},
		{obj("a", "1", "b", "2"), obj("b", "2", "a", "1"), -1},
		{obj("a", "1"), obj("a", "1", "b", "2"), -1},
		{obj("a", "2"), obj("a", "1"), 1},
		{FromSlice([]*Node{FromString("x")}), NewArray(), 1},
		{FromSlice([]*Node{NewObject()}), FromSlice([]*Node{NewObject()}), 0},
		{nil, Undefined(), -1},
	}
	for i, test := range tests {
		if got := Compare(test.a, test.b); got != test.want {
			t.Errorf("test %d: got %d want %d", i, got, test.want)
		}
		if got := Compare(test.b, test.a); got != -test.want {
			t.Errorf("test %d reversed: got %d want %d", i, got, -test.want)
		}
	}
	if !Equal(NewObject(), FromKeyVals(nil)) {
		t.Errorf("empty objects differ")
	}
}
