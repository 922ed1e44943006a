package libdiff

import (
	"fmt"
	"strings"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Changed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

// Change is one difference between two trees.  Removed and Changed paths
// address the old tree, Added paths address the new one.
type Change struct {
	Kind ChangeKind
	Path ir.Path
	From *ir.Node
	To   *ir.Node
}

func (c Change) String() string {
	wire := encode.EncodeWire(true)
	switch c.Kind {
	case Added:
		return fmt.Sprintf("%s %s: %s", c.Kind, c.Path, encode.MustString(c.To, wire))
	case Removed:
		return fmt.Sprintf("%s %s: %s", c.Kind, c.Path, encode.MustString(c.From, wire))
	default:
		return fmt.Sprintf("%s %s: %s -> %s", c.Kind, c.Path,
			encode.MustString(c.From, wire), encode.MustString(c.To, wire))
	}
}

// Diff lists the changes taking from to to, in document order.  Object
// entries are aligned by key and array elements by a summary of their
// values, so an insertion in the middle of an array is reported as one
// Added change rather than a change of every following element.
func Diff(from, to *ir.Node) []Change {
	return diff(nil, from, to, nil)
}

func diff(p ir.Path, from, to *ir.Node, res []Change) []Change {
	if ir.Equal(from, to) {
		return res
	}
	if from.Type() != to.Type() || from.Type().IsLeaf() {
		return append(res, Change{Kind: Changed, Path: p, From: from, To: to})
	}
	if from.Type() == ir.ObjectType {
		return diffObject(p, from, to, res)
	}
	return diffArray(p, from, to, res)
}

// objects are aligned on the sequence of their keys.
func diffObject(p ir.Path, from, to *ir.Node, res []Change) []Change {
	fieldMap := map[string]rune{}
	fromRunes := mapFields(fieldMap, from)
	toRunes := mapFields(fieldMap, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		for range []rune(d.Text) {
			switch d.Type {
			case diffpatch.DiffDelete:
				res = append(res, Change{Kind: Removed, Path: p.Field(from.Key(fi)), From: from.At(fi)})
				fi++
			case diffpatch.DiffEqual:
				res = diff(p.Field(from.Key(fi)), from.At(fi), to.At(ti), res)
				fi++
				ti++
			case diffpatch.DiffInsert:
				res = append(res, Change{Kind: Added, Path: p.Field(to.Key(ti)), To: to.At(ti)})
				ti++
			}
		}
	}
	return res
}

func diffArray(p ir.Path, from, to *ir.Node, res []Change) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	// a removal directly followed by an insertion is a change in place
	lastDel := -1
	for i := range diffs {
		d := &diffs[i]
		for range []rune(d.Text) {
			switch d.Type {
			case diffpatch.DiffDelete:
				res = append(res, Change{Kind: Removed, Path: p.Index(fi), From: from.At(fi)})
				lastDel = len(res) - 1
				fi++
			case diffpatch.DiffEqual:
				lastDel = -1
				res = diff(p.Index(fi), from.At(fi), to.At(ti), res)
				fi++
				ti++
			case diffpatch.DiffInsert:
				if lastDel != -1 {
					del := res[lastDel]
					res = res[:lastDel]
					res = diff(del.Path, del.From, to.At(ti), res)
				} else {
					res = append(res, Change{Kind: Added, Path: p.Index(ti), To: to.At(ti)})
				}
				lastDel = -1
				ti++
			}
		}
	}
	return res
}

func mapFields(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, node.Len())
	for i, f := range node.Keys() {
		rs[i] = runeFor(m, f)
	}
	return rs
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, node.Len())
	for i, v := range node.Items() {
		rs[i] = runeFor(m, summaryStr(v))
	}
	return rs
}

func runeFor(m map[string]rune, s string) rune {
	r, ok := m[s]
	if !ok {
		r = rune(len(m))
		m[s] = r
	}
	return r
}

// summaryStr identifies scalars by text and containers by kind, so that
// containers with edits inside still align.
func summaryStr(node *ir.Node) string {
	switch node.Type() {
	case ir.ScalarType:
		if strings.Contains(node.Text(), "\n") {
			return node.Type().String() + "/m"
		}
		return node.Type().String() + "-" + node.Text()
	default:
		return node.Type().String()
	}
}
