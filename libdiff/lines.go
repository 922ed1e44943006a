package libdiff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines Unified shows around
// each change.
const DefaultContext = 3

type LineOp int8

const (
	LineEqual LineOp = iota
	LineDelete
	LineInsert
)

func (o LineOp) Prefix() string {
	switch o {
	case LineDelete:
		return "-"
	case LineInsert:
		return "+"
	default:
		return " "
	}
}

type Line struct {
	Op   LineOp
	Text string
}

func (l Line) String() string {
	return l.Op.Prefix() + l.Text
}

// Lines diffs the renderings of a and b line by line.  The renderings use
// opts, JSON by default.
func Lines(a, b *ir.Node, opts ...encode.EncodeOption) ([]Line, error) {
	aText, err := render(a, opts)
	if err != nil {
		return nil, err
	}
	bText, err := render(b, opts)
	if err != nil {
		return nil, err
	}
	dmp := diffpatch.New()
	aChars, bChars, lines := dmp.DiffLinesToChars(aText, bText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(aChars, bChars, false), lines)
	res := []Line{}
	for _, d := range diffs {
		op := LineEqual
		switch d.Type {
		case diffpatch.DiffDelete:
			op = LineDelete
		case diffpatch.DiffInsert:
			op = LineInsert
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res, nil
}

func render(node *ir.Node, opts []encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Hunk is a run of lines holding changes and their context.  Starts are
// 1-based line numbers.
type Hunk struct {
	FromStart, FromLen int
	ToStart, ToLen     int
	Lines              []Line
}

func (h *Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.FromStart, h.FromLen, h.ToStart, h.ToLen)
}

// Hunks groups lines into hunks with context lines of unchanged text
// around each change.  Changes closer than 2*context lines share a hunk.
func Hunks(lines []Line, context int) []Hunk {
	var changes []int
	for i, ln := range lines {
		if ln.Op != LineEqual {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}
	var res []Hunk
	start := max(0, changes[0]-context)
	end := min(len(lines), changes[0]+context+1)
	for _, c := range changes[1:] {
		if c-context <= end {
			end = min(len(lines), c+context+1)
			continue
		}
		res = append(res, mkHunk(lines, start, end))
		start = c - context
		end = min(len(lines), c+context+1)
	}
	return append(res, mkHunk(lines, start, end))
}

func mkHunk(lines []Line, start, end int) Hunk {
	h := Hunk{FromStart: 1, ToStart: 1, Lines: lines[start:end]}
	for _, ln := range lines[:start] {
		if ln.Op != LineInsert {
			h.FromStart++
		}
		if ln.Op != LineDelete {
			h.ToStart++
		}
	}
	for _, ln := range h.Lines {
		if ln.Op != LineInsert {
			h.FromLen++
		}
		if ln.Op != LineDelete {
			h.ToLen++
		}
	}
	return h
}

// Unified renders the line diff of a and b in unified format with
// DefaultContext, labelling the sides "a" and "b".  It is empty when the
// renderings are equal.
func Unified(a, b *ir.Node, opts ...encode.EncodeOption) (string, error) {
	lines, err := Lines(a, b, opts...)
	if err != nil {
		return "", err
	}
	hunks := Hunks(lines, DefaultContext)
	if len(hunks) == 0 {
		return "", nil
	}
	buf := &strings.Builder{}
	buf.WriteString("--- a\n+++ b\n")
	for i := range hunks {
		buf.WriteString(hunks[i].Header())
		buf.WriteByte('\n')
		for _, ln := range hunks[i].Lines {
			buf.WriteString(ln.String())
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}
