package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/signadot/treedit/format"
	"github.com/signadot/treedit/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() && es.indent < 2 {
		es.indent = 2
	}
	var err error
	switch {
	case es.wire, es.format.IsJSON(), node.Len() == 0:
		err = encodeFlow(node, w, es)
		if err == nil {
			err = writeString(w, "\n")
		}
	default:
		err = encodeBlock(node, w, es, false)
	}
	return err
}

// Helper functions for writing

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+indentString(es, es.depth))
}

func indentString(es *EncState, depth int) string {
	return strings.Repeat(" ", es.indent*depth)
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func writeSep(w io.Writer, es *EncState, t ir.Type, sep string) error {
	return writeString(w, applyColor(es, t, SepColor, sep))
}

// String quoting helpers

func quoteString(v string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// strings always encode
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

var plainYAMLKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

func quoteField(v string, es *EncState) string {
	if !es.format.IsYAML() || es.wire {
		return quoteString(v)
	}
	if !plainYAMLKey.MatchString(v) {
		return quoteString(v)
	}
	switch strings.ToLower(v) {
	case "null", "true", "false", "yes", "no", "on", "off", "y", "n":
		return quoteString(v)
	}
	return v
}

func leafString(node *ir.Node, es *EncState) (string, error) {
	switch node.Type() {
	case ir.UndefinedType:
		return applyColor(es, ir.UndefinedType, ValueColor, "null"), nil
	case ir.ScalarType:
		return applyColor(es, ir.ScalarType, ValueColor, quoteString(node.Text())), nil
	case ir.ObjectType:
		return applyColor(es, ir.ObjectType, SepColor, "{}"), nil
	case ir.ArrayType:
		return applyColor(es, ir.ArrayType, SepColor, "[]"), nil
	default:
		return "", fmt.Errorf("%w: unknown type %s", ErrEncoding, node.Type())
	}
}

// encodeFlow writes JSON, indented unless wire is set.  For YAML it is
// only used in wire mode and for leaves, where JSON is valid YAML flow
// syntax.
func encodeFlow(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Type().IsLeaf() || node.Len() == 0 {
		s, err := leafString(node, es)
		if err != nil {
			return err
		}
		return writeString(w, s)
	}
	open, close := "[", "]"
	if node.Type() == ir.ObjectType {
		open, close = "{", "}"
	}
	kvSep, itemSep := ": ", ","
	if es.wire {
		kvSep = ":"
		if es.format.IsYAML() {
			kvSep, itemSep = ": ", ", "
		}
	}
	if err := writeSep(w, es, node.Type(), open); err != nil {
		return err
	}
	es.depth++
	n := node.Len()
	for i := range n {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if node.Type() == ir.ObjectType {
			field := applyColor(es, ir.ObjectType, FieldColor, quoteField(node.Key(i), es))
			if err := writeString(w, field); err != nil {
				return err
			}
			if err := writeSep(w, es, ir.ObjectType, kvSep); err != nil {
				return err
			}
		}
		if err := encodeFlow(node.At(i), w, es); err != nil {
			return err
		}
		if i < n-1 {
			if err := writeSep(w, es, node.Type(), itemSep); err != nil {
				return err
			}
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, node.Type(), close)
}

// encodeBlock writes node in YAML block style at es.depth.  If inline is
// set the cursor already sits at the indentation of es.depth, following
// an array item marker.
func encodeBlock(node *ir.Node, w io.Writer, es *EncState, inline bool) error {
	n := node.Len()
	for i := range n {
		if i > 0 || !inline {
			if err := writeString(w, indentString(es, es.depth)); err != nil {
				return err
			}
		}
		switch node.Type() {
		case ir.ObjectType:
			field := applyColor(es, ir.ObjectType, FieldColor, quoteField(node.Key(i), es))
			if err := writeString(w, field); err != nil {
				return err
			}
			if err := writeSep(w, es, ir.ObjectType, ":"); err != nil {
				return err
			}
			if err := encodeBlockValue(node.At(i), w, es, false); err != nil {
				return err
			}
		case ir.ArrayType:
			marker := "-" + strings.Repeat(" ", es.indent-1)
			if err := writeSep(w, es, ir.ArrayType, marker); err != nil {
				return err
			}
			if err := encodeBlockValue(node.At(i), w, es, true); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: block encoding of %s", ErrEncoding, node.Type())
		}
	}
	return nil
}

func encodeBlockValue(val *ir.Node, w io.Writer, es *EncState, item bool) error {
	if val.Type().IsLeaf() || val.Len() == 0 {
		s, err := leafString(val, es)
		if err != nil {
			return err
		}
		if !item {
			s = " " + s
		}
		return writeString(w, s+"\n")
	}
	es.depth++
	defer func() { es.depth-- }()
	if item {
		return encodeBlock(val, w, es, true)
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	return encodeBlock(val, w, es, false)
}
