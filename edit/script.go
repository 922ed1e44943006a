package edit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/treedit/ir"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ParseLine parses one script line of the form
//
//	<op> <path> [args...]
//
// Arguments are bare words or double-quoted Go strings.  A path lacking
// the leading '$' is taken relative to the root.  Blank lines and lines
// starting with '#' yield a nil Op and no error.
func ParseLine(line string) (Op, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil, nil
	}
	words, err := splitWords(line)
	if err != nil {
		return nil, err
	}
	sym := Lookup(words[0])
	if sym == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, words[0])
	}
	if len(words) < 2 {
		return nil, fmt.Errorf("%w: %s requires a path", ErrBadArgs, sym)
	}
	p, err := ParsePath(words[1])
	if err != nil {
		return nil, err
	}
	return sym.Instance(p, words[2:])
}

// ParsePath parses p relative to the root when it lacks the leading '$':
// ".a" and "[0]" are prefixed with "$", a bare "a.b" with "$.".
func ParsePath(p string) (ir.Path, error) {
	switch {
	case p == "":
		p = "$"
	case p[0] == '.' || p[0] == '[':
		p = "$" + p
	case p[0] != '$':
		p = "$." + p
	}
	return ir.ParsePath(p)
}

// ParseScript parses one op per line from r.
func ParseScript(r io.Reader) ([]Op, error) {
	scanner := bufio.NewScanner(r)
	res := []Op{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		o, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if o == nil {
			continue
		}
		res = append(res, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseYAMLScript parses a YAML (or JSON) list of mappings such as
//
//	- {op: rename, path: $.a, key: old, to: new}
//	- {op: remove-elem, key: list, index: 0}
//
// The mapping keys besides op and path are the symbol's ArgNames.  path
// defaults to the root.  Scalar values are taken as written, so
// "text: 1.10" sets the text 1.10.
func ParseYAMLScript(d []byte) ([]Op, error) {
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgs, err)
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return []Op{}, nil
	}
	seq, ok := f.Docs[0].Body.(*ast.SequenceNode)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of ops, got %s", ErrBadArgs, f.Docs[0].Body.Type())
	}
	res := make([]Op, 0, len(seq.Values))
	for i, v := range seq.Values {
		entry, err := entryFields(v)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		o, err := opFromEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		res = append(res, o)
	}
	return res, nil
}

func entryFields(n ast.Node) (map[string]ast.Node, error) {
	var pairs []*ast.MappingValueNode
	switch x := n.(type) {
	case *ast.MappingNode:
		pairs = x.Values
	case *ast.MappingValueNode:
		pairs = []*ast.MappingValueNode{x}
	default:
		return nil, fmt.Errorf("%w: expected a mapping, got %s", ErrBadArgs, n.Type())
	}
	res := make(map[string]ast.Node, len(pairs))
	for _, mv := range pairs {
		k, ok := scalarText(mv.Key)
		if !ok {
			return nil, fmt.Errorf("%w: non scalar key %s", ErrBadArgs, mv.Key)
		}
		res[k] = mv.Value
	}
	return res, nil
}

func opFromEntry(entry map[string]ast.Node) (Op, error) {
	opName, ok := entryText(entry, "op")
	if !ok {
		return nil, fmt.Errorf("%w: missing op", ErrBadArgs)
	}
	sym := Lookup(opName)
	if sym == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, opName)
	}
	pathText, _ := entryText(entry, "path")
	p, err := ParsePath(pathText)
	if err != nil {
		return nil, err
	}
	argNames := sym.ArgNames()
	args := make([]string, len(argNames))
	for i, an := range argNames {
		v, ok := entryText(entry, an)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires %q", ErrBadArgs, sym, an)
		}
		args[i] = v
	}
	return sym.Instance(p, args)
}

func entryText(entry map[string]ast.Node, key string) (string, bool) {
	v, ok := entry[key]
	if !ok || v == nil {
		return "", false
	}
	return scalarText(v)
}

// scalarText returns the text of a scalar node as written in the source.
// Null and non scalar nodes have no text.
func scalarText(n ast.Node) (string, bool) {
	switch x := n.(type) {
	case *ast.StringNode:
		return x.Value, true
	case *ast.LiteralNode:
		return x.Value.Value, true
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.InfinityNode, *ast.NanNode:
		return n.GetToken().Value, true
	}
	return "", false
}

func splitWords(line string) ([]string, error) {
	res := []string{}
	s := strings.TrimLeftFunc(line, unicode.IsSpace)
	for len(s) > 0 {
		if s[0] == '"' {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrBadArgs, s, err)
			}
			v, err := strconv.Unquote(q)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrBadArgs, q, err)
			}
			res = append(res, v)
			s = s[len(q):]
			if len(s) > 0 && !unicode.IsSpace(rune(s[0])) {
				return nil, fmt.Errorf("%w: expected space after %s", ErrBadArgs, q)
			}
		} else {
			i := strings.IndexFunc(s, unicode.IsSpace)
			if i == -1 {
				i = len(s)
			}
			res = append(res, s[:i])
			s = s[i:]
		}
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
	}
	return res, nil
}
