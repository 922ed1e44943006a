package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/signadot/treedit/debug"
	"github.com/signadot/treedit/format"
	"github.com/signadot/treedit/ir"

	"github.com/goccy/go-yaml"
)

// Parse decodes a single document.  The default format is JSON.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return nil, ErrEmpty
	}
	var (
		res *ir.Node
		err error
	)
	switch pOpts.format {
	case format.YAMLFormat:
		res, err = parseYAML(d)
	default:
		res, err = parseJSON(d)
	}
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %s document:\n%v\n", pOpts.format, res)
	}
	return res, nil
}

// Reader reads all of r and parses it.
func Reader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailing
	}
	return res, nil
}

func decodeJSON(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("%w %q", errUnexpected, x)
		}
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromString(x.String()), nil
	case bool:
		return ir.FromString(strconv.FormatBool(x)), nil
	case nil:
		return ir.Undefined(), nil
	default:
		return nil, fmt.Errorf("%w %v", errUnexpected, tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*ir.Node, error) {
	kvs := []ir.KeyVal{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("%w %v, expected key", errUnexpected, kt)
		}
		val, err := decodeJSON(dec)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ir.FromKeyVals(kvs), nil
}

func decodeJSONArray(dec *json.Decoder) (*ir.Node, error) {
	elts := []*ir.Node{}
	for dec.More() {
		val, err := decodeJSON(dec)
		if err != nil {
			return nil, err
		}
		elts = append(elts, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ir.FromSlice(elts), nil
}

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromYAML(v), nil
}

// FromYAML converts a value decoded by go-yaml with ordered maps into a
// tree.
func FromYAML(v any) *ir.Node {
	switch x := v.(type) {
	case nil:
		return ir.Undefined()
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			kvs[i] = ir.KeyVal{Key: scalarText(item.Key), Val: FromYAML(item.Value)}
		}
		return ir.FromKeyVals(kvs)
	case map[string]any:
		// only produced when ordered maps are not requested
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			kvs = append(kvs, ir.KeyVal{Key: k, Val: FromYAML(x[k])})
		}
		return ir.FromKeyVals(kvs)
	case []any:
		elts := make([]*ir.Node, len(x))
		for i, vv := range x {
			elts[i] = FromYAML(vv)
		}
		return ir.FromSlice(elts)
	default:
		return ir.FromString(scalarText(x))
	}
}

func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
