package libdiff

import (
	"bytes"
	"fmt"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// MarshalJSON renders node as compact JSON, keeping key order.
func MarshalJSON(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergePatch computes the RFC 7386 merge patch taking from to to.
func MergePatch(from, to *ir.Node) ([]byte, error) {
	fromJSON, err := MarshalJSON(from)
	if err != nil {
		return nil, err
	}
	toJSON, err := MarshalJSON(to)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.CreateMergePatch(fromJSON, toJSON)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return res, nil
}

// ApplyMergePatch applies an RFC 7386 merge patch to doc and returns the
// result as a new tree.
func ApplyMergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	d, err := MarshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return parse.Parse(out)
}

// ApplyJSONPatch applies an RFC 6902 JSON patch to doc and returns the
// result as a new tree.
func ApplyJSONPatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	d, err := MarshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	return parse.Parse(out)
}
