package eval

import (
	"fmt"
	"os"

	"github.com/signadot/treedit/edit"
	"github.com/signadot/treedit/ir"

	"github.com/expr-lang/expr"
)

func exprOpts(doc *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			res, err := resolve(doc, params[0].(string))
			if err != nil {
				return nil, err
			}
			return ToAny(res), nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			p, err := edit.ParsePath(params[0].(string))
			if err != nil {
				return nil, err
			}
			_, err = ir.Resolve(doc, p)
			return err == nil, nil
		},
			new(func(string) bool)),
		expr.Function("kind", func(params ...any) (any, error) {
			res, err := resolve(doc, params[0].(string))
			if err != nil {
				return nil, err
			}
			return res.Type().String(), nil
		},
			new(func(string) string)),
		expr.Function("keys", func(params ...any) (any, error) {
			res, err := resolve(doc, params[0].(string))
			if err != nil {
				return nil, err
			}
			if res.Type() != ir.ObjectType {
				return nil, fmt.Errorf("%w: keys of %s", edit.ErrNotObject, res.Type())
			}
			keys := make([]any, 0, res.Len())
			for k := range res.Entries() {
				keys = append(keys, k)
			}
			return keys, nil
		},
			new(func(string) []any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func resolve(doc *ir.Node, path string) (*ir.Node, error) {
	p, err := edit.ParsePath(path)
	if err != nil {
		return nil, err
	}
	return ir.Resolve(doc, p)
}
