package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/treedit/debug"
	"github.com/signadot/treedit/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	ErrEval    = errors.New("eval error")
	ErrNotBool = fmt.Errorf("%w: expression is not boolean", ErrEval)
)

type Env = map[string]any

// NewEnv returns the variables visible to expressions over doc.
func NewEnv(doc *ir.Node) Env {
	return Env{"doc": ToAny(doc)}
}

// Eval evaluates expression against doc.
func Eval(doc *ir.Node, expression string) (any, error) {
	return run(doc, expression)
}

// Check evaluates a boolean expression against doc.
func Check(doc *ir.Node, expression string) (bool, error) {
	res, err := run(doc, expression, expr.AsBool())
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBool, res)
	}
	return b, nil
}

// EvalNode evaluates expression against doc and converts the result to a
// tree.
func EvalNode(doc *ir.Node, expression string) (*ir.Node, error) {
	res, err := Eval(doc, expression)
	if err != nil {
		return nil, err
	}
	node, err := FromAny(res)
	if err != nil {
		return nil, fmt.Errorf("%w: result %T: %w", ErrEval, res, err)
	}
	return node, nil
}

func run(doc *ir.Node, expression string, opts ...expr.Option) (any, error) {
	env := NewEnv(doc)
	compileOpts := append(exprOpts(doc), expr.Env(env))
	compileOpts = append(compileOpts, opts...)
	program, err := expr.Compile(expression, compileOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	res, err := vm.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", expression, res)
	}
	return res, nil
}
