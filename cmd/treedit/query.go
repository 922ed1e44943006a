package main

import (
	"fmt"

	"github.com/signadot/treedit/eval"

	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	expression := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := false
	for i, arg := range args {
		doc, err := cfg.readArg(cc, arg)
		if err != nil {
			return err
		}
		if cfg.Check {
			ok, err := eval.Check(doc, expression)
			if err != nil {
				return fmt.Errorf("error checking %s: %w", arg, err)
			}
			if !ok {
				failed = true
			}
			if len(args) > 1 {
				fmt.Fprintf(cc.Out, "%s: %t\n", arg, ok)
			}
			continue
		}
		res, err := eval.EvalNode(doc, expression)
		if err != nil {
			return fmt.Errorf("error evaluating on %s: %w", arg, err)
		}
		if err := writeResult(cfg.MainConfig, cc.Out, arg, res, i > 0); err != nil {
			return err
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}
