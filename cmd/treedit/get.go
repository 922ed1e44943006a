package main

import (
	"fmt"
	"io"

	"github.com/signadot/treedit/edit"
	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path, err := edit.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		if err := getArg(cfg.MainConfig, cc, arg, path, i > 0); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
	}
	return nil
}

func getArg(cfg *MainConfig, cc *cli.Context, arg string, path ir.Path, sep bool) error {
	target, err := cfg.readArg(cc, arg)
	if err != nil {
		return err
	}
	res, err := ir.Resolve(target, path)
	if err != nil {
		return err
	}
	return writeResult(cfg, cc.Out, arg, res, sep)
}

// writeResult encodes res, preceded when sep is set by a document
// separator and a comment naming where res came from.
func writeResult(cfg *MainConfig, w io.Writer, from string, res *ir.Node, sep bool) error {
	if sep {
		if err := writeSep(w); err != nil {
			return err
		}
		if cfg.outFormat().IsYAML() {
			if _, err := fmt.Fprintf(w, "# from %s\n", from); err != nil {
				return err
			}
		}
	}
	if err := encode.Encode(res, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
