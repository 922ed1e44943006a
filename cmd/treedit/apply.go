package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/treedit/edit"
	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/libdiff"
	"github.com/signadot/treedit/session"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Ops {
		fmt.Fprintf(cc.Out, "available ops:\n")
		for _, s := range edit.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s <path> %s\n", s, strings.Join(s.ArgNames(), " "))
		}
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: apply takes at most one document, got %v", cli.ErrUsage, args)
	}
	doc := ir.NewObject()
	if len(args) == 1 {
		doc, err = cfg.readArg(cc, args[0])
		if err != nil {
			return err
		}
	}
	orig := doc
	doc, err = applyPatches(cfg, doc)
	if err != nil {
		return err
	}
	ops, err := cfg.ops()
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	sess := session.New(doc, session.WithLogger(theLog))
	res, err := sess.ApplyAll(ops)
	if err != nil {
		return err
	}
	if cfg.Diff {
		return writeUnified(cfg.MainConfig, cc.Out, orig, res)
	}
	return writeResult(cfg.MainConfig, cc.Out, "", res, false)
}

func applyPatches(cfg *ApplyConfig, doc *ir.Node) (*ir.Node, error) {
	if cfg.Patch != "" {
		d, err := os.ReadFile(cfg.Patch)
		if err != nil {
			return nil, err
		}
		doc, err = libdiff.ApplyJSONPatch(doc, d)
		if err != nil {
			return nil, fmt.Errorf("error applying %s: %w", cfg.Patch, err)
		}
	}
	if cfg.Merge != "" {
		d, err := os.ReadFile(cfg.Merge)
		if err != nil {
			return nil, err
		}
		doc, err = libdiff.ApplyMergePatch(doc, d)
		if err != nil {
			return nil, fmt.Errorf("error applying %s: %w", cfg.Merge, err)
		}
	}
	return doc, nil
}

// ops returns the ops of the -f script followed by those of the -e lines.
func (cfg *ApplyConfig) ops() ([]edit.Op, error) {
	var res []edit.Op
	if cfg.Script != "" {
		scriptOps, err := readScript(cfg.Script)
		if err != nil {
			return nil, err
		}
		res = append(res, scriptOps...)
	}
	for i, ln := range cfg.Lines {
		o, err := edit.ParseLine(ln)
		if err != nil {
			return nil, fmt.Errorf("-e %d: %w", i+1, err)
		}
		if o != nil {
			res = append(res, o)
		}
	}
	return res, nil
}

func readScript(path string) ([]edit.Op, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml", ".json":
		d, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ops, err := edit.ParseYAMLScript(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ops, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ops, err := edit.ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}
