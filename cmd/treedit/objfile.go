package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/parse"

	"github.com/scott-cotton/cli"
)

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// readArg reads the file named by arg using the configured input format.
func (cfg *MainConfig) readArg(cc *cli.Context, arg string) (*ir.Node, error) {
	node, err := getObjFile(cc, arg, cfg.parseOpts(arg)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return node, nil
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	return err
}
