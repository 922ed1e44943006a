package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/format"
	"github.com/signadot/treedit/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat returns the input format for path.  Without -j, -y or -I the
// format follows the file suffix.
func (cfg *MainConfig) inFormat(path string) format.Format {
	switch {
	case cfg.InFormat != nil:
		return *cfg.InFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return format.FromPath(path)
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParseFormat(cfg.inFormat(path)),
	}
}

func (cfg *MainConfig) outFormat() format.Format {
	var fmt format.Format
	switch {
	case cfg.Y:
		fmt = format.YAMLFormat
	case cfg.J:
		fmt = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	return fmt
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor follows -color when given and otherwise whether w is a
// terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ApplyConfig struct {
	*MainConfig

	Script string `cli:"name=f desc='op script file, one op per line or a yaml list'"`
	Patch  string `cli:"name=patch desc='RFC 6902 json patch file applied before the ops'"`
	Merge  string `cli:"name=merge desc='RFC 7386 merge patch file applied before the ops'"`
	Diff   bool   `cli:"name=diff desc='print a unified diff instead of the result'"`
	Ops    bool   `cli:"name=ops desc='list available ops'"`
	Lines  []string

	Apply *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Check bool `cli:"name=check desc='require a boolean result, exit 1 when false'"`

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge     bool   `cli:"name=merge desc='print a merge patch instead of a unified diff'"`
	Changes   bool   `cli:"name=c desc='print structural changes'"`
	Loop      string `cli:"name=loop desc='command to produce documents to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

type ReplConfig struct {
	*MainConfig

	Gops    bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
	History string `cli:"name=history desc='history file (default ~/.treedit_history)'"`

	Repl *cli.Command
}
