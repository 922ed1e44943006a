package main

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/libdiff"
	"github.com/signadot/treedit/parse"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		y1, err := cfg.readArg(cc, args[0])
		if err != nil {
			return err
		}
		y2, err := cfg.readArg(cc, args[1])
		if err != nil {
			return err
		}
		diff, err := diffInputs(cfg, cc, y1, y2, false)
		if err != nil {
			return err
		}
		if diff {
			return cli.ExitCodeErr(1)
		}
		return nil
	}

	return diffLoop(cfg, cc)
}

func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	i := 0
	last := ir.Undefined()
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	for {
		if i == cfg.LoopLim {
			break
		}
		cmd := exec.Command("sh", "-c", cfg.Loop)
		r, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
		}
		cmd.WaitDelay = cfg.LoopEvery
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		next, err := parse.Parse(d, cfg.parseOpts("")...)
		if err != nil {
			return fmt.Errorf("error decoding command output: %w", err)
		}
		differs, err := diffInputs(cfg, cc, last, next, diffCount > 0)
		if err != nil {
			return err
		}
		if differs {
			diffCount++
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command %q exited with an error: %w", cfg.Loop, err)
		}
		last = next
		<-ticker.C
		i++
	}
	return nil
}

func diffInputs(do *DiffConfig, cc *cli.Context, a, b *ir.Node, sep bool) (bool, error) {
	if ir.Equal(a, b) {
		return false, nil
	}
	w := cc.Out
	if sep {
		if err := writeSep(w); err != nil {
			return false, fmt.Errorf("unable to write separator: %w", err)
		}
	}
	if do.Loop != "" {
		when := time.Now().Format(time.RFC3339Nano)
		if _, err := w.Write([]byte("# difference found at " + when + "\n")); err != nil {
			return false, err
		}
	}
	switch {
	case do.Merge:
		patch, err := libdiff.MergePatch(a, b)
		if err != nil {
			return false, err
		}
		res, err := parse.Parse(patch)
		if err != nil {
			return false, err
		}
		return true, writeResult(do.MainConfig, w, "", res, false)
	case do.Changes:
		return true, writeChanges(do.MainConfig, w, libdiff.Diff(a, b))
	default:
		return true, writeUnified(do.MainConfig, w, a, b)
	}
}

func writeChanges(cfg *MainConfig, w io.Writer, changes []libdiff.Change) error {
	colorize := cfg.useColor(w)
	for _, c := range changes {
		ln := c.String()
		if colorize {
			ln = paint(kindColor(c.Kind), ln)
		}
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return err
		}
	}
	return nil
}

func kindColor(k libdiff.ChangeKind) *color.Color {
	switch k {
	case libdiff.Added:
		return color.New(color.FgGreen)
	case libdiff.Removed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

// writeUnified writes the unified diff of the renderings of a and b in
// the output format.
func writeUnified(cfg *MainConfig, w io.Writer, a, b *ir.Node) error {
	text, err := libdiff.Unified(a, b, encode.EncodeFormat(cfg.outFormat()))
	if err != nil {
		return err
	}
	if !cfg.useColor(w) {
		_, err := io.WriteString(w, text)
		return err
	}
	for _, ln := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(ln, "@@"):
			ln = paint(color.New(color.FgCyan), ln)
		case strings.HasPrefix(ln, "-"):
			ln = paint(color.New(color.FgRed), ln)
		case strings.HasPrefix(ln, "+"):
			ln = paint(color.New(color.FgGreen), ln)
		}
		if _, err := io.WriteString(w, ln+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// paint colors s regardless of color.NoColor.
func paint(c *color.Color, s string) string {
	c.EnableColor()
	return c.Sprint(s)
}
