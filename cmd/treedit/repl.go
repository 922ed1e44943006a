package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/signadot/treedit/edit"
	"github.com/signadot/treedit/encode"
	"github.com/signadot/treedit/eval"
	"github.com/signadot/treedit/ir"
	"github.com/signadot/treedit/libdiff"
	"github.com/signadot/treedit/parse"
	"github.com/signadot/treedit/session"

	"github.com/fatih/color"
	"github.com/google/gops/agent"
	"github.com/peterh/liner"
	"github.com/scott-cotton/cli"
)

const (
	historyFile = ".treedit_history"
	prompt      = "treedit> "
)

var replCommands = map[string]string{
	":show":    "print the current document",
	":reset":   "replace the document with {}",
	":diff":    "unified diff of the last change",
	":changes": "structural changes of the last change",
	":patch":   "merge patch of the last change",
	":q":       ":q <expr> evaluates an expression",
	":load":    ":load <file> replaces the document",
	":save":    ":save <file> writes the document",
	":ops":     "list ops",
	":help":    "list commands",
	":quit":    "exit",
}

func repl(cfg *ReplConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Repl.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: repl takes at most one document, got %v", cli.ErrUsage, args)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}
	var doc *ir.Node
	if len(args) == 1 {
		doc, err = cfg.readArg(cc, args[0])
		if err != nil {
			return err
		}
	}
	sess := session.New(doc, session.WithLogger(theLog))
	r := &replState{cfg: cfg, cc: cc, w: cc.Out, sess: sess}
	defer sess.Subscribe(r.show)()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	histPath := cfg.History
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	r.show(sess.Snapshot())
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.w)
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		quit, err := r.do(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%v", err))
		}
		if quit {
			break
		}
	}
	return nil
}

type replState struct {
	cfg  *ReplConfig
	cc   *cli.Context
	w    io.Writer
	sess *session.Session
}

func (r *replState) show(snap session.Snapshot) {
	fmt.Fprintf(r.w, "# version %d\n", snap.Version)
	if err := encode.Encode(snap.Node, r.w, r.cfg.encOpts(r.w)...); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%v", err))
	}
}

// do runs one line, returning whether to quit.
func (r *replState) do(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		o, err := edit.ParseLine(line)
		if err != nil || o == nil {
			return false, err
		}
		_, err = r.sess.Apply(o)
		return false, err
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":exit":
		return true, nil
	case ":show":
		r.show(r.sess.Snapshot())
	case ":reset":
		r.sess.Reset()
	case ":diff":
		prev := r.sess.Previous()
		if prev == nil {
			return false, nil
		}
		return false, writeUnified(r.cfg.MainConfig, r.w, prev, r.sess.Current())
	case ":changes":
		prev := r.sess.Previous()
		if prev == nil {
			return false, nil
		}
		return false, writeChanges(r.cfg.MainConfig, r.w, libdiff.Diff(prev, r.sess.Current()))
	case ":patch":
		prev := r.sess.Previous()
		if prev == nil {
			return false, nil
		}
		patch, err := libdiff.MergePatch(prev, r.sess.Current())
		if err != nil {
			return false, err
		}
		res, err := parse.Parse(patch)
		if err != nil {
			return false, err
		}
		return false, encode.Encode(res, r.w, r.cfg.encOpts(r.w)...)
	case ":q":
		if arg == "" {
			return false, fmt.Errorf(":q requires an expression")
		}
		res, err := eval.EvalNode(r.sess.Current(), arg)
		if err != nil {
			return false, err
		}
		return false, encode.Encode(res, r.w, r.cfg.encOpts(r.w)...)
	case ":load":
		if arg == "" {
			return false, fmt.Errorf(":load requires a file")
		}
		doc, err := r.cfg.readArg(r.cc, arg)
		if err != nil {
			return false, err
		}
		r.sess.Load(doc)
	case ":save":
		if arg == "" {
			return false, fmt.Errorf(":save requires a file")
		}
		return false, r.save(arg)
	case ":ops":
		for _, s := range edit.Symbols() {
			fmt.Fprintf(r.w, "%s <path> %s\n", s, strings.Join(s.ArgNames(), " "))
		}
	case ":help":
		names := make([]string, 0, len(replCommands))
		for name := range replCommands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.w, "%-9s %s\n", name, replCommands[name])
		}
		fmt.Fprintln(r.w, "other lines are ops; see :ops")
	default:
		return false, fmt.Errorf("unknown command %s, try :help", cmd)
	}
	return false, nil
}

func (r *replState) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = encode.Encode(r.sess.Current(), f, encode.EncodeFormat(r.cfg.outFormat()))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func complete(line string) []string {
	var res []string
	if strings.HasPrefix(line, ":") {
		for name := range replCommands {
			if strings.HasPrefix(name, line) {
				res = append(res, name)
			}
		}
	} else {
		for _, s := range edit.Symbols() {
			if strings.HasPrefix(s.String(), line) {
				res = append(res, s.String()+" ")
			}
		}
	}
	sort.Strings(res)
	return res
}
