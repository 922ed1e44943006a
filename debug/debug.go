package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Op    bool
	Path  bool
	Parse bool
	Eval  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Op = boolEnv("TREEDIT_DEBUG_OP")
	d.Path = boolEnv("TREEDIT_DEBUG_PATH")
	d.Parse = boolEnv("TREEDIT_DEBUG_PARSE")
	d.Eval = boolEnv("TREEDIT_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Op() bool {
	return d.Op
}
func Path() bool {
	return d.Path
}
func Parse() bool {
	return d.Parse
}
func Eval() bool {
	return d.Eval
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
