package edit

import (
	"fmt"

	"github.com/signadot/treedit/ir"
)

// Symbol names an op kind and builds ops of that kind from script
// arguments.
type Symbol interface {
	Name
	// ArgNames lists the arguments following the path, in order.
	ArgNames() []string
	Instance(p ir.Path, args []string) (Op, error)
}

type Name interface {
	String() string
}

type name string

func (s name) String() string {
	return string(s)
}

func checkArgs(s Symbol, args []string) error {
	want := s.ArgNames()
	if len(args) != len(want) {
		return fmt.Errorf("%w: %s expects %d args %v, got %d", ErrBadArgs, s, len(want), want, len(args))
	}
	return nil
}
