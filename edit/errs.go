package edit

import (
	"errors"
	"fmt"

	"github.com/signadot/treedit/ir"
)

var (
	ErrNotObject    = fmt.Errorf("%w: not an object", ir.ErrInvalidPath)
	ErrNotArray     = fmt.Errorf("%w: not an array", ir.ErrInvalidPath)
	ErrUnknownOp    = errors.New("unknown op")
	ErrBadArgs      = errors.New("bad op arguments")
	ErrSymbolExists = errors.New("symbol exists")
)
