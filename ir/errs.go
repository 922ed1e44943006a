package ir

import (
	"errors"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrBadPath     = errors.New("bad path syntax")
	ErrBadType     = errors.New("bad type")
)
