// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package simulator

import (
	"errors"

	"github.com/ezrec/lc3sim/translate"
)

var f = translate.From

var (
	// Expression errors
	ErrExpression = errors.New(f("expression is not an integer or boolean"))
)

// ErrRuntime indicates the instruction address of a runtime error.
type ErrRuntime struct {
	Pc  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
