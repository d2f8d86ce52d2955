// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/lc3sim/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrInvalidOpcode = errors.New(f("invalid opcode"))
)

// ErrOpcode names the instruction word that failed.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).Opcode().String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
