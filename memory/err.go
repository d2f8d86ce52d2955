// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"errors"

	"github.com/ezrec/lc3sim/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrAddressFault = errors.New(f("address fault"))
)

// ErrAddress describes a memory range outside of the address space.
type ErrAddress struct {
	Address int
	Length  int
}

func (err ErrAddress) Error() string {
	return f("range 0x%04x+%d outside memory", err.Address, err.Length)
}
