// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/lc3sim/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageShort = errors.New(f("image has no origin"))
	ErrImageOdd   = errors.New(f("image has a partial word"))
)

// ErrParseWord is a program word that could not be parsed.
type ErrParseWord string

func (err ErrParseWord) Error() string {
	return f("'%v' is not a 16-bit word", string(err))
}
