// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
)

// Flags holds the N/Z/P condition codes, in the same bit order as the
// condition mask of a BR instruction.
type Flags uint8

const (
	FLAG_P = Flags(1 << 0) // Positive
	FLAG_Z = Flags(1 << 1) // Zero
	FLAG_N = Flags(1 << 2) // Negative
)

// N returns true if the negative flag is set.
func (fl Flags) N() bool { return fl&FLAG_N != 0 }

// Z returns true if the zero flag is set.
func (fl Flags) Z() bool { return fl&FLAG_Z != 0 }

// P returns true if the positive flag is set.
func (fl Flags) P() bool { return fl&FLAG_P != 0 }

// String returns the flags as "nzp", with '-' for each clear flag.
func (fl Flags) String() string {
	text := []byte("---")
	if fl.N() {
		text[0] = 'n'
	}
	if fl.Z() {
		text[1] = 'z'
	}
	if fl.P() {
		text[2] = 'p'
	}
	return string(text)
}

// FlagsOf returns the condition codes for a value written to a register.
func FlagsOf(value uint16) Flags {
	switch {
	case value == 0:
		return FLAG_Z
	case value&0x8000 != 0:
		return FLAG_N
	default:
		return FLAG_P
	}
}

// Registers is the LC-3 register file.
type Registers struct {
	R  [8]uint16 // General purpose registers.
	PC uint16    // Address of the next instruction to fetch.
	IR uint16    // Most recently fetched instruction.
	CC Flags     // Condition codes; exactly one flag is set.
}

// Reset clears all registers and sets the Z flag.
func (regs *Registers) Reset() {
	clear(regs.R[:])
	regs.PC = 0
	regs.IR = 0
	regs.CC = FLAG_Z
}

// SetCC sets exactly one condition code from the value.
func (regs *Registers) SetCC(value uint16) {
	regs.CC = FlagsOf(value)
}

// All iterates over the general purpose registers by name.
func (regs *Registers) All() iter.Seq2[string, uint16] {
	return func(yield func(name string, value uint16) bool) {
		for n, value := range regs.R {
			if !yield(fmt.Sprintf("R%d", n), value) {
				return
			}
		}
	}
}

// String returns the register file as text.
func (regs *Registers) String() (text string) {
	for name, value := range regs.All() {
		text += fmt.Sprintf("% 4s: 0x%04X\n", name, value)
	}
	text += fmt.Sprintf("% 4s: 0x%04X\n", "PC", regs.PC)
	text += fmt.Sprintf("% 4s: 0x%04X %v\n", "IR", regs.IR, Code(regs.IR).Opcode())
	text += fmt.Sprintf("% 4s: %v\n", "CC", regs.CC)

	return
}
