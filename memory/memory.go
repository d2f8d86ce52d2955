// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the flat, word addressed LC-3 memory.
//
// The memory is a single unprotected address space of 65536 16-bit words.
// Code and data share the space; any address may be read or written.
package memory

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

const (
	MEMORY_SIZE = 1 << 16 // Number of words in the address space.

	TRAP_TABLE  = 0x0000 // Trap vector table.
	USER_ORIGIN = 0x3000 // Conventional program origin.
)

var _memory_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"TRAP_TABLE":  fmt.Sprintf("0x%04x", TRAP_TABLE),
	"USER_ORIGIN": fmt.Sprintf("0x%04x", USER_ORIGIN),
}

// Memory is the LC-3 word memory.
type Memory struct {
	Word [MEMORY_SIZE]uint16 // Memory contents.
}

// NewMemory creates a new, zeroed memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{}

	return
}

// Defines for the memory map.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Word[:])
}

// Load the word at address.
func (mem *Memory) Load(address uint16) uint16 {
	return mem.Word[address]
}

// Store value at address.
func (mem *Memory) Store(address uint16, value uint16) {
	mem.Word[address] = value
}

// checkRange verifies that length words starting at address fit in memory.
func checkRange(address uint16, length int) (err error) {
	if length < 0 || int(address)+length > MEMORY_SIZE {
		err = errors.Join(ErrAddressFault, ErrAddress{Address: int(address), Length: length})
	}

	return
}

// Window returns a copy of length words starting at address.
func (mem *Memory) Window(address uint16, length int) (words []uint16, err error) {
	err = checkRange(address, length)
	if err != nil {
		return
	}

	words = slices.Clone(mem.Word[int(address) : int(address)+length])
	return
}

// Write stores words sequentially starting at address.
// Nothing is written if the words do not fit.
func (mem *Memory) Write(address uint16, words []uint16) (err error) {
	err = checkRange(address, len(words))
	if err != nil {
		return
	}

	copy(mem.Word[address:], words)
	return
}
