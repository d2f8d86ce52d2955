// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the register file and control unit of the LC-3.
//
// The register file holds eight 16-bit general-purpose registers (R0-R7),
// the program counter (PC), the instruction register (IR), and the one-hot
// N/Z/P condition codes.
//
// The control unit decodes the word in IR and executes it against a register
// file and a memory that it borrows for the duration of the call. It keeps no
// machine state of its own.
package cpu
