// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Opcode is the instruction operation, bits 15-12 of the instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BR   = Opcode(0x0) // BR
	OP_ADD  = Opcode(0x1) // ADD
	OP_LD   = Opcode(0x2) // LD
	OP_ST   = Opcode(0x3) // ST
	OP_JSR  = Opcode(0x4) // JSR
	OP_AND  = Opcode(0x5) // AND
	OP_LDR  = Opcode(0x6) // LDR
	OP_STR  = Opcode(0x7) // STR
	OP_RTI  = Opcode(0x8) // RTI
	OP_NOT  = Opcode(0x9) // NOT
	OP_LDI  = Opcode(0xa) // LDI
	OP_STI  = Opcode(0xb) // STI
	OP_JMP  = Opcode(0xc) // JMP
	OP_RES  = Opcode(0xd) // RES
	OP_LEA  = Opcode(0xe) // LEA
	OP_TRAP = Opcode(0xf) // TRAP
)

// Code is a single 16-bit LC-3 instruction word.
type Code uint16

// sext sign extends the low 'width' bits of value to 16 bits.
func sext(value uint16, width uint) uint16 {
	value &= (1 << width) - 1
	if value&(1<<(width-1)) != 0 {
		value |= ^uint16(0) << width
	}
	return value
}

// Opcode returns the operation from the instruction word.
func (code Code) Opcode() Opcode {
	word := uint16(code)
	return Opcode((word >> 12) & 0xf)
}

// OperateDecode decodes ADD and AND.
// If imm is set, value is the sign extended imm5, otherwise it is the SR2 index.
func (code Code) OperateDecode() (dr, sr1 int, imm bool, value uint16) {
	word := uint16(code)
	dr = int((word >> 9) & 0x7)
	sr1 = int((word >> 6) & 0x7)
	imm = ((word >> 5) & 0x1) != 0
	if imm {
		value = sext(word, 5)
	} else {
		value = word & 0x7
	}
	return
}

// NotDecode decodes NOT.
func (code Code) NotDecode() (dr, sr int) {
	word := uint16(code)
	dr = int((word >> 9) & 0x7)
	sr = int((word >> 6) & 0x7)
	return
}

// BrDecode decodes the condition mask and sign extended PCoffset9 of BR.
func (code Code) BrDecode() (nzp Flags, offset uint16) {
	word := uint16(code)
	nzp = Flags((word >> 9) & 0x7)
	offset = sext(word, 9)
	return
}

// PcRelDecode decodes LD, LDI, LEA, ST and STI.
// reg is DR for loads and SR for stores.
func (code Code) PcRelDecode() (reg int, offset uint16) {
	word := uint16(code)
	reg = int((word >> 9) & 0x7)
	offset = sext(word, 9)
	return
}

// BaseDecode decodes LDR and STR.
// reg is DR for loads and SR for stores.
func (code Code) BaseDecode() (reg, base int, offset uint16) {
	word := uint16(code)
	reg = int((word >> 9) & 0x7)
	base = int((word >> 6) & 0x7)
	offset = sext(word, 6)
	return
}

// JmpDecode decodes the base register of JMP.
func (code Code) JmpDecode() (base int) {
	word := uint16(code)
	base = int((word >> 6) & 0x7)
	return
}

// JsrDecode decodes JSR and JSRR.
// When long is set the call is PC relative by offset, otherwise through base.
func (code Code) JsrDecode() (long bool, offset uint16, base int) {
	word := uint16(code)
	long = ((word >> 11) & 0x1) != 0
	if long {
		offset = sext(word, 11)
	} else {
		base = int((word >> 6) & 0x7)
	}
	return
}

// TrapDecode decodes the trap vector of TRAP.
func (code Code) TrapDecode() (vector uint16) {
	word := uint16(code)
	vector = word & 0xff
	return
}

// String returns the operation name and raw instruction word.
func (code Code) String() string {
	return fmt.Sprintf("%v 0x%04x", code.Opcode(), uint16(code))
}
