// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

// Trap vectors of the standard LC-3 service routines.
// Only the jump through the vector table is simulated.
const (
	TRAP_GETC  = 0x20 // Read a character, no echo.
	TRAP_OUT   = 0x21 // Write a character.
	TRAP_PUTS  = 0x22 // Write a word string.
	TRAP_IN    = 0x23 // Read a character, with echo.
	TRAP_PUTSP = 0x24 // Write a byte string.
	TRAP_HALT  = 0x25 // Halt.
)

var _cpu_defines = map[string]string{
	"FLAG_N":     fmt.Sprintf("0x%x", uint8(FLAG_N)),
	"FLAG_Z":     fmt.Sprintf("0x%x", uint8(FLAG_Z)),
	"FLAG_P":     fmt.Sprintf("0x%x", uint8(FLAG_P)),
	"TRAP_GETC":  fmt.Sprintf("0x%02x", TRAP_GETC),
	"TRAP_OUT":   fmt.Sprintf("0x%02x", TRAP_OUT),
	"TRAP_PUTS":  fmt.Sprintf("0x%02x", TRAP_PUTS),
	"TRAP_IN":    fmt.Sprintf("0x%02x", TRAP_IN),
	"TRAP_PUTSP": fmt.Sprintf("0x%02x", TRAP_PUTSP),
	"TRAP_HALT":  fmt.Sprintf("0x%02x", TRAP_HALT),
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Memory is the word memory the control unit executes against.
type Memory interface {
	Load(address uint16) uint16
	Store(address uint16, value uint16)
}

// ControlUnit decodes and executes LC-3 instructions.
type ControlUnit struct {
	Verbose bool // Set to enable verbose logging.
}

type execute func(regs *Registers, mem Memory, code Code)

// Dispatch by opcode. Nil entries are invalid opcodes.
var _execute = [16]execute{
	OP_BR:   executeBr,
	OP_ADD:  executeAdd,
	OP_LD:   executeLd,
	OP_ST:   executeSt,
	OP_JSR:  executeJsr,
	OP_AND:  executeAnd,
	OP_LDR:  executeLdr,
	OP_STR:  executeStr,
	OP_NOT:  executeNot,
	OP_LDI:  executeLdi,
	OP_STI:  executeSti,
	OP_JMP:  executeJmp,
	OP_LEA:  executeLea,
	OP_TRAP: executeTrap,
}

// Valid returns true if the opcode has an execution routine.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < len(_execute) && _execute[op] != nil
}

// DecodeAndExecute executes the instruction in IR.
//
// PC must already point past the instruction. An invalid opcode returns
// ErrInvalidOpcode and leaves regs and mem untouched.
func (cu *ControlUnit) DecodeAndExecute(regs *Registers, mem Memory) (err error) {
	code := Code(regs.IR)
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	op := code.Opcode()
	if !op.Valid() {
		err = ErrInvalidOpcode
		return
	}

	if cu.Verbose {
		log.Printf("%04x: %v", regs.PC-1, code)
	}

	_execute[op](regs, mem, code)

	return
}

func executeAdd(regs *Registers, mem Memory, code Code) {
	dr, sr1, imm, value := code.OperateDecode()
	if !imm {
		value = regs.R[value]
	}
	regs.R[dr] = regs.R[sr1] + value
	regs.SetCC(regs.R[dr])
}

func executeAnd(regs *Registers, mem Memory, code Code) {
	dr, sr1, imm, value := code.OperateDecode()
	if !imm {
		value = regs.R[value]
	}
	regs.R[dr] = regs.R[sr1] & value
	regs.SetCC(regs.R[dr])
}

func executeNot(regs *Registers, mem Memory, code Code) {
	dr, sr := code.NotDecode()
	regs.R[dr] = ^regs.R[sr]
	regs.SetCC(regs.R[dr])
}

func executeBr(regs *Registers, mem Memory, code Code) {
	nzp, offset := code.BrDecode()
	if nzp&regs.CC != 0 {
		regs.PC += offset
	}
}

func executeJmp(regs *Registers, mem Memory, code Code) {
	base := code.JmpDecode()
	regs.PC = regs.R[base]
}

func executeJsr(regs *Registers, mem Memory, code Code) {
	long, offset, base := code.JsrDecode()
	// R7 is linked before the base is read, so JSRR R7 returns in place.
	regs.R[7] = regs.PC
	if long {
		regs.PC += offset
	} else {
		regs.PC = regs.R[base]
	}
}

func executeLd(regs *Registers, mem Memory, code Code) {
	dr, offset := code.PcRelDecode()
	regs.R[dr] = mem.Load(regs.PC + offset)
	regs.SetCC(regs.R[dr])
}

func executeLdi(regs *Registers, mem Memory, code Code) {
	dr, offset := code.PcRelDecode()
	regs.R[dr] = mem.Load(mem.Load(regs.PC + offset))
	regs.SetCC(regs.R[dr])
}

func executeLdr(regs *Registers, mem Memory, code Code) {
	dr, base, offset := code.BaseDecode()
	regs.R[dr] = mem.Load(regs.R[base] + offset)
	regs.SetCC(regs.R[dr])
}

// executeLea also sets the condition codes, unlike the LC-3 reference ISA.
func executeLea(regs *Registers, mem Memory, code Code) {
	dr, offset := code.PcRelDecode()
	regs.R[dr] = regs.PC + offset
	regs.SetCC(regs.R[dr])
}

func executeSt(regs *Registers, mem Memory, code Code) {
	sr, offset := code.PcRelDecode()
	mem.Store(regs.PC+offset, regs.R[sr])
}

func executeSti(regs *Registers, mem Memory, code Code) {
	sr, offset := code.PcRelDecode()
	mem.Store(mem.Load(regs.PC+offset), regs.R[sr])
}

func executeStr(regs *Registers, mem Memory, code Code) {
	sr, base, offset := code.BaseDecode()
	mem.Store(regs.R[base]+offset, regs.R[sr])
}

func executeTrap(regs *Registers, mem Memory, code Code) {
	vector := code.TrapDecode()
	regs.R[7] = regs.PC
	regs.PC = mem.Load(vector)
}
