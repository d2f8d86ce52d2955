package cpu

import (
	"github.com/ezrec/lc3sim/memory"
)

// Instruction encoders for tests.

func encOperate(op Opcode, dr, sr1, sr2 int) uint16 {
	return uint16(op)<<12 | uint16(dr)<<9 | uint16(sr1)<<6 | uint16(sr2)
}

func encOperateImm(op Opcode, dr, sr1, imm int) uint16 {
	return uint16(op)<<12 | uint16(dr)<<9 | uint16(sr1)<<6 | 0x20 | (uint16(imm) & 0x1f)
}

func encNot(dr, sr int) uint16 {
	return uint16(OP_NOT)<<12 | uint16(dr)<<9 | uint16(sr)<<6 | 0x3f
}

func encBr(nzp Flags, offset int) uint16 {
	return uint16(OP_BR)<<12 | uint16(nzp)<<9 | (uint16(offset) & 0x1ff)
}

func encJmp(base int) uint16 {
	return uint16(OP_JMP)<<12 | uint16(base)<<6
}

func encJsr(offset int) uint16 {
	return uint16(OP_JSR)<<12 | 0x800 | (uint16(offset) & 0x7ff)
}

func encJsrr(base int) uint16 {
	return uint16(OP_JSR)<<12 | uint16(base)<<6
}

func encPcRel(op Opcode, reg, offset int) uint16 {
	return uint16(op)<<12 | uint16(reg)<<9 | (uint16(offset) & 0x1ff)
}

func encBase(op Opcode, reg, base, offset int) uint16 {
	return uint16(op)<<12 | uint16(reg)<<9 | uint16(base)<<6 | (uint16(offset) & 0x3f)
}

func encTrap(vector int) uint16 {
	return uint16(OP_TRAP)<<12 | (uint16(vector) & 0xff)
}

// testMachine is a register file and memory driven directly through a
// control unit, without a fetch loop.
type testMachine struct {
	regs Registers
	mem  *memory.Memory
	cu   ControlUnit
}

func newTestMachine() (tm *testMachine) {
	tm = &testMachine{
		mem: memory.NewMemory(),
	}
	tm.regs.Reset()
	tm.regs.PC = memory.USER_ORIGIN

	return
}

// exec executes word as though it had just been fetched from PC.
func (tm *testMachine) exec(word uint16) error {
	tm.regs.IR = word
	tm.regs.PC++
	return tm.cu.DecodeAndExecute(&tm.regs, tm.mem)
}
