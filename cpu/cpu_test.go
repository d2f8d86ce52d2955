package cpu

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlUnit(t *testing.T) {
	table := [](struct {
		name  string
		setup func(tm *testMachine)
		word  uint16
		check func(assert *assert.Assertions, tm *testMachine)
	}){
		{"add_reg", func(tm *testMachine) {
			tm.regs.R[1] = 5
			tm.regs.R[2] = 7
		}, encOperate(OP_ADD, 0, 1, 2), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(12), tm.regs.R[0])
			assert.Equal(FLAG_P, tm.regs.CC)
		}},
		{"add_imm", nil, 0x1263, func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(3), tm.regs.R[1])
			assert.Equal(FLAG_P, tm.regs.CC)
		}},
		{"add_imm_negative", func(tm *testMachine) {
			tm.regs.R[1] = 5
		}, encOperateImm(OP_ADD, 0, 1, -6), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0xffff), tm.regs.R[0])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"add_wrap", func(tm *testMachine) {
			tm.regs.R[1] = 0xffff
		}, encOperateImm(OP_ADD, 1, 1, 1), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0), tm.regs.R[1])
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"add_imm_min", func(tm *testMachine) {
			tm.regs.R[3] = 0x10
		}, encOperateImm(OP_ADD, 4, 3, -16), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0), tm.regs.R[4])
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"add_same_reg", func(tm *testMachine) {
			tm.regs.R[5] = 0x4000
		}, encOperate(OP_ADD, 5, 5, 5), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x8000), tm.regs.R[5])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"and_reg", func(tm *testMachine) {
			tm.regs.R[1] = 3
		}, 0x5040, func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0), tm.regs.R[0])
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"and_imm_all_ones", func(tm *testMachine) {
			tm.regs.R[1] = 0xf0f0
		}, encOperateImm(OP_AND, 2, 1, -1), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0xf0f0), tm.regs.R[2])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"and_imm", func(tm *testMachine) {
			tm.regs.R[1] = 0x00ff
		}, encOperateImm(OP_AND, 2, 1, 0x0f), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x000f), tm.regs.R[2])
			assert.Equal(FLAG_P, tm.regs.CC)
		}},
		{"not", func(tm *testMachine) {
			tm.regs.R[1] = 0x00ff
		}, encNot(2, 1), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0xff00), tm.regs.R[2])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"not_zero", func(tm *testMachine) {
			tm.regs.R[6] = 0xffff
		}, encNot(6, 6), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0), tm.regs.R[6])
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"jmp", func(tm *testMachine) {
			tm.regs.R[3] = 0x4000
		}, encJmp(3), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x4000), tm.regs.PC)
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"ret", func(tm *testMachine) {
			tm.regs.R[7] = 0x3456
		}, encJmp(7), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3456), tm.regs.PC)
		}},
		{"jsr", nil, encJsr(0x10), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3001), tm.regs.R[7])
			assert.Equal(uint16(0x3011), tm.regs.PC)
		}},
		{"jsr_back", nil, encJsr(-1024), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3001), tm.regs.R[7])
			assert.Equal(uint16(0x2c01), tm.regs.PC)
		}},
		{"jsrr", func(tm *testMachine) {
			tm.regs.R[2] = 0x5000
		}, encJsrr(2), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3001), tm.regs.R[7])
			assert.Equal(uint16(0x5000), tm.regs.PC)
		}},
		{"jsrr_r7", func(tm *testMachine) {
			tm.regs.R[7] = 0x5000
		}, encJsrr(7), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3001), tm.regs.R[7])
			assert.Equal(uint16(0x3001), tm.regs.PC)
		}},
		{"ld", func(tm *testMachine) {
			tm.mem.Store(0x3003, 0x8000)
		}, encPcRel(OP_LD, 4, 2), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x8000), tm.regs.R[4])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"ld_wrap", func(tm *testMachine) {
			tm.regs.PC = 0xffff
			tm.mem.Store(0xffff, 0x0042)
		}, encPcRel(OP_LD, 0, -1), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x0000), tm.regs.PC)
			assert.Equal(uint16(0x0042), tm.regs.R[0])
			assert.Equal(FLAG_P, tm.regs.CC)
		}},
		{"ldi", func(tm *testMachine) {
			tm.mem.Store(0x3003, 0x4000)
			tm.mem.Store(0x4000, 0x1234)
		}, encPcRel(OP_LDI, 1, 2), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x1234), tm.regs.R[1])
			assert.Equal(FLAG_P, tm.regs.CC)
		}},
		{"ldr", func(tm *testMachine) {
			tm.regs.R[0] = 0x5555
			tm.regs.R[5] = 0x4000
			tm.mem.Store(0x4000, 0x7777)
		}, encBase(OP_LDR, 0, 5, -1), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0), tm.regs.R[0])
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"ldr_wrap", func(tm *testMachine) {
			tm.regs.R[5] = 0xfff0
			tm.mem.Store(0x000f, 0x9999)
		}, encBase(OP_LDR, 3, 5, 31), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x9999), tm.regs.R[3])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"lea", nil, encPcRel(OP_LEA, 2, -1), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3000), tm.regs.R[2])
			assert.Equal(FLAG_P, tm.regs.CC)
		}},
		{"lea_sets_cc", func(tm *testMachine) {
			tm.regs.PC = 0x7fff
		}, encPcRel(OP_LEA, 2, 0), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x8000), tm.regs.R[2])
			assert.Equal(FLAG_N, tm.regs.CC)
		}},
		{"st", func(tm *testMachine) {
			tm.regs.R[3] = 0xbeef
		}, encPcRel(OP_ST, 3, 4), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0xbeef), tm.mem.Load(0x3005))
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"sti", func(tm *testMachine) {
			tm.regs.R[1] = 0x77
			tm.mem.Store(0x3001, 0x5000)
		}, encPcRel(OP_STI, 1, 0), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x77), tm.mem.Load(0x5000))
			assert.Equal(uint16(0x5000), tm.mem.Load(0x3001))
		}},
		{"str", func(tm *testMachine) {
			tm.regs.R[2] = 0x4000
			tm.regs.R[6] = 0x8009
		}, encBase(OP_STR, 6, 2, 31), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x8009), tm.mem.Load(0x401f))
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"str_back", func(tm *testMachine) {
			tm.regs.R[2] = 0x4000
			tm.regs.R[6] = 0x0009
		}, encBase(OP_STR, 6, 2, -32), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x0009), tm.mem.Load(0x3fe0))
		}},
		{"trap", func(tm *testMachine) {
			tm.mem.Store(TRAP_HALT, 0x0500)
		}, encTrap(TRAP_HALT), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x3001), tm.regs.R[7])
			assert.Equal(uint16(0x0500), tm.regs.PC)
			assert.Equal(FLAG_Z, tm.regs.CC)
		}},
		{"trap_high_vector", func(tm *testMachine) {
			tm.mem.Store(0x00ff, 0x1000)
		}, encTrap(0xff), func(assert *assert.Assertions, tm *testMachine) {
			assert.Equal(uint16(0x1000), tm.regs.PC)
		}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			tm := newTestMachine()
			if entry.setup != nil {
				entry.setup(tm)
			}
			err := tm.exec(entry.word)
			assert.NoError(err)
			assert.Equal(entry.word, tm.regs.IR)
			entry.check(assert, tm)
		})
	}
}

func TestControlUnit_Br(t *testing.T) {
	assert := assert.New(t)

	for _, cc := range []Flags{FLAG_N, FLAG_Z, FLAG_P} {
		for nzp := range Flags(8) {
			for _, offset := range []int{5, -2, 0} {
				tm := newTestMachine()
				tm.regs.CC = cc

				err := tm.exec(encBr(nzp, offset))
				assert.NoError(err)

				taken := nzp&cc != 0
				expect := uint16(0x3001)
				if taken {
					expect = uint16(0x3001 + offset)
				}
				assert.Equal(expect, tm.regs.PC, "cc:%v nzp:%v offset:%d", cc, nzp, offset)
				assert.Equal(cc, tm.regs.CC)
			}
		}
	}
}

func TestControlUnit_Invalid(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint16{0x8000, 0x8fff, 0xd000, 0xd123} {
		tm := newTestMachine()
		for n := range tm.regs.R {
			tm.regs.R[n] = uint16(0x1111 * (n + 1))
		}
		tm.regs.CC = FLAG_N
		tm.mem.Store(0x3001, 0xcafe)

		err := tm.exec(word)
		assert.ErrorIs(err, ErrInvalidOpcode)
		assert.ErrorIs(err, ErrOpcode(0))

		var eo ErrOpcode
		assert.True(errors.As(err, &eo))
		assert.Equal(Code(word), Code(eo))

		for n := range tm.regs.R {
			assert.Equal(uint16(0x1111*(n+1)), tm.regs.R[n])
		}
		assert.Equal(uint16(0x3001), tm.regs.PC)
		assert.Equal(word, tm.regs.IR)
		assert.Equal(FLAG_N, tm.regs.CC)
		assert.Equal(uint16(0xcafe), tm.mem.Load(0x3001))
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("0x25", defines["TRAP_HALT"])
	assert.Equal("0x2", defines["FLAG_Z"])

	for name, flag := range map[string]Flags{"FLAG_N": FLAG_N, "FLAG_Z": FLAG_Z, "FLAG_P": FLAG_P} {
		value, err := strconv.ParseUint(defines[name], 0, 8)
		assert.NoError(err, name)
		assert.Equal(flag, Flags(value), name)
	}
}
