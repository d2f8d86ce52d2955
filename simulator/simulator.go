// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package simulator runs LC-3 programs.
//
// A Simulator owns one register file and one memory, and lends both to the
// control unit for each executed instruction.
package simulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/lc3sim/cpu"
	"github.com/ezrec/lc3sim/internal"
	"github.com/ezrec/lc3sim/io"
	"github.com/ezrec/lc3sim/memory"
)

const (
	RUN_FOREVER = -1 // Run until an error is raised.
)

var _simulator_defines = map[string]string{
	"RUN_FOREVER": fmt.Sprintf("%d", RUN_FOREVER),
}

// Simulator state. Registers + memory + control unit.
type Simulator struct {
	Verbose bool // If set, enables verbose logging.

	ControlUnit cpu.ControlUnit // Instruction decode and execute.
	Registers   cpu.Registers   // Register file.
	Memory      *memory.Memory  // Word memory.

	Ticks int // Instructions executed since reset.
}

// NewSimulator creates a new simulator with zeroed memory and registers.
func NewSimulator() (sim *Simulator) {
	sim = &Simulator{
		Memory: memory.NewMemory(),
	}

	sim.Registers.Reset()

	return
}

// Defines returns an iterator over all of the defines.
func (sim *Simulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_simulator_defines),
		cpu.Defines(),
		sim.Memory.Defines(),
	)
}

// Reset clears the registers, memory, and tick counter.
func (sim *Simulator) Reset() {
	if sim.Verbose {
		log.Printf("simulator: reset")
	}

	sim.Registers.Reset()
	sim.Memory.Reset()
	sim.Ticks = 0
}

// LoadProgram writes words to memory starting at origin, and sets PC to origin.
// Memory outside of the program is left as it was.
func (sim *Simulator) LoadProgram(words []uint16, origin uint16) (err error) {
	err = sim.Memory.Write(origin, words)
	if err != nil {
		return
	}

	sim.Registers.PC = origin

	if sim.Verbose {
		log.Printf("simulator: loaded %d words at 0x%04x", len(words), origin)
	}

	return
}

// LoadImage loads a program image at its origin.
func (sim *Simulator) LoadImage(img *io.Image) (err error) {
	return sim.LoadProgram(img.Words, img.Origin)
}

// Tick performs a single fetch, decode, and execute cycle.
func (sim *Simulator) Tick() (err error) {
	sim.ControlUnit.Verbose = sim.Verbose

	regs := &sim.Registers
	pc := regs.PC
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	regs.IR = sim.Memory.Load(regs.PC)
	regs.PC++

	err = sim.ControlUnit.DecodeAndExecute(regs, sim.Memory)
	if err != nil {
		return
	}

	sim.Ticks++

	return
}

// Run executes steps cycles, or until an error if steps is RUN_FOREVER.
func (sim *Simulator) Run(steps int) (err error) {
	for n := 0; steps < 0 || n < steps; n++ {
		err = sim.Tick()
		if err != nil {
			return
		}
	}

	return
}

// PeekRegisters returns the general purpose registers by name.
func (sim *Simulator) PeekRegisters() map[string]uint16 {
	return maps.Collect(sim.Registers.All())
}

// PeekMemory returns a copy of length words starting at address.
func (sim *Simulator) PeekMemory(address uint16, length int) ([]uint16, error) {
	return sim.Memory.Window(address, length)
}

// PeekCC returns the condition codes.
func (sim *Simulator) PeekCC() cpu.Flags {
	return sim.Registers.CC
}

// PeekPC returns the program counter.
func (sim *Simulator) PeekPC() uint16 {
	return sim.Registers.PC
}

// PeekIR returns the instruction register.
func (sim *Simulator) PeekIR() uint16 {
	return sim.Registers.IR
}

// String returns the current machine state as text.
func (sim *Simulator) String() string {
	return sim.Registers.String() + fmt.Sprintf("% 4s: %d\n", "T", sim.Ticks)
}
