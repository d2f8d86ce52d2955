// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package simulator

import (
	"log"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Watch is an expression compiled once and evaluated against the live
// machine state of its simulator.
type Watch struct {
	Expr string // Expression source.

	sim *Simulator
	env starlark.StringDict // Predeclared names, refreshed before each evaluation.
	fn  *starlark.Function
}

// refresh updates the machine state names in env.
func (sim *Simulator) refresh(env starlark.StringDict) {
	regs := &sim.Registers
	for name, value := range regs.All() {
		env[name] = starlark.MakeInt(int(value))
	}
	env["PC"] = starlark.MakeInt(int(regs.PC))
	env["IR"] = starlark.MakeInt(int(regs.IR))
	env["CC"] = starlark.MakeInt(int(regs.CC))
	env["N"] = starlark.Bool(regs.CC.N())
	env["Z"] = starlark.Bool(regs.CC.Z())
	env["P"] = starlark.Bool(regs.CC.P())
	env["TICKS"] = starlark.MakeInt(sim.Ticks)
}

// builtinMem implements mem(address). The address wraps to 16 bits.
func (sim *Simulator) builtinMem(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var address int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &address)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(sim.Memory.Load(uint16(address)))), nil
}

// Compile parses expr as a single expression over the defines, the
// registers, the condition codes, and a mem(address) builtin.
func (sim *Simulator) Compile(expr string) (watch *Watch, err error) {
	env := starlark.StringDict{}
	for key, str := range sim.Defines() {
		value, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			continue
		}
		env[key] = starlark.MakeInt64(value)
	}
	env["mem"] = starlark.NewBuiltin("mem", sim.builtinMem)
	sim.refresh(env)

	opts := syntax.FileOptions{}
	fn, err := starlark.ExprFuncOptions(&opts, "expr", expr, env)
	if err != nil {
		return
	}

	watch = &Watch{
		Expr: expr,
		sim:  sim,
		env:  env,
		fn:   fn,
	}

	return
}

// Value evaluates the watch against the current machine state.
// Booleans evaluate to 0 or 1.
func (watch *Watch) Value() (value int64, err error) {
	watch.sim.refresh(watch.env)

	thread := &starlark.Thread{Name: "eval"}
	rc, err := starlark.Call(thread, watch.fn, nil, nil)
	if err != nil {
		return
	}

	switch rc := rc.(type) {
	case starlark.Int:
		var ok bool
		value, ok = rc.Int64()
		if !ok {
			err = ErrExpression
		}
	case starlark.Bool:
		if rc {
			value = 1
		}
	default:
		err = ErrExpression
	}

	return
}

// Eval evaluates an expression against the current machine state.
func (sim *Simulator) Eval(expr string) (value int64, err error) {
	watch, err := sim.Compile(expr)
	if err != nil {
		return
	}

	return watch.Value()
}

// RunUntil executes up to steps cycles (or forever, if steps is RUN_FOREVER),
// stopping after the first cycle that leaves expr non-zero.
func (sim *Simulator) RunUntil(expr string, steps int) (hit bool, err error) {
	// Reject a bad expression before anything executes.
	watch, err := sim.Compile(expr)
	if err != nil {
		return
	}

	var value int64
	for n := 0; steps < 0 || n < steps; n++ {
		err = sim.Tick()
		if err != nil {
			return
		}

		value, err = watch.Value()
		if err != nil {
			return
		}

		if value != 0 {
			if sim.Verbose {
				log.Printf("simulator: '%v' at pc 0x%04x", expr, sim.Registers.PC)
			}
			hit = true
			return
		}
	}

	return
}
