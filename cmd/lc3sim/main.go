// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	stdio "io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/lc3sim/io"
	"github.com/ezrec/lc3sim/memory"
	"github.com/ezrec/lc3sim/simulator"
)

// Options from the command line.
type Options struct {
	Image   string // .obj image file.
	Origin  string // Load address for program words.
	Steps   int    // Instructions to execute.
	Until   string // Stop expression.
	Window  string // Memory window, as address:length.
	Dot     string // Register file graphviz output.
	Verbose bool
}

// parseWindow parses an "address:length" memory window.
func parseWindow(text string) (address uint16, length int, err error) {
	addr, count, found := strings.Cut(text, ":")
	address, err = io.ParseWord(addr)
	if err != nil {
		return
	}

	length = 1
	if found {
		length, err = strconv.Atoi(count)
	}

	return
}

// loadImage reads an image file.
func loadImage(path string) (img *io.Image, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = io.ReadImage(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// setup creates a simulator with the program loaded.
func setup(opts *Options, args []string) (sim *simulator.Simulator, err error) {
	sim = simulator.NewSimulator()
	sim.Verbose = opts.Verbose

	switch {
	case len(opts.Image) != 0:
		if len(args) != 0 {
			err = fmt.Errorf("unknown arguments: %v", args)
			return
		}

		var img *io.Image
		img, err = loadImage(opts.Image)
		if err != nil {
			return
		}

		err = sim.LoadImage(img)
	case len(args) != 0:
		var base uint16
		base, err = io.ParseWord(opts.Origin)
		if err != nil {
			err = fmt.Errorf("-origin: %w", err)
			return
		}

		var words []uint16
		words, err = io.ParseWords(args...)
		if err != nil {
			return
		}

		err = sim.LoadProgram(words, base)
	default:
		err = fmt.Errorf("no program; use -f image.obj, or give program words")
	}

	return
}

// execute runs the loaded program.
func execute(sim *simulator.Simulator, opts *Options) (err error) {
	if len(opts.Until) != 0 {
		_, err = sim.RunUntil(opts.Until, opts.Steps)
	} else {
		err = sim.Run(opts.Steps)
	}

	return
}

// report prints the machine state, and writes the optional register dump.
func report(sim *simulator.Simulator, opts *Options, out stdio.Writer) (err error) {
	pp.Fprintln(out, "Registers:", sim.PeekRegisters())
	pp.Fprintln(out, "Condition Codes:", sim.PeekCC().String())
	pp.Fprintln(out, "PC:", sim.PeekPC())
	pp.Fprintln(out, "IR:", sim.PeekIR())
	pp.Fprintln(out, "Ticks:", sim.Ticks)

	if len(opts.Window) != 0 {
		var address uint16
		var length int
		address, length, err = parseWindow(opts.Window)
		if err != nil {
			err = fmt.Errorf("-m: %w", err)
			return
		}
		var words []uint16
		words, err = sim.PeekMemory(address, length)
		if err != nil {
			err = fmt.Errorf("-m: %w", err)
			return
		}
		pp.Fprintf(out, "Memory at 0x%04x: %v\n", address, words)
	}

	if len(opts.Dot) != 0 {
		var ouf *os.File
		ouf, err = os.Create(opts.Dot)
		if err != nil {
			return
		}
		memviz.Map(ouf, &sim.Registers)
		err = ouf.Close()
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.Dot, err)
			return
		}
	}

	return
}

func main() {
	opts := &Options{}

	flag.StringVar(&opts.Image, "f", "", ".obj image file to load")
	flag.StringVar(&opts.Origin, "origin", fmt.Sprintf("0x%04x", memory.USER_ORIGIN), "Load address for program words given as arguments")
	flag.IntVar(&opts.Steps, "n", simulator.RUN_FOREVER, "Instructions to execute (-1 runs until an error)")
	flag.StringVar(&opts.Until, "until", "", "Stop once this expression is true")
	flag.StringVar(&opts.Window, "m", "", "Memory window to print, as address:length")
	flag.StringVar(&opts.Dot, "dot", "", "Write a graphviz dump of the register file to this file")
	flag.BoolVar(&opts.Verbose, "v", false, "Verbose mode")

	flag.Parse()

	sim, err := setup(opts, flag.Args())
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	// A runtime error still reports the state it stopped in.
	run_err := execute(sim, opts)
	if run_err != nil {
		log.Print(run_err)
	}

	err = report(sim, opts, os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if run_err != nil {
		os.Exit(1)
	}
}
