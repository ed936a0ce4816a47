// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/f100l/gof100/cpu"
	"github.com/f100l/gof100/disasm"
	"github.com/f100l/gof100/host"
	"github.com/f100l/gof100/loader"
)

var (
	filename    string
	formatName  string
	endianness  string
	traceOn     bool
	maxSteps    int
	entry       uint
	memWords    int
	interactive bool
	verbose     bool
)

func init() {
	flag.StringVar(&filename, "f", "", "object file to load")
	flag.StringVar(&formatName, "g", "bin", "object file format: bin, hex or ihex")
	flag.StringVar(&endianness, "e", "little", "byte order of words in the object file: little or big")
	flag.BoolVar(&traceOn, "t", false, "print all memory transactions")
	flag.IntVar(&maxSteps, "n", 1000, "maximum instructions in batch mode, 0 for no limit")
	flag.UintVar(&entry, "entry", 0, "program counter after reset")
	flag.IntVar(&memWords, "m", cpu.DefaultMemSize, "memory size in words")
	flag.BoolVar(&interactive, "i", false, "start the interactive host")
	flag.BoolVar(&verbose, "v", false, "log every executed instruction")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: gof100 [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("gof100: ")

	if entry > 0xffff {
		log.Fatalf("entry address 0x%X out of range", entry)
	}

	mem, err := cpu.NewFlatMemory(memWords)
	if err != nil {
		log.Fatalf("%v", err)
	}

	c := cpu.NewCPU(mem)
	c.Entry = uint16(entry)
	c.Verbose = verbose

	if filename != "" {
		if err := load(filename, mem); err != nil {
			log.Fatalf("%v", err)
		}
	}
	c.Reset()

	if interactive || filename == "" {
		runHost(c, mem)
		return
	}

	if traceOn {
		mem.AttachTracer(cpu.NewWriterTracer(os.Stdout))
	}
	os.Exit(runBatch(os.Stdout, c, mem, maxSteps))
}

func load(filename string, mem *cpu.FlatMemory) error {
	format, err := loader.ParseFormat(formatName)
	if err != nil {
		return err
	}
	order, err := loader.ParseByteOrder(endianness)
	if err != nil {
		return err
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = loader.Load(file, format, order, mem)
	return err
}

// runBatch prints the machine state before every step until the CPU
// reaches an unloaded word, halts, faults or has run limit instructions.
// It returns the process exit status.
func runBatch(w io.Writer, c *cpu.CPU, mem *cpu.FlatMemory, limit int) int {
	fmt.Fprintln(w, disasm.StateHeader)
	for n := 0; limit == 0 || n < limit; n++ {
		if v, ok := mem.Peek(c.Reg.PC); ok && v == cpu.Unloaded {
			return 0
		}

		fmt.Fprintln(w, disasm.StateLine(c))

		res, err := c.SingleStep()
		switch {
		case err != nil:
			fmt.Fprintf(w, "Fault: %v\n", err)
			return 1
		case res.Status == cpu.Halted:
			fmt.Fprintf(w, "Halted at 0x%04X with code 0x%03X after %d cycles\n",
				c.LastPC, res.HaltCode, c.Cycles)
			return 0
		}
	}
	fmt.Fprintf(w, "Step limit of %d instructions reached\n", limit)
	return 0
}

func runHost(c *cpu.CPU, mem *cpu.FlatMemory) {
	h := host.New(c, mem)

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatalf("%v", err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go handleInterrupt(h, ch)

	// Run commands interactively.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func handleInterrupt(h *host.Host, ch chan os.Signal) {
	for {
		<-ch
		h.Break()
	}
}
