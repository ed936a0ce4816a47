// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements the Ferranti F100-L instruction set and an
// emulator for it.
package cpu

import (
	"errors"
	"log"
)

// State is the execution state of the CPU.
type State byte

// CPU execution states
const (
	Running State = iota
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	default:
		return "?"
	}
}

// Result describes the outcome of a single step.
type Result struct {
	Status   State  // state after the step
	Cycles   int    // cycles charged for the step
	HaltCode uint16 // HALT code if Status is Halted
}

// CPU represents a single F100-L processor. It contains a reference to the
// memory associated with the CPU.
type CPU struct {
	Reg        Registers  // CPU registers
	Mem        Memory     // assigned memory
	Ptr        Pointers   // pointer registers
	CycleTable CycleTable // cycle cost per addressing mode
	Entry      uint16     // PC after Reset
	Cycles     uint64     // total executed CPU cycles
	Steps      uint64     // total executed instructions
	LastPC     uint16     // address of the last executed instruction
	State      State      // execution state
	Fault      error      // fault that stopped the CPU, if Faulted
	Verbose    bool       // log every instruction
	haltCode   uint16
	debugger   *Debugger
}

// NewCPU creates an emulated F100-L bound to the specified memory. Pointer
// registers are mapped onto the first 256 words of memory.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:        m,
		Ptr:        MemoryPointers{Mem: m},
		CycleTable: DefaultCycleTable,
	}
	cpu.Reset()
	return cpu
}

// Reset clears ACC, OR and the condition flags, points PC at Entry and
// makes the CPU runnable again.
func (cpu *CPU) Reset() {
	cpu.Reg.Init(cpu.Entry)
	cpu.State = Running
	cpu.Fault = nil
	cpu.haltCode = 0
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// HaltCode returns the code of the HALT instruction that stopped the CPU.
func (cpu *CPU) HaltCode() uint16 {
	return cpu.haltCode
}

// GetInstruction decodes the instruction at the requested address without
// tracing the fetch.
func (cpu *CPU) GetInstruction(addr uint16) (Instruction, bool) {
	w, ok := cpu.Mem.Peek(addr)
	if !ok {
		return Instruction{}, false
	}
	inst := Decode(w)
	inst.Addr = addr
	return inst, true
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	inst, _ := cpu.GetInstruction(addr)
	if inst.Length == 0 {
		return addr + 1
	}
	return addr + inst.Length
}

// SingleStep executes one instruction. A HALT stops the CPU and is
// reported through Result, not as an error. Faults stop the CPU and are
// returned as a *StepError. Once stopped, every call returns ErrStopped
// until Reset.
func (cpu *CPU) SingleStep() (Result, error) {
	if cpu.State != Running {
		return Result{Status: cpu.State, HaltCode: cpu.haltCode}, ErrStopped
	}

	pc := cpu.Reg.PC
	word, err := cpu.Mem.Read(pc)
	if err != nil {
		return cpu.fault(pc, Unloaded, err)
	}

	inst := Decode(word)
	inst.Addr = pc
	if inst.fn == nil {
		return cpu.fault(pc, word, &UnimplementedOpcodeFault{Word: word})
	}

	if cpu.Verbose {
		log.Printf("cpu: %04X: %04X %s %s", pc, word, inst.Name, inst.Mode)
	}

	cpu.LastPC = pc
	cpu.Reg.PC = pc + inst.Length

	cycles, err := inst.fn(cpu, &inst)
	cpu.Cycles += uint64(cycles)
	cpu.Steps++

	switch {
	case errors.Is(err, errHalt):
		cpu.State = Halted
		if cpu.Verbose {
			log.Printf("cpu: %04X: halt %d", pc, cpu.haltCode)
		}
		return Result{Status: Halted, Cycles: cycles, HaltCode: cpu.haltCode}, nil
	case err != nil:
		return cpu.fault(pc, word, err)
	}

	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
	return Result{Status: Running, Cycles: cycles}, nil
}

func (cpu *CPU) fault(pc, word uint16, err error) (Result, error) {
	cpu.State = Faulted
	cpu.Fault = &StepError{PC: pc, Word: word, Err: err}
	if cpu.Verbose {
		log.Printf("cpu: %v", cpu.Fault)
	}
	return Result{Status: Faulted}, cpu.Fault
}

// Run steps the CPU until it halts, faults or has executed limit
// instructions. A limit of zero means no limit. Reaching the limit returns
// ErrStepLimit and leaves the CPU runnable.
func (cpu *CPU) Run(limit int) (Result, error) {
	var res Result
	for n := 0; limit == 0 || n < limit; n++ {
		var err error
		res, err = cpu.SingleStep()
		if err != nil || res.Status != Running {
			return res, err
		}
	}
	return res, ErrStepLimit
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a word
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
}
