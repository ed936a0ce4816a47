// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// CycleTable holds the cycle cost charged for each addressing mode.
type CycleTable [modeCount]int

// DefaultCycleTable charges one cycle per memory access the mode
// performs, counting the instruction fetch. These are access counts, not
// measured timings.
var DefaultCycleTable = CycleTable{
	IMP: 1,
	DIR: 2,
	IMM: 2,
	PTR: 3,
	PTI: 4,
	PTD: 4,
	WRD: 3,
}

// Operand is the result of resolving an instruction's addressing mode.
type Operand struct {
	Value  uint16 // operand value; valid if fetched, and always for IMM
	Addr   uint16 // effective address; the literal word itself for IMM
	Cycles int    // addressing mode cycle cost
}

// Resolve the operand of a memory-reference instruction. When fetch is
// false only the effective address is computed, but pointer side effects
// and extension word reads still happen. Immediate literals are always
// read since the literal is the operand.
func (cpu *CPU) resolve(inst *Instruction, fetch bool) (op Operand, err error) {
	op.Cycles = cpu.CycleTable[inst.Mode]

	switch inst.Mode {
	case DIR:
		op.Addr = inst.N

	case IMM:
		op.Addr = inst.Addr + 1
		if op.Value, err = cpu.Mem.Read(op.Addr); err != nil {
			return op, err
		}
		cpu.Reg.OR = op.Value
		return op, nil

	case WRD:
		var w uint16
		if w, err = cpu.Mem.Read(inst.Addr + 1); err != nil {
			return op, err
		}
		op.Addr = w & 0x7fff

	case PTR:
		if op.Addr, err = cpu.Ptr.ReadPointer(inst.P); err != nil {
			return op, err
		}

	case PTI:
		var p uint16
		if p, err = cpu.Ptr.ReadPointer(inst.P); err != nil {
			return op, err
		}
		p++
		if err = cpu.Ptr.WritePointer(inst.P, uint32(p)); err != nil {
			return op, err
		}
		op.Addr = p

	case PTD:
		if op.Addr, err = cpu.Ptr.ReadPointer(inst.P); err != nil {
			return op, err
		}
		if fetch {
			if op.Value, err = cpu.Mem.Read(op.Addr); err != nil {
				return op, err
			}
			cpu.Reg.OR = op.Value
		}
		err = cpu.Ptr.WritePointer(inst.P, uint32(op.Addr)-1)
		return op, err

	default:
		panic("invalid addressing mode")
	}

	if fetch {
		if op.Value, err = cpu.Mem.Read(op.Addr); err != nil {
			return op, err
		}
		cpu.Reg.OR = op.Value
	}
	return op, nil
}

// Resolve and fetch the operand.
func (cpu *CPU) load(inst *Instruction) (Operand, error) {
	return cpu.resolve(inst, true)
}

// Resolve the effective address without fetching the operand.
func (cpu *CPU) address(inst *Instruction) (Operand, error) {
	return cpu.resolve(inst, false)
}

// Store v at addr, notifying the debugger.
func (cpu *CPU) store(addr uint16, v uint32) error {
	if err := cpu.Mem.Write(addr, v); err != nil {
		return err
	}
	if cpu.debugger != nil {
		cpu.debugger.onDataStore(cpu, addr, uint16(v))
	}
	return nil
}
