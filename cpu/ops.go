// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "errors"

// errHalt is returned by the HALT handler and never escapes SingleStep.
var errHalt = errors.New("halt")

// Bit instruction operations held in bits 9-8
const (
	bitJBC = iota
	bitJBS
	bitCLR
	bitSET
)

func (cpu *CPU) updateZS(v uint16) {
	cpu.Reg.Z = v == 0
	cpu.Reg.S = v&0x8000 != 0
}

// Add b to a, folding in the carry when M is set. Updates C, Z, S and V.
func (cpu *CPU) addition(a, b uint16) uint16 {
	r := uint32(a) + uint32(b)
	if cpu.Reg.M {
		r += boolToUint32(cpu.Reg.C)
	}
	v := uint16(r)
	cpu.Reg.C = r&0x10000 != 0
	cpu.updateZS(v)
	cpu.Reg.V = (a^b)&0x8000 == 0 && (v^a)&0x8000 != 0
	return v
}

// Subtract b from a, adding C-1 when M is set. Updates C, Z, S and V.
func (cpu *CPU) subtract(a, b uint16) uint16 {
	r := uint32(a) - uint32(b)
	if cpu.Reg.M {
		r = r + boolToUint32(cpu.Reg.C) - 1
	}
	v := uint16(r)
	cpu.Reg.C = r&0x10000 != 0
	cpu.updateZS(v)
	cpu.Reg.V = (a^b)&0x8000 != 0 && (v^b)&0x8000 == 0
	return v
}

// Jump to the address held in the instruction's jump word.
func (cpu *CPU) jumpVia(inst *Instruction) error {
	target, err := cpu.Mem.Read(inst.JumpSlot())
	if err != nil {
		return err
	}
	cpu.Reg.PC = target
	return nil
}

// Target of a control transfer: the effective address, or the literal
// itself for immediate operands.
func transferTarget(inst *Instruction, op *Operand) uint16 {
	if inst.Mode == IMM {
		return op.Value
	}
	return op.Addr
}

// Add with carry
func (cpu *CPU) add(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = cpu.addition(op.Value, cpu.Reg.ACC)
	return op.Cycles, nil
}

// Add and store
func (cpu *CPU) ads(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = cpu.addition(op.Value, cpu.Reg.ACC)
	return op.Cycles, cpu.store(op.Addr, uint32(cpu.Reg.ACC))
}

// Logical AND
func (cpu *CPU) and(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = op.Value & cpu.Reg.ACC
	cpu.updateZS(cpu.Reg.ACC)
	cpu.Reg.C = false
	cpu.Reg.V = false
	return op.Cycles, nil
}

// Bit test-and-jump, clear and set
func (cpu *CPU) bitop(inst *Instruction) (int, error) {
	var op Operand
	var word uint16
	switch inst.Target {
	case TargetACC:
		word = cpu.Reg.ACC
	case TargetCR:
		word = cpu.Reg.SaveCR()
	case TargetMem:
		var err error
		if op, err = cpu.load(inst); err != nil {
			return 0, err
		}
		word = op.Value
	}

	cycles := cpu.CycleTable[inst.Mode]
	mask := uint16(1) << inst.Bit
	bitop := (inst.Word >> 8) & 3
	switch bitop {
	case bitJBC, bitJBS:
		set := word&mask != 0
		if set == (bitop == bitJBS) {
			return cycles, cpu.jumpVia(inst)
		}
		return cycles, nil
	case bitCLR:
		word &^= mask
	case bitSET:
		word |= mask
	}

	switch inst.Target {
	case TargetACC:
		cpu.Reg.ACC = word
	case TargetCR:
		cpu.Reg.RestoreCR(word)
	case TargetMem:
		return cycles, cpu.store(op.Addr, uint32(word))
	}
	return cycles, nil
}

// Call subroutine
func (cpu *CPU) cal(inst *Instruction) (int, error) {
	op, err := cpu.address(inst)
	if err != nil {
		return 0, err
	}
	sp, err := cpu.Ptr.ReadPointer(0)
	if err != nil {
		return 0, err
	}
	if err := cpu.store(sp+1, uint32(cpu.Reg.PC)); err != nil {
		return 0, err
	}
	if err := cpu.store(sp+2, uint32(cpu.Reg.SaveCR())); err != nil {
		return 0, err
	}
	if err := cpu.Ptr.WritePointer(0, uint32(sp)+2); err != nil {
		return 0, err
	}
	cpu.Reg.PC = transferTarget(inst, &op)
	return op.Cycles, nil
}

// Compare
func (cpu *CPU) cmp(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.subtract(op.Value, cpu.Reg.ACC)
	return op.Cycles, nil
}

// Halt
func (cpu *CPU) halt(inst *Instruction) (int, error) {
	cpu.haltCode = inst.HaltCode
	return cpu.CycleTable[IMP], errHalt
}

// Increment and jump if not zero
func (cpu *CPU) icz(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	r := uint32(op.Value) + 1
	v := uint16(r)
	cpu.Reg.C = r&0x10000 != 0
	cpu.updateZS(v)
	cpu.Reg.V = op.Value == 0x7fff
	if err := cpu.store(op.Addr, r); err != nil {
		return 0, err
	}
	if v != 0 {
		return op.Cycles, cpu.jumpVia(inst)
	}
	return op.Cycles, nil
}

// Jump
func (cpu *CPU) jmp(inst *Instruction) (int, error) {
	op, err := cpu.address(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.PC = transferTarget(inst, &op)
	return op.Cycles, nil
}

// Load accumulator
func (cpu *CPU) lda(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = op.Value
	cpu.updateZS(cpu.Reg.ACC)
	return op.Cycles, nil
}

// Non-equivalence (exclusive OR)
func (cpu *CPU) neq(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = op.Value ^ cpu.Reg.ACC
	cpu.updateZS(cpu.Reg.ACC)
	cpu.Reg.C = false
	cpu.Reg.V = false
	return op.Cycles, nil
}

// Return from subroutine. RTC also restores the condition register.
func (cpu *CPU) rtn(inst *Instruction) (int, error) {
	sp, err := cpu.Ptr.ReadPointer(0)
	if err != nil {
		return 0, err
	}
	if inst.Word&0x0400 != 0 {
		cr, err := cpu.Mem.Read(sp)
		if err != nil {
			return 0, err
		}
		cpu.Reg.RestoreCR(cr)
	}
	pc, err := cpu.Mem.Read(sp - 1)
	if err != nil {
		return 0, err
	}
	if err := cpu.Ptr.WritePointer(0, uint32(sp)-2); err != nil {
		return 0, err
	}
	cpu.Reg.PC = pc
	return cpu.CycleTable[IMP], nil
}

// Subtract and store
func (cpu *CPU) sbs(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = cpu.subtract(op.Value, cpu.Reg.ACC)
	return op.Cycles, cpu.store(op.Addr, uint32(cpu.Reg.ACC))
}

// Shifts and rotates of ACC, or of ACC:OR for the double forms
func (cpu *CPU) shift(inst *Instruction) (int, error) {
	width := uint(16)
	v := uint64(cpu.Reg.ACC)
	double := inst.Shift == ShiftDouble || inst.Shift == RotateDouble
	if double {
		width = 32
		v = v<<16 | uint64(cpu.Reg.OR)
	}
	rotate := inst.Shift == RotateSingle || inst.Shift == RotateDouble

	mask := uint64(1)<<width - 1
	sign := uint64(1) << (width - 1)
	orig := v & sign
	changed := false
	for i := uint8(0); i < inst.Count; i++ {
		var out bool
		switch {
		case inst.Left:
			out = v&sign != 0
			v = (v << 1) & mask
			if rotate && out {
				v |= 1
			}
			if v&sign != orig {
				changed = true
			}
		default:
			out = v&1 != 0
			keep := v & sign
			v >>= 1
			switch {
			case rotate && out:
				v |= sign
			case !rotate && !inst.Logical:
				v |= keep
			}
		}
		cpu.Reg.C = out
	}

	if double {
		cpu.Reg.ACC = uint16(v >> 16)
		cpu.Reg.OR = uint16(v)
	} else {
		cpu.Reg.ACC = uint16(v)
	}
	cpu.Reg.Z = v == 0
	cpu.Reg.S = v&sign != 0
	if inst.Left && !rotate && !inst.Logical {
		cpu.Reg.V = changed
	}
	return cpu.CycleTable[IMP], nil
}

// Short jump relative to the accumulator
func (cpu *CPU) sjm(inst *Instruction) (int, error) {
	cpu.Reg.PC += cpu.Reg.ACC
	return cpu.CycleTable[IMP], nil
}

// Store accumulator
func (cpu *CPU) sto(inst *Instruction) (int, error) {
	op, err := cpu.address(inst)
	if err != nil {
		return 0, err
	}
	return op.Cycles, cpu.store(op.Addr, uint32(cpu.Reg.ACC))
}

// Subtract
func (cpu *CPU) sub(inst *Instruction) (int, error) {
	op, err := cpu.load(inst)
	if err != nil {
		return 0, err
	}
	cpu.Reg.ACC = cpu.subtract(op.Value, cpu.Reg.ACC)
	return op.Cycles, nil
}
