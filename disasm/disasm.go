// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements an F100-L instruction set
// disassembler.
package disasm

import (
	"fmt"

	"github.com/f100l/gof100/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = [...]string{
	cpu.IMP: "",
	cpu.DIR: " $%s",
	cpu.IMM: " ,$%s",
	cpu.PTR: " /$%s",
	cpu.PTI: " /$%s+",
	cpu.PTD: " /$%s-",
	cpu.WRD: " .$%s",
}

var targetName = [...]string{
	cpu.TargetACC: "A",
	cpu.TargetCR:  "CR",
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(m cpu.Memory, addr uint16) (line string, next uint16) {
	w, ok := m.Peek(addr)
	if !ok {
		return "????", addr + 1
	}
	inst := cpu.Decode(w)
	inst.Addr = addr
	next = addr + inst.Length

	if !inst.Implemented() {
		return fmt.Sprintf("??? $%04X", w), next
	}

	ext := func(offset uint16) string {
		return peekWord(m, addr+offset)
	}

	switch {
	case inst.Func == cpu.FnSpecial:
		line = special(&inst, ext)
	default:
		line = inst.Name + operand(&inst, ext)
		if inst.Jump {
			line += ",$" + ext(inst.Length-1)
		}
	}
	return line, next
}

func operand(inst *cpu.Instruction, ext func(uint16) string) string {
	var arg string
	switch inst.Mode {
	case cpu.IMP:
		return ""
	case cpu.DIR:
		arg = fmt.Sprintf("%03X", inst.N)
	case cpu.IMM, cpu.WRD:
		arg = ext(1)
	default:
		arg = fmt.Sprintf("%02X", inst.P)
	}
	return fmt.Sprintf(modeFormat[inst.Mode], arg)
}

func special(inst *cpu.Instruction, ext func(uint16) string) string {
	switch inst.Name {
	case "HALT":
		return fmt.Sprintf("HALT $%03X", inst.HaltCode)
	case "JBC", "JBS", "CLR", "SET":
		var target string
		if inst.Target == cpu.TargetMem {
			target = "$" + ext(1)
		} else {
			target = targetName[inst.Target]
		}
		line := fmt.Sprintf("%s %d,%s", inst.Name, inst.Bit, target)
		if inst.Jump {
			line += ",$" + ext(inst.Length-1)
		}
		return line
	default:
		return fmt.Sprintf("%s %d", inst.Name, inst.Count)
	}
}

// StateHeader is the column header printed above StateLine output.
const StateHeader = "" +
	"#                                   Condition Reg.\n" +
	"# PC   : Memory         : Acc. OR.  I Z V S C M F  : Instruction\n" +
	"# -------------------------------------------------------------------------------------------"

// GetRegisterString returns a string describing the accumulator, operand
// register and condition flags.
func GetRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("%04X %04X %d %d %d %d %d %d %d",
		r.ACC, r.OR, b2i(r.I), b2i(r.Z), b2i(r.V), b2i(r.S),
		b2i(r.C), b2i(r.M), b2i(r.F))
}

// StateLine returns one trace line for the CPU: PC, the three words of
// memory starting at PC, the registers and the disassembled instruction.
func StateLine(c *cpu.CPU) string {
	pc := c.Reg.PC
	line, _ := Disassemble(c.Mem, pc)
	return fmt.Sprintf("  %04X : %s %s %s : %s  : %s",
		pc, peekWord(c.Mem, pc), peekWord(c.Mem, pc+1), peekWord(c.Mem, pc+2),
		GetRegisterString(&c.Reg), line)
}

func peekWord(m cpu.Memory, addr uint16) string {
	v, ok := m.Peek(addr)
	if !ok {
		return "????"
	}
	return fmt.Sprintf("%04X", v)
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
