// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers contains the architectural state of the processor.
type Registers struct {
	ACC uint16 // accumulator
	OR  uint16 // operand register
	PC  uint16 // program counter
	I   bool   // CR: interrupt
	Z   bool   // CR: zero
	V   bool   // CR: overflow
	S   bool   // CR: sign
	C   bool   // CR: carry
	M   bool   // CR: multi-length
	F   bool   // CR: fail
}

// Bits assigned to the condition register word
const (
	IBit = 1 << 0
	ZBit = 1 << 1
	VBit = 1 << 2
	SBit = 1 << 3
	CBit = 1 << 4
	MBit = 1 << 5
	FBit = 1 << 6
)

// SaveCR packs the condition flags into a word.
func (r *Registers) SaveCR() uint16 {
	var cr uint16
	if r.I {
		cr |= IBit
	}
	if r.Z {
		cr |= ZBit
	}
	if r.V {
		cr |= VBit
	}
	if r.S {
		cr |= SBit
	}
	if r.C {
		cr |= CBit
	}
	if r.M {
		cr |= MBit
	}
	if r.F {
		cr |= FBit
	}
	return cr
}

// RestoreCR unpacks the condition flags from a word. Bits above FBit are
// ignored.
func (r *Registers) RestoreCR(cr uint16) {
	r.I = (cr & IBit) != 0
	r.Z = (cr & ZBit) != 0
	r.V = (cr & VBit) != 0
	r.S = (cr & SBit) != 0
	r.C = (cr & CBit) != 0
	r.M = (cr & MBit) != 0
	r.F = (cr & FBit) != 0
}

func boolToUint32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// Init clears ACC, OR and every flag and points PC at entry.
func (r *Registers) Init(entry uint16) {
	r.ACC = 0
	r.OR = 0
	r.PC = entry
	r.RestoreCR(0)
}
