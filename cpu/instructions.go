// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Function codes held in bits 15-12 of an instruction word.
const (
	FnSpecial = iota // HALT, shifts and bit instructions
	FnSJM
	FnCAL
	FnRTN
	FnSTO
	FnADS
	FnSBS
	FnICZ
	FnLDA
	FnADD
	FnSUB
	FnCMP
	FnAND
	FnNEQ
	FnUnused
	FnJMP
)

// Mode describes an operand addressing mode.
type Mode byte

// All possible operand addressing modes
const (
	IMP Mode = iota // Implied (no operand)
	DIR             // Direct: N
	IMM             // Immediate literal: ,D
	PTR             // Pointer indirect: /P
	PTI             // Pointer indirect, pre-incremented: /P+
	PTD             // Pointer indirect, post-decremented: /P-
	WRD             // Word direct: .W
	modeCount
)

var modeNames = [modeCount]string{
	"implied", "direct", "immediate", "pointer", "pointer+", "pointer-", "word",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "?"
}

// Target selects the word a bit instruction operates on.
type Target byte

// Bit instruction targets
const (
	TargetACC Target = iota // accumulator
	TargetCR                // condition register
	TargetMem               // memory word named by an extension word
	targetBad
)

// ShiftKind distinguishes the shift and rotate forms of function code 0.
type ShiftKind byte

// Shift kinds held in bits 9-8
const (
	ShiftSingle ShiftKind = iota
	ShiftDouble
	RotateSingle
	RotateDouble
)

// An Instruction is a decoded instruction word.
type Instruction struct {
	Word     uint16    // instruction word
	Addr     uint16    // address of the instruction word
	Name     string    // mnemonic
	Func     uint8     // function code
	Mode     Mode      // operand addressing mode
	N        uint16    // direct address (DIR)
	P        uint8     // pointer index (PTR, PTI, PTD)
	R        bool      // reserved bit 10 of pointer-mode words
	Length   uint16    // words occupied by the instruction
	Jump     bool      // the last word of the instruction is a jump target
	HaltCode uint16    // HALT code
	Shift    ShiftKind // shift/rotate kind
	Left     bool      // shift/rotate direction
	Logical  bool      // logical rather than arithmetic shift
	Count    uint8     // shift/rotate count
	Target   Target    // bit instruction target
	Bit      uint8     // bit instruction bit number
	fn       instfunc
}

// Implemented returns true if the instruction has a handler.
func (inst *Instruction) Implemented() bool {
	return inst.fn != nil
}

// JumpSlot returns the address of the jump target word of an instruction
// whose Jump flag is set.
func (inst *Instruction) JumpSlot() uint16 {
	return inst.Addr + inst.Length - 1
}

type instfunc func(c *CPU, inst *Instruction) (int, error)

// operand classes
const (
	opNone    = iota // no operand words
	opMemory         // memory-reference addressing modes
	opSpecial        // function code 0 sub-decoding
)

// Emulator implementation for each function code
type opcodeImpl struct {
	name    string
	operand int
	jump    bool
	fn      instfunc
}

var impl = [16]opcodeImpl{
	FnSpecial: {"", opSpecial, false, nil},
	FnSJM:     {"SJM", opNone, false, (*CPU).sjm},
	FnCAL:     {"CAL", opMemory, false, (*CPU).cal},
	FnRTN:     {"RTN", opNone, false, (*CPU).rtn},
	FnSTO:     {"STO", opMemory, false, (*CPU).sto},
	FnADS:     {"ADS", opMemory, false, (*CPU).ads},
	FnSBS:     {"SBS", opMemory, false, (*CPU).sbs},
	FnICZ:     {"ICZ", opMemory, true, (*CPU).icz},
	FnLDA:     {"LDA", opMemory, false, (*CPU).lda},
	FnADD:     {"ADD", opMemory, false, (*CPU).add},
	FnSUB:     {"SUB", opMemory, false, (*CPU).sub},
	FnCMP:     {"CMP", opMemory, false, (*CPU).cmp},
	FnAND:     {"AND", opMemory, false, (*CPU).and},
	FnNEQ:     {"NEQ", opMemory, false, (*CPU).neq},
	FnUnused:  {"???", opNone, false, nil},
	FnJMP:     {"JMP", opMemory, false, (*CPU).jmp},
}

var shiftNames = [4][2][2]string{
	// [kind][left][logical]
	ShiftSingle:  {{"SRA", "SRL"}, {"SLA", "SLL"}},
	ShiftDouble:  {{"SRAD", "SRLD"}, {"SLAD", "SLLD"}},
	RotateSingle: {{"SRE", "SRE"}, {"SLE", "SLE"}},
	RotateDouble: {{"SRED", "SRED"}, {"SLED", "SLED"}},
}

var bitNames = [4]string{"JBC", "JBS", "CLR", "SET"}

// Decode splits an instruction word into its fields. It does not touch
// memory; the extension and jump words an instruction occupies are
// accounted for in Length.
func Decode(word uint16) Instruction {
	fc := uint8(word >> 12)
	d := &impl[fc]
	inst := Instruction{
		Word:   word,
		Name:   d.name,
		Func:   fc,
		Length: 1,
		fn:     d.fn,
	}

	switch d.operand {
	case opNone:
		if fc == FnRTN && word&0x0400 != 0 {
			inst.Name = "RTC"
		}
	case opMemory:
		decodeMode(&inst)
		if d.jump {
			inst.Jump = true
			inst.Length++
		}
	case opSpecial:
		decodeSpecial(&inst)
	}
	return inst
}

func decodeMode(inst *Instruction) {
	w := inst.Word
	if w&0x0800 == 0 {
		inst.N = w & 0x07ff
		if inst.N == 0 {
			inst.Mode = IMM
			inst.Length++
		} else {
			inst.Mode = DIR
		}
		return
	}

	inst.R = w&0x0400 != 0
	inst.P = uint8(w)
	if inst.P == 0 {
		inst.Mode = WRD
		inst.Length++
		return
	}
	switch (w >> 8) & 3 {
	case 1:
		inst.Mode = PTI
	case 3:
		inst.Mode = PTD
	default:
		inst.Mode = PTR
	}
}

func decodeSpecial(inst *Instruction) {
	w := inst.Word
	switch {
	case w&0x0800 != 0:
		op := (w >> 8) & 3
		inst.Name = bitNames[op]
		inst.Target = Target((w >> 6) & 3)
		inst.Bit = uint8(w & 0x0f)
		inst.fn = (*CPU).bitop
		if inst.Target == targetBad {
			inst.Name = "???"
			inst.fn = nil
		}
		if inst.Target == TargetMem {
			inst.Mode = WRD
			inst.Length++
		}
		if op < 2 {
			inst.Jump = true
			inst.Length++
		}

	case w&0x0400 != 0:
		inst.Name = "HALT"
		inst.HaltCode = w & 0x03ff
		inst.fn = (*CPU).halt

	default:
		inst.Shift = ShiftKind((w >> 8) & 3)
		inst.Left = w&0x0080 != 0
		inst.Logical = w&0x0040 != 0
		inst.Count = uint8(w & 0x1f)
		inst.Name = shiftNames[inst.Shift][boolToIndex(inst.Left)][boolToIndex(inst.Logical)]
		inst.fn = (*CPU).shift
	}
}

func boolToIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}
