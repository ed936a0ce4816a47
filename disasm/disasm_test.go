// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f100l/gof100/cpu"
	"github.com/f100l/gof100/disasm"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		words []uint16
		line  string
	}{
		{[]uint16{0xa123}, "SUB $123"},
		{[]uint16{0xa000, 0x0005}, "SUB ,$0005"},
		{[]uint16{0x8803}, "LDA /$03"},
		{[]uint16{0x8912}, "LDA /$12+"},
		{[]uint16{0x4bff}, "STO /$FF-"},
		{[]uint16{0xf800, 0x1234}, "JMP .$1234"},
		{[]uint16{0x7200, 0x0300}, "ICZ $200,$0300"},
		{[]uint16{0x0403}, "HALT $003"},
		{[]uint16{0x00c4}, "SLL 4"},
		{[]uint16{0x0304}, "SRED 4"},
		{[]uint16{0x0b45}, "SET 5,CR"},
		{[]uint16{0x0a03}, "CLR 3,A"},
		{[]uint16{0x0984, 0x0200, 0x0300}, "JBS 4,$0200,$0300"},
		{[]uint16{0x3400}, "RTC"},
		{[]uint16{0x1000}, "SJM"},
		{[]uint16{0xe123}, "??? $E123"},
	}

	for _, test := range tests {
		mem, err := cpu.NewFlatMemory(0x1000)
		require.NoError(t, err)
		require.NoError(t, mem.LoadWords(0x0100, test.words))

		line, next := disasm.Disassemble(mem, 0x0100)
		assert.Equal(t, test.line, line)
		assert.Equal(t, uint16(0x0100+len(test.words)), next, test.line)
	}
}

func TestDisassembleOutOfRange(t *testing.T) {
	mem, err := cpu.NewFlatMemory(0x0100)
	require.NoError(t, err)
	require.NoError(t, mem.LoadWords(0x00ff, []uint16{0xa000}))

	line, next := disasm.Disassemble(mem, 0x00ff)
	assert.Equal(t, "SUB ,$????", line)
	assert.Equal(t, uint16(0x0101), next)

	line, _ = disasm.Disassemble(mem, 0x0200)
	assert.Equal(t, "????", line)
}

func TestStateLine(t *testing.T) {
	mem, err := cpu.NewFlatMemory(0x1000)
	require.NoError(t, err)
	require.NoError(t, mem.LoadWords(0x0100, []uint16{0x8000, 0x1234}))

	c := cpu.NewCPU(mem)
	c.SetPC(0x0100)
	c.Reg.ACC = 0x00ff
	c.Reg.Z = true
	c.Reg.F = true

	assert.Equal(t,
		"  0100 : 8000 1234 DEAD : 00FF 0000 0 1 0 0 0 0 1  : LDA ,$1234",
		disasm.StateLine(c))
}
