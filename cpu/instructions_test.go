// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/f100l/gof100/cpu"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word   uint16
		name   string
		mode   cpu.Mode
		length uint16
	}{
		{0xa123, "SUB", cpu.DIR, 1},
		{0xa000, "SUB", cpu.IMM, 2},
		{0xa800, "SUB", cpu.WRD, 2},
		{0xa803, "SUB", cpu.PTR, 1},
		{0xa903, "SUB", cpu.PTI, 1},
		{0xaa03, "SUB", cpu.PTR, 1},
		{0xab03, "SUB", cpu.PTD, 1},
		{0x7123, "ICZ", cpu.DIR, 2},
		{0x7000, "ICZ", cpu.IMM, 3},
		{0x7800, "ICZ", cpu.WRD, 3},
		{0x1000, "SJM", cpu.IMP, 1},
		{0x3000, "RTN", cpu.IMP, 1},
		{0x3400, "RTC", cpu.IMP, 1},
		{0x0400, "HALT", cpu.IMP, 1},
		{0x0001, "SRA", cpu.IMP, 1},
		{0x00c1, "SLL", cpu.IMP, 1},
		{0x01c4, "SLLD", cpu.IMP, 1},
		{0x0281, "SLE", cpu.IMP, 1},
		{0x0304, "SRED", cpu.IMP, 1},
		{0x0b45, "SET", cpu.IMP, 1},
		{0x0a03, "CLR", cpu.IMP, 1},
		{0x0900, "JBS", cpu.IMP, 2},
		{0x0880, "JBC", cpu.WRD, 3},
		{0x0b80, "SET", cpu.WRD, 2},
	}

	for _, test := range tests {
		inst := cpu.Decode(test.word)
		assert.Equalf(t, test.name, inst.Name, "word 0x%04X", test.word)
		assert.Equalf(t, test.mode, inst.Mode, "word 0x%04X", test.word)
		assert.Equalf(t, test.length, inst.Length, "word 0x%04X", test.word)
		assert.Truef(t, inst.Implemented(), "word 0x%04X", test.word)
	}
}

func TestDecodeFields(t *testing.T) {
	assert := assert.New(t)

	inst := cpu.Decode(0xa123)
	assert.Equal(uint8(cpu.FnSUB), inst.Func)
	assert.Equal(uint16(0x123), inst.N)

	inst = cpu.Decode(0xaff7)
	assert.Equal(cpu.PTD, inst.Mode)
	assert.Equal(uint8(0xf7), inst.P)
	assert.True(inst.R)

	inst = cpu.Decode(0x07ff)
	assert.Equal("HALT", inst.Name)
	assert.Equal(uint16(0x3ff), inst.HaltCode)

	inst = cpu.Decode(0x0b4f)
	assert.Equal(cpu.TargetCR, inst.Target)
	assert.Equal(uint8(15), inst.Bit)

	inst = cpu.Decode(0x009f)
	assert.Equal("SLA", inst.Name)
	assert.Equal(uint8(31), inst.Count)
	assert.True(inst.Left)
	assert.False(inst.Logical)
}

func TestDecodeUnimplemented(t *testing.T) {
	for _, w := range []uint16{0xe000, 0xe123, 0xefff, 0x08c0, 0x0bff} {
		inst := cpu.Decode(w)
		assert.Falsef(t, inst.Implemented(), "word 0x%04X", w)
		assert.Equal(t, "???", inst.Name)
	}
}

func TestCondition(t *testing.T) {
	var r cpu.Registers
	r.RestoreCR(cpu.ZBit | cpu.CBit | 0xff00)
	assert.True(t, r.Z)
	assert.True(t, r.C)
	assert.False(t, r.M)
	assert.Equal(t, uint16(cpu.ZBit|cpu.CBit), r.SaveCR())
}
