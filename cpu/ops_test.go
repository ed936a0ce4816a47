// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f100l/gof100/cpu"
)

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		acc, op  uint16
		m, carry bool
		exp      uint16
		flags    string
	}{
		{"simple", 3, 5, false, false, 2, "C0 Z0 S0 V0"},
		{"borrow", 5, 3, false, false, 0xfffe, "C1 Z0 S1 V0"},
		{"zero", 0x1234, 0x1234, false, false, 0, "C0 Z1 S0 V0"},
		{"overflow", 0x8000, 0x7fff, false, false, 0xffff, "C1 Z0 S1 V1"},
		{"overflow negative", 0x0001, 0x8000, false, false, 0x7fff, "C0 Z0 S0 V1"},
		{"chain carry set", 3, 5, true, true, 2, "C0 Z0 S0 V0"},
		{"chain carry clear", 3, 5, true, false, 1, "C0 Z0 S0 V0"},
		{"chain underflow", 0, 0, true, false, 0xffff, "C1 Z0 S1 V0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := loadCPU(t, direct(cpu.FnSUB, 0x0200))
			poke(t, c, 0x0200, test.op)
			c.Reg.ACC = test.acc
			c.Reg.M = test.m
			c.Reg.C = test.carry
			c.Reg.I = true
			c.Reg.F = true

			res := stepCPU(t, c, 1)
			expectACC(t, c, test.exp)
			assert.Equal(t, test.flags, flags(c))
			assert.True(t, c.Reg.I)
			assert.True(t, c.Reg.F)
			assert.Equal(t, test.m, c.Reg.M)
			assert.Equal(t, test.op, c.Reg.OR)
			assert.Equal(t, cpu.DefaultCycleTable[cpu.DIR], res.Cycles)
			expectPC(t, c, origin+1)
		})
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		acc, op  uint16
		m, carry bool
		exp      uint16
		flags    string
	}{
		{"simple", 3, 5, false, false, 8, "C0 Z0 S0 V0"},
		{"carry out", 0xffff, 1, false, false, 0, "C1 Z1 S0 V0"},
		{"overflow", 0x7fff, 1, false, false, 0x8000, "C0 Z0 S1 V1"},
		{"negative overflow", 0x8000, 0x8000, false, false, 0, "C1 Z1 S0 V1"},
		{"carry ignored", 1, 1, false, true, 2, "C0 Z0 S0 V0"},
		{"chain", 1, 1, true, true, 3, "C0 Z0 S0 V0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := loadCPU(t, literal(cpu.FnADD), test.op)
			c.Reg.ACC = test.acc
			c.Reg.M = test.m
			c.Reg.C = test.carry

			stepCPU(t, c, 1)
			expectACC(t, c, test.exp)
			assert.Equal(t, test.flags, flags(c))
			expectPC(t, c, origin+2)
		})
	}
}

func TestAddAndStore(t *testing.T) {
	c := loadCPU(t, direct(cpu.FnADS, 0x0200), direct(cpu.FnSBS, 0x0201))
	poke(t, c, 0x0200, 0x0010)
	poke(t, c, 0x0201, 0x0100)
	c.Reg.ACC = 0x0005

	stepCPU(t, c, 1)
	expectACC(t, c, 0x0015)
	expectMem(t, c, 0x0200, 0x0015)

	stepCPU(t, c, 1)
	expectACC(t, c, 0x00eb)
	expectMem(t, c, 0x0201, 0x00eb)
	assert.Equal(t, "C0 Z0 S0 V0", flags(c))
}

func TestCompare(t *testing.T) {
	c := loadCPU(t, literal(cpu.FnCMP), 0x0003, literal(cpu.FnCMP), 0x0009)
	c.Reg.ACC = 0x0005

	stepCPU(t, c, 1)
	expectACC(t, c, 0x0005)
	assert.Equal(t, "C1 Z0 S1 V0", flags(c))

	stepCPU(t, c, 1)
	expectACC(t, c, 0x0005)
	assert.Equal(t, "C0 Z0 S0 V0", flags(c))
}

func TestLogical(t *testing.T) {
	c := loadCPU(t,
		literal(cpu.FnAND), 0xff00,
		literal(cpu.FnNEQ), 0xf0f0,
		literal(cpu.FnNEQ), 0x5050,
	)
	c.Reg.ACC = 0xa5a5
	c.Reg.C = true
	c.Reg.V = true

	stepCPU(t, c, 1)
	expectACC(t, c, 0xa500)
	assert.Equal(t, "C0 Z0 S1 V0", flags(c))

	stepCPU(t, c, 1)
	expectACC(t, c, 0x55f0)
	assert.Equal(t, "C0 Z0 S0 V0", flags(c))

	c.Reg.ACC = 0x5050
	stepCPU(t, c, 1)
	expectACC(t, c, 0)
	assert.True(t, c.Reg.Z)
}

func TestLoadStore(t *testing.T) {
	c := loadCPU(t,
		direct(cpu.FnLDA, 0x0200),
		direct(cpu.FnSTO, 0x0201),
		literal(cpu.FnSTO), 0x0000,
	)
	poke(t, c, 0x0200, 0x8001)
	c.Reg.C = true
	c.Reg.V = true

	stepCPU(t, c, 1)
	expectACC(t, c, 0x8001)
	assert.Equal(t, "C1 Z0 S1 V1", flags(c))

	var reads []uint16
	c.Mem.(*cpu.FlatMemory).AttachTracer(cpu.TracerFunc(func(kind cpu.Access, addr, v uint16) {
		if kind == cpu.Read {
			reads = append(reads, addr)
		}
	}))
	stepCPU(t, c, 1)
	expectMem(t, c, 0x0201, 0x8001)
	assert.Equal(t, []uint16{origin + 1}, reads, "STO must not read its target")

	// The literal form stores into the literal word itself.
	stepCPU(t, c, 1)
	expectMem(t, c, origin+3, 0x8001)
	expectPC(t, c, origin+4)
}

func TestJump(t *testing.T) {
	tests := []struct {
		name  string
		words []uint16
		exp   uint16
	}{
		{"direct", []uint16{direct(cpu.FnJMP, 0x0234)}, 0x0234},
		{"literal", []uint16{literal(cpu.FnJMP), 0x4321}, 0x4321},
		{"word", []uint16{word(cpu.FnJMP), 0x8345}, 0x0345},
		{"pointer", []uint16{pointer(cpu.FnJMP, 9)}, 0x0456},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := loadCPU(t, test.words...)
			poke(t, c, 9, 0x0456)
			stepCPU(t, c, 1)
			expectPC(t, c, test.exp)
		})
	}
}

func TestShortJump(t *testing.T) {
	c := loadCPU(t, literal(cpu.FnSJM))
	c.Reg.ACC = 3
	stepCPU(t, c, 1)
	expectPC(t, c, origin+4)
}

func TestCallReturn(t *testing.T) {
	assert := assert.New(t)

	c := loadCPU(t, direct(cpu.FnCAL, 0x0200))
	require.NoError(t, c.Mem.(*cpu.FlatMemory).LoadWords(0x0200, []uint16{
		0x0a42, // CLR 2 CR
		0x3400, // RTC
	}))
	require.NoError(t, c.Mem.(*cpu.FlatMemory).LoadWords(0x0300, []uint16{
		0x3000, // RTN
	}))
	poke(t, c, 0, 0x0400)
	c.Reg.V = true

	stepCPU(t, c, 1)
	expectPC(t, c, 0x0200)
	expectMem(t, c, 0x0401, origin+1)
	expectMem(t, c, 0x0402, cpu.VBit)
	expectMem(t, c, 0, 0x0402)

	stepCPU(t, c, 1)
	assert.False(c.Reg.V)

	stepCPU(t, c, 1)
	expectPC(t, c, origin+1)
	assert.True(c.Reg.V)
	expectMem(t, c, 0, 0x0400)

	// RTN leaves the flags alone.
	c.Reg.V = false
	poke(t, c, 0x0401, 0x0250)
	poke(t, c, 0, 0x0402)
	c.SetPC(0x0300)
	stepCPU(t, c, 1)
	expectPC(t, c, 0x0250)
	assert.False(c.Reg.V)
	expectMem(t, c, 0, 0x0400)
}

func TestCallLiteral(t *testing.T) {
	c := loadCPU(t, literal(cpu.FnCAL), 0x0345)
	poke(t, c, 0, 0x0400)
	stepCPU(t, c, 1)
	expectPC(t, c, 0x0345)
	expectMem(t, c, 0x0401, origin+2)
}

func TestIncrementJump(t *testing.T) {
	c := loadCPU(t, direct(cpu.FnICZ, 0x0200), 0x0300)
	poke(t, c, 0x0200, 0xfffe)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x0200, 0xffff)
	expectPC(t, c, 0x0300)
	assert.Equal(t, "C0 Z0 S1 V0", flags(c))

	c.SetPC(origin)
	stepCPU(t, c, 1)
	expectMem(t, c, 0x0200, 0)
	expectPC(t, c, origin+2)
	assert.Equal(t, "C1 Z1 S0 V0", flags(c))
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name    string
		inst    uint16
		acc, or uint16
		carry   bool
		expACC  uint16
		expOR   uint16
		flags   string
	}{
		{"SRA", 0x0001, 0x8003, 0, false, 0xc001, 0, "C1 Z0 S1 V0"},
		{"SRL", 0x0044, 0x8010, 0, true, 0x0801, 0, "C0 Z0 S0 V0"},
		{"SLA", 0x0081, 0x4000, 0, false, 0x8000, 0, "C0 Z0 S1 V1"},
		{"SLL", 0x00c1, 0x8001, 0, false, 0x0002, 0, "C1 Z0 S0 V0"},
		{"SLL zero", 0x00c1, 0x8000, 0, false, 0x0000, 0, "C1 Z1 S0 V0"},
		{"count zero", 0x0040, 0x1234, 0, true, 0x1234, 0, "C1 Z0 S0 V0"},
		{"SLLD", 0x01c4, 0x1234, 0x5678, false, 0x2345, 0x6780, "C1 Z0 S0 V0"},
		{"SRAD", 0x0110, 0x8000, 0x0000, false, 0xffff, 0x8000, "C0 Z0 S1 V0"},
		{"SLE", 0x0281, 0x8001, 0, false, 0x0003, 0, "C1 Z0 S0 V0"},
		{"SRE", 0x0204, 0x0012, 0, false, 0x2001, 0, "C0 Z0 S0 V0"},
		{"SRED", 0x0304, 0x1234, 0x5678, false, 0x8123, 0x4567, "C1 Z0 S1 V0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := loadCPU(t, test.inst)
			c.Reg.ACC = test.acc
			c.Reg.OR = test.or
			c.Reg.C = test.carry

			res := stepCPU(t, c, 1)
			expectACC(t, c, test.expACC)
			assert.Equal(t, test.expOR, c.Reg.OR)
			assert.Equal(t, test.flags, flags(c))
			assert.Equal(t, cpu.DefaultCycleTable[cpu.IMP], res.Cycles)
		})
	}
}

func TestBitInstructions(t *testing.T) {
	t.Run("SET CR", func(t *testing.T) {
		c := loadCPU(t, 0x0b45)
		stepCPU(t, c, 1)
		assert.True(t, c.Reg.M)
	})

	t.Run("CLR ACC", func(t *testing.T) {
		c := loadCPU(t, 0x0a03)
		c.Reg.ACC = 0x000f
		stepCPU(t, c, 1)
		expectACC(t, c, 0x0007)
	})

	t.Run("JBS taken", func(t *testing.T) {
		c := loadCPU(t, 0x0900, 0x0300)
		c.Reg.ACC = 1
		stepCPU(t, c, 1)
		expectPC(t, c, 0x0300)
	})

	t.Run("JBC not taken", func(t *testing.T) {
		c := loadCPU(t, 0x0800, 0x0300)
		c.Reg.ACC = 1
		stepCPU(t, c, 1)
		expectPC(t, c, origin+2)
	})

	t.Run("JBC CR taken", func(t *testing.T) {
		c := loadCPU(t, 0x0844, 0x0300)
		stepCPU(t, c, 1)
		expectPC(t, c, 0x0300)
	})

	t.Run("SET memory", func(t *testing.T) {
		c := loadCPU(t, 0x0b82, 0x0200)
		poke(t, c, 0x0200, 0x0001)
		stepCPU(t, c, 1)
		expectMem(t, c, 0x0200, 0x0005)
		expectPC(t, c, origin+2)
	})

	t.Run("JBS memory", func(t *testing.T) {
		c := loadCPU(t, 0x098f, 0x0200, 0x0300)
		poke(t, c, 0x0200, 0x8000)
		stepCPU(t, c, 1)
		expectPC(t, c, 0x0300)
	})

	t.Run("bad target", func(t *testing.T) {
		c := loadCPU(t, 0x08c0)
		_, err := c.SingleStep()
		var uf *cpu.UnimplementedOpcodeFault
		assert.ErrorAs(t, err, &uf)
	})
}
