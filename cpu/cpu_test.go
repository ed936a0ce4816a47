// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f100l/gof100/cpu"
)

const origin = 0x0100

// Instruction word builders
func direct(fc, n uint16) uint16  { return fc<<12 | n&0x07ff }
func literal(fc uint16) uint16    { return fc << 12 }
func pointer(fc, p uint16) uint16 { return fc<<12 | 0x0800 | p&0xff }
func preInc(fc, p uint16) uint16  { return fc<<12 | 0x0900 | p&0xff }
func postDec(fc, p uint16) uint16 { return fc<<12 | 0x0b00 | p&0xff }
func word(fc uint16) uint16       { return fc<<12 | 0x0800 }

func loadCPU(t *testing.T, words ...uint16) *cpu.CPU {
	t.Helper()
	mem, err := cpu.NewFlatMemory(cpu.DefaultMemSize)
	require.NoError(t, err)
	require.NoError(t, mem.LoadWords(origin, words))

	c := cpu.NewCPU(mem)
	c.Entry = origin
	c.Reset()
	return c
}

func stepCPU(t *testing.T, c *cpu.CPU, steps int) cpu.Result {
	t.Helper()
	var res cpu.Result
	for i := 0; i < steps; i++ {
		var err error
		res, err = c.SingleStep()
		require.NoError(t, err)
	}
	return res
}

func poke(t *testing.T, c *cpu.CPU, addr uint16, v uint16) {
	t.Helper()
	require.NoError(t, c.Mem.Write(addr, uint32(v)))
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	assert.Equalf(t, pc, c.Reg.PC, "PC incorrect. exp: 0x%04X, got: 0x%04X", pc, c.Reg.PC)
}

func expectACC(t *testing.T, c *cpu.CPU, acc uint16) {
	t.Helper()
	assert.Equalf(t, acc, c.Reg.ACC, "ACC incorrect. exp: 0x%04X, got: 0x%04X", acc, c.Reg.ACC)
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v uint16) {
	t.Helper()
	got, ok := c.Mem.Peek(addr)
	require.True(t, ok)
	assert.Equalf(t, v, got, "memory at 0x%04X incorrect. exp: 0x%04X, got: 0x%04X", addr, v, got)
}

// flags renders C Z S V as a string for compact comparisons.
func flags(c *cpu.CPU) string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("C%d Z%d S%d V%d", b(c.Reg.C), b(c.Reg.Z), b(c.Reg.S), b(c.Reg.V))
}

func TestReset(t *testing.T) {
	c := loadCPU(t, 0x0400)
	c.Reg.ACC = 0x1234
	c.Reg.OR = 0x5678
	c.Reg.RestoreCR(0x7f)
	c.Reg.PC = 0x0300

	c.Reset()
	expectPC(t, c, origin)
	expectACC(t, c, 0)
	assert.Equal(t, uint16(0), c.Reg.OR)
	assert.Equal(t, uint16(0), c.Reg.SaveCR())
	assert.Equal(t, cpu.Running, c.State)
}

func TestHalt(t *testing.T) {
	c := loadCPU(t, 0x0405)

	res, err := c.SingleStep()
	require.NoError(t, err)
	assert.Equal(t, cpu.Halted, res.Status)
	assert.Equal(t, uint16(5), res.HaltCode)
	assert.Equal(t, cpu.Halted, c.State)
	expectPC(t, c, origin+1)

	res, err = c.SingleStep()
	assert.ErrorIs(t, err, cpu.ErrStopped)
	assert.Equal(t, cpu.Halted, res.Status)

	c.Reset()
	assert.Equal(t, cpu.Running, c.State)
	expectPC(t, c, origin)
}

func TestUnimplementedOpcode(t *testing.T) {
	c := loadCPU(t, 0xe000)

	res, err := c.SingleStep()
	require.Error(t, err)
	assert.Equal(t, cpu.Faulted, res.Status)
	assert.Equal(t, cpu.Faulted, c.State)

	var uf *cpu.UnimplementedOpcodeFault
	require.ErrorAs(t, err, &uf)
	assert.Equal(t, uint16(0xe000), uf.Word)

	var se *cpu.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, uint16(origin), se.PC)

	_, err = c.SingleStep()
	assert.ErrorIs(t, err, cpu.ErrStopped)
}

func TestAddressRangeFault(t *testing.T) {
	assert := assert.New(t)

	mem, err := cpu.NewFlatMemory(0x0300)
	require.NoError(t, err)
	require.NoError(t, mem.LoadWords(origin, []uint16{direct(cpu.FnLDA, 0x07ff)}))
	c := cpu.NewCPU(mem)
	c.Entry = origin
	c.Reset()

	_, err = c.SingleStep()
	var af *cpu.AddressRangeFault
	require.ErrorAs(t, err, &af)
	assert.Equal(uint16(0x07ff), af.Addr)
	assert.Equal(uint16(0x02ff), af.Top)
	assert.Equal(cpu.Read, af.Access)
	assert.Equal(cpu.Faulted, c.State)

	// Fetching beyond the top of memory faults as well.
	c.Reset()
	c.SetPC(0x0300)
	_, err = c.SingleStep()
	require.ErrorAs(t, err, &af)
	assert.Equal(uint16(0x0300), af.Addr)
}

func TestRunStepLimit(t *testing.T) {
	c := loadCPU(t, direct(cpu.FnJMP, origin))

	res, err := c.Run(10)
	assert.ErrorIs(t, err, cpu.ErrStepLimit)
	assert.Equal(t, cpu.Running, res.Status)
	assert.Equal(t, uint64(10), c.Steps)
	expectPC(t, c, origin)

	// The CPU remains runnable after the limit.
	_, err = c.SingleStep()
	assert.NoError(t, err)
}

func TestRunUntilHalt(t *testing.T) {
	c := loadCPU(t,
		literal(cpu.FnLDA), 0x0003,
		literal(cpu.FnADD), 0x0004,
		0x0401,
	)

	res, err := c.Run(0)
	require.NoError(t, err)
	assert.Equal(t, cpu.Halted, res.Status)
	assert.Equal(t, uint16(1), res.HaltCode)
	expectACC(t, c, 7)
	assert.Equal(t, uint64(3), c.Steps)
	assert.Equal(t, uint64(2+2+1), c.Cycles)
	assert.Equal(t, uint16(origin+4), c.LastPC)
}

func TestCycleTableOverride(t *testing.T) {
	c := loadCPU(t, direct(cpu.FnLDA, 0x0200))
	c.CycleTable[cpu.DIR] = 7

	res := stepCPU(t, c, 1)
	assert.Equal(t, 7, res.Cycles)
	assert.Equal(t, uint64(7), c.Cycles)
}

type access struct {
	kind cpu.Access
	addr uint16
	v    uint16
}

func traceRun(t *testing.T, steps int) ([]access, cpu.Registers) {
	c := loadCPU(t,
		preInc(cpu.FnLDA, 3),
		postDec(cpu.FnADS, 4),
		word(cpu.FnSUB), 0x0210,
		direct(cpu.FnSTO, 0x0211),
		0x0400,
	)
	poke(t, c, 3, 0x01ff)
	poke(t, c, 4, 0x0205)
	poke(t, c, 0x0200, 0x1111)
	poke(t, c, 0x0205, 0x2222)
	poke(t, c, 0x0210, 0x9999)

	var log []access
	c.Mem.(*cpu.FlatMemory).AttachTracer(cpu.TracerFunc(func(kind cpu.Access, addr, v uint16) {
		log = append(log, access{kind, addr, v})
	}))
	stepCPU(t, c, steps)
	return log, c.Reg
}

func TestDeterminism(t *testing.T) {
	log1, reg1 := traceRun(t, 5)
	log2, reg2 := traceRun(t, 5)
	assert.Equal(t, log1, log2)
	assert.Equal(t, reg1, reg2)
	assert.NotEmpty(t, log1)
}

type bpRecorder struct {
	hits     []uint16
	dataHits []uint16
}

func (r *bpRecorder) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	r.hits = append(r.hits, b.Address)
}

func (r *bpRecorder) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	r.dataHits = append(r.dataHits, b.Address)
}

func TestDebugger(t *testing.T) {
	assert := assert.New(t)

	c := loadCPU(t,
		literal(cpu.FnLDA), 0x0005,
		direct(cpu.FnSTO, 0x0200),
		direct(cpu.FnSTO, 0x0201),
		0x0400,
	)
	rec := &bpRecorder{}
	d := cpu.NewDebugger(rec)
	c.AttachDebugger(d)

	d.AddBreakpoint(origin + 3)
	d.AddBreakpoint(origin + 2).Disabled = true
	d.AddDataBreakpoint(0x0200)
	d.AddConditionalDataBreakpoint(0x0201, 0x0006)

	stepCPU(t, c, 4)
	assert.Equal([]uint16{origin + 3}, rec.hits)
	assert.Equal([]uint16{0x0200}, rec.dataHits)

	bps := d.GetBreakpoints()
	require.Len(t, bps, 2)
	assert.Equal(uint16(origin+2), bps[0].Address)
	assert.Len(d.GetDataBreakpoints(), 2)

	d.RemoveBreakpoint(origin + 3)
	assert.Nil(d.GetBreakpoint(origin + 3))
}

func TestGetInstruction(t *testing.T) {
	c := loadCPU(t, word(cpu.FnLDA), 0x0200, direct(cpu.FnSUB, 0x10))

	inst, ok := c.GetInstruction(origin)
	require.True(t, ok)
	assert.Equal(t, "LDA", inst.Name)
	assert.Equal(t, uint16(origin+2), c.NextAddr(origin))
	assert.Equal(t, uint16(origin+3), c.NextAddr(origin+2))
}

func TestStepErrorMessage(t *testing.T) {
	err := &cpu.StepError{PC: 0x0100, Err: &cpu.UnimplementedOpcodeFault{Word: 0xe123}}
	assert.Contains(t, err.Error(), "0x0100")
	assert.Contains(t, err.Error(), "0xE123")
	assert.True(t, errors.Is(err, err.Err))
}
