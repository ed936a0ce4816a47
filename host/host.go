// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides an interactive monitor for an emulated F100-L
// system: a CPU, its word-addressed memory and a debugger.
//
// Within the host it is possible to load object files into memory, step
// through and run machine code, set address and data breakpoints, trace
// memory accesses, dump and modify memory, disassemble code, inspect and
// change registers, and evaluate expressions over the machine state.
package host

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/mgutz/ansi"

	"github.com/f100l/gof100/cpu"
	"github.com/f100l/gof100/disasm"
	"github.com/f100l/gof100/loader"
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateInterrupted
	stateBreakpoint
	stateStepOverBreakpoint
	stateStopped
)

var errQuit = errors.New("exiting program")

var (
	chSame    = ansi.ColorCode("default:default")
	chChanged = ansi.ColorCode("default+bu:default")
)

type selection struct {
	command *command
	args    []string
}

// A Host represents an emulated F100-L system with a built-in debugger.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *selection
	current     *command
	state       state
	interrupt   atomic.Bool
	settings    *settings
	format      loader.Format
	order       binary.ByteOrder
	prevReg     cpu.Registers
	dataHit     *cpu.DataBreakpoint
}

// New creates a host around an existing CPU and the flat memory it is
// bound to. The host attaches its own debugger to the CPU.
func New(c *cpu.CPU, mem *cpu.FlatMemory) *Host {
	h := &Host{
		output:   bufio.NewWriter(os.Stdout),
		mem:      mem,
		cpu:      c,
		state:    stateProcessingCommands,
		settings: newSettings(),
		format:   loader.Binary,
		order:    binary.LittleEndian,
		prevReg:  c.Reg,
	}

	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	defer h.flush()

	if interactive {
		h.println()
		h.displayPC()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var sel selection
		if line != "" {
			n, args, err := cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			switch n := n.(type) {
			case *cmd.Command:
				sel = selection{command: n.Data.(*command), args: args}
			case *cmd.Tree:
				h.displayCommands(groups[n])
				continue
			}
		} else if h.lastCmd != nil {
			sel = *h.lastCmd
		}

		if sel.command == nil {
			continue
		}
		h.lastCmd = &sel
		h.current = sel.command

		if err := sel.command.run(h, sel.args); err != nil {
			break
		}
	}
}

// Break interrupts a running CPU. It may be called from any goroutine.
func (h *Host) Break() {
	h.interrupt.Store(true)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	h.println(h.stateLine())
	h.prevReg = h.cpu.Reg
}

func (h *Host) displayUsage() {
	if h.current != nil && h.current.usage != "" {
		h.printf("Syntax: %s\n", h.current.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) cmdBreakpointList(args []string) error {
	h.println("Addr  Enabled")
	h.println("----- -------")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(args []string) error {
	if len(args) < 1 {
		h.displayUsage()
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(args []string) error {
	b := h.breakpointArg(args)
	if b == nil {
		return nil
	}

	h.debugger.RemoveBreakpoint(b.Address)
	h.printf("Breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointEnable(args []string) error {
	if b := h.breakpointArg(args); b != nil {
		b.Disabled = false
		h.printf("Breakpoint at $%04X enabled.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdBreakpointDisable(args []string) error {
	if b := h.breakpointArg(args); b != nil {
		b.Disabled = true
		h.printf("Breakpoint at $%04X disabled.\n", b.Address)
	}
	return nil
}

// breakpointArg returns the breakpoint named by the first argument, or
// nil after reporting why there is none.
func (h *Host) breakpointArg(args []string) *cpu.Breakpoint {
	if len(args) < 1 {
		h.displayUsage()
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDataBreakpointList(args []string) error {
	h.println("Addr  Enabled  Value")
	h.println("----- -------  -----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%04X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(args []string) error {
	if len(args) < 1 {
		h.displayUsage()
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(args) > 1 {
		value, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, value)
		h.printf("Conditional data breakpoint added at $%04X for value $%04X.\n", addr, value)
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}

	return nil
}

func (h *Host) cmdDataBreakpointRemove(args []string) error {
	if b := h.dataBreakpointArg(args); b != nil {
		h.debugger.RemoveDataBreakpoint(b.Address)
		h.printf("Data breakpoint at $%04X removed.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdDataBreakpointEnable(args []string) error {
	if b := h.dataBreakpointArg(args); b != nil {
		b.Disabled = false
		h.printf("Data breakpoint at $%04X enabled.\n", b.Address)
	}
	return nil
}

func (h *Host) cmdDataBreakpointDisable(args []string) error {
	if b := h.dataBreakpointArg(args); b != nil {
		b.Disabled = true
		h.printf("Data breakpoint at $%04X disabled.\n", b.Address)
	}
	return nil
}

func (h *Host) dataBreakpointArg(args []string) *cpu.DataBreakpoint {
	if len(args) < 1 {
		h.displayUsage()
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDisassemble(args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	addr, err := h.addrArg(args[0], h.settings.NextDisasmAddr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	lines := h.settings.DisasmLines
	if len(args) > 1 {
		lines, err = h.parseCount(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(args []string) error {
	if len(args) < 1 {
		h.displayUsage()
		return nil
	}

	v, err := h.evalExpr(strings.Join(args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X %d\n", uint16(v), v)
	return nil
}

func (h *Host) cmdHelp(args []string) error {
	if len(args) == 0 {
		h.displayCommands(groups[cmds])
		return nil
	}

	n, _, err := cmds.Lookup(strings.Join(args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	switch n := n.(type) {
	case *cmd.Tree:
		h.displayCommands(groups[n])
	case *cmd.Command:
		c := n.Data.(*command)
		if c.usage != "" {
			h.printf("Syntax: %s\n\n", c.usage)
		}
		switch {
		case c.description != "":
			h.printf("Description:\n%s\n\n", indentWrap(3, c.description))
		case c.brief != "":
			h.printf("Description:\n%s.\n\n", indentWrap(3, c.brief))
		}
	}
	return nil
}

func (h *Host) cmdLoad(args []string) error {
	if len(args) < 1 {
		h.displayUsage()
		return nil
	}

	format, order := h.format, h.order
	var err error
	if len(args) > 1 {
		if format, err = loader.ParseFormat(args[1]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}
	if len(args) > 2 {
		if order, err = loader.ParseByteOrder(args[2]); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.load(args[0], format, order)
	return nil
}

func (h *Host) cmdMemoryDump(args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	addr, err := h.addrArg(args[0], h.settings.NextMemDumpAddr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	words := h.settings.MemDumpWords
	if len(args) > 1 {
		words, err = h.parseCount(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, words)

	h.settings.NextMemDumpAddr = addr + uint16(words)
	h.lastCmd.args = []string{"$", fmt.Sprintf("%d", words)}
	return nil
}

func (h *Host) cmdMemorySet(args []string) error {
	if len(args) < 2 {
		h.displayUsage()
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	words := make([]uint16, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		words = append(words, v)
	}

	if err := h.mem.LoadWords(addr, words); err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("Set %d word(s) at $%04X.\n", len(words), addr)
	return nil
}

func (h *Host) cmdQuit(args []string) error {
	return errQuit
}

func (h *Host) cmdRegister(args []string) error {
	switch len(args) {
	case 0:
		h.println(disasm.StateHeader)
		h.displayPC()
		return nil
	case 1:
		h.displayUsage()
		return nil
	}

	v, err := h.parseExpr(strings.Join(args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	r := &h.cpu.Reg
	name := strings.ToUpper(args[0])
	var flag *bool
	switch name {
	case "ACC", "A":
		name, r.ACC = "ACC", v
	case "OR":
		r.OR = v
	case "PC", ".":
		name, r.PC = "PC", v
	case "CR":
		r.RestoreCR(v)
	case "SP":
		if err := h.cpu.Ptr.WritePointer(0, uint32(v)); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	case "I":
		flag = &r.I
	case "Z":
		flag = &r.Z
	case "V":
		flag = &r.V
	case "S":
		flag = &r.S
	case "C":
		flag = &r.C
	case "M":
		flag = &r.M
	case "F":
		flag = &r.F
	default:
		h.printf("Unknown register '%s'.\n", args[0])
		return nil
	}

	if flag != nil {
		*flag = v != 0
		h.printf("Flag %s set to %v.\n", name, *flag)
	} else {
		h.printf("Register %s set to $%04X.\n", name, v)
	}
	return nil
}

func (h *Host) cmdReset(args []string) error {
	if len(args) > 0 {
		entry, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.Entry = entry
	}

	h.cpu.Reset()
	h.printf("CPU reset to $%04X.\n", h.cpu.Reg.PC)
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdRun(args []string) error {
	if len(args) > 0 {
		pc, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.start()
	limit := h.settings.StepLimit
	for n := 0; h.state == stateRunning; n++ {
		if limit > 0 && n >= limit {
			h.printf("Step limit of %d instructions reached.\n", limit)
			break
		}
		h.step()
	}
	if h.state != stateBreakpoint {
		h.displayPC()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()
		return nil
	case 1:
		h.displayUsage()
		return nil
	}

	key, value := args[0], strings.Join(args[1:], " ")
	prev := *h.settings

	var err error
	switch h.settings.Kind(key) {
	case reflect.Invalid:
		err = fmt.Errorf("setting '%s' not found", key)
	case reflect.String:
		err = h.settings.Set(key, value)
	case reflect.Bool:
		var b bool
		if b, err = stringToBool(value); err == nil {
			err = h.settings.Set(key, b)
		}
	default:
		var v int64
		if v, err = h.evalExpr(value); err == nil {
			err = h.settings.Set(key, v)
		}
	}

	if err == nil {
		err = h.onSettingsUpdate()
	}
	if err != nil {
		*h.settings = prev
		h.printf("%v\n", err)
		return nil
	}

	h.println("Setting updated.")
	return nil
}

func (h *Host) cmdStepIn(args []string) error {
	return h.stepCount(args, h.step)
}

func (h *Host) cmdStepOver(args []string) error {
	return h.stepCount(args, h.stepOver)
}

func (h *Host) stepCount(args []string, step func()) error {
	count := 1
	if len(args) > 0 {
		n, err := h.parseCount(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = n
	}

	h.start()
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		step()
		switch {
		case h.state == stateBreakpoint:
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) start() {
	h.interrupt.Store(false)
	h.state = stateRunning
}

// load replaces the contents of memory with an object file and resets
// the CPU.
func (h *Host) load(filename string, format loader.Format, order binary.ByteOrder) {
	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return
	}
	defer file.Close()

	h.mem.Clear()
	n, err := loader.Load(file, format, order, h.mem)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return
	}

	h.cpu.Reset()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.printf("Loaded %d words from '%s'.\n", n, filepath.Base(filename))
}

func (h *Host) step() {
	if h.interrupt.Swap(false) {
		h.println("Interrupted.")
		h.state = stateInterrupted
		return
	}

	res, err := h.cpu.SingleStep()
	switch {
	case errors.Is(err, cpu.ErrStopped):
		h.printf("CPU is %s. Use reset to restart it.\n", h.cpu.State)
		h.state = stateStopped
	case err != nil:
		h.printf("Fault: %v\n", err)
		h.state = stateStopped
	case res.Status == cpu.Halted:
		h.printf("Halted at $%04X with code $%03X after %d cycles.\n",
			h.cpu.LastPC, res.HaltCode, h.cpu.Cycles)
		h.state = stateStopped
	}

	if b := h.dataHit; b != nil {
		h.dataHit = nil
		h.printf("Data breakpoint hit on address $%04X.\n", b.Address)
		d, _ := h.disassemble(h.cpu.LastPC)
		h.println(d)
		h.displayPC()
	}
}

func (h *Host) stepOver() {
	// CAL instructions need to be handled specially.
	inst, ok := h.cpu.GetInstruction(h.cpu.Reg.PC)
	if !ok || inst.Func != cpu.FnCAL {
		h.step()
		return
	}

	// Place a step-over breakpoint on the instruction following the CAL.
	// Either modify an already existing breakpoint on that instruction, or
	// create a temporary one.
	next := h.cpu.Reg.PC + inst.Length
	tmpBreakpointCreated := false
	b := h.debugger.GetBreakpoint(next)
	if b == nil {
		b = h.debugger.AddBreakpoint(next)
		tmpBreakpointCreated = true
	}
	disabled := b.Disabled
	b.StepOver, b.Disabled = true, false

	// Run until interrupted.
	limit := h.settings.StepLimit
	for n := 0; h.state == stateRunning; n++ {
		if limit > 0 && n >= limit {
			h.printf("Step limit of %d instructions reached.\n", limit)
			h.state = stateInterrupted
			break
		}
		h.step()
	}
	b.StepOver, b.Disabled = false, disabled

	// If we were interrupted by the temporary step-over breakpoint,
	// then continue as normal.
	if h.state == stateStepOverBreakpoint {
		h.state = stateRunning
	}

	if tmpBreakpointCreated {
		h.debugger.RemoveBreakpoint(next)
	}
}

func (h *Host) onSettingsUpdate() error {
	format, err := loader.ParseFormat(h.settings.Format)
	if err != nil {
		return err
	}
	order, err := loader.ParseByteOrder(h.settings.Endianness)
	if err != nil {
		return err
	}
	h.format, h.order = format, order

	if h.settings.TraceMemory {
		h.mem.AttachTracer(cpu.TracerFunc(func(kind cpu.Access, addr uint16, v uint16) {
			h.printf("%s 0x%04X 0x%04X\n", kind, addr, v)
		}))
	} else {
		h.mem.AttachTracer(nil)
	}
	return nil
}

// addrArg resolves an address argument. "$" continues from next, or from
// PC if next is zero, and "." is the PC.
func (h *Host) addrArg(arg string, next uint16) (uint16, error) {
	switch arg {
	case "$":
		if next == 0 {
			return h.cpu.Reg.PC, nil
		}
		return next, nil
	case ".":
		return h.cpu.Reg.PC, nil
	default:
		return h.parseExpr(arg)
	}
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.evalExpr(expr)
	if err != nil {
		return 0, err
	}
	if v < -0x8000 || v > 0xffff {
		return 0, fmt.Errorf("%q: value $%X does not fit in a word", expr, v)
	}
	return uint16(v), nil
}

func (h *Host) parseCount(expr string) (int, error) {
	v, err := h.evalExpr(expr)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0x10000 {
		return 0, fmt.Errorf("%q: count %d out of range", expr, v)
	}
	return int(v), nil
}

func (h *Host) disassemble(addr uint16) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.mem, addr)

	var words []uint16
	for a := addr; a != next; a++ {
		w, ok := h.mem.Peek(a)
		if !ok {
			break
		}
		words = append(words, w)
	}

	return fmt.Sprintf("%04X-   %-14s    %s", addr, codeString(words), line), next
}

// stateLine formats the machine state the way disasm.StateLine does,
// highlighting registers that changed since the last display when
// ColorMode is set.
func (h *Host) stateLine() string {
	if !h.settings.ColorMode {
		return disasm.StateLine(h.cpu)
	}

	r, p := &h.cpu.Reg, &h.prevReg
	mark := func(s string, changed bool) string {
		if changed {
			return chChanged + s + ansi.Reset
		}
		return chSame + s + ansi.Reset
	}
	flag := func(v, prev bool) string {
		return mark(fmt.Sprintf("%d", boolToInt(v)), v != prev)
	}

	pc := r.PC
	var words []uint16
	for a := pc; a != pc+3; a++ {
		w, ok := h.mem.Peek(a)
		if !ok {
			break
		}
		words = append(words, w)
	}
	line, _ := disasm.Disassemble(h.mem, pc)

	regs := strings.Join([]string{
		mark(fmt.Sprintf("%04X", r.ACC), r.ACC != p.ACC),
		mark(fmt.Sprintf("%04X", r.OR), r.OR != p.OR),
		flag(r.I, p.I), flag(r.Z, p.Z), flag(r.V, p.V), flag(r.S, p.S),
		flag(r.C, p.C), flag(r.M, p.M), flag(r.F, p.F),
	}, " ")

	return fmt.Sprintf("  %s : %-14s : %s  : %s",
		mark(fmt.Sprintf("%04X", pc), pc != p.PC), codeString(words), regs, line)
}

func (h *Host) dumpMemory(addr0 uint16, words int) {
	if words <= 0 {
		return
	}

	top := int(h.mem.Top())
	if int(addr0) > top {
		h.printf("Address $%04X is above the top of memory ($%04X).\n", addr0, top)
		return
	}
	addr1 := min(int(addr0)+words-1, top)

	// Rows hold 8 words aligned to 8-word boundaries, followed by the
	// words' bytes as characters.
	for row := int(addr0) &^ 7; row <= addr1; row += 8 {
		buf := []byte("    -" + strings.Repeat(" ", 58))
		wordToBuf(uint16(row), buf[0:4])
		for i := 0; i < 8; i++ {
			a := row + i
			if a < int(addr0) || a > addr1 {
				continue
			}
			v, _ := h.mem.Peek(uint16(a))
			c := 6 + 5*i
			wordToBuf(v, buf[c:c+4])
			buf[47+2*i] = toPrintableChar(byte(v >> 8))
			buf[48+2*i] = toPrintableChar(byte(v))
		}
		h.println(string(buf))
	}
}

func (h *Host) displayCommands(g *group) {
	if g == nil {
		return
	}
	h.printf("%s commands:\n", g.title)
	for _, c := range g.commands {
		if c.brief != "" {
			h.printf("    %-15s  %s\n", c.name, c.brief)
		}
	}
	for _, s := range g.subtrees {
		h.printf("    %-15s  %s\n", s.name, s.brief)
	}
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if b.StepOver {
		h.state = stateStepOverBreakpoint
		return
	}
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

// onDataBreakpoint is called in the middle of a store; the report is
// deferred until the instruction completes.
func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.state = stateBreakpoint
	h.dataHit = b
}
