// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command is the payload stored with each node of the command tree.
type command struct {
	name        string
	brief       string
	description string
	usage       string
	run         func(h *Host, args []string) error
}

// A group lists the commands and subgroups of one command tree, in the
// order they were added, for help output.
type group struct {
	title    string
	commands []*command
	subtrees []*subtree
}

type subtree struct {
	name  string
	brief string
	group *group
}

var (
	cmds   *cmd.Tree
	groups = make(map[*cmd.Tree]*group)
)

func add(t *cmd.Tree, c *command) {
	t.AddCommand(cmd.CommandDescriptor{
		Name:        c.name,
		Brief:       c.brief,
		Description: c.description,
		Usage:       c.usage,
		Data:        c,
	})
	g := groups[t]
	g.commands = append(g.commands, c)
}

func addSubtree(parent *cmd.Tree, name, brief, title string) *cmd.Tree {
	t := parent.AddSubtree(cmd.TreeDescriptor{Name: name, Brief: brief})
	g := &group{title: title}
	groups[t] = g
	pg := groups[parent]
	pg.subtrees = append(pg.subtrees, &subtree{name: name, brief: brief, group: g})
	return t
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "gof100"})
	groups[root] = &group{title: "gof100"}

	add(root, &command{
		name:        "help",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		run:         (*Host).cmdHelp,
	})

	// Breakpoint commands
	bp := addSubtree(root, "breakpoint", "Breakpoint commands", "Breakpoint")
	add(bp, &command{
		name:        "list",
		brief:       "List breakpoints",
		description: "List all current breakpoints.",
		usage:       "breakpoint list",
		run:         (*Host).cmdBreakpointList,
	})
	add(bp, &command{
		name:  "add",
		brief: "Add a breakpoint",
		description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		usage: "breakpoint add <address>",
		run:   (*Host).cmdBreakpointAdd,
	})
	add(bp, &command{
		name:        "remove",
		brief:       "Remove a breakpoint",
		description: "Remove a breakpoint at the specified address.",
		usage:       "breakpoint remove <address>",
		run:         (*Host).cmdBreakpointRemove,
	})
	add(bp, &command{
		name:        "enable",
		brief:       "Enable a breakpoint",
		description: "Enable a previously added breakpoint.",
		usage:       "breakpoint enable <address>",
		run:         (*Host).cmdBreakpointEnable,
	})
	add(bp, &command{
		name:  "disable",
		brief: "Disable a breakpoint",
		description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running the" +
			" CPU.",
		usage: "breakpoint disable <address>",
		run:   (*Host).cmdBreakpointDisable,
	})

	// Data breakpoint commands
	db := addSubtree(root, "databreakpoint", "Data breakpoint commands", "Data breakpoint")
	add(db, &command{
		name:        "list",
		brief:       "List data breakpoints",
		description: "List all current data breakpoints.",
		usage:       "databreakpoint list",
		run:         (*Host).cmdDataBreakpointList,
	})
	add(db, &command{
		name:  "add",
		brief: "Add a data breakpoint",
		description: "Add a new data breakpoint at the specified" +
			" memory address. When the CPU stores a word at this address," +
			" the breakpoint will stop the CPU. Optionally, a word value" +
			" may be specified, and the CPU will stop only when this value" +
			" is stored. The data breakpoint starts enabled.",
		usage: "databreakpoint add <address> [<value>]",
		run:   (*Host).cmdDataBreakpointAdd,
	})
	add(db, &command{
		name:  "remove",
		brief: "Remove a data breakpoint",
		description: "Remove a previously added data breakpoint at" +
			" the specified memory address.",
		usage: "databreakpoint remove <address>",
		run:   (*Host).cmdDataBreakpointRemove,
	})
	add(db, &command{
		name:        "enable",
		brief:       "Enable a data breakpoint",
		description: "Enable a previously added data breakpoint.",
		usage:       "databreakpoint enable <address>",
		run:         (*Host).cmdDataBreakpointEnable,
	})
	add(db, &command{
		name:        "disable",
		brief:       "Disable a data breakpoint",
		description: "Disable a previously added data breakpoint.",
		usage:       "databreakpoint disable <address>",
		run:         (*Host).cmdDataBreakpointDisable,
	})

	add(root, &command{
		name:  "disassemble",
		brief: "Disassemble code",
		description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		usage: "disassemble [<address>] [<lines>]",
		run:   (*Host).cmdDisassemble,
	})
	add(root, &command{
		name:  "evaluate",
		brief: "Evaluate an expression",
		description: "Evaluate an integer expression. Registers and flags" +
			" are available by name (ACC, OR, PC, SP, CR, I, Z, V, S, C," +
			" M, F), mem(addr) reads a word of memory and ptr(n) reads" +
			" pointer register n. Hexadecimal values may be written as" +
			" $1234 or 0x1234.",
		usage: "evaluate <expression>",
		run:   (*Host).cmdEvaluate,
	})
	add(root, &command{
		name:  "load",
		brief: "Load an object file",
		description: "Load the contents of an object file into the emulated" +
			" system's memory and reset the CPU. The format (bin, hex or" +
			" ihex) and byte order (little or big) default to the current" +
			" settings.",
		usage: "load <filename> [<format>] [<endianness>]",
		run:   (*Host).cmdLoad,
	})

	// Memory commands
	me := addSubtree(root, "memory", "Memory commands", "Memory")
	add(me, &command{
		name:  "dump",
		brief: "Dump memory at address",
		description: "Dump the contents of memory starting from the" +
			" specified address. The number of words to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		usage: "memory dump [<address>] [<words>]",
		run:   (*Host).cmdMemoryDump,
	})
	add(me, &command{
		name:  "set",
		brief: "Set memory at address",
		description: "Set the contents of memory starting from the specified" +
			" address. The values to assign should be a series of" +
			" space-separated word values. You may use an expression for each" +
			" word value.",
		usage: "memory set <address> <word> [<word> ...]",
		run:   (*Host).cmdMemorySet,
	})

	add(root, &command{
		name:        "quit",
		brief:       "Quit the program",
		description: "Quit the program.",
		usage:       "quit",
		run:         (*Host).cmdQuit,
	})
	add(root, &command{
		name:  "register",
		brief: "View or change register values",
		description: "When used without arguments, this command displays the current" +
			" contents of the CPU registers. When used with arguments, this" +
			" command changes the value of a register or one of the CPU's" +
			" condition flags. Allowed register names include ACC, OR, PC and" +
			" CR. Allowed flag names are I, Z, V, S, C, M and F.",
		usage: "register [<name> <value>]",
		run:   (*Host).cmdRegister,
	})
	add(root, &command{
		name:  "reset",
		brief: "Reset the CPU",
		description: "Reset the CPU, clearing the accumulator, operand" +
			" register and condition flags and moving the program counter" +
			" to the entry address. Memory is left unchanged.",
		usage: "reset [<entry>]",
		run:   (*Host).cmdReset,
	})
	add(root, &command{
		name:  "run",
		brief: "Run the CPU",
		description: "Run the CPU until it halts or faults, a breakpoint is" +
			" hit, the StepLimit setting is reached or the user types Ctrl-C.",
		usage: "run [<address>]",
		run:   (*Host).cmdRun,
	})
	add(root, &command{
		name:  "set",
		brief: "Set a configuration variable",
		description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		usage: "set [<var> <value>]",
		run:   (*Host).cmdSet,
	})

	// Step commands
	st := addSubtree(root, "step", "Step the debugger", "Step")
	add(st, &command{
		name:  "in",
		brief: "Step into next instruction",
		description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		usage: "step in [<count>]",
		run:   (*Host).cmdStepIn,
	})
	add(st, &command{
		name:  "over",
		brief: "Step over next instruction",
		description: "Step the CPU by a single instruction. If the" +
			" instruction is a CAL, step over the subroutine." +
			" The number of steps may be specified as an option.",
		usage: "step over [<count>]",
		run:   (*Host).cmdStepOver,
	})

	// Add command shortcuts.
	root.AddShortcut("b", "breakpoint")
	root.AddShortcut("bp", "breakpoint")
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("db", "databreakpoint")
	root.AddShortcut("dbp", "databreakpoint")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step over")
	root.AddShortcut("si", "step in")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}
