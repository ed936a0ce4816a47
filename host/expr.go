// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/f100l/gof100/cpu"
)

// Host expressions are Starlark expressions evaluated against the machine
// state. $-prefixed numbers are hexadecimal.
var hexLiteral = regexp.MustCompile(`\$([0-9A-Fa-f]+)\b`)

func (h *Host) evalExpr(expr string) (int64, error) {
	src := "rc = " + hexLiteral.ReplaceAllString(expr, "0x${1}") + "\n"

	thread := &starlark.Thread{Name: "evaluate"}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", src, h.exprGlobals())
	if err != nil {
		return 0, fmt.Errorf("%q: %w", expr, err)
	}

	switch v := dict["rc"].(type) {
	case starlark.Int:
		n, ok := v.Int64()
		if !ok {
			return 0, fmt.Errorf("%q: value out of range", expr)
		}
		return n, nil
	case starlark.Bool:
		return int64(boolToInt(bool(v))), nil
	default:
		return 0, fmt.Errorf("%q: expected an integer, got %s", expr, dict["rc"].Type())
	}
}

// exprGlobals returns the predeclared names visible to host expressions.
func (h *Host) exprGlobals() starlark.StringDict {
	r := &h.cpu.Reg
	pred := starlark.StringDict{
		"ACC": starlark.MakeInt(int(r.ACC)),
		"OR":  starlark.MakeInt(int(r.OR)),
		"PC":  starlark.MakeInt(int(r.PC)),
		"CR":  starlark.MakeInt(int(r.SaveCR())),
		"SP":  starlark.MakeInt(int(h.peekPointer(0))),
		"I":   starlark.MakeInt(boolToInt(r.I)),
		"Z":   starlark.MakeInt(boolToInt(r.Z)),
		"V":   starlark.MakeInt(boolToInt(r.V)),
		"S":   starlark.MakeInt(boolToInt(r.S)),
		"C":   starlark.MakeInt(boolToInt(r.C)),
		"M":   starlark.MakeInt(boolToInt(r.M)),
		"F":   starlark.MakeInt(boolToInt(r.F)),
		"mem": starlark.NewBuiltin("mem", h.builtinMem),
		"ptr": starlark.NewBuiltin("ptr", h.builtinPtr),
	}
	for _, name := range []string{"ACC", "PC", "CR", "SP"} {
		pred[strings.ToLower(name)] = pred[name]
	}
	return pred
}

func (h *Host) builtinMem(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
		return nil, err
	}
	v, ok := h.mem.Peek(uint16(addr))
	if addr < 0 || addr > 0xffff || !ok {
		return nil, fmt.Errorf("%s: address 0x%04X out of range", b.Name(), addr)
	}
	return starlark.MakeInt(int(v)), nil
}

func (h *Host) builtinPtr(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	if n < 0 || n > 0xff {
		return nil, fmt.Errorf("%s: pointer %d out of range", b.Name(), n)
	}
	return starlark.MakeInt(int(h.peekPointer(uint8(n)))), nil
}

// peekPointer reads pointer register n without tracing the access.
func (h *Host) peekPointer(n uint8) uint16 {
	switch p := h.cpu.Ptr.(type) {
	case *cpu.PointerFile:
		return p[n]
	default:
		v, _ := h.mem.Peek(uint16(n))
		return v
	}
}
