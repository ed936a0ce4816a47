// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"errors"

	"github.com/f100l/gof100/translate"
)

var f = translate.From

// Errors
var (
	ErrStopped   = errors.New(f("cpu stopped"))
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrMemSize   = errors.New(f("memory size out of range"))
)

// AddressRangeFault is raised when an access names an address above the
// top of the attached memory.
type AddressRangeFault struct {
	Access Access // kind of access attempted
	Addr   uint16 // offending address
	Top    uint16 // highest valid address
}

func (e *AddressRangeFault) Error() string {
	return f("address 0x%04X out of range (top 0x%04X)", e.Addr, e.Top)
}

// UnimplementedOpcodeFault is raised when the decoded instruction word
// has no handler.
type UnimplementedOpcodeFault struct {
	Word uint16 // instruction word
}

func (e *UnimplementedOpcodeFault) Error() string {
	return f("unimplemented opcode 0x%04X (function code %X)", e.Word, e.Word>>12)
}

// StepError wraps the fault raised by the instruction at PC.
type StepError struct {
	PC   uint16 // address of the faulting instruction
	Word uint16 // instruction word, or the sentinel if the fetch failed
	Err  error
}

func (e *StepError) Error() string {
	return f("0x%04X: %v", e.PC, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
