// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"io"
)

// Unloaded is the value held by every memory word that has not been
// written since the memory was created.
const Unloaded = 0xdead

// DefaultMemSize is the number of words in a default memory.
const DefaultMemSize = 32768

// Access identifies the kind of a memory access.
type Access byte

// Memory access kinds
const (
	Read Access = iota
	Store
)

func (a Access) String() string {
	switch a {
	case Read:
		return "READ"
	case Store:
		return "STORE"
	default:
		return "?"
	}
}

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur. Addresses are word addresses.
type Memory interface {
	// Read loads the word at addr. It fails with an *AddressRangeFault if
	// addr is above Top.
	Read(addr uint16) (uint16, error)

	// Write stores the low 16 bits of v at addr. It fails with an
	// *AddressRangeFault if addr is above Top.
	Write(addr uint16, v uint32) error

	// Peek loads the word at addr without tracing. It returns false if
	// addr is out of range.
	Peek(addr uint16) (uint16, bool)

	// Top returns the highest valid address.
	Top() uint16
}

// A Tracer receives every traced memory access in the order the accesses
// are performed.
type Tracer interface {
	OnAccess(kind Access, addr uint16, v uint16)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(kind Access, addr uint16, v uint16)

// OnAccess calls fn(kind, addr, v).
func (fn TracerFunc) OnAccess(kind Access, addr uint16, v uint16) {
	fn(kind, addr, v)
}

// NewWriterTracer returns a tracer that prints one line per access to w.
func NewWriterTracer(w io.Writer) Tracer {
	return TracerFunc(func(kind Access, addr uint16, v uint16) {
		fmt.Fprintf(w, "%s 0x%04X 0x%04X\n", kind, addr, v)
	})
}

// FlatMemory is a contiguous word store running from address 0 to Top.
type FlatMemory struct {
	w      []uint16
	tracer Tracer
}

// NewFlatMemory creates a memory of the requested number of words, every
// word holding Unloaded.
func NewFlatMemory(words int) (*FlatMemory, error) {
	if words < 1 || words > 65536 {
		return nil, ErrMemSize
	}
	m := &FlatMemory{w: make([]uint16, words)}
	m.Clear()
	return m, nil
}

// Clear resets every word to Unloaded.
func (m *FlatMemory) Clear() {
	for i := range m.w {
		m.w[i] = Unloaded
	}
}

// Top returns the highest valid address.
func (m *FlatMemory) Top() uint16 {
	return uint16(len(m.w) - 1)
}

// Size returns the number of words in the memory.
func (m *FlatMemory) Size() int {
	return len(m.w)
}

// AttachTracer routes every subsequent Read and Write through t. A nil
// tracer disables tracing.
func (m *FlatMemory) AttachTracer(t Tracer) {
	m.tracer = t
}

// Read loads the word at addr.
func (m *FlatMemory) Read(addr uint16) (uint16, error) {
	if int(addr) >= len(m.w) {
		return 0, &AddressRangeFault{Access: Read, Addr: addr, Top: m.Top()}
	}
	v := m.w[addr]
	if m.tracer != nil {
		m.tracer.OnAccess(Read, addr, v)
	}
	return v, nil
}

// Write stores the low 16 bits of v at addr.
func (m *FlatMemory) Write(addr uint16, v uint32) error {
	if int(addr) >= len(m.w) {
		return &AddressRangeFault{Access: Store, Addr: addr, Top: m.Top()}
	}
	if m.tracer != nil {
		m.tracer.OnAccess(Store, addr, uint16(v))
	}
	m.w[addr] = uint16(v)
	return nil
}

// Peek loads the word at addr without tracing.
func (m *FlatMemory) Peek(addr uint16) (uint16, bool) {
	if int(addr) >= len(m.w) {
		return 0, false
	}
	return m.w[addr], true
}

// LoadWords copies words into memory starting at addr, without tracing.
func (m *FlatMemory) LoadWords(addr uint16, words []uint16) error {
	if int(addr)+len(words) > len(m.w) {
		bad := max(len(m.w), int(addr))
		return &AddressRangeFault{Access: Store, Addr: uint16(min(bad, 0xffff)), Top: m.Top()}
	}
	copy(m.w[addr:], words)
	return nil
}
