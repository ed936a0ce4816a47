// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Pointers is the file of 256 pointer registers addressed by the 8-bit P
// field of pointer-mode instructions.
type Pointers interface {
	ReadPointer(p uint8) (uint16, error)
	WritePointer(p uint8, v uint32) error
}

// MemoryPointers maps pointer P onto memory word P. Pointer accesses are
// ordinary memory accesses and are traced as such.
type MemoryPointers struct {
	Mem Memory
}

// ReadPointer loads pointer p.
func (mp MemoryPointers) ReadPointer(p uint8) (uint16, error) {
	return mp.Mem.Read(uint16(p))
}

// WritePointer stores the low 16 bits of v in pointer p.
func (mp MemoryPointers) WritePointer(p uint8, v uint32) error {
	return mp.Mem.Write(uint16(p), v)
}

// PointerFile is a bank of 256 pointer registers held apart from memory.
type PointerFile [256]uint16

// ReadPointer loads pointer p.
func (pf *PointerFile) ReadPointer(p uint8) (uint16, error) {
	return pf[p], nil
}

// WritePointer stores the low 16 bits of v in pointer p.
func (pf *PointerFile) WritePointer(p uint8, v uint32) error {
	pf[p] = uint16(v)
	return nil
}
