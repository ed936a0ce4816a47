// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader reads assembled F100-L object files into memory.
//
// Every supported format describes a byte-addressed image. Pairs of bytes
// are combined into words using the selected byte order, so byte address
// 2n and 2n+1 form word address n.
package loader

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/f100l/gof100/cpu"
)

// Format identifies an object file format.
type Format byte

// Supported object file formats
const (
	Binary   Format = iota // raw bytes starting at byte address 0
	Hex                    // whitespace-separated hexadecimal bytes
	IntelHex               // Intel HEX records
)

var formatNames = map[string]Format{
	"bin":  Binary,
	"hex":  Hex,
	"ihex": IntelHex,
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return "?"
}

// ParseFormat converts a format name (bin, hex or ihex) into a Format.
func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(s)]
	if !ok {
		return 0, errors.Errorf("unknown object format '%s'", s)
	}
	return f, nil
}

// ParseByteOrder converts "little" or "big" into a byte order.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "little", "le", "":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, errors.Errorf("unknown endianness '%s'", s)
	}
}

// An Image is a sparse byte-addressed memory image.
type Image struct {
	b      []byte
	loaded []bool
}

// NewImage creates an empty image holding up to size bytes.
func NewImage(size int) *Image {
	return &Image{
		b:      make([]byte, size),
		loaded: make([]bool, size),
	}
}

// Size returns the capacity of the image in bytes.
func (im *Image) Size() int {
	return len(im.b)
}

// SetByte places v at byte address addr.
func (im *Image) SetByte(addr int, v byte) error {
	if addr < 0 || addr >= len(im.b) {
		return errors.Errorf("byte address 0x%X outside image", addr)
	}
	im.b[addr] = v
	im.loaded[addr] = true
	return nil
}

// Byte returns the byte at addr and whether it was loaded.
func (im *Image) Byte(addr int) (byte, bool) {
	if addr < 0 || addr >= len(im.b) {
		return 0, false
	}
	return im.b[addr], im.loaded[addr]
}

// Word returns word address addr assembled in the given byte order, and
// whether either of its bytes was loaded.
func (im *Image) Word(addr int, order binary.ByteOrder) (uint16, bool) {
	i := addr * 2
	if i+1 >= len(im.b) {
		return 0, false
	}
	return order.Uint16(im.b[i : i+2]), im.loaded[i] || im.loaded[i+1]
}

// A WordLoader accepts words into memory.
type WordLoader interface {
	LoadWords(addr uint16, words []uint16) error
}

// Store copies every loaded word of the image into m. Words with no loaded
// byte are left untouched. It returns the number of words stored.
func (im *Image) Store(m WordLoader, order binary.ByteOrder) (int, error) {
	n := 0
	for a := 0; a < len(im.b)/2; a++ {
		w, ok := im.Word(a, order)
		if !ok {
			continue
		}
		if err := m.LoadWords(uint16(a), []uint16{w}); err != nil {
			return n, errors.Wrapf(err, "storing word 0x%04X", a)
		}
		n++
	}
	return n, nil
}

// Read parses an object file of the given format into a new image of the
// requested byte size.
func Read(r io.Reader, format Format, size int) (*Image, error) {
	im := NewImage(size)
	var err error
	switch format {
	case Binary:
		err = readBinary(r, im)
	case Hex:
		err = readHex(r, im)
	case IntelHex:
		err = readIntelHex(r, im)
	default:
		err = errors.Errorf("unknown object format %d", format)
	}
	if err != nil {
		return nil, err
	}
	return im, nil
}

// Load reads an object file and stores it into memory m. The image is
// sized to twice the number of words in m.
func Load(r io.Reader, format Format, order binary.ByteOrder, m *cpu.FlatMemory) (int, error) {
	im, err := Read(r, format, m.Size()*2)
	if err != nil {
		return 0, err
	}
	return im.Store(m, order)
}

func readBinary(r io.Reader, im *Image) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading binary image")
	}
	if len(b) > im.Size() {
		return errors.Errorf("binary image of %d bytes exceeds %d byte memory", len(b), im.Size())
	}
	for i, v := range b {
		im.b[i] = v
		im.loaded[i] = true
	}
	return nil
}
