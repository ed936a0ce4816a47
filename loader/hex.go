// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Strip a trailing comment introduced by '#' or ';'.
func stripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		return line[:i]
	}
	return line
}

// readHex reads whitespace-separated hexadecimal byte values. A token of
// the form @ADDR moves the load address to byte address ADDR.
func readHex(r io.Reader, im *Image) error {
	s := bufio.NewScanner(r)
	addr := 0
	for lineno := 1; s.Scan(); lineno++ {
		for _, tok := range strings.Fields(stripComment(s.Text())) {
			if strings.HasPrefix(tok, "@") {
				a, err := strconv.ParseUint(tok[1:], 16, 32)
				if err != nil {
					return errors.Errorf("line %d: bad address '%s'", lineno, tok)
				}
				addr = int(a)
				continue
			}
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return errors.Errorf("line %d: bad byte '%s'", lineno, tok)
			}
			if err := im.SetByte(addr, byte(v)); err != nil {
				return errors.Wrapf(err, "line %d", lineno)
			}
			addr++
		}
	}
	return errors.WithStack(s.Err())
}

// Intel HEX record types
const (
	recData            = 0x00
	recEOF             = 0x01
	recExtSegmentAddr  = 0x02
	recStartSegment    = 0x03
	recExtLinearAddr   = 0x04
	recStartLinearAddr = 0x05
)

// readIntelHex reads Intel HEX records, verifying each checksum.
func readIntelHex(r io.Reader, im *Image) error {
	s := bufio.NewScanner(r)
	base := 0
	for lineno := 1; s.Scan(); lineno++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if line[0] != ':' {
			return errors.Errorf("line %d: record does not start with ':'", lineno)
		}
		rec, err := hex.DecodeString(line[1:])
		if err != nil {
			return errors.Wrapf(err, "line %d", lineno)
		}
		if len(rec) < 5 || len(rec) != int(rec[0])+5 {
			return errors.Errorf("line %d: bad record length", lineno)
		}
		var sum byte
		for _, b := range rec {
			sum += b
		}
		if sum != 0 {
			return errors.Errorf("line %d: checksum mismatch", lineno)
		}

		count := int(rec[0])
		offset := int(rec[1])<<8 | int(rec[2])
		data := rec[4 : 4+count]
		switch rec[3] {
		case recData:
			for i, b := range data {
				if err := im.SetByte(base+offset+i, b); err != nil {
					return errors.Wrapf(err, "line %d", lineno)
				}
			}
		case recEOF:
			return nil
		case recExtSegmentAddr:
			if count != 2 {
				return errors.Errorf("line %d: bad segment address record", lineno)
			}
			base = (int(data[0])<<8 | int(data[1])) << 4
		case recExtLinearAddr:
			if count != 2 {
				return errors.Errorf("line %d: bad linear address record", lineno)
			}
			base = (int(data[0])<<8 | int(data[1])) << 16
		case recStartSegment, recStartLinearAddr:
			// Start addresses have no meaning for a word image.
		default:
			return errors.Errorf("line %d: unknown record type %02X", lineno, rec[3])
		}
	}
	return errors.WithStack(s.Err())
}
