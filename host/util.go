// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"
)

// codeString formats the instruction words of a disassembled line.
func codeString(w []uint16) string {
	var b strings.Builder
	for i, v := range w {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%04X", v)
	}
	return b.String()
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

var hexString = "0123456789ABCDEF"

func wordToBuf(v uint16, b []byte) {
	b[0] = hexString[(v>>12)&0xf]
	b[1] = hexString[(v>>8)&0xf]
	b[2] = hexString[(v>>4)&0xf]
	b[3] = hexString[v&0xf]
}

func toPrintableChar(v byte) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	default:
		return '.'
	}
}

// indentWrap wraps s to lines of at most 76 characters, each indented by
// the given number of spaces.
func indentWrap(indent int, s string) string {
	pad := strings.Repeat(" ", indent)
	var lines []string
	line := pad
	for _, word := range strings.Fields(s) {
		if len(line) > indent && len(line)+1+len(word) > 76 {
			lines = append(lines, line)
			line = pad
		}
		if len(line) > indent {
			line += " "
		}
		line += word
	}
	return strings.Join(append(lines, line), "\n")
}
