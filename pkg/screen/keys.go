// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


package screen

import (
	"bytes"
)

// KeyCode maps a typed character to its Hack key code, or 0 if the
// character has none
func KeyCode(r rune) uint16 {
	switch {
	case r == '\n' || r == '\r':
		return KEY_NEWLINE
	case r == '\b' || r == 0x7F:
		return KEY_BACKSPACE
	case r == 0x1B:
		return KEY_ESC
	case r >= ' ' && r <= '~':
		return uint16(r)
	}

	return 0
}

// Escape sequences sent by common terminals, without the leading ESC
var terminalKeys = map[string]uint16{
	"[A":   KEY_UP,
	"[B":   KEY_DOWN,
	"[C":   KEY_RIGHT,
	"[D":   KEY_LEFT,
	"[H":   KEY_HOME,
	"[F":   KEY_END,
	"OH":   KEY_HOME,
	"OF":   KEY_END,
	"[1~":  KEY_HOME,
	"[2~":  KEY_INSERT,
	"[3~":  KEY_DELETE,
	"[4~":  KEY_END,
	"[5~":  KEY_PAGE_UP,
	"[6~":  KEY_PAGE_DOWN,
	"OP":   KEY_F1,
	"OQ":   KEY_F1 + 1,
	"OR":   KEY_F1 + 2,
	"OS":   KEY_F1 + 3,
	"[15~": KEY_F1 + 4,
	"[17~": KEY_F1 + 5,
	"[18~": KEY_F1 + 6,
	"[19~": KEY_F1 + 7,
	"[20~": KEY_F1 + 8,
	"[21~": KEY_F1 + 9,
	"[23~": KEY_F1 + 10,
	"[24~": KEY_F12,
}

// DecodeTerminal decodes the first key in raw terminal input, returning its
// Hack code and the number of bytes consumed. Unknown escape sequences are
// consumed whole and decode to 0.
func DecodeTerminal(input []byte) (uint16, int) {
	if len(input) == 0 {
		return 0, 0
	}

	if input[0] != 0x1B || len(input) == 1 {
		return KeyCode(rune(input[0])), 1
	}

	seq := input[1:]

	switch seq[0] {
	case '[':
		// CSI: parameters then a final byte in 0x40-0x7E
		end := bytes.IndexFunc(seq[1:], func(r rune) bool {
			return r >= 0x40 && r <= 0x7E
		})

		if end == -1 {
			return 0, len(input)
		}

		seq = seq[:end+2]

	case 'O':
		if len(seq) < 2 {
			return KEY_ESC, 1
		}

		seq = seq[:2]

	default:
		return KEY_ESC, 1
	}

	return terminalKeys[string(seq)], len(seq) + 1
}
