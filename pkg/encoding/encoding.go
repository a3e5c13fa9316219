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


package encoding

import (
	"errors"
	"strconv"
	"strings"
)

// Largest value an A-instruction can load: the opcode bit leaves 15 bits.
const MaxWord uint16 = 1<<15 - 1

var (
	ErrInvalid   = errors.New("Invalid numeric string")
	ErrOversized = errors.New("Value exceeds 15 bits")
)

// Decodes an unsigned base-10 string in the format: 123
func DecodeWord(s string) (uint16, error) {
	if len(s) == 0 || strings.TrimLeft(s, "0123456789") != "" {
		return 0, ErrInvalid
	}

	result, err := strconv.ParseUint(s, 10, 64)

	if errors.Is(err, strconv.ErrRange) || result > uint64(MaxWord) {
		return 0, ErrOversized
	} else if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Encodes a word as exactly 16 binary digits, most significant bit first
func EncodeBinary(word uint16) string {
	var buf [16]byte

	for i := range buf {
		buf[i] = '0' + byte((word>>(15-i))&0x1)
	}

	return string(buf[:])
}

// Decodes exactly 16 binary digits, as written by EncodeBinary
func DecodeBinary(s string) (uint16, error) {
	if len(s) != 16 || strings.Trim(s, "01") != "" {
		return 0, errors.New("Invalid binary word")
	}

	result, err := strconv.ParseUint(s, 2, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}
