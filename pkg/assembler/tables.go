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


package assembler

// Bit patterns for the dest field: A, D and M from most to least significant
var destTable = map[string]uint16{
	NULL_MNEMONIC: 0b000,
	"M":           0b001,
	"D":           0b010,
	"MD":          0b011,
	"A":           0b100,
	"AM":          0b101,
	"AD":          0b110,
	"AMD":         0b111,
}

// Bit patterns for the comp field, a-bit first
var compTable = map[string]uint16{
	"0":   0b0101010,
	"1":   0b0111111,
	"-1":  0b0111010,
	"D":   0b0001100,
	"A":   0b0110000,
	"!D":  0b0001101,
	"!A":  0b0110001,
	"-D":  0b0001111,
	"-A":  0b0110011,
	"D+1": 0b0011111,
	"A+1": 0b0110111,
	"D-1": 0b0001110,
	"A-1": 0b0110010,
	"D+A": 0b0000010,
	"D-A": 0b0010011,
	"A-D": 0b0000111,
	"D&A": 0b0000000,
	"D|A": 0b0010101,
	"M":   0b1110000,
	"!M":  0b1110001,
	"-M":  0b1110011,
	"M+1": 0b1110111,
	"M-1": 0b1110010,
	"D+M": 0b1000010,
	"D-M": 0b1010011,
	"M-D": 0b1000111,
	"D&M": 0b1000000,
	"D|M": 0b1010101,
}

// Bit patterns for the jump field: less than, equal, greater than
var jumpTable = map[string]uint16{
	NULL_MNEMONIC: 0b000,
	"JGT":         0b001,
	"JEQ":         0b010,
	"JGE":         0b011,
	"JLT":         0b100,
	"JNE":         0b101,
	"JLE":         0b110,
	"JMP":         0b111,
}

func DestBits(mnemonic string) (uint16, bool) {
	bits, ok := destTable[mnemonic]
	return bits, ok
}

func CompBits(mnemonic string) (uint16, bool) {
	bits, ok := compTable[mnemonic]
	return bits, ok
}

func JumpBits(mnemonic string) (uint16, bool) {
	bits, ok := jumpTable[mnemonic]
	return bits, ok
}

func lookupPart(part PartType, mnemonic string) (uint16, bool) {
	switch part {
	case PART_DEST:
		return DestBits(mnemonic)
	case PART_COMP:
		return CompBits(mnemonic)
	case PART_JUMP:
		return JumpBits(mnemonic)
	}

	return 0, false
}
