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

const (
	INSTRUCTION_INVALID InstructionType = iota
	INSTRUCTION_LABEL
	INSTRUCTION_ADDRESS_NUMERIC
	INSTRUCTION_ADDRESS_SYMBOLIC
	INSTRUCTION_COMPUTE
)

const (
	PART_DEST PartType = iota
	PART_COMP
	PART_JUMP
)

// Key used by the dest and jump tables when the part is absent
const NULL_MNEMONIC = "null"

const (
	// First RAM address handed out to variable symbols
	VARIABLE_BASE uint16 = 16

	ADDR_SCREEN uint16 = 0x4000
	ADDR_KBD    uint16 = 0x6000
)
