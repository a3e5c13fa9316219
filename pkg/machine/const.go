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


package machine

const (
	ROM_SIZE = 1 << 15
	RAM_SIZE = 0x6001
)

const (
	MEMSPACE_DATA   uint16 = 0x0000
	MEMSPACE_SCREEN uint16 = 0x4000
	MEMSPACE_END    uint16 = RAM_SIZE
)

const (
	DEV_KBD uint16 = 0x6000
)

// Compute instruction fields
// ---- [ 1 1 1 a c c c c c c d d d j j j ]
const (
	FLAG_COMPUTE uint16 = 1 << 15
	FLAG_MEMORY  uint16 = 1 << 12

	DEST_A uint16 = 1 << 5
	DEST_D uint16 = 1 << 4
	DEST_M uint16 = 1 << 3

	JUMP_LT uint16 = 1 << 2
	JUMP_EQ uint16 = 1 << 1
	JUMP_GT uint16 = 1 << 0
)

// ALU control bits, as found in bits 6-11 of a compute instruction
const (
	ALU_ZX uint16 = 1 << 5
	ALU_NX uint16 = 1 << 4
	ALU_ZY uint16 = 1 << 3
	ALU_NY uint16 = 1 << 2
	ALU_F  uint16 = 1 << 1
	ALU_NO uint16 = 1 << 0
)
