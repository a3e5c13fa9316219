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

const (
	WIDTH         = 512
	HEIGHT        = 256
	WORDS_PER_ROW = WIDTH / 16
	WORDS         = WORDS_PER_ROW * HEIGHT
)

// Hack key codes for keys without a printable character
const (
	KEY_NEWLINE   uint16 = 128
	KEY_BACKSPACE uint16 = 129
	KEY_LEFT      uint16 = 130
	KEY_UP        uint16 = 131
	KEY_RIGHT     uint16 = 132
	KEY_DOWN      uint16 = 133
	KEY_HOME      uint16 = 134
	KEY_END       uint16 = 135
	KEY_PAGE_UP   uint16 = 136
	KEY_PAGE_DOWN uint16 = 137
	KEY_INSERT    uint16 = 138
	KEY_DELETE    uint16 = 139
	KEY_ESC       uint16 = 140
	KEY_F1        uint16 = 141
	KEY_F12       uint16 = 152
)
