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

// Pixels renders the screen memory map into dst as RGBA. Bit 0 of each word
// is the leftmost of its 16 pixels and a set bit is black. dst must hold at
// least WIDTH*HEIGHT*4 bytes; words missing from ram render white.
func Pixels(ram []uint16, dst []byte) {
	for i := 0; i < WORDS; i++ {
		var word uint16

		if i < len(ram) {
			word = ram[i]
		}

		offset := i * 16 * 4

		for bit := 0; bit < 16; bit++ {
			var shade byte = 0xFF

			if word&(1<<bit) != 0 {
				shade = 0x00
			}

			px := dst[offset+bit*4 : offset+bit*4+4]
			px[0] = shade
			px[1] = shade
			px[2] = shade
			px[3] = 0xFF
		}
	}
}

// Pixel reports whether the pixel at (x, y) is set
func Pixel(ram []uint16, x, y int) bool {
	i := y*WORDS_PER_ROW + x/16

	if x < 0 || x >= WIDTH || y < 0 || y >= HEIGHT || i >= len(ram) {
		return false
	}

	return ram[i]&(1<<(x%16)) != 0
}
