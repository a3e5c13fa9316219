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


package screen_test

import (
	"testing"

	"github.com/lassandro/gohack/pkg/screen"
)

func pixelAt(dst []byte, x, y int) [4]byte {
	i := (y*screen.WIDTH + x) * 4
	return [4]byte{dst[i], dst[i+1], dst[i+2], dst[i+3]}
}

func TestPixels(t *testing.T) {
	ram := make([]uint16, screen.WORDS)
	dst := make([]byte, screen.WIDTH*screen.HEIGHT*4)

	ram[0] = 0x0001
	ram[1] = 0x8000
	ram[screen.WORDS-1] = 0xFFFF

	screen.Pixels(ram, dst)

	black := [4]byte{0, 0, 0, 0xFF}
	white := [4]byte{0xFF, 0xFF, 0xFF, 0xFF}

	tests := []struct {
		X, Y int
		Want [4]byte
	}{
		{0, 0, black},
		{1, 0, white},
		{15, 0, white},
		{16, 0, white},
		{31, 0, black},
		{0, 1, white},
		{496, 255, black},
		{511, 255, black},
		{495, 255, white},
	}

	for _, test := range tests {
		if have := pixelAt(dst, test.X, test.Y); have != test.Want {
			t.Fatalf(
				"Pixel (%d, %d) mismatch\nwant:%v\nhave:%v",
				test.X, test.Y, test.Want, have,
			)
		}

		if have := screen.Pixel(ram, test.X, test.Y); have != (test.Want == black) {
			t.Fatalf("Pixel(%d, %d)\nwant:%t\nhave:%t", test.X, test.Y, !have, have)
		}
	}
}

func TestPixelsShortRAM(t *testing.T) {
	dst := make([]byte, screen.WIDTH*screen.HEIGHT*4)

	screen.Pixels([]uint16{0xFFFF}, dst)

	if dst[0] != 0 || dst[16*4] != 0xFF {
		t.Fatal("Expected only the first word to render black")
	}
}

func TestKeyCode(t *testing.T) {
	tests := map[rune]uint16{
		'a':  'a',
		'Z':  'Z',
		' ':  ' ',
		'~':  '~',
		'\n': screen.KEY_NEWLINE,
		'\r': screen.KEY_NEWLINE,
		0x7F: screen.KEY_BACKSPACE,
		0x1B: screen.KEY_ESC,
		'\t': 0,
		'é':  0,
	}

	for r, want := range tests {
		if have := screen.KeyCode(r); have != want {
			t.Fatalf("KeyCode(%q)\nwant:%d\nhave:%d", r, want, have)
		}
	}
}

func TestDecodeTerminal(t *testing.T) {
	tests := []struct {
		Input string
		Code  uint16
		Size  int
	}{
		{"", 0, 0},
		{"q", 'q', 1},
		{"\r", screen.KEY_NEWLINE, 1},
		{"\x1b", screen.KEY_ESC, 1},
		{"\x1b[A", screen.KEY_UP, 3},
		{"\x1b[Dx", screen.KEY_LEFT, 3},
		{"\x1b[3~", screen.KEY_DELETE, 4},
		{"\x1b[24~", screen.KEY_F12, 5},
		{"\x1bOP", screen.KEY_F1, 3},
		{"\x1b[99~", 0, 5},
		{"\x1bq", screen.KEY_ESC, 1},
	}

	for _, test := range tests {
		code, size := screen.DecodeTerminal([]byte(test.Input))

		if code != test.Code || size != test.Size {
			t.Fatalf(
				"DecodeTerminal(%q)\nwant:%d, %d\nhave:%d, %d",
				test.Input, test.Code, test.Size, code, size,
			)
		}
	}
}
