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


package encoding_test

import (
	"errors"
	"testing"

	"github.com/lassandro/gohack/pkg/encoding"
)

func TestDecodeWord(t *testing.T) {
	tests := []struct {
		Input string
		Want  uint16
		Error error
	}{
		{"0", 0, nil},
		{"5", 5, nil},
		{"00017", 17, nil},
		{"32767", 32767, nil},
		{"32768", 0, encoding.ErrOversized},
		{"65536", 0, encoding.ErrOversized},
		{"99999999999999999999999", 0, encoding.ErrOversized},
		{"", 0, encoding.ErrInvalid},
		{"-1", 0, encoding.ErrInvalid},
		{"12a", 0, encoding.ErrInvalid},
	}

	for _, test := range tests {
		have, err := encoding.DecodeWord(test.Input)

		if !errors.Is(err, test.Error) {
			t.Fatalf(
				"Unexpected error for %q\nwant:%v\nhave:%v",
				test.Input,
				test.Error,
				err,
			)
		}

		if have != test.Want {
			t.Fatalf(
				"Decoding mismatch for %q\nwant:%d\nhave:%d",
				test.Input,
				test.Want,
				have,
			)
		}
	}
}

func TestDecodeHex(t *testing.T) {
	for input, want := range map[string]uint16{
		"0x4000": 0x4000,
		"x6000":  0x6000,
		"xFF":    0xFF,
		"0XFFFF": 0xFFFF,
	} {
		have, err := encoding.DecodeHex(input)

		if err != nil {
			t.Fatal(err)
		}

		if have != want {
			t.Fatalf("Decoding mismatch\nwant:%#04x\nhave:%#04x", want, have)
		}
	}

	for _, input := range []string{"", "4000", "1x40", "0x10000"} {
		if _, err := encoding.DecodeHex(input); err == nil {
			t.Fatalf("Expected error for %q", input)
		}
	}
}

func TestEncodeBinary(t *testing.T) {
	for n := 0; n <= int(encoding.MaxWord); n++ {
		have := encoding.EncodeBinary(uint16(n))

		if len(have) != 16 || have[0] != '0' {
			t.Fatalf("Invalid encoding of %d: %s", n, have)
		}

		back, err := encoding.DecodeBinary(have)

		if err != nil {
			t.Fatal(err)
		}

		if back != uint16(n) {
			t.Fatalf("Round trip mismatch\nwant:%d\nhave:%d", n, back)
		}
	}

	if have := encoding.EncodeBinary(0xEC10); have != "1110110000010000" {
		t.Fatalf("Encoding mismatch\nwant:1110110000010000\nhave:%s", have)
	}
}

func TestDecodeBinaryInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"0",
		"000000000000000",
		"00000000000000000",
		"000000000000000a",
		" 000000000000000",
	} {
		if _, err := encoding.DecodeBinary(input); err == nil {
			t.Fatalf("Expected error for %q", input)
		}
	}
}
