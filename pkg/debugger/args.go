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


package debugger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lassandro/gohack/pkg/encoding"
)

// Returned when a command receives the wrong number of arguments
var ErrUsage = errors.New("Invalid argument count")

// ParseAddr accepts a decimal address or a hex one in the DecodeHex formats
func ParseAddr(s string) (uint16, error) {
	if strings.ContainsAny(s, "xX") {
		return encoding.DecodeHex(s)
	}

	value, err := strconv.ParseUint(s, 10, 16)
	return uint16(value), err
}

// ParseRange parses "from:to", or a lone "from", into a start address and
// an inclusive word count
func ParseRange(s string) (uint16, uint16, error) {
	from, to, found := strings.Cut(s, ":")

	if !found {
		to = from
	}

	start, err := ParseAddr(from)

	if err != nil {
		return 0, 0, err
	}

	end, err := ParseAddr(to)

	if err != nil {
		return 0, 0, err
	}

	if end < start {
		return 0, 0, fmt.Errorf("Invalid range %s", s)
	}

	// The full 0:65535 span does not fit a word count
	if end-start == 0xFFFF {
		return 0, 0, fmt.Errorf("Invalid range %s", s)
	}

	return start, end - start + 1, nil
}

// AddrCount parses "[0x####|symbol] [#]" command arguments. A lone decimal
// argument is a count. addr and count are returned for missing arguments.
func (dbg *Debugger) AddrCount(args []string, addr, count uint16) (uint16, uint16, error) {
	if len(args) > 2 {
		return 0, 0, ErrUsage
	}

	if len(args) > 0 {
		if resolved, err := dbg.Resolve(args[0]); err == nil {
			addr = resolved
		} else if value, perr := strconv.ParseUint(args[0], 10, 16); perr == nil {
			count = uint16(value)
		} else {
			return 0, 0, err
		}
	}

	if len(args) > 1 {
		value, err := strconv.ParseUint(args[1], 10, 16)

		if err != nil {
			return 0, 0, err
		}

		count = uint16(value)
	}

	return addr, count, nil
}
