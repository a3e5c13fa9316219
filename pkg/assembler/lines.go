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

import (
	"iter"
	"strings"
	"unicode"
)

// Lines yields every physical line of source, terminated by either "\n" or
// "\r\n". The final line is yielded even when empty, so empty input yields a
// single empty line.
func Lines(source string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := source

		for {
			i := strings.IndexByte(rest, '\n')

			if i == -1 {
				yield(rest)
				return
			}

			if !yield(strings.TrimSuffix(rest[:i], "\r")) {
				return
			}

			rest = rest[i+1:]
		}
	}
}

// Clean strips a trailing "//" comment and surrounding whitespace
func Clean(line string) string {
	line, _, _ = strings.Cut(line, "//")
	return strings.TrimSpace(line)
}

func leadingSpace(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}
