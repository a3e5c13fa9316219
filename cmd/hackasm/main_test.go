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


package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
)

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"Add.asm":         "Add.hack",
		"dir/Pong.asm":    "Pong.hack",
		"noext":           "noext.hack",
		"a.b/prog.v2.asm": "prog.v2.hack",
	}

	for in, want := range tests {
		if have := outputName(in, ".hack"); have != want {
			t.Fatalf("outputName(%s)\nwant:%s\nhave:%s", in, want, have)
		}
	}

	if have := debugName("build/Add.hack"); have != "build/Add.hackdb" {
		t.Fatalf("debugName mismatch\nwant:build/Add.hackdb\nhave:%s", have)
	}
}

func TestUnderline(t *testing.T) {
	source := "@1\n  D=Q;JMP\nM=D"

	_, err := assembler.Assemble(source)

	var posErr assembler.PositionError

	if !errors.As(err, &posErr) {
		t.Fatalf("Expected PositionError\nhave:%v", err)
	}

	cursor := posErr.GetPosition()

	if have := sourceLine(source, cursor.Line); have != "  D=Q;JMP" {
		t.Fatalf("Source line mismatch\nwant:  D=Q;JMP\nhave:%s", have)
	}

	if have := underline(cursor); have != "    ^" {
		t.Fatalf("Underline mismatch\nwant:%q\nhave:%q", "    ^", have)
	}

	if have := underline(assembler.Cursor{Line: 1, Column: 2, Size: 3}); have != " ^~~" {
		t.Fatalf("Underline mismatch\nwant:%q\nhave:%q", " ^~~", have)
	}
}

func TestSymbolEntries(t *testing.T) {
	var table assembler.DebugTable

	_, err := assembler.AssembleHack(strings.NewReader(
		"@FIRST\n(FIRST)\n(SECOND)\n@SECOND\n(X)\n@1\n(X)\n@X\n@v",
	), &table)

	if err != nil {
		t.Fatal(err)
	}

	want := map[string]uint16{
		"FIRST": 1, "SECOND": 1, "X": 3, "v": 16, "SP": 0, "KBD": 0x6000,
	}

	entries := symbolEntries(&table)

	if len(entries) != 23+4 {
		t.Fatalf("Entry count\nwant:27\nhave:%d", len(entries))
	}

	for _, entry := range entries {
		if addr, exists := want[entry.Name]; exists && addr != entry.Addr {
			t.Fatalf("Symbol %s\nwant:%d\nhave:%d", entry.Name, addr, entry.Addr)
		}
	}

	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name >= entries[i].Name {
			t.Fatalf("Entries out of order: %s, %s", entries[i-1].Name, entries[i].Name)
		}
	}
}
