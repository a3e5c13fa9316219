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
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/gohack/pkg/encoding"
)

// FirstPass parses the whole source, binding each label to the number of
// real instructions that precede it. The returned list excludes labels.
// Programs referencing more variables than fit between VARIABLE_BASE and
// encoding.MaxWord fail with *OversizedVariablesError.
func FirstPass(source string, symbols *SymbolTable) ([]Instruction, error) {
	return firstPass(source, symbols, nil)
}

type symbolReference struct {
	Name     string
	Position Cursor
}

func firstPass(source string, symbols *SymbolTable, debug *DebugTable) ([]Instruction, error) {
	var instructions []Instruction
	var references []symbolReference
	var lineNum int

	seen := make(map[string]bool)

	for line := range Lines(source) {
		lineNum++

		instruction, err := ParseLine(line, lineNum)

		if err != nil {
			return nil, err
		}

		if instruction == nil {
			continue
		}

		addr := len(instructions)

		if addr > int(encoding.MaxWord) {
			return nil, &OversizedBinaryError{
				Cursor{Line: lineNum, Column: leadingSpace(line) + 1, Size: 1},
			}
		}

		if label, ok := instruction.(Label); ok {
			if prev, exists := symbols.Lookup(label.Name); exists {
				glog.Warningf(
					"line %d: label '%s' redefined (was %d, now %d)",
					lineNum, label.Name, prev, addr,
				)
			}

			symbols.AddEntry(label.Name, uint16(addr))

			if debug != nil {
				debug.Labels[label.Name] = uint16(addr)
			}

			continue
		}

		if symbolic, ok := instruction.(AddressSymbolic); ok && !seen[symbolic.Name] {
			seen[symbolic.Name] = true
			references = append(references, symbolReference{
				symbolic.Name,
				Cursor{
					Line:   lineNum,
					Column: leadingSpace(line) + 1,
					Size:   len(symbolic.Name) + 1,
				},
			})
		}

		if debug != nil {
			debug.Lines[uint16(addr)] = lineNum
		}

		instructions = append(instructions, instruction)
	}

	// Every variable address must fit the 15 bits of an A-instruction
	next := int(VARIABLE_BASE)

	for _, reference := range references {
		if symbols.Contains(reference.Name) {
			continue
		}

		if next > int(encoding.MaxWord) {
			return nil, &OversizedVariablesError{reference.Position, reference.Name}
		}

		next++
	}

	glog.V(1).Infof(
		"first pass: %d lines, %d instructions, %d symbols",
		lineNum, len(instructions), symbols.Len(),
	)

	return instructions, nil
}

func encodeInstruction(instruction Instruction, symbols *SymbolTable, next *uint16) uint16 {
	switch instruction := instruction.(type) {
	case AddressNumeric:
		return instruction.Value

	case AddressSymbolic:
		if !symbols.Contains(instruction.Name) {
			glog.V(2).Infof("variable '%s' -> %d", instruction.Name, *next)
			symbols.AddEntry(instruction.Name, *next)
			*next++
		}

		return symbols.GetAddress(instruction.Name)

	case Compute:
		comp, _ := CompBits(instruction.Comp)
		dest, _ := DestBits(instruction.Dest)
		jump, _ := JumpBits(instruction.Jump)

		return 0b111<<13 | comp<<6 | dest<<3 | jump
	}

	return 0
}

// Generate resolves symbolic addresses, allocating variables from
// VARIABLE_BASE in order of first use, and returns one line of 16 binary
// digits per instruction.
func Generate(instructions []Instruction, symbols *SymbolTable) string {
	var builder strings.Builder
	var next = VARIABLE_BASE

	builder.Grow(len(instructions) * 17)

	for i, instruction := range instructions {
		if i > 0 {
			builder.WriteByte('\n')
		}

		word := encodeInstruction(instruction, symbols, &next)
		builder.WriteString(encoding.EncodeBinary(word))
	}

	glog.V(1).Infof(
		"second pass: %d variables allocated", next-VARIABLE_BASE,
	)

	return builder.String()
}

// Assemble translates a complete source text. Nothing is returned on
// failure.
func Assemble(source string) (string, error) {
	return assemble(source, nil)
}

func assemble(source string, debug *DebugTable) (string, error) {
	symbols := NewSymbolTable()

	instructions, err := firstPass(source, symbols, debug)

	if err != nil {
		return "", err
	}

	var known map[string]bool

	if debug != nil {
		known = make(map[string]bool, symbols.Len())

		for _, name := range symbols.Names() {
			known[name] = true
		}
	}

	result := Generate(instructions, symbols)

	if debug != nil {
		for _, name := range symbols.Names() {
			if !known[name] {
				debug.Variables[symbols.GetAddress(name)] = name
			}
		}
	}

	return result, nil
}

// AssembleHack reads the whole of input and assembles it. When debug is not
// nil it receives the source line of every ROM address along with label and
// variable names.
func AssembleHack(input io.Reader, debug *DebugTable) (string, error) {
	data, err := io.ReadAll(input)

	if err != nil {
		return "", err
	}

	if debug != nil {
		if debug.Lines == nil {
			debug.Lines = make(map[uint16]int)
		}

		if debug.Labels == nil {
			debug.Labels = make(map[string]uint16)
		}

		if debug.Variables == nil {
			debug.Variables = make(map[uint16]string)
		}
	}

	return assemble(string(data), debug)
}
