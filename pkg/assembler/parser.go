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
	"regexp"
	"strings"

	"github.com/lassandro/gohack/pkg/encoding"
)

var (
	reLabel           = regexp.MustCompile(`^\(([^()]+)\)$`)
	reAddressNumeric  = regexp.MustCompile(`^@([0-9]+)$`)
	reAddressSymbolic = regexp.MustCompile(`^@([^0-9\s][\w.$:]*)$`)
)

type computeParts struct {
	Parts   [3]string
	Offsets [3]int
}

func splitCompute(line string) computeParts {
	var result computeParts

	eq := strings.IndexByte(line, '=')
	semi := strings.IndexByte(line, ';')

	compStart, compEnd := 0, len(line)

	result.Parts[PART_DEST] = NULL_MNEMONIC
	result.Parts[PART_JUMP] = NULL_MNEMONIC

	if eq != -1 {
		result.Parts[PART_DEST] = line[:eq]
		compStart = eq + 1
	}

	if semi != -1 {
		result.Parts[PART_JUMP] = line[semi+1:]
		result.Offsets[PART_JUMP] = semi + 1
		compEnd = semi
	}

	// "D;J=M" puts the ';' first, leaving no room for comp
	if compStart <= compEnd {
		result.Parts[PART_COMP] = line[compStart:compEnd]
	}
	result.Offsets[PART_COMP] = compStart

	return result
}

// SplitCompute divides a compute instruction on its first '=' and first ';'.
// The parts are not validated.
func SplitCompute(line string) (dest, comp, jump string) {
	split := splitCompute(line)
	return split.Parts[PART_DEST], split.Parts[PART_COMP], split.Parts[PART_JUMP]
}

func validateCompute(line string) error {
	split := splitCompute(line)

	for _, part := range []PartType{PART_DEST, PART_COMP, PART_JUMP} {
		if _, ok := lookupPart(part, split.Parts[part]); !ok {
			return &InvalidMnemonicError{
				split.Offsets[part], part, split.Parts[part],
			}
		}
	}

	return nil
}

// Classify determines the form of a cleaned, non-empty line and validates
// it. The first matching form wins: label, numeric address, symbolic
// address, compute.
func Classify(line string) (InstructionType, error) {
	switch {
	case reLabel.MatchString(line):
		return INSTRUCTION_LABEL, nil

	case reAddressNumeric.MatchString(line):
		if _, err := encoding.DecodeWord(line[1:]); err != nil {
			return INSTRUCTION_INVALID, &OversizedLiteralError{
				1, encoding.MaxWord, line[1:],
			}
		}

		return INSTRUCTION_ADDRESS_NUMERIC, nil

	case reAddressSymbolic.MatchString(line):
		return INSTRUCTION_ADDRESS_SYMBOLIC, nil

	case strings.HasPrefix(line, "@"):
		return INSTRUCTION_INVALID, &SyntaxError{0, line}
	}

	if err := validateCompute(line); err != nil {
		return INSTRUCTION_INVALID, err
	}

	return INSTRUCTION_COMPUTE, nil
}

// Parse converts a cleaned, non-empty line into an instruction
func Parse(line string) (Instruction, error) {
	instructionType, err := Classify(line)

	if err != nil {
		return nil, err
	}

	switch instructionType {
	case INSTRUCTION_LABEL:
		return Label{Name: line[1 : len(line)-1]}, nil

	case INSTRUCTION_ADDRESS_NUMERIC:
		value, _ := encoding.DecodeWord(line[1:])
		return AddressNumeric{Value: value}, nil

	case INSTRUCTION_ADDRESS_SYMBOLIC:
		return AddressSymbolic{Name: line[1:]}, nil
	}

	dest, comp, jump := SplitCompute(line)

	return Compute{Dest: dest, Comp: comp, Jump: jump}, nil
}

// ParseLine cleans a raw source line and parses it. Blank and comment-only
// lines produce neither an instruction nor an error. Failures are returned
// as a *ParseError carrying lineNum, the physical 1-based source line
// (blank, comment and label lines included) so callers can show the line.
func ParseLine(raw string, lineNum int) (Instruction, error) {
	line := Clean(raw)

	if len(line) == 0 {
		return nil, nil
	}

	instruction, err := Parse(line)

	if err != nil {
		position := Cursor{Line: lineNum, Column: 1, Size: 1}

		if spanErr, ok := err.(spanError); ok {
			offset, size := spanErr.span()
			position.Column = leadingSpace(raw) + offset + 1
			position.Size = max(size, 1)
		}

		return nil, &ParseError{position, err}
	}

	return instruction, nil
}
