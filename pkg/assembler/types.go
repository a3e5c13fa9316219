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
	"fmt"
)

type InstructionType uint
type PartType uint

func (part PartType) String() string {
	switch part {
	case PART_DEST:
		return "dest"
	case PART_COMP:
		return "comp"
	case PART_JUMP:
		return "jump"
	}

	return "<invalid>"
}

type Instruction interface {
	Type() InstructionType
}

// Label binds Name to the address of the next real instruction. It never
// produces code.
type Label struct {
	Name string
}

type AddressNumeric struct {
	Value uint16
}

type AddressSymbolic struct {
	Name string
}

// Compute holds the dest, comp and jump mnemonics of a compute instruction.
// Dest and Jump are NULL_MNEMONIC when absent.
type Compute struct {
	Dest string
	Comp string
	Jump string
}

func (Label) Type() InstructionType           { return INSTRUCTION_LABEL }
func (AddressNumeric) Type() InstructionType  { return INSTRUCTION_ADDRESS_NUMERIC }
func (AddressSymbolic) Type() InstructionType { return INSTRUCTION_ADDRESS_SYMBOLIC }
func (Compute) Type() InstructionType         { return INSTRUCTION_COMPUTE }

type Cursor struct {
	Line   int
	Column int
	Size   int
}

// DebugTable is written next to the assembled program so the emulator can
// map ROM and RAM addresses back to the source.
type DebugTable struct {
	Source    string
	Lines     map[uint16]int
	Labels    map[string]uint16
	Variables map[uint16]string
}

type PositionError interface {
	error
	GetPosition() Cursor
}

// Implemented by the classification errors so the line wrapper can point
// at the offending substring
type spanError interface {
	span() (offset int, size int)
}

type SyntaxError struct {
	Offset   int
	Received string
}

func (err *SyntaxError) span() (int, int) {
	return err.Offset, len(err.Received)
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("Unrecognized instruction '%s'", err.Received)
}

type InvalidMnemonicError struct {
	Offset   int
	Part     PartType
	Received string
}

func (err *InvalidMnemonicError) span() (int, int) {
	return err.Offset, len(err.Received)
}

func (err *InvalidMnemonicError) Error() string {
	return fmt.Sprintf(
		"Invalid %s mnemonic '%s'", err.Part, err.Received,
	)
}

type OversizedLiteralError struct {
	Offset   int
	Required uint16
	Received string
}

func (err *OversizedLiteralError) span() (int, int) {
	return err.Offset, len(err.Received)
}

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf(
		"Literal exceeds allowed size\n\twant:<=%d\n\thave:%s",
		err.Required,
		err.Received,
	)
}

// ParseError tags a classification error with its place in the source
type ParseError struct {
	Position Cursor
	Err      error
}

func (err *ParseError) GetPosition() Cursor {
	return err.Position
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Parse error: %s",
		err.Position.Line,
		err.Position.Column,
		err.Err,
	)
}

type OversizedBinaryError struct {
	Position Cursor
}

func (err *OversizedBinaryError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedBinaryError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Binary exceeds allowed size",
		err.Position.Line,
		err.Position.Column,
	)
}

// Returned when a program references more variables than RAM addresses
// remain above VARIABLE_BASE
type OversizedVariablesError struct {
	Position Cursor
	Name     string
}

func (err *OversizedVariablesError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedVariablesError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Variable '%s' exceeds the address space",
		err.Position.Line,
		err.Position.Column,
		err.Name,
	)
}
