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
	"strconv"

	"golang.org/x/exp/slices"
)

// Addresses fixed by the platform, present before translation starts
func predefinedSymbols() map[string]uint16 {
	symbols := map[string]uint16{
		"SP":     0,
		"LCL":    1,
		"ARG":    2,
		"THIS":   3,
		"THAT":   4,
		"SCREEN": ADDR_SCREEN,
		"KBD":    ADDR_KBD,
	}

	for i := uint16(0); i < 16; i++ {
		symbols["R"+strconv.Itoa(int(i))] = i
	}

	return symbols
}

// SymbolTable maps symbol names to addresses for the duration of one
// translation. Labels are added by the first pass, variables by the second.
type SymbolTable struct {
	entries map[string]uint16
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: predefinedSymbols()}
}

// Adds or replaces an entry
func (st *SymbolTable) AddEntry(name string, addr uint16) {
	st.entries[name] = addr
}

func (st *SymbolTable) Contains(name string) bool {
	_, exists := st.entries[name]
	return exists
}

func (st *SymbolTable) GetAddress(name string) uint16 {
	return st.entries[name]
}

func (st *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, exists := st.entries[name]
	return addr, exists
}

func (st *SymbolTable) Len() int {
	return len(st.entries)
}

// Names returns every symbol name in lexical order
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.entries))

	for name := range st.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// LabelsAt returns the names of every label bound to addr in lexical order.
// Adjacent labels share an address.
func (table *DebugTable) LabelsAt(addr uint16) []string {
	var names []string

	for name, labelAddr := range table.Labels {
		if labelAddr == addr {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}
