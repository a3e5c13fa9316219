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
	"io"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/machine"
)

type WatchpointType uint

const (
	ReadWatch WatchpointType = iota
	WriteWatch
	ReadWriteWatch
)

func (wtype WatchpointType) String() string {
	switch wtype {
	case ReadWatch:
		return "read"
	case WriteWatch:
		return "write"
	case ReadWriteWatch:
		return "rwrite"
	}

	return "unknown"
}

type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

type Breakpoint struct {
	Addr uint16
}

type Debugger struct {
	Break bool

	// Kept sorted by address
	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	// Source lines of the assembled program, indexed from zero
	Source   []string
	SymTable *assembler.DebugTable

	// Output for the Print* methods, os.Stdout when nil
	Out io.Writer

	HandleBreak func(*Debugger, *machine.Machine)
	HandleRead  func(uint16, *Debugger, *machine.Machine)
	HandleWrite func(uint16, *Debugger, *machine.Machine)
}
