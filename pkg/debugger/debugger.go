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
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/exp/slices"

	"github.com/lassandro/gohack/pkg/encoding"
	"github.com/lassandro/gohack/pkg/machine"
)

func (dbg *Debugger) out() io.Writer {
	if dbg.Out == nil {
		return os.Stdout
	}

	return dbg.Out
}

func compareBreakpoint(breakpoint Breakpoint, addr uint16) int {
	return cmp.Compare(breakpoint.Addr, addr)
}

func (dbg *Debugger) HasBreakpoint(addr uint16) bool {
	_, found := slices.BinarySearchFunc(dbg.Breakpoints, addr, compareBreakpoint)
	return found
}

// AddBreakpoint reports false if a breakpoint already exists at addr
func (dbg *Debugger) AddBreakpoint(addr uint16) bool {
	i, found := slices.BinarySearchFunc(dbg.Breakpoints, addr, compareBreakpoint)

	if found {
		return false
	}

	dbg.Breakpoints = slices.Insert(dbg.Breakpoints, i, Breakpoint{addr})
	return true
}

func (dbg *Debugger) RemoveBreakpoint(i int) bool {
	if i < 0 || i >= len(dbg.Breakpoints) {
		return false
	}

	dbg.Breakpoints = slices.Delete(dbg.Breakpoints, i, i+1)
	return true
}

// AddWatchpoint reports false if an identical watchpoint already exists
func (dbg *Debugger) AddWatchpoint(addr uint16, wtype WatchpointType) bool {
	watchpoint := Watchpoint{addr, wtype}

	if slices.Contains(dbg.Watchpoints, watchpoint) {
		return false
	}

	dbg.Watchpoints = append(dbg.Watchpoints, watchpoint)
	return true
}

func (dbg *Debugger) RemoveWatchpoint(i int) bool {
	if i < 0 || i >= len(dbg.Watchpoints) {
		return false
	}

	dbg.Watchpoints = slices.Delete(dbg.Watchpoints, i, i+1)
	return true
}

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.HandleBreak == nil {
		return
	}

	if dbg.Break || dbg.HasBreakpoint(mc.State.Program) {
		dbg.HandleBreak(dbg, mc)
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	if dbg.HandleRead == nil {
		return
	}

	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	if dbg.HandleWrite == nil {
		return
	}

	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

// Resolve accepts a hex address, a label or a variable name
func (dbg *Debugger) Resolve(arg string) (uint16, error) {
	if addr, err := encoding.DecodeHex(arg); err == nil {
		return addr, nil
	}

	if dbg.SymTable == nil {
		return 0, errors.New("No symbol table loaded")
	}

	if addr, exists := dbg.SymTable.Labels[arg]; exists {
		return addr, nil
	}

	for addr, variable := range dbg.SymTable.Variables {
		if variable == arg {
			return addr, nil
		}
	}

	return 0, fmt.Errorf("Unable to find '%s'", arg)
}

// LabelAt names the labels bound to addr, comma separated when adjacent
// labels share it
func (dbg *Debugger) LabelAt(addr uint16) (string, bool) {
	if dbg.SymTable == nil {
		return "", false
	}

	names := dbg.SymTable.LabelsAt(addr)
	return strings.Join(names, ","), len(names) > 0
}

func (dbg *Debugger) PrintSource(addr uint16, count uint16) {
	out := dbg.out()

	if dbg.SymTable == nil {
		fmt.Fprintln(out, "No symbol table loaded")
		return
	}

	if len(dbg.Source) == 0 {
		fmt.Fprintln(out, "No source file loaded")
		return
	}

	start, exists := dbg.SymTable.Lines[addr]

	if !exists {
		fmt.Fprintf(out, "No instruction found at %#04x\n", addr)
		return
	}

	lineaddrs := make(map[int]uint16, len(dbg.SymTable.Lines))

	for lineaddr, line := range dbg.SymTable.Lines {
		lineaddrs[line] = lineaddr
	}

	for line := start; line < start+int(count) && line <= len(dbg.Source); line++ {
		if lineaddr, found := lineaddrs[line]; found {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", lineaddr)
		} else {
			fmt.Fprint(out, "\033[1;30m~~~~~~~~\033[0m ")
		}

		fmt.Fprintln(out, dbg.Source[line-1])
	}
}

func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	out := dbg.out()
	end := min(int(addr)+int(count), machine.RAM_SIZE)

	if int(addr) >= end {
		fmt.Fprintf(out, "No memory at %#04x\n", addr)
		return
	}

	for i := int(addr); i < end; i++ {
		if i == int(addr) {
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", i)
		} else if (i-int(addr))%4 == 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "\033[1m[%#04x]\033[0m ", i)
		}

		result := mc.RAM[i]

		if result == 0 {
			fmt.Fprintf(out, "\033[1;30m%#04x\033[0m ", result)
		} else {
			fmt.Fprintf(out, "%#04x ", result)
		}
	}

	fmt.Fprintln(out)
}

func (dbg *Debugger) PrintRegisters(mc *machine.MachineState) {
	fmt.Fprintf(
		dbg.out(),
		"\033[1mA:\033[0m %#04x\t\033[1mD:\033[0m %#04x\t\033[1mPC:\033[0m %#04x\n",
		mc.A,
		mc.D,
		mc.Program,
	)
}

func (dbg *Debugger) PrintSymbols() {
	out := dbg.out()

	if dbg.SymTable == nil {
		fmt.Fprintln(out, "No symbol table loaded")
		return
	}

	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(false)

	printer.Println(struct {
		Labels    map[string]uint16
		Variables map[uint16]string
	}{
		dbg.SymTable.Labels,
		dbg.SymTable.Variables,
	})
}
