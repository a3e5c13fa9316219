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


package machine

import (
	"fmt"
)

// Keyboard reports the Hack code of the key currently held, or 0
type Keyboard interface {
	Key() uint16
}

type DeviceHandler struct {
	Keyboard Keyboard
}

type MachineState struct {
	A       uint16
	D       uint16
	Program uint16
	Cycles  uint64
	Halted  bool
	ROM     [ROM_SIZE]uint16
	RAM     [RAM_SIZE]uint16
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Debugger MachineDebugger
}

type AddressError struct {
	Program uint16
	Addr    uint16
}

func (err *AddressError) Error() string {
	return fmt.Sprintf(
		"[%#04x]: Address out of range\n\twant:<%#04x\n\thave:%#04x",
		err.Program,
		MEMSPACE_END,
		err.Addr,
	)
}

type OversizedProgramError struct {
	Line int
}

func (err *OversizedProgramError) Error() string {
	return fmt.Sprintf("%02d: Program exceeds ROM size", err.Line)
}
