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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/gohack/pkg/encoding"
)

// Reset clears registers and RAM. ROM is left untouched.
func (mc *MachineState) Reset() {
	mc.A = 0
	mc.D = 0
	mc.Program = 0
	mc.Cycles = 0
	mc.Halted = false
	mc.RAM = [RAM_SIZE]uint16{}
}

func (mc *MachineState) Screen() []uint16 {
	return mc.RAM[MEMSPACE_SCREEN:DEV_KBD]
}

// LoadHack fills ROM from assembled text, one 16 digit binary word per line,
// and resets the machine
func (mc *Machine) LoadHack(reader io.Reader) error {
	mc.State.ROM = [ROM_SIZE]uint16{}
	mc.State.Reset()

	scanner := bufio.NewScanner(reader)
	index := 0
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())

		if len(text) == 0 {
			continue
		}

		if index >= ROM_SIZE {
			return &OversizedProgramError{line}
		}

		word, err := encoding.DecodeBinary(text)

		if err != nil {
			return fmt.Errorf("%02d: %w", line, err)
		}

		mc.State.ROM[index] = word
		index++
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	glog.V(1).Infof("loaded %d words", index)

	return nil
}

func (mc *Machine) read(addr uint16) (uint16, error) {
	if addr >= MEMSPACE_END {
		return 0, &AddressError{mc.State.Program, addr}
	}

	if addr == DEV_KBD {
		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			mc.State.RAM[DEV_KBD] = mc.Devices.Keyboard.Key()
		}
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.RAM[addr], nil
}

func (mc *Machine) write(addr uint16, value uint16) error {
	if addr >= MEMSPACE_END {
		return &AddressError{mc.State.Program, addr}
	}

	// The keyboard register is read-only
	if addr != DEV_KBD {
		mc.State.RAM[addr] = value
	}

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}

	return nil
}

func compute(x, y uint16, control uint16) uint16 {
	if control&ALU_ZX != 0 {
		x = 0
	}

	if control&ALU_NX != 0 {
		x = ^x
	}

	if control&ALU_ZY != 0 {
		y = 0
	}

	if control&ALU_NY != 0 {
		y = ^y
	}

	var out uint16

	if control&ALU_F != 0 {
		out = x + y
	} else {
		out = x & y
	}

	if control&ALU_NO != 0 {
		out = ^out
	}

	return out
}

func shouldJump(out uint16, condition uint16) bool {
	value := int16(out)

	return (condition&JUMP_LT != 0 && value < 0) ||
		(condition&JUMP_EQ != 0 && value == 0) ||
		(condition&JUMP_GT != 0 && value > 0)
}

func (mc *Machine) Step() error {
	pc := mc.State.Program

	if pc >= ROM_SIZE {
		return &AddressError{pc, pc}
	}

	instruction := mc.State.ROM[pc]

	mc.State.Cycles++

	// @value |0|value                        | Load A
	// ------ [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	if instruction&FLAG_COMPUTE == 0 {
		mc.State.A = instruction
		mc.State.Program = pc + 1

		if mc.Debugger != nil {
			mc.Debugger.Step(mc)
		}

		return nil
	}

	// dest=comp;jump |111|a|c c c c c c|d d d|j j j|
	// -------------- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	addr := mc.State.A
	y := mc.State.A

	if instruction&FLAG_MEMORY != 0 {
		var err error

		if y, err = mc.read(addr); err != nil {
			return err
		}
	}

	out := compute(mc.State.D, y, (instruction>>6)&0x3F)

	if instruction&DEST_M != 0 {
		if err := mc.write(addr, out); err != nil {
			return err
		}
	}

	if instruction&DEST_A != 0 {
		mc.State.A = out
	}

	if instruction&DEST_D != 0 {
		mc.State.D = out
	}

	mc.State.Program = pc + 1

	if shouldJump(out, instruction&0x7) {
		// "@n" stored at n followed by a side-effect free jump back to it
		// can never leave the loop
		if instruction&(DEST_A|DEST_D|DEST_M) == 0 &&
			pc > 0 && addr == pc-1 && mc.State.ROM[pc-1] == pc-1 {
			mc.State.Halted = true
		}

		mc.State.Program = addr
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return nil
}

// Run steps until the program halts or limit cycles have executed. A limit
// of zero means no limit.
func (mc *Machine) Run(limit uint64) error {
	start := mc.State.Cycles

	for !mc.State.Halted {
		if limit > 0 && mc.State.Cycles-start >= limit {
			break
		}

		if err := mc.Step(); err != nil {
			return err
		}
	}

	glog.V(1).Infof(
		"stopped at %#04x after %d cycles (halted: %t)",
		mc.State.Program, mc.State.Cycles-start, mc.State.Halted,
	)

	return nil
}
