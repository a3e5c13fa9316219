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


package machine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/machine"
)

type testMachineState struct {
	A       uint16
	D       uint16
	Program uint16
	Halted  bool
	Memory  map[uint16]uint16
}

type testCase struct {
	Name     string
	Source   string
	Steps    uint64
	Keyboard uint16
	Input    testMachineState
	Output   testMachineState
}

type fixedKeyboard uint16

func (key fixedKeyboard) Key() uint16 {
	return uint16(key)
}

func load(t *testing.T, mc *machine.Machine, source string) {
	t.Helper()

	hack, err := assembler.Assemble(source)

	if err != nil {
		t.Fatal(err)
	}

	if err := mc.LoadHack(strings.NewReader(hack)); err != nil {
		t.Fatal(err)
	}
}

func testMachineSuccess(t *testing.T, test *testCase) {
	var mc machine.Machine

	load(t, &mc, test.Source)

	if test.Keyboard != 0 {
		mc.Devices = &machine.DeviceHandler{Keyboard: fixedKeyboard(test.Keyboard)}
	}

	mc.State.A = test.Input.A
	mc.State.D = test.Input.D
	mc.State.Program = test.Input.Program

	for addr, value := range test.Input.Memory {
		mc.State.RAM[addr] = value
	}

	var err error

	if test.Steps > 0 {
		err = mc.Run(test.Steps)
	} else {
		err = mc.Run(100000)
	}

	if err != nil {
		t.Fatal(err)
	}

	if mc.State.A != test.Output.A {
		t.Fatalf("A mismatch\nwant:%#04x\nhave:%#04x", test.Output.A, mc.State.A)
	}

	if mc.State.D != test.Output.D {
		t.Fatalf("D mismatch\nwant:%#04x\nhave:%#04x", test.Output.D, mc.State.D)
	}

	if mc.State.Program != test.Output.Program {
		t.Fatalf(
			"PC mismatch\nwant:%#04x\nhave:%#04x",
			test.Output.Program,
			mc.State.Program,
		)
	}

	if mc.State.Halted != test.Output.Halted {
		t.Fatalf(
			"Halt mismatch\nwant:%t\nhave:%t",
			test.Output.Halted,
			mc.State.Halted,
		)
	}

	for addr := range mc.State.RAM {
		have := mc.State.RAM[addr]
		want, exists := test.Output.Memory[uint16(addr)]

		if exists && have != want {
			t.Fatalf(
				"Memory mismatch\n"+
					"want:%#04x (test.Output.Memory[%#04x])\n"+
					"have:%#04x",
				want,
				addr,
				have,
			)
		} else if !exists && have != 0 {
			t.Fatalf(
				"Unexpected memory write\n"+
					"want:0x0000\n"+
					"have:%#04x (RAM[%#04x])",
				have,
				addr,
			)
		}
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testMachineSuccess(t, &test)
			})
		}
	})
}

func TestAddress(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Load A",
			Source: `@1234`,
			Steps:  1,
			Output: testMachineState{A: 1234, Program: 1},
		},
		{
			Name:   "Load Max",
			Source: "@32767\n@SCREEN",
			Steps:  2,
			Output: testMachineState{A: 0x4000, Program: 2},
		},
	})
}

func TestCompute(t *testing.T) {
	// D=5, A=3, M=RAM[3]=9
	tests := map[string]uint16{
		"0":   0,
		"1":   1,
		"-1":  0xFFFF,
		"D":   5,
		"A":   3,
		"!D":  0xFFFA,
		"!A":  0xFFFC,
		"-D":  0xFFFB,
		"-A":  0xFFFD,
		"D+1": 6,
		"A+1": 4,
		"D-1": 4,
		"A-1": 2,
		"D+A": 8,
		"D-A": 2,
		"A-D": 0xFFFE,
		"D&A": 1,
		"D|A": 7,
		"M":   9,
		"!M":  0xFFF6,
		"-M":  0xFFF7,
		"M+1": 10,
		"M-1": 8,
		"D+M": 14,
		"D-M": 0xFFFC,
		"M-D": 4,
		"D&M": 1,
		"D|M": 13,
	}

	for comp, want := range tests {
		t.Run(comp, func(t *testing.T) {
			var mc machine.Machine

			load(t, &mc, "D="+comp)

			mc.State.A = 3
			mc.State.D = 5
			mc.State.RAM[3] = 9

			if err := mc.Step(); err != nil {
				t.Fatal(err)
			}

			if mc.State.D != want {
				t.Fatalf("ALU mismatch for %s\nwant:%#04x\nhave:%#04x", comp, want, mc.State.D)
			}
		})
	}
}

func TestDest(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Store M",
			Source: "@7\nM=1",
			Steps:  2,
			Output: testMachineState{
				A: 7, Program: 2, Memory: map[uint16]uint16{7: 1},
			},
		},
		{
			Name:   "Store AMD",
			Source: "@7\nAMD=-1",
			Steps:  2,
			Output: testMachineState{
				A: 0xFFFF, D: 0xFFFF, Program: 2,
				Memory: map[uint16]uint16{7: 0xFFFF},
			},
		},
		{
			Name:   "Pointer Increment",
			Source: "@SP\nAM=M+1\nM=D",
			Steps:  3,
			Input: testMachineState{
				D: 42, Memory: map[uint16]uint16{0: 256},
			},
			Output: testMachineState{
				A: 257, D: 42, Program: 3,
				Memory: map[uint16]uint16{0: 257, 257: 42},
			},
		},
	})
}

func TestJump(t *testing.T) {
	tests := []struct {
		Jump  string
		Taken [3]bool // negative, zero, positive
	}{
		{"null", [3]bool{false, false, false}},
		{"JGT", [3]bool{false, false, true}},
		{"JEQ", [3]bool{false, true, false}},
		{"JGE", [3]bool{false, true, true}},
		{"JLT", [3]bool{true, false, false}},
		{"JNE", [3]bool{true, false, true}},
		{"JLE", [3]bool{true, true, false}},
		{"JMP", [3]bool{true, true, true}},
	}

	for _, test := range tests {
		for i, d := range []uint16{0x8000, 0, 1} {
			var mc machine.Machine

			load(t, &mc, "@100\nD;"+test.Jump)

			mc.State.D = d

			if err := mc.Run(2); err != nil {
				t.Fatal(err)
			}

			want := uint16(2)

			if test.Taken[i] {
				want = 100
			}

			if mc.State.Program != want {
				t.Fatalf(
					"%s with D=%#04x\nwant:PC=%d\nhave:PC=%d",
					test.Jump,
					d,
					want,
					mc.State.Program,
				)
			}
		}
	}
}

func TestKeyboard(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:     "Read Key",
			Source:   "@KBD\nD=M",
			Steps:    2,
			Keyboard: 'k',
			Output: testMachineState{
				A: 0x6000, D: 'k', Program: 2,
				Memory: map[uint16]uint16{0x6000: 'k'},
			},
		},
		{
			Name:   "Read Only",
			Source: "@KBD\nM=1",
			Steps:  2,
			Output: testMachineState{A: 0x6000, Program: 2},
		},
	})
}

func TestHalt(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Halt Loop",
			Source: "@5\nD=A\n(END)\n@END\n0;JMP",
			Output: testMachineState{A: 2, D: 5, Program: 2, Halted: true},
		},
		{
			Name:   "Counting Loop",
			Source: "@3\nD=A\n(LOOP)\n@LOOP\nD=D-1;JGT",
			Output: testMachineState{A: 2, D: 0, Program: 4},
			Steps:  8,
		},
	})
}

func TestPrograms(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Add",
			Source: "@5\nD=A\n@6\nD=D+A\n@0\nM=D\n(END)\n@END\n0;JMP",
			Output: testMachineState{
				A: 6, D: 11, Program: 6, Halted: true,
				Memory: map[uint16]uint16{0: 11},
			},
		},
		{
			Name: "Multiply",
			Source: `
			// R2 = R0 * R1
			@R2
			M=0
			(LOOP)
			@R1
			D=M
			@END
			D;JEQ
			@R0
			D=M
			@R2
			M=D+M
			@R1
			M=M-1
			@LOOP
			0;JMP
			(END)
			@END
			0;JMP
			`,
			Input: testMachineState{
				Memory: map[uint16]uint16{0: 6, 1: 7},
			},
			Output: testMachineState{
				A: 14, D: 0, Program: 14, Halted: true,
				Memory: map[uint16]uint16{0: 6, 2: 42},
			},
		},
		{
			Name: "Fill Screen Row",
			Source: `
			@SCREEN
			D=A
			@addr
			M=D
			@32
			D=A
			@n
			M=D
			(LOOP)
			@addr
			A=M
			M=-1
			@addr
			M=M+1
			@n
			MD=M-1
			@LOOP
			D;JGT
			(END)
			@END
			0;JMP
			`,
			Output: testMachineState{
				A: 17, D: 0, Program: 17, Halted: true,
				Memory: func() map[uint16]uint16 {
					memory := map[uint16]uint16{16: 0x4020, 17: 0}
					for i := uint16(0); i < 32; i++ {
						memory[0x4000+i] = 0xFFFF
					}
					return memory
				}(),
			},
		},
	})
}

func TestAddressError(t *testing.T) {
	var mc machine.Machine

	load(t, &mc, "@24577\nD=M")

	err := mc.Run(0)

	var addrErr *machine.AddressError

	if !errors.As(err, &addrErr) {
		t.Fatalf("Expected AddressError\nhave:%v", err)
	}

	if addrErr.Addr != 24577 {
		t.Fatalf("Address mismatch\nwant:24577\nhave:%d", addrErr.Addr)
	}
}

func TestLoadHack(t *testing.T) {
	var mc machine.Machine

	mc.State.RAM[5] = 1
	mc.State.ROM[9] = 1

	if err := mc.LoadHack(strings.NewReader(
		"0000000000000101\r\n\n1110110000010000\n",
	)); err != nil {
		t.Fatal(err)
	}

	if mc.State.ROM[0] != 5 || mc.State.ROM[1] != 0xEC10 || mc.State.ROM[9] != 0 {
		t.Fatalf("ROM mismatch: %v", mc.State.ROM[:10])
	}

	if mc.State.RAM[5] != 0 {
		t.Fatal("RAM was not reset")
	}

	if err := mc.LoadHack(strings.NewReader("0101")); err == nil {
		t.Fatal("Expected error for malformed word")
	}

	oversized := strings.Repeat("0000000000000000\n", machine.ROM_SIZE+1)

	var sizeErr *machine.OversizedProgramError

	if err := mc.LoadHack(strings.NewReader(oversized)); !errors.As(err, &sizeErr) {
		t.Fatalf("Expected OversizedProgramError\nhave:%v", err)
	}
}

type countingDebugger struct {
	steps  int
	reads  []uint16
	writes []uint16
}

func (dbg *countingDebugger) Step(mc *machine.Machine) {
	dbg.steps++
}

func (dbg *countingDebugger) Read(addr uint16, mc *machine.Machine) {
	dbg.reads = append(dbg.reads, addr)
}

func (dbg *countingDebugger) Write(addr uint16, mc *machine.Machine) {
	dbg.writes = append(dbg.writes, addr)
}

func TestDebuggerHooks(t *testing.T) {
	var mc machine.Machine
	var dbg countingDebugger

	load(t, &mc, "@3\nD=M\n@4\nM=D")
	mc.Debugger = &dbg

	if err := mc.Run(4); err != nil {
		t.Fatal(err)
	}

	if dbg.steps != 4 {
		t.Fatalf("Step hook count\nwant:4\nhave:%d", dbg.steps)
	}

	if len(dbg.reads) != 1 || dbg.reads[0] != 3 {
		t.Fatalf("Read hooks\nwant:[3]\nhave:%v", dbg.reads)
	}

	if len(dbg.writes) != 1 || dbg.writes[0] != 4 {
		t.Fatalf("Write hooks\nwant:[4]\nhave:%v", dbg.writes)
	}
}
