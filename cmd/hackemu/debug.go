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
	"bufio"
	"cmp"
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/lassandro/gohack/pkg/debugger"
	"github.com/lassandro/gohack/pkg/encoding"
	"github.com/lassandro/gohack/pkg/machine"
)

// Loaded program text, used by the reset command
var program []byte

var (
	errUsage  = debugger.ErrUsage
	errResume = errors.New("resume")
)

type debugSession struct {
	dbg     *debugger.Debugger
	mc      *machine.Machine
	lastcmd []string
}

type debugCommand struct {
	names []string
	usage string
	run   func(s *debugSession, args []string) error
}

var debugCommands []debugCommand

func init() {
	debugCommands = []debugCommand{
		{[]string{"b", "bp", "break", "breakpoint"}, "break [add|list|remove|clear]", (*debugSession).cmdBreak},
		{[]string{"w", "wp", "watch", "watchpoint"}, "watch [add|list|remove|clear]", (*debugSession).cmdWatch},
		{[]string{"r", "reg", "register", "registers"}, "register [A|D|PC] [0x####]", (*debugSession).cmdRegister},
		{[]string{"s", "src", "source"}, "source [0x####|label] [#]", (*debugSession).cmdSource},
		{[]string{"l", "label", "labels"}, "labels", (*debugSession).cmdLabels},
		{[]string{"sym", "symbols"}, "symbols", (*debugSession).cmdSymbols},
		{[]string{"j", "jmp", "jump"}, "jump [0x####|label]", (*debugSession).cmdJump},
		{[]string{"m", "mem", "memory"}, "memory [0x####|variable|#] [#]", (*debugSession).cmdMemory},
		{[]string{"set"}, "set [0x####|variable] [0x####]", (*debugSession).cmdSet},
		{[]string{"c", "continue"}, "continue", (*debugSession).cmdContinue},
		{[]string{"n", "next"}, "next", (*debugSession).cmdNext},
		{[]string{"q", "quit", "exit"}, "quit", (*debugSession).cmdQuit},
		{[]string{"clear"}, "clear", (*debugSession).cmdClear},
		{[]string{"reset"}, "reset", (*debugSession).cmdReset},
		{[]string{"h", "help"}, "help", (*debugSession).cmdHelp},
	}
}

func findCommand(name string) *debugCommand {
	i := slices.IndexFunc(debugCommands, func(cmd debugCommand) bool {
		return slices.Contains(cmd.names, name)
	})

	if i == -1 {
		return nil
	}

	return &debugCommands[i]
}

func (s *debugSession) cmdBreak(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch sub, args := args[0], args[1:]; sub {
	case "a", "add":
		if len(args) != 1 {
			return errUsage
		}

		addr, err := s.dbg.Resolve(args[0])

		if err != nil {
			return err
		}

		if s.dbg.AddBreakpoint(addr) {
			fmt.Printf("Breakpoint added [%#04x]\n", addr)
		}

	case "l", "ls", "list":
		width := len(strconv.Itoa(len(s.dbg.Breakpoints)))

		for i, breakpoint := range s.dbg.Breakpoints {
			label, _ := s.dbg.LabelAt(breakpoint.Addr)
			fmt.Printf("#%0*d: %#04x %s\n", width, i, breakpoint.Addr, label)
		}

	case "r", "rm", "remove":
		if len(args) != 1 {
			return errUsage
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			return err
		}

		if !s.dbg.RemoveBreakpoint(i) {
			return fmt.Errorf("Invalid breakpoint number %d", i)
		}

		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		s.dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		return fmt.Errorf("break: '%s' is not a valid command", sub)
	}

	return nil
}

func parseWatchType(s string) (debugger.WatchpointType, bool) {
	switch s {
	case "r", "read":
		return debugger.ReadWatch, true
	case "w", "write":
		return debugger.WriteWatch, true
	case "rw", "rwrite", "readwrite":
		return debugger.ReadWriteWatch, true
	}

	return 0, false
}

func (s *debugSession) cmdWatch(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch sub, args := args[0], args[1:]; sub {
	case "a", "add":
		if len(args) != 2 {
			return errUsage
		}

		addr, err := s.dbg.Resolve(args[0])

		if err != nil {
			return err
		}

		wtype, ok := parseWatchType(args[1])

		if !ok {
			return fmt.Errorf("watch: '%s' is not read, write or readwrite", args[1])
		}

		if s.dbg.AddWatchpoint(addr, wtype) {
			fmt.Printf("Watchpoint added [%#04x] (%s)\n", addr, wtype)
		}

	case "l", "ls", "list":
		width := len(strconv.Itoa(len(s.dbg.Watchpoints)))

		for i, watchpoint := range s.dbg.Watchpoints {
			fmt.Printf("#%0*d: %#04x %s\n", width, i, watchpoint.Addr, watchpoint.Type)
		}

	case "r", "rm", "remove":
		if len(args) != 1 {
			return errUsage
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			return err
		}

		if !s.dbg.RemoveWatchpoint(i) {
			return fmt.Errorf("Invalid watchpoint number %d", i)
		}

		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		s.dbg.Watchpoints = nil
		fmt.Println("Watchpoints reset")

	default:
		return fmt.Errorf("watch: '%s' is not a valid command", sub)
	}

	return nil
}

func (s *debugSession) cmdRegister(args []string) error {
	state := &s.mc.State

	if len(args) == 0 {
		s.dbg.PrintRegisters(state)
		return nil
	}

	if len(args) != 2 {
		return errUsage
	}

	value, err := encoding.DecodeHex(args[1])

	if err != nil {
		return err
	}

	name := strings.ToUpper(args[0])

	switch name {
	case "A":
		state.A = value
	case "D":
		state.D = value
	case "PC":
		state.Program = value
	default:
		return fmt.Errorf("Invalid register '%s'", args[0])
	}

	fmt.Printf("\033[1m%s:\033[0m %#04x\n", name, value)
	return nil
}

func (s *debugSession) cmdSource(args []string) error {
	addr, count, err := s.dbg.AddrCount(args, s.mc.State.Program, 3)

	if err != nil {
		return err
	}

	s.dbg.PrintSource(addr, count)
	return nil
}

func (s *debugSession) cmdLabels(args []string) error {
	if len(args) > 0 {
		return errUsage
	}

	if s.dbg.SymTable == nil {
		return errors.New("No symbol table loaded")
	}

	names := make([]string, 0, len(s.dbg.SymTable.Labels))

	for name := range s.dbg.SymTable.Labels {
		names = append(names, name)
	}

	labels := s.dbg.SymTable.Labels

	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(labels[a], labels[b]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	for _, name := range names {
		fmt.Printf("\033[1m[%#04x]\033[0m %s\n", labels[name], name)
	}

	return nil
}

func (s *debugSession) cmdSymbols(args []string) error {
	s.dbg.PrintSymbols()
	return nil
}

func (s *debugSession) cmdJump(args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	addr, err := s.dbg.Resolve(args[0])

	if err != nil {
		return err
	}

	s.mc.State.Program = addr

	if label, ok := s.dbg.LabelAt(addr); ok {
		fmt.Printf("\033[1mPC:\033[0m %#04x \033[1;30m(%s)\033[0m\n", addr, label)
	} else {
		fmt.Printf("\033[1mPC:\033[0m %#04x\n", addr)
	}

	return nil
}

func (s *debugSession) cmdMemory(args []string) error {
	addr, count, err := s.dbg.AddrCount(args, s.mc.State.A, 1)

	if err != nil {
		return err
	}

	s.dbg.PrintMem(&s.mc.State, addr, count)
	return nil
}

func (s *debugSession) cmdSet(args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	addr, err := s.dbg.Resolve(args[0])

	if err != nil {
		return err
	}

	value, err := encoding.DecodeHex(args[1])

	if err != nil {
		return err
	}

	if int(addr) >= machine.RAM_SIZE {
		return &machine.AddressError{Program: s.mc.State.Program, Addr: addr}
	}

	s.mc.State.RAM[addr] = value
	s.dbg.PrintMem(&s.mc.State, addr, 1)
	return nil
}

func (s *debugSession) cmdContinue(args []string) error {
	s.dbg.Break = false
	return errResume
}

func (s *debugSession) cmdNext(args []string) error {
	s.dbg.Break = true
	return errResume
}

func (s *debugSession) cmdQuit(args []string) error {
	shouldexit = true
	return errResume
}

func (s *debugSession) cmdClear(args []string) error {
	fmt.Print("\033[H\033[2J")
	return nil
}

func (s *debugSession) cmdReset(args []string) error {
	if err := s.mc.LoadHack(bytes.NewReader(program)); err != nil {
		return err
	}

	fmt.Println("Machine reset")
	return nil
}

func (s *debugSession) cmdHelp(args []string) error {
	for _, cmd := range debugCommands {
		fmt.Printf("\033[1m%-10s\033[0m %s\n", strings.Join(cmd.names, ","), cmd.usage)
	}

	return nil
}

var session debugSession

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	exitRawTerm()
	defer enterRawTerm()

	session.dbg = dbg
	session.mc = mc

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			shouldexit = true
			return
		}

		args := strings.Fields(scanner.Text())

		if len(args) == 0 {
			if len(session.lastcmd) == 0 {
				continue
			}

			args = slices.Clone(session.lastcmd)
		} else {
			session.lastcmd = slices.Clone(args)
		}

		cmd := findCommand(args[0])

		if cmd == nil {
			fmt.Printf("error: '%s' is not a valid command\n", args[0])
			continue
		}

		switch err := cmd.run(&session, args[1:]); err {
		case nil:
		case errResume:
			return
		case errUsage:
			log.Println(cmd.usage)
		default:
			log.Println(err)
		}
	}
}

func stopped() {
	fmt.Println()
	fmt.Println("Program stopped")
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if !dbg.Break {
		stopped()
		dbg.PrintSource(mc.State.Program, 8)
	}

	debugREPL(dbg, mc)
}

func handleRead(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	stopped()
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}

func handleWrite(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	stopped()
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}
