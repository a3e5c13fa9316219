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
	"bytes"
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/debugger"
	"github.com/lassandro/gohack/pkg/machine"
)

var debugvar bool
var stepsvar uint64
var dumpvar string
var scalevar int
var speedvar int
var shouldexit bool

var rootCmd = &cobra.Command{
	Use:           "hackemu",
	Short:         "Runs assembled Hack programs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run [--debug] [--steps N] [--dump from:to] filename",
	Short: "Runs a program in the terminal",
	Long: `run executes a .hack program with the terminal as keyboard until the
program halts, the step limit is reached or Ctrl-C is pressed. With --debug
Ctrl-C breaks into the debugger instead, using the .hackdb file written by
hackasm --debug when one exists.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return hackemuRun(args[0])
	},
}

var displayCmd = &cobra.Command{
	Use:   "display [--scale N] filename",
	Short: "Runs a program in a window showing the screen memory map",

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return hackemuDisplay(args[0])
	},
}

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	runCmd.Flags().BoolVar(
		&debugvar, "debug", false, "Runs the machine in a debug CLI",
	)
	runCmd.Flags().Uint64Var(
		&stepsvar, "steps", 0, "Stops after this many instructions (0 for no limit)",
	)
	runCmd.Flags().StringVar(
		&dumpvar, "dump", "",
		"Prints the RAM range from:to (inclusive, decimal or 0x####) on exit",
	)

	displayCmd.Flags().IntVar(
		&scalevar, "scale", 2, "Window scale factor",
	)
	displayCmd.Flags().IntVar(
		&speedvar, "speed", 20000, "Instructions executed per frame",
	)

	rootCmd.AddCommand(runCmd, displayCmd)

	flag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func loadProgram(filename string, mc *machine.Machine) error {
	var err error

	if program, err = os.ReadFile(filename); err != nil {
		return err
	}

	return mc.LoadHack(bytes.NewReader(program))
}

// Loads the .hackdb file next to the program, along with the source it
// refers to
func loadDebugger(filename string, dbg *debugger.Debugger) {
	dbname := filepath.Join(
		filepath.Dir(filename),
		strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))+".hackdb",
	)

	file, err := os.Open(dbname)

	if err != nil {
		log.Println("Error loading symbol file")
		log.Println(err)
		return
	}

	defer file.Close()

	var table assembler.DebugTable

	if err := gob.NewDecoder(file).Decode(&table); err != nil {
		log.Println("Error loading symbol file")
		log.Println(err)
		return
	}

	dbg.SymTable = &table

	if table.Source == "" {
		return
	}

	source, err := os.ReadFile(table.Source)

	if err != nil {
		log.Println("Error loading source file")
		log.Println(err)
		return
	}

	for line := range assembler.Lines(string(source)) {
		dbg.Source = append(dbg.Source, line)
	}
}

func hackemuRun(filename string) error {
	var mc machine.Machine
	var dbg *debugger.Debugger

	if err := loadProgram(filename, &mc); err != nil {
		return err
	}

	var dumpStart, dumpCount uint16

	if dumpvar != "" {
		var err error

		if dumpStart, dumpCount, err = debugger.ParseRange(dumpvar); err != nil {
			return err
		}
	}

	if debugvar {
		dbg = &debugger.Debugger{
			HandleBreak: handleBreak,
			HandleRead:  handleRead,
			HandleWrite: handleWrite,
		}

		loadDebugger(filename, dbg)
		mc.Debugger = dbg
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		mc.Devices = &machine.DeviceHandler{Keyboard: newTermKeyboard()}
	}

	enterRawTerm()
	defer exitRawTerm()

	if dbg != nil {
		debugREPL(dbg, &mc)
	}

	var runErr error

	for !shouldexit && !mc.State.Halted {
		if stepsvar > 0 && mc.State.Cycles >= stepsvar {
			break
		}

		if mc.State.Cycles%1024 == 0 {
			select {
			case <-interrupt:
				fmt.Println()

				if dbg != nil {
					dbg.Break = true
				} else {
					shouldexit = true
				}
			default:
			}
		}

		if runErr = mc.Step(); runErr != nil {
			break
		}
	}

	exitRawTerm()

	glog.V(1).Infof(
		"stopped at %#04x after %d cycles (halted: %t)",
		mc.State.Program, mc.State.Cycles, mc.State.Halted,
	)

	if dumpvar != "" {
		if dbg == nil {
			dbg = &debugger.Debugger{}
		}

		dbg.PrintMem(&mc.State, dumpStart, dumpCount)
	}

	var addrErr *machine.AddressError

	if errors.As(runErr, &addrErr) && dbg != nil && dbg.SymTable != nil {
		if line, ok := dbg.SymTable.Lines[addrErr.Program]; ok {
			log.Printf("%s\n\tat source line %d", runErr, line)
			return errExit
		}
	}

	return runErr
}

// Returned once the failure has already been reported
var errExit = errors.New("exit")

func main() {
	err := rootCmd.Execute()
	glog.Flush()

	if err != nil {
		if err != errExit {
			log.Println(err)
		}

		os.Exit(1)
	}
}
