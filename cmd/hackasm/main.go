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
	"encoding/gob"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/gohack/pkg/assembler"
)

var debugvar bool
var dumpvar bool
var outvar string

var rootCmd = &cobra.Command{
	Use:   "hackasm [--debug] [--out outfile] [--dump] filename",
	Short: "Assembles Hack assembly into Hack binary text",
	Long: `hackasm translates a Hack assembly file into a .hack file holding one
16 digit binary word per line. When standard input is piped the source is
read from it and the output is written to out.hack unless --out is given.`,

	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return hackasm(args)
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.hackdb'",
	)
	rootCmd.Flags().StringVarP(
		&outvar, "out", "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	rootCmd.Flags().BoolVar(
		&dumpvar, "dump", false, "Prints the final symbol table to stderr",
	)

	flag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// Replaces the extension of the input's base name with ext
func outputName(infile string, ext string) string {
	filename := filepath.Base(infile)
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}

func debugName(outfile string) string {
	return filepath.Join(filepath.Dir(outfile), outputName(outfile, ".hackdb"))
}

// Renders a caret under the first column of the cursor followed by tildes
// for the rest of its span
func underline(cursor assembler.Cursor) string {
	return strings.Repeat(" ", max(cursor.Column-1, 0)) + "^" +
		strings.Repeat("~", max(cursor.Size-1, 0))
}

func sourceLine(source string, lineNum int) string {
	i := 0

	for line := range assembler.Lines(source) {
		i++

		if i == lineNum {
			return line
		}
	}

	return ""
}

func reportError(err error, source string) {
	var posErr assembler.PositionError

	if !errors.As(err, &posErr) {
		log.Println(err)
		return
	}

	cursor := posErr.GetPosition()
	mark := underline(cursor)

	if term.IsTerminal(int(os.Stderr.Fd())) {
		mark = "\033[31m" + mark + "\033[0m"
	}

	log.Printf("%s\n%s\n%s", err, sourceLine(source, cursor.Line), mark)
}

type symbolEntry struct {
	Name string
	Addr uint16
}

// Every symbol the program resolved, predefined ones included, by name
func symbolEntries(table *assembler.DebugTable) []symbolEntry {
	symbols := assembler.NewSymbolTable()

	for name, addr := range table.Labels {
		symbols.AddEntry(name, addr)
	}

	for addr, name := range table.Variables {
		symbols.AddEntry(name, addr)
	}

	entries := make([]symbolEntry, 0, symbols.Len())

	for _, name := range symbols.Names() {
		entries = append(entries, symbolEntry{name, symbols.GetAddress(name)})
	}

	return entries
}

func dumpSymbols(table *assembler.DebugTable) {
	pp.Fprintln(os.Stderr, symbolEntries(table))
}

func hackasm(args []string) error {
	var infile string
	var input io.Reader

	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no input file given")
		}

		input = os.Stdin
		log.SetPrefix("\033[1m<stdin>:\033[0m ")

		if outvar == "" {
			outvar = "out.hack"
		}
	} else {
		file, err := os.Open(args[0])

		if err != nil {
			return err
		}

		defer file.Close()

		filename := filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			return err
		} else if stat.IsDir() {
			return fmt.Errorf("%s is not a valid Hack assembly file", filename)
		}

		input = file
		infile = file.Name()
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m ", filename))

		if outvar == "" {
			outvar = outputName(filename, ".hack")
		}
	}

	data, err := io.ReadAll(input)

	if err != nil {
		return err
	}

	source := string(data)

	var table assembler.DebugTable

	if infile != "" {
		if table.Source, err = filepath.Abs(infile); err != nil {
			glog.Warningf("unable to resolve source path: %s", err)
			table.Source = ""
		}
	}

	result, err := assembler.AssembleHack(strings.NewReader(source), &table)

	if err != nil {
		reportError(err, source)
		return errExit
	}

	if dumpvar {
		dumpSymbols(&table)
	}

	if err := os.WriteFile(outvar, []byte(result), 0666); err != nil {
		log.Println("Error writing output file")
		return err
	}

	if debugvar {
		file, err := os.Create(debugName(outvar))

		if err != nil {
			log.Println("Error creating symbol table")
			return err
		}

		defer file.Close()

		if err := gob.NewEncoder(file).Encode(table); err != nil {
			log.Println("Error writing symbol table")
			return err
		}
	}

	glog.V(1).Infof("wrote %s", outvar)

	return nil
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
