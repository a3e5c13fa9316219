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
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lassandro/gohack/pkg/screen"
)

var termRestore unix.Termios
var termRaw bool

func enterRawTerm() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), ioctlGetTermios)

	if err != nil {
		panic(err)
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), ioctlSetTermios, &termstate,
	); err != nil {
		panic(err)
	}

	termRaw = true
}

func exitRawTerm() {
	if !termRaw {
		return
	}

	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), ioctlSetTermios, &termRestore,
	); err != nil {
		panic(err)
	}

	termRaw = false
}

// A terminal only reports key presses, so a key is reported as held until
// keyHold has passed without another press.
const keyHold = 150 * time.Millisecond

type termKeyboard struct {
	mutex   sync.Mutex
	fd      int
	buf     []byte
	key     uint16
	pressed time.Time
}

func newTermKeyboard() *termKeyboard {
	return &termKeyboard{fd: int(os.Stdin.Fd())}
}

func (kb *termKeyboard) poll() {
	var input [32]byte

	n, err := unix.Read(kb.fd, input[:])

	if err != nil || n <= 0 {
		return
	}

	kb.buf = append(kb.buf, input[:n]...)

	for len(kb.buf) > 0 {
		code, size := screen.DecodeTerminal(kb.buf)
		kb.buf = kb.buf[size:]

		if code != 0 {
			kb.key = code
			kb.pressed = time.Now()
		}
	}
}

func (kb *termKeyboard) Key() uint16 {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	if termRaw {
		kb.poll()
	}

	if kb.key != 0 && time.Since(kb.pressed) > keyHold {
		kb.key = 0
	}

	return kb.key
}
