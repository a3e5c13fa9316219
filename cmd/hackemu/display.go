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
	"fmt"
	"image/color"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/lassandro/gohack/pkg/machine"
	"github.com/lassandro/gohack/pkg/screen"
)

const statusHeight = 16

var specialKeys = map[ebiten.Key]uint16{
	ebiten.KeyEnter:       screen.KEY_NEWLINE,
	ebiten.KeyNumpadEnter: screen.KEY_NEWLINE,
	ebiten.KeyBackspace:   screen.KEY_BACKSPACE,
	ebiten.KeyArrowLeft:   screen.KEY_LEFT,
	ebiten.KeyArrowUp:     screen.KEY_UP,
	ebiten.KeyArrowRight:  screen.KEY_RIGHT,
	ebiten.KeyArrowDown:   screen.KEY_DOWN,
	ebiten.KeyHome:        screen.KEY_HOME,
	ebiten.KeyEnd:         screen.KEY_END,
	ebiten.KeyPageUp:      screen.KEY_PAGE_UP,
	ebiten.KeyPageDown:    screen.KEY_PAGE_DOWN,
	ebiten.KeyInsert:      screen.KEY_INSERT,
	ebiten.KeyDelete:      screen.KEY_DELETE,
	ebiten.KeyEscape:      screen.KEY_ESC,
	ebiten.KeyF1:          screen.KEY_F1,
	ebiten.KeyF2:          screen.KEY_F1 + 1,
	ebiten.KeyF3:          screen.KEY_F1 + 2,
	ebiten.KeyF4:          screen.KEY_F1 + 3,
	ebiten.KeyF5:          screen.KEY_F1 + 4,
	ebiten.KeyF6:          screen.KEY_F1 + 5,
	ebiten.KeyF7:          screen.KEY_F1 + 6,
	ebiten.KeyF8:          screen.KEY_F1 + 7,
	ebiten.KeyF9:          screen.KEY_F1 + 8,
	ebiten.KeyF10:         screen.KEY_F1 + 9,
	ebiten.KeyF11:         screen.KEY_F1 + 10,
	ebiten.KeyF12:         screen.KEY_F12,
}

// Tracks the key held in the window. Set once per frame by Update and read
// by the machine during the same frame.
type windowKeyboard struct {
	key  uint16
	char uint16
}

func (kb *windowKeyboard) Key() uint16 {
	return kb.key
}

func (kb *windowKeyboard) update() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if code := screen.KeyCode(r); code != 0 {
			kb.char = code
		}
	}

	for key, code := range specialKeys {
		if ebiten.IsKeyPressed(key) {
			kb.key = code
			return
		}
	}

	// Characters arrive as events, so hold the last one while any key is down
	anyPressed := false

	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		if ebiten.IsKeyPressed(key) {
			anyPressed = true
			break
		}
	}

	if !anyPressed {
		kb.char = 0
	}

	kb.key = kb.char
}

type display struct {
	mc       *machine.Machine
	keyboard *windowKeyboard
	image    *ebiten.Image
	pixels   []byte
	speed    int
	err      error
}

func (d *display) Update() error {
	d.keyboard.update()

	if d.err != nil || d.mc.State.Halted {
		return nil
	}

	for i := 0; i < d.speed && !d.mc.State.Halted; i++ {
		if err := d.mc.Step(); err != nil {
			glog.Errorf("machine fault: %s", err)
			d.err = err
			break
		}
	}

	return nil
}

func (d *display) status() string {
	switch {
	case d.err != nil:
		return fmt.Sprintf("FAULT  PC:%#04x", d.mc.State.Program)
	case d.mc.State.Halted:
		return fmt.Sprintf("HALTED PC:%#04x  cycles:%d", d.mc.State.Program, d.mc.State.Cycles)
	}

	return fmt.Sprintf(
		"PC:%#04x  A:%#04x  D:%#04x  KBD:%d",
		d.mc.State.Program, d.mc.State.A, d.mc.State.D, d.keyboard.key,
	)
}

func (d *display) Draw(dst *ebiten.Image) {
	dst.Fill(color.RGBA{0x30, 0x30, 0x30, 0xFF})

	screen.Pixels(d.mc.State.Screen(), d.pixels)
	d.image.WritePixels(d.pixels)
	dst.DrawImage(d.image, nil)

	text.Draw(
		dst, d.status(), basicfont.Face7x13,
		4, screen.HEIGHT+12, color.RGBA{0xC0, 0xC0, 0xC0, 0xFF},
	)
}

func (d *display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screen.WIDTH, screen.HEIGHT + statusHeight
}

func hackemuDisplay(filename string) error {
	var mc machine.Machine

	if err := loadProgram(filename, &mc); err != nil {
		return err
	}

	keyboard := &windowKeyboard{}
	mc.Devices = &machine.DeviceHandler{Keyboard: keyboard}

	d := &display{
		mc:       &mc,
		keyboard: keyboard,
		image:    ebiten.NewImage(screen.WIDTH, screen.HEIGHT),
		pixels:   make([]byte, screen.WIDTH*screen.HEIGHT*4),
		speed:    speedvar,
	}

	scale := max(scalevar, 1)

	ebiten.SetWindowSize(screen.WIDTH*scale, (screen.HEIGHT+statusHeight)*scale)
	ebiten.SetWindowTitle("hackemu - " + filename)

	if err := ebiten.RunGame(d); err != nil {
		return err
	}

	return d.err
}
