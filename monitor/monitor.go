// This file is part of GopherBMC.
//
// GopherBMC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherBMC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherBMC.  If not, see <https://www.gnu.org/licenses/>.

// Package monitor is an interactive terminal for poking at an emulated
// flash controller. It is the development surface of the project: registers
// and the flash window can be inspected and changed by hand, controller
// state can be saved, restored and visualised, and the central log can be
// reviewed.
//
// The monitor owns the terminal for the duration of Run(), switching it to
// cbreak mode for line editing and restoring it on the way out.
package monitor

import (
	"os"
	"strings"

	"github.com/RashmicaG/gopherbmc/curated"
	"github.com/RashmicaG/gopherbmc/hardware/ssi/smc"
	"github.com/RashmicaG/gopherbmc/monitor/easyterm"
)

// UserQuit is returned from Run() when the user asks to leave the monitor.
// Not an error condition.
const UserQuit = "user quit"

const prompt = "(bmc) "

// Monitor is an interactive terminal attached to one flash controller.
type Monitor struct {
	easyterm.Terminal

	s *smc.SMC

	// the input buffer for the line being edited
	line []byte

	running bool
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(s *smc.SMC) (*Monitor, error) {
	m := &Monitor{s: s}

	if err := m.Initialise(os.Stdin, os.Stdout); err != nil {
		return nil, curated.Errorf("monitor: %v", err)
	}

	return m, nil
}

// Run the monitor input loop until the user quits or input is exhausted.
func (m *Monitor) Run() error {
	m.CBreakMode()
	defer m.CleanUp()

	m.Print("%s monitor. type HELP for commands\n", m.s.Variant().String())

	m.running = true
	for m.running {
		m.Print("%s%s%s", ansiBold, prompt, ansiOff)

		input, err := m.readLine()
		if err != nil {
			if curated.Is(err, UserQuit) {
				return nil
			}
			return err
		}

		if err := m.dispatch(input); err != nil {
			if curated.Is(err, UserQuit) {
				return nil
			}
			m.Print("%s* %v%s\n", ansiRed, err, ansiOff)
		}
	}

	return nil
}

// readLine collects a line of input in cbreak mode. minimal editing:
// backspace and interrupt. an interrupt on a non-empty line clears the line,
// on an empty line it quits the monitor.
func (m *Monitor) readLine() (string, error) {
	m.line = m.line[:0]

	b := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(b)
		if err != nil || n == 0 {
			return "", curated.Errorf(UserQuit)
		}

		switch b[0] {
		case easyterm.KeyInterrupt:
			if len(m.line) == 0 {
				m.Print("\n")
				return "", curated.Errorf(UserQuit)
			}
			m.line = m.line[:0]
			m.Print("\n%s%s%s", ansiBold, prompt, ansiOff)

		case easyterm.KeyEndOfFile:
			m.Print("\n")
			return "", curated.Errorf(UserQuit)

		case easyterm.KeyCarriage, '\n':
			m.Print("\n")
			return string(m.line), nil

		case easyterm.KeyBackspace, easyterm.KeyDelBackstp:
			if len(m.line) > 0 {
				m.line = m.line[:len(m.line)-1]
				m.Print("\b \b")
			}

		case easyterm.KeyEsc, easyterm.KeyTab:
			// no completion or escape sequences. swallow

		default:
			if b[0] >= 32 && b[0] < 127 {
				m.line = append(m.line, b[0])
				m.Print("%c", b[0])
			}
		}
	}
}

// dispatch one line of input to the command implementations in commands.go.
func (m *Monitor) dispatch(input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil
	}

	args := tokens[1:]

	switch strings.ToUpper(tokens[0]) {
	case "PEEK":
		return m.cmdPeek(args)
	case "POKE":
		return m.cmdPoke(args)
	case "READ":
		return m.cmdRead(args)
	case "WRITE":
		return m.cmdWrite(args)
	case "SEG":
		return m.cmdSegments(args)
	case "LOG":
		return m.cmdLog(args)
	case "RESET":
		m.s.Reset()
		return nil
	case "SAVE":
		return m.cmdSave(args)
	case "LOAD":
		return m.cmdLoad(args)
	case "DUMP":
		return m.cmdDump(args)
	case "HELP":
		m.Print(help)
		return nil
	case "QUIT", "EXIT":
		m.running = false
		return nil
	}

	return curated.Errorf("monitor: unrecognised command: %s", tokens[0])
}

const help = `PEEK offset [width]          read a controller register
POKE offset value [width]    write a controller register
READ addr [width]            read the flash window (absolute address)
WRITE addr value [width]     write the flash window (absolute address)
SEG                          show chip-select segments
LOG                          show the central log
RESET                        reset the controller
SAVE file                    save controller state
LOAD file                    restore controller state
DUMP file                    write a graphviz graph of controller state
QUIT                         leave the monitor
`

const ansiOff = "\033[0m"
const ansiBold = "\033[1m"
const ansiRed = "\033[31m"
const ansiCyan = "\033[36m"
