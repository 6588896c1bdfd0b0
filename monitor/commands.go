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

package monitor

import (
	"bytes"
	"os"
	"strconv"

	"github.com/RashmicaG/gopherbmc/curated"
	"github.com/RashmicaG/gopherbmc/hardware/ssi/smc"
	"github.com/RashmicaG/gopherbmc/logger"
	"github.com/bradleyjkemp/memviz"
)

// parseValue accepts decimal, hex (0x) and octal (0) input.
func parseValue(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf("monitor: not a number: %s", s)
	}
	return uint32(v), nil
}

// parseWidth accepts an optional access width argument, defaulting to a full
// word.
func parseWidth(args []string, idx int) (int, error) {
	if len(args) <= idx {
		return 4, nil
	}

	switch args[idx] {
	case "1", "2", "4":
		w, _ := strconv.Atoi(args[idx])
		return w, nil
	}

	return 0, curated.Errorf("monitor: width must be 1, 2 or 4: %s", args[idx])
}

func (m *Monitor) cmdPeek(args []string) error {
	if len(args) < 1 {
		return curated.Errorf("monitor: PEEK needs a register offset")
	}

	offset, err := parseValue(args[0])
	if err != nil {
		return err
	}
	width, err := parseWidth(args, 1)
	if err != nil {
		return err
	}

	m.Print("%s%#04x = %#08x%s\n", ansiCyan, offset, m.s.Read(offset, width), ansiOff)
	return nil
}

func (m *Monitor) cmdPoke(args []string) error {
	if len(args) < 2 {
		return curated.Errorf("monitor: POKE needs a register offset and a value")
	}

	offset, err := parseValue(args[0])
	if err != nil {
		return err
	}
	value, err := parseValue(args[1])
	if err != nil {
		return err
	}
	width, err := parseWidth(args, 2)
	if err != nil {
		return err
	}

	m.s.Write(offset, width, value)
	return nil
}

func (m *Monitor) cmdRead(args []string) error {
	if len(args) < 1 {
		return curated.Errorf("monitor: READ needs an address")
	}

	addr, err := parseValue(args[0])
	if err != nil {
		return err
	}
	width, err := parseWidth(args, 1)
	if err != nil {
		return err
	}

	m.Print("%s%#08x = %#08x%s\n", ansiCyan, addr, m.s.WindowRead(addr, width), ansiOff)
	return nil
}

func (m *Monitor) cmdWrite(args []string) error {
	if len(args) < 2 {
		return curated.Errorf("monitor: WRITE needs an address and a value")
	}

	addr, err := parseValue(args[0])
	if err != nil {
		return err
	}
	value, err := parseValue(args[1])
	if err != nil {
		return err
	}
	width, err := parseWidth(args, 2)
	if err != nil {
		return err
	}

	m.s.WindowWrite(addr, width, value)
	return nil
}

func (m *Monitor) cmdSegments(args []string) error {
	for _, fl := range m.s.Flashes {
		m.Print("%sCS%d %v%s\n", ansiCyan, fl.ID(), m.s.Segment(fl.ID()), ansiOff)
	}
	return nil
}

func (m *Monitor) cmdLog(args []string) error {
	logger.Write(os.Stdout)
	return nil
}

func (m *Monitor) cmdSave(args []string) error {
	if len(args) < 1 {
		return curated.Errorf("monitor: SAVE needs a filename")
	}

	b, err := m.s.Snapshot().MarshalBinary()
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	if err := os.WriteFile(args[0], b, 0644); err != nil {
		return curated.Errorf("monitor: %v", err)
	}

	return nil
}

func (m *Monitor) cmdLoad(args []string) error {
	if len(args) < 1 {
		return curated.Errorf("monitor: LOAD needs a filename")
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}

	var st smc.State
	if err := st.UnmarshalBinary(b); err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	m.s.Plumb(&st)

	return nil
}

func (m *Monitor) cmdDump(args []string) error {
	if len(args) < 1 {
		return curated.Errorf("monitor: DUMP needs a filename")
	}

	// memviz produces graphviz dot output. render with:
	//	dot -Tpng file -o file.png
	buf := &bytes.Buffer{}
	memviz.Map(buf, m.s.Snapshot())

	if err := os.WriteFile(args[0], buf.Bytes(), 0644); err != nil {
		return curated.Errorf("monitor: %v", err)
	}

	return nil
}
