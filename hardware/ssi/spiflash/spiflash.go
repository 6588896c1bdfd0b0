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

// Package spiflash is a minimal serial NOR flash device for attachment to
// the ssi bus. It answers the read and page-program opcodes the flash
// controller issues and is content with being clocked dummy bytes between
// the address and data phases.
//
// It is not a model of any particular part. Erase behaviour, status
// registers and timing are not emulated. It exists so that the controller,
// the monitor and the package tests have something at the far end of the
// bus.
package spiflash

import "github.com/RashmicaG/gopherbmc/logger"

type phase int

const (
	phaseOpcode phase = iota
	phaseAddress
	phaseDummy
	phaseRead
	phaseProgram
	phaseIgnore
)

// command opcodes understood by the device.
const (
	opRead      = 0x03
	opRead4     = 0x13
	opFastRead  = 0x0b
	opFastRead4 = 0x0c
	opPageProg  = 0x02
	opPageProg4 = 0x12
	opWriteEn   = 0x06
	opWriteDis  = 0x04
)

// Flash is a minimal serial NOR flash device.
type Flash struct {
	data []byte

	cs bool

	phase     phase
	cmd       uint8
	addr      uint32
	addrBytes int
	dummies   int
}

// New is the preferred method of initialisation for the Flash type. The
// backing data is used directly, not copied; the caller can inspect
// programming effects through it.
func New(data []byte) *Flash {
	return &Flash{data: data}
}

// Data returns the backing data of the device.
func (f *Flash) Data() []byte {
	return f.data
}

// SetCS implements the ssi.Device interface.
func (f *Flash) SetCS(assert bool) {
	f.cs = assert
	if !assert {
		f.phase = phaseOpcode
	}
}

// Transfer implements the ssi.Device interface.
func (f *Flash) Transfer(v uint8) uint8 {
	if !f.cs {
		return 0
	}

	switch f.phase {
	case phaseOpcode:
		f.decodeOpcode(v)

	case phaseAddress:
		f.addr = f.addr<<8 | uint32(v)
		f.addrBytes--
		if f.addrBytes == 0 {
			if f.dummies > 0 {
				f.phase = phaseDummy
			} else {
				f.startData()
			}
		}

	case phaseDummy:
		f.dummies--
		if f.dummies == 0 {
			f.startData()
		}

	case phaseRead:
		var r uint8
		if int(f.addr) < len(f.data) {
			r = f.data[f.addr]
		}
		f.addr++
		return r

	case phaseProgram:
		if int(f.addr) < len(f.data) {
			f.data[f.addr] = v
		}
		f.addr++

	case phaseIgnore:
		// remain inert until chip-select is deasserted
	}

	return 0
}

func (f *Flash) decodeOpcode(v uint8) {
	f.cmd = v
	f.addr = 0
	f.dummies = 0

	switch v {
	case opRead, opPageProg:
		f.addrBytes = 3
		f.phase = phaseAddress
	case opRead4, opPageProg4:
		f.addrBytes = 4
		f.phase = phaseAddress
	case opFastRead:
		f.addrBytes = 3
		f.dummies = 1
		f.phase = phaseAddress
	case opFastRead4:
		f.addrBytes = 4
		f.dummies = 2
		f.phase = phaseAddress
	case opWriteEn, opWriteDis:
		f.phase = phaseIgnore
	default:
		logger.Logf("spiflash", "unhandled opcode %#02x", v)
		f.phase = phaseIgnore
	}
}

func (f *Flash) startData() {
	switch f.cmd {
	case opRead, opRead4, opFastRead, opFastRead4:
		f.phase = phaseRead
	case opPageProg, opPageProg4:
		f.phase = phaseProgram
	default:
		f.phase = phaseIgnore
	}
}
