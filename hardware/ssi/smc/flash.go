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

package smc

import (
	"github.com/RashmicaG/gopherbmc/hardware/memory"
	"github.com/RashmicaG/gopherbmc/logger"
)

// Flash is one chip-select of the controller. It holds no register state of
// its own; mode, opcode and enable flags are derived from the controller's
// register file on demand.
type Flash struct {
	id  int
	smc *SMC

	// handle to the externally owned region this chip-select is mapped
	// through. may be nil when nothing outside the controller cares about
	// segment geometry
	region memory.SubRegion
}

// ID returns the chip-select number of the flash device.
func (fl *Flash) ID() int {
	return fl.id
}

// AttachRegion gives the flash device the handle it repositions whenever its
// segment changes.
func (fl *Flash) AttachRegion(region memory.SubRegion) {
	fl.region = region
}

// the chip-select's control register.
func (fl *Flash) ctrl() uint32 {
	return fl.smc.regs[fl.smc.variant.regCtrl0+fl.id]
}

// the mode field of the control register.
func (fl *Flash) mode() int {
	return int(fl.ctrl() & ctrlModeMask)
}

// Writable returns true if the chip-select's write-enable bit is set in the
// conf register.
func (fl *Flash) Writable() bool {
	s := fl.smc
	return s.regs[s.variant.regConf]&(1<<(s.variant.confEnableW0+fl.id)) != 0
}

// the opcode issued for the current mode. in read mode the opcode is always
// the basic read command; in other modes the command field of the control
// register should necessarily be defined.
func (fl *Flash) command() uint8 {
	cmd := uint8((fl.ctrl() >> ctrlCmdShift) & ctrlCmdMask)

	if fl.mode() == modeRead {
		cmd = opcodeRead
	}

	if cmd == 0 {
		logger.Logf("smc", "%s: no command defined for mode %d", fl.smc.variant.Name, fl.mode())
	}

	return cmd
}

// is4Byte returns true when the chip-select uses 4 rather than 3 address
// bytes. most variants keep the bit in the CE control register; the SPI
// flavoured generation keeps it in the control register itself.
func (fl *Flash) is4Byte() bool {
	s := fl.smc
	if s.variant.spi4Byte {
		return s.regs[s.variant.regCtrl0]&ctrlSPI4Byte != 0
	}
	return s.regs[s.variant.regCECtrl]&(1<<fl.id) != 0
}

// the number of dummy transfers inserted after the address phase in
// fast-read mode. derived from the split dummy-cycle fields of the control
// register. halved when the transfer uses dual IO for the address and data
// phases.
func (fl *Flash) dummies() int {
	ctrl := fl.ctrl()
	high := (ctrl >> ctrlDummyHighShift) & 0x1
	low := (ctrl >> ctrlDummyLowShift) & ctrlDummyLowMask
	dummies := int((high<<2)|low) * 8

	if ctrl&ctrlIODualAddrData != 0 {
		dummies /= 2
	}

	return dummies
}

func (fl *Flash) stopActive() bool {
	return fl.ctrl()&ctrlCEStopActive != 0
}

// assert the chip-select for a framed transaction.
func (fl *Flash) assertCS() {
	s := fl.smc
	s.regs[s.variant.regCtrl0+fl.id] &^= ctrlCEStopActive
	s.bus.Select(fl.id, !fl.stopActive())
}

// deassert the chip-select at the end of a framed transaction.
func (fl *Flash) deassertCS() {
	s := fl.smc
	s.regs[s.variant.regCtrl0+fl.id] |= ctrlCEStopActive
	s.bus.Select(fl.id, !fl.stopActive())
}

// updateCS propagates a control register write to the snoop emulator and to
// the chip-select signal on the bus. a chip-select transition back to active
// restarts the snoop cursor.
func (fl *Flash) updateCS() {
	s := fl.smc

	if fl.stopActive() {
		s.snoopIndex = snoopOff
	} else {
		s.snoopIndex = snoopStart
	}

	s.bus.Select(fl.id, !fl.stopActive())
}

// clampAddress keeps a flash access inside the chip-select's segment.
func (fl *Flash) clampAddress(addr uint32) uint32 {
	seg := fl.smc.Segment(fl.id)

	if seg.Size == 0 {
		logger.Logf("smc", "%s: access to disabled segment of CS%d", fl.smc.variant.Name, fl.id)
		return 0
	}

	if addr%seg.Size != addr {
		logger.Logf("smc", "%s: invalid address %#08x for CS%d segment : %v",
			fl.smc.variant.Name, addr, fl.id, seg)
		addr %= seg.Size
	}

	return addr
}

// setup issues the command, address and any dummy phases of a framed
// transaction.
func (fl *Flash) setup(addr uint32) {
	s := fl.smc
	cmd := fl.command()

	// flash access can not exceed the chip-select's segment
	addr = fl.clampAddress(addr)

	s.bus.Transfer(cmd)

	if fl.is4Byte() {
		s.bus.Transfer(uint8(addr >> 24))
	}
	s.bus.Transfer(uint8(addr >> 16))
	s.bus.Transfer(uint8(addr >> 8))
	s.bus.Transfer(uint8(addr))

	// dummy transfers carry the configured dummy-data byte. the count
	// should be zero in read mode and non-zero in fast-read mode but the
	// hardware allows inconsistent settings, so the mode decides
	if fl.mode() == modeFastRead {
		for i := 0; i < fl.dummies(); i++ {
			s.bus.Transfer(uint8(s.regs[regDummyData]))
		}
	}
}

// Read from the flash device. The address is an offset into the
// chip-select's segment; size is 1 to 4 bytes, assembled little-endian. In
// read and fast-read modes the access is framed into a full bus
// transaction. In user mode bytes are clocked straight off the bus.
func (fl *Flash) Read(addr uint32, size int) uint32 {
	s := fl.smc
	var ret uint32

	switch fl.mode() {
	case modeUser:
		for i := 0; i < size; i++ {
			ret |= uint32(s.bus.Transfer(0)) << (8 * i)
		}

	case modeRead, modeFastRead:
		fl.assertCS()
		fl.setup(addr)

		for i := 0; i < size; i++ {
			ret |= uint32(s.bus.Transfer(0)) << (8 * i)
		}

		fl.deassertCS()

	default:
		logger.Logf("smc", "%s: invalid flash mode %d for read", s.variant.Name, fl.mode())
	}

	return ret
}

// Write to the flash device. The address is an offset into the
// chip-select's segment; size is 1 to 4 bytes, taken little-endian from
// data. Writes to a chip-select without its write-enable bit set are
// rejected and the bus is untouched. In user mode bytes pass through the
// command snoop before reaching the bus.
func (fl *Flash) Write(addr uint32, size int, data uint32) {
	s := fl.smc

	if !fl.Writable() {
		logger.Logf("smc", "%s: CS%d is not writable", s.variant.Name, fl.id)
		return
	}

	switch fl.mode() {
	case modeUser:
		for i := 0; i < size; i++ {
			b := uint8(data >> (8 * i))
			if s.snoopByte(fl, b) {
				continue
			}
			s.bus.Transfer(b)
		}

	case modeWrite:
		fl.assertCS()
		fl.setup(addr)

		for i := 0; i < size; i++ {
			s.bus.Transfer(uint8(data >> (8 * i)))
		}

		fl.deassertCS()

	default:
		logger.Logf("smc", "%s: invalid flash mode %d for write", s.variant.Name, fl.mode())
	}
}
