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

package smc_test

import (
	"testing"

	"github.com/RashmicaG/gopherbmc/hardware/ssi/spiflash"
	"github.com/RashmicaG/gopherbmc/test"
)

func TestFlashRead(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{reply: []uint8{0, 0, 0, 0, 0x11, 0x22, 0x33, 0x44}}
	s.Bus().Attach(0, dev)

	// read mode, chip-select active
	s.Write(0x10, 4, 0x00)

	// a framed read is the basic read opcode, three address bytes and the
	// data phase. the returned word assembles little-endian
	r := s.Flashes[0].Read(0x010203, 4)
	test.Equate(t, r, 0x44332211)
	test.Equate(t, len(dev.rx), 8)
	test.Equate(t, dev.rx[0], 0x03)
	test.Equate(t, dev.rx[1], 0x01)
	test.Equate(t, dev.rx[2], 0x02)
	test.Equate(t, dev.rx[3], 0x03)

	// chip-select dropped at the end of the transaction
	test.Equate(t, dev.cs, false)
}

func TestFlashReadCommandIgnored(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	// in read mode the command field of the control register is ignored
	// and the basic read opcode is used
	s.Write(0x10, 4, 0x0b<<16)
	s.Flashes[0].Read(0x00, 1)
	test.Equate(t, dev.rx[0], 0x03)
}

func TestFlashFastRead(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	s.Write(0x54, 4, 0xaa)

	// fast-read mode, command 0x0b, low dummy field 1 -> 8 dummy cycles
	s.Write(0x10, 4, 0x0b<<16|1<<6|0x01)
	s.Flashes[0].Read(0x00, 1)

	// opcode, three address bytes, eight dummy-data bytes, one data byte
	test.Equate(t, len(dev.rx), 13)
	test.Equate(t, dev.rx[0], 0x0b)
	test.Equate(t, dev.rx[4], 0xaa)
	test.Equate(t, dev.rx[11], 0xaa)
}

func TestFlashFastReadDualIO(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	// dual IO halves the dummy cycle count
	s.Write(0x10, 4, 1<<28|0xbb<<16|1<<6|0x01)
	s.Flashes[0].Read(0x00, 1)

	// opcode, three address bytes, four dummies, one data byte
	test.Equate(t, len(dev.rx), 9)
}

func TestFlash4ByteAddressing(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	// CE control bit 0 switches CS0 to 4 address bytes
	s.Write(0x04, 4, 0x01)
	s.Write(0x10, 4, 0x00)
	s.Flashes[0].Read(0x01020304, 4)

	test.Equate(t, dev.rx[0], 0x03)
	test.Equate(t, dev.rx[1], 0x01)
	test.Equate(t, dev.rx[2], 0x02)
	test.Equate(t, dev.rx[3], 0x03)
	test.Equate(t, dev.rx[4], 0x04)
}

func TestFlashAddressClamp(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	s.Write(0x10, 4, 0x00)

	// an address beyond the 128MiB segment wraps into it
	s.Flashes[0].Read(0x08000004, 1)
	test.Equate(t, dev.rx[1], 0x00)
	test.Equate(t, dev.rx[2], 0x00)
	test.Equate(t, dev.rx[3], 0x04)
}

func TestFlashWriteProtect(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	// write mode but the chip-select's write-enable bit is clear. the
	// write is rejected before anything reaches the bus
	s.Write(0x10, 4, 0x02<<16|0x02)
	s.Flashes[0].Write(0x00, 1, 0x55)
	test.Equate(t, len(dev.rx), 0)

	// with the write-enable bit set the full transaction goes out
	s.Write(0x00, 4, 1<<16)
	s.Flashes[0].Write(0x00, 1, 0x55)
	test.Equate(t, len(dev.rx), 5)
	test.Equate(t, dev.rx[0], 0x02)
	test.Equate(t, dev.rx[4], 0x55)
}

func TestFlashUserMode(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{reply: []uint8{0xc1}}
	s.Bus().Attach(0, dev)

	s.Write(0x00, 4, 1<<16)

	// user mode with the chip-select driven active. every write clocks
	// raw bytes; every read clocks zero bytes out and returns the replies
	s.Write(0x10, 4, 0x03)
	test.Equate(t, dev.cs, true)

	s.Flashes[0].Write(0x00, 1, 0x9f)
	test.Equate(t, dev.rx[0], 0x9f)

	r := s.Flashes[0].Read(0x00, 1)
	test.Equate(t, r, 0xc1)

	// stop-active ends the transaction
	s.Write(0x10, 4, 0x07)
	test.Equate(t, dev.cs, false)
}

func TestSnoop(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	s.Write(0x00, 4, 1<<16)
	s.Write(0x54, 4, 0xaa)

	// user mode, chip-select active. the guest clocks a command with two
	// dummy cycles itself. the controller is in 3byte addressing so the
	// snoop expects three address bytes after the opcode
	s.Write(0x10, 4, 0x03)

	s.Flashes[0].Write(0x00, 1, 0x0c)
	s.Flashes[0].Write(0x00, 1, 0x01)
	s.Flashes[0].Write(0x00, 1, 0x02)
	s.Flashes[0].Write(0x00, 1, 0x03)

	// the guest's dummy bytes are swallowed and the configured dummy-data
	// byte goes out in their place
	s.Flashes[0].Write(0x00, 1, 0xff)
	s.Flashes[0].Write(0x00, 1, 0xff)

	// a byte after the dummy phase passes through untouched
	s.Flashes[0].Write(0x00, 1, 0x55)

	test.Equate(t, len(dev.rx), 7)
	test.Equate(t, dev.rx[0], 0x0c)
	test.Equate(t, dev.rx[4], 0xaa)
	test.Equate(t, dev.rx[5], 0xaa)
	test.Equate(t, dev.rx[6], 0x55)
}

func TestSnoopNoDummies(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	s.Write(0x00, 4, 1<<16)
	s.Write(0x10, 4, 0x03)

	// the page-program opcode has no dummy cycles. snooping turns off
	// immediately and every byte passes through
	for _, b := range []uint8{0x02, 0x01, 0x02, 0x03, 0x55, 0x66} {
		s.Flashes[0].Write(0x00, 1, uint32(b))
	}

	test.Equate(t, len(dev.rx), 6)
	test.Equate(t, dev.rx[4], 0x55)
	test.Equate(t, dev.rx[5], 0x66)
}

func TestSnoopRestartsOnSelect(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	s.Write(0x00, 4, 1<<16)
	s.Write(0x54, 4, 0xaa)

	// a fast-read command left part way through
	s.Write(0x10, 4, 0x03)
	s.Flashes[0].Write(0x00, 1, 0x0b)
	s.Flashes[0].Write(0x00, 1, 0x01)

	// ending the transaction and starting a new one resets the snoop. the
	// first byte of the new transaction is read as an opcode again
	s.Write(0x10, 4, 0x07)
	s.Write(0x10, 4, 0x03)

	for _, b := range []uint8{0x0b, 0x01, 0x02, 0x03, 0xff} {
		s.Flashes[0].Write(0x00, 1, uint32(b))
	}

	// two bytes from the aborted command, then the new command with its
	// single dummy byte substituted
	test.Equate(t, len(dev.rx), 7)
	test.Equate(t, dev.rx[2], 0x0b)
	test.Equate(t, dev.rx[6], 0xaa)
}

func TestSnoop4Byte(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	dev := &traceDevice{}
	s.Bus().Attach(0, dev)

	s.Write(0x00, 4, 1<<16)
	s.Write(0x54, 4, 0xaa)

	// 4byte addressing. the snoop waits for four address bytes before it
	// starts substituting
	s.Write(0x04, 4, 0x01)
	s.Write(0x10, 4, 0x03)

	// dual IO read opcode with two dummy cycles, four address bytes, two
	// guest dummies and two payload bytes
	for _, b := range []uint8{0xbb, 0x01, 0x02, 0x03, 0x04, 0xff, 0xff, 0x55, 0x66} {
		s.Flashes[0].Write(0x00, 1, uint32(b))
	}

	test.Equate(t, len(dev.rx), 9)
	test.Equate(t, dev.rx[4], 0x04)
	test.Equate(t, dev.rx[5], 0xaa)
	test.Equate(t, dev.rx[6], 0xaa)
	test.Equate(t, dev.rx[7], 0x55)
	test.Equate(t, dev.rx[8], 0x66)
}

func TestFlashWindow(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	data := make([]byte, 0x100)
	for i := range data {
		data[i] = uint8(i)
	}
	s.Bus().Attach(0, spiflash.New(data))

	s.Write(0x10, 4, 0x00)

	// read through the flash window, absolute addresses
	test.Equate(t, s.WindowRead(0x20000010, 4), 0x13121110)
	test.Equate(t, s.WindowRead(0x20000014, 1), 0x14)

	// CS1's segment has no device behind it. an absent chip returns zero
	// bytes
	test.Equate(t, s.WindowRead(0x28000000, 4), 0x00)
}

func TestFlashWindowProgram(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	data := make([]byte, 0x100)
	s.Bus().Attach(0, spiflash.New(data))

	// write mode with the page-program command
	s.Write(0x00, 4, 1<<16)
	s.Write(0x10, 4, 0x02<<16|0x02)

	s.WindowWrite(0x20000010, 4, 0x44332211)
	test.Equate(t, data[0x10], 0x11)
	test.Equate(t, data[0x11], 0x22)
	test.Equate(t, data[0x12], 0x33)
	test.Equate(t, data[0x13], 0x44)
}
