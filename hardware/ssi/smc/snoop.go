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

// In user mode the guest clocks raw bytes onto the bus itself, opcode
// included, but the real controller still inserts the opcode's dummy cycles
// without being asked. The snoop watches the byte stream to reproduce that:
// the first byte after chip-select assertion is read as an opcode and looked
// up in the dummy table; once the address phase has passed, the guest's next
// bytes are swallowed and the configured dummy-data byte is clocked onto the
// bus in their place, one per byte, until the budget is spent.
//
// The cursor is a byte position within the transaction. It only ever moves
// OFF -> START -> counting -> OFF and restarts whenever a chip-select
// transitions back to active.

// values of the snoop cursor. anything else is a byte position within the
// current transaction.
const (
	snoopStart = 0x00
	snoopOff   = 0xff
)

// dummy-byte budget for a snooped opcode. zero for the plain read and
// program commands, growing with the IO width of the read command. a
// negative return means the opcode is not recognised.
func opcodeDummies(opcode uint8) int {
	switch opcode {
	case 0x03, 0x13: // read
		return 0
	case 0x02, 0x12: // page program
		return 0
	case 0xa2, 0x32, 0x34: // dual/quad page program
		return 0
	case 0x0b: // fast read
		return 1
	case 0x3b, 0x3c: // dual output read
		return 1
	case 0x6b, 0x6c: // quad output read
		return 1
	case 0x0c: // fast read, 4byte
		return 2
	case 0xbb, 0xbc: // dual IO read
		return 2
	case 0xeb, 0xec: // quad IO read
		return 4
	}
	return -1
}

// snoopByte runs one guest byte through the snoop state machine. It returns
// true if the byte has been consumed, in which case a dummy byte has been
// substituted on the bus and the guest byte must not be forwarded.
func (s *SMC) snoopByte(fl *Flash, b uint8) bool {
	if s.snoopIndex == snoopOff {
		return false
	}

	if s.snoopIndex == snoopStart {
		n := opcodeDummies(b)

		// no dummy cycles are expected with this opcode. turn off snooping
		// and let the transfer proceed normally
		if n <= 0 {
			s.snoopIndex = snoopOff
			return false
		}

		s.snoopDummies = uint8(n)
		s.snoopIndex++
		return false
	}

	addrWidth := uint8(3)
	if fl.is4Byte() {
		addrWidth = 4
	}

	if s.snoopIndex >= addrWidth+1 {
		// the transfer has reached the dummy cycle sequence. fake the dummy
		// byte and swallow the guest's
		s.bus.Transfer(uint8(s.regs[regDummyData]))

		s.snoopDummies--
		if s.snoopDummies == 0 {
			s.snoopIndex = snoopOff
		} else {
			s.snoopIndex++
		}
		return true
	}

	// still in the address phase
	s.snoopIndex++
	return false
}
