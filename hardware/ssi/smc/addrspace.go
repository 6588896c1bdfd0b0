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
	"github.com/RashmicaG/gopherbmc/curated"
	"github.com/RashmicaG/gopherbmc/hardware/memory"
	"github.com/RashmicaG/gopherbmc/logger"
)

// csForAddress finds the chip-select whose segment covers the absolute
// address. the first match wins; overlapping segments are a logged guest
// error and which one masks the other is not specified.
func (s *SMC) csForAddress(address uint32) int {
	for cs := 0; cs < s.variant.maxSlaves; cs++ {
		seg := s.Segment(cs)
		if seg.Size != 0 && address >= seg.Addr && address < seg.Addr+seg.Size {
			return cs
		}
	}
	return -1
}

// WindowRead reads from the flash window at an absolute guest address. An
// address in a gap between segments is logged and reads as zero. size is an
// access width of 1 to 4 bytes, assembled little-endian.
func (s *SMC) WindowRead(address uint32, size int) uint32 {
	cs := s.csForAddress(address)
	if cs == -1 {
		logger.Logf("smc", "%s: flash window read @%08x outside any segment",
			s.variant.Name, address)
		return 0
	}
	return s.Flashes[cs].Read(address-s.Segment(cs).Addr, size)
}

// WindowWrite writes to the flash window at an absolute guest address. An
// address in a gap between segments is logged and the write discarded. size
// is an access width of 1 to 4 bytes, taken little-endian from data.
func (s *SMC) WindowWrite(address uint32, size int, data uint32) {
	cs := s.csForAddress(address)
	if cs == -1 {
		logger.Logf("smc", "%s: flash window write @%08x outside any segment",
			s.variant.Name, address)
		return
	}
	s.Flashes[cs].Write(address-s.Segment(cs).Addr, size, data)
}

// flashSpace adapts the flash window to the AddressSpace interface for the
// flash side of DMA transfers.
type flashSpace struct {
	s *SMC
}

// Load32 implements the memory.AddressSpace interface.
func (f flashSpace) Load32(address uint32) (uint32, error) {
	v := f.s.variant
	if address < v.flashWindowBase || address >= v.flashWindowBase+v.flashWindowSize {
		return 0, curated.Errorf(memory.AccessError, "read", address)
	}
	return f.s.WindowRead(address, 4), nil
}

// Store32 implements the memory.AddressSpace interface.
func (f flashSpace) Store32(address uint32, data uint32) error {
	v := f.s.variant
	if address < v.flashWindowBase || address >= v.flashWindowBase+v.flashWindowSize {
		return curated.Errorf(memory.AccessError, "write", address)
	}
	f.s.WindowWrite(address, 4, data)
	return nil
}
