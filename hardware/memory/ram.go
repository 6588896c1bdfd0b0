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

package memory

import (
	"encoding/binary"

	"github.com/RashmicaG/gopherbmc/curated"
)

// RAM is a flat, byte addressable area of memory mapped at a fixed base
// address. It implements the AddressSpace interface and is used for the DRAM
// side of DMA transfers and in package tests.
type RAM struct {
	base uint32
	data []byte
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(base uint32, size uint32) *RAM {
	return &RAM{
		base: base,
		data: make([]byte, size),
	}
}

// Load32 implements the AddressSpace interface.
func (r *RAM) Load32(address uint32) (uint32, error) {
	if address < r.base || address-r.base+4 > uint32(len(r.data)) || address%4 != 0 {
		return 0, curated.Errorf(AccessError, "read", address)
	}
	return binary.LittleEndian.Uint32(r.data[address-r.base:]), nil
}

// Store32 implements the AddressSpace interface.
func (r *RAM) Store32(address uint32, data uint32) error {
	if address < r.base || address-r.base+4 > uint32(len(r.data)) || address%4 != 0 {
		return curated.Errorf(AccessError, "write", address)
	}
	binary.LittleEndian.PutUint32(r.data[address-r.base:], data)
	return nil
}

// Poke a byte value directly into RAM, bypassing the aligned word interface.
// For use by tests and tooling.
func (r *RAM) Poke(address uint32, data uint8) {
	r.data[address-r.base] = data
}

// Peek a byte value directly from RAM, bypassing the aligned word interface.
// For use by tests and tooling.
func (r *RAM) Peek(address uint32) uint8 {
	return r.data[address-r.base]
}
