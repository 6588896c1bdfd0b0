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

// Package memory defines the address space and memory region concepts used
// by the emulated hardware.
//
// An AddressSpace is the capability a component is given in order to reach
// memory it does not own. It deliberately exposes nothing but aligned word
// access with explicit success/failure. The DMA engine in the smc package
// works exclusively through two AddressSpace values, one for the flash side
// and one for the DRAM side.
//
// A SubRegion is a handle onto a region of the guest memory map whose
// position and size is controlled by one component but whose content is
// owned elsewhere. The smc package repositions a SubRegion whenever a
// segment register changes.
package memory

// AccessError is the curated error pattern for a failed address space
// access.
const AccessError = "memory: %s access of unmapped address %#08x"

// AddressSpace instances provide 32bit word access to an addressable space
// of the emulated machine. Addresses are absolute guest addresses and must
// be word aligned. Values are little-endian.
//
// Implementations must return an error, preferably with the AccessError
// pattern, for addresses they do not map. They must never fault.
type AddressSpace interface {
	Load32(address uint32) (uint32, error)
	Store32(address uint32, data uint32) error
}

// SubRegion is a handle onto an externally owned area of the guest memory
// map. The holder of the handle decides where the region lives and how big
// it is but has no access to the region's content through the handle.
type SubRegion interface {
	Reposition(address uint32, size uint32)
}
