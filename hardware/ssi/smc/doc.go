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

// Package smc emulates the memory mapped SPI flash controller found on BMC
// class systems-on-chip. The controller exposes a register file for
// configuration and a flash window through which the attached flash devices
// can be read, and on some hardware generations programmed, as ordinary
// memory.
//
// A controller is created with NewSMC, naming one of the hardware
// generations in the variant table (see VariantNames). All differences
// between generations are data in the Variant structure; there is one code
// path for all of them.
//
// Guest access arrives through two surfaces. Read and Write decode the
// register file: configuration, per chip-select control, segment geometry,
// the interrupt register and on capable variants the DMA engine. WindowRead
// and WindowWrite (and the AddressSpace returned by FlashSpace) cover the
// flash window, translating an absolute guest address to a chip-select and
// framing the access into a full SPI transaction according to the
// chip-select's current mode.
//
// In user mode the guest drives the SPI bus directly through the window,
// one byte per access. The only intervention is the command snoop, which
// inserts the dummy cycles that real flash commands require. See snoop.go.
//
// The controller is synchronous and single-threaded. A register write that
// starts a DMA transfer completes the whole transfer before returning. See
// the SMC type for the dispatch requirements this places on the caller.
package smc
