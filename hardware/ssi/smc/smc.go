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
	"github.com/RashmicaG/gopherbmc/hardware/ssi"
	"github.com/RashmicaG/gopherbmc/logger"
)

// MissingDRAM is returned by NewSMC when the variant has a DMA engine but no
// DRAM address space was supplied.
const MissingDRAM = "smc: %s: dram link not set"

// Line is a single output signal from the controller. The DMA completion
// interrupt is a Line; chip-select signalling towards the flash devices goes
// through the ssi bus.
type Line func(assert bool)

// SMC is the memory mapped flash memory controller. One instance emulates
// one controller of the hardware generation named at construction.
//
// The controller assumes the single-threaded, run-to-completion dispatch
// model of the wider emulation: a register access and any DMA transfer it
// triggers execute synchronously and are never observed part-done. Nothing
// in the type locks; a user that dispatches from more than one goroutine
// must serialise all calls.
type SMC struct {
	variant *Variant

	regs [numRegisters]uint32

	// one Flash per possible chip-select of the variant. entries beyond
	// NumCS exist but have no device behind them
	Flashes []*Flash

	// number of chip-selects populated on this board
	NumCS int

	bus *ssi.Bus
	irq Line

	// address spaces for the two sides of a DMA transfer. flash is the
	// controller's own flash window; reads through it re-enter the framed
	// read path
	flash memory.AddressSpace
	dram  memory.AddressSpace

	// guest address the DRAM address mask is applied against
	sdramBase uint32

	// InjectFailure corrupts the DMA checksum for timing settings that are
	// unreliable on real hardware. An aid for testing calibration
	// algorithms.
	InjectFailure bool

	// the command snoop cursor and remaining dummy-byte budget. see
	// snoop.go
	snoopIndex   uint8
	snoopDummies uint8
}

// NewSMC is the preferred method of initialisation for the SMC type.
//
// The variant argument names an entry in the variant table. numCS is the
// number of chip-selects populated on the board and is clamped to the
// variant's maximum. A nil bus creates an unpopulated bus of the right size.
//
// The dram address space is required by variants with a DMA engine; for
// other variants it may be nil. sdramBase is ORed into masked DMA DRAM
// cursor writes. A nil irq line discards completion interrupts.
func NewSMC(variant string, numCS int, bus *ssi.Bus, dram memory.AddressSpace, sdramBase uint32, irq Line) (*SMC, error) {
	v, err := lookupVariant(variant)
	if err != nil {
		return nil, err
	}

	if v.hasDMA && dram == nil {
		return nil, curated.Errorf(MissingDRAM, v.Name)
	}

	// enforce some real HW limits
	if numCS > v.maxSlaves {
		logger.Logf("smc", "%s: number of chip-selects cannot exceed %d", v.Name, v.maxSlaves)
		numCS = v.maxSlaves
	}
	if numCS < 1 {
		numCS = 1
	}

	if bus == nil {
		bus = ssi.NewBus(v.maxSlaves)
	}

	s := &SMC{
		variant:   v,
		NumCS:     numCS,
		bus:       bus,
		irq:       irq,
		dram:      dram,
		sdramBase: sdramBase,
	}
	s.flash = flashSpace{s: s}

	s.Flashes = make([]*Flash, v.maxSlaves)
	for i := range s.Flashes {
		s.Flashes[i] = &Flash{id: i, smc: s}
	}

	s.Reset()

	return s, nil
}

// Variant returns the variant descriptor the controller was built from.
func (s *SMC) Variant() *Variant {
	return s.variant
}

// Bus returns the ssi bus the controller drives.
func (s *SMC) Bus() *ssi.Bus {
	return s.bus
}

// FlashSpace returns the controller's flash window as an address space.
// Word reads and writes through it take the framed transaction path of the
// chip-select that owns the address.
func (s *SMC) FlashSpace() memory.AddressSpace {
	return s.flash
}

// Reset the controller: zero the register file, deselect every chip-select,
// restore the default segments and clear all transient DMA and snoop state.
// No entity is reallocated.
func (s *SMC) Reset() {
	v := s.variant

	for i := range s.regs {
		s.regs[i] = 0
	}

	// unselect all chip-selects
	for i := 0; i < s.NumCS; i++ {
		s.regs[v.regCtrl0+i] |= ctrlCEStopActive
		s.bus.Select(i, false)
	}

	// setup default segment register values, and return the mapped regions
	// to their default geometry. the decode round-trip normalises disabled
	// segments to the window base
	for i := 0; i < v.maxSlaves; i++ {
		s.regs[regSegAddr0+i] = v.encoding.toRegister(v, v.segments[i])
		seg := v.encoding.toSegment(v, s.regs[regSegAddr0+i])
		if s.Flashes[i].region != nil {
			s.Flashes[i].region.Reposition(seg.Addr-v.flashWindowBase, seg.Size)
		}
	}

	// hardware strapping of the conf flash-type fields
	for i := 0; i < v.strapSPIType; i++ {
		s.regs[v.regConf] |= confFlashTypeSPI << (2 * i)
	}

	s.snoopIndex = snoopOff
	s.snoopDummies = 0
}

// mask covering an access width of 1 to 4 bytes.
func widthMask(size int) uint32 {
	switch size {
	case 1:
		return 0xff
	case 2:
		return 0xffff
	case 3:
		return 0xffffff
	}
	return 0xffffffff
}

// readable indexes are gated per variant. everything else reads as all-ones.
func (s *SMC) readable(idx int) bool {
	v := s.variant

	if idx < 0 || idx >= v.numRegs {
		return false
	}

	switch {
	case idx == v.regConf:
		return true
	case idx == v.regTimings:
		return true
	case v.regCECtrl != noRegister && idx == v.regCECtrl:
		return true
	case idx == regIntrCtrl:
		return true
	case idx == regDummyData:
		return true
	case v.hasDMA && idx >= regDMACtrl && idx <= regDMAChecksum:
		return true
	case idx >= regSegAddr0 && idx < regSegAddr0+v.maxSlaves:
		return true
	case idx >= v.regCtrl0 && idx < v.regCtrl0+v.maxSlaves:
		return true
	}

	return false
}

// Read a register. The address is a byte offset from the controller base;
// size is an access width of 1 to 4 bytes. Values are little-endian; a
// sub-word access reads the addressed byte lanes of the register.
//
// An access to an unrecognised offset is logged and returns all-ones.
func (s *SMC) Read(address uint32, size int) uint32 {
	idx := int(address >> 2)
	shift := (address & 3) * 8
	mask := widthMask(size)

	if !s.readable(idx) {
		logger.Logf("smc", "%s: read of unimplemented register %#04x", s.variant.Name, address)
		return mask
	}

	return (s.regs[idx] >> shift) & mask
}

// Write a register. The address is a byte offset from the controller base;
// size is an access width of 1 to 4 bytes. A sub-word access merges the
// written byte lanes with the current register value before the write is
// decoded.
//
// A write to an unrecognised offset is logged and dropped.
func (s *SMC) Write(address uint32, size int, data uint32) {
	v := s.variant
	idx := int(address >> 2)

	if idx < 0 || idx >= v.numRegs {
		logger.Logf("smc", "%s: write of unimplemented register %#04x", v.Name, address)
		return
	}

	// merge the addressed byte lanes into the current register value
	shift := (address & 3) * 8
	mask := widthMask(size)
	value := (s.regs[idx] &^ (mask << shift)) | ((data & mask) << shift)

	switch {
	case idx == v.regConf:
		s.regs[idx] = value

	case idx == v.regTimings:
		s.regs[idx] = value

	case v.regCECtrl != noRegister && idx == v.regCECtrl:
		s.regs[idx] = value

	case idx >= v.regCtrl0 && idx < v.regCtrl0+s.NumCS:
		s.regs[idx] = value
		s.Flashes[idx-v.regCtrl0].updateCS()

	case idx >= regSegAddr0 && idx < regSegAddr0+v.maxSlaves:
		// only forwarded to the segment manager when the value changes
		if value != s.regs[idx] {
			s.setSegment(idx-regSegAddr0, value)
		}

	case idx == regDummyData:
		s.regs[idx] = value & 0xff

	case idx == regIntrCtrl:
		s.regs[idx] = value

	case v.hasDMA && idx == regDMACtrl:
		s.writeDMAControl(value)

	case v.hasDMA && idx == regDMADRAMAddr:
		s.regs[idx] = s.sdramBase | (value & v.dmaDRAMMask)

	case v.hasDMA && idx == regDMAFlashAddr:
		s.regs[idx] = v.flashWindowBase | (value & v.dmaFlashMask)

	case v.hasDMA && idx == regDMALen:
		s.regs[idx] = value & dmaLengthMask

	default:
		logger.Logf("smc", "%s: write of unimplemented register %#04x", v.Name, address)
	}
}
