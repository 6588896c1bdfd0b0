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

import "github.com/RashmicaG/gopherbmc/curated"

// UnknownVariant is returned by NewSMC when the named variant is not in the
// variant table.
const UnknownVariant = "smc: unknown variant: %s"

const mib = 1024 * 1024

// Variant describes one hardware generation of the flash controller. A
// Variant is immutable; all per-generation behaviour is data in this
// structure, selected once at construction and never swapped.
type Variant struct {
	Name string

	// register word indices that move between generations. a value of
	// noRegister means the generation does not have the register
	regConf    int
	regCECtrl  int
	regCtrl0   int
	regTimings int

	// bit position of the chip-select 0 write-enable bit in the conf
	// register
	confEnableW0 int

	// maximum number of chip-selects and the default segment for each
	maxSlaves int
	segments  []Segment

	// the memory window the chip-select segments are mapped into
	flashWindowBase uint32
	flashWindowSize uint32

	// bulk DMA engine capability and cursor address masks
	hasDMA       bool
	dmaFlashMask uint32
	dmaDRAMMask  uint32

	// how much of the register file the generation decodes
	numRegs int

	// how segment registers are encoded
	encoding segmentEncoding

	// the SPI flavoured generation keeps its 4byte addressing bit in the
	// control register rather than in a CE control register
	spi4Byte bool

	// the last chip-select's segment end address is read-only
	fixedLastEnd bool

	// number of chip-selects whose conf flash-type field is hardware
	// strapped to SPI at reset
	strapSPIType int
}

// String implements the Stringer interface.
func (v *Variant) String() string {
	return v.Name
}

// HasDMA returns true if the variant carries the bulk DMA engine.
func (v *Variant) HasDMA() bool {
	return v.hasDMA
}

// FlashWindow returns the base address and size of the variant's flash
// mapping window.
func (v *Variant) FlashWindow() (base uint32, size uint32) {
	return v.flashWindowBase, v.flashWindowSize
}

// variants is the static table of supported hardware generations. the table
// is read-only; NewSMC looks entries up by name.
var variants = []Variant{
	{
		Name:            "smc-gen1",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       1,
		segments:        []Segment{{0x10000000, 32 * mib}},
		flashWindowBase: 0x10000000,
		flashWindowSize: 0x6000000,
		numRegs:         0x20 / 4,
		encoding:        segmentAbsolute8MiB,
	}, {
		Name:            "fmc-gen1",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       5,
		segments: []Segment{
			{0x20000000, 64 * mib}, // start address is read-only
			{0x24000000, 32 * mib},
			{0x26000000, 32 * mib},
			{0x28000000, 32 * mib},
			{0x2a000000, 32 * mib},
		},
		flashWindowBase: 0x20000000,
		flashWindowSize: 0x10000000,
		hasDMA:          true,
		dmaFlashMask:    0x0ffffffc,
		dmaDRAMMask:     0x1ffffffc,
		numRegs:         numRegisters,
		encoding:        segmentAbsolute8MiB,
		strapSPIType:    1,
	}, {
		Name:            "spi1-gen1",
		regConf:         regSPIConf,
		regCECtrl:       noRegister,
		regCtrl0:        regSPICtrl0,
		regTimings:      regSPITimings,
		confEnableW0:    0,
		maxSlaves:       1,
		segments:        []Segment{{0x30000000, 64 * mib}},
		flashWindowBase: 0x30000000,
		flashWindowSize: 0x10000000,
		numRegs:         0x20 / 4,
		encoding:        segmentAbsolute8MiB,
		spi4Byte:        true,
	}, {
		Name:            "fmc-gen2",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       3,
		segments: []Segment{
			{0x20000000, 128 * mib}, // start address is read-only
			{0x28000000, 32 * mib},
			{0x2a000000, 32 * mib},
		},
		flashWindowBase: 0x20000000,
		flashWindowSize: 0x10000000,
		hasDMA:          true,
		dmaFlashMask:    0x0ffffffc,
		dmaDRAMMask:     0x3ffffffc,
		numRegs:         numRegisters,
		encoding:        segmentAbsolute8MiB,
		strapSPIType:    2,
	}, {
		Name:            "spi1-gen2",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       2,
		segments: []Segment{
			{0x30000000, 32 * mib}, // start address is read-only
			{0x32000000, 96 * mib}, // end address is read-only
		},
		flashWindowBase: 0x30000000,
		flashWindowSize: 0x8000000,
		numRegs:         numRegisters,
		encoding:        segmentAbsolute8MiB,
		fixedLastEnd:    true,
	}, {
		Name:            "spi2-gen2",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       2,
		segments: []Segment{
			{0x38000000, 32 * mib}, // start address is read-only
			{0x3a000000, 96 * mib}, // end address is read-only
		},
		flashWindowBase: 0x38000000,
		flashWindowSize: 0x8000000,
		numRegs:         numRegisters,
		encoding:        segmentAbsolute8MiB,
		fixedLastEnd:    true,
	}, {
		Name:            "fmc-gen3",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       3,
		segments: []Segment{
			{0x20000000, 128 * mib}, // start address is read-only
			{0, 0},                  // disabled
			{0, 0},                  // disabled
		},
		flashWindowBase: 0x20000000,
		flashWindowSize: 0x10000000,
		hasDMA:          true,
		dmaFlashMask:    0x0ffffffc,
		dmaDRAMMask:     0x3ffffffc,
		numRegs:         numRegisters,
		encoding:        segmentRelative1MiB,
		strapSPIType:    3,
	}, {
		Name:            "spi1-gen3",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       2,
		segments: []Segment{
			{0x30000000, 128 * mib}, // start address is read-only
			{0, 0},                  // disabled
		},
		flashWindowBase: 0x30000000,
		flashWindowSize: 0x10000000,
		numRegs:         numRegisters,
		encoding:        segmentRelative1MiB,
	}, {
		Name:            "spi2-gen3",
		regConf:         regConf,
		regCECtrl:       regCECtrl,
		regCtrl0:        regCtrl0,
		regTimings:      regTimings,
		confEnableW0:    16,
		maxSlaves:       3,
		segments: []Segment{
			{0x50000000, 128 * mib}, // start address is read-only
			{0, 0},                  // disabled
			{0, 0},                  // disabled
		},
		flashWindowBase: 0x50000000,
		flashWindowSize: 0x10000000,
		numRegs:         numRegisters,
		encoding:        segmentRelative1MiB,
	},
}

// VariantNames returns the names of every variant in the variant table.
func VariantNames() []string {
	n := make([]string, 0, len(variants))
	for i := range variants {
		n = append(n, variants[i].Name)
	}
	return n
}

func lookupVariant(name string) (*Variant, error) {
	for i := range variants {
		if variants[i].Name == name {
			return &variants[i], nil
		}
	}
	return nil, curated.Errorf(UnknownVariant, name)
}
