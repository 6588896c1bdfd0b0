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

	"github.com/RashmicaG/gopherbmc/curated"
	"github.com/RashmicaG/gopherbmc/hardware/memory"
	"github.com/RashmicaG/gopherbmc/hardware/ssi/smc"
	"github.com/RashmicaG/gopherbmc/hardware/ssi/spiflash"
	"github.com/RashmicaG/gopherbmc/test"
)

// traceDevice records every byte clocked to it and replies with a scripted
// sequence. good enough to check the shape of a framed transaction.
type traceDevice struct {
	rx    []uint8
	reply []uint8
	cs    bool
}

func (d *traceDevice) Transfer(v uint8) uint8 {
	d.rx = append(d.rx, v)
	if len(d.reply) > 0 {
		r := d.reply[0]
		d.reply = d.reply[1:]
		return r
	}
	return 0
}

func (d *traceDevice) SetCS(assert bool) {
	d.cs = assert
}

// regionRecorder notes where a chip-select's mapped region has been moved
// to.
type regionRecorder struct {
	addr  uint32
	size  uint32
	count int
}

func (r *regionRecorder) Reposition(address uint32, size uint32) {
	r.addr = address
	r.size = size
	r.count++
}

// newController is a convenience for the tests in this package. DRAM is
// mapped at 0x80000000 whether the variant has a DMA engine or not.
func newController(t *testing.T, variant string, numCS int) (*smc.SMC, *memory.RAM) {
	t.Helper()

	dram := memory.NewRAM(0x80000000, 0x10000)
	s, err := smc.NewSMC(variant, numCS, nil, dram, 0x80000000, nil)
	if err != nil {
		t.Fatalf("NewSMC(%s): %v", variant, err)
	}

	return s, dram
}

func TestNewSMC(t *testing.T) {
	// unknown variants are rejected
	_, err := smc.NewSMC("fmc-gen9", 1, nil, nil, 0, nil)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, smc.UnknownVariant))

	// a variant with a DMA engine needs a DRAM address space
	_, err = smc.NewSMC("fmc-gen2", 1, nil, nil, 0, nil)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, smc.MissingDRAM))

	// one without does not
	s, err := smc.NewSMC("smc-gen1", 1, nil, nil, 0, nil)
	test.ExpectedSuccess(t, err)
	test.Equate(t, s.Variant().HasDMA(), false)

	// chip-select count is clamped to the variant's maximum
	s, _ = newController(t, "fmc-gen1", 10)
	test.Equate(t, s.NumCS, 5)
	test.Equate(t, len(s.Flashes), 5)
}

func TestVariantTable(t *testing.T) {
	// every named variant constructs
	for _, n := range smc.VariantNames() {
		s, _ := newController(t, n, 1)
		test.Equate(t, s.Variant().String(), n)
	}
}

func TestReset(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 3)

	// conf flash-type fields are strapped to SPI for the first two
	// chip-selects on this generation
	test.Equate(t, s.Read(0x00, 4), 0x0a)

	// all chip-selects idle at the stop-active state
	test.Equate(t, s.Read(0x10, 4), 0x04)
	test.Equate(t, s.Read(0x14, 4), 0x04)
	test.Equate(t, s.Read(0x18, 4), 0x04)

	// default segments
	test.Equate(t, s.Segment(0).String(), "[ 0x20000000 - 0x28000000 ]")
	test.Equate(t, s.Segment(1).String(), "[ 0x28000000 - 0x2a000000 ]")
	test.Equate(t, s.Segment(2).String(), "[ 0x2a000000 - 0x2c000000 ]")

	// reset returns a reconfigured controller to the same state
	s.Write(0x00, 4, 0x12345678)
	s.Write(0x10, 4, 0x03)
	s.Reset()
	test.Equate(t, s.Read(0x00, 4), 0x0a)
	test.Equate(t, s.Read(0x10, 4), 0x04)
}

func TestRegisterAccess(t *testing.T) {
	s, _ := newController(t, "fmc-gen2", 1)

	// word write, word read
	s.Write(0x08, 4, 0x11223344)
	test.Equate(t, s.Read(0x08, 4), 0x11223344)

	// sub-word reads return the addressed byte lanes
	test.Equate(t, s.Read(0x09, 1), 0x33)
	test.Equate(t, s.Read(0x0a, 2), 0x1122)

	// sub-word writes merge with the current value
	s.Write(0x09, 1, 0xff)
	test.Equate(t, s.Read(0x08, 4), 0x1122ff44)

	// the dummy-data register only keeps its low byte
	s.Write(0x54, 4, 0x1234)
	test.Equate(t, s.Read(0x54, 4), 0x34)

	// an unrecognised offset reads as all-ones at the access width and
	// drops writes
	test.Equate(t, s.Read(0x7c, 4), 0xffffffff)
	test.Equate(t, s.Read(0x7c, 1), 0xff)
	s.Write(0x7c, 4, 0xdeadbeef)
	test.Equate(t, s.Read(0x7c, 4), 0xffffffff)
}

func TestDispatchNeverFaults(t *testing.T) {
	// the controller assumes single-threaded, run-to-completion dispatch
	// and promises that no guest input leaves it in a state where further
	// accesses fault. hammer every register with ugly values, interleaved
	// with window and DMA activity, and check the controller still works
	s, _ := newController(t, "fmc-gen2", 3)
	s.Bus().Attach(0, spiflash.New(make([]byte, 0x100)))

	for pass := 0; pass < 3; pass++ {
		for offset := uint32(0); offset < 0x100; offset++ {
			s.Write(offset, 1+int(offset%4), 0xffffffff)
			s.Read(offset, 1+int(offset%4))
			s.WindowRead(0x20000000+offset, 4)
			s.WindowWrite(0x20000000+offset, 4, offset)
		}
		s.Write(0x80, 4, 0x05)
		s.Write(0x80, 4, 0x00)
	}

	s.Reset()
	test.Equate(t, s.Read(0x00, 4), 0x0a)
	test.Equate(t, s.Segment(0).String(), "[ 0x20000000 - 0x28000000 ]")
}

func TestRegisterAccessNarrowVariant(t *testing.T) {
	// the first generation SMC flavour only decodes the bottom of the
	// register file. the DMA registers do not exist
	s, _ := newController(t, "smc-gen1", 1)

	test.Equate(t, s.Read(0x80, 4), 0xffffffff)
	s.Write(0x80, 4, 0x01)
	test.Equate(t, s.Read(0x80, 4), 0xffffffff)
}
