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
	"fmt"

	"github.com/RashmicaG/gopherbmc/logger"
)

// Segment is the area of the flash window currently mapped to a
// chip-select. Addr is absolute.
type Segment struct {
	Addr uint32
	Size uint32
}

func (seg Segment) String() string {
	return fmt.Sprintf("[ %#08x - %#08x ]", seg.Addr, seg.Addr+seg.Size)
}

// segmentEncoding is the closed set of strategies for packing a Segment into
// a segment register. each variant selects one at construction.
type segmentEncoding int

const (
	// absolute addresses in 8MiB units. start and end in separate byte
	// fields of the register. used by the first two hardware generations
	segmentAbsolute8MiB segmentEncoding = iota

	// offsets relative to the flash window base in 1MiB units, the end
	// field being an inclusive upper bound. used by the third generation
	segmentRelative1MiB
)

// toRegister packs a segment into a segment register value.
func (e segmentEncoding) toRegister(v *Variant, seg Segment) uint32 {
	switch e {
	case segmentAbsolute8MiB:
		var reg uint32
		reg |= ((seg.Addr >> 23) & 0xff) << 16
		reg |= (((seg.Addr + seg.Size) >> 23) & 0xff) << 24
		return reg

	case segmentRelative1MiB:
		// disabled segments have a nil register
		if seg.Size == 0 {
			return 0
		}

		const mask = 0x0ff00000
		var reg uint32
		reg |= ((seg.Addr - v.flashWindowBase) & mask) >> 16
		reg |= (seg.Addr - v.flashWindowBase + seg.Size - 1) & mask
		return reg
	}

	panic("unknown segment encoding")
}

// toSegment unpacks a segment register value into a segment. the inverse of
// toRegister up to the encoding's addressable unit.
func (e segmentEncoding) toSegment(v *Variant, reg uint32) Segment {
	switch e {
	case segmentAbsolute8MiB:
		var seg Segment
		seg.Addr = ((reg >> 16) & 0xff) << 23
		seg.Size = (((reg >> 24) & 0xff) << 23) - seg.Addr
		return seg

	case segmentRelative1MiB:
		// nil register means a disabled segment
		if reg == 0 {
			return Segment{Addr: v.flashWindowBase, Size: 0}
		}

		const mask = 0x0ff00000
		start := (reg << 16) & mask
		end := reg & mask
		return Segment{
			Addr: v.flashWindowBase + start,
			Size: end + mib - start,
		}
	}

	panic("unknown segment encoding")
}

// segmentOverlaps checks the candidate segment for cs against every other
// chip-select's current segment. overlap is logged but, like the real
// hardware, not prevented.
func (s *SMC) segmentOverlaps(cs int, seg Segment) bool {
	for i := 0; i < s.variant.maxSlaves; i++ {
		if i == cs {
			continue
		}

		other := s.variant.encoding.toSegment(s.variant, s.regs[regSegAddr0+i])
		if seg.Addr+seg.Size > other.Addr && seg.Addr < other.Addr+other.Size {
			logger.Logf("smc", "%s: new segment CS%d %v overlaps with CS%d %v",
				s.variant.Name, cs, seg, i, other)
			return true
		}
	}
	return false
}

// setSegment decodes a segment register write, applies the clamping rules,
// validates the result and repositions the chip-select's mapped region.
//
// The rules, in order: the start address of chip-select 0 is read-only; on
// some variants the end address of the last chip-select is read-only; a
// segment outside the flash window is rejected; a misaligned or overlapping
// segment is logged but applied anyway.
func (s *SMC) setSegment(cs int, value uint32) {
	v := s.variant
	seg := v.encoding.toSegment(v, value)

	// the start address of CS0 is read-only. the end address is kept where
	// the write put it
	if cs == 0 && seg.Addr != v.flashWindowBase {
		logger.Logf("smc", "%s: tried to change CS0 start address to %#08x",
			v.Name, seg.Addr)
		end := seg.Addr + seg.Size
		seg.Addr = v.flashWindowBase
		seg.Size = end - seg.Addr
		value = v.encoding.toRegister(v, seg)
	}

	// on some variants the end address of the last chip-select is also
	// read-only
	if v.fixedLastEnd && cs == v.maxSlaves-1 {
		end := v.segments[cs].Addr + v.segments[cs].Size
		if seg.Addr+seg.Size != end {
			logger.Logf("smc", "%s: tried to change CS%d end address to %#08x",
				v.Name, cs, seg.Addr+seg.Size)
			seg.Size = end - seg.Addr
			value = v.encoding.toRegister(v, seg)
		}
	}

	// keep the segment in the overall flash window
	if seg.Addr+seg.Size <= v.flashWindowBase ||
		seg.Addr > v.flashWindowBase+v.flashWindowSize {
		logger.Logf("smc", "%s: new segment for CS%d is invalid : %v",
			v.Name, cs, seg)
		return
	}

	// check start address vs. alignment
	if seg.Size != 0 && seg.Addr%seg.Size != 0 {
		logger.Logf("smc", "%s: new segment for CS%d is not aligned : %v",
			v.Name, cs, seg)
	}

	// the datasheet says segments should not overlap but the real hardware
	// does not stop a determined guest
	s.segmentOverlaps(cs, seg)

	// all should be fine now to move the region
	if s.Flashes[cs].region != nil {
		s.Flashes[cs].region.Reposition(seg.Addr-v.flashWindowBase, seg.Size)
	}

	s.regs[regSegAddr0+cs] = value
}

// Segment returns the current segment of the numbered chip-select.
func (s *SMC) Segment(cs int) Segment {
	return s.variant.encoding.toSegment(s.variant, s.regs[regSegAddr0+cs])
}
