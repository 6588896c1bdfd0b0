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
	"encoding/binary"

	"github.com/RashmicaG/gopherbmc/curated"
	"github.com/sigurn/crc8"
)

// InvalidState is returned when a serialised controller state cannot be
// decoded.
const InvalidState = "smc: invalid state: %s"

// State is a copy of everything in the controller that changes between
// register accesses: the register file and the command snoop cursor. The
// segments and chip-select signals are derived from the register file and
// do not need saving separately.
type State struct {
	Regs         [numRegisters]uint32
	SnoopIndex   uint8
	SnoopDummies uint8
}

// Snapshot creates a copy of the controller's mutable state.
func (s *SMC) Snapshot() *State {
	return &State{
		Regs:         s.regs,
		SnoopIndex:   s.snoopIndex,
		SnoopDummies: s.snoopDummies,
	}
}

// Plumb a previously snapshotted state back into the controller. Derived
// state is rebuilt: segments reposition their regions and every chip-select
// signal is driven to match the restored control registers.
func (s *SMC) Plumb(state *State) {
	s.regs = state.Regs
	s.snoopIndex = state.SnoopIndex
	s.snoopDummies = state.SnoopDummies

	v := s.variant
	for cs := 0; cs < v.maxSlaves; cs++ {
		seg := s.Segment(cs)
		if s.Flashes[cs].region != nil {
			s.Flashes[cs].region.Reposition(seg.Addr-v.flashWindowBase, seg.Size)
		}
	}
	for cs := 0; cs < s.NumCS; cs++ {
		s.bus.Select(cs, !s.Flashes[cs].stopActive())
	}
}

// serialisation format: a version byte, a little-endian 32bit payload
// length, the payload and a trailing CRC8 of everything before it. version
// 1 payload is the register file followed by the two snoop bytes. readers
// accept any later version and ignore payload bytes they do not know,
// so a field can be appended without breaking old save files.
const (
	stateVersion     = 1
	statePayloadSize = numRegisters*4 + 2
)

var stateCRC = crc8.MakeTable(crc8.CRC8)

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (st *State) MarshalBinary() ([]byte, error) {
	b := make([]byte, 5+statePayloadSize, 5+statePayloadSize+1)

	b[0] = stateVersion
	binary.LittleEndian.PutUint32(b[1:], statePayloadSize)
	for i, r := range st.Regs {
		binary.LittleEndian.PutUint32(b[5+i*4:], r)
	}
	b[5+numRegisters*4] = st.SnoopIndex
	b[5+numRegisters*4+1] = st.SnoopDummies

	csum := crc8.Init(stateCRC)
	csum = crc8.Update(csum, b, stateCRC)
	b = append(b, crc8.Complete(csum, stateCRC))

	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (st *State) UnmarshalBinary(b []byte) error {
	if len(b) < 5+statePayloadSize+1 {
		return curated.Errorf(InvalidState, "too short")
	}

	if b[0] < stateVersion {
		return curated.Errorf(InvalidState, "unknown version")
	}

	length := binary.LittleEndian.Uint32(b[1:])
	if length < statePayloadSize || len(b) < 5+int(length)+1 {
		return curated.Errorf(InvalidState, "truncated payload")
	}

	csum := crc8.Init(stateCRC)
	csum = crc8.Update(csum, b[:5+length], stateCRC)
	if crc8.Complete(csum, stateCRC) != b[5+length] {
		return curated.Errorf(InvalidState, "bad checksum")
	}

	payload := b[5 : 5+length]
	for i := range st.Regs {
		st.Regs[i] = binary.LittleEndian.Uint32(payload[i*4:])
	}
	st.SnoopIndex = payload[numRegisters*4]
	st.SnoopDummies = payload[numRegisters*4+1]

	return nil
}
