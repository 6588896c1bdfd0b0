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

// Package ssi emulates the synchronous serial (SPI) bus that connects the
// flash controller to its flash devices. The bus is byte oriented: every
// transfer clocks one byte out to the selected device and one byte back.
//
// Devices are attached to numbered slots. The slot number corresponds to the
// chip-select line the controller uses to address the device. An empty
// selected slot behaves like an absent chip: it returns zero bytes.
package ssi

// Device is any peripheral that can be attached to the SSI bus.
type Device interface {
	// Transfer clocks one byte to the device and returns the byte clocked
	// back. A device should only react to Transfer while its chip-select is
	// asserted.
	Transfer(v uint8) uint8

	// SetCS asserts or deasserts the device's chip-select line. Devices
	// reset their protocol state on deassertion.
	SetCS(assert bool)
}

// Bus connects a controller to its devices. One device per chip-select slot.
type Bus struct {
	devices  []Device
	selected []bool
}

// NewBus is the preferred method of initialisation for the Bus type. The
// slots argument is the number of chip-select slots on the bus.
func NewBus(slots int) *Bus {
	return &Bus{
		devices:  make([]Device, slots),
		selected: make([]bool, slots),
	}
}

// Slots returns the number of chip-select slots on the bus.
func (b *Bus) Slots() int {
	return len(b.devices)
}

// Attach a device to the numbered slot. Attaching nil detaches any device in
// the slot.
func (b *Bus) Attach(slot int, dev Device) {
	b.devices[slot] = dev
}

// Select asserts or deasserts the chip-select line of the numbered slot.
func (b *Bus) Select(slot int, assert bool) {
	if slot >= len(b.devices) {
		return
	}
	b.selected[slot] = assert
	if b.devices[slot] != nil {
		b.devices[slot].SetCS(assert)
	}
}

// Transfer clocks one byte across the bus. Every selected device sees the
// byte; the returned byte is the OR of all replies, mirroring the behaviour
// of a shared data line.
func (b *Bus) Transfer(v uint8) uint8 {
	var r uint8
	for i := range b.devices {
		if b.selected[i] && b.devices[i] != nil {
			r |= b.devices[i].Transfer(v)
		}
	}
	return r
}
