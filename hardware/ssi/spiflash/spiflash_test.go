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

package spiflash_test

import (
	"testing"

	"github.com/RashmicaG/gopherbmc/hardware/ssi/spiflash"
	"github.com/RashmicaG/gopherbmc/test"
)

func TestRead(t *testing.T) {
	data := make([]byte, 0x100)
	for i := range data {
		data[i] = uint8(i)
	}
	f := spiflash.New(data)

	// device is inert without chip-select
	test.Equate(t, f.Transfer(0x03), 0)

	// plain read of three bytes from address 0x000010
	f.SetCS(true)
	f.Transfer(0x03)
	f.Transfer(0x00)
	f.Transfer(0x00)
	f.Transfer(0x10)
	test.Equate(t, f.Transfer(0), 0x10)
	test.Equate(t, f.Transfer(0), 0x11)
	test.Equate(t, f.Transfer(0), 0x12)
	f.SetCS(false)

	// fast read inserts one dummy byte before data
	f.SetCS(true)
	f.Transfer(0x0b)
	f.Transfer(0x00)
	f.Transfer(0x00)
	f.Transfer(0x20)
	test.Equate(t, f.Transfer(0xff), 0) // dummy
	test.Equate(t, f.Transfer(0), 0x20)
	f.SetCS(false)

	// 4byte read
	f.SetCS(true)
	f.Transfer(0x13)
	f.Transfer(0x00)
	f.Transfer(0x00)
	f.Transfer(0x00)
	f.Transfer(0x30)
	test.Equate(t, f.Transfer(0), 0x30)
	f.SetCS(false)
}

func TestPageProgram(t *testing.T) {
	data := make([]byte, 0x100)
	f := spiflash.New(data)

	f.SetCS(true)
	f.Transfer(0x02)
	f.Transfer(0x00)
	f.Transfer(0x00)
	f.Transfer(0x40)
	f.Transfer(0xaa)
	f.Transfer(0xbb)
	f.SetCS(false)

	test.Equate(t, data[0x40], 0xaa)
	test.Equate(t, data[0x41], 0xbb)

	// protocol state resets on chip-select deassertion. the next byte after
	// reassertion is an opcode, not more program data
	f.SetCS(true)
	f.Transfer(0x03)
	f.Transfer(0x00)
	f.Transfer(0x00)
	f.Transfer(0x40)
	test.Equate(t, f.Transfer(0), 0xaa)
	f.SetCS(false)
}
