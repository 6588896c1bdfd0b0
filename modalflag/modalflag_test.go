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

package modalflag_test

import (
	"os"
	"testing"

	"github.com/RashmicaG/gopherbmc/modalflag"
	"github.com/RashmicaG/gopherbmc/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "")
	test.Equate(t, md.Path(), "")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")

	p, err := md.Parse()
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.ExpectedSuccess(t, err)
	test.Equate(t, *testFlag, true)
	test.Equate(t, len(md.RemainingArgs()), 2)
	test.Equate(t, md.GetArg(0), "1")
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"monitor", "-variant", "fmc-gen2"})
	md.AddSubModes("monitor", "variants")

	p, err := md.Parse()
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "MONITOR")

	// the next layer of flags belongs to the monitor mode
	md.NewMode()
	variant := md.AddString("variant", "", "controller variant")

	p, err = md.Parse()
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.ExpectedSuccess(t, err)
	test.Equate(t, *variant, "fmc-gen2")
	test.Equate(t, md.Path(), "MONITOR")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})
	md.AddSubModes("monitor", "variants")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "MONITOR")
}
