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

package curated_test

import (
	"testing"

	"github.com/RashmicaG/gopherbmc/curated"
	"github.com/RashmicaG/gopherbmc/test"
)

const testPattern = "test: %v"

func TestPatternMatching(t *testing.T) {
	e := curated.Errorf(testPattern, "flood")
	test.Equate(t, e.Error(), "test: flood")
	test.Equate(t, curated.IsAny(e), true)
	test.Equate(t, curated.Is(e, testPattern), true)
	test.Equate(t, curated.Is(e, "some other pattern"), false)

	// wrapped errors are found by Has() but not by Is()
	w := curated.Errorf("outer: %v", e)
	test.Equate(t, curated.Is(w, testPattern), false)
	test.Equate(t, curated.Has(w, testPattern), true)
	test.Equate(t, curated.Has(w, "outer: %v"), true)

	// non-curated errors never match
	test.Equate(t, curated.IsAny(nil), false)
	test.Equate(t, curated.Is(nil, testPattern), false)
}

func TestDeduplication(t *testing.T) {
	// duplicate adjacent message parts are removed
	e := curated.Errorf("test: %v", curated.Errorf("test: %v", "deep"))
	test.Equate(t, e.Error(), "test: deep")
}
