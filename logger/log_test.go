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

package logger_test

import (
	"strings"
	"testing"

	"github.com/RashmicaG/gopherbmc/logger"
	"github.com/RashmicaG/gopherbmc/test"
)

func TestCentralLog(t *testing.T) {
	logger.Clear()

	logger.Log("test", "this is a test")
	logger.Logf("test", "formatted %d", 10)

	s := &strings.Builder{}
	logger.Write(s)
	test.Equate(t, s.String(), "test: this is a test\ntest: formatted 10\n")

	// repeated entries fold into one
	logger.Log("test", "this is a test")
	logger.Log("test", "this is a test")

	s.Reset()
	logger.Tail(s, 1)
	test.Equate(t, s.String(), "test: this is a test (repeat x2)\n")

	logger.Clear()
	s.Reset()
	logger.Write(s)
	test.Equate(t, s.String(), "")
}
