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

// Package curated is the error mechanism used throughout GopherBMC. A curated
// error is created with the Errorf() function and remembers the pattern it
// was created with. Other packages declare their error patterns as string
// constants and callers test for them with the Is() and Has() functions.
//
// For example, the memory package declares the AccessError pattern. Code that
// wants to react to a failed address space access, rather than simply passing
// the error up the chain, can check for it specifically:
//
//	if curated.Is(err, memory.AccessError) {
//		...
//	}
//
// Errors that do not need to be identified later can be created with patterns
// written in place, as with fmt.Errorf.
package curated
