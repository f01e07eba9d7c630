// This file is part of Lightspeed.
//
// Lightspeed is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lightspeed is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lightspeed.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Every package in Lightspeed that can fail in a way the
// caller might want to distinguish exports its patterns as constants. For
// example:
//
//	const TooManyInstruments = "encoder: more than %d instruments (too many 9xx commands)"
//
//	err := curated.Errorf(TooManyInstruments, 2600)
//
//	if curated.Is(err, encoder.TooManyInstruments) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("convert: %v", err)
//
//	if curated.Has(f, encoder.TooManyInstruments) {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). Put another way, it returns true if the error is
// 'expected' and false if it is 'unexpected'.
//
// The Error() function implementation ensures that the error chain does not
// contain duplicate adjacent parts, so that wrapping an error with the same
// prefix twice does not result in "encoder: encoder: ..." messages.
//
// For the purposes of this package we think of chains as being composed of
// parts separted by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
package curated
