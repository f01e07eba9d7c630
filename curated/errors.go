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

package curated

import (
	"errors"
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error.
//
// Note that unlike the Errorf() function in the fmt package the first argument
// is named "pattern" not "format". The pattern is what the Is() and Has()
// functions match against.
func Errorf(pattern string, values ...any) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the message with duplicate adjacent parts of the chain
// removed. Letter-case and white space are not affected.
func (er curated) Error() string {
	parts := strings.Split(fmt.Sprintf(er.pattern, er.values...), ": ")

	chain := parts[:1]
	for _, p := range parts[1:] {
		if p != chain[len(chain)-1] {
			chain = append(chain, p)
		}
	}

	return strings.Join(chain, ": ")
}

// Unwrap returns every error in the placeholder values. The errors package in
// the standard library uses this to walk a chain of curated errors.
func (er curated) Unwrap() []error {
	var chain []error
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			chain = append(chain, e)
		}
	}
	return chain
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	_, ok := err.(curated)
	return ok
}

// Is checks if error is a curated error with a specific pattern.
func Is(err error, pattern string) bool {
	er, ok := err.(curated)
	return ok && er.pattern == pattern
}

// Has checks if error is a curated error with a specific pattern somewhere in
// the chain. The chain can include errors wrapped by fmt.Errorf() with the %w
// verb.
func Has(err error, pattern string) bool {
	var er curated
	if !errors.As(err, &er) {
		return false
	}

	if er.pattern == pattern {
		return true
	}

	for _, e := range er.Unwrap() {
		if Has(e, pattern) {
			return true
		}
	}

	return false
}
