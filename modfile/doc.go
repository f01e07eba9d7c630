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

// Package modfile reads ProTracker MOD files. Only the 31 sample format with
// four channels is supported because that is all the Paula chip can play.
//
// The Module type gives access to the sample information, the order list and
// the pattern data. The sample data region of the file is kept as is so that
// it can be written unchanged to a sound bank.
//
// The Builder type creates MOD files in memory. It is intended for tests that
// need a module with known content.
package modfile
