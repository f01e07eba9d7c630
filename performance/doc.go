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

// Package performance contains helper functions relating to performance.
//
// Check() decodes a score repeatedly for a fixed duration and reports how
// much faster than real time the decoder and Paula emulation run. It will
// optionally generate profiling information.
//
// RunProfiler() can be used to generate the various profile types for any
// function. On its own it does not limit the amount of time the function
// runs for so it is useful for profiling complete conversions.
//
// CalcFPS() calculates the decoded frames per second in aggregate and
// compares it with the replay rate of the music.
package performance
