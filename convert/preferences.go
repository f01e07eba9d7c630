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

package convert

import (
	"github.com/jetsetilly/lightspeed/paths"
	"github.com/jetsetilly/lightspeed/prefs"
)

// Preferences are the default conversion options. They are stored in the
// preferences file and used as the defaults for the command line flags.
type Preferences struct {
	dsk *prefs.Disk

	Verbose      prefs.Bool
	Shrink       prefs.Bool
	KeepLayout   prefs.Bool
	NoSetTempo   prefs.Bool
	AmigaPreview prefs.Bool
	Pack         prefs.Bool

	// number of concurrent conversions in a batch. zero means the number of
	// CPUs
	Jobs prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The preferences are loaded from the default preferences
// file, which is created if it does not exist.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.CreateResourcePath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for k, v := range map[string]*prefs.Bool{
		"convert.verbose":      &p.Verbose,
		"convert.shrink":       &p.Shrink,
		"convert.keepLayout":   &p.KeepLayout,
		"convert.noSetTempo":   &p.NoSetTempo,
		"convert.amigaPreview": &p.AmigaPreview,
		"convert.pack":         &p.Pack,
	} {
		if err := p.dsk.Add(k, v); err != nil {
			return nil, err
		}
	}
	if err := p.dsk.Add("batch.jobs", &p.Jobs); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Params returns conversion parameters with the preferred options set.
func (p *Preferences) Params(filename string) Params {
	return Params{
		Filename:     filename,
		Verbose:      p.Verbose.Value(),
		Shrink:       p.Shrink.Value(),
		KeepLayout:   p.KeepLayout.Value(),
		NoSetTempo:   p.NoSetTempo.Value(),
		AmigaPreview: p.AmigaPreview.Value(),
		Pack:         p.Pack.Value(),
	}
}
