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

//go:build !headless

package playback

import (
	"context"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/lightspeed/curated"
)

// Available returns true if audio playback is possible.
func Available() bool {
	return true
}

// Play the audio through the host audio device. The audio must be 16bit
// little endian stereo PCM at the given sample rate. Play blocks until the
// audio has finished or the context is cancelled.
func Play(ctx context.Context, audio io.Reader, rate int) error {
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return curated.Errorf("playback: %v", err)
	}
	<-ready

	player := otoCtx.NewPlayer(audio)
	defer player.Close()
	player.Play()

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}

	if err := player.Err(); err != nil {
		return curated.Errorf("playback: %v", err)
	}

	return nil
}
