// SPDX-License-Identifier: EPL-2.0

package crossfade

import (
	"time"

	"github.com/ik5/audxfade/fadecfg"
)

// Config controls the overlap between tracks.
type Config struct {
	// Length of the overlap window.
	Length time.Duration
	// FadeInStart is the volume the incoming track starts at, 0..1.
	FadeInStart float32
	// FadeOutEnd is the volume the outgoing tail fades to, 0..1.
	FadeOutEnd float32
}

// DefaultConfig overlaps tracks by five seconds with full 0 to 1 ramps.
func DefaultConfig() Config {
	return Config{Length: 5 * time.Second}
}

// FromTransition maps a resolved fade record onto the engine. A negative
// offset is the overlap of the two tracks and becomes the window; otherwise
// the window is the fade-out length, or the fade-in length when there is no
// fade-out.
func FromTransition(tr fadecfg.Transition) Config {
	ms := -tr.Offset
	if ms <= 0 {
		ms = tr.FadeOut
	}
	if ms <= 0 {
		ms = tr.FadeIn
	}

	return Config{
		Length:      time.Duration(max(ms, 0)) * time.Millisecond,
		FadeInStart: float32(tr.FadeInVolume) / 100,
		FadeOutEnd:  float32(tr.FadeOutVolume) / 100,
	}
}

// window returns the overlap size in samples for the given format.
func (c Config) window(channels, rate int) int {
	if c.Length <= 0 {
		return 0
	}

	frames := int64(c.Length) * int64(rate) / int64(time.Second)

	return int(frames) * channels
}
