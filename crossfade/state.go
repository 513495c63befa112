// SPDX-License-Identifier: EPL-2.0

package crossfade

import "fmt"

// State is the engine lifecycle state.
type State int

const (
	Off       State = iota
	Prebuffer       // mixing the new track into the carried tail
	Running         // appending and releasing audio
	Between         // faded tail kept, waiting for the next track
	Stopping        // handing out the tail at the end of playback
)

var stateNames = [...]string{
	Off:       "off",
	Prebuffer: "prebuffer",
	Running:   "running",
	Between:   "between",
	Stopping:  "stopping",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Format is a channel count and sample rate pair.
type Format struct {
	Channels int
	Rate     int
}

func (f Format) String() string {
	return fmt.Sprintf("%d ch @ %d Hz", f.Channels, f.Rate)
}
