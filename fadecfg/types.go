// SPDX-License-Identifier: EPL-2.0

package fadecfg

import "fmt"

// FadeType selects how a transition is performed. The numeric values are
// persisted and must not change.
type FadeType int

const (
	Reopen     FadeType = iota // close and reopen the output
	Flush                      // drop buffered audio, optional pause and fade-in
	None                       // gapless, no fading
	Pause                      // silence between tracks
	SimpleXF                   // symmetric crossfade
	AdvancedXF                 // independent fade-out and fade-in legs
	FadeIn
	FadeOut
	PauseNone // pause/unpause without fading
	PauseAdv  // pause with fade-out, unpause with fade-in
)

var fadeTypeNames = [...]string{
	Reopen:     "reopen",
	Flush:      "flush",
	None:       "none",
	Pause:      "pause",
	SimpleXF:   "simple-crossfade",
	AdvancedXF: "advanced-crossfade",
	FadeIn:     "fade-in",
	FadeOut:    "fade-out",
	PauseNone:  "pause-none",
	PauseAdv:   "pause-advanced",
}

func (t FadeType) String() string {
	if t < 0 || int(t) >= len(fadeTypeNames) {
		return fmt.Sprintf("FadeType(%d)", int(t))
	}

	return fadeTypeNames[t]
}

// OffsetType selects where an advanced crossfade takes its offset from.
type OffsetType int

const (
	OffsetNone    OffsetType = iota
	OffsetLockOut            // minus the fade-out length
	OffsetLockIn             // minus the fade-in length
	OffsetCustom             // OfsCustomMs
)

// Event is a kind of transition. Each event has its own FadeConfig.
type Event int

const (
	EventXFade  Event = iota // automatic songchange
	EventManual              // user skipped
	EventAlbum               // songchange across albums
	EventStart               // playback started
	EventStop                // playback stopped
	EventEOP                 // end of playlist
	EventSeek
	EventPause

	EventCount
)

var eventKeys = [EventCount]string{
	EventXFade:  "fc_xfade",
	EventManual: "fc_manual",
	EventAlbum:  "fc_album",
	EventStart:  "fc_start",
	EventStop:   "fc_stop",
	EventEOP:    "fc_eop",
	EventSeek:   "fc_seek",
	EventPause:  "fc_pause",
}

// Key returns the persisted configuration key of the event.
func (e Event) Key() string {
	if e < 0 || e >= EventCount {
		return ""
	}

	return eventKeys[e]
}

func (e Event) String() string {
	if k := e.Key(); k != "" {
		return k
	}

	return fmt.Sprintf("Event(%d)", int(e))
}

// ParseEvent maps a persisted key such as "fc_xfade" back to its Event.
func ParseEvent(key string) (Event, error) {
	for e, k := range eventKeys {
		if k == key {
			return Event(e), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, key)
}

// Events returns every event in persisted order.
func Events() []Event {
	out := make([]Event, EventCount)
	for i := range out {
		out[i] = Event(i)
	}

	return out
}
