// SPDX-License-Identifier: EPL-2.0

package fadecfg

// FadeConfig is one persisted fade record. Field order matches the tuple
// layout. Lengths are milliseconds, volumes percent.
type FadeConfig struct {
	Type FadeType

	PauseLenMs  int
	SimpleLenMs int

	OutEnable bool
	OutLenMs  int
	OutVolume int

	OfsType       OffsetType
	OfsTypeWanted OffsetType
	OfsCustomMs   int

	InLocked bool
	InEnable bool
	InLenMs  int
	InVolume int

	FlushPauseEnable bool
	FlushPauseLenMs  int
	FlushInEnable    bool
	FlushInLenMs     int
	FlushInVolume    int
}

// Transition is a FadeConfig resolved into what the mixer has to do.
type Transition struct {
	FadeOut       int // ms
	FadeOutVolume int // volume reached at the end of the fade-out, 0..100
	FadeIn        int // ms
	FadeInVolume  int // volume at the start of the fade-in, 0..100
	Offset        int // ms, negative overlaps the next track with the current one
}

// Resolve computes every leg of fc. A nil record resolves to an immediate
// transition.
func Resolve(fc *FadeConfig) Transition {
	return Transition{
		FadeOut:       FadeOutLength(fc),
		FadeOutVolume: FadeOutVolume(fc),
		FadeIn:        FadeInLength(fc),
		FadeInVolume:  FadeInVolume(fc),
		Offset:        Offset(fc),
	}
}

func clampVolume(v int) int {
	return min(max(v, 0), 100)
}

// FadeOutLength returns the length of the fade-out leg.
func FadeOutLength(fc *FadeConfig) int {
	if fc == nil {
		return 0
	}

	switch fc.Type {
	case SimpleXF:
		return fc.SimpleLenMs
	case AdvancedXF:
		if fc.OutEnable {
			return fc.OutLenMs
		}
		return 0
	case FadeOut, PauseAdv:
		return fc.OutLenMs
	}

	return 0
}

// FadeOutVolume returns the volume the fade-out ends at.
func FadeOutVolume(fc *FadeConfig) int {
	if fc == nil {
		return 0
	}

	switch fc.Type {
	case AdvancedXF, FadeOut, PauseAdv:
		return clampVolume(fc.OutVolume)
	}

	return 0
}

// Offset returns the signed gap between the end of the current track and the
// start of the next one.
func Offset(fc *FadeConfig) int {
	if fc == nil {
		return 0
	}

	switch fc.Type {
	case Flush:
		if fc.FlushPauseEnable {
			return fc.FlushPauseLenMs
		}
		return 0
	case Pause:
		return fc.PauseLenMs
	case SimpleXF:
		return -fc.SimpleLenMs
	case AdvancedXF:
		switch fc.OfsType {
		case OffsetLockOut:
			if fc.OutEnable {
				return -fc.OutLenMs
			}
			return 0
		case OffsetLockIn:
			return -FadeInLength(fc)
		case OffsetCustom:
			return fc.OfsCustomMs
		}
		return 0
	case FadeOut, PauseAdv:
		return fc.OfsCustomMs
	}

	return 0
}

// FadeInLength returns the length of the fade-in leg. A locked fade-in
// mirrors the fade-out leg.
func FadeInLength(fc *FadeConfig) int {
	if fc == nil {
		return 0
	}

	switch fc.Type {
	case Flush:
		if fc.FlushInEnable {
			return fc.FlushInLenMs
		}
		return 0
	case SimpleXF:
		return fc.SimpleLenMs
	case AdvancedXF:
		if fc.InLocked {
			if fc.OutEnable {
				return fc.OutLenMs
			}
			return 0
		}
		if fc.InEnable {
			return fc.InLenMs
		}
		return 0
	case FadeIn, PauseAdv:
		return fc.InLenMs
	}

	return 0
}

// FadeInVolume returns the volume the fade-in starts at.
func FadeInVolume(fc *FadeConfig) int {
	if fc == nil {
		return 0
	}

	switch fc.Type {
	case Flush:
		return clampVolume(fc.FlushInVolume)
	case AdvancedXF:
		if fc.InLocked {
			return clampVolume(fc.OutVolume)
		}
		return clampVolume(fc.InVolume)
	case FadeIn, PauseAdv:
		return clampVolume(fc.InVolume)
	}

	return 0
}
