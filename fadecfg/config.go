// SPDX-License-Identifier: EPL-2.0

package fadecfg

// Config is the full set of transition settings.
type Config struct {
	Fades [EventCount]FadeConfig

	// MixSizeAuto derives the mixing buffer size from Fades, otherwise
	// MixSizeMs is used as is.
	MixSizeAuto bool
	MixSizeMs   int

	SongchangeTimeoutMs int

	GapLeadEnable  bool
	GapLeadLenMs   int
	GapTrailEnable bool
	GapTrailLenMs  int
	GapTrailLocked bool // trail length follows GapLeadLenMs
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		Fades: [EventCount]FadeConfig{
			EventXFade: {
				Type: AdvancedXF, SimpleLenMs: 3000,
				OutEnable: true, OutLenMs: 6000, OutVolume: 0,
				OfsType: OffsetLockOut, OfsTypeWanted: OffsetLockOut,
				InLocked: true, InEnable: true, InLenMs: 6000, InVolume: 0,
			},
			EventManual: {
				Type:          Flush,
				FlushInEnable: true, FlushInLenMs: 500, FlushInVolume: 0,
			},
			EventAlbum: {Type: None},
			EventStart: {Type: FadeIn, InLenMs: 1000, InVolume: 0},
			EventStop:  {Type: FadeOut, OutLenMs: 1000, OutVolume: 0},
			EventEOP:   {Type: FadeOut, OutLenMs: 3000, OutVolume: 0},
			EventSeek: {
				Type: Flush, FlushInEnable: true, FlushInLenMs: 250,
			},
			EventPause: {Type: PauseAdv, OutLenMs: 250, InLenMs: 250},
		},
		MixSizeAuto:         true,
		MixSizeMs:           2000,
		SongchangeTimeoutMs: 500,
		GapLeadLenMs:        500,
		GapTrailLenMs:       500,
		GapTrailLocked:      true,
	}
}

// Fade returns the record for e, or nil for an unknown event.
func (c *Config) Fade(e Event) *FadeConfig {
	if e < 0 || e >= EventCount {
		return nil
	}

	return &c.Fades[e]
}

// Resolve resolves the record configured for e.
func (c *Config) Resolve(e Event) Transition {
	return Resolve(c.Fade(e))
}

// GapTrailLength returns the trailing gap removal length in ms, 0 when
// disabled.
func (c *Config) GapTrailLength() int {
	if !c.GapTrailEnable {
		return 0
	}

	if c.GapTrailLocked {
		return c.GapLeadLenMs
	}

	return c.GapTrailLenMs
}

// MixSize returns the mixing buffer size in ms. In automatic mode it is large
// enough for the longest overlap of any event, plus the trailing gap and the
// songchange timeout.
func (c *Config) MixSize() int {
	if !c.MixSizeAuto {
		return c.MixSizeMs
	}

	size := 0

	for i := range c.Fades {
		fc := &c.Fades[i]

		need := FadeOutLength(fc)
		if fc.Type == PauseAdv {
			need += FadeInLength(fc)
		}

		need = max(need, -Offset(fc))
		size = max(size, need)
	}

	return size + c.GapTrailLength() + c.SongchangeTimeoutMs
}
