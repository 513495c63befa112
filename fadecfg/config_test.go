// SPDX-License-Identifier: EPL-2.0

package fadecfg

import (
	"errors"
	"testing"
)

func TestDefault_XFade(t *testing.T) {
	t.Parallel()

	cfg := Default()
	tr := cfg.Resolve(EventXFade)

	want := Transition{FadeOut: 6000, FadeIn: 6000, Offset: -6000}
	if tr != want {
		t.Errorf("Resolve(EventXFade) = %+v, want %+v", tr, want)
	}

	if got := cfg.Fades[EventXFade].Tuple(); got != "5,0,3000,1,6000,0,1,1,0,1,1,6000,0,0,0,0,0,0" {
		t.Errorf("default fc_xfade tuple = %q", got)
	}
}

func TestConfig_MixSize(t *testing.T) {
	t.Parallel()

	cfg := Default()

	// longest overlap is the 6 s crossfade, plus the songchange timeout
	if got := cfg.MixSize(); got != 6500 {
		t.Errorf("MixSize() = %d, want 6500", got)
	}

	cfg.GapTrailEnable = true
	cfg.GapLeadLenMs = 300
	cfg.GapTrailLenMs = 900

	if got := cfg.MixSize(); got != 6800 {
		t.Errorf("MixSize() locked trail = %d, want 6800", got)
	}

	cfg.GapTrailLocked = false
	if got := cfg.MixSize(); got != 7400 {
		t.Errorf("MixSize() unlocked trail = %d, want 7400", got)
	}

	cfg.MixSizeAuto = false
	if got := cfg.MixSize(); got != cfg.MixSizeMs {
		t.Errorf("MixSize() manual = %d, want %d", got, cfg.MixSizeMs)
	}
}

func TestConfig_MixSizeOffsetAndPause(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.MixSizeAuto = true

	// a custom offset larger than the fade-out wins
	cfg.Fades[EventManual] = FadeConfig{Type: AdvancedXF, OutEnable: true, OutLenMs: 1000, OfsType: OffsetCustom, OfsCustomMs: -4000}
	if got := cfg.MixSize(); got != 4000 {
		t.Errorf("MixSize() = %d, want 4000", got)
	}

	// pause-advanced needs room for both legs
	cfg.Fades[EventPause] = FadeConfig{Type: PauseAdv, OutLenMs: 3000, InLenMs: 2000}
	if got := cfg.MixSize(); got != 5000 {
		t.Errorf("MixSize() = %d, want 5000", got)
	}
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	for _, e := range Events() {
		got, err := ParseEvent(e.Key())
		if err != nil || got != e {
			t.Errorf("ParseEvent(%q) = %v, %v", e.Key(), got, err)
		}
	}

	if _, err := ParseEvent("fc_bogus"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("ParseEvent(fc_bogus) error = %v, want ErrUnknownEvent", err)
	}

	if (&Config{}).Fade(EventCount) != nil {
		t.Error("Fade(EventCount) should be nil")
	}
}
