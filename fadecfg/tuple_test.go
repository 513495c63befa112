// SPDX-License-Identifier: EPL-2.0

package fadecfg

import (
	"errors"
	"testing"
)

func TestParseTuple_FieldOrder(t *testing.T) {
	t.Parallel()

	fc, err := ParseTuple("9, 1, 2, 1, 4, 5, 2, 3, 8, 1, 0, 11, 12, 1, 14, 0, 16, 17")
	if err != nil {
		t.Fatal(err)
	}

	want := FadeConfig{
		Type: PauseAdv, PauseLenMs: 1, SimpleLenMs: 2,
		OutEnable: true, OutLenMs: 4, OutVolume: 5,
		OfsType: OffsetLockIn, OfsTypeWanted: OffsetCustom, OfsCustomMs: 8,
		InLocked: true, InEnable: false, InLenMs: 11, InVolume: 12,
		FlushPauseEnable: true, FlushPauseLenMs: 14,
		FlushInEnable: false, FlushInLenMs: 16, FlushInVolume: 17,
	}

	if fc != want {
		t.Errorf("ParseTuple() = %+v\nwant %+v", fc, want)
	}

	if got := fc.Tuple(); got != "9,1,2,1,4,5,2,3,8,1,0,11,12,1,14,0,16,17" {
		t.Errorf("Tuple() = %q", got)
	}
}

func TestParseTuple_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrTupleArity},
		{"too short", "1,2,3", ErrTupleArity},
		{"too long", "0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0", ErrTupleArity},
		{"not a number", "0,0,x,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0", ErrTupleField},
		{"empty field", "0,0,0,0,0,0,0,0,,0,0,0,0,0,0,0,0,0", ErrTupleField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseTuple(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("ParseTuple(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestFadeConfig_UnmarshalTextKeepsValueOnError(t *testing.T) {
	t.Parallel()

	fc := FadeConfig{Type: SimpleXF, SimpleLenMs: 42}
	if err := fc.UnmarshalText([]byte("garbage")); err == nil {
		t.Fatal("UnmarshalText() accepted garbage")
	}

	if fc.SimpleLenMs != 42 {
		t.Error("UnmarshalText() modified the record on error")
	}
}
