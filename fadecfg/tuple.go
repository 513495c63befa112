// SPDX-License-Identifier: EPL-2.0

package fadecfg

import (
	"fmt"
	"strconv"
	"strings"
)

const tupleFields = 18

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (fc *FadeConfig) fields() [tupleFields]int {
	return [tupleFields]int{
		int(fc.Type),
		fc.PauseLenMs,
		fc.SimpleLenMs,
		b2i(fc.OutEnable),
		fc.OutLenMs,
		fc.OutVolume,
		int(fc.OfsType),
		int(fc.OfsTypeWanted),
		fc.OfsCustomMs,
		b2i(fc.InLocked),
		b2i(fc.InEnable),
		fc.InLenMs,
		fc.InVolume,
		b2i(fc.FlushPauseEnable),
		fc.FlushPauseLenMs,
		b2i(fc.FlushInEnable),
		fc.FlushInLenMs,
		fc.FlushInVolume,
	}
}

// Tuple encodes fc in the persisted comma separated form.
func (fc FadeConfig) Tuple() string {
	f := fc.fields()

	var sb strings.Builder
	for i, v := range f {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}

	return sb.String()
}

// ParseTuple decodes the persisted comma separated form. Whitespace around
// fields is ignored.
func ParseTuple(s string) (FadeConfig, error) {
	parts := strings.Split(s, ",")
	if len(parts) != tupleFields {
		return FadeConfig{}, fmt.Errorf("%w: got %d", ErrTupleArity, len(parts))
	}

	var v [tupleFields]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return FadeConfig{}, fmt.Errorf("%w %d: %w", ErrTupleField, i, err)
		}
		v[i] = n
	}

	return FadeConfig{
		Type:             FadeType(v[0]),
		PauseLenMs:       v[1],
		SimpleLenMs:      v[2],
		OutEnable:        v[3] != 0,
		OutLenMs:         v[4],
		OutVolume:        v[5],
		OfsType:          OffsetType(v[6]),
		OfsTypeWanted:    OffsetType(v[7]),
		OfsCustomMs:      v[8],
		InLocked:         v[9] != 0,
		InEnable:         v[10] != 0,
		InLenMs:          v[11],
		InVolume:         v[12],
		FlushPauseEnable: v[13] != 0,
		FlushPauseLenMs:  v[14],
		FlushInEnable:    v[15] != 0,
		FlushInLenMs:     v[16],
		FlushInVolume:    v[17],
	}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (fc FadeConfig) MarshalText() ([]byte, error) {
	return []byte(fc.Tuple()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (fc *FadeConfig) UnmarshalText(text []byte) error {
	parsed, err := ParseTuple(string(text))
	if err != nil {
		return err
	}

	*fc = parsed

	return nil
}
