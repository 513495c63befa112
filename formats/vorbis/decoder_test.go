// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ik5/audxfade/audio"
)

// fakeOgg mimics oggvorbis.Reader: it returns whole frames, at most packet
// values per call, and io.EOF once drained.
type fakeOgg struct {
	channels int
	values   []float32
	packet   int
	empty    int // calls that return nothing before data flows
	fail     error
}

func (f *fakeOgg) SampleRate() int { return 48000 }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.empty > 0 {
		f.empty--
		return 0, nil
	}
	if len(f.values) == 0 {
		if f.fail != nil {
			return 0, f.fail
		}
		return 0, io.EOF
	}

	n := min(len(p), f.packet, len(f.values))
	n -= n % f.channels
	copy(p, f.values[:n])
	f.values = f.values[n:]

	return n, nil
}

func ramp(n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32(i) / float32(n)
	}
	return v
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		packet   int
		chunk    int
	}{
		{"mono", 1, 64, 100},
		{"stereo", 2, 64, 100},
		{"5.1 odd chunk", 6, 60, 100},
		{"tiny packets", 2, 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := ramp(tt.channels * 50)
			src := &source{
				dec:      &fakeOgg{channels: tt.channels, values: append([]float32(nil), want...), packet: tt.packet, empty: 2},
				channels: tt.channels,
			}

			var got []float32
			buf := make([]float32, tt.chunk)

			for {
				n, err := src.ReadSamples(buf)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() = %d, not whole frames", n)
				}
				got = append(got, buf[:n]...)

				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("sample %d = %f, want %f", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2, packet: 4, fail: errors.New("bad packet")}, channels: 2}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}

	_, err := src.ReadSamples(make([]float32, 4))
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v, want decode error", err)
	}

	if _, again := src.ReadSamples(make([]float32, 4)); !errors.Is(again, err) {
		t.Errorf("error not sticky: %v", again)
	}
}

func TestSource_Format(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2}, channels: 2}

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Errorf("format = %d Hz/%d ch, want 48000 Hz/2 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range []io.Reader{
		bytes.NewReader(nil),
		strings.NewReader("OggS but not really a vorbis stream"),
	} {
		if _, err := (Decoder{}).Decode(in); err == nil {
			t.Error("Decode() error = nil, want error")
		}
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	Register(reg)

	for _, key := range []string{"ogg", "vorbis"} {
		if _, ok := reg.Get(key); !ok {
			t.Errorf("%q not registered", key)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	values := ramp(48000 * 2)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := &source{dec: &fakeOgg{channels: 2, values: values, packet: 2048}, channels: 2}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
