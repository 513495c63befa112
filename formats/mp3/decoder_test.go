// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ik5/audxfade/audio"
)

// fakeMP3 serves 16 bit stereo PCM in reads of at most step bytes.
type fakeMP3 struct {
	pcm  []byte
	step int
	fail error
}

func newFake(step int, samples ...int16) *fakeMP3 {
	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}
	return &fakeMP3{pcm: pcm, step: step}
}

func (f *fakeMP3) SampleRate() int { return 44100 }

func (f *fakeMP3) Read(p []byte) (int, error) {
	if len(f.pcm) == 0 {
		if f.fail != nil {
			return 0, f.fail
		}
		return 0, io.EOF
	}

	n := copy(p[:min(len(p), f.step)], f.pcm)
	f.pcm = f.pcm[n:]

	return n, nil
}

func drain(t *testing.T, src audio.Source, chunk int) ([]float32, error) {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)

	for range 10000 {
		n, err := src.ReadSamples(buf)
		if n%src.Channels() != 0 {
			t.Fatalf("ReadSamples() returned %d samples, not whole frames", n)
		}
		out = append(out, buf[:n]...)

		if err != nil {
			return out, err
		}
	}

	t.Fatal("source never ended")
	return nil, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		step  int
		chunk int
	}{
		{"whole reads", 1 << 16, 64},
		{"odd byte reads", 3, 8},
		{"single bytes", 1, 6},
		{"odd chunk", 1 << 16, 5},
	}

	in := []int16{0, 16384, -16384, 32767, -32768, 100, 200, 300}
	want := []float32{0, 0.5, -0.5, 32767.0 / 32768, -1, 100.0 / 32768, 200.0 / 32768, 300.0 / 32768}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{dec: newFake(tt.step, in...), sampleRate: 44100}

			got, err := drain(t, src, tt.chunk)
			if !errors.Is(err, io.EOF) {
				t.Fatalf("final error = %v, want io.EOF", err)
			}

			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}

			for i := range want {
				if got[i] != want[i] {
					t.Errorf("sample %d = %f, want %f", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSource_ErrorAfterData(t *testing.T) {
	t.Parallel()

	fake := newFake(1<<16, 1, 2, 3, 4)
	fake.fail = errors.New("corrupt frame")
	src := &source{dec: fake, sampleRate: 44100}

	got, err := drain(t, src, 64)
	if len(got) != 4 {
		t.Errorf("decoded %d samples before the error, want 4", len(got))
	}
	if err == nil || errors.Is(err, io.EOF) {
		t.Errorf("final error = %v, want decode error", err)
	}

	// sticky
	if _, again := src.ReadSamples(make([]float32, 4)); !errors.Is(again, err) {
		t.Errorf("second error = %v, want %v", again, err)
	}
}

func TestSource_SmallDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFake(8, 1, 2), sampleRate: 44100}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}

	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_Format(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFake(8), sampleRate: 22050, buf: make([]byte, 8192)}

	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Errorf("format = %d Hz/%d ch, want 22050 Hz/2 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range []io.Reader{
		bytes.NewReader(nil),
		strings.NewReader("definitely not an mpeg stream"),
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

	if _, ok := reg.Get("mp3"); !ok {
		t.Error("mp3 decoder not registered")
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100*2)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := &source{dec: newFake(1<<20, samples...), sampleRate: 44100, buf: make([]byte, 8192)}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
