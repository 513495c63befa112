// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audxfade/internal/audiotest"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.Silence(44100, 2, 1000), 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("Resampler.SampleRate() = %d, want 8000", resampler.SampleRate())
	}

	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	in := []float32{0.1, -0.2, 0.3, -0.4, 0.5, -0.6}
	resampler := NewResampler(audiotest.FromSamples(8000, 2, in), 8000)

	got, err := audiotest.ReadAll(resampler, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(in) {
		t.Fatalf("got %d samples, want %d", len(got), len(in))
	}

	for i := range in {
		if got[i] != in[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestResampler_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
	}{
		{"downsample 44.1k to 8k", 44100, 8000},
		{"downsample 48k to 44.1k", 48000, 44100},
		{"upsample 8k to 48k", 8000, 48000},
		{"upsample 22.05k to 44.1k", 22050, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resampler := NewResampler(audiotest.Sine(tt.from, 1, tt.from, 440), tt.to)

			got, err := audiotest.ReadAll(resampler, 1024)
			if err != nil {
				t.Fatal(err)
			}

			// one second in, roughly one second out
			want := float64(tt.to)
			if math.Abs(float64(len(got))-want) > want*0.01+4 {
				t.Errorf("got %d samples, want about %v", len(got), want)
			}

			for i, v := range got {
				if v < -1.1 || v > 1.1 {
					t.Fatalf("sample %d = %v out of range", i, v)
				}
			}
		})
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.Constant(22050, 2, 2205, 0.5), 44100)

	got, err := audiotest.ReadAll(resampler, 256)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range got {
		if math.Abs(float64(v-0.5)) > 1e-5 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_ChannelsKeptApart(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.Channels(44100, 3, 4410), 16000)

	got, err := audiotest.ReadAll(resampler, 300)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range got {
		want := float32(i%3+1) / 10
		if math.Abs(float64(v-want)) > 1e-4 {
			t.Fatalf("sample %d (channel %d) = %v, want %v", i, i%3, v, want)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.Silence(44100, 2, 100), 8000)

	_, err := resampler.ReadSamples(make([]float32, 3))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.Silence(44100, 1, 0), 8000)

	n, err := resampler.ReadSamples(make([]float32, 64))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.Broken(44100, 1, 10), 8000)

	_, err := audiotest.ReadAll(resampler, 64)
	if !errors.Is(err, audiotest.ErrBroken) {
		t.Errorf("error = %v, want ErrBroken", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.Silence(44100, 1, 10)
	if err := NewResampler(src, 8000).Close(); err != nil {
		t.Fatal(err)
	}

	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func TestResampler_MinimalAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := audiotest.Sine(44100, 2, 1<<30, 440)
	resampler := NewResampler(src, 16000)
	buf := make([]float32, 4096)

	// warm up
	_, _ = resampler.ReadSamples(buf)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = resampler.ReadSamples(buf)
	})

	if allocs > 0 {
		t.Errorf("ReadSamples() allocated %v times, want 0", allocs)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := audiotest.Sine(44100, 2, 1<<30, 440)
	resampler := NewResampler(src, 16000)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = resampler.ReadSamples(buf)
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	src := audiotest.Sine(22050, 2, 1<<30, 440)
	resampler := NewResampler(src, 48000)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = resampler.ReadSamples(buf)
	}
}
