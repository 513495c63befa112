// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/formats/wav"
	"github.com/ik5/audxfade/internal/audiotest"
	"github.com/ik5/audxfade/stream"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// writeTrack stores seconds of a constant mono signal at 8 kHz.
func writeTrack(t *testing.T, dir, name string, seconds int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)

	enc, err := wav.NewEncoder(f, 8000, 1)
	require.NoError(t, err)

	samples, err := audiotest.ReadAll(audiotest.Constant(8000, 1, 8000*seconds, 0.5), 4096)
	require.NoError(t, err)
	require.NoError(t, enc.Write(samples))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

func decodeFile(t *testing.T, r io.Reader) audio.Source {
	t.Helper()

	src, err := wav.Decoder{}.Decode(r)
	require.NoError(t, err)

	return src
}

func TestRun_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTrack(t, dir, "a.wav", 2)
	b := writeTrack(t, dir, "b.wav", 2)
	out := filepath.Join(dir, "out.wav")

	err := run(context.Background(), []string{"--length", "1", "-o", out, a, b}, io.Discard, quietLogger())
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	src := decodeFile(t, f)
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	samples, err := audiotest.ReadAll(src, 4096)
	require.NoError(t, err)
	// Reads are 4096 samples and the engine releases once 4000 samples sit
	// beyond the 8000 sample window. The first track ends with the window
	// plus the 3712 samples of its last read still held, so the overlap is
	// 11712 samples rather than one second.
	require.Len(t, samples, 2*16000-11712)

	assert.InDelta(t, 0, samples[0], 1e-3)
	assert.InDelta(t, 0, samples[len(samples)-1], 1e-3)
	for i, v := range samples {
		if v < 0 || v > 0.66 {
			t.Fatalf("sample %d = %f, outside the faded range", i, v)
		}
	}
}

func TestRun_Stdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTrack(t, dir, "a.wav", 2)
	b := writeTrack(t, dir, "b.wav", 3)

	cfg := filepath.Join(dir, "audxfade.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("crossfade: {length: 2}\nrender: {rate: 16000, channels: 2}\n"), 0o600))

	var buf bytes.Buffer
	err := run(context.Background(), []string{"--config", cfg, "-o", "-", a, b}, &buf, quietLogger())
	require.NoError(t, err)

	src := decodeFile(t, bytes.NewReader(buf.Bytes()))
	assert.Equal(t, 16000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	samples, err := audiotest.ReadAll(src, 4096)
	require.NoError(t, err)
	// 2 s + 3 s with a 2 s overlap
	assert.InDelta(t, 3*16000*2, len(samples), 256)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTrack(t, dir, "a.wav", 1)

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no output", []string{a}, errUsage},
		{"no inputs", []string{"-o", "x.wav"}, errUsage},
		{"missing input", []string{"-o", filepath.Join(dir, "o.wav"), filepath.Join(dir, "none.wav")}, os.ErrNotExist},
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.flac"), []byte("fLaC"), 0o600))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := run(context.Background(), tt.args, io.Discard, quietLogger())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("stream status", func(t *testing.T) {
		t.Parallel()

		err := run(context.Background(), []string{"-o", filepath.Join(t.TempDir(), "o.wav"), srv.URL}, io.Discard, quietLogger())

		var se *stream.HTTPStatusError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		err := run(context.Background(), []string{"-o", filepath.Join(t.TempDir(), "o.wav"), filepath.Join(dir, "a.flac")}, io.Discard, quietLogger())
		assert.ErrorIs(t, err, audio.ErrUnknownFormat)
	})
}

func TestFormats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wav", fileFormat("/music/Song.WAV"))
	assert.Equal(t, "ogg", fileFormat("a.b.ogg"))
	assert.Equal(t, "", fileFormat("noext"))

	assert.Equal(t, "ogg", streamFormat("application/ogg"))
	assert.Equal(t, "ogg", streamFormat("audio/OGG; codecs=vorbis"))
	assert.Equal(t, "mp3", streamFormat("audio/mpeg"))
	assert.Equal(t, "mp3", streamFormat(""))

	assert.True(t, isURL("http://radio.example/live"))
	assert.True(t, isURL("HTTPS://radio.example/live"))
	assert.False(t, isURL("/tmp/a.wav"))
	assert.False(t, isURL("C:/music/a.wav"))
}
