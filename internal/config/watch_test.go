// SPDX-License-Identifier: EPL-2.0

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_Reload(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "crossfade: {length: 2}")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, hook := test.NewNullLogger()
	ready := make(chan struct{})
	got := make(chan *Config, 4)
	done := make(chan error, 1)

	go func() {
		done <- watch(ctx, path, func(c *Config) { got <- c }, func() { close(ready) }, log)
	}()

	select {
	case <-ready:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not start")
	}

	// a broken file is skipped
	require.NoError(t, os.WriteFile(path, []byte("crossfade: ["), 0o600))
	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "config reload failed" {
				return true
			}
		}
		return false
	}, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("crossfade: {length: 8}"), 0o600))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-got:
			if c.Crossfade.Length == 8 {
				cancel()
				assert.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("no reload delivered")
		}
	}
}

func TestWatch_MissingDir(t *testing.T) {
	t.Parallel()

	err := Watch(context.Background(), "/nonexistent/dir/audxfade.yaml", func(*Config) {})
	assert.Error(t, err)
}
