// SPDX-License-Identifier: EPL-2.0

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch reloads the file at path whenever it is written or recreated and
// hands the result to fn. A file that fails to load is logged and skipped.
// Watch blocks until ctx ends.
//
// The directory is watched rather than the file, so editors that replace the
// file on save keep working.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	return watch(ctx, path, fn, nil, logrus.StandardLogger())
}

func watch(ctx context.Context, path string, fn func(*Config), ready func(), log logrus.FieldLogger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	log = log.WithField("config", path)
	log.Debug("watching config")

	if ready != nil {
		ready()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				log.WithError(err).Warn("config reload failed")
				continue
			}

			log.Info("config reloaded")
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("config watcher error")
		}
	}
}
