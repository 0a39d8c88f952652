// SPDX-License-Identifier: EPL-2.0

package preset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the re-read preset every time path is written,
// and onErr for read or watcher failures. It blocks until ctx is done.
//
// The parent directory is watched rather than the file, since editors
// often replace the file by renaming over it.
func Watch(ctx context.Context, path string, onChange func(Preset), onErr func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}
	// ignore close error
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			p, err := Read(path)
			if err != nil {
				onErr(err)
				continue
			}
			onChange(p)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onErr(err)

		case <-ctx.Done():
			return nil
		}
	}
}
