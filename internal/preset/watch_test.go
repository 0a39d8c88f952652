// SPDX-License-Identifier: EPL-2.0

package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "live.json")
	if err := os.WriteFile(path, []byte(`{"cloudSize": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Preset, 16)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path,
			func(p Preset) {
				select {
				case changes <- p:
				default:
				}
			},
			// a half-written file can fail to parse
			func(error) {},
		)
	}()

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

wait:
	for {
		select {
		case p := <-changes:
			if p.CloudSize == 9 {
				break wait
			}
		case <-tick.C:
			if err := os.WriteFile(path, []byte(`{"cloudSize": 9}`), 0o600); err != nil {
				t.Fatal(err)
			}
			// a sibling file must not trigger a reload
			if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{`), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no change observed")
		}
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "p.json")
	err := Watch(context.Background(), path, func(Preset) {}, func(error) {})
	if err == nil {
		t.Error("Watch() on a missing directory succeeded")
	}
}
