package filewatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsChange(t *testing.T) {
	path := filepath.Join(string(filepath.Separator), "tmp", "config.toml")

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{name: "write", event: fsnotify.Event{Name: path, Op: fsnotify.Write}, expected: true},
		{name: "create", event: fsnotify.Event{Name: path, Op: fsnotify.Create}, expected: true},
		{name: "rename", event: fsnotify.Event{Name: path, Op: fsnotify.Rename}, expected: true},
		{name: "chmod ignored", event: fsnotify.Event{Name: path, Op: fsnotify.Chmod}, expected: false},
		{name: "remove ignored", event: fsnotify.Event{Name: path, Op: fsnotify.Remove}, expected: false},
		{name: "other file", event: fsnotify.Event{Name: path + ".bak", Op: fsnotify.Write}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsChange(tt.event, path))
		})
	}
}

func TestWatch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchSettle(ctx, path, 10*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0600))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "seed.toml")

	err := Watch(context.Background(), path, func() {})

	assert.Error(t, err)
}
