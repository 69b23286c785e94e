package iconbake

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchGeneratesOnChange(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	sourcePath := writePNG(t, srcDir, "source.png", newGlyphImage(128, 128))

	g, err := New(WithSizeTable(SizeTable{{Px: 40, Filename: "icon-40.png"}}))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- g.Watch(ctx, sourcePath, outDir)
	}()

	iconPath := filepath.Join(outDir, "icon-40.png")
	waitForFile(t, iconPath)
	before, err := os.Stat(iconPath)
	if err != nil {
		t.Fatal(err)
	}

	// Touch the source and wait for the debounced regeneration.
	writePNG(t, srcDir, "source.png", newGlyphImage(64, 64))
	deadline := time.Now().Add(10 * time.Second)
	for {
		fi, err := os.Stat(iconPath)
		if err == nil && fi.ModTime().After(before.ModTime()) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("icon was not regenerated after the source changed")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Watch() did not stop on context cancellation")
	}
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", path)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
