package iconbake

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestGenerateRunsOptimizeCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("optimize commands run through a POSIX shell")
	}
	ctx := context.Background()
	src := newTestSource(t, newGlyphImage(128, 128))
	outDir := t.TempDir()
	marker := filepath.Join(outDir, "optimized-{{size}}.txt")

	g, err := New(
		WithSizeTable(SizeTable{{Px: 40, Filename: "icon-40.png"}}),
		WithOptimizeCommand("test -f {{file}} && touch "+marker),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(ctx, src, outDir); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "optimized-40.txt")); err != nil {
		t.Errorf("optimize command did not run with expanded template variables: %v", err)
	}
}

func TestCommandResolvable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("optimize commands run through a POSIX shell")
	}
	ctx := context.Background()
	tests := []struct {
		name   string
		cmdStr string
		want   bool
	}{
		{"plain executable", "true", true},
		{"shell builtin", "test -f {{file}}", true},
		{"compound command", "true --force {{file}} && cp {{file}} /tmp", true},
		{"environment prefix", "LC_ALL=C true {{file}}", true},
		{"template expression first", "{{env.OPTIMIZER}} {{file}}", true},
		{"nonexistent executable", "no-such-optimizer-xyz {{file}}", false},
		{"empty command", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandResolvable(ctx, tt.cmdStr); got != tt.want {
				t.Errorf("CommandResolvable(%q) = %v, want %v", tt.cmdStr, got, tt.want)
			}
		})
	}
}

func TestGenerateFailingOptimizeCommandAborts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("optimize commands run through a POSIX shell")
	}
	ctx := context.Background()
	src := newTestSource(t, newGlyphImage(128, 128))
	outDir := t.TempDir()

	g, err := New(
		WithSizeTable(SizeTable{
			{Px: 40, Filename: "icon-40.png"},
			{Px: 60, Filename: "icon-60.png"},
		}),
		WithOptimizeCommand("exit 1"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(ctx, src, outDir); err == nil {
		t.Fatal("Generate() error = nil, want optimize failure")
	}
	if _, err := os.Stat(filepath.Join(outDir, "icon-60.png")); err == nil {
		t.Error("icon-60.png should not exist after the first slot failed")
	}
}
