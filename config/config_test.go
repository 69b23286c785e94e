package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		want       *Config
	}{
		{
			name: "full config",
			configYAML: `
source: artwork/icon.png
out: Assets.xcassets/AppIcon.appiconset
scaleFactor: 1.3
optimizeCommand: "optipng {{file}}"
sizes:
  - px: 20
  - px: 60
    filename: icon-60.png
`,
			want: &Config{
				Source:          "artwork/icon.png",
				Out:             "Assets.xcassets/AppIcon.appiconset",
				ScaleFactor:     1.3,
				OptimizeCommand: "optipng {{file}}",
				Sizes: []SizeEntry{
					{Px: 20},
					{Px: 60, Filename: "icon-60.png"},
				},
			},
		},
		{
			name: "partial config",
			configYAML: `
scaleFactor: 1.1
`,
			want: &Config{ScaleFactor: 1.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", tmpDir)

			// Reset configHomePath
			configHomePath = ""

			dir := filepath.Join(tmpDir, "iconbake")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("Failed to create config directory: %v", err)
			}
			if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(tt.configYAML), 0o644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configHomePath = ""

	dir := filepath.Join(tmpDir, "iconbake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("scaleFactor: 1.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config-work.yml"), []byte("scaleFactor: 1.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("work")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ScaleFactor != 1.4 {
		t.Errorf("ScaleFactor = %v, want the profile config to win", cfg.ScaleFactor)
	}
}

func TestLoadNoConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configHomePath = ""

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("Load() without a config file should be empty (-want +got):\n%s", diff)
	}
}
