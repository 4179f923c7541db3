package fixtures

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
output_dir = "testdata/sysex"
counts = [0, 64, 128]
manifest = true
`))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.OutputDir != "testdata/sysex" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "testdata/sysex")
	}
	if len(cfg.Counts) != 3 || cfg.Counts[0] != 0 || cfg.Counts[1] != 64 || cfg.Counts[2] != 128 {
		t.Errorf("Counts = %v, want [0 64 128]", cfg.Counts)
	}
	if !cfg.Manifest {
		t.Error("Manifest should be true")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
	if len(cfg.Counts) != len(DefaultCounts) {
		t.Errorf("Counts = %v, want %v", cfg.Counts, DefaultCounts)
	}
	if cfg.Manifest {
		t.Error("Manifest should default to false")
	}

	// defaults are a copy
	cfg.Counts[0] = 99
	if DefaultCounts[0] != 0 {
		t.Error("modifying config counts changed DefaultCounts")
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative count", "counts = [1, -2]"},
		{"malformed", "counts = ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); err == nil {
				t.Error("ParseConfig() expected error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysexgen.toml")
	if err := os.WriteFile(path, []byte("counts = [7]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Counts) != 1 || cfg.Counts[0] != 7 {
		t.Errorf("Counts = %v, want [7]", cfg.Counts)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}
