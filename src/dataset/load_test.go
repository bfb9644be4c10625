package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_JSONCWithComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.jsonc")
	content := `// benchmark results, 16-core host
[
  {"players": 1000, "tick_ms": 0.40},
  // interleaved comment lines are ignored
  {"players": 1, "tick_ms": 0.24}
]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := ds.Samples()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	// loader sorts ascending by player count
	if got[0].Players != 1 || got[1].Players != 1000 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.jsonc")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jsonc")
	if err := os.WriteFile(path, []byte("[{"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
