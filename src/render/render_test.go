package render

import (
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-faster/errors"
)

func TestRender_WritesArtifactWithConfiguredDimensions(t *testing.T) {
	ds := benchDataset(t)
	out := filepath.Join(t.TempDir(), "performance.png")

	spec, err := Render(ds, 50, out, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("artifact is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != spec.Width || b.Dy() != spec.Height {
		t.Fatalf("raster dimensions: got %dx%d want %dx%d", b.Dx(), b.Dy(), spec.Width, spec.Height)
	}
}

func TestRender_RerenderIsDeterministic(t *testing.T) {
	ds := benchDataset(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "performance.png")

	specA, err := Render(ds, 50, out, Options{Width: 600, Height: 400})
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	dimA := decodeDims(t, out)
	specB, err := Render(ds, 50, out, Options{Width: 600, Height: 400})
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	dimB := decodeDims(t, out)

	if !reflect.DeepEqual(specA, specB) {
		t.Fatalf("derived specs differ across identical runs")
	}
	if dimA != dimB {
		t.Fatalf("raster dimensions differ: %v vs %v", dimA, dimB)
	}
	// no temp file leftovers next to the artifact
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the artifact in %s, found %d entries", dir, len(entries))
	}
}

func decodeDims(t *testing.T, path string) [2]int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return [2]int{img.Bounds().Dx(), img.Bounds().Dy()}
}

func TestRender_InvalidThresholdWritesNothing(t *testing.T) {
	ds := benchDataset(t)
	out := filepath.Join(t.TempDir(), "performance.png")

	_, err := Render(ds, -5, out, Options{})
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("artifact should not exist after a failed render: %v", statErr)
	}
}

func TestRender_UnwritableOutputPath(t *testing.T) {
	ds := benchDataset(t)
	out := filepath.Join(t.TempDir(), "missing-dir", "performance.png")

	_, err := Render(ds, 50, out, Options{Width: 600, Height: 400})
	if !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("expected ErrOutputWrite, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("artifact should not exist after a failed write: %v", statErr)
	}
}

func TestRender_OverwritesExistingArtifact(t *testing.T) {
	ds := benchDataset(t)
	out := filepath.Join(t.TempDir(), "performance.png")
	if err := os.WriteFile(out, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}
	if _, err := Render(ds, 50, out, Options{Width: 600, Height: 400}); err != nil {
		t.Fatalf("render over existing file: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("artifact was not replaced with a valid PNG: %v", err)
	}
}

func TestDrawFootnote_PreservesBoundsAndHandlesEmpty(t *testing.T) {
	ds := benchDataset(t)
	spec, err := BuildSpec(ds, 50, Options{Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	img, err := rasterize(spec, ds.Samples())
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	noted := drawFootnote(img, spec.Footnote)
	if noted.Bounds() != img.Bounds() {
		t.Fatalf("footnote changed image bounds: %v vs %v", noted.Bounds(), img.Bounds())
	}
	if got := drawFootnote(img, "   "); got != img {
		t.Fatalf("blank footnote should return the image unchanged")
	}
}
