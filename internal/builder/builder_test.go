package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/hierarchy"
	"folio/internal/logging"
	"folio/internal/probe"
	"folio/internal/testsupport"
)

type stubMediaProber struct {
	duration float64
	err      error
}

func (s stubMediaProber) ProbeMedia(context.Context, string) (float64, error) {
	return s.duration, s.err
}

func newTestBuilder(t *testing.T, media probe.MediaProber) *Builder {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	extractor := probe.NewExtractor(probe.DecodeConfigProber{}, media, logging.Discard())
	return New(cfg, extractor, logging.Discard())
}

func readSidecar(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "info.yml"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunBuildsTreeWithSidecars(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label,metadata.Author",
		"collection,My Collection,",
		"collection/photos,Photos,",
		"collection/photos/manifest1,First Manifest,Someone",
		"collection/photos/manifest1/canvas1,Page 1,",
	)
	assetsRoot := filepath.Join(work, "assets")
	testsupport.WriteJPEG(t, filepath.Join(assetsRoot, "photos", "BHC001_AF_01.JPG"), 320, 240)
	testsupport.WriteJPEG(t, filepath.Join(assetsRoot, "photos", "BHC001_AF_010.JPG"), 64, 64)
	testsupport.WriteJPEG(t, filepath.Join(assetsRoot, "photos", "thumb.jpg"), 8, 8)

	destination := filepath.Join(work, "out")
	b := newTestBuilder(t, stubMediaProber{})
	result, err := b.Run(context.Background(), Request{Source: source, Destination: destination, AssetsRoot: assetsRoot})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(result.Nodes))
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	canvasDir := filepath.Join(destination, "collection", "photos", "manifest1", "_canvas1")
	if _, err := os.Stat(canvasDir); err != nil {
		t.Fatalf("canvas directory missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(canvasDir, "BHC001_AF_01.JPG")); err != nil {
		t.Fatalf("matched asset not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(canvasDir, "BHC001_AF_010.JPG")); err == nil {
		t.Fatal("asset with digit run 010 must not match index 1")
	}

	canvasSidecar := readSidecar(t, canvasDir)
	if !strings.Contains(canvasSidecar, "width: 320") || !strings.Contains(canvasSidecar, "height: 240") {
		t.Fatalf("probed dimensions missing from sidecar:\n%s", canvasSidecar)
	}

	manifestSidecar := readSidecar(t, filepath.Join(destination, "collection", "photos", "manifest1"))
	if !strings.Contains(manifestSidecar, "label: First Manifest") {
		t.Fatalf("label missing:\n%s", manifestSidecar)
	}
	if !strings.Contains(manifestSidecar, "Author: Someone") {
		t.Fatalf("metadata bag missing:\n%s", manifestSidecar)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		"collection/manifest1,Book",
		"collection/manifest1/canvas1,Page 1",
	)
	assetsRoot := filepath.Join(work, "assets")
	testsupport.WriteJPEG(t, filepath.Join(assetsRoot, "scan_1.jpg"), 100, 200)

	destination := filepath.Join(work, "out")
	request := Request{Source: source, Destination: destination, AssetsRoot: assetsRoot}

	if _, err := newTestBuilder(t, stubMediaProber{}).Run(context.Background(), request); err != nil {
		t.Fatal(err)
	}
	canvasDir := filepath.Join(destination, "collection", "manifest1", "_canvas1")
	first := readSidecar(t, canvasDir)

	if _, err := newTestBuilder(t, stubMediaProber{}).Run(context.Background(), request); err != nil {
		t.Fatal(err)
	}
	second := readSidecar(t, canvasDir)

	if first != second {
		t.Fatalf("sidecar output not byte-identical across runs:\n%s\n---\n%s", first, second)
	}
}

func TestRunAudioMatching(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		"tour/audio/canvas9,Stop 9",
	)
	assetsRoot := filepath.Join(work, "assets")
	testsupport.WriteFile(t, filepath.Join(assetsRoot, "Part09.mp3"), "mp3")
	testsupport.WriteFile(t, filepath.Join(assetsRoot, "Part9-1.mp3"), "mp3")
	testsupport.WriteFile(t, filepath.Join(assetsRoot, "Part10.mp3"), "mp3")

	destination := filepath.Join(work, "out")
	b := newTestBuilder(t, stubMediaProber{duration: 90.5})
	result, err := b.Run(context.Background(), Request{Source: source, Destination: destination, AssetsRoot: assetsRoot})
	if err != nil {
		t.Fatal(err)
	}

	canvasDir := filepath.Join(destination, "tour", "audio", "_canvas9")
	for _, name := range []string{"Part09.mp3", "Part9-1.mp3"} {
		if _, err := os.Stat(filepath.Join(canvasDir, name)); err != nil {
			t.Fatalf("expected %s to be copied: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(canvasDir, "Part10.mp3")); err == nil {
		t.Fatal("Part10.mp3 must not match canvas index 9")
	}

	sidecarText := readSidecar(t, canvasDir)
	if !strings.Contains(sidecarText, "duration: 90.5") {
		t.Fatalf("probed duration missing:\n%s", sidecarText)
	}

	// The audio parent is not a manifest, so the nesting rule fires.
	if len(result.Nodes) != 1 || result.Nodes[0].Warnings == 0 {
		t.Fatalf("expected nesting warning on the audio canvas, got %+v", result.Nodes)
	}
}

func TestRunExplicitValuesWin(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label,width,height",
		"collection/manifest1/canvas1,Page 1,9999,8888",
	)
	assetsRoot := filepath.Join(work, "assets")
	testsupport.WriteJPEG(t, filepath.Join(assetsRoot, "scan_1.jpg"), 100, 200)

	destination := filepath.Join(work, "out")
	b := newTestBuilder(t, stubMediaProber{})
	if _, err := b.Run(context.Background(), Request{Source: source, Destination: destination, AssetsRoot: assetsRoot}); err != nil {
		t.Fatal(err)
	}

	sidecarText := readSidecar(t, filepath.Join(destination, "collection", "manifest1", "_canvas1"))
	if !strings.Contains(sidecarText, "width: 9999") || !strings.Contains(sidecarText, "height: 8888") {
		t.Fatalf("explicit values must beat probed ones:\n%s", sidecarText)
	}
}

func TestRunOrphanCanvasStillBuilds(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		"root/_canvas1,Loose Page",
	)

	destination := filepath.Join(work, "out")
	b := newTestBuilder(t, stubMediaProber{})
	result, err := b.Run(context.Background(), Request{Source: source, Destination: destination})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Stage != "nesting" {
		t.Fatalf("expected one nesting diagnostic, got %v", result.Diagnostics)
	}

	canvasDir := filepath.Join(destination, "root", "_canvas1")
	if _, err := os.Stat(filepath.Join(canvasDir, "info.yml")); err != nil {
		t.Fatalf("sidecar must still be written: %v", err)
	}
}

func TestRunZeroMatchesWarns(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		"collection/manifest1/canvas7,Page 7",
	)
	assetsRoot := filepath.Join(work, "assets")
	testsupport.WriteJPEG(t, filepath.Join(assetsRoot, "scan_1.jpg"), 10, 10)

	b := newTestBuilder(t, stubMediaProber{})
	result, err := b.Run(context.Background(), Request{
		Source:      source,
		Destination: filepath.Join(work, "out"),
		AssetsRoot:  assetsRoot,
	})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, diagnostic := range result.Diagnostics {
		if diagnostic.Stage == "matching" && strings.Contains(diagnostic.Message, "no image asset matched") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected zero-match warning, got %v", result.Diagnostics)
	}
}

func TestRunSkipsRowsWithoutHierarchy(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		",No Path",
		"collection,Root",
	)

	b := newTestBuilder(t, stubMediaProber{})
	result, err := b.Run(context.Background(), Request{Source: source, Destination: filepath.Join(work, "out")})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Nodes) != 1 {
		t.Fatalf("expected the valid row only, got %d nodes", len(result.Nodes))
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Stage != "input" {
		t.Fatalf("expected input diagnostic, got %v", result.Diagnostics)
	}
}

func TestRunLabelInference(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		"mission_church/manifest1,",
	)

	cfg := testsupport.NewConfig(t)
	cfg.Labels.Infer = true
	extractor := probe.NewExtractor(probe.DecodeConfigProber{}, stubMediaProber{}, logging.Discard())
	b := New(cfg, extractor, logging.Discard())

	destination := filepath.Join(work, "out")
	if _, err := b.Run(context.Background(), Request{Source: source, Destination: destination}); err != nil {
		t.Fatal(err)
	}

	sidecarText := readSidecar(t, filepath.Join(destination, "mission_church", "manifest1"))
	if !strings.Contains(sidecarText, "label: Manifest1") {
		t.Fatalf("expected inferred label:\n%s", sidecarText)
	}
}

type countingRecorder struct {
	nodes []Node
	err   error
}

func (c *countingRecorder) RecordNode(_ context.Context, node Node) error {
	c.nodes = append(c.nodes, node)
	return c.err
}

func TestRunReportsToRecorder(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source,
		"hierarchy,label",
		"collection,Root",
		"collection/manifest1,Book",
	)

	b := newTestBuilder(t, stubMediaProber{})
	recorder := &countingRecorder{}
	b.SetRecorder(recorder)

	if _, err := b.Run(context.Background(), Request{Source: source, Destination: filepath.Join(work, "out")}); err != nil {
		t.Fatal(err)
	}
	if len(recorder.nodes) != 2 {
		t.Fatalf("expected 2 recorded nodes, got %d", len(recorder.nodes))
	}
	if recorder.nodes[1].Role != hierarchy.RoleManifest {
		t.Fatalf("unexpected recorded role %v", recorder.nodes[1].Role)
	}
}

func TestRunRecorderFailureIsDiagnostic(t *testing.T) {
	work := t.TempDir()
	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source, "hierarchy", "collection")

	b := newTestBuilder(t, stubMediaProber{})
	b.SetRecorder(&countingRecorder{err: errors.New("disk full")})

	result, err := b.Run(context.Background(), Request{Source: source, Destination: filepath.Join(work, "out")})
	if err != nil {
		t.Fatalf("recorder failure must not abort the run: %v", err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Stage != "journal" {
		t.Fatalf("expected journal diagnostic, got %v", result.Diagnostics)
	}
}

func TestRunFatalErrors(t *testing.T) {
	work := t.TempDir()

	b := newTestBuilder(t, stubMediaProber{})
	if _, err := b.Run(context.Background(), Request{Source: filepath.Join(work, "missing.csv"), Destination: filepath.Join(work, "out")}); err == nil {
		t.Fatal("missing input must be fatal")
	}

	source := filepath.Join(work, "rows.csv")
	testsupport.WriteCSV(t, source, "hierarchy", "collection")
	if _, err := b.Run(context.Background(), Request{
		Source:      source,
		Destination: filepath.Join(work, "out"),
		AssetsRoot:  filepath.Join(work, "no-assets"),
	}); err == nil {
		t.Fatal("unreadable assets root must be fatal")
	}
}
