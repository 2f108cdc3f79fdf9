package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildIndexBucketsByDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"photos/BHC001_AF_01.JPG",
		"photos/BHC001_AF_02.JPG",
		"audio/Part1.mp3",
	)

	index, err := BuildIndex(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if index.Len() != 3 {
		t.Fatalf("expected 3 indexed files, got %d", index.Len())
	}
	if got := index.Files(filepath.Join(root, "photos")); len(got) != 2 {
		t.Fatalf("expected 2 files in photos bucket, got %v", got)
	}
	if got := index.AllFiles(); len(got) != 3 {
		t.Fatalf("expected flattened pool of 3, got %v", got)
	}
}

func TestBuildIndexAppliesExcludes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"photos/BHC001_AF_01.JPG",
		"photos/thumb.jpg",
		"photos/info.yml",
		"nested/deep/thumb.png",
	)

	index, err := BuildIndex(root, []string{"**/info.yml", "**/thumb.*"})
	if err != nil {
		t.Fatal(err)
	}
	if index.Len() != 1 {
		t.Fatalf("expected excludes to drop sidecars and thumbnails, got %v", index.AllFiles())
	}
}

func TestBuildIndexUnreadableRootIsFatal(t *testing.T) {
	if _, err := BuildIndex(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("expected error for unreadable root")
	}
}

func TestAllFilesIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b/two.jpg", "a/one.jpg")

	index, err := BuildIndex(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	files := index.AllFiles()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "one.jpg" {
		t.Fatalf("expected bucket-sorted order, got %v", files)
	}
}
