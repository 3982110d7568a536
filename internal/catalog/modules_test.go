package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestScanModules(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"gcc/12.2.0.lua",
		"gcc/13.1.0.lua",
		"gcc/.version",
		"openmpi/4.1.5",
		".modulerc",
		"cuda.lua",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("-- module\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got := ScanModules([]string{root, filepath.Join(root, "missing"), ""})
	want := []string{"cuda", "gcc/12.2.0", "gcc/13.1.0", "openmpi/4.1.5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanModules = %v; want %v", got, want)
	}
}
