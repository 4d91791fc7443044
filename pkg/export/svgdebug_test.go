package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestExportStoreySVGProducesValidDocument(t *testing.T) {
	data, err := ExportStoreySVG("storey-1", testTopology(), testLayout(), testGeometry()["storey-1"], DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportStoreySVG: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Fatal("expected output to contain an <svg> element")
	}
	if !bytes.Contains(data, []byte("</svg>")) {
		t.Fatal("expected output to be a closed SVG document")
	}
	if !bytes.Contains(data, []byte("space-a")) {
		t.Error("expected the space-a label to appear when ShowLabels is set")
	}
}

func TestExportStoreySVGOmitsLabelsWhenDisabled(t *testing.T) {
	opts := DefaultSVGOptions()
	opts.ShowLabels = false
	data, err := ExportStoreySVG("storey-1", testTopology(), testLayout(), testGeometry()["storey-1"], opts)
	if err != nil {
		t.Fatalf("ExportStoreySVG: %v", err)
	}
	if bytes.Contains(data, []byte("space-a")) {
		t.Error("expected no space-a label when ShowLabels is false")
	}
}

func TestSaveStoreySVGWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storey-1.svg")
	if err := SaveStoreySVG("storey-1", testTopology(), testLayout(), testGeometry()["storey-1"], DefaultSVGOptions(), path); err != nil {
		t.Fatalf("SaveStoreySVG: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}
