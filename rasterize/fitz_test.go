//go:build fitz

package rasterize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenDocumentInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 not really"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := Open(path)
	if err == nil {
		src.Close()
		t.Skipf("MuPDF repaired the broken file")
	}
	assert.Error(t, err)
}
