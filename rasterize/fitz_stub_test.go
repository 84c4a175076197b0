//go:build !fitz

package rasterize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDocumentWithoutFitz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%%EOF"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrFitzNotEnabled)
}
