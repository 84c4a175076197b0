//go:build !ocr

package pipeline

import (
	"errors"
	"testing"

	"github.com/tsawler/reflow/ocr"
)

func TestNewOCRNotEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.OCR = true
	if _, err := New(cfg, &collector{}); !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got %v", err)
	}
}
