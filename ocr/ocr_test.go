//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// createTestImage creates a simple image with a text-like pattern.
// OCR might or might not recognize anything in it.
func createTestImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	return img
}

func TestNew(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if client == nil {
		t.Error("Expected non-nil client")
	}
}

func TestRecognizeImage(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(100, 50)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	// The image is just a rectangle; only check the call succeeds.
	if _, err := client.RecognizeImage(buf.Bytes()); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestRecognizeImplementsRecognizer(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	var r Recognizer = client
	if _, err := r.Recognize(createTestImage(100, 50)); err != nil {
		t.Errorf("Recognize failed: %v", err)
	}
}

func TestSetLanguage(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	// English should always be available
	if err := client.SetLanguage("eng"); err != nil {
		t.Errorf("SetLanguage failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	// Second close is a no-op.
	if err := client.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
}
