//go:build !ocr

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("Expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestNewWithConfigReturnsError(t *testing.T) {
	if _, err := NewWithConfig(DefaultConfig()); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	err := client.Close()
	if err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestStubRecognize(t *testing.T) {
	var client Client
	if _, err := client.Recognize(image.NewGray(image.Rect(0, 0, 4, 4))); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
}
