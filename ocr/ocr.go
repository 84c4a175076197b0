//go:build ocr

// Package ocr recognises the words placed on reflowed pages so that the
// output can carry a searchable text layer.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client with the default configuration.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new OCR client with custom settings.
func NewWithConfig(config Config) (*Client, error) {
	c := &Client{client: gosseract.NewClient()}
	if config.Language != "" {
		if err := c.SetLanguage(config.Language); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to set language %q: %w", config.Language, err)
		}
	}
	if err := c.SetPageSegMode(config.PageSegMode); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return c, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// Recognize performs OCR on a decoded image. It implements Recognizer.
func (c *Client) Recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode word image: %w", err)
	}
	return c.RecognizeImage(buf.Bytes())
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
