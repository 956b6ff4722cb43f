// Package ocr provides optical character recognition for rasterized PDF
// pages via the Tesseract engine.
//
// Tesseract must be installed on the system together with the language data
// for any language hint passed to Recognize. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/doctrans/doctrans/internal/domain"
)

// Recognizer wraps a Tesseract client. The underlying client is not safe for
// concurrent use, so calls are serialized.
type Recognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
	lang   string
}

// New creates a new Recognizer. Close must be called to release Tesseract
// resources.
func New() *Recognizer {
	return &Recognizer{client: gosseract.NewClient()}
}

// Close releases Tesseract resources.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		err := r.client.Close()
		r.client = nil
		return err
	}
	return nil
}

// Recognize runs OCR over img with the given language hint and returns the
// recognized text, trimmed. A page Tesseract finds no text on yields an
// empty string, not an error.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Tesseract wants an encoded image; PNG keeps the rasterized page
	// lossless.
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", domain.OCRError("failed to encode page image", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return "", domain.OCRError("recognizer is closed", nil)
	}

	if lang != "" && lang != r.lang {
		if err := r.client.SetLanguage(lang); err != nil {
			return "", domain.OCRError("failed to set OCR language", err)
		}
		r.lang = lang
	}

	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", domain.OCRError("failed to load page image", err)
	}

	text, err := r.client.Text()
	if err != nil {
		return "", domain.OCRError("recognition failed", err)
	}

	return strings.TrimSpace(text), nil
}
