package domain

import (
	"context"
	"image"
)

// Recognizer defines the interface for OCR on a rasterized page image.
// An unreadable image yields empty text, not an error.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, lang string) (string, error)
}

// Translator defines the interface for the external translation capability.
// Implementations may fail or block on network I/O; source may be "auto".
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}
