// Package pdf extracts text from PDF documents, falling back to OCR for
// pages that carry no usable embedded text.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
)

// DefaultNativeTextThreshold is the minimum number of non-whitespace
// characters a page's native text must contain before the page is trusted
// as text-based. Below it the page is treated as scanned content and OCRed.
// The value is a heuristic; it is overridable per extractor.
const DefaultNativeTextThreshold = 40

// pageMarker prefixes each page's section in the aggregate document text.
// The layout is relied on by downstream consumers and must not change.
const pageMarker = "\n\n===== Page %d =====\n"

// Extractor produces per-page text for a document, deciding per page
// between native extraction and rasterize-plus-OCR.
type Extractor struct {
	recognizer domain.Recognizer
	threshold  int
	logger     *observability.Logger
	progress   func(done, total int)
}

// ExtractorOption customizes an Extractor.
type ExtractorOption func(*Extractor)

// WithNativeTextThreshold overrides the native-vs-OCR decision boundary.
func WithNativeTextThreshold(n int) ExtractorOption {
	return func(e *Extractor) {
		e.threshold = n
	}
}

// WithProgress registers a callback invoked after each page is processed.
func WithProgress(fn func(done, total int)) ExtractorOption {
	return func(e *Extractor) {
		e.progress = fn
	}
}

// NewExtractor creates an extractor using the given OCR capability.
func NewExtractor(recognizer domain.Recognizer, logger *observability.Logger, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		recognizer: recognizer,
		threshold:  DefaultNativeTextThreshold,
		logger:     logger.WithComponent("extract"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPage returns the trimmed text of one 0-based page. Native text is
// used when it holds at least the threshold of non-whitespace characters;
// otherwise the page is rasterized at the given DPI and OCRed with the
// language hint. A blank or unreadable-but-valid page yields an empty
// string, not an error.
func (e *Extractor) ExtractPage(ctx context.Context, src Source, page, dpi int, ocrLang string) (string, error) {
	text, err := src.Text(page)
	if err != nil {
		return "", domain.InputError(fmt.Sprintf("failed to read page %d", page+1), err)
	}

	if meaningfulLength(text) < e.threshold {
		img, err := src.ImageDPI(page, float64(dpi))
		if err != nil {
			return "", domain.InputError(fmt.Sprintf("failed to rasterize page %d", page+1), err)
		}

		// The bitmap is the dominant memory cost for image-heavy
		// documents; it is unreferenced as soon as OCR returns.
		ocrText, err := e.recognizer.Recognize(ctx, img, ocrLang)
		if err != nil {
			return "", err
		}
		text = ocrText
	}

	return strings.TrimSpace(text), nil
}

// ExtractPages runs ExtractPage over every page of the document in order.
// A failing page is isolated: its result records the error with empty text,
// and extraction continues with the next page.
func (e *Extractor) ExtractPages(ctx context.Context, src Source, dpi int, ocrLang string) ([]domain.PageResult, error) {
	total := src.NumPage()
	results := make([]domain.PageResult, 0, total)

	for page := 0; page < total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := e.ExtractPage(ctx, src, page, dpi, ocrLang)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn().Err(err).Int("page", page+1).Msg("Page extraction failed, recording empty text")
			text = ""
		}
		results = append(results, domain.PageResult{Number: page + 1, Text: text, Err: err})

		if e.progress != nil {
			e.progress(page+1, total)
		}
	}

	return results, nil
}

// ExtractDocument returns the full document text: each page's trimmed text
// prefixed with its page marker, concatenated in page order and trimmed as a
// whole. No page is dropped, even when its text is empty; the result is
// empty only if every page yielded empty text.
func (e *Extractor) ExtractDocument(ctx context.Context, src Source, dpi int, ocrLang string) (string, error) {
	results, err := e.ExtractPages(ctx, src, dpi, ocrLang)
	if err != nil {
		return "", err
	}
	return AssembleDocument(results), nil
}

// AssembleDocument joins page results into the marker-delimited document
// string.
func AssembleDocument(results []domain.PageResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, pageMarker, r.Number)
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}

// meaningfulLength counts the non-whitespace characters of s.
func meaningfulLength(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
