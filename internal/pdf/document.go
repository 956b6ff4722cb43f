package pdf

import (
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/doctrans/doctrans/internal/domain"
)

// Source is the page-level view of a document the extractor works against.
// *Document satisfies it; tests substitute fakes.
type Source interface {
	// NumPage returns the number of pages.
	NumPage() int
	// Text returns the native embedded text of a 0-based page.
	Text(page int) (string, error)
	// ImageDPI rasterizes a 0-based page at the given DPI, scaled from the
	// page's native 72-DPI coordinate space.
	ImageDPI(page int, dpi float64) (*image.RGBA, error)
}

// Document wraps a MuPDF document handle. It is owned by a single
// translation request for its duration and must be closed when done.
type Document struct {
	doc *fitz.Document
}

// Open loads a PDF from disk.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.InputError("failed to open PDF", err)
	}
	return &Document{doc: doc}, nil
}

// OpenBytes loads a PDF from an in-memory byte stream.
func OpenBytes(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, domain.InputError("failed to open PDF", err)
	}
	return &Document{doc: doc}, nil
}

// NumPage returns the number of pages in the document.
func (d *Document) NumPage() int {
	return d.doc.NumPage()
}

// Text returns the native embedded text of a 0-based page.
func (d *Document) Text(page int) (string, error) {
	return d.doc.Text(page)
}

// ImageDPI rasterizes a 0-based page at the given DPI.
func (d *Document) ImageDPI(page int, dpi float64) (*image.RGBA, error) {
	return d.doc.ImageDPI(page, dpi)
}

// Close releases the document handle.
func (d *Document) Close() error {
	return d.doc.Close()
}
