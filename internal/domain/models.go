package domain

// PageResult is the tagged outcome of extracting one page. A failed page
// carries its error alongside empty text; the document-level result keeps
// the page in order either way.
type PageResult struct {
	Number int // 1-based for display
	Text   string
	Err    error
}

// Failed reports whether extraction of this page failed.
func (p PageResult) Failed() bool {
	return p.Err != nil
}

// Options are the externally configurable knobs of a translation run.
type Options struct {
	DPI            int    // rasterization DPI for OCR pages
	OCRLanguage    string // Tesseract language hint, e.g. "eng"
	TargetLanguage string // translation target, e.g. "zh-CN"
}

// Defaults mirror the knobs of the HTTP surface.
const (
	DefaultDPI            = 300
	DefaultOCRLanguage    = "eng"
	DefaultTargetLanguage = "zh-CN"
	DefaultMaxChunkLen    = 4500
)

// Normalize fills zero-valued options with their defaults.
func (o Options) Normalize() Options {
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.OCRLanguage == "" {
		o.OCRLanguage = DefaultOCRLanguage
	}
	if o.TargetLanguage == "" {
		o.TargetLanguage = DefaultTargetLanguage
	}
	return o
}

// Validate rejects invalid knob values before any extraction work begins.
func (o Options) Validate() error {
	if o.DPI < 1 || o.DPI > 1200 {
		return ConfigError("dpi must be between 1 and 1200", nil)
	}
	if o.OCRLanguage == "" {
		return ConfigError("ocr language must not be empty", nil)
	}
	if o.TargetLanguage == "" {
		return ConfigError("target language must not be empty", nil)
	}
	return nil
}
