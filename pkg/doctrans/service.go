// Package doctrans is the main entry point for the PDF translation library.
// It composes text extraction with OCR fallback, paragraph-aware chunking
// and ordered chunk translation into a single stateless transformation from
// document bytes to translated text.
package doctrans

import (
	"context"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
	"github.com/doctrans/doctrans/internal/pdf"
	"github.com/doctrans/doctrans/internal/translate"
)

// Options are the externally configurable knobs of a translation run.
type Options = domain.Options

// Service turns a PDF into translated plain text.
type Service struct {
	extractor    *pdf.Extractor
	orchestrator *translate.Orchestrator
	validator    *pdf.Validator
	logger       *observability.Logger
}

// NewService composes a service from its extraction and translation parts.
func NewService(extractor *pdf.Extractor, orchestrator *translate.Orchestrator, logger *observability.Logger) *Service {
	return &Service{
		extractor:    extractor,
		orchestrator: orchestrator,
		validator:    pdf.NewValidator(logger),
		logger:       logger.WithComponent("service"),
	}
}

// TranslateFile extracts, chunks and translates the PDF at path.
func (s *Service) TranslateFile(ctx context.Context, path string, opts Options) (string, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if err := s.validator.ValidatePDFPath(path); err != nil {
		return "", err
	}

	doc, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return s.translateDocument(ctx, doc, opts)
}

// TranslateBytes extracts, chunks and translates an in-memory PDF.
func (s *Service) TranslateBytes(ctx context.Context, data []byte, opts Options) (string, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return "", err
	}

	doc, err := pdf.OpenBytes(data)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return s.translateDocument(ctx, doc, opts)
}

// ExtractFile extracts the marker-delimited text of the PDF at path without
// translating it.
func (s *Service) ExtractFile(ctx context.Context, path string, opts Options) (string, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if err := s.validator.ValidatePDFPath(path); err != nil {
		return "", err
	}

	doc, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return s.extract(ctx, doc, opts)
}

func (s *Service) translateDocument(ctx context.Context, src pdf.Source, opts Options) (string, error) {
	text, err := s.extract(ctx, src, opts)
	if err != nil {
		return "", err
	}

	translated, err := s.orchestrator.Translate(ctx, text, opts.TargetLanguage)
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Int("extracted_chars", len(text)).
		Int("translated_chars", len(translated)).
		Str("target", opts.TargetLanguage).
		Msg("Translation complete")

	return translated, nil
}

func (s *Service) extract(ctx context.Context, src pdf.Source, opts Options) (string, error) {
	text, err := s.extractor.ExtractDocument(ctx, src, opts.DPI, opts.OCRLanguage)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", domain.EmptyExtractionError("could not extract any text from the PDF (even with OCR)")
	}
	return text, nil
}
