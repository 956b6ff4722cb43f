// Package handlers provides HTTP handlers for the translation API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
	"github.com/doctrans/doctrans/pkg/doctrans"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing; larger
// uploads spill to disk.
const maxMultipartMemory = 32 << 20

// TranslationService is the part of the doctrans service the handler needs.
type TranslationService interface {
	TranslateFile(ctx context.Context, path string, opts doctrans.Options) (string, error)
}

// TranslateHandler handles PDF translation requests.
type TranslateHandler struct {
	logger         *observability.Logger
	service        TranslationService
	defaults       doctrans.Options
	maxUploadBytes int64
}

// NewTranslateHandler creates a new translate handler. The defaults fill any
// knob a request leaves unset.
func NewTranslateHandler(logger *observability.Logger, service TranslationService, defaults doctrans.Options, maxUploadBytes int64) *TranslateHandler {
	return &TranslateHandler{
		logger:         logger.WithComponent("http"),
		service:        service,
		defaults:       defaults,
		maxUploadBytes: maxUploadBytes,
	}
}

// Translate handles POST /translate.
//
// Form-data fields:
//   - file: the PDF to translate (required)
//   - target: translation target language (optional)
//   - ocr_lang: OCR language hint for Tesseract (optional)
//   - dpi: rasterization DPI for OCR pages (optional)
//
// Responds with the translated text as text/plain UTF-8.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid multipart request", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "no file part in request (expected 'file')", "")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.writeError(w, http.StatusBadRequest, "no file selected", "")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		h.writeError(w, http.StatusBadRequest, "please upload a .pdf file", "")
		return
	}

	opts, err := h.parseOptions(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	// Spool the upload to a request-scoped temp file; the document layer
	// works from a path.
	tmpPath := filepath.Join(os.TempDir(), "doctrans-"+uuid.NewString()+".pdf")
	if err := saveUpload(tmpPath, file); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to store upload", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	h.logger.Info().
		Str("filename", header.Filename).
		Int64("size", header.Size).
		Str("target", opts.TargetLanguage).
		Int("dpi", opts.DPI).
		Msg("Translating uploaded PDF")

	translated, err := h.service.TranslateFile(ctx, tmpPath, opts)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Translation failed")
		h.writeError(w, statusForError(err), "translation failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, translated)
}

// parseOptions reads the optional form knobs, falling back to the handler
// defaults. Invalid values are rejected before any extraction work begins.
func (h *TranslateHandler) parseOptions(r *http.Request) (doctrans.Options, error) {
	opts := h.defaults

	if v := r.FormValue("target"); v != "" {
		opts.TargetLanguage = v
	}
	if v := r.FormValue("ocr_lang"); v != "" {
		opts.OCRLanguage = v
	}
	if v := r.FormValue("dpi"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil {
			return opts, domain.ConfigError("invalid dpi (must be an integer)", err)
		}
		opts.DPI = dpi
	}

	return opts, nil
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}

// statusForError maps the domain error taxonomy to HTTP status codes. The
// mapping lives here so the core stays free of transport concerns.
func statusForError(err error) int {
	switch domain.TypeOf(err) {
	case domain.ErrorTypeInput, domain.ErrorTypeConfig:
		return http.StatusBadRequest
	case domain.ErrorTypeEmptyExtraction:
		return http.StatusUnprocessableEntity
	case domain.ErrorTypeTranslation, domain.ErrorTypeOCR, domain.ErrorTypeIO:
		return http.StatusInternalServerError
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func (h *TranslateHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
