package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
)

// maxUploadSize is the size above which a PDF is only warned about, not
// rejected.
const maxUploadSize = 100 * 1024 * 1024 // 100MB

// Validator provides input validation for PDF files.
type Validator struct {
	logger *observability.Logger
}

// NewValidator creates a new validator instance.
func NewValidator(logger *observability.Logger) *Validator {
	return &Validator{logger: logger.WithComponent("validate")}
}

// ValidatePDFPath validates that a file path is valid and points to a PDF.
func (v *Validator) ValidatePDFPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.InputError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.InputError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.InputError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.InputError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return domain.InputError(fmt.Sprintf("file is not a PDF (has extension %q)", ext), nil)
	}

	if info.Size() > maxUploadSize {
		v.logger.Warn().Int64("size_mb", info.Size()/(1024*1024)).Msg("PDF file is very large, processing may take a while")
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.InputError(fmt.Sprintf("cannot open file: %s", path), err)
	}
	file.Close()

	return nil
}
