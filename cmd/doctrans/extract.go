package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doctrans/doctrans/pkg/doctrans"
)

var (
	extractOCRLang string
	extractDPI     int
	extractOutput  string
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract text from a PDF without translating it",
	Long: `Extract text from a PDF page by page, using OCR for pages with
little or no embedded text, and print the result with page markers.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractOCRLang, "ocr-lang", "", "OCR language for scanned pages (default from config)")
	extractCmd.Flags().IntVar(&extractDPI, "dpi", 0, "render DPI for OCR rasterization (default from config)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}

	if extractOCRLang != "" {
		cfg.Extraction.OCRLanguage = extractOCRLang
	}
	if extractDPI > 0 {
		cfg.Extraction.DPI = extractDPI
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	service, closer, err := buildService(cfg, logger, extractOutput != "")
	if err != nil {
		return err
	}
	defer closer()

	opts := doctrans.Options{
		DPI:            cfg.Extraction.DPI,
		OCRLanguage:    cfg.Extraction.OCRLanguage,
		TargetLanguage: cfg.Translation.TargetLanguage,
	}

	text, err := service.ExtractFile(ctx, pdfPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractOutput == "" {
		fmt.Println(text)
		return nil
	}

	if err := os.WriteFile(extractOutput, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Extracted text saved to %s\n", extractOutput)
	return nil
}
