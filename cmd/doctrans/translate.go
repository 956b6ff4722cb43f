package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/doctrans/doctrans/internal/config"
	"github.com/doctrans/doctrans/internal/observability"
	"github.com/doctrans/doctrans/internal/ocr"
	"github.com/doctrans/doctrans/internal/pdf"
	"github.com/doctrans/doctrans/internal/translate"
	"github.com/doctrans/doctrans/pkg/doctrans"
)

var (
	translateTarget      string
	translateOCRLang     string
	translateDPI         int
	translateOutput      string
	translateConcurrency int
)

var translateCmd = &cobra.Command{
	Use:   "translate <pdf>",
	Short: "Extract and translate a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&translateTarget, "target", "t", "", "target language code (default from config)")
	translateCmd.Flags().StringVar(&translateOCRLang, "ocr-lang", "", "OCR language for scanned pages (default from config)")
	translateCmd.Flags().IntVar(&translateDPI, "dpi", 0, "render DPI for OCR rasterization (default from config)")
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "output file path (default <pdf>.<target>.txt)")
	translateCmd.Flags().IntVar(&translateConcurrency, "concurrency", 0, "parallel chunk translations (default from config)")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}

	if translateTarget != "" {
		cfg.Translation.TargetLanguage = translateTarget
	}
	if translateOCRLang != "" {
		cfg.Extraction.OCRLanguage = translateOCRLang
	}
	if translateDPI > 0 {
		cfg.Extraction.DPI = translateDPI
	}
	if translateConcurrency > 0 {
		cfg.Translation.Concurrency = translateConcurrency
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	service, closer, err := buildService(cfg, logger, true)
	if err != nil {
		return err
	}
	defer closer()

	opts := doctrans.Options{
		DPI:            cfg.Extraction.DPI,
		OCRLanguage:    cfg.Extraction.OCRLanguage,
		TargetLanguage: cfg.Translation.TargetLanguage,
	}

	fmt.Fprintf(os.Stderr, "Translating %s to %s\n", pdfPath, opts.TargetLanguage)

	result, err := service.TranslateFile(ctx, pdfPath, opts)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	outPath := translateOutput
	if outPath == "" {
		outPath = defaultOutputPath(pdfPath, opts.TargetLanguage)
	}

	if err := os.WriteFile(outPath, []byte(result), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Translation saved to %s\n", outPath)
	return nil
}

// loadEnvironment resolves configuration and a logger for CLI commands.
func loadEnvironment() (*config.Config, *observability.Logger, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Observability.LogLevel
	if verbose {
		level = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      "console",
		ServiceName: "doctrans",
	})
	if !verbose {
		logger = observability.Nop()
	}

	return cfg, logger, nil
}

// buildService wires the extraction and translation pipeline from config.
// The returned closer releases the OCR client.
func buildService(cfg *config.Config, logger *observability.Logger, showProgress bool) (*doctrans.Service, func(), error) {
	recognizer := ocr.New()

	extractorOpts := []pdf.ExtractorOption{
		pdf.WithNativeTextThreshold(cfg.Extraction.NativeTextThreshold),
	}
	if showProgress {
		var bar *progressbar.ProgressBar
		extractorOpts = append(extractorOpts, pdf.WithProgress(func(done, total int) {
			if bar == nil {
				bar = newPageBar(total)
			}
			_ = bar.Set(done)
		}))
	}
	extractor := pdf.NewExtractor(recognizer, logger, extractorOpts...)

	var clientOpts []translate.ClientOption
	if cfg.Translation.Endpoint != "" {
		clientOpts = append(clientOpts, translate.WithEndpoint(cfg.Translation.Endpoint))
	}
	translator := translate.NewClient(logger, clientOpts...)

	orchestrator := translate.NewOrchestrator(translator, logger,
		translate.WithMaxChunkLen(cfg.Translation.MaxChunkLen),
		translate.WithConcurrency(cfg.Translation.Concurrency))

	service := doctrans.NewService(extractor, orchestrator, logger)
	closer := func() {
		_ = recognizer.Close()
	}
	return service, closer, nil
}

func newPageBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Extracting pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func defaultOutputPath(pdfPath, target string) string {
	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	return fmt.Sprintf("%s.%s.txt", base, target)
}
