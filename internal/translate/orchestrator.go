package translate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/doctrans/doctrans/internal/chunk"
	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
)

// Orchestrator chunks a document's text, drives the translation capability
// over each chunk and reassembles the translations in source order.
type Orchestrator struct {
	translator  domain.Translator
	maxChunkLen int
	concurrency int
	logger      *observability.Logger
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithMaxChunkLen overrides the per-chunk length bound. The default stays
// with margin under the translation service's request-size limit.
func WithMaxChunkLen(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.maxChunkLen = n
	}
}

// WithConcurrency bounds the number of simultaneously in-flight chunk
// translations. 1 translates strictly sequentially.
func WithConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.concurrency = n
	}
}

// NewOrchestrator creates an orchestrator over the given translation
// capability.
func NewOrchestrator(translator domain.Translator, logger *observability.Logger, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		translator:  translator,
		maxChunkLen: domain.DefaultMaxChunkLen,
		concurrency: 1,
		logger:      logger.WithComponent("orchestrate"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Translate translates text to the target language. Empty input returns an
// empty string without invoking the translator. The output joins the chunk
// translations with a blank-line separator, in the order of their source
// chunks regardless of completion order. A failure on any chunk aborts the
// whole operation; no partial output is returned.
func (o *Orchestrator) Translate(ctx context.Context, text, target string) (string, error) {
	chunks := chunk.Split(text, o.maxChunkLen)
	if len(chunks) == 0 {
		return "", nil
	}

	o.logger.Debug().Int("chunks", len(chunks)).Str("target", target).Msg("Translating chunks")

	var (
		results []string
		err     error
	)
	if o.concurrency > 1 && len(chunks) > 1 {
		results, err = o.translateParallel(ctx, chunks, target)
	} else {
		results, err = o.translateSequential(ctx, chunks, target)
	}
	if err != nil {
		return "", err
	}

	return strings.Join(results, chunk.Separator), nil
}

func (o *Orchestrator) translateSequential(ctx context.Context, chunks []string, target string) ([]string, error) {
	results := make([]string, len(chunks))
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		translated, err := o.translator.Translate(ctx, c, SourceAuto, target)
		if err != nil {
			return nil, domain.TranslationError(fmt.Sprintf("failed to translate chunk %d of %d", i+1, len(chunks)), err)
		}
		results[i] = translated
	}
	return results, nil
}

// translateParallel runs a bounded worker pool over the chunks. Results are
// stored by source index, so output order never depends on completion order.
func (o *Orchestrator) translateParallel(ctx context.Context, chunks []string, target string) ([]string, error) {
	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type workItem struct {
		index int
		text  string
	}

	workChan := make(chan workItem, len(chunks))
	for i, c := range chunks {
		workChan <- workItem{index: i, text: c}
	}
	close(workChan)

	results := make([]string, len(chunks))
	errChan := make(chan error, len(chunks))
	var wg sync.WaitGroup

	workers := o.concurrency
	if workers > len(chunks) {
		workers = len(chunks)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				if poolCtx.Err() != nil {
					return
				}
				translated, err := o.translator.Translate(poolCtx, item.text, SourceAuto, target)
				if err != nil {
					errChan <- domain.TranslationError(fmt.Sprintf("failed to translate chunk %d of %d", item.index+1, len(chunks)), err)
					cancel() // first failure stops the pool
					return
				}
				results[item.index] = translated
			}
		}()
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
