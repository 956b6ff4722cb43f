package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
)

// fakeTranslator echoes chunks with a prefix and records every call.
type fakeTranslator struct {
	mu      sync.Mutex
	calls   []string
	delays  map[string]time.Duration
	failOn  string
	failErr error
}

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	delay := f.delays[text]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.failOn != "" && text == f.failOn {
		if f.failErr != nil {
			return "", f.failErr
		}
		return "", errors.New("translate failed")
	}
	return target + ":" + text, nil
}

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestOrchestrator(ft *fakeTranslator, opts ...OrchestratorOption) *Orchestrator {
	return NewOrchestrator(ft, observability.Nop(), opts...)
}

func TestOrchestratorTranslate_EmptyInputSkipsTranslator(t *testing.T) {
	ft := &fakeTranslator{}
	o := newTestOrchestrator(ft)

	for _, in := range []string{"", "   ", "\n\n\t\n\n"} {
		out, err := o.Translate(context.Background(), in, "fr")
		require.NoError(t, err)
		assert.Empty(t, out)
	}
	assert.Zero(t, ft.callCount(), "translator must not be invoked for empty input")
}

func TestOrchestratorTranslate_SingleChunk(t *testing.T) {
	ft := &fakeTranslator{}
	o := newTestOrchestrator(ft)

	out, err := o.Translate(context.Background(), "hello world", "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr:hello world", out)
}

func TestOrchestratorTranslate_MultipleChunksJoined(t *testing.T) {
	ft := &fakeTranslator{}
	o := newTestOrchestrator(ft, WithMaxChunkLen(5))

	out, err := o.Translate(context.Background(), "aaaa\n\nbbbb\n\ncccc", "de")
	require.NoError(t, err)
	assert.Equal(t, "de:aaaa\n\nde:bbbb\n\nde:cccc", out)
}

func TestOrchestratorTranslate_ParallelPreservesOrder(t *testing.T) {
	// The first chunk finishes last; output order must still follow source
	// order.
	ft := &fakeTranslator{delays: map[string]time.Duration{
		"aaaa": 50 * time.Millisecond,
	}}
	o := newTestOrchestrator(ft, WithMaxChunkLen(5), WithConcurrency(4))

	out, err := o.Translate(context.Background(), "aaaa\n\nbbbb\n\ncccc\n\ndddd", "es")
	require.NoError(t, err)
	assert.Equal(t, "es:aaaa\n\nes:bbbb\n\nes:cccc\n\nes:dddd", out)
}

func TestOrchestratorTranslate_FailureAbortsWithoutPartialOutput(t *testing.T) {
	ft := &fakeTranslator{failOn: "bbbb"}
	o := newTestOrchestrator(ft, WithMaxChunkLen(5))

	out, err := o.Translate(context.Background(), "aaaa\n\nbbbb\n\ncccc", "fr")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, domain.ErrorTypeTranslation, domain.TypeOf(err))
	assert.Contains(t, err.Error(), "chunk 2 of 3")
	// Sequential mode stops at the failing chunk.
	assert.Equal(t, 2, ft.callCount())
}

func TestOrchestratorTranslate_ParallelFailureAborts(t *testing.T) {
	ft := &fakeTranslator{failOn: "bbbb"}
	o := newTestOrchestrator(ft, WithMaxChunkLen(5), WithConcurrency(3))

	out, err := o.Translate(context.Background(), "aaaa\n\nbbbb\n\ncccc", "fr")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, domain.ErrorTypeTranslation, domain.TypeOf(err))
}

func TestOrchestratorTranslate_ContextCancellation(t *testing.T) {
	ft := &fakeTranslator{}
	o := newTestOrchestrator(ft)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Translate(ctx, "some text", "fr")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrchestratorTranslate_LongDocumentChunkCount(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("paragraph %02d %s", i, strings.Repeat("w", 400)))
	}
	text := strings.Join(paragraphs, "\n\n")

	ft := &fakeTranslator{}
	o := newTestOrchestrator(ft, WithMaxChunkLen(4500))

	out, err := o.Translate(context.Background(), text, "fr")
	require.NoError(t, err)
	assert.Greater(t, ft.callCount(), 1, "a long document must be split across requests")
	for i := 0; i < 20; i++ {
		assert.Contains(t, out, fmt.Sprintf("paragraph %02d", i))
	}
}
