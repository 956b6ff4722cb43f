package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_EmptyInput(t *testing.T) {
	assert.Empty(t, Split("", 4500))
	assert.Empty(t, Split("   \n\n  \n\n ", 4500))
}

func TestSplit_SingleShortParagraph(t *testing.T) {
	chunks := Split("hello world", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplit_ParagraphsAreTrimmed(t *testing.T) {
	chunks := Split("  first  \n\n\n\n  second  ", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "first\n\nsecond", chunks[0])
}

func TestSplit_GreedyAccumulation(t *testing.T) {
	// Lengths 2000, 3000, 1000 at maxLen 4500: P1 flushed alone because
	// 2000+3000+2 > 4500, then P2+P3 fit together (3000+1000+2 = 4002).
	p1 := strings.Repeat("a", 2000)
	p2 := strings.Repeat("b", 3000)
	p3 := strings.Repeat("c", 1000)

	chunks := Split(p1+"\n\n"+p2+"\n\n"+p3, 4500)
	require.Len(t, chunks, 2)
	assert.Equal(t, p1, chunks[0])
	assert.Equal(t, p2+"\n\n"+p3, chunks[1])
	assert.Len(t, chunks[1], 4002)
}

func TestSplit_HardSplitOversizedParagraph(t *testing.T) {
	p := strings.Repeat("x", 10000)

	chunks := Split(p, 4500)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 4500)
	assert.Len(t, chunks[1], 4500)
	assert.Len(t, chunks[2], 1000)
	assert.Equal(t, p, strings.Join(chunks, ""))
}

func TestSplit_HardSplitFlushesPendingBuffer(t *testing.T) {
	small := strings.Repeat("s", 10)
	big := strings.Repeat("b", 25)
	tail := strings.Repeat("t", 4)

	chunks := Split(small+"\n\n"+big+"\n\n"+tail, 10)
	require.Len(t, chunks, 5)
	assert.Equal(t, small, chunks[0])
	assert.Equal(t, strings.Repeat("b", 10), chunks[1])
	assert.Equal(t, strings.Repeat("b", 10), chunks[2])
	assert.Equal(t, strings.Repeat("b", 5), chunks[3])
	// The paragraph after a hard split starts a fresh buffer.
	assert.Equal(t, tail, chunks[4])
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	inputs := []string{
		strings.Repeat("a", 3) + "\n\n" + strings.Repeat("b", 7) + "\n\n" + strings.Repeat("c", 11),
		strings.Repeat("long ", 500),
		"one\n\ntwo\n\nthree\n\nfour\n\nfive",
	}
	for _, input := range inputs {
		for _, maxLen := range []int{1, 2, 5, 10, 100} {
			for _, c := range Split(input, maxLen) {
				assert.LessOrEqual(t, len([]rune(c)), maxLen)
				assert.NotEmpty(t, c)
			}
		}
	}
}

func TestSplit_ParagraphPreservation(t *testing.T) {
	input := "alpha\n\nbeta gamma\n\n  delta  \n\nepsilon\nzeta\n\neta"
	want := []string{"alpha", "beta gamma", "delta", "epsilon\nzeta", "eta"}

	for _, maxLen := range []int{12, 20, 100} {
		chunks := Split(input, maxLen)

		// Re-split the chunks on blank lines: every original paragraph must
		// come back exactly once, in order.
		var got []string
		for _, c := range chunks {
			got = append(got, strings.Split(c, "\n\n")...)
		}
		assert.Equal(t, want, got, "maxLen=%d", maxLen)
	}
}

func TestSplit_MultibyteHardSplitKeepsRunesIntact(t *testing.T) {
	p := strings.Repeat("宇", 25)

	chunks := Split(p, 10)
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("宇", 10), chunks[0])
	assert.Equal(t, strings.Repeat("宇", 10), chunks[1])
	assert.Equal(t, strings.Repeat("宇", 5), chunks[2])
	assert.Equal(t, p, strings.Join(chunks, ""))
}

func TestSplit_ExactFit(t *testing.T) {
	// Two paragraphs that exactly fill a chunk including the separator.
	p1 := strings.Repeat("a", 4)
	p2 := strings.Repeat("b", 4)

	chunks := Split(p1+"\n\n"+p2, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, p1+"\n\n"+p2, chunks[0])
}
