// Package chunk splits extracted text into translator-friendly pieces.
//
// The translation collaborator imposes a bounded maximum input length, so
// long documents must be submitted in chunks. Splitting prefers paragraph
// boundaries (blank lines) and only cuts inside a paragraph when that
// paragraph alone exceeds the limit.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// Separator joins paragraphs inside a chunk and chunk translations in the
// reassembled output.
const Separator = "\n\n"

// separatorOverhead is the length Separator contributes when a paragraph is
// appended to a non-empty buffer.
const separatorOverhead = len(Separator)

// Split breaks text into ordered chunks of at most maxLen characters,
// preferring paragraph boundaries. A single paragraph longer than maxLen is
// hard-split into consecutive maxLen-sized slices (shorter tail). Lengths
// are measured in runes so a hard split never lands inside a UTF-8 sequence.
//
// Every paragraph of the input appears in exactly one chunk (or, when
// hard-split, in a run of consecutive chunks whose concatenation restores
// it), in original order.
func Split(text string, maxLen int) []string {
	if text == "" || maxLen <= 0 {
		return nil
	}

	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	var buf []string
	cur := 0 // rune length of strings.Join(buf, Separator)

	flush := func() {
		if len(buf) > 0 {
			chunks = append(chunks, strings.Join(buf, Separator))
			buf, cur = nil, 0
		}
	}

	for _, p := range paragraphs {
		plen := runeLen(p)

		// A paragraph that can never fit on its own is hard-split.
		if plen > maxLen {
			flush()
			chunks = append(chunks, hardSplit(p, maxLen)...)
			continue
		}

		need := plen
		if len(buf) > 0 {
			need += cur + separatorOverhead
		}
		if need <= maxLen {
			buf = append(buf, p)
			cur = need
		} else {
			flush()
			buf = append(buf, p)
			cur = plen
		}
	}

	flush()
	return chunks
}

// splitParagraphs splits on blank-line boundaries, trims each paragraph and
// drops empty ones.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, Separator)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// hardSplit cuts an oversized paragraph into consecutive maxLen-rune slices.
func hardSplit(p string, maxLen int) []string {
	runes := []rune(p)
	slices := make([]string, 0, (len(runes)+maxLen-1)/maxLen)
	for start := 0; start < len(runes); start += maxLen {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		slices = append(slices, string(runes[start:end]))
	}
	return slices
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
