package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text on paragraph boundaries, falling back to sentences
// for paragraphs longer than maxChunkSize runes. Each chunk after the first
// starts with the last overlap runes of its predecessor.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	c := &chunkAccumulator{maxSize: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) > maxChunkSize {
			for _, sentence := range splitIntoSentences(para) {
				c.add(sentence, " ")
			}
			continue
		}

		c.add(para, "\n\n")
	}

	return c.finish()
}

type chunkAccumulator struct {
	maxSize int
	overlap int
	chunks  []string
	current strings.Builder
	size    int
}

func (c *chunkAccumulator) add(piece, sep string) {
	pieceLen := utf8.RuneCountInString(piece)

	if c.size > 0 && c.size+pieceLen+utf8.RuneCountInString(sep) > c.maxSize {
		prev := c.current.String()
		c.chunks = append(c.chunks, prev)
		c.current.Reset()
		c.size = 0

		if tail := lastNRunes(prev, c.overlap); tail != "" {
			c.write(tail)
		}
	}

	if c.size > 0 {
		c.write(sep)
	}
	c.write(piece)
}

func (c *chunkAccumulator) write(s string) {
	c.current.WriteString(s)
	c.size += utf8.RuneCountInString(s)
}

func (c *chunkAccumulator) finish() []string {
	if c.size > 0 {
		c.chunks = append(c.chunks, c.current.String())
	}
	return c.chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
