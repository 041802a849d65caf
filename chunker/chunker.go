// Package chunker splits long article text into model-sized segments on
// sentence boundaries.
package chunker

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLen keeps each segment comfortably inside the model's
	// effective input window.
	DefaultMaxLen = 2000

	// DefaultTerminator is the Chinese full stop used by the formatting flow.
	DefaultTerminator = '。'
)

// Chunker accumulates whole sentences into chunks of at most MaxLen runes.
type Chunker struct {
	MaxLen     int
	Terminator rune
}

// New returns a Chunker with the given rune limit and the default terminator.
func New(maxLen int) *Chunker {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Chunker{MaxLen: maxLen, Terminator: DefaultTerminator}
}

// Split cuts text into ordered chunks. Sentences are never split: a chunk is
// closed as soon as appending the next sentence would reach MaxLen. A single
// sentence longer than MaxLen becomes its own oversized chunk. Empty input
// yields no chunks.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	term := string(c.Terminator)
	parts := strings.Split(text, term)

	var chunks []string
	var cur strings.Builder
	curLen := 0

	for i, part := range parts {
		if part == "" {
			// Either the split segment after a trailing terminator or a
			// doubled terminator; neither starts a sentence.
			continue
		}
		sentence := part
		// strings.Split consumes the terminator, so it has to be restored,
		// except on a trailing fragment that never had one.
		if i < len(parts)-1 {
			sentence += term
		}
		n := utf8.RuneCountInString(sentence)
		if curLen > 0 && curLen+n >= c.MaxLen {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		cur.WriteString(sentence)
		curLen += n
	}

	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
