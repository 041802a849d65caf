package publisher

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	contentTerminator = "。"
	omissionNotice    = "\n...(由于内容长度限制，部分内容已省略)"
	ellipsis          = "..."
)

var (
	markupTagRe  = regexp.MustCompile(`<[^>]*>`)
	unicodeEscRe = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
)

// truncateRunes hard-cuts s to at most limit runes.
func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// clampContent cuts over-long content at the last full sentence inside limit
// and appends an explicit omission notice. Content within the limit passes
// through unchanged.
func clampContent(content string, limit int) string {
	r := []rune(content)
	if len(r) <= limit {
		return content
	}
	cut := string(r[:limit])
	if idx := strings.LastIndex(cut, contentTerminator); idx >= 0 {
		cut = cut[:idx+len(contentTerminator)]
	}
	return cut + omissionNotice
}

// deriveDigest builds the summary from content with markup stripped: the
// first limit runes, with the last three replaced by an ellipsis when the
// source is at least limit runes long.
func deriveDigest(content string, limit int) string {
	plain := strings.TrimSpace(markupTagRe.ReplaceAllString(content, ""))
	r := []rune(plain)
	if len(r) < limit {
		return plain
	}
	return string(r[:limit-len(ellipsis)]) + ellipsis
}

// clampDigest re-truncates a caller-supplied digest to the limit with the
// same ellipsis rule.
func clampDigest(digest string, limit int) string {
	r := []rune(digest)
	if len(r) <= limit {
		return digest
	}
	return string(r[:limit-len(ellipsis)]) + ellipsis
}

// restoreEscapes decodes literal \uXXXX sequences that upstream JSON handling
// sometimes leaves in generated text. Sequences that fail to parse are kept
// as-is; decoding problems never abort a publish.
func (p *Publisher) restoreEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	decoded := unicodeEscRe.ReplaceAllStringFunc(s, func(m string) string {
		v, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			p.log.Warn("escape decode failed, keeping original", zap.String("seq", m))
			return m
		}
		return string(rune(v))
	})
	return decoded
}
