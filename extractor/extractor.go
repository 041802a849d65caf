// Package extractor turns uploaded documents and web pages into plain text
// for downstream summarization.
package extractor

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lu4p/cat"
	"go.uber.org/zap"
)

// ExtractionError reports a failed extraction. BadInput marks caller mistakes
// (unsupported type, oversized upload, malformed URL) so the HTTP boundary
// can answer 400 instead of 500.
type ExtractionError struct {
	Reason   string
	BadInput bool
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor extracts plain text from uploaded files and remote URLs.
type Extractor struct {
	allowed  map[string]struct{}
	maxBytes int64
	client   *http.Client
	log      *zap.Logger
}

// New builds an Extractor. Extensions are given without the leading dot
// (e.g. "pdf"); maxBytes bounds both uploads and URL downloads.
func New(allowedExts []string, maxBytes int64, logger *zap.Logger) *Extractor {
	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		allowed:  allowed,
		maxBytes: maxBytes,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      logger,
	}
}

func (e *Extractor) extAllowed(ext string) bool {
	_, ok := e.allowed[strings.TrimPrefix(ext, ".")]
	return ok
}

// FromFile extracts text from uploaded file bytes. The extension decides the
// decoder: PDF and office formats are parsed from the binary; everything else
// is treated as UTF-8 plain text.
func (e *Extractor) FromFile(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !e.extAllowed(ext) {
		return "", &ExtractionError{Reason: "不支持的文件类型", BadInput: true}
	}
	if e.maxBytes > 0 && int64(len(data)) > e.maxBytes {
		return "", &ExtractionError{Reason: "文件大小超过限制", BadInput: true}
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx", ".odt", ".rtf":
		text, err = extractOffice(data, ext)
	default:
		text = extractPlain(data)
	}
	if err != nil {
		return "", &ExtractionError{Reason: "文件内容提取失败", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Reason: "文件内容为空", BadInput: true}
	}
	e.log.Debug("extracted file",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
		zap.Int("text_len", len(text)))
	return text, nil
}

// extractOffice parses docx/odt/rtf. cat works on paths, so the bytes go
// through a temp file.
func extractOffice(data []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	return cat.File(tmp.Name())
}

// extractPlain returns content as string, replacing invalid UTF-8 sequences.
func extractPlain(data []byte) string {
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(data)
}
