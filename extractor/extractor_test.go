package extractor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor(maxBytes int64) *Extractor {
	return New([]string{"pdf", "txt", "md", "docx"}, maxBytes, zap.NewNop())
}

func TestFromFilePlainText(t *testing.T) {
	e := newTestExtractor(1 << 20)
	text, err := e.FromFile([]byte("这是一份纯文本文档。"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "这是一份纯文本文档。", text)
}

func TestFromFileUnsupportedExtension(t *testing.T) {
	e := newTestExtractor(1 << 20)
	_, err := e.FromFile([]byte("x"), "payload.exe")
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.True(t, exErr.BadInput)
	assert.Contains(t, exErr.Error(), "不支持的文件类型")
}

func TestFromFileOversized(t *testing.T) {
	e := newTestExtractor(8)
	_, err := e.FromFile(bytes.Repeat([]byte("a"), 9), "big.txt")
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.True(t, exErr.BadInput)
	assert.Contains(t, exErr.Error(), "文件大小超过限制")
}

func TestFromFileEmptyContent(t *testing.T) {
	e := newTestExtractor(1 << 20)
	_, err := e.FromFile([]byte("   \n"), "empty.txt")
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.True(t, exErr.BadInput)
}

func TestFromFileInvalidUTF8Replaced(t *testing.T) {
	e := newTestExtractor(1 << 20)
	text, err := e.FromFile([]byte{0x41, 0xff, 0x42}, "raw.txt")
	require.NoError(t, err)
	assert.Contains(t, text, "A")
	assert.Contains(t, text, "B")
}

func TestFromURLExtractsArticleContainer(t *testing.T) {
	page := `<html><head><title>t</title><style>p{color:red}</style></head>
<body>
<script>var ignored = 1;</script>
<div class="sidebar">导航菜单</div>
<div class="entry-content"><p>正文第一段。</p><p>正文第二段。</p></div>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	e := newTestExtractor(1 << 20)
	text, err := e.FromURL(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Contains(t, text, "正文第一段。")
	assert.Contains(t, text, "正文第二段。")
	assert.NotContains(t, text, "导航菜单")
	assert.NotContains(t, text, "ignored")
}

func TestFromURLFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>没有容器的页面正文。</p></body></html>`))
	}))
	defer srv.Close()

	e := newTestExtractor(1 << 20)
	text, err := e.FromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "没有容器的页面正文。")
}

func TestFromURLInvalid(t *testing.T) {
	e := newTestExtractor(1 << 20)
	for _, bad := range []string{"", "not-a-url", "ftp://example.com/x"} {
		_, err := e.FromURL(context.Background(), bad)
		var exErr *ExtractionError
		require.ErrorAs(t, err, &exErr, "url %q", bad)
		assert.True(t, exErr.BadInput, "url %q", bad)
	}
}

func TestFromURLUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := newTestExtractor(1 << 20)
	_, err := e.FromURL(context.Background(), srv.URL)
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.False(t, exErr.BadInput)
}
