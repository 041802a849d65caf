package extractor

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"mvdan.cc/xurls/v2"
)

// articleContainers 常见的文章主体容器 class，按优先级尝试。
var articleContainers = []string{"article", "post", "content", "main-content", "entry-content"}

// FromURL fetches a URL and extracts its text. A URL pointing at a supported
// document (e.g. a PDF) is downloaded and decoded like an upload; anything
// else is treated as an HTML page and reduced to its article body text.
func (e *Extractor) FromURL(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", &ExtractionError{Reason: "请提供URL", BadInput: true}
	}
	if !xurls.Strict().MatchString(rawURL) {
		return "", &ExtractionError{Reason: "无效的URL", BadInput: true}
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", &ExtractionError{Reason: "无效的URL", BadInput: true, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &ExtractionError{Reason: "无效的URL", BadInput: true, Err: err}
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return "", &ExtractionError{Reason: "URL内容提取失败", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &ExtractionError{Reason: "URL内容提取失败", Err: errStatus(resp.StatusCode)}
	}

	// 下载限制在最大上传体积之内，多出的一个字节用来识别超限。
	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes+1))
	if err != nil {
		return "", &ExtractionError{Reason: "URL内容提取失败", Err: err}
	}
	if e.maxBytes > 0 && int64(len(body)) > e.maxBytes {
		return "", &ExtractionError{Reason: "文件大小超过限制", BadInput: true}
	}

	if ext := strings.ToLower(path.Ext(parsed.Path)); ext != "" && ext != ".html" && ext != ".htm" && e.extAllowed(ext) {
		return e.FromFile(body, path.Base(parsed.Path))
	}
	text, err := extractHTMLText(body)
	if err != nil {
		return "", &ExtractionError{Reason: "URL内容提取失败", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Reason: "网页没有可提取的正文"}
	}
	e.log.Debug("extracted url", zap.String("url", rawURL), zap.Int("text_len", len(text)))
	return text, nil
}

type errStatus int

func (e errStatus) Error() string { return http.StatusText(int(e)) }

// extractHTMLText 去掉脚本样式后优先取文章容器的文本，找不到则退回 body。
func extractHTMLText(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	sel := doc.Find("body")
	for _, class := range articleContainers {
		if candidate := doc.Find("." + class).First(); candidate.Length() > 0 {
			sel = candidate
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(sel.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n"), nil
}
