package publisher

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var (
	headingRe   = regexp.MustCompile(`(?s)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	orderedRe   = regexp.MustCompile(`(?s)<ol[^>]*>(.*?)</ol>`)
	unorderedRe = regexp.MustCompile(`(?s)<ul[^>]*>(.*?)</ul>`)
	listItemRe  = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)
)

var headingSizes = map[string]string{
	"1": "24px",
	"2": "22px",
	"3": "20px",
	"4": "18px",
	"5": "16px",
	"6": "15px",
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// 微信编辑器会弱化标题和列表标签：标题样式丢失、有序列表被合并。
// 上传前把标题转成带字号的段落、把列表展开成普通段落。
func normalizeForWeChat(html string) string {
	html = headingRe.ReplaceAllStringFunc(html, func(block string) string {
		parts := headingRe.FindStringSubmatch(block)
		if len(parts) != 3 {
			return block
		}
		size := headingSizes[parts[1]]
		if size == "" {
			size = "18px"
		}
		text := strings.TrimSpace(parts[2])
		return fmt.Sprintf(`<p style="font-size:%s;font-weight:700;margin:1em 0 0.6em;">%s</p>`, size, text)
	})

	html = orderedRe.ReplaceAllStringFunc(html, func(block string) string {
		items := listItemRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		for i, item := range items {
			fmt.Fprintf(&b, "<p>%d. %s</p>", i+1, strings.TrimSpace(item[1]))
		}
		return b.String()
	})

	html = unorderedRe.ReplaceAllStringFunc(html, func(block string) string {
		items := listItemRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "<p>• %s</p>", strings.TrimSpace(item[1]))
		}
		return b.String()
	})

	return html
}
