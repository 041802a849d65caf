package extractor

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls the plain text of every page, pages separated by a
// newline.
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("PDF文件处理失败: %w", err)
	}

	var buf bytes.Buffer
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("PDF第%d页提取失败: %w", i, err)
		}
		buf.WriteString(text)
		if i < total {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}
