package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/chunker"
)

const formatTemperature = 0.6

// Formatter 将长文章分块排版后按原顺序重新拼接。
type Formatter struct {
	llm LLMClient
	ck  *chunker.Chunker
}

func NewFormatter(llm LLMClient, ck *chunker.Chunker) (*Formatter, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if ck == nil {
		ck = chunker.New(chunker.DefaultMaxLen)
	}
	return &Formatter{llm: llm, ck: ck}, nil
}

// Format reformats content chunk by chunk, strictly in order. Any failed
// chunk fails the whole operation; no partial result is returned.
func (f *Formatter) Format(ctx context.Context, content string) (string, error) {
	chunks := f.ck.Split(content)
	if len(chunks) == 0 {
		return "", nil
	}

	formatted := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := f.llm.Complete(ctx, Prompt{
			System:      FormatSystemPrompt(i+1, len(chunks)),
			User:        chunk,
			Temperature: formatTemperature,
		})
		if err != nil {
			return "", &UpstreamError{
				Step: fmt.Sprintf("处理第%d/%d块文本", i+1, len(chunks)),
				Err:  err,
			}
		}
		formatted = append(formatted, out)
	}

	// 仅用换行拼接，不做跨块合并；块间风格差异由提示词约束。
	return strings.Join(formatted, "\n"), nil
}
