package generator

import (
	"context"
	"fmt"
)

// Prompt 表示一次发送给模型的 system + user 消息对。
type Prompt struct {
	System      string
	User        string
	Temperature float64
	// MaxTokens caps the generated output; zero means no cap.
	MaxTokens int64
}

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Model   string
	APIKey  string
	BaseURL string
}

// UpstreamError reports a failed exchange with the model endpoint, after
// retries were exhausted or the payload was unusable. Step names the
// operation (and chunk ordinal, for formatting) that failed.
type UpstreamError struct {
	Step string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
