package generator

import (
	"context"
	"errors"
)

const (
	generateTemperature = 0.7
	generateMaxTokens   = 2000
)

// Agent 负责从主题提示或提取出的文档文本生成新文章。单次补全，不分块。
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// GenerateFromPrompt 根据用户的主题描述生成一篇完整文章。
func (a *Agent) GenerateFromPrompt(ctx context.Context, prompt string) (string, error) {
	out, err := a.llm.Complete(ctx, Prompt{
		System:      generateSystemPrompt,
		User:        prompt,
		Temperature: generateTemperature,
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return "", &UpstreamError{Step: "生成文章", Err: err}
	}
	return out, nil
}

// GenerateFromDocument 把上传文档或网页提取出的长文本总结成一篇文章。
func (a *Agent) GenerateFromDocument(ctx context.Context, text string) (string, error) {
	out, err := a.llm.Complete(ctx, Prompt{
		System:      generateSystemPrompt,
		User:        summarizeInstruction + text,
		Temperature: generateTemperature,
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return "", &UpstreamError{Step: "总结文档", Err: err}
	}
	return out, nil
}
