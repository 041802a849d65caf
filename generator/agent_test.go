package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLLM struct{}

func (failingLLM) Complete(context.Context, Prompt) (string, error) {
	return "", errors.New("upstream down")
}

func TestGenerateFromPrompt(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{"生成的文章"}}
	a, err := NewAgent(llm)
	require.NoError(t, err)

	out, err := a.GenerateFromPrompt(context.Background(), "写一篇关于秋天的文章")
	require.NoError(t, err)
	assert.Equal(t, "生成的文章", out)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0].System, "公众号文章写手")
	assert.Equal(t, "写一篇关于秋天的文章", llm.prompts[0].User)
	assert.EqualValues(t, generateMaxTokens, llm.prompts[0].MaxTokens)
}

func TestGenerateFromDocumentPrefixesInstruction(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{"总结文章"}}
	a, err := NewAgent(llm)
	require.NoError(t, err)

	out, err := a.GenerateFromDocument(context.Background(), "提取出的文档正文")
	require.NoError(t, err)
	assert.Equal(t, "总结文章", out)
	assert.Contains(t, llm.prompts[0].User, summarizeInstruction)
	assert.Contains(t, llm.prompts[0].User, "提取出的文档正文")
}

func TestAgentWrapsUpstreamError(t *testing.T) {
	a, err := NewAgent(failingLLM{})
	require.NoError(t, err)

	_, err = a.GenerateFromPrompt(context.Background(), "主题")
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "生成文章", upErr.Step)

	_, err = a.GenerateFromDocument(context.Background(), "正文")
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "总结文档", upErr.Step)
}

func TestNewAgentRequiresLLM(t *testing.T) {
	_, err := NewAgent(nil)
	assert.Error(t, err)
}
