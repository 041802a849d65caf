package publisher

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "短标题", truncateRunes("短标题", 64))
	long := strings.Repeat("标", 100)
	cut := truncateRunes(long, 64)
	assert.Equal(t, 64, utf8.RuneCountInString(cut))
}

func TestClampContentWithinLimitUnchanged(t *testing.T) {
	content := "第一句。第二句。"
	assert.Equal(t, content, clampContent(content, 20000))
}

func TestClampContentCutsAtSentenceBoundary(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("这是一个完整的句子。")
	}
	clamped := clampContent(sb.String(), 95)
	require.True(t, strings.HasSuffix(clamped, omissionNotice))
	body := strings.TrimSuffix(clamped, omissionNotice)
	assert.True(t, strings.HasSuffix(body, "。"), "truncated content must end on a sentence boundary")
	assert.LessOrEqual(t, utf8.RuneCountInString(body), 95)
}

func TestClampContentNoTerminatorHardCut(t *testing.T) {
	content := strings.Repeat("无句号的长文本", 100)
	clamped := clampContent(content, 50)
	require.True(t, strings.HasSuffix(clamped, omissionNotice))
	body := strings.TrimSuffix(clamped, omissionNotice)
	assert.Equal(t, 50, utf8.RuneCountInString(body))
}

func TestDeriveDigestShortContent(t *testing.T) {
	digest := deriveDigest("<p>简短的内容。</p>", digestLimit)
	assert.Equal(t, "简短的内容。", digest)
}

func TestDeriveDigestLongContentExactly120(t *testing.T) {
	content := "<p>" + strings.Repeat("摘", 300) + "</p>"
	digest := deriveDigest(content, digestLimit)
	assert.Equal(t, digestLimit, utf8.RuneCountInString(digest))
	assert.True(t, strings.HasSuffix(digest, ellipsis))
	assert.NotContains(t, digest, "<p>")
}

func TestClampDigest(t *testing.T) {
	assert.Equal(t, "已经够短", clampDigest("已经够短", digestLimit))

	long := strings.Repeat("长", 200)
	clamped := clampDigest(long, digestLimit)
	assert.Equal(t, digestLimit, utf8.RuneCountInString(clamped))
	assert.True(t, strings.HasSuffix(clamped, ellipsis))

	exact := strings.Repeat("整", digestLimit)
	assert.Equal(t, exact, clampDigest(exact, digestLimit))
}

func TestRestoreEscapes(t *testing.T) {
	p := &Publisher{log: zap.NewNop()}
	assert.Equal(t, "普通文本", p.restoreEscapes("普通文本"))
	assert.Equal(t, "你好", p.restoreEscapes("\\u4f60\\u597d"))
	// 混合内容只解码转义序列，其余原样保留。
	assert.Equal(t, "A你B", p.restoreEscapes("A\\u4f60B"))
	// 不完整的序列不动。
	assert.Equal(t, "残缺\\u12", p.restoreEscapes("残缺\\u12"))
}

func TestNormalizeForWeChat(t *testing.T) {
	html, err := mdToHTML("# 标题\n\n- 第一项\n- 第二项\n")
	require.NoError(t, err)
	out := normalizeForWeChat(html)
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<ul>")
	assert.Contains(t, out, "font-size:24px")
	assert.Contains(t, out, "• 第一项")
}
