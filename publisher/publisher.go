// Package publisher submits finished articles to the WeChat draft store,
// managing the expiring access token and the platform's content limits.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.weixin.qq.com"
	tokenPath      = "/cgi-bin/token"
	addDraftPath   = "/cgi-bin/draft/add"

	titleLimit  = 64
	digestLimit = 120

	// Token 有效期由平台返回（通常 7200 秒），预留 200 秒提前刷新。
	tokenSafetyMargin = 200 * time.Second
	fallbackLifetime  = 7200 * time.Second

	defaultAuthor = "AI助手"
)

// Config holds the WeChat app credentials and platform limits.
type Config struct {
	AppID     string
	AppSecret string
	// BaseURL overrides the WeChat API host, mainly for tests.
	BaseURL string
	// DefaultThumbMediaID is used when a publish request carries no cover.
	DefaultThumbMediaID string
	// MaxContentLen bounds draft content in runes; over-long content is cut
	// at a sentence boundary.
	MaxContentLen int
	Author        string
}

// PublishParams describes one draft to create.
type PublishParams struct {
	Title        string
	Content      string
	Digest       string
	ThumbMediaID string
	// Markdown marks Content as markdown to be rendered to WeChat-friendly
	// HTML before submission.
	Markdown bool
}

// AuthError reports an access-token fetch rejected by the platform.
type AuthError struct {
	Code int
	Msg  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("获取access_token失败: %d %s", e.Code, e.Msg)
}

// PublishError reports a draft submission rejected by the platform.
type PublishError struct {
	Code int
	Msg  string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("添加草稿失败: %d %s", e.Code, e.Msg)
}

type accessTokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

type addDraftResp struct {
	MediaID string `json:"media_id"`
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

type article struct {
	Title              string `json:"title"`
	Author             string `json:"author"`
	Digest             string `json:"digest"`
	Content            string `json:"content"`
	ThumbMediaID       string `json:"thumb_media_id,omitempty"`
	NeedOpenComment    int    `json:"need_open_comment"`
	OnlyFansCanComment int    `json:"only_fans_can_comment"`
}

type addDraftPayload struct {
	Articles []article `json:"articles"`
}

// Publisher owns the cached access token and the draft submission flow.
// The token is refreshed lazily on the first call after expiry.
type Publisher struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger

	// Go 的 HTTP server 并发处理请求，缓存必须加锁；重复刷新无害，
	// 但写入不能竞争。
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	now func() time.Time
}

// New creates a Publisher. The token is not fetched until first use.
func New(cfg Config, client *http.Client, logger *zap.Logger) (*Publisher, error) {
	if cfg.AppID == "" || cfg.AppSecret == "" {
		return nil, errors.New("config must include app_id and app_secret")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxContentLen <= 0 {
		cfg.MaxContentLen = 20000
	}
	if cfg.Author == "" {
		cfg.Author = defaultAuthor
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		cfg:    cfg,
		client: client,
		log:    logger,
		now:    time.Now,
	}, nil
}

// getToken returns the cached token when still valid, otherwise fetches a
// fresh one and caches it with the platform-declared lifetime minus a margin.
func (p *Publisher) getToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+tokenPath, nil)
	if err != nil {
		return "", err
	}
	q := req.URL.Query()
	q.Set("grant_type", "client_credential")
	q.Set("appid", p.cfg.AppID)
	q.Set("secret", p.cfg.AppSecret)
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("获取access_token请求失败: %w", err)
	}
	defer resp.Body.Close()

	var data accessTokenResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("获取access_token响应解析失败: %w", err)
	}
	if data.AccessToken == "" {
		return "", &AuthError{Code: data.ErrCode, Msg: data.ErrMsg}
	}

	lifetime := time.Duration(data.ExpiresIn) * time.Second
	if lifetime <= 0 {
		lifetime = fallbackLifetime
	}
	p.token = data.AccessToken
	p.tokenExpiry = p.now().Add(lifetime - tokenSafetyMargin)
	p.log.Info("access token refreshed", zap.Time("expires_at", p.tokenExpiry))
	return p.token, nil
}

// PublishDraft enforces the platform limits on title, content, and digest,
// then creates a draft and returns its media_id.
func (p *Publisher) PublishDraft(ctx context.Context, params PublishParams) (string, error) {
	if params.Title == "" || params.Content == "" {
		return "", errors.New("title and content are required")
	}

	token, err := p.getToken(ctx)
	if err != nil {
		return "", err
	}

	content := p.restoreEscapes(params.Content)
	if params.Markdown {
		html, err := mdToHTML(content)
		if err != nil {
			return "", fmt.Errorf("markdown转换失败: %w", err)
		}
		content = normalizeForWeChat(html)
	}
	content = clampContent(content, p.cfg.MaxContentLen)

	digest := params.Digest
	if digest == "" {
		digest = deriveDigest(content, digestLimit)
	} else {
		digest = clampDigest(digest, digestLimit)
	}

	thumb := params.ThumbMediaID
	if thumb == "" {
		thumb = p.cfg.DefaultThumbMediaID
	}

	art := article{
		Title:        truncateRunes(params.Title, titleLimit),
		Author:       p.cfg.Author,
		Digest:       digest,
		Content:      content,
		ThumbMediaID: thumb,
	}

	mediaID, err := p.addDraft(ctx, token, art)
	if err != nil {
		return "", err
	}
	p.log.Info("draft created", zap.String("media_id", mediaID), zap.String("title", art.Title))
	return mediaID, nil
}

func (p *Publisher) addDraft(ctx context.Context, token string, art article) (string, error) {
	body, err := json.Marshal(addDraftPayload{Articles: []article{art}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+addDraftPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	q := req.URL.Query()
	q.Set("access_token", token)
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("添加草稿请求失败: %w", err)
	}
	defer resp.Body.Close()

	var data addDraftResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("添加草稿响应解析失败: %w", err)
	}
	if data.MediaID == "" {
		return "", &PublishError{Code: data.ErrCode, Msg: data.ErrMsg}
	}
	return data.MediaID, nil
}
