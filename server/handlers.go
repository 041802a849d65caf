package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/extractor"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/publisher"
)

type formatRequest struct {
	Content string `json:"content"`
}

type formatResponse struct {
	Content string `json:"content"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "请求数据为空")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.respondError(w, http.StatusBadRequest, "请提供需要排版的文本")
		return
	}

	s.audit.Record("文章排版请求", "将普通文本转换为微信公众号格式")

	formatted, err := s.formatter.Format(r.Context(), req.Content)
	if err != nil {
		s.logger.Error("format failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, formatResponse{Content: formatted})
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "请求数据为空")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.respondError(w, http.StatusBadRequest, "请提供文章主题")
		return
	}

	s.audit.Record("文章生成请求", "根据主题提示生成公众号文章")

	content, err := s.agent.GenerateFromPrompt(r.Context(), req.Prompt)
	if err != nil {
		s.logger.Error("generate failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, formatResponse{Content: content})
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleAnalyze accepts either a multipart upload (field "file") or a JSON
// body with a URL, extracts the text, and summarizes it into an article.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var (
		text string
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		text, err = s.extractUpload(r)
	} else {
		var req analyzeRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			s.respondJSON(w, http.StatusBadRequest, analyzeResponse{Error: "请求数据为空"})
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			s.respondJSON(w, http.StatusBadRequest, analyzeResponse{Error: "请提供文件或URL"})
			return
		}
		s.audit.Record("URL分析请求", "提取网页内容并生成文章")
		text, err = s.extract.FromURL(r.Context(), req.URL)
	}
	if err != nil {
		status := http.StatusInternalServerError
		var exErr *extractor.ExtractionError
		if errors.As(err, &exErr) && exErr.BadInput {
			status = http.StatusBadRequest
		}
		s.logger.Error("extraction failed", zap.Error(err))
		s.respondJSON(w, status, analyzeResponse{Error: err.Error()})
		return
	}

	content, err := s.agent.GenerateFromDocument(r.Context(), text)
	if err != nil {
		s.logger.Error("document summarize failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, analyzeResponse{Error: err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, analyzeResponse{
		Success: true,
		Content: content,
		Message: "分析完成",
	})
}

func (s *Server) extractUpload(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return "", &extractor.ExtractionError{Reason: "文件上传解析失败", BadInput: true, Err: err}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", &extractor.ExtractionError{Reason: "未收到文件", BadInput: true, Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return "", &extractor.ExtractionError{Reason: "文件读取失败", Err: err}
	}
	s.audit.Record("文件分析请求", "提取文档内容并生成文章: "+header.Filename)
	return s.extract.FromFile(data, header.Filename)
}

type publishRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Digest       string `json:"digest"`
	ThumbMediaID string `json:"thumb_media_id"`
	Markdown     bool   `json:"markdown"`
}

type publishResponse struct {
	Success bool   `json:"success"`
	MediaID string `json:"media_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, publishResponse{Error: "请求数据为空"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.respondJSON(w, http.StatusBadRequest, publishResponse{Error: "请提供文章标题"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.respondJSON(w, http.StatusBadRequest, publishResponse{Error: "请提供文章内容"})
		return
	}

	s.audit.Record("发布请求", "将文章保存到公众号草稿箱: "+req.Title)

	mediaID, err := s.pub.PublishDraft(r.Context(), publisher.PublishParams{
		Title:        req.Title,
		Content:      req.Content,
		Digest:       req.Digest,
		ThumbMediaID: req.ThumbMediaID,
		Markdown:     req.Markdown,
	})
	if err != nil {
		s.logger.Error("publish failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, publishResponse{Error: err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, publishResponse{
		Success: true,
		MediaID: mediaID,
		Message: "草稿创建成功",
	})
}
