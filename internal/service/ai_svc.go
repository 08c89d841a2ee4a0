package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	ApiKey    string
	TextModel string
}

// ==================== 服务 ====================

// AIService 商品文案生成 (Gemini REST API)
type AIService struct {
	config     *AIConfig
	httpClient *http.Client
}

// NewAIService 创建 AI 服务
func NewAIService(cfg *AIConfig) *AIService {
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-3-flash"
	}
	return &AIService{
		config:     cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ListingCopyResult 文案生成结果
type ListingCopyResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// GenerateListingCopy 根据商品名生成店面文案
func (s *AIService) GenerateListingCopy(ctx context.Context, productName, styleHint string) (*ListingCopyResult, error) {
	if s.config.ApiKey == "" {
		return nil, fmt.Errorf("Gemini API Key 未配置")
	}

	prompt := fmt.Sprintf(`You are an e-commerce copywriter. Generate storefront listing content for:

Product: %s
Style Hint: %s

Requirements:
1. Name: clear product title, max 140 characters, include search keywords
2. Description: engaging sales copy, 150-300 words, highlight features and benefits
3. Tags: 10 relevant search tags

Output Format (JSON only, no markdown):
{
  "name": "Product title here",
  "description": "Engaging description here...",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5", "tag6", "tag7", "tag8", "tag9", "tag10"]
}`, productName, styleHint)

	raw, err := s.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// 模型偶尔会包一层 ```json 代码块，先剥掉
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var result ListingCopyResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, fmt.Errorf("AI 响应解析失败: %w", err)
	}
	return &result, nil
}

// ==================== Gemini REST 调用 ====================

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *AIService) generateText(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.config.TextModel, s.config.ApiKey,
	)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI 请求失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI 接口异常 [%d]: %s", resp.StatusCode, string(data))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("AI 响应格式异常: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI 未返回内容")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
