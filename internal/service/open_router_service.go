package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/terminaltitans/skillchain/internal/config"
	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/tidwall/gjson"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the alternate analysis gateway, selected with
// ANALYSIS_PROVIDER=openrouter. Image documents travel as data URLs; PDFs
// are represented by their extracted text, which the prompt already carries.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	openRouterConfig := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		APIKey: openRouterConfig.APIKey,
		Model:  openRouterConfig.Model,
		client: resty.New(),
	}
}

func (s *OpenRouterService) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	if s.APIKey == "" {
		return nil, &model.GatewayError{StatusCode: 401, Err: fmt.Errorf("OPENROUTER_API_KEY not set")}
	}

	userContent := []map[string]any{
		{"type": "text", "text": buildAnalysisPrompt(req)},
	}
	if req.Document != nil && strings.HasPrefix(req.Document.MediaType, "image/") {
		dataURL := fmt.Sprintf("data:%s;base64,%s",
			req.Document.MediaType,
			base64.StdEncoding.EncodeToString(req.Document.Data))
		userContent = append(userContent, map[string]any{
			"type":      "image_url",
			"image_url": map[string]string{"url": dataURL},
		})
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]any{
				{"role": "system", "content": systemInstruction},
				{"role": "user", "content": userContent},
			},
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post(openRouterURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, &model.GatewayError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("openrouter returned %s", resp.Status()),
		}
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return nil, fmt.Errorf("no response from LLM")
	}
	return parseAnalysisText(text)
}
