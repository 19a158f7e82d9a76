package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const geminiAPI = "https://generativelanguage.googleapis.com/v1beta/models"

type GeminiClient struct {
	apiKey string
	model  string
	http   *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-pro"
	}
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{},
	}
}

// Raw API request types

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobPart `json:"inline_data,omitempty"`
}

type geminiBlobPart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	parts := []geminiPart{{Text: req.Prompt}}
	if req.Audio != nil {
		parts = append(parts, geminiPart{
			InlineData: &geminiBlobPart{
				MIMEType: req.Audio.MIME,
				Data:     base64.StdEncoding.EncodeToString(req.Audio.Data),
			},
		})
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiAPI, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("gemini generate: %s %s", resp.Status, string(respBody))
	}

	text := extractGeminiText(respBody)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// extractGeminiText concatenates the text parts of the first candidate.
func extractGeminiText(body []byte) string {
	var b strings.Builder
	gjson.GetBytes(body, "candidates.0.content.parts").ForEach(func(_, part gjson.Result) bool {
		b.WriteString(part.Get("text").String())
		return true
	})
	return strings.TrimSpace(b.String())
}
