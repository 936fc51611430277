// Package generator produces auto-reply texts with an OpenAI-compatible chat
// completion endpoint. Every request is single-turn, seeded with a fixed
// few-shot example pair that sets the tone: compact answers, no lists.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

const (
	defaultTimeout  = 30 * time.Second
	maxReplyTokens  = 250
	completionsPath = "/v1/chat/completions"
)

// Few-shot pair establishing the answer format for generated replies.
const (
	exampleUserPrompt = "Given a post title and post text.\n" +
		"You need to answer the comment. Answer should be compact.\n" +
		"DON'T USE LISTS, TABLES, ETC.\n\n" +
		"Post Title: How to learn python\n" +
		"Post Text: You can use books specialized on python, there a lot of websites for this purposes\n\n" +
		"Comment: Can you provide me specific websites where I can learn python"

	exampleModelReply = "Sure! Check out websites like Codecademy, freeCodeCamp, and W3Schools. " +
		"They offer interactive tutorials and exercises to help you learn Python. \n"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type llmReplyGenerator struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var _ domain.ReplyGenerator = (*llmReplyGenerator)(nil)

// NewLLMReplyGenerator will create an implementation of domain.ReplyGenerator
// talking to an OpenAI-compatible chat completion API.
func NewLLMReplyGenerator(baseURL, token, model string) *llmReplyGenerator {
	return &llmReplyGenerator{
		baseURL: baseURL,
		token:   token,
		model:   model,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (g *llmReplyGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: exampleUserPrompt},
			{Role: "assistant", Content: exampleModelReply},
			{Role: "user", Content: prompt},
		},
		Temperature: 1,
		TopP:        0.95,
		MaxTokens:   maxReplyTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("reply generator returned status %d: %s", resp.StatusCode, raw)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("reply generator returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
