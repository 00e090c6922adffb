package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"kbaudit/internal/models"
	"kbaudit/pkg/classifier"
)

// LLMReviewer asks an OpenAI-compatible model for a second opinion on a
// flagged document. The note is advisory only and attached to the report
// entry; the keyword heuristic's actions are never altered.
type LLMReviewer struct {
	client interface {
		CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	}
	model string
}

func NewLLMReviewer(client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}, model string) *LLMReviewer {
	return &LLMReviewer{client: client, model: model}
}

const reviewPrompt = `You are reviewing an automated audit of a Russian insurance chatbot's knowledge base.
Document title: %s
Company code: %s, product code: %s
Flagged issues:
%s
Reply with JSON: {"agree": true|false, "comment": "<one short sentence>"}.`

func (r *LLMReviewer) Review(ctx context.Context, doc models.Document, res classifier.Result) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("LLM reviewer is not initialized with a client")
	}

	prompt := fmt.Sprintf(reviewPrompt, doc.Title, doc.CompanyCode, doc.ProductCode,
		"- "+strings.Join(res.Issues, "\n- "))

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var parsed struct {
		Agree   bool   `json:"agree"`
		Comment string `json:"comment"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse review response as JSON: %w\nResponse content: %s", err, content)
	}

	verdict := "agrees"
	if !parsed.Agree {
		verdict = "disagrees"
	}
	if parsed.Comment == "" {
		return verdict, nil
	}
	return fmt.Sprintf("%s: %s", verdict, parsed.Comment), nil
}
