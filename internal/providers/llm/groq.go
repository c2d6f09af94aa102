package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sandevgo/routebot/internal/core"
	"github.com/sandevgo/routebot/pkg/log"
	"github.com/sandevgo/routebot/pkg/tokens"
)

// Groq talks to the Groq chat-completions endpoint (OpenAI-compatible).
type Groq struct {
	baseProvider
}

func NewGroq(baseURL, apiKey string) *Groq {
	return &Groq{
		baseProvider: newBaseProvider(baseURL, apiKey),
	}
}

func (g *Groq) Chat(ctx context.Context, messages []core.Message, model string) (string, error) {
	payload := map[string]any{
		"model":    model,
		"messages": messages,
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		total := 0
		for _, m := range messages {
			total += tokens.Count(m.Content)
		}
		log.FromCtx(ctx).Debug().Int("prompt_tokens", total).Str("model", model).Msg("sending completion request")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	}

	resp, err := g.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return parseChatResponse(resp)
}

func parseChatResponse(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message.Content, nil
}
