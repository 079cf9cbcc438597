// Package ai talks to an OpenAI-compatible chat-completions endpoint
// for syllabus event extraction and the assistant chat. The rest of the
// application treats this as an external collaborator: transport
// failures surface as errors, but an empty or malformed model response
// is simply "no events found".
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"chronofy/internal/config"
	appLog "chronofy/internal/log"
)

// Client is a thin chat-completions client.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewClient builds a client from config. A client without an API key is
// valid but disabled; calls return ErrDisabled.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("ai: no API key configured")

// Enabled reports whether the client can make calls.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// contentPart is one element of a multimodal message.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// filePart encodes an uploaded file as an inline data URI part.
func filePart(mimeType string, data []byte) contentPart {
	uri := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return contentPart{Type: "image_url", ImageURL: &imageURL{URL: uri}}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends one chat-completions request and returns the first
// choice's text.
func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ai: bad response payload: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("ai: %s (status %d)", parsed.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("ai: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}

	appLog.Debug("ai completion ok", "model", c.model, "bytes", len(body))
	return parsed.Choices[0].Message.Content, nil
}

// Chat runs one assistant conversation turn with the student-support
// system prompt prepended.
func (c *Client) Chat(ctx context.Context, history []Message) (string, error) {
	messages := append([]Message{{Role: "system", Content: chatSystemPrompt}}, history...)
	return c.complete(ctx, messages)
}

const chatSystemPrompt = "You are Chronofy AI, a friendly and supportive assistant " +
	"for college students. Help them manage their time, offer study advice, " +
	"suggest optimal study times based on their schedule, and help them build " +
	"effective weekly routines. Be encouraging, concise and helpful. Do not use markdown."
