// Package gemini adapts the hosted Gemini API to the two adapter
// contracts the orchestrators consume: a stateful chat session and a
// stateless image edit. All provider wire behavior lives behind the
// official google.golang.org/genai SDK; failures collapse to plain
// errors with no structured taxonomy.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"gemterm/internal/conversation"
	"gemterm/internal/orchestrator"
)

const (
	// DefaultChatModel is used when config names no chat model.
	DefaultChatModel = "gemini-2.5-flash"
	// DefaultImageModel is used when config names no image model.
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Config for constructing a Client.
type Config struct {
	APIKey     string
	ChatModel  string
	ImageModel string
}

// Client wraps a genai client for both front-ends.
type Client struct {
	api        *genai.Client
	chatModel  string
	imageModel string
}

// Compile-time adapter contract checks.
var (
	_ orchestrator.Responder = (*ChatSession)(nil)
	_ orchestrator.Editor    = (*Client)(nil)
)

// NewClient creates a Gemini client. The API key is required; model
// names fall back to the defaults.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		api:        api,
		chatModel:  orDefault(cfg.ChatModel, DefaultChatModel),
		imageModel: orDefault(cfg.ImageModel, DefaultImageModel),
	}, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// ChatSession is a provider-side conversational context: turn history
// accumulates on Gemini's servers, we only push new turns.
type ChatSession struct {
	chat *genai.Chat
}

// NewChatSession opens a chat session seeded with prior history. Bot
// turns map to the model role; the seeded greeting is included so the
// model sees the same transcript the user does.
func (c *Client) NewChatSession(ctx context.Context, history []conversation.Message) (*ChatSession, error) {
	chat, err := c.api.Chats.Create(ctx, c.chatModel, nil, historyContents(history))
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return &ChatSession{chat: chat}, nil
}

// historyContents converts log messages to genai history turns.
func historyContents(history []conversation.Message) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Sender == conversation.SenderBot {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	return contents
}

// SendMessage sends one user turn and returns the model's textual reply.
func (s *ChatSession) SendMessage(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", errors.New("model returned an empty reply")
	}
	return reply, nil
}

// GenerateEdit asks the image model to transform img per the prompt. A
// reply that carries no image data is a rejection, not a transport
// failure.
func (c *Client) GenerateEdit(ctx context.Context, img []byte, mime, prompt string) ([]byte, string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(img, mime),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.api.Models.GenerateContent(ctx, c.imageModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("generate edit: %w", err)
	}

	if blob := firstImageBlob(resp); blob != nil {
		return blob.Data, blob.MIMEType, nil
	}
	if note := strings.TrimSpace(resp.Text()); note != "" {
		return nil, "", fmt.Errorf("%w: %s", orchestrator.ErrRejected, note)
	}
	return nil, "", orchestrator.ErrRejected
}

// firstImageBlob finds the first inline image in a response.
func firstImageBlob(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}
