// Package generator asks a language model for study flashcards.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const MaxBatch = 50

var (
	ErrPartialGeneration = errors.New("generator: model returned an incomplete batch")
	ErrNotConfigured     = errors.New("generator: no model configured")
)

// Request describes one batch of cards to generate.
type Request struct {
	CourseName string
	Quantity   int
	Tags       []string
}

// Card is one generated question/answer pair.
type Card struct {
	Front      string   `json:"frente"`
	Back       string   `json:"verso"`
	Tags       []string `json:"tags,omitempty"`
	Difficulty int      `json:"dificuldade"`
}

// Generator produces flashcards for a course.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]Card, error)
}

// OpenAIGenerator talks to any OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator for apiKey and model. An empty
// baseURL uses the public OpenAI API.
func NewOpenAIGenerator(apiKey, model, baseURL string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = openai.GPT4oMini
		slog.Warn("OPENAI_MODEL not set, defaulting", "model", model)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	slog.Info("initializing flashcard generator", "model", model)
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

const systemPrompt = `Você cria flashcards de estudo para estudantes universitários.
Responda apenas com JSON no formato {"flashcards":[{"frente":"...","verso":"...","tags":["..."],"dificuldade":0}]}.
"dificuldade" é 0 (fácil), 1 (média) ou 2 (difícil).`

func userPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crie exatamente %d flashcards sobre a disciplina %q.", req.Quantity, req.CourseName)
	if len(req.Tags) > 0 {
		fmt.Fprintf(&b, " Foque nos temas: %s.", strings.Join(req.Tags, ", "))
	}
	b.WriteString(" Cada frente deve ser uma pergunta curta e cada verso uma resposta objetiva.")
	return b.String()
}

// Generate requests req.Quantity cards. Anything other than a complete,
// well-formed batch is reported as ErrPartialGeneration.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) ([]Card, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		slog.Error("flashcard generation call failed", "model", g.model, "error", err)
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrPartialGeneration)
	}
	slog.Debug("flashcard generation finished", "finish_reason", resp.Choices[0].FinishReason)

	return ParseCards(resp.Choices[0].Message.Content, req.Quantity)
}

func (r Request) validate() error {
	if strings.TrimSpace(r.CourseName) == "" {
		return errors.New("generator: course name is required")
	}
	if r.Quantity < 1 || r.Quantity > MaxBatch {
		return fmt.Errorf("generator: quantity must be between 1 and %d, got %d", MaxBatch, r.Quantity)
	}
	return nil
}

// ParseCards decodes a model reply and checks it holds exactly want usable cards.
func ParseCards(content string, want int) ([]Card, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var payload struct {
		Flashcards []Card `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: decode reply: %v", ErrPartialGeneration, err)
	}

	cards := payload.Flashcards
	if len(cards) < want {
		return nil, fmt.Errorf("%w: got %d of %d cards", ErrPartialGeneration, len(cards), want)
	}
	cards = cards[:want]
	for i, card := range cards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			return nil, fmt.Errorf("%w: card %d is missing frente or verso", ErrPartialGeneration, i)
		}
		if card.Difficulty < 0 || card.Difficulty > 2 {
			cards[i].Difficulty = 1
		}
	}
	return cards, nil
}
