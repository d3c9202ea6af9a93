package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// maxEmbeddingRunes keeps embedding input under the model's token limit.
const maxEmbeddingRunes = 10000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	apiKey     string
	modelName  string
	embedModel string
	log        *logrus.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiService does not contact the API. The client is created on the
// first call, so a missing key surfaces as an error from that call.
func NewGeminiService(apiKey, modelName, embedModel string, log *logrus.Logger) GeminiService {
	return &geminiService{
		apiKey:     apiKey,
		modelName:  modelName,
		embedModel: embedModel,
		log:        log,
	}
}

func (g *geminiService) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	g.client = client
	return client, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}

	if runes := []rune(text); len(runes) > maxEmbeddingRunes {
		text = string(runes[:maxEmbeddingRunes])
	}

	result, err := client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		g.log.WithField("candidates", len(resp.Candidates)).Warn("Gemini response carried no text")
		return "", nil
	}

	g.log.WithFields(logrus.Fields{
		"model": g.modelName,
		"chars": len(text),
	}).Debug("Gemini response received")

	return text, nil
}
