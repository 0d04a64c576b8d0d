package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	// Groq speaks the same chat completions protocol.
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
)

type openAIConfig struct {
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url"`
	Dimension int    `json:"dimension"`
}

type openAIProvider struct {
	name      string
	client    openai.Client
	enabled   bool
	dimension int
}

func (p *openAIProvider) Name() string {
	return p.name
}

func (p *openAIProvider) Generate(ctx context.Context, model string, req *GenerateRequest) (string, error) {
	if !p.enabled {
		return "", ErrUnavailable
	}
	return chatCompletion(ctx, p.client, p.name, model, req)
}

func (p *openAIProvider) Embed(ctx context.Context, model string, text string) ([]float32, error) {
	if !p.enabled {
		return nil, ErrUnavailable
	}
	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	}
	if p.dimension > 0 {
		params.Dimensions = openai.Int(int64(p.dimension))
	}
	resp, err := p.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s embeddings request failed: %w", p.name, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%s response has no embeddings", p.name)
	}
	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

func chatCompletion(ctx context.Context, client openai.Client, name, model string, req *GenerateRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", name, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s response has no choices", name)
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func newOpenAICompatible(name, defaultBaseURL string, args interface{}) (*openAIProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if cfg.Dimension <= 0 {
		cfg.Dimension = defaultEmbedDimension
	}
	return &openAIProvider{
		name:      name,
		client:    openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)),
		enabled:   apiKey != "",
		dimension: cfg.Dimension,
	}, nil
}

func init() {
	Register("openai", func(args interface{}) (IProvider, error) {
		return newOpenAICompatible("openai", defaultOpenAIBaseURL, args)
	})
	RegisterEmbed("openai", func(args interface{}) (IEmbedProvider, error) {
		return newOpenAICompatible("openai", defaultOpenAIBaseURL, args)
	})
	Register("groq", func(args interface{}) (IProvider, error) {
		return newOpenAICompatible("groq", defaultGroqBaseURL, args)
	})
}
