package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClientConfig agrupa lo necesario para hablar con un endpoint chat-completions compatible con OpenAI.
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	// SiteURL y AppName viajan como HTTP-Referer y X-Title (identidad del sitio en OpenRouter).
	SiteURL    string
	AppName    string
	HTTPClient *http.Client
}

// OpenAIClient implementa LLMClient usando go-openai. Pide siempre un objeto JSON como respuesta.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewOpenAIClient construye el cliente apuntando a la API de chat completions.
func NewOpenAIClient(cfg ClientConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("llm model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	oaiCfg := openai.DefaultConfig(cfg.APIKey)
	oaiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if oaiCfg.BaseURL == "" {
		oaiCfg.BaseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *httpClient
	wrapped.Transport = &siteHeaderTransport{base: base, siteURL: cfg.SiteURL, appName: cfg.AppName}
	oaiCfg.HTTPClient = &wrapped

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(oaiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Model devuelve el identificador de modelo configurado.
func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		mapped := mapOpenAIError(err)
		c.logger.Warn("llm request failed", zap.String("model", c.model), zap.Error(mapped))
		return "", mapped
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ErrInvalidResponse{Err: errors.New("llm empty response")}
	}
	return resp.Choices[0].Message.Content, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ErrProviderUnavailable{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ErrProviderUnavailable{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &ErrProviderUnavailable{Err: fmt.Errorf("do request: %w", err)}
}

type siteHeaderTransport struct {
	base    http.RoundTripper
	siteURL string
	appName string
}

func (t *siteHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.siteURL == "" && t.appName == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	if t.siteURL != "" {
		clone.Header.Set("HTTP-Referer", t.siteURL)
	}
	if t.appName != "" {
		clone.Header.Set("X-Title", t.appName)
	}
	return t.base.RoundTrip(clone)
}

type disabledClient struct {
	reason string
}

// NewDisabledClient devuelve un LLMClient que siempre falla; se usa cuando no hay API key.
func NewDisabledClient(reason string) LLMClient {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Generate(_ context.Context, _ string) (string, error) {
	if c.reason == "" {
		return "", &ErrProviderUnavailable{Err: errors.New("llm client disabled")}
	}
	return "", &ErrProviderUnavailable{Err: errors.New(c.reason)}
}
