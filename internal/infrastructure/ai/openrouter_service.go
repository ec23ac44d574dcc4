package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain"
)

// Verificar en tiempo de compilación que OpenRouterService implementa ChatCompleter.
var _ ports.ChatCompleter = (*OpenRouterService)(nil)

// OpenRouterConfig credenciales y cabeceras de atribución de OpenRouter.
type OpenRouterConfig struct {
	APIKey  string
	URL     string
	Models  []string
	Referer string
	Title   string
}

// OpenRouterService adaptador de chat completion compatible con OpenAI.
// La lista de modelos viaja en la petición; OpenRouter elige el primero disponible.
type OpenRouterService struct {
	cfg        OpenRouterConfig
	httpClient *http.Client
}

// NewOpenRouterService construye el adaptador.
// Si APIKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewOpenRouterService(cfg OpenRouterConfig) *OpenRouterService {
	return &OpenRouterService{
		cfg: cfg,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string              `json:"model,omitempty"`
	Models   []string            `json:"models,omitempty"`
	Messages []ports.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Complete envía la conversación y devuelve el texto de la primera opción.
func (s *OpenRouterService) Complete(ctx context.Context, messages []ports.ChatMessage) (string, error) {
	if s.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY no configurado", domain.ErrUpstream)
	}

	payload := chatRequest{Messages: messages}
	if len(s.cfg.Models) > 0 {
		payload.Model = s.cfg.Models[0]
		payload.Models = s.cfg.Models
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", s.cfg.Referer)
	}
	if s.cfg.Title != "" {
		req.Header.Set("X-Title", s.cfg.Title)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return "", fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	var out chatResponse
	jsonErr := json.Unmarshal(rawBody, &out)
	if resp.StatusCode != http.StatusOK {
		if jsonErr == nil && out.Error != nil {
			return "", fmt.Errorf("%w: OpenRouter HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("%w: OpenRouter HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrUpstream, jsonErr)
	}
	if out.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUpstream, out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: respuesta sin opciones", domain.ErrUpstream)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
