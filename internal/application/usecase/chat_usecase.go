package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// FallbackReply respuesta mostrada cuando el servicio de chat no contesta.
const FallbackReply = "Uy, mi sistema está un poco lento. 😅 ¿Me lo repites?"

const emptyCatalogText = "Actualmente estamos actualizando nuestro catálogo."

// ChatUseCase asistente de ventas: arma el contexto del catálogo y delega en el LLM.
// Aplica un timeout en cada llamada para que la latencia externa no retenga la petición.
type ChatUseCase struct {
	llm      ports.ChatCompleter
	products repository.ProductRepository
	timeout  time.Duration
	log      zerolog.Logger
}

// NewChatUseCase construye el caso de uso inyectando el puerto ChatCompleter.
func NewChatUseCase(llm ports.ChatCompleter, products repository.ProductRepository, timeout time.Duration, log zerolog.Logger) *ChatUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChatUseCase{llm: llm, products: products, timeout: timeout, log: log}
}

// CatalogText una línea "[Mueble: nombre | Precio: S/. precio]" por mueble.
func CatalogText(products []*entity.Product) string {
	if len(products) == 0 {
		return emptyCatalogText
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("[Mueble: %s | Precio: S/. %s]", p.Name, p.Price.String()))
	}
	return strings.Join(lines, "\n")
}

// SellerInstructions instrucciones ocultas que se anteponen al último mensaje del cliente.
func SellerInstructions(catalogText string) string {
	return "[INSTRUCCIONES: Eres el vendedor de Mueblería José. Amable, persuasivo y muy breve. VENDES ESTO: " +
		catalogText + ". NUNCA inventes productos.]\n\nEl cliente dice: "
}

// BuildPrompt descarta los saludos del asistente al inicio del historial y antepone las
// instrucciones al último turno si es del usuario.
func BuildPrompt(history []dto.ChatMessageDTO, catalogText string) []ports.ChatMessage {
	start := 0
	for start < len(history) && history[start].Role != "user" {
		start++
	}
	out := make([]ports.ChatMessage, 0, len(history)-start)
	for _, m := range history[start:] {
		out = append(out, ports.ChatMessage{Role: m.Role, Content: m.Content})
	}
	if n := len(out); n > 0 && out[n-1].Role == "user" {
		out[n-1].Content = SellerInstructions(catalogText) + out[n-1].Content
	}
	return out
}

// Reply responde al cliente. Si el LLM falla o vence el timeout devuelve FallbackReply
// con Fallback=true en lugar de un error; solo la entrada inválida es error.
func (uc *ChatUseCase) Reply(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if len(req.Messages) == 0 || req.Messages[len(req.Messages)-1].Role != "user" {
		return nil, fmt.Errorf("%w: el último mensaje debe ser del usuario", domain.ErrInvalidInput)
	}

	catalogText := emptyCatalogText
	if list, err := uc.products.List(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("chat: no se pudo cargar el catálogo")
	} else {
		catalogText = CatalogText(list)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.llm.Complete(ctx, BuildPrompt(req.Messages, catalogText))
	if err != nil || strings.TrimSpace(reply) == "" {
		uc.log.Warn().Err(err).Msg("chat: respuesta de respaldo")
		return &dto.ChatResponse{Reply: FallbackReply, Fallback: true}, nil
	}
	return &dto.ChatResponse{Reply: reply}, nil
}
