package dto

// ChatMessageDTO turno de la conversación enviado por el cliente web.
type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=2000"`
}

// ChatRequest historial visible de la conversación; el último turno debe ser del usuario.
type ChatRequest struct {
	Messages []ChatMessageDTO `json:"messages" validate:"required,min=1,max=40,dive"`
}

// ChatResponse respuesta del asistente. Fallback indica que el servicio externo falló.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}
