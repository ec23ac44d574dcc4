package ports

import "context"

// ChatMessage turno de conversación en formato chat completion (role: system|user|assistant).
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompleter define el puerto de salida hacia un endpoint de chat completion.
// El adaptador declara en la petición su lista ordenada de modelos candidatos;
// no hay reintentos del lado de la aplicación.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
