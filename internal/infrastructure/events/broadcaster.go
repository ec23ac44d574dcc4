// Package events difusión en proceso de la bandeja de mensajes hacia suscriptores SSE.
package events

import (
	"sync"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
)

var _ ports.MessageFeed = (*MessageHub)(nil)

// MessageHub reparte la última lista de mensajes a cada suscriptor.
// Cada suscriptor tiene un buffer de 1: si no alcanzó a leer, se reemplaza por la lista más nueva.
type MessageHub struct {
	mu   sync.Mutex
	subs map[chan []dto.MessageResponse]struct{}
}

// NewMessageHub construye el hub vacío.
func NewMessageHub() *MessageHub {
	return &MessageHub{subs: make(map[chan []dto.MessageResponse]struct{})}
}

// Publish envía la lista a todos sin bloquear.
func (h *MessageHub) Publish(messages []dto.MessageResponse) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		offer(ch, messages)
	}
}

// Subscribe registra un suscriptor que recibe las publicaciones posteriores.
// La función devuelta lo da de baja y cierra el canal; es idempotente.
func (h *MessageHub) Subscribe() (<-chan []dto.MessageResponse, func()) {
	ch := make(chan []dto.MessageResponse, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers cantidad de suscriptores activos.
func (h *MessageHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func offer(ch chan []dto.MessageResponse, v []dto.MessageResponse) {
	select {
	case ch <- v:
		return
	default:
	}
	// descartar la pendiente y dejar la más nueva
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
