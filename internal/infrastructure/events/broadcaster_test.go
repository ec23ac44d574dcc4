package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/events"
)

func recv(t *testing.T, ch <-chan []dto.MessageResponse) []dto.MessageResponse {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "canal cerrado")
		return v
	case <-time.After(time.Second):
		t.Fatal("sin publicación")
		return nil
	}
}

func TestMessageHub_PublishLlegaATodos(t *testing.T) {
	hub := events.NewMessageHub()
	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	hub.Publish([]dto.MessageResponse{{ID: "m1"}})
	assert.Equal(t, "m1", recv(t, a)[0].ID)
	assert.Equal(t, "m1", recv(t, b)[0].ID)
}

func TestMessageHub_SuscriptorNuevoNoRecibeLoAnterior(t *testing.T) {
	hub := events.NewMessageHub()
	hub.Publish([]dto.MessageResponse{{ID: "m1"}})

	ch, cancel := hub.Subscribe()
	defer cancel()
	select {
	case v := <-ch:
		t.Fatalf("no debía recibir %v", v)
	default:
	}
	hub.Publish([]dto.MessageResponse{{ID: "m1"}, {ID: "m2"}})
	assert.Len(t, recv(t, ch), 2)
}

func TestMessageHub_LectorLentoVeSoloLaMasNueva(t *testing.T) {
	hub := events.NewMessageHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish([]dto.MessageResponse{{ID: "m1"}})
	hub.Publish([]dto.MessageResponse{{ID: "m2"}})
	hub.Publish([]dto.MessageResponse{{ID: "m3"}})

	assert.Equal(t, "m3", recv(t, ch)[0].ID)
	select {
	case v := <-ch:
		t.Fatalf("publicación extra inesperada: %v", v)
	default:
	}
}

func TestMessageHub_CancelarCierraYEsIdempotente(t *testing.T) {
	hub := events.NewMessageHub()
	ch, cancel := hub.Subscribe()
	assert.Equal(t, 1, hub.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, hub.Subscribers())
	_, ok := <-ch
	assert.False(t, ok)

	hub.Publish([]dto.MessageResponse{{ID: "m1"}})
}
