package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

func TestFormatSoles(t *testing.T) {
	cases := map[string]string{
		"0":         "S/. 0.00",
		"129.9":     "S/. 129.90",
		"1000":      "S/. 1,000.00",
		"1234567.5": "S/. 1,234,567.50",
		"-45":       "-S/. 45.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatSoles(decimal.RequireFromString(in)), in)
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pendiente", statusLabel(entity.OrderPending))
	assert.Equal(t, "Entregado", statusLabel(entity.OrderDelivered))
	assert.Equal(t, "otro", statusLabel("otro"))
}

func TestRenderOrderReceipt_GeneraPDF(t *testing.T) {
	order := &entity.Order{
		ID:       "PED-000042",
		Sequence: 42,
		Customer: entity.Customer{Name: "Ana Torres", Phone: "999 888 777", Address: "Av. Lima 123", Email: "ana@example.com"},
		Items: []entity.OrderItem{
			{ProductID: "sofa-1", Name: "Sofá 3 cuerpos", Price: decimal.NewFromInt(1500), Quantity: 1},
			{ProductID: "mesa-1", Name: "Mesa de centro", Price: decimal.RequireFromString("129.90"), Quantity: 2},
		},
		Total:     decimal.RequireFromString("1759.80"),
		Status:    entity.OrderPending,
		CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	out, err := NewReceiptGenerator().RenderOrderReceipt(context.Background(), order,
		ports.StoreInfo{Name: "Mueblería José", Phone: "51999999999"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderOrderReceipt_PedidoNil(t *testing.T) {
	_, err := NewReceiptGenerator().RenderOrderReceipt(context.Background(), nil, ports.StoreInfo{})
	assert.Error(t, err)
}
