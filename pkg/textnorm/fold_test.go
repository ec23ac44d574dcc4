package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/muebleria-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "sofa cama", textnorm.Fold("  Sofá Cama "))
	assert.Equal(t, "comedor", textnorm.Fold("COMEDOR"))
	assert.Equal(t, "nino", textnorm.Fold("Niño"))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Sofá de 3 cuerpos", "sofa"))
	assert.True(t, textnorm.Contains("Mesa de Centro", "CENTRO"))
	assert.True(t, textnorm.Contains("Ropero", ""), "término vacío coincide con todo")
	assert.False(t, textnorm.Contains("Ropero", "cama"))
}
