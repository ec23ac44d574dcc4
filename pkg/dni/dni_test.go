package dni_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/muebleria-api/pkg/dni"
)

func TestValidateDNI(t *testing.T) {
	assert.NoError(t, dni.ValidateDNI("45678912"))
	assert.NoError(t, dni.ValidateDNI(" 45678912 "))

	assert.Error(t, dni.ValidateDNI("4567891"), "7 dígitos")
	assert.Error(t, dni.ValidateDNI("456789123"), "9 dígitos")
	assert.Error(t, dni.ValidateDNI("4567891A"), "con letra")
	assert.Error(t, dni.ValidateDNI(""))
}

func TestValidateDNI_SoloDigitosASCII(t *testing.T) {
	// cuatro dígitos arábigo-índicos ocupan 8 bytes
	assert.Error(t, dni.ValidateDNI("١٢٣٤"))
	assert.Error(t, dni.ValidateDNI("١٢٣٤٥٦٧٨"), "8 dígitos no ASCII")
	assert.Error(t, dni.ValidateDNI("４５６７８９１２"), "dígitos de ancho completo")
	assert.Error(t, dni.ValidateDNI("4567891é"))
}
