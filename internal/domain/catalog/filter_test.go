package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/muebleria-api/internal/domain/catalog"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

func fixtures() []*entity.Product {
	return []*entity.Product{
		{ID: "1", Name: "Sofá Seccional", Category: "Sala", Subcategory: "Sofás", Stock: 3, Price: decimal.NewFromInt(1200)},
		{ID: "2", Name: "Sofá cama", Category: "Sala ", Subcategory: "Sofás cama", Stock: 0, Price: decimal.NewFromInt(900)},
		{ID: "3", Name: "Mesa comedor", Category: "Comedor", Stock: 1, Price: decimal.NewFromInt(700)},
		{ID: "4", Name: "Repisa", Category: "", Stock: 5, Price: decimal.NewFromInt(90)},
		{ID: "5", Name: "", Category: "Sala", Stock: 5, Price: decimal.NewFromInt(10)},
	}
}

func ids(ps []*entity.Product) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_SoloConStock(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Filter{Category: catalog.AllCategories})
	assert.Equal(t, []string{"1", "3", "4"}, ids(got), "sin stock o sin nombre no se muestran")
}

func TestApply_BusquedaSinTildes(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Filter{Search: "SOFA"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApply_CategoriaPorDefectoOtros(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Filter{Category: "Otros"})
	assert.Equal(t, []string{"4"}, ids(got))
}

func TestApply_Subcategoria(t *testing.T) {
	got := catalog.Apply(fixtures(), catalog.Filter{Category: "Sala", Subcategory: "Sofás"})
	assert.Equal(t, []string{"1"}, ids(got))

	// Sin categoría elegida la subcategoría se ignora.
	got = catalog.Apply(fixtures(), catalog.Filter{Subcategory: "Inexistente"})
	assert.Equal(t, []string{"1", "3", "4"}, ids(got))
}
