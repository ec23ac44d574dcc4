// seed_catalog genera un script SQL para poblar categories y muebles
// a partir de la planilla de productos exportada como CSV.
//
// Uso: go run ./cmd/seed_catalog productos.csv [salida.sql]
// Columnas (encabezado, en cualquier orden): id, nombre, precio, categoria, subcategoria,
// stock, imagen, descripcion. Solo nombre y precio son obligatorias.
// Acepta UTF-8 o ISO-8859-1 (Excel en Windows) y separador ',' o ';'.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/pkg/textnorm"
)

// seedNamespace da ids estables: volver a correr el seed actualiza en vez de duplicar.
var seedNamespace = uuid.MustParse("6f1c2a54-3b0e-4d8a-9a57-2f0d3c9b7e11")

type catalog struct {
	products   []*entity.Product
	categories []*entity.Category
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog productos.csv [salida.sql]")
		os.Exit(2)
	}
	outPath := "seed_catalog.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	cat, err := parseCatalog(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := writeSQL(out, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías, %d muebles\n", outPath, len(cat.categories), len(cat.products))
}

// decodeText devuelve el contenido en UTF-8; si no es UTF-8 válido se asume ISO-8859-1.
func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func detectSeparator(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func parseCatalog(raw []byte) (*catalog, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}
	firstLine, _, _ := strings.Cut(text, "\n")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = detectSeparator(firstLine)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[textnorm.Fold(h)] = i
	}
	for _, required := range []string{"nombre", "precio"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	cat := &catalog{}
	byCategory := make(map[string]*entity.Category)
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if field("nombre") == "" {
			continue
		}

		price, err := parsePrice(field("precio"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, field("precio"), err)
		}
		stock := 0
		if s := field("stock"); s != "" {
			if stock, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("línea %d: stock %q: %w", line, s, err)
			}
		}

		p := &entity.Product{
			ID:          field("id"),
			Name:        field("nombre"),
			Price:       price,
			Category:    field("categoria"),
			Subcategory: field("subcategoria"),
			Stock:       stock,
			Image:       field("imagen"),
			Description: field("descripcion"),
		}
		p.Normalize()
		if p.ID == "" {
			p.ID = stableID("mueble", p.Name)
		}
		cat.products = append(cat.products, p)

		key := textnorm.Fold(p.Category)
		c, ok := byCategory[key]
		if !ok {
			c = &entity.Category{ID: stableID("categoria", p.Category), Name: p.Category}
			byCategory[key] = c
			cat.categories = append(cat.categories, c)
		}
		if p.Subcategory != "" {
			c.AddSubcategory(p.Subcategory)
		}
	}
	sort.Slice(cat.categories, func(i, j int) bool {
		return textnorm.Fold(cat.categories[i].Name) < textnorm.Fold(cat.categories[j].Name)
	})
	return cat, nil
}

// parsePrice acepta "1234.5", "1,234.50", "1.234,50", "1234,50" y "S/. 899".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "S/."), "S/"))
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// 1.299,90
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negativo")
	}
	return d.Round(2), nil
}

func stableID(kind, name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+textnorm.Fold(name))).String()
}

func writeSQL(w io.Writer, cat *catalog) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de muebles\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	b.WriteString("-- 1. Categorías\n")
	for _, c := range cat.categories {
		fmt.Fprintf(&b, "INSERT INTO categories (id, nombre, subcategorias) VALUES ('%s', '%s', %s)\n",
			c.ID, escapeSQL(c.Name), textArray(c.Subcategories))
		b.WriteString("ON CONFLICT ((lower(nombre))) DO UPDATE SET subcategorias = EXCLUDED.subcategorias;\n")
	}

	b.WriteString("\n-- 2. Muebles\n")
	for _, p := range cat.products {
		fmt.Fprintf(&b, "INSERT INTO muebles (id, nombre, precio, categoria, subcategoria, stock, imagen, descripcion)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s', '%s', %d, '%s', '%s')\n",
			escapeSQL(p.ID), escapeSQL(p.Name), p.Price.StringFixed(2), escapeSQL(p.Category),
			escapeSQL(p.Subcategory), p.Stock, escapeSQL(p.Image), escapeSQL(p.Description))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET nombre = EXCLUDED.nombre, precio = EXCLUDED.precio,\n")
		b.WriteString("  categoria = EXCLUDED.categoria, subcategoria = EXCLUDED.subcategoria, stock = EXCLUDED.stock,\n")
		b.WriteString("  imagen = EXCLUDED.imagen, descripcion = EXCLUDED.descripcion, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func textArray(items []string) string {
	if len(items) == 0 {
		return "'{}'"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + escapeSQL(s) + "'"
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::TEXT[]"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
