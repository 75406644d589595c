package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
)

var productCSVHeader = []string{"sku", "nombre", "descripcion", "categoria", "precio", "actual", "minimo", "maximo"}

// readProductsCSV lee el catálogo. Acepta coma o punto y coma como separador y
// precios con coma decimal ("12.500,50"). Las filas pueden traer menos columnas que el encabezado.
func readProductsCSV(r io.Reader, encoding string) ([]dto.CreateProductRequest, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("encoding no soportado: %s", encoding)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")
	cr := csv.NewReader(strings.NewReader(text))
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range productCSVHeader[:2] {
		if _, ok := idx[h]; !ok {
			return nil, fmt.Errorf("encabezado sin columna %q", h)
		}
	}

	out := make([]dto.CreateProductRequest, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("sku") == "" && get("nombre") == "" {
			continue
		}
		p := dto.CreateProductRequest{
			SKU:         get("sku"),
			Name:        get("nombre"),
			Description: get("descripcion"),
			Category:    get("categoria"),
		}
		if s := get("precio"); s != "" {
			price, err := parsePrice(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: precio inválido %q", line, s)
			}
			p.Price = price
		}
		for col, dst := range map[string]*int{"actual": &p.Stock.Actual, "minimo": &p.Stock.Minimo, "maximo": &p.Stock.Maximo} {
			s := get(col)
			if s == "" {
				continue
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %s inválido %q", line, col, s)
			}
			*dst = v
		}
		out = append(out, p)
	}
	return out, nil
}

// parsePrice interpreta "12500.50", "12500,50", "12.500,50", "1,234.56" y "1.250.000".
// El último separador es el decimal; si solo hay puntos y son varios, son de miles.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, " ", "")
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}
