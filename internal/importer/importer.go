// Package importer converts a supplier price-list CSV into the embedded
// catalog format. It is a build-time tool: the server itself never reads
// CSV.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mawasim-api/internal/catalog"
)

// CSVImporter reads supplier price-list rows and produces catalog products.
type CSVImporter struct {
	reader *csv.Reader
}

func NewCSVImporter(r io.Reader) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr}
}

// Run parses all rows and returns the products in file order.
func (i *CSVImporter) Run() ([]catalog.Product, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"id", "name", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var products []catalog.Product
	seen := make(map[string]struct{})
	line := 1
	for {
		row, err := i.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		get := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		id := get("id")
		if id == "" {
			return nil, fmt.Errorf("row %d: empty id", line)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("row %d: duplicate id %q", line, id)
		}
		seen[id] = struct{}{}

		cents, err := parsePriceCents(get("price"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		rating := 0.0
		if v := get("rating"); v != "" {
			if rating, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("row %d: bad rating %q", line, v)
			}
		}

		products = append(products, catalog.Product{
			ID:         id,
			Name:       get("name"),
			NameEn:     get("name_en"),
			PriceCents: cents,
			Category:   get("category"),
			Emoji:      get("emoji"),
			Origin:     get("origin"),
			Rating:     rating,
			Unit:       get("unit"),
		})
	}
	return products, nil
}

// WriteJSON renders products as the indented JSON the catalog embeds.
func WriteJSON(w io.Writer, products []catalog.Product) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(products)
}

// parsePriceCents converts a decimal euro amount ("9.50", "12", "0.05")
// to cents without going through floating point.
func parsePriceCents(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	whole, frac, _ := strings.Cut(s, ".")
	euros, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || euros < 0 {
		return 0, fmt.Errorf("bad price %q", s)
	}
	cents := euros * 100
	switch len(frac) {
	case 0:
	case 1:
		n, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad price %q", s)
		}
		cents += n * 10
	case 2:
		n, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad price %q", s)
		}
		cents += n
	default:
		return 0, fmt.Errorf("bad price %q: more than two decimal places", s)
	}
	if cents <= 0 {
		return 0, fmt.Errorf("bad price %q: must be positive", s)
	}
	return cents, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
