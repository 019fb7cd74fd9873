package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// ExcelPricelistParser reads product price lists from .xlsx uploads.
// Expected columns (header names matched by keyword, any order):
// product, name, unit, aliases, specification, price, moq. One row per
// specification tier; rows sharing a product key are grouped.
type ExcelPricelistParser struct{}

// NewExcelPricelistParser creates the parser.
func NewExcelPricelistParser() repository.PricelistParser {
	return &ExcelPricelistParser{}
}

// columnMap holds the resolved column index per field, -1 when absent.
type columnMap struct {
	product, name, unit, aliases, spec, price, moq int
}

// ParseProducts parses an uploaded spreadsheet into catalog products.
func (p *ExcelPricelistParser) ParseProducts(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", filename)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s has no data rows", filename)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	var (
		products []entity.Product
		index    = make(map[string]int)
	)

	for i, row := range rows[1:] {
		key := strings.ToLower(strings.TrimSpace(cell(row, cols.product)))
		if key == "" {
			continue
		}

		spec, err := parseSpecRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}

		at, ok := index[key]
		if !ok {
			products = append(products, entity.Product{
				Key:     key,
				Name:    defaultName(cell(row, cols.name), key),
				Unit:    strings.TrimSpace(cell(row, cols.unit)),
				Aliases: parseAliases(cell(row, cols.aliases)),
			})
			at = len(products) - 1
			index[key] = at
		}
		products[at].Specifications = append(products[at].Specifications, spec)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("%s contains no products", filename)
	}
	return products, nil
}

// mapColumns resolves header names to column indexes by keyword.
func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{product: -1, name: -1, unit: -1, aliases: -1, spec: -1, price: -1, moq: -1}

	for i, h := range header {
		switch label := strings.ToLower(strings.TrimSpace(h)); {
		case strings.Contains(label, "alias"):
			cols.aliases = i
		case strings.Contains(label, "spec") || strings.Contains(label, "concentration"):
			cols.spec = i
		case strings.Contains(label, "price") || strings.Contains(label, "rate"):
			cols.price = i
		case strings.Contains(label, "moq") || strings.Contains(label, "minimum"):
			cols.moq = i
		case strings.Contains(label, "unit") || strings.Contains(label, "basis"):
			cols.unit = i
		case strings.Contains(label, "name"):
			cols.name = i
		case strings.Contains(label, "product") || strings.Contains(label, "key"):
			cols.product = i
		}
	}

	if cols.product < 0 || cols.spec < 0 || cols.price < 0 || cols.moq < 0 {
		return cols, fmt.Errorf("header must contain product, specification, price and moq columns")
	}
	return cols, nil
}

func parseSpecRow(row []string, cols columnMap) (entity.Specification, error) {
	label := strings.TrimSpace(cell(row, cols.spec))
	if label == "" {
		return entity.Specification{}, fmt.Errorf("empty specification")
	}
	if !strings.HasSuffix(label, "%") {
		label += "%"
	}

	price, err := parsePrice(cell(row, cols.price))
	if err != nil {
		return entity.Specification{}, err
	}

	moq, err := strconv.Atoi(strings.TrimSpace(cell(row, cols.moq)))
	if err != nil || moq <= 0 {
		return entity.Specification{}, fmt.Errorf("invalid moq %q", cell(row, cols.moq))
	}

	return entity.Specification{Label: label, BasePrice: price, MOQ: moq}, nil
}

// parsePrice accepts plain numbers and formatted values like "₹2,800".
func parsePrice(raw string) (float64, error) {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(raw)
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}

func parseAliases(raw string) []string {
	var aliases []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			aliases = append(aliases, a)
		}
	}
	return aliases
}

func defaultName(name, key string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return strings.ToUpper(key[:1]) + key[1:] + " Extract"
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
