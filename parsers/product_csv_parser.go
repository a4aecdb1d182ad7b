package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"retail/model"

	"github.com/shopspring/decimal"
)

// ParseProductCSV は商品マスタCSVを解析します。
// 必須列: name, category, price, stock / 任意列: description, image
// 不正な行はログを出してスキップします。
func ParseProductCSV(r io.Reader, charset string) ([]model.NewProduct, error) {
	decoded, err := DecodeReader(r, charset)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"name", "category", "price", "stock"})
	if err != nil {
		return nil, err
	}

	var records []model.NewProduct
	line := 1

	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: product CSV line %d read error (skipped): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		name := get("name")
		if name == "" {
			log.Printf("WARN: product CSV line %d has no name (skipped)", line)
			continue
		}
		category, ok := model.ParseProductCategory(get("category"))
		if !ok {
			log.Printf("WARN: product CSV line %d unknown category %q (skipped)", line, get("category"))
			continue
		}
		price, err := decimal.NewFromString(get("price"))
		if err != nil || price.IsNegative() {
			log.Printf("WARN: product CSV line %d invalid price %q (skipped)", line, get("price"))
			continue
		}
		stock, err := strconv.Atoi(get("stock"))
		if err != nil || stock < 0 {
			log.Printf("WARN: product CSV line %d invalid stock %q (skipped)", line, get("stock"))
			continue
		}

		records = append(records, model.NewProduct{
			Name:        name,
			Category:    category,
			Price:       price,
			Stock:       stock,
			Description: get("description"),
			Image:       get("image"),
		})
	}

	return records, nil
}
