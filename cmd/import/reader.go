package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/xuri/excelize/v2"
)

// readIngredients loads name/unit rows from a .csv or .xlsx file
func readIngredients(path string) ([]service.IngredientRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(f)
	case ".xlsx":
		return readXLSX(path)
	}
	return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
}

// readCSV expects exactly two columns per record: name, unit
func readCSV(r io.Reader) ([]service.IngredientRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	rows := make([]service.IngredientRow, 0, len(records))
	for i, record := range records {
		if i == 0 && isHeader(record) {
			continue
		}
		rows = append(rows, service.IngredientRow{Name: record[0], Unit: record[1]})
	}
	return rows, nil
}

// readXLSX reads columns A and B of the first sheet
func readXLSX(path string) ([]service.IngredientRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	rows := make([]service.IngredientRow, 0, len(records))
	for i, record := range records {
		if i == 0 && isHeader(record) {
			continue
		}
		var row service.IngredientRow
		if len(record) > 0 {
			row.Name = record[0]
		}
		if len(record) > 1 {
			row.Unit = record[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name")
}
