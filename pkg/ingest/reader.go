// Package ingest parses uploaded transaction files (CSV and XLSX) into
// validated transaction records. Column headers are normalized so the
// spreadsheets customers actually upload ("Registration No", "Customer
// name", "Type") map onto the canonical schema.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
)

// ErrInvalidData marks validation failures in uploaded files: missing
// columns, non-numeric amounts, empty files. Callers use errors.Is to
// distinguish bad input from infrastructure failures.
var ErrInvalidData = errors.New("invalid transaction data")

// columnAliases maps normalized header names onto canonical columns.
var columnAliases = map[string]string{
	"registration no":  "registration_no",
	"registration_no":  "registration_no",
	"customer name":    "customer_name",
	"customer_name":    "customer_name",
	"type":             "transaction_type",
	"transaction_type": "transaction_type",
	"product":          "product",
	"amount":           "amount",
}

var requiredColumns = []string{
	"registration_no", "customer_name", "transaction_type", "product", "amount",
}

// ReadFile parses a transaction file, dispatching on its extension.
// Only .csv and .xlsx are supported.
func ReadFile(path string) ([]*model.Transaction, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("%w: unsupported file type %q, expected .csv or .xlsx", ErrInvalidData, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if ext == ".xlsx" {
		return ReadXLSX(f)
	}
	return ReadCSV(f)
}

// ReadCSV parses transactions from CSV data.
func ReadCSV(r io.Reader) ([]*model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrInvalidData, err)
	}
	return parseRows(records)
}

// ReadXLSX parses transactions from the first sheet of an XLSX file.
func ReadXLSX(r io.Reader) ([]*model.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx: %v", ErrInvalidData, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidData)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return parseRows(rows)
}

// parseRows turns a header row plus data rows into validated
// transactions. An unrecognized header column (e.g. "S.N") is ignored.
func parseRows(rows [][]string) ([]*model.Transaction, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidData)
	}

	index, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	txs := make([]*model.Transaction, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		tx, err := parseRow(index, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		return nil, fmt.Errorf("%w: file contains no transaction rows", ErrInvalidData)
	}
	return txs, nil
}

// mapHeader resolves each canonical column to its position in the
// header row, failing when required columns are missing.
func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredColumns))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(stripBOM(cell)))
		if canonical, ok := columnAliases[name]; ok {
			index[canonical] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrInvalidData, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(index map[string]int, row []string) (*model.Transaction, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	regNo, err := strconv.ParseInt(cell("registration_no"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: registration_no %q is not numeric", ErrInvalidData, cell("registration_no"))
	}

	amount, err := strconv.ParseFloat(cell("amount"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not numeric", ErrInvalidData, cell("amount"))
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount %v is negative", ErrInvalidData, amount)
	}

	name := cell("customer_name")
	if name == "" {
		return nil, fmt.Errorf("%w: customer_name is empty", ErrInvalidData)
	}

	return &model.Transaction{
		RegistrationNo:  regNo,
		CustomerName:    name,
		TransactionType: cell("transaction_type"),
		Product:         cell("product"),
		Amount:          amount,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 byte order mark; Excel-exported CSVs carry
// one on the first header cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
