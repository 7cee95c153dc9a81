package ingest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/ingest"
)

const sampleCSV = `S.N,Registration No,Customer name,Type,product,amount
1,101,Alice,purchase,gold,15000
2,102,Bob,transfer,silver,60000
3,101,Alice,purchase,bonds,2500
`

func TestReadCSV(t *testing.T) {
	txs, err := ingest.ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, int64(101), txs[0].RegistrationNo)
	assert.Equal(t, "Alice", txs[0].CustomerName)
	assert.Equal(t, "purchase", txs[0].TransactionType)
	assert.Equal(t, "gold", txs[0].Product)
	assert.Equal(t, 15000.0, txs[0].Amount)

	assert.Equal(t, "Bob", txs[1].CustomerName)
	assert.Equal(t, 60000.0, txs[1].Amount)
}

func TestReadCSV_BOMHeader(t *testing.T) {
	data := "\uFEFFRegistration No,Customer name,Type,product,amount\n101,Alice,purchase,gold,100\n"
	txs, err := ingest.ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Alice", txs[0].CustomerName)
}

func TestReadCSV_HeaderCaseInsensitive(t *testing.T) {
	data := "REGISTRATION NO,CUSTOMER NAME,TYPE,PRODUCT,AMOUNT\n101,Alice,purchase,gold,100\n"
	txs, err := ingest.ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestReadCSV_MissingColumns(t *testing.T) {
	data := "Customer name,amount\nAlice,100\n"
	_, err := ingest.ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
	assert.Contains(t, err.Error(), "registration_no")
}

func TestReadCSV_EmptyFile(t *testing.T) {
	_, err := ingest.ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	data := "Registration No,Customer name,Type,product,amount\n"
	_, err := ingest.ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
}

func TestReadCSV_NonNumericAmount(t *testing.T) {
	data := "Registration No,Customer name,Type,product,amount\n101,Alice,purchase,gold,lots\n"
	_, err := ingest.ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadCSV_NegativeAmount(t *testing.T) {
	data := "Registration No,Customer name,Type,product,amount\n101,Alice,purchase,gold,-50\n"
	_, err := ingest.ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
}

func TestReadCSV_EmptyCustomerName(t *testing.T) {
	data := "Registration No,Customer name,Type,product,amount\n101,,purchase,gold,100\n"
	_, err := ingest.ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
}

func TestReadCSV_SkipsBlankRows(t *testing.T) {
	data := "Registration No,Customer name,Type,product,amount\n101,Alice,purchase,gold,100\n,,,,\n102,Bob,transfer,silver,200\n"
	txs, err := ingest.ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestReadXLSX(t *testing.T) {
	var buf bytes.Buffer
	writeTestXLSX(t, &buf)

	txs, err := ingest.ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Alice", txs[0].CustomerName)
	assert.Equal(t, 15000.0, txs[0].Amount)
	assert.Equal(t, "Bob", txs[1].CustomerName)
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ingest.ReadXLSX(strings.NewReader("this is not xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "txs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	txs, err := ingest.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	_, err = ingest.ReadFile(filepath.Join(dir, "txs.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrInvalidData)
}

func writeTestXLSX(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"S.N", "Registration No", "Customer name", "Type", "product", "amount"},
		{1, 101, "Alice", "purchase", "gold", 15000},
		{2, 102, "Bob", "transfer", "silver", 60000},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.Write(buf))
}
