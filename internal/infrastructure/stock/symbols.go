package stock

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Symbols maps company names to exchange tickers, loaded from the NSE
// equity list CSV (columns SYMBOL and "NAME OF COMPANY").
type Symbols struct {
	rows []symbolRow
}

type symbolRow struct {
	symbol  string
	company string
}

// LoadSymbols reads the symbols CSV from disk.
func LoadSymbols(path string) (*Symbols, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read symbols csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("symbols csv %s is empty", path)
	}

	symbolIdx, companyIdx := -1, -1
	for i, col := range records[0] {
		switch strings.ToUpper(strings.TrimSpace(col)) {
		case "SYMBOL":
			symbolIdx = i
		case "NAME OF COMPANY":
			companyIdx = i
		}
	}
	if symbolIdx < 0 || companyIdx < 0 {
		return nil, fmt.Errorf("symbols csv %s: missing SYMBOL or NAME OF COMPANY column", path)
	}

	rows := make([]symbolRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= symbolIdx || len(record) <= companyIdx {
			continue
		}
		symbol := strings.TrimSpace(record[symbolIdx])
		company := strings.ToLower(strings.TrimSpace(record[companyIdx]))
		if symbol == "" || company == "" {
			continue
		}
		rows = append(rows, symbolRow{symbol: symbol, company: company})
	}

	return &Symbols{rows: rows}, nil
}

// Lookup finds the NSE ticker for a company by case-insensitive
// substring match and returns it with the exchange suffix.
func (s *Symbols) Lookup(company string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(company))
	if needle == "" {
		return "", false
	}

	for _, row := range s.rows {
		if strings.Contains(row.company, needle) {
			return row.symbol + ".NS", true
		}
	}
	return "", false
}
