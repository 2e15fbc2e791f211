package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
)

// LoadCSV reads historical pairs from a CSV file. The header row must
// contain email_text and response_text columns; every other column
// becomes pair metadata under its header name.
func LoadCSV(path string) ([]domain.HistoricalPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	return ReadPairs(f)
}

// ReadPairs parses CSV pair data from a reader.
func ReadPairs(r io.Reader) ([]domain.HistoricalPair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}

	emailCol, responseCol := -1, -1
	for i, name := range header {
		switch name {
		case "email_text":
			emailCol = i
		case "response_text":
			responseCol = i
		}
	}
	if emailCol < 0 || responseCol < 0 {
		return nil, fmt.Errorf("%w: corpus must have email_text and response_text columns", domain.ErrInvalidInput)
	}

	var pairs []domain.HistoricalPair
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading corpus line %d: %w", line, err)
		}
		if emailCol >= len(row) || responseCol >= len(row) {
			return nil, fmt.Errorf("%w: corpus line %d has too few columns", domain.ErrInvalidInput, line)
		}

		pair := domain.HistoricalPair{
			EmailText:    row[emailCol],
			ResponseText: row[responseCol],
		}
		for i, name := range header {
			if i == emailCol || i == responseCol || i >= len(row) {
				continue
			}
			if pair.Metadata == nil {
				pair.Metadata = make(map[string]string)
			}
			pair.Metadata[name] = row[i]
		}
		if err := pair.Validate(); err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", line, err)
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}
