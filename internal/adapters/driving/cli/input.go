package cli

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meridian-labs/themata/internal/core/domain"
)

// defaultFeedbackColumn is the CSV header looked up when --column is not
// given.
const defaultFeedbackColumn = "feedback"

// readFeedbackFile loads feedback texts from a CSV or plain-text file.
// CSV files are read by header column; any other extension is treated as
// one feedback entry per line. Blank entries are kept here and dropped
// by the ledger, so line numbers still line up with the source file.
func readFeedbackFile(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feedback file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readFeedbackCSV(f, column)
	}
	return readFeedbackLines(f)
}

// readCodesFile loads a manual code list, always one code per line. The
// file name does not matter here; a .csv extension still means lines, not
// a feedback-column table.
func readCodesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codes file: %w", err)
	}
	defer f.Close()
	return readFeedbackLines(f)
}

func readFeedbackCSV(f *os.File, column string) ([]string, error) {
	if column == "" {
		column = defaultFeedbackColumn
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q not in header %v", domain.ErrNoFeedbackColumn, column, header)
	}

	var texts []string
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		if idx >= len(record) {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, record[idx])
	}
	return texts, nil
}

func readFeedbackLines(f *os.File) ([]string, error) {
	var texts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feedback file: %w", err)
	}
	return texts, nil
}
