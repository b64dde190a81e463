package dataset

import (
	"dailyq/internal/question"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names expected in the dataset header.
const (
	ColumnID             = "id"
	ColumnTitle          = "title"
	ColumnDifficulty     = "difficulty"
	ColumnDescription    = "description"
	ColumnURL            = "url"
	ColumnFrequency      = "frequency"
	ColumnRating         = "rating"
	ColumnLikes          = "likes"
	ColumnAcceptanceRate = "acceptance_rate"
	ColumnCompanies      = "companies"
	ColumnAskedByFAANG   = "asked_by_faang"
	ColumnIsPremium      = "is_premium"
)

var requiredColumns = []string{ColumnID, ColumnTitle, ColumnDifficulty}

// RowError describes a dataset row that could not be turned into a question.
// Such rows are skipped by Read.
type RowError struct {
	line    int
	message string
}

// Error returns the error text with the source line number.
func (re *RowError) Error() string {
	return fmt.Sprintf("dataset line %d: %s", re.line, re.message)
}

// Line is the 1-based CSV line number of the rejected row.
func (re *RowError) Line() int {
	return re.line
}

// NewRowError creates a RowError for the given line.
func NewRowError(line int, message string) *RowError {
	return &RowError{line: line, message: message}
}

// Load reads all questions from a CSV file, premium ones included.
func Load(path string) ([]question.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses CSV content addressed by header names. Column order is free.
// Numeric cells that are empty or malformed become nil instead of failing the row;
// rows without a usable id are logged and skipped.
func Read(r io.Reader) ([]question.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("dataset header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("dataset: missing column %q", name)
		}
	}

	questions := []question.Question{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		line, _ := reader.FieldPos(0)

		q, rowErr := parseRow(line, record, columns)
		if rowErr != nil {
			slog.Warn("Skipping dataset row", "error", rowErr)
			continue
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func parseRow(line int, record []string, columns map[string]int) (question.Question, *RowError) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rawID := cell(ColumnID)
	id, err := strconv.Atoi(rawID)
	if err != nil {
		// ids exported by spreadsheets sometimes come as "12.0"
		f, ferr := strconv.ParseFloat(rawID, 64)
		if ferr != nil || f != float64(int(f)) {
			return question.Question{}, NewRowError(line, fmt.Sprintf("invalid id %q", rawID))
		}
		id = int(f)
	}

	q := question.Question{
		ID:             id,
		Title:          cell(ColumnTitle),
		Difficulty:     cell(ColumnDifficulty),
		Description:    rawCell(record, columns, ColumnDescription),
		URL:            cell(ColumnURL),
		Frequency:      parseNumber(cell(ColumnFrequency)),
		Rating:         parseNumber(cell(ColumnRating)),
		Likes:          parseNumber(cell(ColumnLikes)),
		AcceptanceRate: parseNumber(cell(ColumnAcceptanceRate)),
		AskedByFAANG:   parseFlag(cell(ColumnAskedByFAANG)),
		IsPremium:      parseFlag(cell(ColumnIsPremium)),
	}
	if companies := cell(ColumnCompanies); companies != "" {
		q.Companies = &companies
	}

	return q, nil
}

// rawCell keeps the description untrimmed; its layout matters when rendered.
func rawCell(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func parseNumber(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseFlag(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v != 0
}
