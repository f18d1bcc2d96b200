// Package importer loads a vocabulary corpus from an Excel or CSV file
// into the item store. It is used for first-run seeding and for topping up
// the corpus from curated spreadsheets.
package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// Config defines the import configuration.
type Config struct {
	FilePath     string // Path to the Excel or CSV file
	PromptColumn string // Column with the prompt (front of the card)
	AnswerColumn string // Column with the answer
	LevelColumn  string // Column with the level identifier
	SheetName    string // Name of the sheet to import
	StartRow     int    // The row to start importing from (1-based index)
}

// DefaultConfig returns the default import configuration.
func DefaultConfig(path string) Config {
	return Config{
		FilePath:     path,
		PromptColumn: "A",
		AnswerColumn: "B",
		LevelColumn:  "C",
		SheetName:    "Sheet1",
		StartRow:     2, // Skip the header row
	}
}

// Result holds the outcome of an import operation.
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer reads corpus files and persists the items they contain. All
// created items start at mastery zero.
type Importer struct {
	transactor store.Transactor
	items      store.ItemStore
	logger     *slog.Logger
}

// New creates a corpus importer. log may be nil for the default logger.
func New(transactor store.Transactor, items store.ItemStore, log *slog.Logger) *Importer {
	if transactor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("transactor cannot be nil")
	}
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("items cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Importer{
		transactor: transactor,
		items:      items,
		logger:     log.With(slog.String("component", "importer")),
	}
}

// Import loads a corpus file, dispatching on the file extension. Row-level
// problems are collected in the result; only file-level failures error.
func (imp *Importer) Import(ctx context.Context, cfg Config) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, imp.logger)

	ext := strings.ToLower(filepath.Ext(cfg.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSVRows(cfg.FilePath)
	} else {
		rows, err = readExcelRows(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}

	err = imp.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		items := imp.items.WithTx(tx)

		for i, row := range rows {
			rowNum := i + 1
			if rowNum < cfg.StartRow {
				continue
			}
			result.TotalProcessed++

			if err := imp.importRow(ctx, items, cfg, row, result); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import corpus: %w", err)
	}

	log.Info("corpus import finished",
		slog.String("file", filepath.Base(cfg.FilePath)),
		slog.Int("processed", result.TotalProcessed),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)))

	return result, nil
}

// importRow converts one spreadsheet row into an item.
func (imp *Importer) importRow(
	ctx context.Context,
	items store.ItemStore,
	cfg Config,
	row []string,
	result *Result,
) error {
	prompt := cellValue(row, cfg.PromptColumn)
	answer := cellValue(row, cfg.AnswerColumn)
	levelID := cellValue(row, cfg.LevelColumn)

	// Blank rows are padding, not data.
	if prompt == "" && answer == "" {
		result.Skipped++
		return nil
	}
	if prompt == "" {
		return errors.New("prompt cannot be empty")
	}
	if answer == "" {
		return errors.New("answer cannot be empty")
	}
	// Punctuation-only answers make useless quiz options.
	if !hasLetterOrDigit(answer) {
		result.Skipped++
		return nil
	}
	if levelID == "" {
		return errors.New("level ID cannot be empty")
	}

	item, err := domain.NewItem(prompt, answer, levelID)
	if err != nil {
		return err
	}
	if err := items.Create(ctx, item); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			result.Skipped++
			return nil
		}
		return err
	}

	result.Created++
	return nil
}

// readExcelRows loads all rows from one sheet of an Excel file.
func readExcelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// readCSVRows loads all records from a CSV file.
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellValue reads and trims the cell at the given Excel-style column.
func cellValue(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnToIndex converts an Excel column letter to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		c := column[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A'+1)
	}
	return index - 1
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
