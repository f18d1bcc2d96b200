package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordtrail/wordtrail-api/internal/importer"
	"github.com/wordtrail/wordtrail-api/internal/mocks"
	"github.com/xuri/excelize/v2"
)

// writeCorpusXLSX builds a corpus spreadsheet with a header row and the
// given data rows, returning its path.
func writeCorpusXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		require.NoError(t, f.Close())
	}()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Prompt", "Answer", "Level"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportFromExcel(t *testing.T) {
	t.Parallel()

	path := writeCorpusXLSX(t, [][]string{
		{"die Katze", "cat", "a1"},
		{"der Hund", "dog", "a1"},
		{"der Baum", "tree", "a2"},
	})

	mem := mocks.NewMemoryStore()
	imp := importer.New(mem, mem.Items(), nil)

	result, err := imp.Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	count, err := mem.Items().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Imported items start at mastery zero.
	queue, err := mem.Items().ListReviewQueue(context.Background(), "a1", 0)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	for _, item := range queue {
		assert.Equal(t, 0, item.MasteryLevel)
	}
}

func TestImportSkipsUnusableRows(t *testing.T) {
	t.Parallel()

	path := writeCorpusXLSX(t, [][]string{
		{"die Katze", "cat", "a1"},
		{"", "", ""},             // blank padding row
		{"das Komma", "...", "a1"}, // punctuation-only answer
		{"der Hund", "dog", "a1"},
	})

	mem := mocks.NewMemoryStore()
	imp := importer.New(mem, mem.Items(), nil)

	result, err := imp.Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestImportCollectsRowErrors(t *testing.T) {
	t.Parallel()

	path := writeCorpusXLSX(t, [][]string{
		{"die Katze", "cat", "a1"},
		{"der Hund", "", "a1"},  // missing answer
		{"der Baum", "tree", ""}, // missing level
	})

	mem := mocks.NewMemoryStore()
	imp := importer.New(mem, mem.Items(), nil)

	result, err := imp.Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Errors, 2)
}

func TestImportFromCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corpus.csv")
	content := "Prompt,Answer,Level\ndie Katze,cat,a1\nder Hund,dog,a1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	mem := mocks.NewMemoryStore()
	imp := importer.New(mem, mem.Items(), nil)

	result, err := imp.Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)
}

func TestImportMissingFile(t *testing.T) {
	t.Parallel()

	mem := mocks.NewMemoryStore()
	imp := importer.New(mem, mem.Items(), nil)

	_, err := imp.Import(context.Background(),
		importer.DefaultConfig(filepath.Join(t.TempDir(), "absent.xlsx")))
	require.Error(t, err)
}
