package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDirSourceReadsJSONBatchesInFileNameOrder(t *testing.T) {
	dir := t.TempDir()

	// students2 written first to prove ordering comes from names, not mtime
	writeFile(t, dir, "students2.json", `[
		{"Roll Number": "207Z1A0231", "Name of the Student": "Second Batch"}
	]`)
	writeFile(t, dir, "students1.json", `[
		{"Roll Number": "197Z1A0101", "Name of the Student": "First Batch", "Aadhar No.": 123456789012, "Student Mobile": 9876543210}
	]`)
	writeFile(t, dir, "notes.txt", "ignored")

	batches, err := DirSource{Dir: dir}.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, "students1", batches[0].Name)
	assert.Equal(t, "students2", batches[1].Name)

	require.Len(t, batches[0].Rows, 1)
	row := batches[0].Rows[0]
	assert.Equal(t, "197Z1A0101", row["Roll Number"])
	assert.Equal(t, "123456789012", row["Aadhar No."], "numeric cells are coerced to strings")
	assert.Equal(t, "9876543210", row["Student Mobile"])
}

func TestDirSourceReadsExcelBatches(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Roll Number", "Name of the Student", "Gender"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"217Z1A1205", "Rohit Verma", "M"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"", "", ""}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "students3.xlsx")))
	require.NoError(t, f.Close())

	batches, err := DirSource{Dir: dir}.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 1)

	assert.Equal(t, "students3", batches[0].Name)
	require.NotEmpty(t, batches[0].Rows)
	assert.Equal(t, "217Z1A1205", batches[0].Rows[0]["Roll Number"])
	assert.Equal(t, "Rohit Verma", batches[0].Rows[0]["Name of the Student"])
}

func TestDirSourceMissingDirectoryErrors(t *testing.T) {
	_, err := DirSource{Dir: filepath.Join(t.TempDir(), "absent")}.Batches()
	assert.Error(t, err)
}

func TestDirSourceSkipsMalformedFilesKeepingTheRest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "students1.json", `{"not": "an array"}`)
	writeFile(t, dir, "students2.json", `[
		{"Roll Number": "207Z1A0231", "Name of the Student": "Survivor"}
	]`)

	batches, err := DirSource{Dir: dir}.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "students2", batches[0].Name)
	assert.Equal(t, "Survivor", batches[0].Rows[0]["Name of the Student"])
}

func TestDirSourceAllFilesMalformedYieldsNoBatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "students1.json", `{"not": "an array"}`)

	batches, err := DirSource{Dir: dir}.Batches()
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
