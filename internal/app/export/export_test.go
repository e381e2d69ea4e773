package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"s2x/internal/app/testutil"
)

func TestToExcel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "history.xlsx")
	entries := testutil.TestHistory(3)

	require.NoError(t, ToExcel(entries, out))

	file, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 4)
	assert.Equal(t, "Job ID", rows[0].Cells[1].Value)
	assert.Equal(t, "job-3", rows[1].Cells[1].Value)
	assert.Equal(t, "es", rows[1].Cells[2].Value)
	assert.Equal(t, entries[0].Artifacts["srt"], rows[1].Cells[4].Value)
	assert.Equal(t, testutil.TestAudioURL, rows[3].Cells[6].Value)
}

func TestToExcel_BadPath(t *testing.T) {
	err := ToExcel(nil, filepath.Join(t.TempDir(), "missing", "dir", "h.xlsx"))
	assert.Error(t, err)
}
