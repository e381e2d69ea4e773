package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"s2x/internal/app/model"
)

const excerptLength = 200

var historyColumns = []string{"Date", "Job ID", "Language", "Excerpt", "SRT", "VTT", "Audio URL"}

// ToExcel writes the history ledger, most recent first, to an xlsx workbook.
func ToExcel(entries []model.HistoryEntry, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("History")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, name := range historyColumns {
		headerRow.AddCell().Value = name
	}

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = formatDate(e.CreatedAt)
		row.AddCell().Value = e.ID
		row.AddCell().Value = e.Language
		row.AddCell().Value = e.Excerpt(excerptLength)
		row.AddCell().Value = e.Artifacts["srt"]
		row.AddCell().Value = e.Artifacts["vtt"]
		row.AddCell().Value = e.AudioURL
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}

func formatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
