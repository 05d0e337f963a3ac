// Package export writes run history to spreadsheet files.
package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"video2md/internal/app/model"
)

// ToExcel writes the given runs to an xlsx workbook at outputFilePath.
func ToExcel(runs []model.Run, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Runs")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Input"
	headerRow.AddCell().Value = "Kind"
	headerRow.AddCell().Value = "Title"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Audio Duration (s)"
	headerRow.AddCell().Value = "Finished At"
	headerRow.AddCell().Value = "Formatted Path"
	headerRow.AddCell().Value = "Transcript"
	headerRow.AddCell().Value = "Error Message"

	for _, r := range runs {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(r.ID)
		row.AddCell().Value = r.Input
		row.AddCell().Value = r.Kind
		row.AddCell().Value = r.Title
		row.AddCell().Value = r.Language
		row.AddCell().Value = fmt.Sprint(r.AudioDuration)
		row.AddCell().Value = r.FinishedAt.Format(time.RFC3339)
		row.AddCell().Value = r.FormattedPath
		row.AddCell().Value = r.Transcript
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
