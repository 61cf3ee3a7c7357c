package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

const (
	summarySheet = "Summary"
	daysSheet    = "Days"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var dayHeaders = []string{"Date", "Recorded", "Performed", "With Jamat", "Progress %"}

// WriteReport renders a statistics report as an xlsx workbook with a
// summary sheet and one row per day.
func WriteReport(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	stats := report.Statistics
	summary := [][]any{
		{"Range", report.Range},
		{"Start date", report.StartDate},
		{"End date", report.EndDate},
		{"Performed", stats.Performed},
		{"Missed", stats.Missed},
		{"With Jamat", stats.WithJamat},
		{"Total", stats.Total},
		{"Performed %", stats.PerformedPercentage},
		{"Jamat %", stats.JamatPercentage},
		{"Consistency", report.Consistency},
		{"Current streak", report.CurrentStreak},
		{"Longest streak", report.LongestStreak},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(daysSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	header := make([]any, len(dayHeaders))
	for i, h := range dayHeaders {
		header[i] = h
	}
	if err := setRow(f, daysSheet, 1, header); err != nil {
		return err
	}

	for i, day := range report.Days {
		row := []any{day.Date, day.Recorded, day.Performed, day.WithJamat, day.Progress}
		if err := setRow(f, daysSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, val := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}
