// internal/report/xlsx.go
//
// Progress report workbook for parents: a summary sheet with per-activity
// totals and a history sheet with one row per finished run. Sheets are laid
// out right-to-left for the Arabic titles.

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/results"
)

const (
	SummarySheet = "الملخص"
	HistorySheet = "السجل"
)

var (
	summaryHeader = []any{"النشاط", "المحاولات", "صحيح", "خطأ", "مجموع النقاط", "أفضل نتيجة"}
	historyHeader = []any{"التاريخ", "النشاط", "صحيح", "خطأ", "النقاط", "المدة (ث)"}
)

// Title returns the Arabic menu title of an activity, or its id.
func Title(a game.Activity) string {
	for _, info := range game.Catalog {
		if info.ID == a {
			return info.Title
		}
	}
	return string(a)
}

// Write renders the workbook for player to w.
func Write(w io.Writer, player string, totals []results.Total, history []game.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(HistorySheet); err != nil {
		return err
	}
	rtl := true
	for _, sh := range []string{SummarySheet, HistorySheet} {
		if err := f.SetSheetView(sh, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(SummarySheet, "A1", "تقرير التقدم: "+player); err != nil {
		return err
	}
	if err := writeRow(f, SummarySheet, 3, summaryHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, 3, 3, bold); err != nil {
		return err
	}
	for i, t := range totals {
		row := []any{Title(t.Activity), t.Runs, t.Correct, t.Incorrect, t.Score, t.Best}
		if err := writeRow(f, SummarySheet, 4+i, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, HistorySheet, 1, historyHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(HistorySheet, 1, 1, bold); err != nil {
		return err
	}
	for i, r := range history {
		row := []any{
			r.FinishedAt.UTC().Format(time.DateTime),
			Title(r.Activity),
			r.Stats.Correct,
			r.Stats.Incorrect,
			r.Stats.Score,
			int(r.FinishedAt.Sub(r.StartedAt).Seconds()),
		}
		if err := writeRow(f, HistorySheet, 2+i, row); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
