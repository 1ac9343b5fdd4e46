package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/results"
)

func TestWriteWorkbook(t *testing.T) {
	end := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	totals := []results.Total{{Activity: game.WordHunter, Runs: 2, Correct: 5, Incorrect: 1, Score: 48, Best: 30}}
	history := []game.Run{{
		Activity:   game.WordHunter,
		Stats:      game.Stats{Correct: 3, Score: 30},
		StartedAt:  end.Add(-90 * time.Second),
		FinishedAt: end,
	}}

	var buf bytes.Buffer
	if err := Write(&buf, "salma", totals, history); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || rows[3][0] != Title(game.WordHunter) || rows[3][4] != "48" {
		t.Fatalf("summary rows = %v", rows)
	}
	rows, err = f.GetRows(HistorySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "2024-05-01 10:00:00" || rows[1][5] != "90" {
		t.Fatalf("history rows = %v", rows)
	}
}

func TestTitleFallsBackToID(t *testing.T) {
	if Title("unknown") != "unknown" {
		t.Fatal("unknown activity should keep its id")
	}
	if Title(game.FlashWord) == string(game.FlashWord) {
		t.Fatal("known activity should use its menu title")
	}
}
