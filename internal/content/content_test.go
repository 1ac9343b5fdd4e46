package content

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedContentIsValid(t *testing.T) {
	c, err := Embedded()
	if err != nil {
		t.Fatalf("embedded content: %v", err)
	}
	if len(c.Letters) == 0 || len(c.HunterLevels) == 0 || len(c.MatchingPairs) == 0 {
		t.Fatal("embedded content is missing sections")
	}
	if len(c.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(c.Days))
	}
}

func TestLetters(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		{"قلم", []string{"ق", "ل", "م"}},
		{"قَلَمٌ", []string{"قَ", "لَ", "مٌ"}},
		{"قِطٌّ", []string{"قِ", "طٌّ"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Letters(tt.word)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Letters(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  الشَّمْسُ "); got != "الشمس" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestValidateRejectsMissingAnswer(t *testing.T) {
	doc := `{"letterQuestions":[{"id":1,"correctLetter":"ب","options":["ت","ث"]}]}`
	_, err := Parse([]byte(doc))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidateRejectsConflictingCrossword(t *testing.T) {
	doc := `{"crosswords":[{"id":1,"size":4,"clues":[
		{"number":1,"answer":"قلم","row":0,"col":0,"direction":"across"},
		{"number":2,"answer":"بيت","row":0,"col":0,"direction":"down"}]}]}`
	_, err := Parse([]byte(doc))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for conflicting clues, got %v", err)
	}
}

func TestValidateRejectsCrosswordOutsideGrid(t *testing.T) {
	doc := `{"crosswords":[{"id":1,"size":2,"clues":[
		{"number":1,"answer":"قلم","row":0,"col":0,"direction":"across"}]}]}`
	if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidateRejectsOversizedHunterWord(t *testing.T) {
	doc := `{"hunterLevels":[{"level":1,"gridSize":3,"exercises":[["مدرسة"]]}]}`
	if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidateStoryOrder(t *testing.T) {
	doc := `{"stories":[{"id":1,"emojis":["a","b","c"],"correctOrder":["a","b","b"]}]}`
	if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
