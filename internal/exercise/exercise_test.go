package exercise

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return t0.Add(d) }

func mustApply(t *testing.T, ex game.Exercise, now time.Time, a game.Action) []game.Answer {
	t.Helper()
	got, err := ex.Apply(now, a)
	if err != nil {
		t.Fatalf("%s: %v", a.Kind, err)
	}
	return got
}

func wantAnswers(t *testing.T, got []game.Answer, want ...game.Answer) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("answers = %v, want %v", got, want)
	}
}

func TestLetterChoiceWrongLetter(t *testing.T) {
	qs := []content.LetterQuestion{{ID: 1, WordHint: "_ـيْتٌ", Correct: "ب", Options: []string{"ب", "ت", "ث"}, Vocalized: "بَيْتٌ"}}
	c, err := NewLetterChoice(qs, game.NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	wantAnswers(t, mustApply(t, c, t0, game.Action{Kind: KindChoose, Option: "ت"}), game.Wrong(-0.5))

	v := c.View().(ChoiceView)
	marks := map[string]string{}
	for _, o := range v.Options {
		marks[o.Text] = o.Mark
	}
	if marks["ب"] != MarkCorrect || marks["ت"] != MarkWrong || marks["ث"] != MarkDim {
		t.Fatalf("marks = %v", marks)
	}
	if v.Reveal != "بَيْتٌ" {
		t.Fatalf("reveal = %q", v.Reveal)
	}
	// Feedback is showing: further choices are ignored.
	wantAnswers(t, mustApply(t, c, t0, game.Action{Kind: KindChoose, Option: "ب"}))

	mustApply(t, c, t0, game.Action{Kind: KindNext})
	wantAnswers(t, mustApply(t, c, t0, game.Action{Kind: KindChoose, Option: "ب"}), game.Right(1))
}

func TestChoiceRejectsUnknownOption(t *testing.T) {
	qs := []content.WordQuestion{{ID: 1, SentenceHint: "_ في السماء", Correct: "الشمس", Options: []string{"الشمس", "السمكة"}}}
	c, _ := NewWordChoice(qs, game.NewRand(1))
	if _, err := c.Apply(t0, game.Action{Kind: KindChoose, Option: "قلم"}); !errors.Is(err, game.ErrInvalidAction) {
		t.Fatalf("want ErrInvalidAction, got %v", err)
	}
	wantAnswers(t, mustApply(t, c, t0, game.Action{Kind: KindChoose, Option: "السمكة"}), game.Wrong(0))
}

func TestListenSpeech(t *testing.T) {
	qs := []content.ListenQuestion{{ID: 1, Correct: "قطة", Options: []string{"قطة", "قلم"}}}

	c, _ := NewListenChoice(qs, game.NewRand(1), nil)
	mustApply(t, c, t0, game.Action{Kind: KindSpeak})
	if v := c.View().(ChoiceView); v.Notice != SpeechNotice || v.Say != nil {
		t.Fatalf("view = %+v", v)
	}

	c, _ = NewListenChoice(qs, game.NewRand(1), ClientSpeech{})
	mustApply(t, c, t0, game.Action{Kind: KindSpeak})
	v := c.View().(ChoiceView)
	if v.Say == nil || v.Say.Text != "قطة" || v.Say.Lang != "ar-SA" || v.Say.Rate != 0.8 {
		t.Fatalf("say = %+v", v.Say)
	}
	wantAnswers(t, mustApply(t, c, t0, game.Action{Kind: KindChoose, Option: "قطة"}), game.Right(15))
}

func newTestMatching(t *testing.T) *Matching {
	t.Helper()
	m, err := NewMatching(
		[]content.MatchingLevel{{Level: 1, Pairs: 2, StudySeconds: 2, Rounds: 1}},
		[]content.MatchingPair{{ID: 1, Word: "قطة", Emoji: "🐱"}, {ID: 2, Word: "كلب", Emoji: "🐶"}},
		game.NewRand(5),
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// cardsOf returns the indexes of the two cards of a pair.
func cardsOf(m *Matching, pair int) (int, int) {
	var idx []int
	for i, c := range m.cards {
		if c.PairID == pair {
			idx = append(idx, i)
		}
	}
	return idx[0], idx[1]
}

func TestMatchingStudyThenMatch(t *testing.T) {
	m := newTestMatching(t)
	mustApply(t, m, t0, game.Action{Kind: KindStart})
	v := m.View().(MatchingView)
	if v.Phase != PhaseStudy || len(v.Cards) != 4 || v.Countdown != 2 {
		t.Fatalf("after start: %+v", v)
	}
	for _, c := range v.Cards {
		if !c.Up {
			t.Fatal("cards must be face up while studying")
		}
	}
	m.Advance(at(time.Second))
	if m.View().(MatchingView).Countdown != 1 {
		t.Fatal("countdown did not tick")
	}
	m.Advance(at(2 * time.Second))
	v = m.View().(MatchingView)
	if v.Phase != PhaseMatch {
		t.Fatalf("phase = %s", v.Phase)
	}
	for _, c := range v.Cards {
		if c.Up {
			t.Fatal("cards must be face down after study")
		}
	}
}

func TestMatchingMismatchFlipsBack(t *testing.T) {
	m := newTestMatching(t)
	mustApply(t, m, t0, game.Action{Kind: KindStart})
	m.Advance(at(2 * time.Second))

	a, _ := cardsOf(m, 1)
	b, _ := cardsOf(m, 2)
	flipAt := at(3 * time.Second)
	wantAnswers(t, mustApply(t, m, flipAt, game.Action{Kind: KindFlip, Index: a}))
	wantAnswers(t, mustApply(t, m, flipAt, game.Action{Kind: KindFlip, Index: b}))
	if m.View().(MatchingView).Moves != 1 {
		t.Fatal("second flip must count a move")
	}

	wantAnswers(t, m.Advance(flipAt.Add(499*time.Millisecond)))
	wantAnswers(t, m.Advance(flipAt.Add(500*time.Millisecond)), game.Wrong(0))
	if !m.cards[a].Up || !m.cards[b].Up {
		t.Fatal("cards flipped back too early")
	}
	// Still checking: a third flip is ignored.
	_, c := cardsOf(m, 1)
	mustApply(t, m, flipAt.Add(time.Second), game.Action{Kind: KindFlip, Index: c})
	if m.cards[c].Up {
		t.Fatal("flip accepted while checking")
	}

	m.Advance(flipAt.Add(1700 * time.Millisecond))
	if m.cards[a].Up || m.cards[b].Up {
		t.Fatal("mismatched cards must turn face down")
	}
	if m.checking {
		t.Fatal("checking lock not released")
	}
}

func TestMatchingPairsScoreAndComplete(t *testing.T) {
	m := newTestMatching(t)
	mustApply(t, m, t0, game.Action{Kind: KindStart})
	m.Advance(at(2 * time.Second))

	now := at(3 * time.Second)
	for _, pair := range []int{1, 2} {
		a, b := cardsOf(m, pair)
		mustApply(t, m, now, game.Action{Kind: KindFlip, Index: a})
		mustApply(t, m, now, game.Action{Kind: KindFlip, Index: b})
		now = now.Add(500 * time.Millisecond)
		wantAnswers(t, m.Advance(now), game.Right(20))
		now = now.Add(200 * time.Millisecond)
		m.Advance(now)
	}
	if m.phase != PhaseMatch {
		t.Fatalf("phase changed before the transition delay: %s", m.phase)
	}
	m.Advance(now.Add(500 * time.Millisecond))
	if m.phase != PhaseGameComplete {
		t.Fatalf("phase = %s, want game_complete", m.phase)
	}
	// Flipping a matched card does nothing.
	if _, err := m.Apply(now, game.Action{Kind: KindFlip, Index: 0}); err != nil {
		t.Fatal(err)
	}
}

func TestMatchingRoundsAndLevels(t *testing.T) {
	m, _ := NewMatching(
		[]content.MatchingLevel{{Level: 1, Pairs: 1, StudySeconds: 1, Rounds: 2}, {Level: 2, Pairs: 1, StudySeconds: 1, Rounds: 1}},
		[]content.MatchingPair{{ID: 1, Word: "قطة", Emoji: "🐱"}},
		game.NewRand(2),
	)
	play := func(now time.Time) time.Time {
		m.Advance(now.Add(time.Second))
		now = now.Add(time.Second)
		mustApply(t, m, now, game.Action{Kind: KindFlip, Index: 0})
		mustApply(t, m, now, game.Action{Kind: KindFlip, Index: 1})
		now = now.Add(time.Second)
		m.Advance(now)
		return now
	}
	mustApply(t, m, t0, game.Action{Kind: KindStart})
	now := play(t0)
	if m.phase != PhaseRoundComplete {
		t.Fatalf("phase = %s", m.phase)
	}
	mustApply(t, m, now, game.Action{Kind: KindNextRound})
	now = play(now)
	if m.phase != PhaseLevelComplete {
		t.Fatalf("phase = %s", m.phase)
	}
	mustApply(t, m, now, game.Action{Kind: KindNextLevel})
	if m.phase != PhaseStart || m.View().(MatchingView).Level != 2 {
		t.Fatalf("next level: %+v", m.View())
	}
	mustApply(t, m, now, game.Action{Kind: KindRestart})
	if m.level != 0 || m.round != 1 {
		t.Fatal("restart must go back to level 1 round 1")
	}
}

// pickInOrder picks scramble tiles so they spell word.
func pickInOrder(t *testing.T, s *Scramble, units []string) []game.Answer {
	t.Helper()
	var out []game.Answer
	for _, u := range units {
		i := -1
		for k, tile := range s.tiles {
			if tile == u && !s.used[k] {
				i = k
				break
			}
		}
		out = append(out, mustApply(t, s, t0, game.Action{Kind: KindPick, Index: i})...)
	}
	return out
}

func TestScrambleAutoChecks(t *testing.T) {
	s, _ := NewScramble([]content.ScrambleQuestion{{ID: 1, Word: "بَيْت"}}, game.NewRand(3))
	units := content.Letters("بَيْت")
	if len(s.tiles) != 3 {
		t.Fatalf("tiles = %v", s.tiles)
	}
	wantAnswers(t, pickInOrder(t, s, units), game.Right(1))

	mustApply(t, s, t0, game.Action{Kind: KindNext})
	rev := slices.Clone(units)
	slices.Reverse(rev)
	wantAnswers(t, pickInOrder(t, s, rev), game.Wrong(-0.5))

	mustApply(t, s, t0, game.Action{Kind: KindNext})
	pickInOrder(t, s, units[:2])
	mustApply(t, s, t0, game.Action{Kind: KindBack})
	if got := s.View().(ScrambleView).Answer; got != units[0] {
		t.Fatalf("after back answer = %q", got)
	}
	mustApply(t, s, t0, game.Action{Kind: KindReset})
	if got := s.View().(ScrambleView).Answer; got != "" {
		t.Fatalf("after reset answer = %q", got)
	}
}

func TestScrambleResetAfterFeedbackIsIgnored(t *testing.T) {
	s, _ := NewScramble([]content.ScrambleQuestion{{ID: 1, Word: "بَيْت"}}, game.NewRand(3))
	units := content.Letters("بَيْت")
	wantAnswers(t, pickInOrder(t, s, units), game.Right(1))

	mustApply(t, s, t0, game.Action{Kind: KindReset})
	v := s.View().(ScrambleView)
	if v.Feedback != game.FeedbackCorrect || v.Answer != "بَيْت" {
		t.Fatalf("reset cleared an answered question: %+v", v)
	}
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindPick, Index: 0}))
}

func placeWords(t *testing.T, s *Sentence, words []string) {
	t.Helper()
	for _, w := range words {
		i := slices.Index(s.View().(SentenceView).Pool, w)
		mustApply(t, s, t0, game.Action{Kind: KindPick, Index: i})
	}
}

func TestSentenceExactMatch(t *testing.T) {
	const sentence = "ذهب الولد إلى المدرسة"
	s, _ := NewSentence([]content.SentenceQuestion{{ID: 1, Sentence: sentence}}, game.NewRand(4))

	placeWords(t, s, []string{"ذهب", "الولد"})
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}))

	placeWords(t, s, []string{"إلى", "المدرسة"})
	if !s.View().(SentenceView).CanCheck {
		t.Fatal("check should be available with an empty pool")
	}
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}), game.Right(25))

	mustApply(t, s, t0, game.Action{Kind: KindNext})
	placeWords(t, s, []string{"الولد", "ذهب", "إلى", "المدرسة"})
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}), game.Wrong(0))
}

func TestSentenceRemoveReturnsTile(t *testing.T) {
	s, _ := NewSentence([]content.SentenceQuestion{{ID: 1, Sentence: "القط نائم"}}, game.NewRand(4))
	placeWords(t, s, []string{"القط"})
	mustApply(t, s, t0, game.Action{Kind: KindRemove, Index: 0})
	v := s.View().(SentenceView)
	if len(v.Placed) != 0 || len(v.Pool) != 2 {
		t.Fatalf("view = %+v", v)
	}
}

func TestSentenceReset(t *testing.T) {
	const sentence = "ذهب الولد إلى المدرسة"
	s, _ := NewSentence([]content.SentenceQuestion{{ID: 1, Sentence: sentence}}, game.NewRand(4))

	placeWords(t, s, []string{"ذهب", "الولد"})
	mustApply(t, s, t0, game.Action{Kind: KindReset})
	v := s.View().(SentenceView)
	if len(v.Placed) != 0 || len(v.Pool) != 4 {
		t.Fatalf("after reset view = %+v", v)
	}

	placeWords(t, s, []string{"ذهب", "الولد", "إلى", "المدرسة"})
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}), game.Right(25))
	// Answered: reset keeps the sentence and it cannot score again.
	mustApply(t, s, t0, game.Action{Kind: KindReset})
	if v := s.View().(SentenceView); v.Feedback != game.FeedbackCorrect || len(v.Placed) != 4 {
		t.Fatalf("reset cleared an answered sentence: %+v", v)
	}
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}))
}

func testCrossword() []content.Crossword {
	return []content.Crossword{{
		ID:   1,
		Size: 3,
		Clues: []content.CrosswordClue{
			{Number: 1, Clue: "نكتب به", Answer: "قلم", Row: 0, Col: 0, Direction: content.Across},
			{Number: 1, Clue: "يضيء ليلا", Answer: "قمر", Row: 0, Col: 0, Direction: content.Down},
		},
	}}
}

func typeCell(t *testing.T, c *Crossword, r, col int, text string) []game.Answer {
	t.Helper()
	return mustApply(t, c, t0, game.Action{Kind: KindType, Row: r, Col: col, Text: text})
}

func TestCrosswordChecksFilledClues(t *testing.T) {
	c, _ := NewCrossword(testCrossword(), game.NewRand(1))
	wantAnswers(t, typeCell(t, c, 0, 0, "ق"))
	wantAnswers(t, typeCell(t, c, 0, 1, "ل"))
	wantAnswers(t, typeCell(t, c, 0, 2, "م"), game.Right(1))

	// Locked cells ignore input and are never re-awarded.
	wantAnswers(t, typeCell(t, c, 0, 2, "ب"))
	if c.View().(CrosswordView).Cells[0][2].Entry != "م" {
		t.Fatal("locked cell changed")
	}

	wantAnswers(t, typeCell(t, c, 1, 0, "م"))
	wantAnswers(t, typeCell(t, c, 2, 0, "ن"), game.Wrong(-0.5))
	wantAnswers(t, typeCell(t, c, 2, 0, "ر"), game.Right(1))
	if !c.Done() {
		t.Fatal("crossword should be done")
	}
	if _, err := c.Apply(t0, game.Action{Kind: KindType, Row: 2, Col: 2, Text: "ا"}); !errors.Is(err, game.ErrInvalidAction) {
		t.Fatalf("typing into a blocked cell: %v", err)
	}
}

func TestCrosswordSelectToggles(t *testing.T) {
	c, _ := NewCrossword(testCrossword(), game.NewRand(1))
	mustApply(t, c, t0, game.Action{Kind: KindSelect, Row: 0, Col: 0})
	first := c.active
	mustApply(t, c, t0, game.Action{Kind: KindSelect, Row: 0, Col: 0})
	if c.active == first {
		t.Fatal("selecting a shared cell twice must toggle direction")
	}
	mustApply(t, c, t0, game.Action{Kind: KindSelect, Row: 0, Col: 2})
	if c.active != 0 {
		t.Fatalf("active = %d, want the across clue", c.active)
	}
}

func TestRiddleSuggestionsAndTyping(t *testing.T) {
	rs := []content.Riddle{{ID: 1, Riddle: "لي أربع أرجل ولا أمشي", Answer: "طاولة", Options: []string{"طاولة", "قطة"}}}
	r, _ := NewRiddle(rs, game.NewRand(1), t0)

	wantAnswers(t, mustApply(t, r, t0, game.Action{Kind: KindSuggest, Option: "طاولة"}))
	if d, ok := r.Deadline(); !ok || !d.Equal(at(15*time.Second)) {
		t.Fatalf("deadline = %v %v", d, ok)
	}
	r.Advance(at(15 * time.Second))
	if len(r.View().(RiddleView).Suggestions) != 2 {
		t.Fatal("suggestions should be visible after 15s")
	}

	wantAnswers(t, mustApply(t, r, at(16*time.Second), game.Action{Kind: KindSubmit, Text: "   "}))
	wantAnswers(t, mustApply(t, r, at(16*time.Second), game.Action{Kind: KindSubmit, Text: "كرسي"}), game.Wrong(-0.5))
	wantAnswers(t, mustApply(t, r, at(16*time.Second), game.Action{Kind: KindSuggest, Option: "قطة"}))
	r.Advance(at(18 * time.Second))
	wantAnswers(t, mustApply(t, r, at(18*time.Second), game.Action{Kind: KindSuggest, Option: "قطة"}), game.Wrong(-0.5))
	r.Advance(at(20 * time.Second))
	wantAnswers(t, mustApply(t, r, at(20*time.Second), game.Action{Kind: KindSuggest, Option: "قطة"}))
	wantAnswers(t, mustApply(t, r, at(20*time.Second), game.Action{Kind: KindSubmit, Text: " طَاوِلَة "}), game.Right(1))
}

func newTestHunter(t *testing.T) *Hunter {
	t.Helper()
	h, err := NewHunter([]content.HunterLevel{{Level: 1, Title: "سهل", GridSize: 5, Exercises: [][]string{{"بحر"}}}}, game.NewRand(11))
	if err != nil {
		t.Fatal(err)
	}
	mustApply(t, h, t0, game.Action{Kind: KindSelectLevel, Index: 0})
	return h
}

func drag(t *testing.T, h *Hunter, now time.Time, from, to [2]int) []game.Answer {
	t.Helper()
	mustApply(t, h, now, game.Action{Kind: KindBegin, Row: from[0], Col: from[1]})
	mustApply(t, h, now, game.Action{Kind: KindExtend, Row: to[0], Col: to[1]})
	return mustApply(t, h, now, game.Action{Kind: KindEnd})
}

func TestHunterFindWordCompletesLevel(t *testing.T) {
	h := newTestHunter(t)
	sol, ok := h.puzzle.Solution("بحر")
	if !ok {
		t.Fatal("word was not placed")
	}
	first, last := sol[0], sol[len(sol)-1]
	wantAnswers(t, drag(t, h, t0, [2]int{first.Row, first.Col}, [2]int{last.Row, last.Col}), game.Right(10))
	// Selecting it again is a no-op.
	wantAnswers(t, drag(t, h, t0, [2]int{last.Row, last.Col}, [2]int{first.Row, first.Col}))

	h.Advance(at(1499 * time.Millisecond))
	if h.phase != HunterPlaying {
		t.Fatal("level completed too early")
	}
	h.Advance(at(1500 * time.Millisecond))
	if h.phase != HunterLevelComplete {
		t.Fatalf("phase = %s", h.phase)
	}
}

func TestHunterViewListsUnplacedWords(t *testing.T) {
	// Four 2-letter words with no shared letters need 8 cells; a 2x2 grid has 4.
	words := []string{"اب", "تث", "جح", "خد"}
	h, err := NewHunter([]content.HunterLevel{{Level: 1, Title: "صغير", GridSize: 2, Exercises: [][]string{words}}}, game.NewRand(5))
	if err != nil {
		t.Fatal(err)
	}
	mustApply(t, h, t0, game.Action{Kind: KindSelectLevel, Index: 0})

	v := h.View().(HunterView)
	if len(v.Unplaced) < 2 {
		t.Fatalf("unplaced = %v", v.Unplaced)
	}
	if len(v.Words)+len(v.Unplaced) != len(words) {
		t.Fatalf("words %v + unplaced %v do not cover %v", v.Words, v.Unplaced, words)
	}
	for _, w := range v.Unplaced {
		if slices.Contains(v.Words, w) {
			t.Fatalf("%q is both a target and unplaced", w)
		}
	}
}

func TestHunterMissesAndHint(t *testing.T) {
	h := newTestHunter(t)
	// A two-cell selection can never spell a three-letter word.
	wantAnswers(t, drag(t, h, t0, [2]int{0, 0}, [2]int{0, 1}), game.Wrong(-2))
	if h.View().(HunterView).Wrong == nil {
		t.Fatal("missed cells should flash")
	}
	// Input is blocked while the miss is showing.
	wantAnswers(t, drag(t, h, at(500*time.Millisecond), [2]int{1, 0}, [2]int{1, 1}))
	wantAnswers(t, mustApply(t, h, t0, game.Action{Kind: KindHint}))

	h.Advance(at(time.Second))
	wantAnswers(t, drag(t, h, at(time.Second), [2]int{1, 0}, [2]int{1, 1}), game.Wrong(-2))
	h.Advance(at(2 * time.Second))

	if !h.View().(HunterView).CanHint {
		t.Fatal("hint should be available after two misses")
	}
	wantAnswers(t, mustApply(t, h, at(2*time.Second), game.Action{Kind: KindHint}), game.Wrong(-5))
	if got := h.View().(HunterView).Hint; h.puzzle.Grid().Read(got) != "بحر" {
		t.Fatalf("hint path reads %q", h.puzzle.Grid().Read(got))
	}
}

// flashRound plays one word from ready to feedback and returns the answer.
func flashRound(t *testing.T, f *Flash, now time.Time, right bool) (time.Time, []game.Answer) {
	t.Helper()
	mustApply(t, f, now, game.Action{Kind: KindStart})
	for range 3 {
		now = now.Add(700 * time.Millisecond)
		f.Advance(now)
	}
	if f.phase != FlashFlashing {
		t.Fatalf("phase = %s, want flashing", f.phase)
	}
	now = now.Add(f.speed)
	f.Advance(now)
	if f.phase != FlashAnswering {
		t.Fatalf("phase = %s, want answering", f.phase)
	}
	w := f.words[f.idx]
	opt := w.Word
	if !right {
		for _, o := range w.Options {
			if o != w.Word {
				opt = o
				break
			}
		}
	}
	got := mustApply(t, f, now, game.Action{Kind: KindChoose, Option: opt})
	mustApply(t, f, now, game.Action{Kind: KindNext})
	return now, got
}

func TestFlashAdaptsSpeed(t *testing.T) {
	ws := []content.FlashWord{{ID: 1, Word: "شمس", Emoji: "☀️", Options: []string{"شمس", "قمر", "نجم"}}}
	f, _ := NewFlash(ws, game.NewRand(1))
	now := t0
	var got []game.Answer
	for range 3 {
		now, got = flashRound(t, f, now, true)
		wantAnswers(t, got, game.Right(5))
	}
	if f.Speed() != 450*time.Millisecond {
		t.Fatalf("speed = %v after a streak of 3", f.Speed())
	}
	now, got = flashRound(t, f, now, false)
	wantAnswers(t, got, game.Wrong(-2))
	if f.Speed() != 475*time.Millisecond || f.streak != 0 {
		t.Fatalf("speed = %v streak = %d after a miss", f.Speed(), f.streak)
	}
	for range 3 {
		now, _ = flashRound(t, f, now, false)
	}
	if f.Speed() != 500*time.Millisecond {
		t.Fatalf("speed = %v, want capped at 500ms", f.Speed())
	}
}

func TestFlashIgnoresEarlyChoice(t *testing.T) {
	ws := []content.FlashWord{{ID: 1, Word: "شمس", Options: []string{"شمس", "قمر"}}}
	f, _ := NewFlash(ws, game.NewRand(1))
	wantAnswers(t, mustApply(t, f, t0, game.Action{Kind: KindChoose, Option: "شمس"}))
}

func TestBoardDrop(t *testing.T) {
	b := newBoard([]string{"أ", "ب", "ج"}, 2)
	if err := b.Drop(SourcePool, 0, 0); err != nil {
		t.Fatal(err)
	}
	if b.Slots[0] != "أ" || !slices.Equal(b.Pool, []string{"ب", "ج"}) {
		t.Fatalf("pool drop: %+v", b)
	}
	// Dropping onto an occupied slot from the pool returns the old tile.
	b.Drop(SourcePool, 0, 0)
	if b.Slots[0] != "ب" || !slices.Equal(b.Pool, []string{"ج", "أ"}) {
		t.Fatalf("replace: %+v", b)
	}
	// Slot to slot swaps, including with an empty slot.
	b.Drop(SourceSlot, 0, 1)
	if b.Slots[0] != "" || b.Slots[1] != "ب" {
		t.Fatalf("move: %+v", b)
	}
	b.Drop(SourcePool, 0, 0)
	b.Drop(SourceSlot, 0, 1)
	if !slices.Equal(b.Slots, []string{"ب", "ج"}) || !b.Full() {
		t.Fatalf("swap: %+v", b)
	}
	if err := b.Drop(SourcePool, 5, 0); !errors.Is(err, game.ErrInvalidAction) {
		t.Fatalf("bad index: %v", err)
	}
	b.Lift(0)
	if b.Slots[0] != "" || !slices.Contains(b.Pool, "ب") {
		t.Fatalf("lift: %+v", b)
	}
}

var week = []string{"الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت", "الأحد"}

func TestDaysOrdering(t *testing.T) {
	d, _ := NewDays(week, []content.DaysExercise{{ID: 1, Type: content.DaysOrder, Question: "رتب الأيام"}}, game.NewRand(8))
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}))
	for slot, day := range week {
		from := slices.Index(d.board.Pool, day)
		mustApply(t, d, t0, game.Action{Kind: KindDrop, Source: SourcePool, From: from, To: slot})
	}
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}), game.Right(10))

	mustApply(t, d, t0, game.Action{Kind: KindNext})
	for slot, day := range week {
		from := slices.Index(d.board.Pool, day)
		mustApply(t, d, t0, game.Action{Kind: KindDrop, Source: SourcePool, From: from, To: (slot + 1) % 7})
	}
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}), game.Wrong(-5))
	mustApply(t, d, t0, game.Action{Kind: KindReveal})
	if !slices.Equal(d.board.Slots, week) {
		t.Fatal("reveal must show the week in order")
	}
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}))
}

func TestDaysRevealNeedsWrongOrdering(t *testing.T) {
	d, _ := NewDays(week, []content.DaysExercise{{ID: 1, Type: content.DaysOrder, Question: "رتب الأيام"}}, game.NewRand(8))
	mustApply(t, d, t0, game.Action{Kind: KindReveal})
	if slices.Equal(d.board.Slots, week) {
		t.Fatal("reveal filled the week before any answer")
	}
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}))

	for slot, day := range week {
		from := slices.Index(d.board.Pool, day)
		mustApply(t, d, t0, game.Action{Kind: KindDrop, Source: SourcePool, From: from, To: slot})
	}
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}), game.Right(10))
	// A correct ordering has nothing to reveal.
	mustApply(t, d, t0, game.Action{Kind: KindReveal})
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindCheck}))
}

func TestDaysChoice(t *testing.T) {
	exs := []content.DaysExercise{{ID: 2, Type: content.DaysChoice, Question: "ما اليوم الذي يأتي بعد الجمعة؟", Options: []string{"السبت", "الأحد"}, Correct: "السبت"}}
	d, _ := NewDays(week, exs, game.NewRand(8))
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindChoose, Option: "الأحد"}), game.Wrong(-2))
	mustApply(t, d, t0, game.Action{Kind: KindNext})
	wantAnswers(t, mustApply(t, d, t0, game.Action{Kind: KindChoose, Option: "السبت"}), game.Right(5))
	if _, err := d.Apply(t0, game.Action{Kind: KindDrop, Source: SourcePool}); !errors.Is(err, game.ErrInvalidAction) {
		t.Fatalf("drop on a choice question: %v", err)
	}
}

func TestOppositesConnect(t *testing.T) {
	exs := []content.OppositesExercise{
		{ID: 1, Type: content.OppositesConnect, Pairs: []content.OppositePair{{ID: 1, Word: "كبير", Opposite: "صغير"}, {ID: 2, Word: "طويل", Opposite: "قصير"}}},
		{ID: 2, Type: content.OppositesChoice, PromptWord: "ساخن", Options: []string{"بارد", "دافئ"}, Correct: "بارد"},
	}
	o, _ := NewOpposites(exs, game.NewRand(6))
	find := func(items []oppItem, pair int) int {
		return slices.IndexFunc(items, func(it oppItem) bool { return it.PairID == pair })
	}
	pick := func(now time.Time, side string, i int) []game.Answer {
		return mustApply(t, o, now, game.Action{Kind: KindPick, Source: side, Index: i})
	}

	pick(t0, SideLeft, find(o.left, 1))
	wantAnswers(t, pick(t0, SideRight, find(o.right, 2)), game.Wrong(-0.5))
	// Locked for 800ms.
	pick(at(100*time.Millisecond), SideLeft, find(o.left, 1))
	wantAnswers(t, pick(at(100*time.Millisecond), SideRight, find(o.right, 1)))
	o.Advance(at(800 * time.Millisecond))

	for _, pair := range []int{1, 2} {
		pick(at(time.Second), SideLeft, find(o.left, pair))
		wantAnswers(t, pick(at(time.Second), SideRight, find(o.right, pair)), game.Right(1))
	}
	if o.feedback != game.FeedbackCorrect {
		t.Fatal("connect exercise should be complete")
	}

	mustApply(t, o, t0, game.Action{Kind: KindNext})
	wantAnswers(t, mustApply(t, o, t0, game.Action{Kind: KindChoose, Option: "دافئ"}), game.Wrong(-0.5))
	mustApply(t, o, t0, game.Action{Kind: KindNext})
	if o.idx != 0 {
		t.Fatal("next must wrap around")
	}
}

func TestOppositesChoiceAndBlank(t *testing.T) {
	exs := []content.OppositesExercise{
		{ID: 1, Type: content.OppositesChoice, PromptWord: "ساخن", Options: []string{"بارد", "دافئ"}, Correct: "بارد"},
		{ID: 2, Type: content.OppositesBlank, SentenceHint: "الفيل كبير والنملة _", Options: []string{"صغيرة", "طويلة"}, Correct: "صغيرة"},
	}
	o, _ := NewOpposites(exs, game.NewRand(6))

	wantAnswers(t, mustApply(t, o, t0, game.Action{Kind: KindChoose, Option: "بارد"}), game.Right(1))
	wantAnswers(t, mustApply(t, o, t0, game.Action{Kind: KindChoose, Option: "دافئ"}))
	if v := o.View().(OppositesView); v.PromptWord != "ساخن" || v.Options[0].Mark != MarkCorrect {
		t.Fatalf("choice view = %+v", v)
	}

	mustApply(t, o, t0, game.Action{Kind: KindNext})
	if _, err := o.Apply(t0, game.Action{Kind: KindPick, Source: SideLeft}); !errors.Is(err, game.ErrInvalidAction) {
		t.Fatalf("pick on a blank exercise: %v", err)
	}
	wantAnswers(t, mustApply(t, o, t0, game.Action{Kind: KindChoose, Option: "طويلة"}), game.Wrong(-0.5))
	v := o.View().(OppositesView)
	if v.Type != content.OppositesBlank || v.SentenceHint == "" || v.Feedback != game.FeedbackIncorrect {
		t.Fatalf("blank view = %+v", v)
	}
	if v.Options[1].Mark != MarkWrong {
		t.Fatalf("options = %+v", v.Options)
	}
}

func TestStoryOrder(t *testing.T) {
	ss := []content.Story{{ID: 1, Sentence: "زرع الولد بذرة فنبتت", Emojis: []string{"🌱", "🌰", "🌳"}, CorrectOrder: []string{"🌰", "🌱", "🌳"}}}
	s, _ := NewStory(ss, game.NewRand(2))
	for slot, e := range ss[0].CorrectOrder {
		from := slices.Index(s.board.Pool, e)
		mustApply(t, s, t0, game.Action{Kind: KindDrop, Source: SourcePool, From: from, To: slot})
	}
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}), game.Right(5))
	// Reset after feedback keeps the board and cannot score again.
	mustApply(t, s, t0, game.Action{Kind: KindReset})
	if !s.board.Full() || s.feedback != game.FeedbackCorrect {
		t.Fatal("reset cleared an answered story")
	}
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}))

	mustApply(t, s, t0, game.Action{Kind: KindNext})
	for slot, e := range []string{"🌳", "🌱", "🌰"} {
		from := slices.Index(s.board.Pool, e)
		mustApply(t, s, t0, game.Action{Kind: KindDrop, Source: SourcePool, From: from, To: slot})
	}
	wantAnswers(t, mustApply(t, s, t0, game.Action{Kind: KindCheck}), game.Wrong(-2))
}

func TestFactoryBuildsEveryActivity(t *testing.T) {
	c, err := content.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	f := NewFactory(c, ClientSpeech{})
	for _, info := range game.Catalog {
		ex, err := f(info.ID, game.NewRand(1), t0)
		if err != nil {
			t.Fatalf("%s: %v", info.ID, err)
		}
		if ex.Activity() != info.ID {
			t.Fatalf("built %s for %s", ex.Activity(), info.ID)
		}
		if ex.View() == nil {
			t.Fatalf("%s: nil view", info.ID)
		}
		if _, err := ex.Apply(t0, game.Action{Kind: "dance"}); !errors.Is(err, game.ErrUnknownAction) {
			t.Fatalf("%s: unknown kind gave %v", info.ID, err)
		}
	}
	if _, err := f(game.Menu, game.NewRand(1), t0); !errors.Is(err, game.ErrUnknownActivity) {
		t.Fatalf("menu: %v", err)
	}
}
