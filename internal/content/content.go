// internal/content/content.go
//
// Static content for every mini-game.
//
// Responsibilities:
//   - Define the question/puzzle records each exercise reads.
//   - Load the document once, either from the embedded assets/content.json
//     or from a file given by configuration (content_file).
//   - Validate the document so controllers can trust it (answers present
//     among options, crosswords consistent, hunter words fit their grids).
//
// Records are read-only after loading; controllers copy what they shuffle.

package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/Abdel00zz/Reflexe4Arabic/assets"
)

// LetterQuestion is a word with one missing letter.
type LetterQuestion struct {
	ID        int      `json:"id"`
	WordHint  string   `json:"wordHint"`      // word with a blank, e.g. "_ـيْتٌ"
	Correct   string   `json:"correctLetter"` // the letter filling the blank
	Options   []string `json:"options"`
	Vocalized string   `json:"vocalizedWord"` // full vocalized word, shown after answering
}

// WordQuestion is a sentence with one missing word.
type WordQuestion struct {
	ID           int      `json:"id"`
	SentenceHint string   `json:"sentenceHint"`
	Correct      string   `json:"correctWord"`
	Options      []string `json:"options"`
}

// ListenQuestion is a spoken word to pick among written options.
type ListenQuestion struct {
	ID      int      `json:"id"`
	Correct string   `json:"correctWord"`
	Options []string `json:"options"`
}

// MatchingLevel configures one level of the memory game.
type MatchingLevel struct {
	Level        int `json:"level"`
	Pairs        int `json:"pairs"`
	StudySeconds int `json:"studySeconds"`
	Rounds       int `json:"rounds"`
}

// MatchingPair is a word and the emoji it pairs with.
type MatchingPair struct {
	ID    int    `json:"id"`
	Word  string `json:"word"`
	Emoji string `json:"emoji"`
}

type ScrambleQuestion struct {
	ID   int    `json:"id"`
	Word string `json:"word"`
	Hint string `json:"hint,omitempty"`
}

type SentenceQuestion struct {
	ID       int    `json:"id"`
	Sentence string `json:"correctSentence"`
}

// Direction of a crossword clue.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

type CrosswordClue struct {
	Number    int       `json:"number"`
	Clue      string    `json:"clue"`
	Answer    string    `json:"answer"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
}

type Crossword struct {
	ID    int             `json:"id"`
	Size  int             `json:"size"`
	Clues []CrosswordClue `json:"clues"`
}

// Riddle is a "who am I" question.
type Riddle struct {
	ID      int      `json:"id"`
	Riddle  string   `json:"riddle"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"` // suggestions offered after a delay
	Emoji   string   `json:"emoji,omitempty"`
}

// HunterLevel is one word-hunter level: a grid size and its word lists.
type HunterLevel struct {
	Level     int        `json:"level"`
	Title     string     `json:"title"`
	GridSize  int        `json:"gridSize"`
	Exercises [][]string `json:"exercises"`
}

type FlashWord struct {
	ID      int      `json:"id"`
	Word    string   `json:"word"`
	Emoji   string   `json:"emoji"`
	Options []string `json:"options"`
}

// DaysKind selects the days-of-week exercise variant.
type DaysKind string

const (
	DaysOrder  DaysKind = "order"
	DaysChoice DaysKind = "choice"
)

type DaysExercise struct {
	ID       int      `json:"id"`
	Type     DaysKind `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Correct  string   `json:"correctAnswer,omitempty"`
}

// OppositesKind selects the opposites exercise variant.
type OppositesKind string

const (
	OppositesConnect OppositesKind = "connect"
	OppositesChoice  OppositesKind = "choice"
	OppositesBlank   OppositesKind = "blank"
)

type OppositePair struct {
	ID       int    `json:"id"`
	Word     string `json:"word"`
	Opposite string `json:"opposite"`
}

type OppositesExercise struct {
	ID           int            `json:"id"`
	Type         OppositesKind  `json:"type"`
	Pairs        []OppositePair `json:"pairs,omitempty"`
	PromptWord   string         `json:"promptWord,omitempty"`
	SentenceHint string         `json:"sentenceHint,omitempty"`
	Options      []string       `json:"options,omitempty"`
	Correct      string         `json:"correctAnswer,omitempty"`
}

// Story is a sentence illustrated by emojis to put in order.
type Story struct {
	ID           int      `json:"id"`
	Sentence     string   `json:"storySentence"`
	Emojis       []string `json:"emojis"`
	CorrectOrder []string `json:"correctOrder"`
}

// Content is the whole static document.
type Content struct {
	Letters        []LetterQuestion    `json:"letterQuestions"`
	Words          []WordQuestion      `json:"wordQuestions"`
	Listen         []ListenQuestion    `json:"listenQuestions"`
	MatchingLevels []MatchingLevel     `json:"matchingLevels"`
	MatchingPairs  []MatchingPair      `json:"matchingPairs"`
	Scramble       []ScrambleQuestion  `json:"scrambleQuestions"`
	Sentences      []SentenceQuestion  `json:"sentenceQuestions"`
	Crosswords     []Crossword         `json:"crosswords"`
	Riddles        []Riddle            `json:"riddles"`
	HunterLevels   []HunterLevel       `json:"hunterLevels"`
	FlashWords     []FlashWord         `json:"flashWords"`
	Days           []string            `json:"daysOfWeek"`
	DaysExercises  []DaysExercise      `json:"daysExercises"`
	Opposites      []OppositesExercise `json:"opposites"`
	Stories        []Story             `json:"stories"`
	DailyWords     []string            `json:"dailyWords"`
}

var (
	initOnce sync.Once
	loaded   *Content
	initErr  error
)

// Init loads the content document exactly once.
// An empty path selects the embedded document.
func Init(path string) error {
	initOnce.Do(func() {
		var data []byte
		if path != "" {
			data, initErr = os.ReadFile(path)
		} else {
			data, initErr = assets.Content()
		}
		if initErr != nil {
			initErr = fmt.Errorf("content: read: %w", initErr)
			return
		}
		loaded, initErr = Parse(data)
	})
	return initErr
}

// Default returns the document loaded by Init (nil before a successful Init).
func Default() *Content { return loaded }

// Embedded parses and validates the embedded document without touching the
// package-level state. Tests use it directly.
func Embedded() (*Content, error) {
	data, err := assets.Content()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("content: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks the cross-record invariants controllers rely on.
func (c *Content) Validate() error {
	for _, q := range c.Letters {
		if !slices.Contains(q.Options, q.Correct) {
			return invalid("letter question %d: answer %q not among options", q.ID, q.Correct)
		}
	}
	for _, q := range c.Words {
		if !slices.Contains(q.Options, q.Correct) {
			return invalid("word question %d: answer %q not among options", q.ID, q.Correct)
		}
	}
	for _, q := range c.Listen {
		if !slices.Contains(q.Options, q.Correct) {
			return invalid("listen question %d: answer %q not among options", q.ID, q.Correct)
		}
	}
	for _, lv := range c.MatchingLevels {
		if lv.Pairs < 1 || lv.Pairs > len(c.MatchingPairs) {
			return invalid("matching level %d: needs %d pairs, have %d", lv.Level, lv.Pairs, len(c.MatchingPairs))
		}
		if lv.Rounds < 1 {
			return invalid("matching level %d: rounds must be positive", lv.Level)
		}
	}
	for _, q := range c.Scramble {
		if len(Letters(q.Word)) < 2 {
			return invalid("scramble question %d: word too short", q.ID)
		}
	}
	for _, cw := range c.Crosswords {
		if err := cw.validate(); err != nil {
			return err
		}
	}
	for _, r := range c.Riddles {
		if !slices.Contains(r.Options, r.Answer) {
			return invalid("riddle %d: answer %q not among options", r.ID, r.Answer)
		}
	}
	for _, lv := range c.HunterLevels {
		if lv.GridSize < 1 || len(lv.Exercises) == 0 {
			return invalid("hunter level %d: empty", lv.Level)
		}
		for _, words := range lv.Exercises {
			for _, w := range words {
				if n := len([]rune(w)); n == 0 || n > lv.GridSize {
					return invalid("hunter level %d: word %q does not fit a %dx%d grid", lv.Level, w, lv.GridSize, lv.GridSize)
				}
			}
		}
	}
	for _, f := range c.FlashWords {
		if !slices.Contains(f.Options, f.Word) {
			return invalid("flash word %d: %q not among options", f.ID, f.Word)
		}
	}
	if len(c.DaysExercises) > 0 && len(c.Days) != 7 {
		return invalid("days of week: want 7 names, have %d", len(c.Days))
	}
	for _, d := range c.DaysExercises {
		if d.Type == DaysChoice && !slices.Contains(d.Options, d.Correct) {
			return invalid("days exercise %d: answer %q not among options", d.ID, d.Correct)
		}
	}
	for _, o := range c.Opposites {
		switch o.Type {
		case OppositesConnect:
			if len(o.Pairs) < 2 {
				return invalid("opposites exercise %d: connect needs at least 2 pairs", o.ID)
			}
		case OppositesChoice, OppositesBlank:
			if !slices.Contains(o.Options, o.Correct) {
				return invalid("opposites exercise %d: answer %q not among options", o.ID, o.Correct)
			}
		default:
			return invalid("opposites exercise %d: unknown type %q", o.ID, o.Type)
		}
	}
	for _, s := range c.Stories {
		if !sameItems(s.Emojis, s.CorrectOrder) {
			return invalid("story %d: correct order must use exactly the story emojis", s.ID)
		}
	}
	return nil
}

// validate checks bounds and letter agreement where clues intersect.
func (cw Crossword) validate() error {
	if cw.Size < 1 {
		return invalid("crossword %d: size must be positive", cw.ID)
	}
	cells := make(map[[2]int]string)
	for _, cl := range cw.Clues {
		dr, dc := cl.Step()
		units := Letters(cl.Answer)
		if len(units) == 0 {
			return invalid("crossword %d: clue %d has no answer", cw.ID, cl.Number)
		}
		for i, u := range units {
			r, c := cl.Row+i*dr, cl.Col+i*dc
			if r < 0 || c < 0 || r >= cw.Size || c >= cw.Size {
				return invalid("crossword %d: clue %d leaves the grid", cw.ID, cl.Number)
			}
			k := [2]int{r, c}
			if prev, ok := cells[k]; ok && prev != u {
				return invalid("crossword %d: clue %d conflicts at (%d,%d)", cw.ID, cl.Number, r, c)
			}
			cells[k] = u
		}
	}
	return nil
}

// Step returns the unit (row, col) step of the clue's direction.
func (cl CrosswordClue) Step() (int, int) {
	if cl.Direction == Down {
		return 1, 0
	}
	return 0, 1
}

func sameItems(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[string]int, len(a))
	for _, x := range a {
		count[x]++
	}
	for _, x := range b {
		count[x]--
		if count[x] < 0 {
			return false
		}
	}
	return true
}
