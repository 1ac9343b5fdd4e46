// internal/game/types.go
//
// Core type definitions shared by the hosting shell and the exercises.
// Defines:
//   - Activity: the menu entries (one per mini-game).
//   - Answer: the typed result of one answer (correct?, score delta).
//   - Feedback: the transient correct/incorrect flag gating input.
//   - Action: the single input envelope every exercise understands.
//   - Exercise: the controller contract, and Factory to build one.

package game

import (
	"errors"
	"math/rand/v2"
	"time"
)

// Activity identifies a menu entry.
type Activity string

const (
	Menu            Activity = "menu"
	CompleteLetter  Activity = "complete_letter"
	CompleteWord    Activity = "complete_word"
	MatchingGame    Activity = "matching_game"
	WordScramble    Activity = "word_scramble"
	SentenceBuilder Activity = "sentence_builder"
	Crossword       Activity = "crossword"
	WhoAmI          Activity = "who_am_i"
	WordHunter      Activity = "word_hunter"
	FlashWord       Activity = "flash_word"
	DaysOfWeek      Activity = "days_of_week"
	OppositesMatch  Activity = "opposites_match"
	ListenChoose    Activity = "listen_choose"
	StoryLogic      Activity = "story_logic"
)

// ActivityInfo is a menu card.
type ActivityInfo struct {
	ID          Activity `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// Catalog lists every playable activity in menu order.
var Catalog = []ActivityInfo{
	{CompleteLetter, "أَكْمِلِ الْحَرْفَ", "اِخْتَرِ الْحَرْفَ الصَّحِيحَ لِإِكْمَالِ الْكَلِمَةِ."},
	{CompleteWord, "أَكْمِلِ الْجُمْلَةَ", "اِخْتَرِ الْكَلِمَةَ الْمُنَاسِبَةَ لِإِكْمَالِ الْجُمْلَةِ."},
	{MatchingGame, "بِطَاقَاتُ الذَّاكِرَةِ", "اِقْلِبِ الْبِطَاقَاتِ وَابْحَثْ عَنِ الْأَزْوَاجِ الْمُتَطَابِقَةِ."},
	{WordScramble, "تَرْكِيبُ الْكَلِمَاتِ", "رَتِّبِ الْحُرُوفَ الْمُبَعْثَرَةَ لِتُكَوِّنَ كَلِمَةً."},
	{SentenceBuilder, "تَكْوِينُ الْجُمَلِ", "رَتِّبِ الْكَلِمَاتِ لِتُكَوِّنَ جُمْلَةً مُفِيدَةً."},
	{Crossword, "الْكَلِمَاتُ الْمُتَقَاطِعَةُ", "حِلَّ الْأَلْغَازَ لِتَمْلَأَ الشَّبَكَةَ بِالْكَلِمَاتِ."},
	{WhoAmI, "مَنْ أَكُونُ؟", "اِقْرَأِ اللُّغْزَ وَاكْتُبِ الْجَوَابَ."},
	{WordHunter, "صَائِدُ الْكَلِمَاتِ", "اِبْحَثْ عَنِ الْكَلِمَاتِ الْمَخْفِيَّةِ فِي الشَّبَكَةِ."},
	{FlashWord, "كَلِمَةٌ فِي وَمْضَةٍ", "تَذَكَّرِ الْكَلِمَةَ الَّتِي ظَهَرَتْ بِسُرْعَةٍ."},
	{DaysOfWeek, "تَحَدِّي أَيَّامِ الْأُسْبُوعِ", "رَتِّبْ أَيَّامَ الْأُسْبُوعِ وَأَجِبْ عَنِ الْأَسْئِلَةِ."},
	{OppositesMatch, "تَطَابُقُ الْأَضْدَادِ", "صِلْ كُلَّ كَلِمَةٍ بِضِدِّهَا."},
	{ListenChoose, "اِسْتَمِعْ وَاخْتَرْ", "اِسْتَمِعْ إِلَى الْكَلِمَةِ وَاخْتَرِ الصَّحِيحَةَ."},
	{StoryLogic, "مَنْطِقُ الْقِصَّةِ", "رَتِّبِ الصُّوَرَ لِتَحْكِيَ الْقِصَّةَ."},
}

// ParseActivity validates a playable activity identifier.
func ParseActivity(s string) (Activity, error) {
	for _, a := range Catalog {
		if string(a.ID) == s {
			return a.ID, nil
		}
	}
	return "", ErrUnknownActivity
}

// Answer is the typed result of one answer event.
type Answer struct {
	Correct bool    `json:"correct"`
	Delta   float64 `json:"delta"`
}

// Right and Wrong build answers.
func Right(delta float64) Answer { return Answer{Correct: true, Delta: delta} }
func Wrong(delta float64) Answer { return Answer{Correct: false, Delta: delta} }

// Feedback is the transient answer flag. While it is set, answer input is ignored.
type Feedback string

const (
	FeedbackNone      Feedback = ""
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

// FeedbackFor maps an answer to its feedback flag.
func FeedbackFor(correct bool) Feedback {
	if correct {
		return FeedbackCorrect
	}
	return FeedbackIncorrect
}

// Action is the input envelope. Kind selects the operation; the other fields
// are read according to Kind.
type Action struct {
	Kind   string `json:"kind"`             // e.g. "choose", "flip", "begin", "next"
	Option string `json:"option,omitempty"` // chosen option text
	Index  int    `json:"index"`            // card/tile/item/level index
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Text   string `json:"text,omitempty"`   // typed input
	Source string `json:"source,omitempty"` // drag source: "pool" | "slot"
	From   int    `json:"from"`             // drag source index
	To     int    `json:"to"`               // drag target slot
}

// Exercise is one mini-game controller. Implementations are not safe for
// concurrent use; the Session serializes access.
type Exercise interface {
	Activity() Activity
	// Apply performs one input action at now and returns the answers it produced.
	Apply(now time.Time, a Action) ([]Answer, error)
	// Advance fires every timer due at or before now.
	Advance(now time.Time) []Answer
	// Deadline reports the next pending timer, if any.
	Deadline() (time.Time, bool)
	// View is a JSON-friendly snapshot of the controller state.
	View() any
}

// Factory builds a fresh controller for an activity.
type Factory func(a Activity, rng *rand.Rand, now time.Time) (Exercise, error)

var (
	ErrUnknownActivity = errors.New("unknown activity")
	ErrNoActivity      = errors.New("no activity in progress")
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidAction   = errors.New("invalid action")
)
