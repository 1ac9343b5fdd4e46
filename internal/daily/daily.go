// internal/daily/daily.go
//
// Daily word hunt.
// Everyone gets the same grid on a given UTC date: HMAC(salt, YYYY-MM-DD)
// seeds the word choice and the grid generator, so the puzzle can be rebuilt
// from the date alone and never needs storing.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/wordsearch"
)

const (
	GridSize = 6
	Words    = 4
)

var ErrNoWords = errors.New("daily: empty word pool")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func digest(date time.Time, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return h.Sum(nil)
}

// Seed returns the deterministic random seed for a date.
func Seed(date time.Time, salt string) uint64 {
	return binary.BigEndian.Uint64(digest(date, salt)[:8])
}

// PuzzleKey identifies the puzzle of a date without revealing the salt.
func PuzzleKey(date time.Time, salt string) string {
	return DateKey(date) + ":" + hex.EncodeToString(digest(date, salt)[8:12])
}

// Rand returns the date's random source.
func Rand(date time.Time, salt string) *rand.Rand {
	seed := Seed(date, salt)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
// Layout uses it to pick the date's lead word.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Seed(date, salt) % uint64(n))
}

// Layout builds the date's grid from pool. Of the words that fit a GridSize
// grid, the one at WordIndex always leads; the rest of the Words are drawn
// from the date's random source, which then places them.
func Layout(date time.Time, salt string, pool []string) (*wordsearch.Layout, error) {
	var fit []string
	for _, w := range pool {
		if n := len([]rune(w)); n > 0 && n <= GridSize {
			fit = append(fit, w)
		}
	}
	if len(fit) == 0 {
		return nil, ErrNoWords
	}
	lead := WordIndex(date, salt, len(fit))
	fit[0], fit[lead] = fit[lead], fit[0]
	rng := Rand(date, salt)
	rest := fit[1:]
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	if len(fit) > Words {
		fit = fit[:Words]
	}
	return wordsearch.NewGenerator(rng).Generate(GridSize, fit)
}
