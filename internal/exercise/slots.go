package exercise

import (
	"slices"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

// Drag sources.
const (
	SourcePool = "pool"
	SourceSlot = "slot"
)

// Board is a pool of loose tiles and a row of ordered slots. Empty slots
// hold "".
type Board struct {
	Pool  []string `json:"pool"`
	Slots []string `json:"slots"`
}

func newBoard(tiles []string, slots int) *Board {
	return &Board{Pool: append([]string(nil), tiles...), Slots: make([]string, slots)}
}

// Drop moves the tile at from (in the pool or a slot) into slot to. A tile
// already in slot to is swapped into the source slot, or returned to the pool
// when the tile came from the pool.
func (b *Board) Drop(source string, from, to int) error {
	if !inRange(b.Slots, to) {
		return game.ErrInvalidAction
	}
	switch source {
	case SourcePool:
		if !inRange(b.Pool, from) {
			return game.ErrInvalidAction
		}
		tile := b.Pool[from]
		b.Pool = slices.Delete(b.Pool, from, from+1)
		if prev := b.Slots[to]; prev != "" {
			b.Pool = append(b.Pool, prev)
		}
		b.Slots[to] = tile
	case SourceSlot:
		if !inRange(b.Slots, from) {
			return game.ErrInvalidAction
		}
		if from == to || b.Slots[from] == "" {
			return nil
		}
		b.Slots[from], b.Slots[to] = b.Slots[to], b.Slots[from]
	default:
		return game.ErrInvalidAction
	}
	return nil
}

// Lift returns the tile in slot i to the pool.
func (b *Board) Lift(i int) error {
	if !inRange(b.Slots, i) {
		return game.ErrInvalidAction
	}
	if b.Slots[i] != "" {
		b.Pool = append(b.Pool, b.Slots[i])
		b.Slots[i] = ""
	}
	return nil
}

// Full reports whether every slot holds a tile.
func (b *Board) Full() bool { return !slices.Contains(b.Slots, "") }

func (b *Board) clone() Board {
	return Board{Pool: slices.Clone(b.Pool), Slots: slices.Clone(b.Slots)}
}
