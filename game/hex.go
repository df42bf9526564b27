package game

import "fmt"

// HexCoord is a cube coordinate on the hex grid. Valid coordinates satisfy
// X+Y+Z == 0.
type HexCoord struct {
	X, Y, Z int
}

func (h HexCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", h.X, h.Y, h.Z)
}

// HexRef is an optional hex coordinate. The zero value means "no hex".
type HexRef struct {
	Coord HexCoord
	Set   bool
}

// SomeHex wraps a coordinate into a set reference.
func SomeHex(h HexCoord) HexRef {
	return HexRef{Coord: h, Set: true}
}

// Origin is the town center hex; its reality is fixed as the Ace of Hearts.
var Origin = HexCoord{}

// hexDirections are the six cube direction vectors.
var hexDirections = [6]HexCoord{
	{1, -1, 0},
	{1, 0, -1},
	{0, 1, -1},
	{-1, 1, 0},
	{-1, 0, 1},
	{0, -1, 1},
}

// Neighbors returns the six adjacent hexes in fixed direction order.
func Neighbors(h HexCoord) [6]HexCoord {
	var out [6]HexCoord
	for i, d := range hexDirections {
		out[i] = HexCoord{h.X + d.X, h.Y + d.Y, h.Z + d.Z}
	}
	return out
}

// CubeDistance returns the hex distance between two cube coordinates.
func CubeDistance(a, b HexCoord) int {
	return (abs(a.X-b.X) + abs(a.Y-b.Y) + abs(a.Z-b.Z)) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// board tracks built territory, revealed fog, and lazily generated reality
// tiles. Reality is append-only: once a hex has a tile it never changes.
type board struct {
	built    []HexCoord
	builtSet map[HexCoord]bool
	revealed map[HexCoord]bool
	reality  map[HexCoord]Card
	terrain  *Deck
}

func newBoard(terrain *Deck) *board {
	b := &board{
		builtSet: map[HexCoord]bool{},
		revealed: map[HexCoord]bool{},
		reality:  map[HexCoord]Card{},
		terrain:  terrain,
	}
	b.build(Origin)
	b.reality[Origin] = Card{Suit: Hearts, Rank: 12} // A♥ town center
	return b
}

func (b *board) build(h HexCoord) {
	if b.builtSet[h] {
		return
	}
	b.built = append(b.built, h)
	b.builtSet[h] = true
}

// revealAround clears the fog on a hex and its six neighbors, generating
// reality tiles from the terrain deck for any neighbor seen for the first
// time.
func (b *board) revealAround(h HexCoord) []HexCoord {
	var fresh []HexCoord
	b.revealed[h] = true
	for _, adj := range Neighbors(h) {
		b.revealed[adj] = true
		if _, ok := b.reality[adj]; !ok {
			b.reality[adj] = b.terrain.Draw()
			fresh = append(fresh, adj)
		}
	}
	return fresh
}

// revealInitialFrontier generates the six tiles around the origin. When
// maxSpades >= 0 the spade count is kept at or below it by rejection
// sampling with a bounded retry count; the cap is advisory, not hard.
func (b *board) revealInitialFrontier(maxSpades int) {
	b.revealed[Origin] = true
	spades := 0
	for _, adj := range Neighbors(Origin) {
		b.revealed[adj] = true
		if _, ok := b.reality[adj]; ok {
			continue
		}
		card := b.terrain.Draw()
		if maxSpades >= 0 {
			for attempts := 0; card.Suit == Spades && spades >= maxSpades && attempts < 10; attempts++ {
				b.terrain.putBack(card)
				card = b.terrain.Draw()
			}
			if card.Suit == Spades {
				spades++
			}
		}
		b.reality[adj] = card
	}
}

// frontier derives the hexes adjacent to built territory that are not
// themselves built, in discovery order. Derived on demand, never stored.
func (b *board) frontier() []HexCoord {
	var out []HexCoord
	seen := map[HexCoord]bool{}
	for _, built := range b.built {
		for _, adj := range Neighbors(built) {
			if b.builtSet[adj] || seen[adj] {
				continue
			}
			out = append(out, adj)
			seen[adj] = true
		}
	}
	return out
}

func (b *board) isBuilt(h HexCoord) bool {
	return b.builtSet[h]
}

func (b *board) realityAt(h HexCoord) (Card, bool) {
	c, ok := b.reality[h]
	return c, ok
}
