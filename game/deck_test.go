package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testDeck(seed uint64) *Deck {
	return NewDeck(rand.New(rand.NewSource(seed)))
}

func TestDeckDrawConservation(t *testing.T) {
	d := testDeck(1)
	require.Equal(t, NumCards, d.Size())

	drawn := map[int]bool{}
	for i := 0; i < NumCards; i++ {
		card := d.Draw()
		require.False(t, drawn[card.Index()], "card %s drawn twice", card)
		drawn[card.Index()] = true
		require.Equal(t, NumCards-i-1, d.Size())
	}
	require.Len(t, drawn, NumCards)
}

func TestDeckReshufflesDiscard(t *testing.T) {
	d := testDeck(2)
	var cards []Card
	for i := 0; i < NumCards; i++ {
		cards = append(cards, d.Draw())
	}
	for _, c := range cards {
		d.Discard(c)
	}
	require.Equal(t, NumCards, d.Size())

	card := d.Draw()
	require.Equal(t, NumCards-1, d.Size())
	require.True(t, card.Index() >= 0 && card.Index() < NumCards)
}

func TestDeckExhaustedReturnsDefault(t *testing.T) {
	d := testDeck(3)
	for i := 0; i < NumCards; i++ {
		d.Draw()
	}
	// Deck and discard both empty: draws degrade to the safe default
	// instead of stalling.
	require.Equal(t, defaultCard, d.Draw())
	require.Equal(t, defaultCard, d.Draw())
}

func TestDeckDrawable(t *testing.T) {
	d := testDeck(6)
	require.Len(t, d.Drawable(), NumCards)

	// Drawable must cover whatever Draw could deal next: the discard takes
	// over once the draw pile runs dry.
	var cards []Card
	for i := 0; i < NumCards; i++ {
		cards = append(cards, d.Draw())
	}
	for _, c := range cards[:5] {
		d.Discard(c)
	}
	require.ElementsMatch(t, cards[:5], d.Drawable())

	got := d.Draw()
	require.Contains(t, cards[:5], got)

	d2 := testDeck(7)
	for i := 0; i < NumCards; i++ {
		d2.Draw()
	}
	require.Empty(t, d2.Drawable(), "both piles empty")
}

func TestDeckTake(t *testing.T) {
	t.Run("removes the requested card", func(t *testing.T) {
		d := testDeck(4)
		want := Card{Suit: Spades, Rank: 3}
		got, ok := d.Take(want.Index())
		require.True(t, ok)
		require.Equal(t, want, got)
		require.Equal(t, NumCards-1, d.Size())

		_, ok = d.Take(want.Index())
		require.False(t, ok, "card cannot be taken twice")
	})

	t.Run("reshuffles discard in before searching", func(t *testing.T) {
		d := testDeck(5)
		var cards []Card
		for i := 0; i < NumCards; i++ {
			cards = append(cards, d.Draw())
		}
		d.Discard(cards[0])

		got, ok := d.Take(cards[0].Index())
		require.True(t, ok)
		require.Equal(t, cards[0], got)
	})
}
