package game

import "golang.org/x/exp/rand"

// Deck is a 39-card draw pile with a discard pile. Drawing from an empty
// pile reshuffles the discard back in; if both piles are empty the draw
// returns a safe default card so callers never stall mid-turn.
type Deck struct {
	cards   []Card
	discard []Card
	rng     *rand.Rand
}

// defaultCard is handed out when deck and discard are both exhausted.
// Should not occur in normal play.
var defaultCard = Card{Suit: Hearts, Rank: 5} // 7♥

// NewDeck builds a shuffled full deck using the given RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	for s := 0; s < NumSuits; s++ {
		for r := 0; r < NumRanks; r++ {
			d.cards = append(d.cards, Card{Suit: Suit(s), Rank: Rank(r)})
		}
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw pops the top card, reshuffling the discard into the deck first if the
// draw pile is empty.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		if len(d.discard) == 0 {
			return defaultCard
		}
		d.cards = append(d.cards, d.discard...)
		d.discard = d.discard[:0]
		d.shuffle()
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Discard returns a card to the discard pile.
func (d *Deck) Discard(c Card) {
	d.discard = append(d.discard, c)
}

// putBack reinserts a card at the bottom of the draw pile and reshuffles.
// Used by rejection sampling during initial frontier generation.
func (d *Deck) putBack(c Card) {
	d.cards = append([]Card{c}, d.cards...)
	d.shuffle()
}

// Remaining returns the distinct cards currently in the draw pile.
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Drawable returns the distinct cards a Draw or Take could produce without
// mutating the deck: the draw pile, or the discard once the draw pile is
// empty (Draw and Take reshuffle it in before dealing).
func (d *Deck) Drawable() []Card {
	src := d.cards
	if len(src) == 0 {
		src = d.discard
	}
	out := make([]Card, len(src))
	copy(out, src)
	return out
}

// Size returns draw pile + discard pile size.
func (d *Deck) Size() int {
	return len(d.cards) + len(d.discard)
}

// Take removes the first card matching idx from the draw pile, reshuffling
// the discard in first if needed. Returns false when the card is in neither
// pile.
func (d *Deck) Take(idx int) (Card, bool) {
	if len(d.cards) == 0 && len(d.discard) > 0 {
		d.cards = append(d.cards, d.discard...)
		d.discard = d.discard[:0]
		d.shuffle()
	}
	for i, c := range d.cards {
		if c.Index() == idx {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}
