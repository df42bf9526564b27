package game

import "fmt"

// Suit of a card. Hearts are the Urbanist's domain, Diamonds the Industry
// advisor's. Spades are mines: building on a Spade reality ends the game.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
)

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Rank is the card rank index (0 = "2" .. 12 = "A"). The deck has 13 ranks
// per suit; the Queen outranks the King.
type Rank int

const (
	NumSuits = 3
	NumRanks = 13
	NumCards = NumSuits * NumRanks // 39
)

var rankLabels = [NumRanks]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "K", "Q", "A"}

// rankValues maps rank index to numeric value 2-14. Queen (13) beats King (12).
var rankValues = [NumRanks]int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

// Card is an immutable suit/rank pair.
type Card struct {
	Suit Suit
	Rank Rank
}

// Value returns the card's numeric strength (2-14).
func (c Card) Value() int {
	return rankValues[c.Rank]
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", rankLabels[c.Rank], c.Suit)
}

// Index flattens the card into 0..38 (suit-major).
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank)
}

// CardFromIndex is the inverse of Card.Index.
func CardFromIndex(idx int) (Card, bool) {
	if idx < 0 || idx >= NumCards {
		return Card{}, false
	}
	return Card{Suit: Suit(idx / NumRanks), Rank: Rank(idx % NumRanks)}, true
}
