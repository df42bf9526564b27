package agents

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"collapse/game"
)

// ScriptedAdvisor is the strategic advisor baseline. Its branch is keyed on
// the Mayor's first revealed suit:
//   - ♠ revealed: nominate the best hex of the advisor's own suit, honestly.
//   - ♥ revealed: the Urbanist is honest about its best heart; Industry lies
//     and claims that heart is a spade.
//   - ♦ revealed: Industry is honest about its best diamond; the Urbanist
//     mixes honest spade warnings, false accusations, and modest honesty.
type ScriptedAdvisor struct {
	role game.Role
	rng  *rand.Rand
}

func NewScriptedAdvisor(role game.Role, seed uint64) (*ScriptedAdvisor, error) {
	if !role.IsAdvisor() {
		return nil, fmt.Errorf("scripted advisor needs an advisor role, got %s", role)
	}
	return &ScriptedAdvisor{role: role, rng: rand.New(rand.NewSource(seed))}, nil
}

func (a *ScriptedAdvisor) Reset() {}

// tileEntry is one visible frontier tile.
type tileEntry struct {
	hex  game.HexCoord
	card game.Card
}

func (a *ScriptedAdvisor) Step(state *game.GameState) (game.ActionID, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return 0, fmt.Errorf("no legal actions for %s", a.role)
	}

	revealed := state.RevealedCards()
	if len(revealed) == 0 {
		return legal[a.rng.Intn(len(legal))], nil
	}
	revealedSuit := revealed[0].Suit
	revealedValue := revealed[0].Value()

	frontier := state.Frontier()
	second := len(state.Commits(a.role)) > 0
	var firstHex game.HexRef
	if second {
		firstHex = game.SomeHex(state.Commits(a.role)[0].Hex)
	}

	hearts, diamonds, spades := a.visibleTiles(state, frontier, firstHex)

	pick, claim, ok := a.chooseNomination(revealedSuit, revealedValue, second, hearts, diamonds, spades)
	if !ok {
		// Desperate fallback: claim our own suit on anything visible.
		mySuit := game.Hearts
		if a.role == game.Industry {
			mySuit = game.Diamonds
		}
		all := append(append(hearts, diamonds...), spades...)
		if len(all) > 0 {
			pick = all[0].hex
		} else if len(frontier) > 0 {
			pick = frontier[0]
		} else {
			return legal[a.rng.Intn(len(legal))], nil
		}
		claim = claimWithValue(mySuit, revealedValue)
	}

	return a.encodeCommit(pick, claim, frontier, legal), nil
}

func (a *ScriptedAdvisor) visibleTiles(state *game.GameState, frontier []game.HexCoord, exclude game.HexRef) (hearts, diamonds, spades []tileEntry) {
	for _, hex := range frontier {
		if exclude.Set && hex == exclude.Coord {
			continue
		}
		card, ok := state.RealityAt(hex)
		if !ok {
			continue
		}
		entry := tileEntry{hex: hex, card: card}
		switch card.Suit {
		case game.Hearts:
			hearts = append(hearts, entry)
		case game.Diamonds:
			diamonds = append(diamonds, entry)
		case game.Spades:
			spades = append(spades, entry)
		}
	}
	for _, tiles := range [][]tileEntry{hearts, diamonds, spades} {
		sort.Slice(tiles, func(i, j int) bool { return tiles[i].card.Value() > tiles[j].card.Value() })
	}
	return hearts, diamonds, spades
}

func (a *ScriptedAdvisor) chooseNomination(revealedSuit game.Suit, revealedValue int, second bool, hearts, diamonds, spades []tileEntry) (game.HexCoord, game.Card, bool) {
	rank := 0
	if second {
		rank = 1
	}

	switch revealedSuit {
	case game.Spades:
		own := diamonds
		if a.role == game.Urbanist {
			own = hearts
		}
		if pick, ok := nth(own, rank); ok {
			return pick.hex, pick.card, true
		}

	case game.Hearts:
		if a.role == game.Urbanist {
			if pick, ok := nth(hearts, rank); ok {
				return pick.hex, pick.card, true
			}
		} else {
			// Industry lies: point at the Urbanist's best heart and call it
			// a mine.
			if pick, ok := nth(hearts, rank); ok {
				return pick.hex, claimWithValue(game.Spades, pick.card.Value()), true
			}
			if pick, ok := nth(diamonds, 0); ok {
				return pick.hex, pick.card, true
			}
		}

	case game.Diamonds:
		if a.role == game.Industry {
			if pick, ok := nth(diamonds, rank); ok {
				return pick.hex, pick.card, true
			}
		} else {
			roll := a.rng.Float64()
			switch {
			case roll < 0.5 && len(spades) > 0:
				if pick, ok := nth(spades, rank); ok {
					return pick.hex, pick.card, true
				}
			case roll < 0.75 && len(diamonds) > 0:
				if pick, ok := nth(diamonds, rank); ok {
					return pick.hex, claimWithValue(game.Spades, pick.card.Value()), true
				}
			case len(diamonds) > 0:
				mid := len(diamonds) / 2
				if second && mid+1 < len(diamonds) {
					mid++
				}
				pick := diamonds[mid]
				return pick.hex, pick.card, true
			case len(hearts) > 0:
				if pick, ok := nth(hearts, rank); ok {
					return pick.hex, pick.card, true
				}
			}
		}
	}
	_ = revealedValue
	return game.HexCoord{}, game.Card{}, false
}

func (a *ScriptedAdvisor) encodeCommit(hex game.HexCoord, claim game.Card, frontier []game.HexCoord, legal []game.ActionID) game.ActionID {
	hexIdx := -1
	for i, h := range frontier {
		if h == hex {
			hexIdx = i
			break
		}
	}
	if hexIdx < 0 {
		return legal[a.rng.Intn(len(legal))]
	}
	want := game.EncodeCommit(hexIdx, claim.Index())
	for _, id := range legal {
		if id == want {
			return id
		}
	}
	return nearestLegal(want, legal)
}

// nth returns the i-th best tile, falling back to the best.
func nth(tiles []tileEntry, i int) (tileEntry, bool) {
	if len(tiles) > i {
		return tiles[i], true
	}
	if len(tiles) > 0 {
		return tiles[0], true
	}
	return tileEntry{}, false
}

// claimWithValue builds a claim card of the given suit with the rank nearest
// the target value.
func claimWithValue(suit game.Suit, value int) game.Card {
	rank := value - 2
	if rank < 0 {
		rank = 5 // rank of a 7
	}
	if rank >= game.NumRanks {
		rank = game.NumRanks - 1
	}
	return game.Card{Suit: suit, Rank: game.Rank(rank)}
}

// ScriptedMayor reveals high non-spade cards and, in PLACE, prefers builds
// whose card suit matches the claim while avoiding placing spades.
type ScriptedMayor struct {
	rng *rand.Rand
}

func NewScriptedMayor(seed uint64) *ScriptedMayor {
	return &ScriptedMayor{rng: rand.New(rand.NewSource(seed))}
}

func (a *ScriptedMayor) Reset() {}

func (a *ScriptedMayor) Step(state *game.GameState) (game.ActionID, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return 0, fmt.Errorf("no legal actions for mayor")
	}
	switch state.Phase() {
	case game.PhaseDraw:
		return a.chooseReveal(state, legal), nil
	case game.PhasePlace:
		return a.chooseBuild(state, legal), nil
	default:
		return legal[a.rng.Intn(len(legal))], nil
	}
}

func (a *ScriptedMayor) chooseReveal(state *game.GameState, legal []game.ActionID) game.ActionID {
	hand := state.Hand()
	best := legal[0]
	bestScore := -1 << 30
	for _, id := range legal {
		decoded, err := game.Decode(id)
		if err != nil || decoded.Kind != game.KindReveal || decoded.CardSlot >= len(hand) {
			continue
		}
		card := hand[decoded.CardSlot]
		score := card.Value()
		if card.Suit == game.Spades {
			score = -10
		}
		if score > bestScore {
			bestScore = score
			best = id
		}
	}
	return best
}

func (a *ScriptedMayor) chooseBuild(state *game.GameState, legal []game.ActionID) game.ActionID {
	hand := state.Hand()
	noms := state.Nominations()
	best := legal[0]
	bestScore := -1 << 30
	for _, id := range legal {
		decoded, err := game.Decode(id)
		if err != nil || decoded.Kind != game.KindBuild {
			continue
		}
		if decoded.HandIdx >= len(hand) || decoded.NominationIdx >= len(noms) {
			continue
		}
		card := hand[decoded.HandIdx]
		claim := noms[decoded.NominationIdx].Claim

		score := 0
		if card.Suit == game.Spades {
			score -= 50
		}
		if card.Suit == claim.Suit {
			score += 10
			if d := 15 - abs(card.Value()-claim.Value()); d > 0 {
				score += d
			}
			if card.Suit != game.Spades {
				score += 5
			}
		}
		if score > bestScore {
			bestScore = score
			best = id
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
