package game

// Bluff-detection scoring, invoked exactly once per completed build.
//
// Mine reality (♠): every advisor who nominated the hex scores
// independently, +1 for an honest warning and -3 for lying about a mine.
// Non-mine reality: a single winning nomination is picked by tie-break
// (value distance, then suit match with the placed card, then domain
// affinity) and judged: +1 trusted, +1 honest-but-disbelieved, -2 for a
// false mine claim, 0 for a caught bluff. The Mayor scores +1 on a simple
// placed-suit == reality-suit match.

const (
	honestMineWarning  = 1
	minedLiePenalty    = -3
	falseAlarmPenalty  = -2
	trustedOrHonest    = 1
	mayorSuitMatch     = 1
	survivalBonus      = 10.0
	mineTurnReward     = -10.0
	dodgeLiedMineBonus = 10.0
	dodgeWarnedBonus   = 2.0
)

func (s *GameState) scoreBuild(placed Card, hex HexCoord) {
	prev := s.scores

	reality, _ := s.board.realityAt(hex)
	isMine := reality.Suit == Spades

	var nomsForHex []Nomination
	for _, nom := range s.nominations {
		if nom.Hex == hex {
			nomsForHex = append(nomsForHex, nom)
		}
	}

	if len(nomsForHex) > 0 {
		if isMine {
			s.scoreMineHit(nomsForHex)
		} else {
			s.scoreBluffs(placed, reality, nomsForHex)
		}
	}

	if !isMine && placed.Suit == reality.Suit {
		s.scores[Mayor] += mayorSuitMatch
	}

	// Dense shaping: each role's reward is its own delta minus the average
	// of the others'. Recomputed from scratch every settled placement.
	for r := range s.scores {
		own := float64(s.scores[r] - prev[r])
		others := 0.0
		for o := range s.scores {
			if o != r {
				others += float64(s.scores[o] - prev[o])
			}
		}
		s.turnRewards[r] = own - others/float64(NumRoles-1)
	}

	// Survival must dominate the caller-side terminal penalty so that
	// lasting longer always beats dying sooner.
	if isMine {
		s.turnRewards[Mayor] = mineTurnReward
	} else {
		s.turnRewards[Mayor] += survivalBonus
	}
}

// scoreMineHit judges every advisor who nominated the built-on mine.
func (s *GameState) scoreMineHit(noms []Nomination) {
	scored := [NumRoles]bool{}
	for _, nom := range noms {
		if scored[nom.Advisor] {
			continue
		}
		if nom.Claim.Suit == Spades {
			s.scores[nom.Advisor] += honestMineWarning
		} else {
			s.scores[nom.Advisor] += minedLiePenalty
		}
		scored[nom.Advisor] = true
	}
}

// scoreBluffs resolves a non-mine build: pick the winning nomination by
// tie-break and score it, with the agreed-false-alarm special case.
func (s *GameState) scoreBluffs(placed, reality Card, noms []Nomination) {
	winner := noms[0]
	if len(noms) > 1 {
		winner = tieBreak(placed, noms)
	}

	// Both advisors nominating the hex with an identical spade claim is an
	// agreed mine alarm; when reality disagrees, both cried wolf.
	if len(noms) > 1 && identicalSpadeClaims(noms[0], noms[1]) {
		for _, nom := range noms {
			s.scores[nom.Advisor] += falseAlarmPenalty
		}
		return
	}

	switch {
	case placed.Suit == winner.Claim.Suit:
		// Mayor trusted the claim, honesty irrelevant.
		s.scores[winner.Advisor] += trustedOrHonest
	case winner.Claim.Suit == reality.Suit:
		// Honest but disbelieved.
		s.scores[winner.Advisor] += trustedOrHonest
	case winner.Claim.Suit == Spades:
		// Cried mine on safe ground.
		s.scores[winner.Advisor] += falseAlarmPenalty
	default:
		// Bluff caught: nothing.
	}
}

// tieBreak orders nominations for the same hex: smallest claim/placed value
// distance, then claim suit matching the placed suit, then domain affinity
// (Hearts favor the Urbanist, Diamonds and Spades favor Industry).
func tieBreak(placed Card, noms []Nomination) Nomination {
	winner := noms[0]
	bestDiff := 1 << 30
	bestSuitMatch := false
	bestDomainMatch := false

	for _, nom := range noms {
		diff := abs(nom.Claim.Value() - placed.Value())
		suitMatch := nom.Claim.Suit == placed.Suit
		domainMatch := (nom.Claim.Suit == Hearts && nom.Advisor == Urbanist) ||
			(nom.Claim.Suit != Hearts && nom.Advisor == Industry)

		better := diff < bestDiff
		if diff == bestDiff {
			if suitMatch && !bestSuitMatch {
				better = true
			} else if suitMatch == bestSuitMatch && domainMatch && !bestDomainMatch {
				better = true
			}
		}
		if better {
			bestDiff = diff
			bestSuitMatch = suitMatch
			bestDomainMatch = domainMatch
			winner = nom
		}
	}
	return winner
}

func identicalSpadeClaims(a, b Nomination) bool {
	return a.Claim.Suit == Spades && a.Claim == b.Claim
}

// applyDeathReveal runs when a mine ends the game: every outstanding
// nomination is exposed and judged against its hex's true mine status,
// whichever hex was actually built on.
func (s *GameState) applyDeathReveal() {
	for _, nom := range s.nominations {
		reality, ok := s.board.realityAt(nom.Hex)
		if !ok {
			continue
		}
		switch {
		case reality.Suit == Spades && nom.Claim.Suit != Spades:
			s.scores[nom.Advisor] += minedLiePenalty
		case reality.Suit != Spades && nom.Claim.Suit == Spades:
			s.scores[nom.Advisor] += falseAlarmPenalty
		}
	}
}

// mineDodgeBonus rewards the Mayor for not building on nominated hexes that
// were really mines: a lied-about mine dodged is worth more than an honestly
// flagged one.
func (s *GameState) mineDodgeBonus(chosen HexCoord) float64 {
	bonus := 0.0
	for _, nom := range s.nominations {
		if nom.Hex == chosen {
			continue
		}
		reality, ok := s.board.realityAt(nom.Hex)
		if !ok || reality.Suit != Spades {
			continue
		}
		if nom.Claim.Suit != Spades {
			bonus += dodgeLiedMineBonus
		} else {
			bonus += dodgeWarnedBonus
		}
	}
	return bonus
}
