package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Params configures one game instance.
type Params struct {
	// Seed drives every random draw this instance makes.
	Seed uint64
	// MaxInitialSpades caps mines in the six starting frontier tiles via
	// advisory rejection sampling. -1 disables the cap.
	MaxInitialSpades int
	// FacilityGoal is how many Hearts and how many Diamonds facilities end
	// the game as the Mayor's city-completion condition.
	FacilityGoal int
}

// DefaultParams returns the standard ruleset.
func DefaultParams() Params {
	return Params{Seed: 1, MaxInitialSpades: -1, FacilityGoal: 10}
}

// GameState is the aggregate state of one game. Single-threaded by design:
// one ApplyAction call fully settles before returning, and independent
// instances share nothing.
type GameState struct {
	params Params
	rng    *rand.Rand

	phase    Phase
	subPhase SubPhase
	turn     int
	terminal bool

	scores      [NumRoles]int
	turnRewards [NumRoles]float64

	hand     []Card
	revealed []int // hand slots shown to the advisors, in reveal order
	handDeck *Deck

	board *board
	hexes *hexIndexer

	pendingDraws int
	control      ControlDecision
	commits      [NumRoles][]Nomination
	nominations  []Nomination
	trays        [NumRoles][]int

	verified     map[HexCoord]bool
	lastVerified HexRef

	facilities   Facilities
	cityComplete bool
	hitMine      bool

	history []TurnRecord
}

// NewGame creates a fresh game: shuffled decks, origin built as A♥, initial
// frontier revealed, four pending chance draws for the Mayor's first hand.
func NewGame(params Params) *GameState {
	if params.FacilityGoal <= 0 {
		params.FacilityGoal = 10
	}
	rng := rand.New(rand.NewSource(params.Seed))
	s := &GameState{
		params:   params,
		rng:      rng,
		phase:    PhaseDraw,
		subPhase: SubDrawing,
		handDeck: NewDeck(rng),
		board:    newBoard(NewDeck(rng)),
		hexes:    newHexIndexer(MaxFrontier),
		verified: map[HexCoord]bool{},

		pendingDraws: HandSize,
	}
	for r := range s.trays {
		if Role(r).IsAdvisor() {
			s.trays[r] = fullTray()
		}
	}
	s.board.revealInitialFrontier(params.MaxInitialSpades)
	s.facilities.Hearts = 1 // origin counts as the first Hearts facility
	s.indexRevealed()
	return s
}

func fullTray() []int {
	tray := make([]int, NumCards)
	for i := range tray {
		tray[i] = i
	}
	return tray
}

// indexRevealed assigns stable indices to built and frontier hexes in
// discovery order. Index assignment lives here, never in the observation
// encoder, so querying an observation cannot change later observations.
func (s *GameState) indexRevealed() {
	for _, h := range s.board.built {
		s.hexes.touch(h)
	}
	for _, h := range s.board.frontier() {
		s.hexes.touch(h)
	}
}

// Turn returns the zero-based turn counter.
func (s *GameState) Turn() int { return s.turn }

// Phase returns the current top-level phase; GameOver once terminal.
func (s *GameState) Phase() Phase {
	if s.terminal {
		return PhaseGameOver
	}
	return s.phase
}

// SubPhase returns the position within the current phase's sub-sequence.
func (s *GameState) SubPhase() SubPhase { return s.subPhase }

// IsTerminal reports whether the game has ended.
func (s *GameState) IsTerminal() bool { return s.terminal }

// MayorHitMine reports whether the game ended by building on a mine. The
// loss is flagged separately and never folded into Returns.
func (s *GameState) MayorHitMine() bool { return s.hitMine }

// CityComplete reports whether the game ended by completing the city.
func (s *GameState) CityComplete() bool { return s.cityComplete }

// Scores returns the accumulated per-role scores.
func (s *GameState) Scores() [NumRoles]int { return s.scores }

// Returns reports the final accumulated scores per role. Valid once
// terminal; the mine loss is signaled by MayorHitMine, not baked in here.
func (s *GameState) Returns() [NumRoles]float64 {
	var out [NumRoles]float64
	for r, v := range s.scores {
		out[r] = float64(v)
	}
	return out
}

// TurnRewards returns the dense shaping signal from the latest settled
// placement. Overwritten each turn, never accumulated.
func (s *GameState) TurnRewards() [NumRoles]float64 { return s.turnRewards }

// Facilities returns the city progress counters.
func (s *GameState) Facilities() Facilities { return s.facilities }

// Hand returns the Mayor's current hand.
func (s *GameState) Hand() []Card { return s.hand }

// RevealedCards returns the hand cards shown to the advisors, in reveal
// order.
func (s *GameState) RevealedCards() []Card {
	var out []Card
	for _, idx := range s.revealed {
		if idx >= 0 && idx < len(s.hand) {
			out = append(out, s.hand[idx])
		}
	}
	return out
}

// Frontier returns the hexes adjacent to built territory, discovery order.
func (s *GameState) Frontier() []HexCoord { return s.board.frontier() }

// BuiltHexes returns built territory in build order, origin first.
func (s *GameState) BuiltHexes() []HexCoord {
	out := make([]HexCoord, len(s.board.built))
	copy(out, s.board.built)
	return out
}

// RealityAt exposes a hex's ground-truth tile. Advisor-side information;
// the Mayor's legal view of reality is limited to verified hexes.
func (s *GameState) RealityAt(h HexCoord) (Card, bool) {
	return s.board.realityAt(h)
}

// Verified reports whether the Mayor has verified the hex's reality.
func (s *GameState) Verified(h HexCoord) bool { return s.verified[h] }

// Nominations returns this turn's committed nominations (industry's first,
// then the urbanist's), empty before PLACE.
func (s *GameState) Nominations() []Nomination {
	out := make([]Nomination, len(s.nominations))
	copy(out, s.nominations)
	return out
}

// Commits returns the nominations one advisor has committed so far this
// turn.
func (s *GameState) Commits(advisor Role) []Nomination {
	if !advisor.IsAdvisor() {
		return nil
	}
	out := make([]Nomination, len(s.commits[advisor]))
	copy(out, s.commits[advisor])
	return out
}

// Control returns the Mayor's control decision for the current turn.
func (s *GameState) Control() ControlDecision { return s.control }

// Tray returns the claim-card indices an advisor can still nominate with.
func (s *GameState) Tray(advisor Role) []int {
	if !advisor.IsAdvisor() {
		return nil
	}
	out := make([]int, len(s.trays[advisor]))
	copy(out, s.trays[advisor])
	return out
}

// History returns the completed-turn log.
func (s *GameState) History() []TurnRecord { return s.history }

// CurrentActor resolves whose move it is: chance while draws are pending,
// the advisor owning the current nomination sub-step, the Mayor otherwise.
func (s *GameState) CurrentActor() Actor {
	if s.terminal {
		return ActorTerminal
	}
	if s.pendingDraws > 0 {
		return ActorChance
	}
	switch s.phase {
	case PhaseDraw, PhaseControl, PhasePlace:
		return Actor(Mayor)
	case PhaseNominate:
		return Actor(commitActor(s.subPhase))
	default:
		return ActorTerminal
	}
}

// LegalActions enumerates the action IDs the current actor may apply.
// Non-empty unless the game is terminal.
func (s *GameState) LegalActions() []ActionID {
	if s.terminal {
		return nil
	}
	if s.pendingDraws > 0 {
		return s.chanceActions()
	}
	switch s.phase {
	case PhaseDraw:
		return s.revealActions()
	case PhaseControl:
		return s.controlActions()
	case PhaseNominate:
		return s.commitActions(commitActor(s.subPhase))
	case PhasePlace:
		return s.placeActions()
	default:
		return nil
	}
}

// ChanceOutcomes lists the legal chance draws with probabilities summing
// to 1: uniform over the distinct cards left in the hand deck.
func (s *GameState) ChanceOutcomes() []ChanceOutcome {
	if s.terminal || s.pendingDraws == 0 {
		return nil
	}
	actions := s.chanceActions()
	if len(actions) == 0 {
		return nil
	}
	prob := 1.0 / float64(len(actions))
	out := make([]ChanceOutcome, len(actions))
	for i, a := range actions {
		out[i] = ChanceOutcome{ID: a, Prob: prob}
	}
	return out
}

// ChanceOutcome pairs a chance action with its probability.
type ChanceOutcome struct {
	ID   ActionID
	Prob float64
}

func (s *GameState) chanceActions() []ActionID {
	// Drawable spans the discard once the draw pile cycles, matching the
	// reshuffle Take performs on apply.
	drawable := s.handDeck.Drawable()
	if len(drawable) == 0 {
		log.Warn().Msg("hand deck and discard both empty at chance node")
		return []ActionID{EncodeChance(defaultCard.Index())}
	}
	actions := make([]ActionID, 0, len(drawable))
	for _, c := range drawable {
		actions = append(actions, EncodeChance(c.Index()))
	}
	return actions
}

func (s *GameState) revealActions() []ActionID {
	var actions []ActionID
	for i := range s.hand {
		if !contains(s.revealed, i) {
			actions = append(actions, EncodeReveal(i))
		}
	}
	return actions
}

func (s *GameState) controlActions() []ActionID {
	actions := []ActionID{ActionControlSuitA, ActionControlSuitB}
	n := s.cappedFrontierLen()
	for urb := 0; urb < n; urb++ {
		for ind := 0; ind < n; ind++ {
			// Forcing both advisors onto the same hex is allowed.
			actions = append(actions, EncodeControlHexes(urb, ind))
		}
	}
	return actions
}

func (s *GameState) commitActions(advisor Role) []ActionID {
	frontier := s.board.frontier()
	if len(frontier) == 0 {
		log.Warn().Stringer("advisor", advisor).Msg("empty frontier in nominate phase")
		return nil
	}

	if len(s.trays[advisor]) == 0 {
		s.trays[advisor] = fullTray() // tray reshuffles to full when exhausted
	}
	tray := s.trays[advisor]

	first := isFirstCommit(s.subPhase)
	var firstHex HexRef
	var firstClaimSuit Suit
	haveFirst := false
	if !first && len(s.commits[advisor]) > 0 {
		firstHex = SomeHex(s.commits[advisor][0].Hex)
		firstClaimSuit = s.commits[advisor][0].Claim.Suit
		haveFirst = true
	}

	var forcedSuit *Suit
	if s.control.Mode == ControlForceSuits {
		fs := s.control.SuitConfig.ForcedSuit(advisor)
		forcedSuit = &fs
	}
	forcedHex := s.control.ForcedHex(advisor)

	n := s.cappedFrontierLen()
	var actions []ActionID
	for hexIdx := 0; hexIdx < n; hexIdx++ {
		hex := frontier[hexIdx]
		if first && forcedHex.Set && hex != forcedHex.Coord {
			continue
		}
		if haveFirst && firstHex.Set && hex == firstHex.Coord {
			continue // second nomination must pick a different hex
		}
		for _, claimIdx := range tray {
			if forcedSuit != nil && !first && haveFirst {
				// Second nomination must carry the forced suit unless the
				// first already did.
				claim, _ := CardFromIndex(claimIdx)
				if firstClaimSuit != *forcedSuit && claim.Suit != *forcedSuit {
					continue
				}
			}
			actions = append(actions, EncodeCommit(hexIdx, claimIdx))
		}
	}

	if len(actions) == 0 {
		// Constraints can zero out late-game with a tiny frontier; fall
		// back to the unconstrained set rather than deadlock.
		log.Warn().Stringer("advisor", advisor).Msg("constraints removed every nomination, relaxing")
		for hexIdx := 0; hexIdx < n; hexIdx++ {
			for _, claimIdx := range tray {
				actions = append(actions, EncodeCommit(hexIdx, claimIdx))
			}
		}
	}
	return actions
}

func (s *GameState) placeActions() []ActionID {
	if len(s.nominations) == 0 {
		log.Warn().Msg("no nominations in place phase")
		return nil
	}
	var actions []ActionID
	for handIdx := range s.hand {
		for nomIdx := range s.nominations {
			actions = append(actions, EncodeBuild(handIdx, nomIdx))
		}
	}
	for nomIdx, nom := range s.nominations {
		if !s.verified[nom.Hex] {
			actions = append(actions, EncodeVerify(nomIdx))
		}
	}
	return actions
}

func (s *GameState) cappedFrontierLen() int {
	n := len(s.board.frontier())
	if n > MaxFrontier {
		n = MaxFrontier
	}
	return n
}

// ApplyAction mutates the state by one action. IDs outside every range, or
// of a kind foreign to the current phase, are rejected with ErrIllegalAction;
// in-range but stale indices degrade to logged no-ops.
func (s *GameState) ApplyAction(id ActionID) error {
	if s.terminal {
		return fmt.Errorf("%w: game is over", ErrIllegalAction)
	}
	decoded, err := Decode(id)
	if err != nil {
		return err
	}

	if s.pendingDraws > 0 {
		if decoded.Kind != KindChance {
			return fmt.Errorf("%w: expected chance draw, got action %d", ErrIllegalAction, id)
		}
		s.applyChance(decoded)
		return nil
	}

	switch s.phase {
	case PhaseDraw:
		if decoded.Kind != KindReveal {
			return fmt.Errorf("%w: expected reveal in DRAW, got action %d", ErrIllegalAction, id)
		}
		s.applyReveal(decoded)
	case PhaseControl:
		if decoded.Kind != KindControlSuits && decoded.Kind != KindControlHexes {
			return fmt.Errorf("%w: expected control choice in CONTROL, got action %d", ErrIllegalAction, id)
		}
		s.applyControl(decoded)
	case PhaseNominate:
		if decoded.Kind != KindCommit {
			return fmt.Errorf("%w: expected nomination in NOMINATE, got action %d", ErrIllegalAction, id)
		}
		s.applyCommit(decoded, commitActor(s.subPhase))
	case PhasePlace:
		if decoded.Kind != KindBuild && decoded.Kind != KindVerify {
			return fmt.Errorf("%w: expected build or verify in PLACE, got action %d", ErrIllegalAction, id)
		}
		s.applyPlace(decoded)
	default:
		return fmt.Errorf("%w: no actions in phase %s", ErrIllegalAction, s.phase)
	}
	return nil
}

func (s *GameState) applyChance(d DecodedAction) {
	card, ok := s.handDeck.Take(d.CardIdx)
	if !ok {
		log.Warn().Int("card", d.CardIdx).Msg("chance draw not in hand deck, drawing top instead")
		card = s.handDeck.Draw()
	}
	s.hand = append(s.hand, card)
	s.pendingDraws--
	if s.pendingDraws == 0 {
		s.subPhase = SubRevealFirst
	}
}

func (s *GameState) applyReveal(d DecodedAction) {
	if d.CardSlot >= len(s.hand) || contains(s.revealed, d.CardSlot) {
		log.Warn().Int("slot", d.CardSlot).Msg("stale reveal slot, ignoring")
		return
	}
	s.revealed = append(s.revealed, d.CardSlot)
	s.commits[Industry] = nil
	s.commits[Urbanist] = nil
	if len(s.revealed) >= RevealsPerTurn {
		s.phase = PhaseControl
		s.subPhase = SubControl
	} else {
		s.subPhase = SubRevealSecond
	}
}

func (s *GameState) applyControl(d DecodedAction) {
	switch d.Kind {
	case KindControlSuits:
		s.control = ControlDecision{Mode: ControlForceSuits, SuitConfig: d.SuitConfig}
	case KindControlHexes:
		s.control = ControlDecision{Mode: ControlForceHexes}
		frontier := s.board.frontier()
		n := s.cappedFrontierLen()
		if d.UrbanistIdx < n && d.IndustryIdx < n {
			s.control.ForcedHexes[Urbanist] = SomeHex(frontier[d.UrbanistIdx])
			s.control.ForcedHexes[Industry] = SomeHex(frontier[d.IndustryIdx])
		} else {
			// Stale frontier indices from a replayed ID: keep the mode but
			// drop the pins.
			log.Warn().Int("urb", d.UrbanistIdx).Int("ind", d.IndustryIdx).
				Msg("forced-hex indices beyond frontier, dropping pins")
		}
	}
	s.phase = PhaseNominate
	s.subPhase = SubIndustryFirst
}

func (s *GameState) applyCommit(d DecodedAction, advisor Role) {
	frontier := s.board.frontier()
	n := s.cappedFrontierLen()
	if d.FrontierIdx >= n {
		log.Warn().Int("hex", d.FrontierIdx).Int("frontier", n).Msg("commit index beyond frontier, ignoring")
		return
	}
	claim, ok := CardFromIndex(d.ClaimIdx)
	if !ok {
		log.Warn().Int("claim", d.ClaimIdx).Msg("commit claim out of range, ignoring")
		return
	}

	s.commits[advisor] = append(s.commits[advisor], Nomination{
		Hex:     frontier[d.FrontierIdx],
		Claim:   claim,
		Advisor: advisor,
	})
	s.trays[advisor] = removeFirst(s.trays[advisor], d.ClaimIdx)

	next, ok := commitTransitions[s.subPhase]
	if !ok {
		log.Warn().Int("subPhase", int(s.subPhase)).Msg("commit outside nomination sequence")
		next = SubPlace
	}
	if next == SubPlace {
		// Industry's nominations precede the urbanist's in the flat list.
		s.nominations = append(append([]Nomination{}, s.commits[Industry]...), s.commits[Urbanist]...)
		s.phase = PhasePlace
	}
	s.subPhase = next
}

func (s *GameState) applyPlace(d DecodedAction) {
	if d.Kind == KindVerify {
		s.applyVerify(d)
		return
	}
	if d.HandIdx >= len(s.hand) || d.NominationIdx >= len(s.nominations) {
		log.Warn().Int("hand", d.HandIdx).Int("nom", d.NominationIdx).Msg("stale build indices, ignoring")
		return
	}

	chosen := s.nominations[d.NominationIdx]
	placed := s.hand[d.HandIdx]

	s.board.build(chosen.Hex)
	s.board.revealAround(chosen.Hex)
	s.indexRevealed()

	prev := s.scores
	s.scoreBuild(placed, chosen.Hex)

	reality, _ := s.board.realityAt(chosen.Hex)
	var deltas [NumRoles]int
	for r := range deltas {
		deltas[r] = s.scores[r] - prev[r]
	}
	s.history = append(s.history, TurnRecord{
		Turn:        s.turn,
		Revealed:    append([]int{}, s.revealed...),
		Control:     s.control,
		Nominations: s.Nominations(),
		BuildHex:    chosen.Hex,
		PlacedCard:  placed,
		Reality:     reality,
		ScoreDeltas: deltas,
	})

	if reality.Suit == Spades {
		// Mine: the Mayor loses immediately; every outstanding nomination
		// is revealed and judged.
		s.hitMine = true
		s.terminal = true
		s.applyDeathReveal()
		return
	}

	s.turnRewards[Mayor] += s.mineDodgeBonus(chosen.Hex)

	switch reality.Suit {
	case Hearts:
		s.facilities.Hearts++
	case Diamonds:
		s.facilities.Diamonds++
	}
	if s.facilities.Hearts >= s.params.FacilityGoal && s.facilities.Diamonds >= s.params.FacilityGoal {
		s.cityComplete = true
		s.terminal = true
		return
	}

	// Placed card goes to the discard now; resetTurn sweeps the rest of
	// the hand so the 39-card hand universe stays intact.
	s.handDeck.Discard(placed)
	s.hand = append(s.hand[:d.HandIdx], s.hand[d.HandIdx+1:]...)
	s.resetTurn()
}

func (s *GameState) applyVerify(d DecodedAction) {
	if d.NominationIdx < len(s.nominations) {
		hex := s.nominations[d.NominationIdx].Hex
		s.verified[hex] = true
		s.lastVerified = SomeHex(hex)

		// Information has shaping value: a found mine is a dodged death.
		s.turnRewards = [NumRoles]float64{}
		if reality, ok := s.board.realityAt(hex); ok && reality.Suit == Spades {
			s.turnRewards[Mayor] = 10.0
		} else {
			s.turnRewards[Mayor] = 2.0
		}
	} else {
		log.Warn().Int("nom", d.NominationIdx).Msg("stale verify index, ignoring")
	}
	s.resetTurn()
}

// resetTurn discards the whole hand and rewinds the sub-phase sequence for
// the next turn's chance draws.
func (s *GameState) resetTurn() {
	for _, c := range s.hand {
		s.handDeck.Discard(c)
	}
	s.hand = nil
	s.revealed = nil
	s.pendingDraws = HandSize
	s.control = ControlDecision{}
	s.lastVerified = HexRef{}
	s.commits[Industry] = nil
	s.commits[Urbanist] = nil
	s.nominations = nil
	s.turn++
	s.phase = PhaseDraw
	s.subPhase = SubDrawing
}

func (s *GameState) String() string {
	return fmt.Sprintf("turn %d, phase %s, scores %v", s.turn, s.Phase(), s.scores)
}

// InfoString is a compact human-readable view of the state from one role's
// perspective, for logs and debugging.
func (s *GameState) InfoString(role Role) string {
	out := fmt.Sprintf("P%d|T%d|Ph%s|Scores%v", role, s.turn, s.Phase(), s.scores)
	if role == Mayor {
		out += fmt.Sprintf("|Hand%v|Revealed%v", s.hand, s.revealed)
	} else {
		out += fmt.Sprintf("|Revealed%v", s.RevealedCards())
	}
	if s.phase == PhasePlace && len(s.nominations) > 0 {
		out += "|Noms["
		for i, nom := range s.nominations {
			if i > 0 {
				out += ","
			}
			out += fmt.Sprintf("%s:%s", nom.Advisor, nom.Claim)
		}
		out += "]"
	}
	return out
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func removeFirst(values []int, v int) []int {
	for i, x := range values {
		if x == v {
			return append(values[:i], values[i+1:]...)
		}
	}
	return values
}
