package game

// Role-specific observation encoding. The encoder is a pure function of a
// settled state snapshot: hex→index assignment is owned by the state machine
// (see GameState.indexRevealed), so querying an observation can never change
// a later observation, and all roles share one index assignment per game.

const (
	// CardDim is a card one-hot plus a null slot.
	CardDim = NumCards + 1

	// MaxBuilt caps addressable built hexes in the built mask.
	MaxBuilt = 50

	commonDim = NumPhases + // phase one-hot
		1 + // normalized turn
		NumRoles + // normalized scores
		2 + // facility progress
		MaxBuilt + // built hex mask
		MaxFrontier + // frontier hex mask
		RevealsPerTurn*CardDim + // revealed cards
		NumControlModes + // control mode one-hot
		NumSuitConfigs + // forced suit config one-hot
		2*MaxFrontier // forced hex masks (industry, urbanist)

	// MayorObservationSize adds the full hand and the nomination slots.
	MayorObservationSize = commonDim + HandSize*CardDim + MaxNominations*(MaxFrontier+CardDim)

	// AdvisorObservationSize adds frontier reality tiles, the advisor's own
	// tray mask, and the nomination slots.
	AdvisorObservationSize = commonDim + MaxFrontier*CardDim + NumCards + MaxNominations*(MaxFrontier+CardDim)

	turnNorm  = 50.0
	scoreNorm = 20.0
)

// ObservationSize returns the fixed vector width for a role.
func ObservationSize(role Role) int {
	if role == Mayor {
		return MayorObservationSize
	}
	return AdvisorObservationSize
}

// hexIndexer assigns stable small indices to hexes first-come-first-served
// as they are revealed. Shared by every role's observations in one game.
type hexIndexer struct {
	max   int
	index map[HexCoord]int
	order []HexCoord
}

func newHexIndexer(max int) *hexIndexer {
	return &hexIndexer{max: max, index: map[HexCoord]int{}}
}

// touch assigns an index to a new hex, returning -1 on overflow.
func (x *hexIndexer) touch(h HexCoord) int {
	if idx, ok := x.index[h]; ok {
		return idx
	}
	idx := len(x.order)
	if idx >= x.max {
		return -1
	}
	x.index[h] = idx
	x.order = append(x.order, h)
	return idx
}

// lookup never assigns.
func (x *hexIndexer) lookup(h HexCoord) (int, bool) {
	idx, ok := x.index[h]
	return idx, ok
}

// Observation encodes the requesting role's asymmetric view of the state as
// a fixed-width vector. Read-only: repeated calls return identical vectors
// for an unchanged state.
func (s *GameState) Observation(role Role) []float32 {
	if role == Mayor {
		out := make([]float32, 0, MayorObservationSize)
		out = s.encodeCommon(out)
		for i := 0; i < HandSize; i++ {
			if i < len(s.hand) {
				out = encodeCard(out, s.hand[i], true)
			} else {
				out = encodeCard(out, Card{}, false)
			}
		}
		return s.encodeNominations(out, s.nominations)
	}

	out := make([]float32, 0, AdvisorObservationSize)
	out = s.encodeCommon(out)

	// Reality tiles for every frontier hex, zero where unknown or beyond
	// the index cap.
	reality := make([]float32, MaxFrontier*CardDim)
	for _, h := range s.board.frontier() {
		idx, ok := s.hexes.lookup(h)
		if !ok || idx >= MaxFrontier {
			continue
		}
		tile, ok := s.board.realityAt(h)
		if !ok {
			continue
		}
		reality[idx*CardDim+tile.Index()] = 1.0
	}
	out = append(out, reality...)

	tray := make([]float32, NumCards)
	for _, cardIdx := range s.trays[role] {
		if cardIdx >= 0 && cardIdx < NumCards {
			tray[cardIdx] = 1.0
		}
	}
	out = append(out, tray...)

	// Nominations are public in PLACE; before that an advisor sees only
	// its own commits.
	noms := s.nominations
	if len(noms) == 0 {
		noms = s.commits[role]
	}
	return s.encodeNominations(out, noms)
}

func (s *GameState) encodeCommon(out []float32) []float32 {
	out = encodeOneHot(out, int(s.Phase()), NumPhases)
	out = append(out, float32(s.turn)/turnNorm)
	for _, score := range s.scores {
		out = append(out, float32(score)/scoreNorm)
	}
	goal := float32(s.params.FacilityGoal)
	out = append(out, float32(s.facilities.Hearts)/goal, float32(s.facilities.Diamonds)/goal)

	out = s.encodeHexMask(out, s.board.built, MaxBuilt)
	out = s.encodeHexMask(out, s.board.frontier(), MaxFrontier)

	revealed := s.RevealedCards()
	for i := 0; i < RevealsPerTurn; i++ {
		if i < len(revealed) {
			out = encodeCard(out, revealed[i], true)
		} else {
			out = encodeCard(out, Card{}, false)
		}
	}

	out = encodeOneHot(out, int(s.control.Mode), NumControlModes)
	if s.control.Mode == ControlForceSuits {
		out = encodeOneHot(out, int(s.control.SuitConfig), NumSuitConfigs)
	} else {
		out = append(out, make([]float32, NumSuitConfigs)...)
	}
	for _, advisor := range []Role{Industry, Urbanist} {
		mask := make([]float32, MaxFrontier)
		if ref := s.control.ForcedHex(advisor); ref.Set {
			if idx, ok := s.hexes.lookup(ref.Coord); ok && idx < MaxFrontier {
				mask[idx] = 1.0
			}
		}
		out = append(out, mask...)
	}
	return out
}

func (s *GameState) encodeNominations(out []float32, noms []Nomination) []float32 {
	for i := 0; i < MaxNominations; i++ {
		mask := make([]float32, MaxFrontier)
		if i < len(noms) {
			if idx, ok := s.hexes.lookup(noms[i].Hex); ok && idx < MaxFrontier {
				mask[idx] = 1.0
			}
		}
		out = append(out, mask...)
		if i < len(noms) {
			out = encodeCard(out, noms[i].Claim, true)
		} else {
			out = encodeCard(out, Card{}, false)
		}
	}
	return out
}

func (s *GameState) encodeHexMask(out []float32, hexes []HexCoord, size int) []float32 {
	mask := make([]float32, size)
	for _, h := range hexes {
		if idx, ok := s.hexes.lookup(h); ok && idx < size {
			mask[idx] = 1.0
		}
	}
	return append(out, mask...)
}

func encodeCard(out []float32, c Card, present bool) []float32 {
	vec := make([]float32, CardDim)
	if present {
		vec[c.Index()] = 1.0
	} else {
		vec[NumCards] = 1.0
	}
	return append(out, vec...)
}

func encodeOneHot(out []float32, idx, size int) []float32 {
	vec := make([]float32, size)
	if idx >= 0 && idx < size {
		vec[idx] = 1.0
	}
	return append(out, vec...)
}
