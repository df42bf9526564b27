package game

// Role identifies one of the three players.
type Role int

const (
	Mayor Role = iota
	Industry
	Urbanist

	NumRoles = 3
)

func (r Role) String() string {
	switch r {
	case Mayor:
		return "mayor"
	case Industry:
		return "industry"
	case Urbanist:
		return "urbanist"
	default:
		return "unknown"
	}
}

// IsAdvisor reports whether the role is one of the two advisors.
func (r Role) IsAdvisor() bool {
	return r == Industry || r == Urbanist
}

// Actor is the answer to "whose move is it": a Role, the chance player, or
// the terminal sentinel.
type Actor int

const (
	ActorChance   Actor = -1
	ActorTerminal Actor = -2
)

// Role converts the actor back to a player role. Only valid when the actor
// is neither chance nor terminal.
func (a Actor) Role() Role {
	return Role(a)
}

func (a Actor) IsChance() bool   { return a == ActorChance }
func (a Actor) IsTerminal() bool { return a == ActorTerminal }

// Phase is the top-level turn phase.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseControl
	PhaseNominate
	PhasePlace
	PhaseGameOver

	NumPhases = 5
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "DRAW"
	case PhaseControl:
		return "CONTROL"
	case PhaseNominate:
		return "NOMINATE"
	case PhasePlace:
		return "PLACE"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// SubPhase is the explicit position inside a phase's internal sequence.
type SubPhase int

const (
	SubDrawing SubPhase = iota
	SubRevealFirst
	SubRevealSecond
	SubControl
	SubIndustryFirst
	SubIndustrySecond
	SubUrbanistFirst
	SubUrbanistSecond
	SubPlace
)

// commitTransitions is the nomination sub-step sequence: industry commits
// both nominations before the urbanist, and the last commit hands over to
// PLACE.
var commitTransitions = map[SubPhase]SubPhase{
	SubIndustryFirst:  SubIndustrySecond,
	SubIndustrySecond: SubUrbanistFirst,
	SubUrbanistFirst:  SubUrbanistSecond,
	SubUrbanistSecond: SubPlace,
}

// commitActor resolves which advisor owns a nomination sub-step.
func commitActor(sp SubPhase) Role {
	if sp == SubUrbanistFirst || sp == SubUrbanistSecond {
		return Urbanist
	}
	return Industry
}

// isFirstCommit reports whether the sub-step is an advisor's first
// nomination of the turn.
func isFirstCommit(sp SubPhase) bool {
	return sp == SubIndustryFirst || sp == SubUrbanistFirst
}

// ControlMode is the Mayor's pre-nomination constraint choice.
type ControlMode int

const (
	ControlNone ControlMode = iota
	ControlForceSuits
	ControlForceHexes

	NumControlModes = 3
)

// SuitConfig selects which advisor is forced onto which suit.
type SuitConfig int

const (
	// SuitConfigUrbDiamondIndHeart forces Urbanist→♦, Industry→♥.
	SuitConfigUrbDiamondIndHeart SuitConfig = iota
	// SuitConfigUrbHeartIndDiamond forces Urbanist→♥, Industry→♦.
	SuitConfigUrbHeartIndDiamond

	NumSuitConfigs = 2
)

// ForcedSuit returns the suit an advisor must claim at least once under this
// configuration.
func (c SuitConfig) ForcedSuit(advisor Role) Suit {
	if c == SuitConfigUrbDiamondIndHeart {
		if advisor == Urbanist {
			return Diamonds
		}
		return Hearts
	}
	if advisor == Urbanist {
		return Hearts
	}
	return Diamonds
}

// ControlDecision is the Mayor's control-phase choice for the current turn.
// Reset every turn.
type ControlDecision struct {
	Mode        ControlMode
	SuitConfig  SuitConfig         // meaningful when Mode == ControlForceSuits
	ForcedHexes [NumRoles]HexRef   // per advisor, when Mode == ControlForceHexes
}

// ForcedHex returns the hex an advisor's first nomination is pinned to, if
// any.
func (c ControlDecision) ForcedHex(advisor Role) HexRef {
	if c.Mode != ControlForceHexes {
		return HexRef{}
	}
	return c.ForcedHexes[advisor]
}

// Nomination is one advisor's public commitment: a frontier hex and the card
// the advisor claims it to be.
type Nomination struct {
	Hex     HexCoord
	Claim   Card
	Advisor Role
}

// Facilities counts built hexes by reality suit. Completing FacilityGoal of
// both kinds ends the game.
type Facilities struct {
	Hearts   int
	Diamonds int
}

// TurnRecord is one completed build turn, logged for deduction.
type TurnRecord struct {
	Turn        int
	Revealed    []int
	Control     ControlDecision
	Nominations []Nomination
	BuildHex    HexCoord
	PlacedCard  Card
	Reality     Card
	ScoreDeltas [NumRoles]int
}
