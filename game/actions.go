package game

import (
	"errors"
	"fmt"
)

// ActionID addresses one move in the flat action space shared with external
// agents and training code. The five contiguous ranges below are a
// load-bearing contract: changing any width breaks external consumers.
type ActionID int

const (
	// MaxFrontier caps how many frontier hexes are addressable by actions
	// and observations.
	MaxFrontier = 50

	// HandSize is how many cards the Mayor draws each turn.
	HandSize = 4

	// RevealsPerTurn is how many hand cards the Mayor shows the advisors.
	RevealsPerTurn = 2

	// NominationsPerAdvisor is how many hexes each advisor commits per turn.
	NominationsPerAdvisor = 2

	// MaxNominations is the total nomination slots per turn.
	MaxNominations = 2 * NominationsPerAdvisor
)

// Action space layout. REVEAL | CONTROL | COMMIT | BUILD | CHANCE, each range
// closed-form encode/decode. The verify sub-range sits at the tail of
// CONTROL but its actions are issued during PLACE.
const (
	ActionRevealBase  ActionID = 0
	ActionRevealCount          = HandSize

	ActionControlBase  = ActionRevealBase + ActionRevealCount
	ActionControlSuitA = ActionControlBase + 0 // Urbanist→♦, Industry→♥
	ActionControlSuitB = ActionControlBase + 1 // Urbanist→♥, Industry→♦

	ActionControlHexBase  = ActionControlBase + 2
	ActionControlHexCount = MaxFrontier * MaxFrontier

	ActionVerifyBase  = ActionControlHexBase + ActionControlHexCount
	ActionVerifyCount = MaxFrontier

	ActionControlCount = 2 + ActionControlHexCount + ActionVerifyCount

	ActionCommitBase  = ActionControlBase + ActionControlCount
	ActionCommitCount = MaxFrontier * NumCards

	ActionBuildBase  = ActionCommitBase + ActionCommitCount
	ActionBuildCount = HandSize * MaxNominations

	ActionChanceBase  = ActionBuildBase + ActionBuildCount
	ActionChanceCount = NumCards

	TotalActions = int(ActionChanceBase) + ActionChanceCount
)

// ErrIllegalAction marks action IDs outside every known range or illegal for
// the current state. External callers get this instead of silent corruption.
var ErrIllegalAction = errors.New("illegal action")

// ActionKind tags a decoded action.
type ActionKind int

const (
	KindReveal ActionKind = iota
	KindControlSuits
	KindControlHexes
	KindVerify
	KindCommit
	KindBuild
	KindChance
)

// DecodedAction is the domain-level view of an ActionID. Only the fields for
// the tagged kind are meaningful.
type DecodedAction struct {
	Kind ActionKind

	CardSlot      int        // KindReveal: hand slot to reveal
	SuitConfig    SuitConfig // KindControlSuits
	UrbanistIdx   int        // KindControlHexes: frontier index forced on the Urbanist
	IndustryIdx   int        // KindControlHexes: frontier index forced on Industry
	NominationIdx int        // KindVerify, KindBuild
	FrontierIdx   int        // KindCommit
	ClaimIdx      int        // KindCommit: claim card index 0..38
	HandIdx       int        // KindBuild
	CardIdx       int        // KindChance: drawn card index 0..38
}

func EncodeReveal(slot int) ActionID {
	return ActionRevealBase + ActionID(slot)
}

func EncodeControlSuits(cfg SuitConfig) ActionID {
	return ActionControlBase + ActionID(cfg)
}

func EncodeControlHexes(urbIdx, indIdx int) ActionID {
	return ActionControlHexBase + ActionID(urbIdx*MaxFrontier+indIdx)
}

func EncodeVerify(nomIdx int) ActionID {
	return ActionVerifyBase + ActionID(nomIdx)
}

func EncodeCommit(frontierIdx, claimIdx int) ActionID {
	return ActionCommitBase + ActionID(frontierIdx*NumCards+claimIdx)
}

func EncodeBuild(handIdx, nomIdx int) ActionID {
	return ActionBuildBase + ActionID(handIdx*MaxNominations+nomIdx)
}

func EncodeChance(cardIdx int) ActionID {
	return ActionChanceBase + ActionID(cardIdx)
}

// Decode maps an ActionID back to its domain action. It is total over the
// five ranges and phase-agnostic: legality is the state machine's concern.
func Decode(id ActionID) (DecodedAction, error) {
	switch {
	case id >= ActionRevealBase && id < ActionRevealBase+ActionRevealCount:
		return DecodedAction{Kind: KindReveal, CardSlot: int(id - ActionRevealBase)}, nil

	case id == ActionControlSuitA || id == ActionControlSuitB:
		return DecodedAction{Kind: KindControlSuits, SuitConfig: SuitConfig(id - ActionControlBase)}, nil

	case id >= ActionControlHexBase && id < ActionControlHexBase+ActionControlHexCount:
		pair := int(id - ActionControlHexBase)
		return DecodedAction{
			Kind:        KindControlHexes,
			UrbanistIdx: pair / MaxFrontier,
			IndustryIdx: pair % MaxFrontier,
		}, nil

	case id >= ActionVerifyBase && id < ActionVerifyBase+ActionVerifyCount:
		return DecodedAction{Kind: KindVerify, NominationIdx: int(id - ActionVerifyBase)}, nil

	case id >= ActionCommitBase && id < ActionCommitBase+ActionCommitCount:
		commit := int(id - ActionCommitBase)
		return DecodedAction{
			Kind:        KindCommit,
			FrontierIdx: commit / NumCards,
			ClaimIdx:    commit % NumCards,
		}, nil

	case id >= ActionBuildBase && id < ActionBuildBase+ActionBuildCount:
		build := int(id - ActionBuildBase)
		return DecodedAction{
			Kind:          KindBuild,
			HandIdx:       build / MaxNominations,
			NominationIdx: build % MaxNominations,
		}, nil

	case id >= ActionChanceBase && int(id) < int(ActionChanceBase)+ActionChanceCount:
		return DecodedAction{Kind: KindChance, CardIdx: int(id - ActionChanceBase)}, nil

	default:
		return DecodedAction{}, fmt.Errorf("%w: action %d outside every range", ErrIllegalAction, id)
	}
}
