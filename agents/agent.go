// Package agents provides baseline policies over the engine's action
// surface: a uniform random agent for smoke testing and scripted heuristic
// agents for the three roles.
package agents

import (
	"fmt"

	"golang.org/x/exp/rand"

	"collapse/game"
)

// Agent picks one legal action ID for its role at the current state.
type Agent interface {
	Step(state *game.GameState) (game.ActionID, error)
	Reset()
}

// Random plays uniformly over legal actions.
type Random struct {
	role game.Role
	rng  *rand.Rand
}

func NewRandom(role game.Role, seed uint64) *Random {
	return &Random{role: role, rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Step(state *game.GameState) (game.ActionID, error) {
	legal := state.LegalActions()
	if len(legal) == 0 {
		return 0, fmt.Errorf("no legal actions for %s", a.role)
	}
	return legal[a.rng.Intn(len(legal))], nil
}

func (a *Random) Reset() {}

// nearestLegal clamps a desired action to the closest legal ID when the
// exact encoding is not offered.
func nearestLegal(want game.ActionID, legal []game.ActionID) game.ActionID {
	best := legal[0]
	bestDist := distance(want, best)
	for _, a := range legal[1:] {
		if d := distance(want, a); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

func distance(a, b game.ActionID) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
