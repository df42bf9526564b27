// Package engine runs full games between agents against one local
// synchronous game instance. Chance nodes are resolved here with the
// caller's seeded RNG; the game itself never samples its own chance
// outcomes.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"collapse/agents"
	"collapse/game"
)

// MaxSteps bounds a runaway game; well beyond any normal playthrough.
const MaxSteps = 10000

// Result summarizes one completed game.
type Result struct {
	Returns      [game.NumRoles]float64
	Steps        int
	Turns        int
	MayorHitMine bool
	CityComplete bool
}

// Local drives one game to termination.
type Local struct {
	state  *game.GameState
	agents [game.NumRoles]agents.Agent
	rng    *rand.Rand
}

// NewLocal wires three agents (indexed by role) to a fresh game.
func NewLocal(params game.Params, roleAgents [game.NumRoles]agents.Agent, chanceSeed uint64) *Local {
	return &Local{
		state:  game.NewGame(params),
		agents: roleAgents,
		rng:    rand.New(rand.NewSource(chanceSeed)),
	}
}

// State exposes the underlying game, e.g. for history inspection.
func (e *Local) State() *game.GameState { return e.state }

// Run loops current-actor resolution, action selection, and application
// until the game is terminal.
func (e *Local) Run() (Result, error) {
	steps := 0
	for !e.state.IsTerminal() {
		if steps >= MaxSteps {
			return Result{}, fmt.Errorf("game exceeded %d steps without terminating", MaxSteps)
		}

		actor := e.state.CurrentActor()
		var action game.ActionID
		var err error
		if actor.IsChance() {
			action, err = e.sampleChance()
		} else {
			action, err = e.agents[actor.Role()].Step(e.state)
		}
		if err != nil {
			return Result{}, err
		}

		if err := e.state.ApplyAction(action); err != nil {
			return Result{}, fmt.Errorf("step %d: %w", steps, err)
		}
		steps++
	}

	result := Result{
		Returns:      e.state.Returns(),
		Steps:        steps,
		Turns:        e.state.Turn(),
		MayorHitMine: e.state.MayorHitMine(),
		CityComplete: e.state.CityComplete(),
	}
	log.Info().
		Int("steps", steps).
		Int("turns", result.Turns).
		Bool("mine", result.MayorHitMine).
		Bool("city", result.CityComplete).
		Floats64("returns", result.Returns[:]).
		Msg("game over")
	return result, nil
}

func (e *Local) sampleChance() (game.ActionID, error) {
	outcomes := e.state.ChanceOutcomes()
	if len(outcomes) == 0 {
		return 0, fmt.Errorf("chance node with no outcomes")
	}
	roll := e.rng.Float64()
	acc := 0.0
	for _, outcome := range outcomes {
		acc += outcome.Prob
		if roll < acc {
			return outcome.ID, nil
		}
	}
	return outcomes[len(outcomes)-1].ID, nil
}

// PlayRandom plays a full game with uniform random agents. Used for smoke
// testing and throughput measurement.
func PlayRandom(params game.Params, seed uint64) (Result, error) {
	e := NewLocal(params, [game.NumRoles]agents.Agent{
		agents.NewRandom(game.Mayor, seed+1),
		agents.NewRandom(game.Industry, seed+2),
		agents.NewRandom(game.Urbanist, seed+3),
	}, seed)
	return e.Run()
}
