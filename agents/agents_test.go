package agents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"collapse/game"
)

func newNominateState(t *testing.T, seed uint64, control game.ActionID) *game.GameState {
	t.Helper()
	s := game.NewGame(game.Params{Seed: seed, MaxInitialSpades: -1, FacilityGoal: 10})
	for s.CurrentActor().IsChance() {
		outcomes := s.ChanceOutcomes()
		require.NotEmpty(t, outcomes)
		require.NoError(t, s.ApplyAction(outcomes[0].ID))
	}
	require.NoError(t, s.ApplyAction(game.EncodeReveal(0)))
	require.NoError(t, s.ApplyAction(game.EncodeReveal(1)))
	require.NoError(t, s.ApplyAction(control))
	return s
}

func TestRandomPicksLegalActions(t *testing.T) {
	s := game.NewGame(game.Params{Seed: 31, MaxInitialSpades: -1, FacilityGoal: 10})
	for s.CurrentActor().IsChance() {
		require.NoError(t, s.ApplyAction(s.ChanceOutcomes()[0].ID))
	}

	agent := NewRandom(game.Mayor, 7)
	for i := 0; i < 50; i++ {
		action, err := agent.Step(s)
		require.NoError(t, err)
		require.Contains(t, s.LegalActions(), action)
	}
}

func TestRandomErrorsWithoutLegalActions(t *testing.T) {
	s := game.NewGame(game.Params{Seed: 32, MaxInitialSpades: -1, FacilityGoal: 10})

	// Drive to terminal with random play, then Step must fail.
	agent := NewRandom(game.Mayor, 9)
	steps := 0
	for !s.IsTerminal() && steps < 20000 {
		var action game.ActionID
		if s.CurrentActor().IsChance() {
			action = s.ChanceOutcomes()[0].ID
		} else {
			var err error
			action, err = agent.Step(s)
			require.NoError(t, err)
		}
		require.NoError(t, s.ApplyAction(action))
		steps++
	}
	require.True(t, s.IsTerminal())

	_, err := agent.Step(s)
	require.Error(t, err)
}

func TestNewScriptedAdvisorRejectsMayor(t *testing.T) {
	_, err := NewScriptedAdvisor(game.Mayor, 1)
	require.Error(t, err)
}

func TestScriptedAdvisorCommitsLegally(t *testing.T) {
	for _, control := range []game.ActionID{game.ActionControlSuitA, game.ActionControlSuitB} {
		s := newNominateState(t, 33, control)

		industry, err := NewScriptedAdvisor(game.Industry, 5)
		require.NoError(t, err)
		urbanist, err := NewScriptedAdvisor(game.Urbanist, 6)
		require.NoError(t, err)

		byRole := map[game.Role]*ScriptedAdvisor{game.Industry: industry, game.Urbanist: urbanist}
		for i := 0; i < game.MaxNominations; i++ {
			actor := s.CurrentActor().Role()
			action, err := byRole[actor].Step(s)
			require.NoError(t, err)
			require.Contains(t, s.LegalActions(), action, "scripted commit must be legal under %v", control)
			require.NoError(t, s.ApplyAction(action))
		}
		require.Equal(t, game.PhasePlace, s.Phase())
	}
}

func TestScriptedMayorAvoidsSpadeReveal(t *testing.T) {
	s := game.NewGame(game.Params{Seed: 34, MaxInitialSpades: -1, FacilityGoal: 10})
	for s.CurrentActor().IsChance() {
		require.NoError(t, s.ApplyAction(s.ChanceOutcomes()[0].ID))
	}

	mayor := NewScriptedMayor(3)
	action, err := mayor.Step(s)
	require.NoError(t, err)
	require.Contains(t, s.LegalActions(), action)

	decoded, err := game.Decode(action)
	require.NoError(t, err)
	require.Equal(t, game.KindReveal, decoded.Kind)

	hand := s.Hand()
	chosen := hand[decoded.CardSlot]
	if chosen.Suit == game.Spades {
		// Only acceptable when the whole hand is spades.
		for _, c := range hand {
			require.Equal(t, game.Spades, c.Suit)
		}
	}
}

func TestScriptedMayorPrefersMatchingBuild(t *testing.T) {
	s := newNominateState(t, 35, game.ActionControlSuitA)
	industry, err := NewScriptedAdvisor(game.Industry, 5)
	require.NoError(t, err)
	urbanist, err := NewScriptedAdvisor(game.Urbanist, 6)
	require.NoError(t, err)
	byRole := map[game.Role]*ScriptedAdvisor{game.Industry: industry, game.Urbanist: urbanist}
	for i := 0; i < game.MaxNominations; i++ {
		action, err := byRole[s.CurrentActor().Role()].Step(s)
		require.NoError(t, err)
		require.NoError(t, s.ApplyAction(action))
	}

	mayor := NewScriptedMayor(3)
	action, err := mayor.Step(s)
	require.NoError(t, err)
	require.Contains(t, s.LegalActions(), action)

	decoded, err := game.Decode(action)
	require.NoError(t, err)
	require.Equal(t, game.KindBuild, decoded.Kind)

	// A spade build is only ever chosen when the hand leaves no choice.
	placed := s.Hand()[decoded.HandIdx]
	if placed.Suit == game.Spades {
		for _, c := range s.Hand() {
			require.Equal(t, game.Spades, c.Suit)
		}
	}
}

func TestNearestLegal(t *testing.T) {
	legal := []game.ActionID{10, 20, 30}
	require.Equal(t, game.ActionID(10), nearestLegal(12, legal))
	require.Equal(t, game.ActionID(20), nearestLegal(19, legal))
	require.Equal(t, game.ActionID(30), nearestLegal(500, legal))
	require.Equal(t, game.ActionID(20), nearestLegal(20, legal))
}

func TestClaimWithValueClamps(t *testing.T) {
	c := claimWithValue(game.Spades, 9)
	require.Equal(t, game.Spades, c.Suit)
	require.Equal(t, 9, c.Value())

	high := claimWithValue(game.Hearts, 99)
	require.Equal(t, game.Rank(game.NumRanks-1), high.Rank)

	low := claimWithValue(game.Diamonds, 0)
	require.Equal(t, 7, low.Value())
}
