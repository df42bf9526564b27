package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionSpaceLayout(t *testing.T) {
	// The range bases and widths are a wire contract with external
	// consumers; pin them down.
	require.Equal(t, ActionID(0), ActionRevealBase)
	require.Equal(t, ActionID(4), ActionControlBase)
	require.Equal(t, ActionID(6), ActionControlHexBase)
	require.Equal(t, ActionID(2506), ActionVerifyBase)
	require.Equal(t, ActionID(2556), ActionCommitBase)
	require.Equal(t, ActionID(4506), ActionBuildBase)
	require.Equal(t, ActionID(4522), ActionChanceBase)
	require.Equal(t, 4561, TotalActions)
}

func TestDecodeEncodeRoundtrip(t *testing.T) {
	t.Run("reveal", func(t *testing.T) {
		for slot := 0; slot < HandSize; slot++ {
			d, err := Decode(EncodeReveal(slot))
			require.NoError(t, err)
			require.Equal(t, KindReveal, d.Kind)
			require.Equal(t, slot, d.CardSlot)
		}
	})

	t.Run("control suits", func(t *testing.T) {
		for _, cfg := range []SuitConfig{SuitConfigUrbDiamondIndHeart, SuitConfigUrbHeartIndDiamond} {
			d, err := Decode(EncodeControlSuits(cfg))
			require.NoError(t, err)
			require.Equal(t, KindControlSuits, d.Kind)
			require.Equal(t, cfg, d.SuitConfig)
		}
	})

	t.Run("control hex pairs", func(t *testing.T) {
		for urb := 0; urb < MaxFrontier; urb += 7 {
			for ind := 0; ind < MaxFrontier; ind += 7 {
				d, err := Decode(EncodeControlHexes(urb, ind))
				require.NoError(t, err)
				require.Equal(t, KindControlHexes, d.Kind)
				require.Equal(t, urb, d.UrbanistIdx)
				require.Equal(t, ind, d.IndustryIdx)
			}
		}
	})

	t.Run("verify", func(t *testing.T) {
		for nom := 0; nom < MaxFrontier; nom++ {
			d, err := Decode(EncodeVerify(nom))
			require.NoError(t, err)
			require.Equal(t, KindVerify, d.Kind)
			require.Equal(t, nom, d.NominationIdx)
		}
	})

	t.Run("commit", func(t *testing.T) {
		for hexIdx := 0; hexIdx < MaxFrontier; hexIdx += 5 {
			for claim := 0; claim < NumCards; claim++ {
				d, err := Decode(EncodeCommit(hexIdx, claim))
				require.NoError(t, err)
				require.Equal(t, KindCommit, d.Kind)
				require.Equal(t, hexIdx, d.FrontierIdx)
				require.Equal(t, claim, d.ClaimIdx)
			}
		}
	})

	t.Run("build", func(t *testing.T) {
		for hand := 0; hand < HandSize; hand++ {
			for nom := 0; nom < MaxNominations; nom++ {
				d, err := Decode(EncodeBuild(hand, nom))
				require.NoError(t, err)
				require.Equal(t, KindBuild, d.Kind)
				require.Equal(t, hand, d.HandIdx)
				require.Equal(t, nom, d.NominationIdx)
			}
		}
	})

	t.Run("chance", func(t *testing.T) {
		for card := 0; card < NumCards; card++ {
			d, err := Decode(EncodeChance(card))
			require.NoError(t, err)
			require.Equal(t, KindChance, d.Kind)
			require.Equal(t, card, d.CardIdx)
		}
	})
}

func TestDecodeIsTotalOverTheSpace(t *testing.T) {
	// Every ID in [0, TotalActions) decodes; everything outside errors.
	for id := 0; id < TotalActions; id++ {
		_, err := Decode(ActionID(id))
		require.NoError(t, err, "id %d must decode", id)
	}
	for _, id := range []ActionID{-1, ActionID(TotalActions), ActionID(TotalActions + 500)} {
		_, err := Decode(id)
		require.ErrorIs(t, err, ErrIllegalAction)
	}
}

func TestRangesAreDisjoint(t *testing.T) {
	// Verify actions live in the CONTROL tail but must never collide with
	// the BUILD range they are disambiguated from.
	require.Less(t, int(ActionVerifyBase)+ActionVerifyCount, int(ActionBuildBase))

	kinds := map[ActionKind]int{}
	for id := 0; id < TotalActions; id++ {
		d, err := Decode(ActionID(id))
		require.NoError(t, err)
		kinds[d.Kind]++
	}
	require.Equal(t, ActionRevealCount, kinds[KindReveal])
	require.Equal(t, 2, kinds[KindControlSuits])
	require.Equal(t, ActionControlHexCount, kinds[KindControlHexes])
	require.Equal(t, ActionVerifyCount, kinds[KindVerify])
	require.Equal(t, ActionCommitCount, kinds[KindCommit])
	require.Equal(t, ActionBuildCount, kinds[KindBuild])
	require.Equal(t, ActionChanceCount, kinds[KindChance])
}
