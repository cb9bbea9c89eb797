package handcricket

import (
	"math/big"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar-game-studio/handcricket-go/sorobind"
)

func TestPhaseRoundTrip(t *testing.T) {
	phases := []Phase{
		PhaseTossCommit,
		PhaseTossReveal,
		PhaseBatBowlChoice,
		PhaseBallCommit,
		PhaseBallReveal,
		PhaseFinished,
	}
	require.Len(t, phases, 6)

	for _, phase := range phases {
		val, err := phase.MarshalScVal()
		require.NoError(t, err)

		var back Phase
		require.NoError(t, back.UnmarshalScVal(val))
		assert.Equal(t, phase, back)
	}
}

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "TossCommit", PhaseTossCommit.String())
	assert.Equal(t, "TossReveal", PhaseTossReveal.String())
	assert.Equal(t, "BatBowlChoice", PhaseBatBowlChoice.String())
	assert.Equal(t, "BallCommit", PhaseBallCommit.String())
	assert.Equal(t, "BallReveal", PhaseBallReveal.String())
	assert.Equal(t, "Finished", PhaseFinished.String())
}

func TestPhaseRejectsUnknownVariant(t *testing.T) {
	var phase Phase
	err := phase.UnmarshalScVal(sorobind.Vec(sorobind.Symbol("Abandoned")))
	assert.ErrorContains(t, err, "unknown variant")
}

func TestPhaseRejectsNonEnum(t *testing.T) {
	var phase Phase
	assert.Error(t, phase.UnmarshalScVal(sorobind.U32(3)))
	assert.Error(t, phase.UnmarshalScVal(sorobind.Vec()))
	assert.Error(t, phase.UnmarshalScVal(sorobind.Vec(sorobind.U32(1))))
}

func TestMarshalInvalidPhase(t *testing.T) {
	_, err := Phase(42).MarshalScVal()
	assert.Error(t, err)
}

func TestGameRoundTrip(t *testing.T) {
	player1 := keypair.MustRandom().Address()
	player2 := keypair.MustRandom().Address()
	var commitment [32]byte
	for i := range commitment {
		commitment[i] = byte(i)
	}

	game := Game{
		Player1:       player1,
		Player2:       player2,
		Player1Points: big.NewInt(1000),
		Player2Points: big.NewInt(2500),
		Player1IsOdd:  true,
		TossWinner:    sorobind.Some(player1),
		Batter:        sorobind.Some(player2),
		P1Commitment:  sorobind.Some(commitment),
		P2Commitment:  sorobind.None[[32]byte](),
		P1Number:      sorobind.Some(uint32(4)),
		P2Number:      sorobind.None[uint32](),
		P1Score:       17,
		P2Score:       9,
		Innings:       2,
		Target:        18,
		Phase:         PhaseBallReveal,
		Winner:        sorobind.None[string](),
	}

	val, err := game.MarshalScVal()
	require.NoError(t, err)

	var back Game
	require.NoError(t, back.UnmarshalScVal(val))

	assert.Equal(t, game.Player1, back.Player1)
	assert.Equal(t, game.Player2, back.Player2)
	assert.Zero(t, game.Player1Points.Cmp(back.Player1Points))
	assert.Zero(t, game.Player2Points.Cmp(back.Player2Points))
	assert.Equal(t, game.Player1IsOdd, back.Player1IsOdd)
	assert.Equal(t, game.TossWinner, back.TossWinner)
	assert.Equal(t, game.Batter, back.Batter)
	assert.Equal(t, game.P1Commitment, back.P1Commitment)
	assert.Equal(t, game.P2Commitment, back.P2Commitment)
	assert.Equal(t, game.P1Number, back.P1Number)
	assert.Equal(t, game.P2Number, back.P2Number)
	assert.Equal(t, game.P1Score, back.P1Score)
	assert.Equal(t, game.P2Score, back.P2Score)
	assert.Equal(t, game.Innings, back.Innings)
	assert.Equal(t, game.Target, back.Target)
	assert.Equal(t, game.Phase, back.Phase)
	assert.Equal(t, game.Winner, back.Winner)
}

func TestGameRejectsNonMap(t *testing.T) {
	var game Game
	assert.Error(t, game.UnmarshalScVal(sorobind.U32(1)))
}

func TestErrorNames(t *testing.T) {
	cases := map[Error]string{
		ErrGameNotFound:     "GameNotFound",
		ErrNotPlayer:        "NotPlayer",
		ErrWrongPhase:       "WrongPhase",
		ErrAlreadyCommitted: "AlreadyCommitted",
		ErrAlreadyRevealed:  "AlreadyRevealed",
		ErrCommitMissing:    "CommitMissing",
		ErrProofInvalid:     "ProofInvalid",
		ErrGameAlreadyEnded: "GameAlreadyEnded",
		ErrSelfPlay:         "SelfPlay",
		ErrNotTossWinner:    "NotTossWinner",
	}
	require.Len(t, cases, 10)
	for e, name := range cases {
		assert.Contains(t, e.Error(), name)
	}
}

func TestErrorFromCode(t *testing.T) {
	for code := uint32(1); code <= 10; code++ {
		e, ok := ErrorFromCode(code)
		require.True(t, ok, "code %d", code)
		assert.Equal(t, code, e.Code())
	}
	_, ok := ErrorFromCode(0)
	assert.False(t, ok)
	_, ok = ErrorFromCode(11)
	assert.False(t, ok)
}

func TestSpecArity(t *testing.T) {
	assert.NoError(t, checkCall("get_hub", 0))
	assert.NoError(t, checkCall("start_game", 5))
	assert.Error(t, checkCall("start_game", 4))
	assert.Error(t, checkCall("end_game", 2))
}
