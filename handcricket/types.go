// Package handcricket exposes the deployed Hand Cricket Soroban contract as
// typed Go functions. One method per contract entry point; each call encodes
// its arguments into the contract's ScVal wire form, simulates the invocation
// through a Backend, and returns a signable transaction descriptor together
// with the decoded result.
//
// The game rules themselves (commit/reveal coin toss, bat/bowl choice,
// per-ball commit/reveal, scoring) run on-chain; this package holds no game
// state and enforces no phase transitions.
package handcricket

import (
	"fmt"
	"math/big"

	"github.com/stellar/go/xdr"

	"github.com/stellar-game-studio/handcricket-go/sorobind"
)

// Phase is the current step of a session's on-chain state machine. It only
// ever advances forward through the six values below.
type Phase int

const (
	PhaseTossCommit Phase = iota
	PhaseTossReveal
	PhaseBatBowlChoice
	PhaseBallCommit
	PhaseBallReveal
	PhaseFinished
)

var phaseNames = [...]string{
	PhaseTossCommit:    "TossCommit",
	PhaseTossReveal:    "TossReveal",
	PhaseBatBowlChoice: "BatBowlChoice",
	PhaseBallCommit:    "BallCommit",
	PhaseBallReveal:    "BallReveal",
	PhaseFinished:      "Finished",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalScVal encodes the phase as a unit enum variant: a one-element vec
// holding the variant symbol.
func (p Phase) MarshalScVal() (xdr.ScVal, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return xdr.ScVal{}, fmt.Errorf("invalid phase %d", int(p))
	}
	return sorobind.Vec(sorobind.Symbol(phaseNames[p])), nil
}

// UnmarshalScVal decodes a phase, rejecting anything outside the six named
// variants.
func (p *Phase) UnmarshalScVal(v xdr.ScVal) error {
	vec, err := sorobind.ToVec(v)
	if err != nil {
		return fmt.Errorf("phase: %w", err)
	}
	if len(vec) != 1 {
		return fmt.Errorf("phase: expected 1 element, got %d", len(vec))
	}
	name, err := sorobind.ToSymbol(vec[0])
	if err != nil {
		return fmt.Errorf("phase: %w", err)
	}
	for i, candidate := range phaseNames {
		if candidate == name {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("phase: unknown variant %q", name)
}

// Game is a snapshot of one session's on-chain record. It is owned and
// mutated exclusively by the contract; a decoded Game is already stale.
type Game struct {
	Player1       string
	Player2       string
	Player1Points *big.Int
	Player2Points *big.Int
	Player1IsOdd  bool
	TossWinner    sorobind.Option[string]
	Batter        sorobind.Option[string]
	P1Commitment  sorobind.Option[[32]byte]
	P2Commitment  sorobind.Option[[32]byte]
	P1Number      sorobind.Option[uint32]
	P2Number      sorobind.Option[uint32]
	P1Score       uint32
	P2Score       uint32
	Innings       uint32
	Target        uint32
	Phase         Phase
	Winner        sorobind.Option[string]
}

// UnmarshalScVal decodes the contract's symbol-keyed map representation.
// Unknown keys are ignored so newer contract revisions stay readable.
func (g *Game) UnmarshalScVal(v xdr.ScVal) error {
	entries, err := sorobind.ToMap(v)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	for _, entry := range entries {
		key, err := sorobind.ToSymbol(entry.Key)
		if err != nil {
			return fmt.Errorf("game: map key: %w", err)
		}
		if err := g.setField(key, entry.Val); err != nil {
			return fmt.Errorf("game: field %s: %w", key, err)
		}
	}
	return nil
}

func (g *Game) setField(key string, val xdr.ScVal) error {
	var err error
	switch key {
	case "player1":
		g.Player1, err = sorobind.ToAddress(val)
	case "player2":
		g.Player2, err = sorobind.ToAddress(val)
	case "player1_points":
		g.Player1Points, err = sorobind.ToI128(val)
	case "player2_points":
		g.Player2Points, err = sorobind.ToI128(val)
	case "player1_is_odd":
		g.Player1IsOdd, err = sorobind.ToBool(val)
	case "toss_winner":
		g.TossWinner, err = sorobind.DecodeOption(val, sorobind.ToAddress)
	case "batter":
		g.Batter, err = sorobind.DecodeOption(val, sorobind.ToAddress)
	case "p1_commitment":
		g.P1Commitment, err = sorobind.DecodeOption(val, sorobind.ToBytesN32)
	case "p2_commitment":
		g.P2Commitment, err = sorobind.DecodeOption(val, sorobind.ToBytesN32)
	case "p1_number":
		g.P1Number, err = sorobind.DecodeOption(val, sorobind.ToU32)
	case "p2_number":
		g.P2Number, err = sorobind.DecodeOption(val, sorobind.ToU32)
	case "p1_score":
		g.P1Score, err = sorobind.ToU32(val)
	case "p2_score":
		g.P2Score, err = sorobind.ToU32(val)
	case "innings":
		g.Innings, err = sorobind.ToU32(val)
	case "target":
		g.Target, err = sorobind.ToU32(val)
	case "phase":
		err = g.Phase.UnmarshalScVal(val)
	case "winner":
		g.Winner, err = sorobind.DecodeOption(val, sorobind.ToAddress)
	}
	return err
}

// MarshalScVal encodes the game back into the contract's map form, with
// entries in the key order the host produces.
func (g *Game) MarshalScVal() (xdr.ScVal, error) {
	encAddr := sorobind.Address
	encBytes := func(b [32]byte) (xdr.ScVal, error) { return sorobind.BytesN32(b), nil }
	encU32 := func(u uint32) (xdr.ScVal, error) { return sorobind.U32(u), nil }

	var entries xdr.ScMap
	var firstErr error
	add := func(key string, val xdr.ScVal, err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", key, err)
		}
		entries = append(entries, xdr.ScMapEntry{Key: sorobind.Symbol(key), Val: val})
	}
	addOptAddr := func(key string, o sorobind.Option[string]) {
		val, err := sorobind.EncodeOption(o, encAddr)
		add(key, val, err)
	}

	phase, phaseErr := g.Phase.MarshalScVal()
	p1Points, p1Err := sorobind.I128(g.Player1Points)
	p2Points, p2Err := sorobind.I128(g.Player2Points)
	player1, a1Err := sorobind.Address(g.Player1)
	player2, a2Err := sorobind.Address(g.Player2)
	p1Commitment, c1Err := sorobind.EncodeOption(g.P1Commitment, encBytes)
	p2Commitment, c2Err := sorobind.EncodeOption(g.P2Commitment, encBytes)
	p1Number, n1Err := sorobind.EncodeOption(g.P1Number, encU32)
	p2Number, n2Err := sorobind.EncodeOption(g.P2Number, encU32)

	// Symbol keys in the host's sorted order.
	addOptAddr("batter", g.Batter)
	add("innings", sorobind.U32(g.Innings), nil)
	add("p1_commitment", p1Commitment, c1Err)
	add("p1_number", p1Number, n1Err)
	add("p1_score", sorobind.U32(g.P1Score), nil)
	add("p2_commitment", p2Commitment, c2Err)
	add("p2_number", p2Number, n2Err)
	add("p2_score", sorobind.U32(g.P2Score), nil)
	add("phase", phase, phaseErr)
	add("player1", player1, a1Err)
	add("player1_is_odd", sorobind.Bool(g.Player1IsOdd), nil)
	add("player1_points", p1Points, p1Err)
	add("player2", player2, a2Err)
	add("player2_points", p2Points, p2Err)
	add("target", sorobind.U32(g.Target), nil)
	addOptAddr("toss_winner", g.TossWinner)
	addOptAddr("winner", g.Winner)

	if firstErr != nil {
		return xdr.ScVal{}, fmt.Errorf("game: %w", firstErr)
	}
	p := &entries
	return xdr.ScVal{Type: xdr.ScValTypeScvMap, Map: &p}, nil
}
