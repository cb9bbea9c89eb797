package handcricket

import "fmt"

// Error is one of the contract's named failure kinds. Codes match the
// on-chain enum and are what the ledger reports on the wire.
type Error uint32

const (
	ErrGameNotFound     Error = 1
	ErrNotPlayer        Error = 2
	ErrWrongPhase       Error = 3
	ErrAlreadyCommitted Error = 4
	ErrAlreadyRevealed  Error = 5
	ErrCommitMissing    Error = 6
	ErrProofInvalid     Error = 7
	ErrGameAlreadyEnded Error = 8
	ErrSelfPlay         Error = 9
	ErrNotTossWinner    Error = 10
)

var errorNames = map[Error]string{
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

func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return fmt.Sprintf("hand cricket: %s (code %d)", name, uint32(e))
	}
	return fmt.Sprintf("hand cricket: unknown contract error (code %d)", uint32(e))
}

// Code returns the numeric wire encoding of the error.
func (e Error) Code() uint32 {
	return uint32(e)
}

// ErrorFromCode maps a numeric contract error code to its named kind.
func ErrorFromCode(code uint32) (Error, bool) {
	e := Error(code)
	_, ok := errorNames[e]
	return e, ok
}
