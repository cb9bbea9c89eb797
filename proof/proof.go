// Package proof builds and checks the commit/reveal artifacts the Hand
// Cricket contract consumes: a 32-byte hiding commitment published during a
// commit phase, and the proof blob opening it at reveal time.
//
// The blob layout the contract verifies is fixed:
//
//	[0:4]    number of public inputs, big-endian (always 2)
//	[4:36]   the commitment the reveal must match
//	[64:68]  the revealed number, big-endian
//
// Everything else is padding; the salt is carried at [68:100] so a reveal is
// self-contained. Blobs shorter than 132 bytes are rejected outright.
package proof

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// BlobLen is the exact proof blob size this package emits. The contract
// accepts anything at least this long.
const BlobLen = 132

// SaltLen is the commitment salt size in bytes.
const SaltLen = 32

const numPublicInputs = 2

// NewSalt draws a random commitment salt.
func NewSalt() ([SaltLen]byte, error) {
	var salt [SaltLen]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return salt, fmt.Errorf("draw salt: %w", err)
	}
	return salt, nil
}

// Commitment derives the hiding, binding digest of a secret number:
// keccak256 of the big-endian number followed by the salt.
func Commitment(number uint32, salt [SaltLen]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	var numberBE [4]byte
	binary.BigEndian.PutUint32(numberBE[:], number)
	h.Write(numberBE[:])
	h.Write(salt[:])
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Build assembles the proof blob opening commitment with number. The salt is
// embedded for the revealer's own bookkeeping; the contract ignores it.
func Build(commitment [32]byte, number uint32, salt [SaltLen]byte) []byte {
	blob := make([]byte, BlobLen)
	binary.BigEndian.PutUint32(blob[0:4], numPublicInputs)
	copy(blob[4:36], commitment[:])
	binary.BigEndian.PutUint32(blob[64:68], number)
	copy(blob[68:68+SaltLen], salt[:])
	return blob
}

// BuildFor commits to number under salt and assembles the matching blob in
// one step.
func BuildFor(number uint32, salt [SaltLen]byte) (commitment [32]byte, blob []byte) {
	commitment = Commitment(number, salt)
	return commitment, Build(commitment, number, salt)
}

// Verify mirrors the contract's reveal check, so callers can pre-check a
// blob locally instead of burning a transaction on ProofInvalid.
func Verify(commitment [32]byte, number uint32, blob []byte) bool {
	if len(blob) < BlobLen {
		return false
	}
	if binary.BigEndian.Uint32(blob[0:4]) != numPublicInputs {
		return false
	}
	var embedded [32]byte
	copy(embedded[:], blob[4:36])
	if embedded != commitment {
		return false
	}
	return binary.BigEndian.Uint32(blob[64:68]) == number
}
