// Package sorobind provides Soroban contract value encoding and type-safe
// conversion utilities for Go applications.
//
// This package includes:
// - ScMarshaler interface for serializing Go types to/from xdr.ScVal
// - Conversion helpers for all primitive contract types (bool, u32, u64, i128)
// - Stellar address handling (account G... and contract C... strkeys)
// - Fixed and variable length byte values
// - Generic Option type mirroring Soroban's Option<T>
// - Contract error code extraction from values and diagnostic strings
//
// Example usage:
//
//	import "github.com/stellar-game-studio/handcricket-go/sorobind"
//
//	// Encode a session id for a contract call
//	val := sorobind.U32(7)
//
//	// Decode an address returned by the contract
//	addr, err := sorobind.ToAddress(val)
package sorobind

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// ScMarshaler is the interface for types that can be serialized to/from the
// contract's ScVal wire format.
type ScMarshaler interface {
	MarshalScVal() (xdr.ScVal, error)
	UnmarshalScVal(xdr.ScVal) error
}

// ============================================================================
// Encoding helpers: Go values to xdr.ScVal
// ============================================================================

// Bool converts a bool to an ScVal.
func Bool(v bool) xdr.ScVal {
	return xdr.ScVal{Type: xdr.ScValTypeScvBool, B: &v}
}

// U32 converts a uint32 to an ScVal.
func U32(v uint32) xdr.ScVal {
	u := xdr.Uint32(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU32, U32: &u}
}

// U64 converts a uint64 to an ScVal.
func U64(v uint64) xdr.ScVal {
	u := xdr.Uint64(v)
	return xdr.ScVal{Type: xdr.ScValTypeScvU64, U64: &u}
}

// Symbol converts a string to an ScSymbol ScVal.
func Symbol(s string) xdr.ScVal {
	sym := xdr.ScSymbol(s)
	return xdr.ScVal{Type: xdr.ScValTypeScvSymbol, Sym: &sym}
}

// Bytes converts a byte slice to an ScBytes ScVal.
func Bytes(b []byte) xdr.ScVal {
	sb := xdr.ScBytes(b)
	return xdr.ScVal{Type: xdr.ScValTypeScvBytes, Bytes: &sb}
}

// BytesN32 converts a fixed 32-byte value (BytesN<32>) to an ScVal.
func BytesN32(b [32]byte) xdr.ScVal {
	return Bytes(b[:])
}

// Void returns the ScVal unit value.
func Void() xdr.ScVal {
	return xdr.ScVal{Type: xdr.ScValTypeScvVoid}
}

// Vec wraps a list of values into an ScVec ScVal.
func Vec(vals ...xdr.ScVal) xdr.ScVal {
	vec := xdr.ScVec(vals)
	p := &vec
	return xdr.ScVal{Type: xdr.ScValTypeScvVec, Vec: &p}
}

var (
	twoTo64  = new(big.Int).Lsh(big.NewInt(1), 64)
	twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)
	i128Max  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	i128Min  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// I128 converts a *big.Int to an i128 ScVal. Values outside the signed
// 128-bit range are rejected.
func I128(v *big.Int) (xdr.ScVal, error) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Cmp(i128Max) > 0 || v.Cmp(i128Min) < 0 {
		return xdr.ScVal{}, fmt.Errorf("value %s out of i128 range", v)
	}
	// Two's complement within 128 bits.
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, twoTo128)
	}
	lo := new(big.Int).Mod(u, twoTo64)
	hi := new(big.Int).Rsh(u, 64)
	parts := xdr.Int128Parts{
		Hi: xdr.Int64(int64(hi.Uint64())),
		Lo: xdr.Uint64(lo.Uint64()),
	}
	return xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}, nil
}

// MustI128 is I128 for values known to be in range.
func MustI128(v *big.Int) xdr.ScVal {
	val, err := I128(v)
	if err != nil {
		panic(err)
	}
	return val
}

// I128FromInt64 converts an int64 to an i128 ScVal.
func I128FromInt64(v int64) xdr.ScVal {
	return MustI128(big.NewInt(v))
}

// Address converts a strkey-encoded Stellar address to an ScAddress ScVal.
// Account (G...) and contract (C...) addresses are supported.
func Address(addr string) (xdr.ScVal, error) {
	sa, err := scAddress(addr)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &sa}, nil
}

func scAddress(addr string) (xdr.ScAddress, error) {
	if addr == "" {
		return xdr.ScAddress{}, fmt.Errorf("empty address")
	}
	switch addr[0] {
	case 'G':
		aid, err := xdr.AddressToAccountId(addr)
		if err != nil {
			return xdr.ScAddress{}, fmt.Errorf("invalid account address %q: %w", addr, err)
		}
		return xdr.ScAddress{Type: xdr.ScAddressTypeScAddressTypeAccount, AccountId: &aid}, nil
	case 'C':
		raw, err := strkey.Decode(strkey.VersionByteContract, addr)
		if err != nil {
			return xdr.ScAddress{}, fmt.Errorf("invalid contract address %q: %w", addr, err)
		}
		var cid xdr.ContractId
		copy(cid[:], raw)
		return xdr.ScAddress{Type: xdr.ScAddressTypeScAddressTypeContract, ContractId: &cid}, nil
	default:
		return xdr.ScAddress{}, fmt.Errorf("unsupported address %q", addr)
	}
}

// ContractScAddress converts a C... strkey to an xdr.ScAddress.
func ContractScAddress(contractID string) (xdr.ScAddress, error) {
	sa, err := scAddress(contractID)
	if err != nil {
		return xdr.ScAddress{}, err
	}
	if sa.Type != xdr.ScAddressTypeScAddressTypeContract {
		return xdr.ScAddress{}, fmt.Errorf("%q is not a contract address", contractID)
	}
	return sa, nil
}

// AccountScAddress converts a G... strkey to an xdr.ScAddress.
func AccountScAddress(accountID string) (xdr.ScAddress, error) {
	sa, err := scAddress(accountID)
	if err != nil {
		return xdr.ScAddress{}, err
	}
	if sa.Type != xdr.ScAddressTypeScAddressTypeAccount {
		return xdr.ScAddress{}, fmt.Errorf("%q is not an account address", accountID)
	}
	return sa, nil
}

// ============================================================================
// Decoding helpers: xdr.ScVal to Go values
// ============================================================================

// ToBool converts an ScVal to a bool.
func ToBool(v xdr.ScVal) (bool, error) {
	if v.Type != xdr.ScValTypeScvBool || v.B == nil {
		return false, fmt.Errorf("expected bool, got %s", v.Type)
	}
	return *v.B, nil
}

// ToU32 converts an ScVal to a uint32.
func ToU32(v xdr.ScVal) (uint32, error) {
	if v.Type != xdr.ScValTypeScvU32 || v.U32 == nil {
		return 0, fmt.Errorf("expected u32, got %s", v.Type)
	}
	return uint32(*v.U32), nil
}

// ToU64 converts an ScVal to a uint64.
func ToU64(v xdr.ScVal) (uint64, error) {
	if v.Type != xdr.ScValTypeScvU64 || v.U64 == nil {
		return 0, fmt.Errorf("expected u64, got %s", v.Type)
	}
	return uint64(*v.U64), nil
}

// ToI128 converts an i128 ScVal to a *big.Int.
func ToI128(v xdr.ScVal) (*big.Int, error) {
	if v.Type != xdr.ScValTypeScvI128 || v.I128 == nil {
		return nil, fmt.Errorf("expected i128, got %s", v.Type)
	}
	res := big.NewInt(int64(v.I128.Hi))
	res.Lsh(res, 64)
	res.Add(res, new(big.Int).SetUint64(uint64(v.I128.Lo)))
	return res, nil
}

// ToSymbol converts an ScSymbol ScVal to a string.
func ToSymbol(v xdr.ScVal) (string, error) {
	if v.Type != xdr.ScValTypeScvSymbol || v.Sym == nil {
		return "", fmt.Errorf("expected symbol, got %s", v.Type)
	}
	return string(*v.Sym), nil
}

// ToBytes converts an ScBytes ScVal to a byte slice.
func ToBytes(v xdr.ScVal) ([]byte, error) {
	if v.Type != xdr.ScValTypeScvBytes || v.Bytes == nil {
		return nil, fmt.Errorf("expected bytes, got %s", v.Type)
	}
	return []byte(*v.Bytes), nil
}

// ToBytesN32 converts an ScBytes ScVal holding exactly 32 bytes.
func ToBytesN32(v xdr.ScVal) ([32]byte, error) {
	var out [32]byte
	b, err := ToBytes(v)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

// ToVec converts an ScVec ScVal to its element list.
func ToVec(v xdr.ScVal) (xdr.ScVec, error) {
	if v.Type != xdr.ScValTypeScvVec || v.Vec == nil || *v.Vec == nil {
		return nil, fmt.Errorf("expected vec, got %s", v.Type)
	}
	return **v.Vec, nil
}

// ToMap converts an ScMap ScVal to its entry list.
func ToMap(v xdr.ScVal) (xdr.ScMap, error) {
	if v.Type != xdr.ScValTypeScvMap || v.Map == nil || *v.Map == nil {
		return nil, fmt.Errorf("expected map, got %s", v.Type)
	}
	return **v.Map, nil
}

// ToAddress converts an ScAddress ScVal to its strkey string form.
func ToAddress(v xdr.ScVal) (string, error) {
	if v.Type != xdr.ScValTypeScvAddress || v.Address == nil {
		return "", fmt.Errorf("expected address, got %s", v.Type)
	}
	sa := *v.Address
	switch sa.Type {
	case xdr.ScAddressTypeScAddressTypeAccount:
		if sa.AccountId == nil {
			return "", fmt.Errorf("account address missing account id")
		}
		return sa.AccountId.Address(), nil
	case xdr.ScAddressTypeScAddressTypeContract:
		if sa.ContractId == nil {
			return "", fmt.Errorf("contract address missing contract id")
		}
		return strkey.Encode(strkey.VersionByteContract, sa.ContractId[:])
	default:
		return "", fmt.Errorf("unsupported address type %s", sa.Type)
	}
}

// ============================================================================
// Contract error extraction
// ============================================================================

// ContractErrorCode extracts the numeric contract error code from an ScError
// value, if v carries one.
func ContractErrorCode(v xdr.ScVal) (uint32, bool) {
	if v.Type != xdr.ScValTypeScvError || v.Error == nil {
		return 0, false
	}
	if v.Error.Type != xdr.ScErrorTypeSceContract || v.Error.ContractCode == nil {
		return 0, false
	}
	return uint32(*v.Error.ContractCode), true
}

// Simulation failures report contract errors in the diagnostic string, e.g.
// "HostError: Error(Contract, #3)".
var diagnosticErrRe = regexp.MustCompile(`Error\(Contract, #(\d+)\)`)

// ContractErrorFromDiagnostic extracts the numeric contract error code from a
// host diagnostic string.
func ContractErrorFromDiagnostic(msg string) (uint32, bool) {
	m := diagnosticErrRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	code, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(code), true
}
