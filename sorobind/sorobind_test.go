package sorobind

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// Test primitive conversions
func TestPrimitiveRoundTrips(t *testing.T) {
	// u32
	u32, err := ToU32(U32(4294967295))
	if err != nil || u32 != 4294967295 {
		t.Errorf("U32/ToU32 roundtrip failed: got %d, err %v", u32, err)
	}

	// u64
	u64, err := ToU64(U64(18446744073709551615))
	if err != nil || u64 != 18446744073709551615 {
		t.Errorf("U64/ToU64 roundtrip failed: got %d, err %v", u64, err)
	}

	// bool
	for _, v := range []bool{true, false} {
		got, err := ToBool(Bool(v))
		if err != nil || got != v {
			t.Errorf("Bool/ToBool roundtrip failed for %v: got %v, err %v", v, got, err)
		}
	}

	// symbol
	sym, err := ToSymbol(Symbol("start_game"))
	if err != nil || sym != "start_game" {
		t.Errorf("Symbol/ToSymbol roundtrip failed: got %q, err %v", sym, err)
	}

	// bytes
	raw := []byte{1, 2, 3, 4}
	got, err := ToBytes(Bytes(raw))
	if err != nil || !bytes.Equal(got, raw) {
		t.Errorf("Bytes/ToBytes roundtrip failed: got %v, err %v", got, err)
	}
}

func TestTypeMismatch(t *testing.T) {
	if _, err := ToU32(Bool(true)); err == nil {
		t.Errorf("expected error converting bool to u32")
	}
	if _, err := ToAddress(U32(1)); err == nil {
		t.Errorf("expected error converting u32 to address")
	}
	if _, err := ToI128(U64(1)); err == nil {
		t.Errorf("expected error converting u64 to i128")
	}
}

func TestI128RoundTrip(t *testing.T) {
	cases := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(1000000),
		big.NewInt(-1000000),
		new(big.Int).SetUint64(18446744073709551615),
		new(big.Int).Neg(new(big.Int).SetUint64(18446744073709551615)),
		i128Max,
		i128Min,
	}
	for _, v := range cases {
		val, err := I128(v)
		if err != nil {
			t.Fatalf("I128(%s) failed: %v", v, err)
		}
		back, err := ToI128(val)
		if err != nil {
			t.Fatalf("ToI128 failed for %s: %v", v, err)
		}
		if back.Cmp(v) != 0 {
			t.Errorf("I128 roundtrip failed: expected %s, got %s", v, back)
		}
	}
}

func TestI128OutOfRange(t *testing.T) {
	tooBig := new(big.Int).Add(i128Max, big.NewInt(1))
	if _, err := I128(tooBig); err == nil {
		t.Errorf("expected range error for %s", tooBig)
	}
	tooSmall := new(big.Int).Sub(i128Min, big.NewInt(1))
	if _, err := I128(tooSmall); err == nil {
		t.Errorf("expected range error for %s", tooSmall)
	}
}

func TestI128Nil(t *testing.T) {
	val, err := I128(nil)
	if err != nil {
		t.Fatalf("I128(nil) failed: %v", err)
	}
	back, err := ToI128(val)
	if err != nil || back.Sign() != 0 {
		t.Errorf("expected zero, got %s, err %v", back, err)
	}
}

func TestBytesN32(t *testing.T) {
	var fixed [32]byte
	for i := range fixed {
		fixed[i] = byte(i)
	}
	back, err := ToBytesN32(BytesN32(fixed))
	if err != nil || back != fixed {
		t.Errorf("BytesN32 roundtrip failed: err %v", err)
	}

	// Wrong length rejected
	if _, err := ToBytesN32(Bytes([]byte{1, 2, 3})); err == nil {
		t.Errorf("expected length error for 3-byte value")
	}
}

func TestAccountAddressRoundTrip(t *testing.T) {
	addr := keypair.MustRandom().Address()
	val, err := Address(addr)
	if err != nil {
		t.Fatalf("Address failed: %v", err)
	}
	back, err := ToAddress(val)
	if err != nil {
		t.Fatalf("ToAddress failed: %v", err)
	}
	if back != addr {
		t.Errorf("address roundtrip failed: expected %s, got %s", addr, back)
	}
}

func TestContractAddressRoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	contractID, err := strkey.Encode(strkey.VersionByteContract, raw)
	if err != nil {
		t.Fatalf("strkey encode failed: %v", err)
	}
	val, err := Address(contractID)
	if err != nil {
		t.Fatalf("Address failed: %v", err)
	}
	back, err := ToAddress(val)
	if err != nil {
		t.Fatalf("ToAddress failed: %v", err)
	}
	if back != contractID {
		t.Errorf("contract address roundtrip failed: expected %s, got %s", contractID, back)
	}
}

func TestAddressRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "xyz", "GNOTVALID", "CNOTVALID"} {
		if _, err := Address(input); err == nil {
			t.Errorf("expected error for address %q", input)
		}
	}
}

func TestContractScAddressRejectsAccount(t *testing.T) {
	if _, err := ContractScAddress(keypair.MustRandom().Address()); err == nil {
		t.Errorf("expected error binding an account address as contract")
	}
}

func TestVec(t *testing.T) {
	val := Vec(U32(1), U32(2), U32(3))
	vec, err := ToVec(val)
	if err != nil {
		t.Fatalf("ToVec failed: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(vec))
	}
	for i, expected := range []uint32{1, 2, 3} {
		got, err := ToU32(vec[i])
		if err != nil || got != expected {
			t.Errorf("element %d: expected %d, got %d, err %v", i, expected, got, err)
		}
	}
}

// Test Option
func TestOption(t *testing.T) {
	decodeU32 := ToU32

	some, err := DecodeOption(U32(123), decodeU32)
	if err != nil {
		t.Fatalf("DecodeOption failed: %v", err)
	}
	if !some.IsSome || some.Value != 123 {
		t.Errorf("expected Some(123), got IsSome=%v, Value=%d", some.IsSome, some.Value)
	}

	none, err := DecodeOption(Void(), decodeU32)
	if err != nil {
		t.Fatalf("DecodeOption of void failed: %v", err)
	}
	if none.IsSome {
		t.Errorf("expected None, got Some")
	}

	encoded, err := EncodeOption(Some(uint32(7)), func(v uint32) (xdr.ScVal, error) { return U32(v), nil })
	if err != nil {
		t.Fatalf("EncodeOption failed: %v", err)
	}
	if got, _ := ToU32(encoded); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}

	encodedNone, err := EncodeOption(None[uint32](), func(v uint32) (xdr.ScVal, error) { return U32(v), nil })
	if err != nil {
		t.Fatalf("EncodeOption of None failed: %v", err)
	}
	if encodedNone.Type != xdr.ScValTypeScvVoid {
		t.Errorf("expected void, got %s", encodedNone.Type)
	}
}

func TestContractErrorCode(t *testing.T) {
	code := xdr.Uint32(5)
	val := xdr.ScVal{
		Type: xdr.ScValTypeScvError,
		Error: &xdr.ScError{
			Type:         xdr.ScErrorTypeSceContract,
			ContractCode: &code,
		},
	}
	got, ok := ContractErrorCode(val)
	if !ok || got != 5 {
		t.Errorf("expected code 5, got %d, ok=%v", got, ok)
	}

	if _, ok := ContractErrorCode(U32(5)); ok {
		t.Errorf("expected no error code from a u32")
	}
}

func TestContractErrorFromDiagnostic(t *testing.T) {
	cases := []struct {
		msg  string
		code uint32
		ok   bool
	}{
		{"HostError: Error(Contract, #3)", 3, true},
		{"host invocation failed: Error(Contract, #10) while invoking", 10, true},
		{"HostError: Error(Storage, MissingValue)", 0, false},
		{"transaction simulation failed", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		code, ok := ContractErrorFromDiagnostic(tc.msg)
		if ok != tc.ok || code != tc.code {
			t.Errorf("diagnostic %q: expected (%d,%v), got (%d,%v)", tc.msg, tc.code, tc.ok, code, ok)
		}
	}
}

// Benchmark encoding
func BenchmarkI128(b *testing.B) {
	v := new(big.Int).SetUint64(18446744073709551615)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := I128(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAddress(b *testing.B) {
	addr := keypair.MustRandom().Address()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Address(addr); err != nil {
			b.Fatal(err)
		}
	}
}
