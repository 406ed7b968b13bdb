package seal_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/trustchain/trustchain/packages/seal"
)

func TestDigestVectors(t *testing.T) {
	tests := []struct {
		productID string
		seed      string
		window    int64
		preimage  string
	}{
		{"B100-1", "c0ffee", 29000000, "B100-1|c0ffee|29000000"},
		{"P1", "", 0, "P1||0"},
		{"", "seed", -3, "|seed|-3"},
	}
	for _, tt := range tests {
		require.Equal(t, crypto.Keccak256Hash([]byte(tt.preimage)), seal.Digest(tt.productID, tt.seed, tt.window), tt.preimage)
	}

	// sanity check on the hash itself: keccak256 of the empty string
	require.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		crypto.Keccak256Hash(nil).Hex(),
	)
}

func TestDigestDiffersPerInput(t *testing.T) {
	base := seal.Digest("B1-1", "seed", 10)
	require.NotEqual(t, base, seal.Digest("B1-2", "seed", 10))
	require.NotEqual(t, base, seal.Digest("B1-1", "seeds", 10))
	require.NotEqual(t, base, seal.Digest("B1-1", "seed", 11))
}

func TestWindowAt(t *testing.T) {
	require.EqualValues(t, 0, seal.WindowAt(time.UnixMilli(59_999), time.Minute))
	require.EqualValues(t, 1, seal.WindowAt(time.UnixMilli(60_000), time.Minute))
	require.EqualValues(t, 28_333_333, seal.WindowAt(time.Unix(1_700_000_000, 0), time.Minute))
	require.EqualValues(t, -1, seal.WindowAt(time.UnixMilli(-1), time.Minute))
	require.EqualValues(t, 340, seal.WindowAt(time.UnixMilli(10_200), 30*time.Millisecond))
}

func TestParseCode(t *testing.T) {
	digest := seal.Digest("B1-1", "seed", 7)

	for _, code := range []string{
		digest.Hex(),
		strings.ToUpper(digest.Hex()[2:]),
		"  " + digest.Hex() + "\n",
		"0X" + digest.Hex()[2:],
	} {
		parsed, err := seal.ParseCode(code)
		require.NoError(t, err, code)
		require.Equal(t, digest, parsed)
	}

	for _, code := range []string{"", "0x", "0x1234", "zz" + digest.Hex()[4:], digest.Hex() + "00"} {
		_, err := seal.ParseCode(code)
		require.ErrorIs(t, err, seal.ErrMalformedCode, code)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestVerifyToleranceBoundaries(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := seal.NewVerifier(seal.WithClock(fixedClock(now)))
	current := v.CurrentWindow()

	for _, offset := range []int{-1, 0, 1} {
		code := seal.Digest("B1-1", "seed", current+int64(offset)).Hex()
		res, err := v.Verify("B1-1", "seed", code)
		require.NoError(t, err)
		require.True(t, res.Valid, "offset %d", offset)
		require.Equal(t, offset, res.Offset)
		require.Equal(t, current+int64(offset), res.MatchedWindow)
		require.Contains(t, res.Message(), "valid")
	}

	for _, offset := range []int64{-2, 2, 100} {
		code := seal.Digest("B1-1", "seed", current+offset).Hex()
		res, err := v.Verify("B1-1", "seed", code)
		require.NoError(t, err)
		require.False(t, res.Valid, "offset %d", offset)
		require.Contains(t, res.Message(), "mismatch")
	}
}

func TestVerifyRejectsOtherProductOrSeed(t *testing.T) {
	v := seal.NewVerifier(seal.WithClock(fixedClock(time.Unix(1_700_000_000, 0))))
	code := seal.Digest("B1-1", "seed", v.CurrentWindow()).Hex()

	res, err := v.Verify("B1-2", "seed", code)
	require.NoError(t, err)
	require.False(t, res.Valid)

	res, err = v.Verify("B1-1", "other", code)
	require.NoError(t, err)
	require.False(t, res.Valid)
}

func TestVerifyErrors(t *testing.T) {
	v := seal.NewVerifier()

	_, err := v.Verify("B1-1", " ", "0x00")
	require.ErrorIs(t, err, seal.ErrMissingSeed)

	_, err = v.Verify("B1-1", "seed", "not-a-code")
	require.ErrorIs(t, err, seal.ErrMalformedCode)

	_, err = v.Generate("B1-1", "")
	require.ErrorIs(t, err, seal.ErrMissingSeed)
}

func TestVerifierOptions(t *testing.T) {
	v := seal.NewVerifier(seal.WithTolerance(-4), seal.WithWindowLength(0))
	require.Equal(t, 0, v.Tolerance())
	require.Equal(t, seal.DefaultWindowLength, v.WindowLength())

	v = seal.NewVerifier(seal.WithTolerance(3), seal.WithWindowLength(30*time.Second))
	require.Equal(t, 3, v.Tolerance())
	require.Equal(t, 30*time.Second, v.WindowLength())
}

func TestGenerateVerifiesAcrossClockDrift(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	chip := seal.NewVerifier(seal.WithClock(fixedClock(start)))
	code, err := chip.Generate("B7-3", "abcd")
	require.NoError(t, err)

	reader := seal.NewVerifier(seal.WithClock(fixedClock(start.Add(59 * time.Second))))
	res, err := reader.Verify("B7-3", "abcd", code)
	require.NoError(t, err)
	require.True(t, res.Valid)
}

func TestVerifyWindowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tolerance := rapid.IntRange(0, 3).Draw(t, "tolerance")
		nowMs := rapid.Int64Range(0, 4_000_000_000_000).Draw(t, "now")
		codeOffset := rapid.Int64Range(-6, 6).Draw(t, "offset")
		productID := rapid.StringMatching(`[A-Z]{1,4}-[0-9]{1,3}`).Draw(t, "productID")
		seed := rapid.StringMatching(`[0-9a-f]{8,32}`).Draw(t, "seed")

		v := seal.NewVerifier(
			seal.WithTolerance(tolerance),
			seal.WithClock(fixedClock(time.UnixMilli(nowMs))),
		)
		code := seal.Digest(productID, seed, v.CurrentWindow()+codeOffset).Hex()

		res, err := v.Verify(productID, seed, code)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		inRange := codeOffset >= int64(-tolerance) && codeOffset <= int64(tolerance)
		if res.Valid != inRange {
			t.Fatalf("offset %d tolerance %d: valid=%v", codeOffset, tolerance, res.Valid)
		}
		if res.Valid && int64(res.Offset) != codeOffset {
			t.Fatalf("matched offset %d, want %d", res.Offset, codeOffset)
		}
	})
}
