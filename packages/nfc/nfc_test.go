package nfc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/trustchain/trustchain/packages/nfc"
)

func newEmulator(t *testing.T) *nfc.Emulator {
	e, err := nfc.NewEmulator([]byte("0123456789abcdef-test-secret"))
	require.NoError(t, err)
	return e
}

func TestEmulatorRequiresSecret(t *testing.T) {
	_, err := nfc.NewEmulator([]byte("short"))
	require.Error(t, err)
}

func TestEmulatorAddressesAreStablePerProduct(t *testing.T) {
	e := newEmulator(t)

	a1, err := e.Address("B1-1")
	require.NoError(t, err)
	a1again, err := e.Address("B1-1")
	require.NoError(t, err)
	a2, err := e.Address("B1-2")
	require.NoError(t, err)

	require.Equal(t, a1, a1again)
	require.NotEqual(t, a1, a2)

	other, err := nfc.NewEmulator([]byte("another-master-secret-value"))
	require.NoError(t, err)
	b1, err := other.Address("B1-1")
	require.NoError(t, err)
	require.NotEqual(t, a1, b1)
}

func TestSignAndRecover(t *testing.T) {
	e := newEmulator(t)
	addr, err := e.Address("B1-1")
	require.NoError(t, err)

	response, err := e.Sign("B1-1", "00aa11bb22cc33dd")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(response, "0x"))

	signer, err := nfc.RecoverSigner("00aa11bb22cc33dd", response)
	require.NoError(t, err)
	require.Equal(t, addr, signer)

	// a response to another challenge recovers to some other key
	signer, err = nfc.RecoverSigner("ffffffffffffffff", response)
	if err == nil {
		require.NotEqual(t, addr, signer)
	}
}

func TestRecoverAcceptsLegacyRecoveryID(t *testing.T) {
	e := newEmulator(t)
	addr, err := e.Address("B9-9")
	require.NoError(t, err)

	response, err := e.Sign("B9-9", "challenge")
	require.NoError(t, err)
	sig, err := hexutil.Decode(response)
	require.NoError(t, err)
	sig[64] += 27

	signer, err := nfc.RecoverSigner("challenge", hexutil.Encode(sig))
	require.NoError(t, err)
	require.Equal(t, addr, signer)
}

func TestRecoverRejectsMalformedResponses(t *testing.T) {
	for _, response := range []string{"", "0x", "deadbeef", "0x1234", "0x" + strings.Repeat("00", 65)} {
		_, err := nfc.RecoverSigner("challenge", response)
		require.ErrorIs(t, err, nfc.ErrInvalidResponse, response)
	}
}

func TestChallengeStoreIsSingleUse(t *testing.T) {
	store := nfc.NewChallengeStore(10, time.Minute)

	challenge, err := store.Issue("B1-1")
	require.NoError(t, err)
	require.Len(t, challenge, 16)
	require.Equal(t, 1, store.Active())

	got, err := store.Consume("B1-1")
	require.NoError(t, err)
	require.Equal(t, challenge, got)

	_, err = store.Consume("B1-1")
	require.ErrorIs(t, err, nfc.ErrChallengeNotFound)
	require.Equal(t, 0, store.Active())
}

func TestChallengeStoreReplacesPrevious(t *testing.T) {
	store := nfc.NewChallengeStore(10, time.Minute)

	first, err := store.Issue("B1-1")
	require.NoError(t, err)
	second, err := store.Issue("B1-1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	got, err := store.Consume("B1-1")
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestChallengeStoreExpires(t *testing.T) {
	store := nfc.NewChallengeStore(10, 20*time.Millisecond)

	_, err := store.Issue("B1-1")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = store.Consume("B1-1")
	require.ErrorIs(t, err, nfc.ErrChallengeNotFound)
}

func TestChallengeStoreIsBounded(t *testing.T) {
	store := nfc.NewChallengeStore(2, time.Minute)
	for _, id := range []string{"a", "b", "c"} {
		_, err := store.Issue(id)
		require.NoError(t, err)
	}
	require.Equal(t, 2, store.Active())

	_, err := store.Consume("a")
	require.ErrorIs(t, err, nfc.ErrChallengeNotFound)
}
