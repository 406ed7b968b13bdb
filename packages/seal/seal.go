// Package seal implements dynamic product seals: rolling codes derived from a
// product ID, a per-product seed and a time window, comparable to TOTP.
package seal

import (
	"crypto/subtle"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	DefaultWindowLength = 60 * time.Second
	DefaultTolerance    = 1
)

var (
	ErrMissingSeed   = ierrors.New("product has no seal seed")
	ErrMalformedCode = ierrors.New("malformed seal code")
)

// Digest computes keccak256("<productID>|<seed>|<window>").
func Digest(productID, seed string, window int64) common.Hash {
	var b strings.Builder
	b.Grow(len(productID) + len(seed) + 22)
	b.WriteString(productID)
	b.WriteByte('|')
	b.WriteString(seed)
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(window, 10))

	return crypto.Keccak256Hash([]byte(b.String()))
}

// WindowAt returns the number of whole window lengths elapsed since the unix epoch.
func WindowAt(t time.Time, length time.Duration) int64 {
	ms := length.Milliseconds()
	if ms <= 0 {
		panic("seal window length must be at least one millisecond")
	}

	now := t.UnixMilli()
	w := now / ms
	if now < 0 && now%ms != 0 {
		w--
	}

	return w
}

// ParseCode decodes a scanned seal code. Surrounding whitespace, upper case hex and
// a missing 0x prefix are accepted.
func ParseCode(code string) (common.Hash, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}

	data, err := hexutil.Decode(code)
	if err != nil {
		return common.Hash{}, ierrors.Wrap(ErrMalformedCode, err.Error())
	}
	if len(data) != common.HashLength {
		return common.Hash{}, ierrors.Wrapf(ErrMalformedCode, "expected %d bytes, got %d", common.HashLength, len(data))
	}

	return common.BytesToHash(data), nil
}

func equal(a, b common.Hash) bool {
	return subtle.ConstantTimeCompare(a.Bytes(), b.Bytes()) == 1
}
