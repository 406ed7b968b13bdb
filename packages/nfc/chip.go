// Package nfc implements the challenge-response protocol spoken by the NFC chips
// embedded in products, together with an emulator of such chips.
package nfc

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/iotaledger/hive.go/ierrors"
)

var ErrInvalidResponse = ierrors.New("invalid chip response")

// ChallengeHash is the digest a chip signs for a given challenge.
func ChallengeHash(challenge string) common.Hash {
	return crypto.Keccak256Hash([]byte(challenge))
}

// RecoverSigner returns the address of the chip that produced response for challenge.
// The response is a hex encoded 65 byte [R || S || V] signature.
func RecoverSigner(challenge, response string) (common.Address, error) {
	sig, err := hexutil.Decode(response)
	if err != nil {
		return common.Address{}, ierrors.Wrap(ErrInvalidResponse, err.Error())
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ierrors.Wrapf(ErrInvalidResponse, "expected %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	// accept the Ethereum style 27/28 recovery id as well
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(ChallengeHash(challenge).Bytes(), sig)
	if err != nil {
		return common.Address{}, ierrors.Wrap(ErrInvalidResponse, err.Error())
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// Emulator stands in for the physical chips. Every product gets its own key,
// derived from a master secret and the product ID.
type Emulator struct {
	masterSecret []byte
}

func NewEmulator(masterSecret []byte) (*Emulator, error) {
	if len(masterSecret) < 16 {
		return nil, ierrors.New("nfc master secret must be at least 16 bytes")
	}

	return &Emulator{masterSecret: append([]byte(nil), masterSecret...)}, nil
}

func (e *Emulator) key(productID string) (*ecdsa.PrivateKey, error) {
	seed := crypto.Keccak256(e.masterSecret, []byte(productID))
	key, err := crypto.ToECDSA(seed)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to derive chip key for %s", productID)
	}

	return key, nil
}

// Address returns the address of the chip of the given product.
func (e *Emulator) Address(productID string) (common.Address, error) {
	key, err := e.key(productID)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// Sign produces the response the product's chip would return for challenge.
func (e *Emulator) Sign(productID, challenge string) (string, error) {
	key, err := e.key(productID)
	if err != nil {
		return "", err
	}

	sig, err := crypto.Sign(ChallengeHash(challenge).Bytes(), key)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to sign challenge")
	}

	return hexutil.Encode(sig), nil
}
