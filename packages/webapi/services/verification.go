package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/metrics"
	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
)

const sealSeedLength = 16

var ErrEmulatorDisabled = ierrors.Wrap(apierrors.ErrNotFound, "chip emulator is disabled")

type VerificationService struct {
	log             log.Logger
	productService  interfaces.ProductService
	challenges      *nfc.ChallengeStore
	challengeTTL    time.Duration
	emulator        *nfc.Emulator
	emulatorEnabled bool
	metrics         *metrics.Provider
}

func NewVerificationService(
	log log.Logger,
	productService interfaces.ProductService,
	challenges *nfc.ChallengeStore,
	challengeTTL time.Duration,
	emulator *nfc.Emulator,
	emulatorEnabled bool,
	metricsProvider *metrics.Provider,
) interfaces.VerificationService {
	return &VerificationService{
		log:             log,
		productService:  productService,
		challenges:      challenges,
		challengeTTL:    challengeTTL,
		emulator:        emulator,
		emulatorEnabled: emulatorEnabled,
		metrics:         metricsProvider,
	}
}

// Provision gives a new product its seal seed and the address of its chip.
func (s *VerificationService) Provision(productID string) (products.Specs, error) {
	seed := make([]byte, sealSeedLength)
	if _, err := rand.Read(seed); err != nil {
		return nil, ierrors.Wrap(err, "failed to generate seal seed")
	}

	chip, err := s.emulator.Address(productID)
	if err != nil {
		return nil, err
	}

	return products.Specs{
		products.SpecKeySealSeed:    hex.EncodeToString(seed),
		products.SpecKeyChipAddress: chip.Hex(),
	}, nil
}

func (s *VerificationService) chipAddress(ctx context.Context, productID string) (common.Address, error) {
	product, err := s.productService.GetProduct(ctx, productID)
	if err != nil {
		return common.Address{}, err
	}

	chip, ok := product.ParsedSpecs().ChipAddress()
	if !ok {
		return common.Address{}, apierrors.InvalidPropertyError("productId", ierrors.Errorf("product %s has no NFC chip", productID))
	}

	return chip, nil
}

func (s *VerificationService) RequestChallenge(ctx context.Context, productID string) (string, time.Duration, error) {
	if _, err := s.chipAddress(ctx, productID); err != nil {
		return "", 0, err
	}

	challenge, err := s.challenges.Issue(productID)
	if err != nil {
		return "", 0, err
	}
	s.metrics.Challenge(metrics.ChallengeIssued)

	return challenge, s.challengeTTL, nil
}

func (s *VerificationService) VerifyResponse(ctx context.Context, productID, response string) (*interfaces.ChipCheck, error) {
	challenge, err := s.challenges.Consume(productID)
	if err != nil {
		s.metrics.Challenge(metrics.ChallengeMissing)
		return nil, err
	}

	expected, err := s.chipAddress(ctx, productID)
	if err != nil {
		return nil, err
	}

	signer, err := nfc.RecoverSigner(challenge, response)
	if err != nil {
		s.metrics.Challenge(metrics.ChallengeRejected)
		return nil, err
	}

	authentic := signer == expected
	if authentic {
		s.metrics.Challenge(metrics.ChallengeAuthentic)
	} else {
		s.metrics.Challenge(metrics.ChallengeRejected)
		s.log.LogWarnf("chip response for %s signed by %s, expected %s", productID, signer.Hex(), expected.Hex())
	}

	return &interfaces.ChipCheck{Authentic: authentic, Signer: signer}, nil
}

func (s *VerificationService) EmulatorEnabled() bool {
	return s.emulatorEnabled
}

func (s *VerificationService) Emulate(productID, challenge string) (string, common.Address, error) {
	if !s.emulatorEnabled {
		return "", common.Address{}, ErrEmulatorDisabled
	}

	response, err := s.emulator.Sign(productID, challenge)
	if err != nil {
		return "", common.Address{}, err
	}
	address, err := s.emulator.Address(productID)
	if err != nil {
		return "", common.Address{}, err
	}

	return response, address, nil
}
