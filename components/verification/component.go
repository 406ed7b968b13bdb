package verification

import (
	"crypto/rand"
	"time"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/packages/seal"
)

func init() {
	Component = &app.Component{
		Name:             "Verification",
		Params:           params,
		InitConfigParams: initConfigParams,
		Provide:          provide,
	}
}

var Component *app.Component

func initConfigParams(c *dig.Container) error {
	type cfgResult struct {
		dig.Out

		ChallengeTTL    time.Duration `name:"challengeTTL"`
		EmulatorEnabled bool          `name:"nfcEmulatorEnabled"`
	}

	if err := c.Provide(func() cfgResult {
		return cfgResult{
			ChallengeTTL:    ParamsVerification.Challenge.TTL,
			EmulatorEnabled: ParamsVerification.NFC.EmulatorEnabled,
		}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func provide(c *dig.Container) error {
	type verificationResult struct {
		dig.Out

		Verifier   *seal.Verifier
		Challenges *nfc.ChallengeStore
		Emulator   *nfc.Emulator
	}

	if err := c.Provide(func() verificationResult {
		masterSecret := []byte(ParamsVerification.NFC.MasterSecret)
		if len(masterSecret) == 0 {
			// emulated chips change with every restart
			masterSecret = make([]byte, 32)
			if _, err := rand.Read(masterSecret); err != nil {
				Component.LogPanicf("failed to generate nfc master secret: %s", err)
			}
			if ParamsVerification.NFC.EmulatorEnabled {
				Component.LogWarn("No nfc master secret configured, chip addresses of new products are not stable across restarts")
			}
		}

		emulator, err := nfc.NewEmulator(masterSecret)
		if err != nil {
			Component.LogPanic(err.Error())
		}

		return verificationResult{
			Verifier: seal.NewVerifier(
				seal.WithWindowLength(ParamsVerification.Seal.Window),
				seal.WithTolerance(ParamsVerification.Seal.Tolerance),
			),
			Challenges: nfc.NewChallengeStore(ParamsVerification.Challenge.MaxActive, ParamsVerification.Challenge.TTL),
			Emulator:   emulator,
		}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}
