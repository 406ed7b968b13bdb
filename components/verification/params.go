package verification

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

type ParametersSeal struct {
	Window    time.Duration `default:"60s" usage:"the length of a dynamic seal window"`
	Tolerance int           `default:"1" usage:"how many windows before and after the current one are accepted"`
}

type ParametersChallenge struct {
	TTL       time.Duration `name:"ttl" default:"2m" usage:"how long an NFC challenge stays valid"`
	MaxActive int           `default:"10000" usage:"the maximum number of outstanding challenges"`
}

type ParametersNFC struct {
	MasterSecret    string `default:"" usage:"the secret the emulated chip keys are derived from, random if empty"`
	EmulatorEnabled bool   `default:"false" usage:"whether the chip emulator endpoint is exposed (development only)"`
}

type ParametersVerification struct {
	Seal      ParametersSeal
	Challenge ParametersChallenge
	NFC       ParametersNFC `name:"nfc"`
}

var ParamsVerification = &ParametersVerification{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"verification": ParamsVerification,
	},
	Masked: []string{"verification.nfc.masterSecret"},
}
