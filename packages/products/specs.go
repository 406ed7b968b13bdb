package products

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	SpecKeySealSeed    = "sealSeed"
	SpecKeyChipAddress = "chipAddress"
)

// Specs is the free-form JSON object stored in Product.Specs.
type Specs map[string]any

func ParseSpecs(raw string) (Specs, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Specs{}, nil
	}

	specs := Specs{}
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, ierrors.Wrap(err, "failed to parse product specs")
	}
	if specs == nil {
		// "null"
		return Specs{}, nil
	}

	return specs, nil
}

func (s Specs) str(key string) string {
	v, ok := s[key].(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(v)
}

func (s Specs) SealSeed() string {
	return s.str(SpecKeySealSeed)
}

func (s Specs) ChipAddress() (common.Address, bool) {
	addr := s.str(SpecKeyChipAddress)
	if !common.IsHexAddress(addr) {
		return common.Address{}, false
	}

	return common.HexToAddress(addr), true
}

func (s Specs) String() string {
	if len(s) == 0 {
		return "{}"
	}

	data, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}

	return string(data)
}
