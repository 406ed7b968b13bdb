package products

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/iotaledger/hive.go/ierrors"
)

var ErrInvalidPrice = ierrors.New("invalid price")

// Price is a non-negative arbitrary precision amount. It is encoded as a decimal
// string in JSON so that values beyond 2^53 survive JavaScript clients.
type Price struct {
	i *big.Int
}

func NewPrice(i *big.Int) Price {
	if i == nil {
		return Price{}
	}

	return Price{i: new(big.Int).Set(i)}
}

func PriceFromUint64(v uint64) Price {
	return Price{i: new(big.Int).SetUint64(v)}
}

func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, nil
	}

	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Price{}, ierrors.Wrapf(ErrInvalidPrice, "%q is not a decimal integer", s)
	}
	if i.Sign() < 0 {
		return Price{}, ierrors.Wrapf(ErrInvalidPrice, "%q is negative", s)
	}

	return Price{i: i}, nil
}

// Int returns a copy of the amount, never nil.
func (p Price) Int() *big.Int {
	if p.i == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(p.i)
}

func (p Price) String() string {
	if p.i == nil {
		return "0"
	}

	return p.i.String()
}

func (p Price) Equal(other Price) bool {
	return p.Int().Cmp(other.Int()) == 0
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return ierrors.Wrap(ErrInvalidPrice, err.Error())
		}
	} else {
		s = string(data)
	}

	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}
