package products

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceJSON(t *testing.T) {
	huge, ok := new(big.Int).SetString("98765432109876543210", 10)
	require.True(t, ok)

	data, err := json.Marshal(NewPrice(huge))
	require.NoError(t, err)
	require.Equal(t, `"98765432109876543210"`, string(data))

	data, err = json.Marshal(Price{})
	require.NoError(t, err)
	require.Equal(t, `"0"`, string(data))

	var p Price
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	require.Equal(t, "0", p.String())
	require.NoError(t, json.Unmarshal([]byte(`""`), &p))
	require.Equal(t, "0", p.String())
}

func TestPriceRejectsInvalid(t *testing.T) {
	for _, input := range []string{`"-1"`, `-5`, `"abc"`, `1.5`, `"0x10"`} {
		var p Price
		require.ErrorIs(t, json.Unmarshal([]byte(input), &p), ErrInvalidPrice, input)
	}
}

func TestPriceIntIsACopy(t *testing.T) {
	p := PriceFromUint64(10)
	p.Int().SetUint64(99)
	require.Equal(t, "10", p.String())
	require.True(t, p.Equal(PriceFromUint64(10)))
}
