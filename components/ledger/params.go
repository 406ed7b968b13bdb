package ledger

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

type ParametersLedger struct {
	Enabled         bool          `default:"true" usage:"whether the node connects to the TrustChain contract"`
	RPCURL          string        `name:"rpcURL" default:"http://127.0.0.1:8545" usage:"the JSON-RPC endpoint of the EVM node"`
	ContractAddress string        `default:"" usage:"the address of the deployed TrustChain contract"`
	PrivateKey      string        `default:"" usage:"the hex encoded key of the wallet that signs the contract transactions"`
	ChainID         uint64        `name:"chainID" default:"0" usage:"the chain id, queried from the node if 0"`
	ConnectTimeout  time.Duration `default:"30s" usage:"how long to retry connecting before the node runs without ledger"`
	CallTimeout     time.Duration `default:"10s" usage:"the timeout of contract calls"`
	ReceiptTimeout  time.Duration `default:"2m" usage:"how long to wait for a transaction receipt"`
}

var ParamsLedger = &ParametersLedger{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"ledger": ParamsLedger,
	},
	Masked: []string{"ledger.privateKey"},
}
