package database

import (
	"github.com/iotaledger/hive.go/app"
)

type ParametersDatabase struct {
	Engine string `default:"pebble" usage:"the used database engine (pebble/mapdb)"`
	Path   string `default:"trustchaindb" usage:"the path to the database folder"`
}

var ParamsDatabase = &ParametersDatabase{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"db": ParamsDatabase,
	},
	Masked: nil,
}
