package users

import (
	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/users"
)

type ParametersAccounts struct {
	Manufacturer users.Account `name:"manufacturer"`
	Retailer     users.Account `name:"retailer"`
	Admin        users.Account `name:"admin"`
}

type ParametersUsers struct {
	Accounts ParametersAccounts `usage:"the fixed staff accounts, accounts without id or password are disabled"`
}

var ParamsUsers = &ParametersUsers{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"users": ParamsUsers,
	},
	Masked: []string{
		"users.accounts.manufacturer.password",
		"users.accounts.retailer.password",
		"users.accounts.admin.password",
	},
}
