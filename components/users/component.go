package users

import (
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/database"
	"github.com/trustchain/trustchain/packages/users"
)

func init() {
	Component = &app.Component{
		Name:    "Users",
		Params:  params,
		Provide: provide,
	}
}

var Component *app.Component

func provide(c *dig.Container) error {
	type userManagerDeps struct {
		dig.In

		DatabaseManager *database.Manager
	}

	type userManagerResult struct {
		dig.Out

		UserManager *users.UserManager
	}

	if err := c.Provide(func(deps userManagerDeps) userManagerResult {
		userStore, err := deps.DatabaseManager.Store(database.RealmUsers)
		if err != nil {
			Component.LogPanic(err.Error())
		}
		emailStore, err := deps.DatabaseManager.Store(database.RealmEmails)
		if err != nil {
			Component.LogPanic(err.Error())
		}

		userManager, err := users.NewUserManager(Component.NewChildLogger("UserManager"), userStore, emailStore, map[users.Role]users.Account{
			users.RoleManufacturer: ParamsUsers.Accounts.Manufacturer,
			users.RoleRetailer:     ParamsUsers.Accounts.Retailer,
			users.RoleAdmin:        ParamsUsers.Accounts.Admin,
		})
		if err != nil {
			Component.LogPanicf("failed to initialize users: %s", err)
		}

		return userManagerResult{
			UserManager: userManager,
		}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}
