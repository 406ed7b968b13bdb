package users

import (
	"encoding/json"

	"golang.org/x/crypto/bcrypt"

	"github.com/iotaledger/hive.go/ierrors"
)

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy password"), bcrypt.MinCost)

func (m *UserManager) saveUser(user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return ierrors.Wrapf(err, "failed to encode user %s", user.ID)
	}

	return m.users.Set([]byte(user.ID), data)
}

func decodeUser(data []byte) (*User, error) {
	user := new(User)
	if err := json.Unmarshal(data, user); err != nil {
		return nil, ierrors.Wrap(err, "failed to decode user")
	}

	return user, nil
}
