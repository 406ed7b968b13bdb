package services

import (
	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/users"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
)

type AuthService struct {
	log         log.Logger
	userManager *users.UserManager
	jwtAuth     *authentication.JWTAuth
}

func NewAuthService(log log.Logger, userManager *users.UserManager, jwtAuth *authentication.JWTAuth) interfaces.AuthService {
	return &AuthService{
		log:         log,
		userManager: userManager,
		jwtAuth:     jwtAuth,
	}
}

func (s *AuthService) SignUp(id, email, password string) (*users.User, error) {
	return s.userManager.SignUp(id, email, password)
}

func (s *AuthService) Login(role users.Role, id, password string) (string, error) {
	user, err := s.userManager.Authenticate(role, id, password)
	if err != nil {
		s.log.LogDebugf("failed login of %q as %s", id, role)
		return "", err
	}

	return s.jwtAuth.IssueJWT(user.ID, user.Role)
}
