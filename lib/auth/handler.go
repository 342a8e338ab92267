package auth

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"site-qhse-backend/db"
	usersstore "site-qhse-backend/lib/users/store"
	authutils "site-qhse-backend/lib/utils/auth-utils"
	initchecker "site-qhse-backend/lib/utils/init-checker"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginData) Validate() error {
	if r.Email == "" {
		return errors.New("не указана почта")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type TokenView struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type Provider interface {
	Login(request LoginData) (view TokenView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		userStore: usersstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"userStore", instance.userStore,
	)
	Instance = instance
}

type impl struct {
	userStore usersstore.Provider
}

func (i impl) Login(request LoginData) (TokenView, error) {
	logger := log.WithField("email", request.Email)
	user, err := i.userStore.FindByEmail(request.Email)
	if err != nil {
		return TokenView{}, err
	}
	if user == nil || !user.IsActive || !authutils.CheckPassword(user.PasswordHash, request.Password) {
		return TokenView{}, errors.New("неверная почта или пароль")
	}
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.IsEPCAdmin)
	if err != nil {
		return TokenView{}, err
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return TokenView{}, err
	}
	logger.Info("выполнен вход")
	return TokenView{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
