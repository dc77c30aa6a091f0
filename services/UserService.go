package services

import (
	"time"

	"grocerStore/models"
	"grocerStore/repository"

	log "github.com/sirupsen/logrus"
)

type UserService struct {
	ur repository.UserRepository
	sr repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) UserService {
	return UserService{
		ur: userRepo,
		sr: sessionRepo,
	}
}

func (us *UserService) SignupRequest(creds models.Credentials) (userId string, sessionId string, err error) {
	if creds.Email == "" || creds.Password == "" {
		err = models.ErrBadRequest
		return
	}
	_, ex, e := us.ur.GetUserByEmail(creds.Email)
	if e != nil {
		err = e
		return
	}
	if ex {
		log.Printf("SignupRequest: user already exists")
		err = models.ErrNotAllowed
		return
	}
	hashedPassword, e := us.ur.EncryptPassword(creds.Password)
	if e != nil {
		err = e
		return
	}
	userId, err = us.ur.AddNewUser(models.User_db{
		Name:     creds.Name,
		Email:    creds.Email,
		Password: hashedPassword,
		Role:     "user",
	})
	if err != nil {
		return
	}
	sessionId, err = us.sr.CreateSession(userId, "user")
	return
}

func (us *UserService) SigninRequest(email string, password string) (userId string, sessionId string, err error) {
	uModel, ex, e := us.ur.GetUserByEmail(email)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("SigninRequest: user not found")
		err = models.ErrNotAllowed
		return
	}
	if !us.ur.VerifyPassword(uModel.Password, password) {
		log.Printf("SigninRequest: wrong password")
		err = models.ErrUnauthorized
		return
	}
	userId = uModel.Id.Hex()
	sessionId, err = us.sr.CreateSession(userId, uModel.Role)
	return
}

func (us *UserService) RefreshRequest(sessionId string) (err error) {
	err = us.sr.RefreshSession(sessionId, 30*time.Minute)
	return
}

func (us *UserService) CheckAuth(sessionId string) (bool, error) {
	return us.sr.CheckSession(sessionId)
}

// CheckSellerAccess gates the back-office routes.
func (us *UserService) CheckSellerAccess(sessionId string) (access bool, err error) {
	_, role, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists || role != "seller" {
		return
	}
	access = true
	return
}

func (us *UserService) GetSessionUserId(sessionId string) (userId string, err error) {
	userId, _, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrUnauthorized
	}
	return
}

func (us *UserService) DeleteSessionRequest(sessionId string) (err error) {
	err = us.sr.DeleteSession(sessionId)
	return
}
