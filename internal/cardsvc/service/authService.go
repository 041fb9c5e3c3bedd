package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexcard/ecard-services/internal/cardsvc/models"
	"github.com/nexcard/ecard-services/internal/cardsvc/store"
)

const tokenTTL = 7 * 24 * time.Hour

// Credential is returned on successful signup or login.
type Credential struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Token string `json:"token"`
}

// AuthService handles account signup and login over the user store.
type AuthService struct {
	userStore *store.UserStore
	tokenAuth *jwtauth.JWTAuth
}

// NewAuthService creates a new AuthService instance
func NewAuthService(userStore *store.UserStore, tokenAuth *jwtauth.JWTAuth) *AuthService {
	return &AuthService{
		userStore: userStore,
		tokenAuth: tokenAuth,
	}
}

func (s *AuthService) issueToken(userID string) (string, error) {
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"sub": userID,
		"exp": time.Now().Add(tokenTTL).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Signup registers a new account. Passwords are always stored as a
// bcrypt hash; there is no plaintext path.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*Credential, error) {
	if email == "" {
		return nil, ValidationError{Field: "email"}
	}
	if password == "" {
		return nil, ValidationError{Field: "password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userStore.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, ErrDuplicateUser
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	log.Infof("user %s signed up", user.ID)

	return &Credential{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}, nil
}

// Login checks the password against the stored hash. Unknown email
// and wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Credential, error) {
	if email == "" {
		return nil, ValidationError{Field: "email"}
	}
	if password == "" {
		return nil, ValidationError{Field: "password"}
	}

	users, err := s.userStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &Credential{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}, nil
}
