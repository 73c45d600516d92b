package auth

import (
	"errors"
	"log"

	"github.com/blogserver-io/blogserver/internal/database"
	"github.com/blogserver-io/blogserver/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrEmailTaken          = errors.New("user with that email already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrWeakPassword        = errors.New("password does not meet requirements")
)

// Service implements the account lifecycle: register, login and token
// refresh. It composes the store and the token manager; neither is
// reached around it.
type Service struct {
	store  *database.Store
	tokens *TokenManager
}

// NewService creates an auth Service.
func NewService(store *database.Store, tokens *TokenManager) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash. Registration does not log the user in.
func (s *Service) Register(name, email, password string) (*models.User, error) {
	if !ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !ValidatePassword(password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.store.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.store.CreateUser(name, email, string(hashed))
}

// Login verifies the credentials and issues a fresh access/refresh token
// pair. The new refresh token is persisted on the user record, replacing
// any previous one — a user has a single active refresh token.
func (s *Service) Login(email, password string) (*models.LoginResult, error) {
	user, err := s.store.GetUserByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &models.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Summary(),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented token must both verify against the refresh secret and exactly
// match the token currently stored for the user; a mismatch means the
// token was superseded by a later login and is rejected. The refresh
// token itself is not rotated here.
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		log.Printf("refresh token rejected: %v", err)
		return "", ErrInvalidToken
	}

	user, err := s.store.GetUserByID(claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrInvalidRefreshToken
	}
	if err != nil {
		return "", err
	}

	if !user.RefreshToken.Valid || user.RefreshToken.String != refreshToken {
		return "", ErrInvalidRefreshToken
	}

	return s.tokens.GenerateAccessToken(user.ID)
}
