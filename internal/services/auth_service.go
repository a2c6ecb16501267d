package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// AuthService issues short-lived access tokens and rotating refresh tokens.
// Only the SHA-256 of a refresh token is stored.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	err := store.First(s.db, &user, "email = ?", strings.TrimSpace(req.Email))
	switch {
	case store.IsNotFound(err):
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(s.db, &user)
}

// Refresh revokes the presented token and issues a new pair in the same
// transaction, so a token can be exchanged at most once.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	var resp *dto.AuthResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RefreshToken{}).
			Where("token_hash = ? AND revoked = ? AND expires_at > ?", hashToken(req.RefreshToken), false, time.Now().UTC()).
			Update("revoked", true)
		if result.Error != nil {
			return store.Translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvalidToken
		}

		var stored models.RefreshToken
		if err := store.First(tx, &stored, "token_hash = ?", hashToken(req.RefreshToken)); err != nil {
			return err
		}

		var user models.User
		if err := store.First(tx, &user, "user_id = ?", stored.UserID); err != nil {
			if store.IsNotFound(err) {
				return ErrInvalidToken
			}
			return err
		}

		var err error
		resp, err = s.issue(tx, &user)
		return err
	})
	return resp, err
}

// Logout revokes one of userID's refresh tokens. Unknown tokens are ignored.
func (s *AuthService) Logout(userID string, req *dto.LogoutRequest) error {
	return store.Translate(s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND token_hash = ?", userID, hashToken(req.RefreshToken)).
		Update("revoked", true).Error)
}

func (s *AuthService) issue(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	access, err := SignAccessToken(s.cfg, user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refresh := base64.RawURLEncoding.EncodeToString(raw)

	if err := store.Create(db, &models.RefreshToken{
		UserID:    user.UserID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().UTC().Add(s.cfg.JWTRefreshExpiry),
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{AccessToken: access, RefreshToken: refresh, User: user.Public()}, nil
}

// SignAccessToken issues an HS256 access token carrying the user's id, email
// and role.
func SignAccessToken(cfg *config.Config, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(cfg.JWTAccessExpiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
