package service

import (
	"errors"
	"time"

	"musicbrainz/internal/config"
	"musicbrainz/internal/http-api/models"
	"musicbrainz/internal/http-api/repository"
	"musicbrainz/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNameInUse          = errors.New("editor name already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthClaims is what the middleware hands to handlers after validating a
// bearer token.
type AuthClaims struct {
	EditorID string
	Name     string
	Role     string
}

type AuthService interface {
	Register(name, password, email string) (*models.Editor, error)
	Login(name, password string) (accessToken, refreshToken string, editor *models.Editor, err error)
	RefreshAccessToken(refreshToken string) (newAccessToken string, err error)
	ValidateToken(tokenString string) (*AuthClaims, error)
}

type authService struct {
	editorRepo       repository.EditorRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	editorRepo repository.EditorRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		editorRepo:       editorRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// Register creates a new editor account with the given name, password, and email.
func (s *authService) Register(name, password, email string) (*models.Editor, error) {
	if _, err := s.editorRepo.FindByName(name); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.editorRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	editor := &models.Editor{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.editorRepo.Create(editor); err != nil {
		return nil, err
	}
	return editor, nil
}

// Login authenticates an editor and returns access and refresh tokens.
func (s *authService) Login(name, password string) (string, string, *models.Editor, error) {
	editor, err := s.editorRepo.FindByName(name)
	if err != nil {
		// dummy compare so "no such editor" takes as long as a bad password
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(editor.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(editor)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(editor)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, editor, nil
}

func (s *authService) generateAccessToken(editor *models.Editor) (string, error) {
	claims := jwt.MapClaims{
		"editor_id": editor.ID,
		"name":      editor.Name,
		"role":      editor.Role,
		"exp":       time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":       time.Now().Unix(),
		"type":      "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(editor *models.Editor) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		EditorID:  editor.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}
	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}

	if refreshToken.Revoked {
		return "", errors.New("refresh token revoked")
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(refreshToken.ID)
		return "", errors.New("refresh token expired")
	}

	editor, err := s.editorRepo.FindByID(refreshToken.EditorID)
	if err != nil {
		return "", err
	}

	return s.generateAccessToken(editor)
}

func (s *authService) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &AuthClaims{}
	if v, ok := mapClaims["editor_id"].(string); ok {
		claims.EditorID = v
	}
	if v, ok := mapClaims["name"].(string); ok {
		claims.Name = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if claims.EditorID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
