package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// AuthService implements registration, login and principal resolution for
// users and operators.
type AuthService struct {
	users       ports.UserRepository
	operators   ports.OperatorRepository
	jwtSecret   string
	userTTL     time.Duration
	operatorTTL time.Duration
}

func NewAuthService(
	users ports.UserRepository,
	operators ports.OperatorRepository,
	jwtSecret string,
	userTTL, operatorTTL time.Duration,
) *AuthService {
	if userTTL <= 0 {
		userTTL = 72 * time.Hour
	}
	if operatorTTL <= 0 {
		operatorTTL = 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		operators:   operators,
		jwtSecret:   jwtSecret,
		userTTL:     userTTL,
		operatorTTL: operatorTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		Name:         strings.TrimSpace(in.Name),
		Surname:      strings.TrimSpace(in.Surname),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

// Login checks user credentials and returns a signed user token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(user.ID, domain.RoleUser, s.userTTL)
}

func (s *AuthService) LoginOperator(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	op, err := s.operators.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrOperatorNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(op.ID, domain.RoleOperator, s.operatorTTL)
}

func (s *AuthService) ResolveUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrPrincipalNotFound
	}
	return user, err
}

func (s *AuthService) ResolveOperator(ctx context.Context, id string) (*domain.Operator, error) {
	op, err := s.operators.FindByID(ctx, id)
	if errors.Is(err, domain.ErrOperatorNotFound) {
		return nil, domain.ErrPrincipalNotFound
	}
	return op, err
}

func (s *AuthService) generateToken(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
