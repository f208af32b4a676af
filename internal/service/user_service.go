package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

const tokenTTL = 24 * time.Hour

// Claims is the JWT payload issued at login and verified by the API
// middleware.
type Claims struct {
	UserID int64           `json:"id"`
	Email  string          `json:"email"`
	Role   entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, spec query.Spec) ([]entity.User, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
}

type SessionStore interface {
	SetSessionToken(ctx context.Context, email, token string, ttl time.Duration) error
	DeleteSessionToken(ctx context.Context, email string) error
}

type UserService struct {
	repo     UserRepository
	sessions SessionStore
	secret   []byte
	validate *validator.Validate
}

func NewUserService(repo UserRepository, sessions SessionStore, jwtSecret string) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		secret:   []byte(jwtSecret),
		validate: validator.New(),
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.Validation("invalid registration payload: %v", err)
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("email %s is already registered", in.Email)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a signed token, caching it so a
// logout can invalidate the session before the token expires.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, *entity.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", nil, apperr.Validation("invalid login payload: %v", err)
	}

	user, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, apperr.Validation("invalid email or password")
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, apperr.Forbidden("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, apperr.Validation("invalid email or password")
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.sessions.SetSessionToken(ctx, user.Email, token, tokenTTL); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("failed to cache session token")
	}

	return token, user, nil
}

func (s *UserService) Logout(ctx context.Context, email string) error {
	return s.sessions.DeleteSessionToken(ctx, email)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

var userSortFields = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

var userFilters = map[string]query.Predicate{
	"role":       query.Equals("role"),
	"isActive":   query.Bool("is_active"),
	"isVerified": query.Bool("is_verified"),
}

func (s *UserService) List(ctx context.Context, params map[string]string) ([]entity.User, query.Meta, error) {
	b := query.New(params).
		Filter(userFilters).
		Search("name", "email").
		Sort(userSortFields).
		Paginate()

	users, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return users, meta, nil
}
