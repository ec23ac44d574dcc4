package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/account"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
	"github.com/jhoicas/muebleria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionResolver resuelve la identidad con permisos de un usuario (lo implementa access.Resolver).
type SessionResolver interface {
	Resolve(ctx context.Context, userID string) (authz.Identity, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	resolver SessionResolver
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, resolver SessionResolver, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, resolver: resolver, jwtCfg: jwtCfg}
}

// RegisterUser crea una cuenta de cliente: valida, hashea con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	case !account.ValidEmail(email):
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	case len([]rune(in.Password)) < account.MinPasswordLength:
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, account.MinPasswordLength)
	case in.Password != in.ConfirmPassword:
		return nil, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	score, label := account.PasswordStrength(in.Password)
	return &dto.RegisterResponse{
		User:     dto.FromUser(user),
		Strength: dto.PasswordStrengthResponse{Score: score, Label: label},
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + sesión resuelta.
// Usuario inexistente y contraseña incorrecta responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	id, err := uc.resolver.Resolve(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Session: dto.FromIdentity(id)}, nil
}

// Session devuelve la sesión vigente del usuario del token.
func (uc *AuthUseCase) Session(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	id, err := uc.resolver.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("auth: resolver sesión: %w", err)
	}
	s := dto.FromIdentity(id)
	return &s, nil
}
