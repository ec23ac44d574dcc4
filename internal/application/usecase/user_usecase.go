package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
	"github.com/jhoicas/muebleria-api/pkg/dni"
)

// ProfileUseCase perfil del usuario autenticado.
type ProfileUseCase struct {
	users repository.UserRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(users repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users}
}

// Get devuelve el perfil.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromUser(u)
	return &out, nil
}

// Update guarda nombre y datos de contacto. El DNI, si viene, debe tener 8 dígitos.
func (uc *ProfileUseCase) Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	doc := strings.TrimSpace(in.DNI)
	if doc != "" {
		if err := dni.ValidateDNI(doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	u.Name = name
	u.Phone = strings.TrimSpace(in.Phone)
	u.Address = strings.TrimSpace(in.Address)
	u.City = strings.TrimSpace(in.City)
	u.DNI = doc
	u.UpdatedAt = time.Now().UTC()
	if err := uc.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}
