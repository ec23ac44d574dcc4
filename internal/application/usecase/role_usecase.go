package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// RoleUseCase gestión de roles y asignación a usuarios (módulo roles).
type RoleUseCase struct {
	roles repository.RoleRepository
	users repository.UserRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(roles repository.RoleRepository, users repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{roles: roles, users: users}
}

// Modules módulos asignables.
func (uc *RoleUseCase) Modules() dto.ModulesResponse {
	return dto.ModulesResponse{Modules: append([]string(nil), entity.SystemModules...)}
}

// List roles por nombre.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromRole(r))
	}
	return out, nil
}

func buildRole(r *entity.Role, in dto.RoleRequest) error {
	r.Name = in.Name
	r.Permissions = in.Permissions
	r.Normalize()
	if r.Name == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if entity.IsPrivilegedRole(r.Name) {
		return fmt.Errorf("%w: el rol %q es reservado", domain.ErrInvalidInput, r.Name)
	}
	for _, p := range r.Permissions {
		if !entity.IsKnownModule(p) {
			return fmt.Errorf("%w: módulo desconocido %q", domain.ErrInvalidInput, p)
		}
	}
	return nil
}

// Create crea un rol con nombre en minúsculas y permisos validados.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	now := time.Now().UTC()
	r := &entity.Role{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := buildRole(r, in); err != nil {
		return nil, err
	}
	if err := uc.roles.Create(ctx, r); err != nil {
		return nil, err
	}
	out := dto.FromRole(r)
	return &out, nil
}

// Update reemplaza nombre y permisos.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	r, err := uc.roles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if err := buildRole(r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()
	if err := uc.roles.Update(ctx, r); err != nil {
		return nil, err
	}
	out := dto.FromRole(r)
	return &out, nil
}

// Delete elimina el rol. Los usuarios que lo tenían quedan sin permisos.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	return uc.roles.Delete(ctx, id)
}

// FindUserByEmail busca un usuario para asignarle rol.
func (uc *RoleUseCase) FindUserByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email requerido", domain.ErrInvalidInput)
	}
	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromUser(u)
	return &out, nil
}

// AssignRole cambia el rol del usuario. Acepta los roles fijos o uno existente en la colección.
func (uc *RoleUseCase) AssignRole(ctx context.Context, userID string, in dto.AssignRoleRequest) (*dto.UserResponse, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		return nil, fmt.Errorf("%w: rol requerido", domain.ErrInvalidInput)
	}
	if !entity.IsPrivilegedRole(role) && role != entity.RoleCustomer {
		r, err := uc.roles.GetByName(ctx, role)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("%w: rol %q no existe", domain.ErrInvalidInput, role)
		}
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.users.UpdateRole(ctx, u.ID, role); err != nil {
		return nil, err
	}
	u.Role = role
	out := dto.FromUser(u)
	return &out, nil
}
