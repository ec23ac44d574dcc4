package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.RoleRepository = (*RoleRepo)(nil)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.Phone, cur.Address, cur.City, cur.DNI = u.Name, u.Phone, u.Address, u.City, u.DNI
	cur.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Role = role
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

// RoleRepo roles en memoria. El nombre es único.
type RoleRepo struct{ s *Store }

// NewRoleRepository construye el repositorio.
func NewRoleRepository(s *Store) *RoleRepo { return &RoleRepo{s: s} }

func (r *RoleRepo) nameTaken(name, exceptID string) bool {
	for id, existing := range r.s.roles {
		if id != exceptID && existing.Name == name {
			return true
		}
	}
	return false
}

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(role.Name, "") {
		return domain.ErrDuplicate
	}
	r.s.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *RoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.roles[id]
	if !ok {
		return nil, nil
	}
	return cloneRole(role), nil
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	name = strings.ToLower(strings.TrimSpace(name))
	for _, role := range r.s.roles {
		if role.Name == name {
			return cloneRole(role), nil
		}
	}
	return nil, nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.roles[role.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(role.Name, role.ID) {
		return domain.ErrDuplicate
	}
	c := cloneRole(role)
	c.CreatedAt = cur.CreatedAt
	r.s.roles[role.ID] = c
	return nil
}

func (r *RoleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.roles, id)
	return nil
}

func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	r.s.mu.RLock()
	out := make([]*entity.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		out = append(out, cloneRole(role))
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
