package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/access"
	"github.com/jhoicas/muebleria-api/internal/application/auth"
	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/memory"
	"github.com/jhoicas/muebleria-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memory.UserRepo) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	roles := memory.NewRoleRepository(store)
	uc := auth.NewAuthUseCase(users, access.NewResolver(users, roles), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
	return uc, users
}

func registro() dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Ana", Email: "Ana@Correo.pe", Password: "Sofa2024!", ConfirmPassword: "Sofa2024!"}
}

func TestRegister_CreaClienteYDevuelveFortaleza(t *testing.T) {
	uc, users := newAuth()
	out, err := uc.RegisterUser(context.Background(), registro())
	require.NoError(t, err)

	assert.Equal(t, "ana@correo.pe", out.User.Email, "el email se guarda normalizado")
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.Equal(t, 100, out.Strength.Score)
	assert.Equal(t, "Fuerte", out.Strength.Label)

	u, err := users.GetByEmail(context.Background(), "ana@correo.pe")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "Sofa2024!", u.PasswordHash)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuth()
	cases := map[string]func(*dto.RegisterRequest){
		"email malo":   func(r *dto.RegisterRequest) { r.Email = "ana.correo.pe" },
		"corta":        func(r *dto.RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" },
		"no coinciden": func(r *dto.RegisterRequest) { r.ConfirmPassword = "otra-cosa" },
		"sin nombre":   func(r *dto.RegisterRequest) { r.Name = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := registro()
			mutate(&req)
			_, err := uc.RegisterUser(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(context.Background(), registro())
	require.NoError(t, err)
	_, err = uc.RegisterUser(context.Background(), registro())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenYSesionDeCliente(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(context.Background(), registro())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@correo.pe", Password: "Sofa2024!"})
	require.NoError(t, err)
	assert.True(t, out.Session.IsCustomer)
	assert.Empty(t, out.Session.Modules)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Session.UserID, claims.UserID)
	assert.Equal(t, entity.RoleCustomer, claims.Role)

	s, err := uc.Session(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ana@correo.pe", s.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(context.Background(), registro())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@correo.pe", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@correo.pe", Password: "Sofa2024!"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
