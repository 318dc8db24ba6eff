package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/auth"
	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/testutil/memstore"
	"github.com/Chrisx-39/FormMaster/pkg/jwt"
)

const secret = "secreto-de-pruebas"

var ctx = context.Background()

func newAuth() *auth.AuthUseCase {
	store := memstore.New()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "formmaster"})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth()
	admin := policy.Actor{ID: "u-admin", Role: entity.RoleAdmin}

	u, err := uc.RegisterUser(ctx, admin, dto.CreateUserRequest{
		Email: " Chofer@FormMaster.test ", Password: "camion-2026", Name: "Chofer", Role: entity.RoleDriver,
	})
	require.NoError(t, err)
	assert.Equal(t, "chofer@formmaster.test", u.Email)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "chofer@formmaster.test", Password: "camion-2026"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleDriver, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "chofer@formmaster.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@formmaster.test", Password: "camion-2026"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.RegisterUser(ctx, admin, dto.CreateUserRequest{
		Email: "chofer@formmaster.test", Password: "camion-2026", Role: entity.RoleDriver,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_SoloAdminYValidaciones(t *testing.T) {
	uc := newAuth()
	fsm := policy.Actor{ID: "u-fsm", Role: entity.RoleFSM}
	admin := policy.Actor{ID: "u-admin", Role: entity.RoleAdmin}

	_, err := uc.RegisterUser(ctx, fsm, dto.CreateUserRequest{Email: "a@b.test", Password: "12345678", Role: entity.RoleHCE})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterUser(ctx, admin, dto.CreateUserRequest{Email: "a@b.test", Password: "corta", Role: entity.RoleHCE})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, admin, dto.CreateUserRequest{Email: "a@b.test", Password: "12345678", Role: "VENDEDOR"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBootstrap_CreaAdmin(t *testing.T) {
	uc := newAuth()
	u, err := uc.Bootstrap(ctx, dto.CreateUserRequest{Email: "admin@formmaster.test", Password: "admin-2026", Role: entity.RoleHCE})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}
