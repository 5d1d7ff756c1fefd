package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/repositories/memory"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
)

func seedUsers(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	for _, u := range []models.User{
		{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin},
		{Name: "Coach", Email: "coach@example.com", Role: models.RoleInstructor},
		{Name: "Stu", Email: "stu@example.com", Role: models.RoleStudent},
	} {
		user := u
		_, err := repos.Users.Create(ctx, &user)
		require.NoError(t, err)
	}
	return store
}

func TestValidateAdmin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorizationService(seedUsers(t).Repositories().Users, false)

	assert.NoError(t, svc.ValidateAdmin(ctx, "admin@example.com"))
	assert.ErrorIs(t, svc.ValidateAdmin(ctx, "stu@example.com"), apperrors.ErrNotAdmin)
	assert.ErrorIs(t, svc.ValidateAdmin(ctx, "ghost@example.com"), apperrors.ErrUserNotFound)
}

func TestValidateAdminLegacyInverted(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorizationService(seedUsers(t).Repositories().Users, true)

	assert.ErrorIs(t, svc.ValidateAdmin(ctx, "admin@example.com"), apperrors.ErrNotAdmin)
	assert.NoError(t, svc.ValidateAdmin(ctx, "stu@example.com"))
	assert.NoError(t, svc.ValidateAdmin(ctx, "coach@example.com"))
}

func TestValidateInstructor(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorizationService(seedUsers(t).Repositories().Users, false)

	assert.NoError(t, svc.ValidateInstructor(ctx, "coach@example.com"))
	assert.ErrorIs(t, svc.ValidateInstructor(ctx, "admin@example.com"), apperrors.ErrNotInstructor)
}
