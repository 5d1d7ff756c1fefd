package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/repositories/memory"
)

func TestCreateDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	account := AdminAccount{Email: "root@fitnesshub.io"}

	require.NoError(t, CreateDefaultAdmin(ctx, repos.Users, account, zerolog.Nop()))

	admin, err := repos.Users.FindByEmail(ctx, account.Email)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrator", admin.Name)

	// second run is a no-op
	require.NoError(t, CreateDefaultAdmin(ctx, repos.Users, account, zerolog.Nop()))
	users, err := repos.Users.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateDefaultAdminKeepsExistingUser(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	_, err := repos.Users.Create(ctx, &models.User{Name: "Sam", Email: "sam@fitnesshub.io", Role: models.RoleStudent})
	require.NoError(t, err)

	require.NoError(t, CreateDefaultAdmin(ctx, repos.Users, AdminAccount{Email: "sam@fitnesshub.io", Name: "Sam"}, zerolog.Nop()))

	user, err := repos.Users.FindByEmail(ctx, "sam@fitnesshub.io")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestCreateDefaultAdminSkipsWithoutEmail(t *testing.T) {
	repos := memory.NewRepositories()
	require.NoError(t, CreateDefaultAdmin(context.Background(), repos.Users, AdminAccount{}, zerolog.Nop()))

	users, err := repos.Users.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
