package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/fitnesshub/internal/app/models"
	appRepos "github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
)

// AdminAccount describes the bootstrap admin
type AdminAccount struct {
	Email string
	Name  string
}

// CreateDefaultAdmin inserts the bootstrap admin unless a user with that email exists.
// An existing user is left untouched, even when its role is not admin.
// Role changes are admin-gated, so this is the only way to create the first admin.
func CreateDefaultAdmin(ctx context.Context, userRepo appRepos.UserRepository, account AdminAccount, lgr zerolog.Logger) error {
	if account.Email == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	existing, err := userRepo.FindByEmail(ctx, account.Email)
	if err != nil {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}
	if existing != nil {
		lgr.Info().Str("email", account.Email).Str("role", string(existing.Role)).Msg("Seed admin already exists")
		return nil
	}

	name := account.Name
	if name == "" {
		name = "Administrator"
	}

	_, err = userRepo.Create(ctx, &appModels.User{
		Name:  name,
		Email: account.Email,
		Role:  appModels.RoleAdmin,
	})
	// a concurrent instance may have won the unique index race
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("email", account.Email).Msg("Seed admin created")
	return nil
}
