package seed

import (
	"context"
	"errors"
	"fmt"

	"rokto/internal/store"
	"rokto/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the bootstrap admin account when it doesn't exist yet.
// Every other admin is promoted through the role endpoint afterwards.
func SeedAdmin(ctx context.Context, repo *store.UserRepository, config *types.Config) error {
	if config.AdminEmail == "" || config.AdminPassword == "" {
		return fmt.Errorf("set ADMIN_EMAIL and ADMIN_PASSWORD")
	}

	_, err := repo.UserByEmail(ctx, config.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		return fmt.Errorf("check for existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &types.User{
		Name:         "Administrator",
		Email:        config.AdminEmail,
		PasswordHash: string(hash),
		BloodGroup:   types.BloodGroupOPos,
		District:     "Dhaka",
		Upazila:      "Savar",
		Role:         types.RoleAdmin,
		Status:       types.UserStatusActive,
	}

	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	return nil
}
