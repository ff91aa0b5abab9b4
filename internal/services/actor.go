package services

import (
	"context"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// loadActor resolves the authenticated user behind ctx into a full user row.
// Role checks always run against the database, never against token claims, so
// a promotion or demotion takes effect on the next call.
func loadActor(ctx context.Context, userRepo repositories.UserRepositoryInterface) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	actor, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return actor, nil
}

func requireCapability(actor *entities.User, capability string) error {
	if !authz.Can(actor.Role, capability) {
		return apperrors.ErrForbidden
	}
	return nil
}
