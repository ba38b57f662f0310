package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/hasaanhameed/TrackCraft/internal/delivery/context"
	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
	domainerrors "github.com/hasaanhameed/TrackCraft/internal/domain/errors"
	"github.com/hasaanhameed/TrackCraft/internal/domain/repository"
	"github.com/hasaanhameed/TrackCraft/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the profile of the authenticated user.
func (srv *profileService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	return srv.GetUserByID(ctx, userID)
}

// GetUserByID returns the profile of an arbitrary user.
func (srv *profileService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	srv.log(ctx).Debug("Getting user profile", slog.Int64("userID", id))

	// Single query operation - use direct repository instance
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		srv.log(ctx).Warn("Failed to get user profile", slog.Int64("userID", id), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// UpdateMonthlyLimit sets the monthly spending limit of the target user.
// Unlike expense lookups, the target's existence is never hidden here: a
// mismatched actor gets 403 even when the target user does not exist.
func (srv *profileService) UpdateMonthlyLimit(ctx context.Context, actorID, targetID int64, limit float64) (*entity.User, error) {
	srv.log(ctx).Info("Updating monthly limit", slog.Int64("userID", targetID), slog.Float64("limit", limit))

	if actorID != targetID {
		srv.log(ctx).Warn("Monthly limit update denied", slog.Int64("actorID", actorID), slog.Int64("targetID", targetID))

		return nil, errors.Wrap(domainerrors.ErrForbidden.WrapMessage("Not authorized to update this user"), "monthly limit update denied")
	}

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		var updateErr error
		updatedUser, updateErr = userRepo.UpdateMonthlyLimit(ctx, targetID, limit)
		if updateErr != nil {
			if errors.Is(updateErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(updateErr, "failed to update monthly limit")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute monthly limit transaction", slog.Int64("userID", targetID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Monthly limit updated", slog.Int64("userID", targetID))

	return updatedUser, nil
}
