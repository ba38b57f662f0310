package usecase

import (
	"context"

	"github.com/hasaanhameed/TrackCraft/internal/domain/entity"
)

// ProfileUsecase defines the interface for reading and maintaining user profiles.
type ProfileUsecase interface {
	// GetProfile returns the profile of the authenticated user.
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)
	// GetUserByID returns the profile of an arbitrary user.
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	// UpdateMonthlyLimit sets the monthly spending limit of the user identified
	// by targetID, on behalf of actorID. Only the owner may change their limit.
	UpdateMonthlyLimit(ctx context.Context, actorID, targetID int64, limit float64) (*entity.User, error)
}
