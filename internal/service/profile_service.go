package service

import (
	"context"
	"fmt"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService struct {
	users  UserStore
	logger *zap.Logger
}

func NewProfileService(users UserStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		users:  users,
		logger: logger,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return profileToResponse(user), nil
}

// Update applies a partial profile update; nil request fields are untouched.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.MonthlyLimit != nil {
		user.MonthlyLimit = *req.MonthlyLimit
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profileToResponse(user), nil
}

func profileToResponse(user *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		MonthlyLimit: user.MonthlyLimit,
		Bio:          user.Bio,
		Phone:        user.Phone,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}
