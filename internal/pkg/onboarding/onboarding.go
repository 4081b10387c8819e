package onboarding

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

// Service tracks per-user product tour progress.
type Service struct {
	db *gorm.DB
}

// NewService creates an onboarding service from a GORM DB handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetOrCreateProgress returns the user's progress row for a tour, creating
// an empty one on first access.
func (s *Service) GetOrCreateProgress(ctx context.Context, userID uint, tourKey string) (*models.OnboardingProgress, error) {
	if userID == 0 || tourKey == "" {
		return nil, errors.New("user_id and tour_key are required")
	}

	var progress models.OnboardingProgress
	err := s.db.WithContext(ctx).Where("user_id = ? AND tour_key = ?", userID, tourKey).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = models.OnboardingProgress{UserID: userID, TourKey: tourKey}
	if err := s.db.WithContext(ctx).Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// CompleteStep records a finished tour step. Completing the final step (per
// caller flag) marks the tour done.
func (s *Service) CompleteStep(ctx context.Context, userID uint, tourKey, step string, final bool) (*models.OnboardingProgress, error) {
	progress, err := s.GetOrCreateProgress(ctx, userID, tourKey)
	if err != nil {
		return nil, err
	}
	if progress.IsDone() {
		return progress, nil
	}
	if err := progress.AddStep(step); err != nil {
		return nil, err
	}
	if final {
		now := time.Now()
		progress.CompletedAt = &now
	}
	if err := s.db.WithContext(ctx).Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// SkipTour dismisses a tour without completing it.
func (s *Service) SkipTour(ctx context.Context, userID uint, tourKey string) (*models.OnboardingProgress, error) {
	progress, err := s.GetOrCreateProgress(ctx, userID, tourKey)
	if err != nil {
		return nil, err
	}
	if progress.IsDone() {
		return progress, nil
	}
	now := time.Now()
	progress.SkippedAt = &now
	if err := s.db.WithContext(ctx).Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}
