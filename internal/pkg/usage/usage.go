package usage

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/cache"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
)

// ErrLimitReached signals that the caller's plan cap for the feature is
// exhausted for the current month.
var ErrLimitReached = errors.New("monthly usage limit reached for plan")

const cacheTTL = 30 * time.Second

// Service tracks monthly per-feature usage and enforces plan limits.
type Service struct {
	db *gorm.DB
}

// NewService creates a usage service from a GORM DB handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IncrementTx bumps the current month's counter inside the given transaction
// (count = count + 1 via atomic upsert).
func IncrementTx(tx *gorm.DB, userID uint, feature string, now time.Time) error {
	counter := &models.UsageCounter{
		UserID:      userID,
		Feature:     feature,
		PeriodStart: models.MonthBucket(now),
		Count:       1,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "feature"},
			{Name: "period_start"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("count + 1"),
			"updated_at": now,
		}),
	}).Create(counter).Error
	if err != nil {
		return err
	}
	cache.Delete(cacheKey(userID, feature, models.MonthBucket(now)))
	return nil
}

// Increment bumps the current month's counter for a feature.
func (s *Service) Increment(userID uint, feature string) error {
	return IncrementTx(s.db, userID, feature, time.Now())
}

// CurrentCount returns the caller's counter for the current month bucket.
// Redis fronts the read with a short TTL; misses fall through to the DB.
func (s *Service) CurrentCount(userID uint, feature string) (uint, error) {
	bucket := models.MonthBucket(time.Now())
	key := cacheKey(userID, feature, bucket)

	if cached, err := cache.GetInt(key); err == nil && cached >= 0 {
		return uint(cached), nil
	}

	var counter models.UsageCounter
	err := s.db.Where("user_id = ? AND feature = ? AND period_start = ?", userID, feature, bucket).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if err := cache.Set(key, int(counter.Count), cacheTTL); err != nil {
		log.Warnf("usage counter cache write failed: %v", err)
	}
	return counter.Count, nil
}

// CheckLimit returns ErrLimitReached when the caller's plan cap for the
// feature is already used up this month.
func (s *Service) CheckLimit(userID uint, plan entitlements.Plan, feature string) error {
	limit := entitlements.MonthlyLimit(plan, feature)
	if limit == entitlements.Unlimited {
		return nil
	}
	count, err := s.CurrentCount(userID, feature)
	if err != nil {
		return err
	}
	if int(count) >= limit {
		return ErrLimitReached
	}
	return nil
}

func cacheKey(userID uint, feature string, bucket time.Time) string {
	return fmt.Sprintf("usage:%d:%s:%s", userID, feature, bucket.Format("2006-01"))
}
