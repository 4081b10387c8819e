package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/entitlements"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
)

var (
	// ErrItemNotFound covers both missing and retired catalog entries.
	ErrItemNotFound = errors.New("global item not found")
	// ErrItemAccessDenied signals a tier-gated item the caller's plan cannot use.
	ErrItemAccessDenied = errors.New("item access denied for current plan")
)

// Service implements the tier-gated copy-on-write flow from the system
// catalog into a user's private item library.
type Service struct {
	db *gorm.DB
}

// NewService creates a catalog service from a GORM DB handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CopyGlobalItem clones a system catalog entry into the caller's private
// catalog. Free items copy for everyone; premium items require a premium
// plan. Repeat copies bump the per-user usage row instead of duplicating it.
// The clone, the usage upsert and the monthly counter move in one
// transaction.
func (s *Service) CopyGlobalItem(ctx context.Context, userID uint, plan entitlements.Plan, globalItemID uint) (*models.LineItem, error) {
	if userID == 0 || globalItemID == 0 {
		return nil, errors.New("user_id and global_item_id are required")
	}

	if err := usage.NewService(s.db).CheckLimit(userID, plan, models.FeatureGlobalItemsCopied); err != nil {
		return nil, err
	}

	var item *models.LineItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gi models.GlobalItem
		if err := tx.Where("id = ? AND is_active = ?", globalItemID, true).First(&gi).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if !entitlements.CanAccessItem(gi.AccessTier, plan) {
			return ErrItemAccessDenied
		}

		sourceID := gi.ID
		li := &models.LineItem{
			UserID:           userID,
			Name:             gi.Name,
			Description:      gi.Description,
			Category:         gi.Category,
			Unit:             gi.Unit,
			UnitCost:         gi.UnitCost,
			UnitPrice:        gi.UnitPrice,
			SourceGlobalItem: &sourceID,
			IsActive:         true,
		}
		if err := tx.Create(li).Error; err != nil {
			return err
		}

		if err := touchGlobalItemUsage(tx, userID, gi.ID, false); err != nil {
			return err
		}

		if err := usage.IncrementTx(tx, userID, models.FeatureGlobalItemsCopied, time.Now()); err != nil {
			return err
		}

		item = li
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FavoriteGlobalItem flips the favorite flag on the caller's per-item usage
// row, creating it when absent.
func (s *Service) FavoriteGlobalItem(ctx context.Context, userID, globalItemID uint, favorite bool) error {
	if userID == 0 || globalItemID == 0 {
		return errors.New("user_id and global_item_id are required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gi models.GlobalItem
		if err := tx.Where("id = ? AND is_active = ?", globalItemID, true).First(&gi).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		now := time.Now()
		row := &models.GlobalItemUsage{
			UserID:       userID,
			GlobalItemID: globalItemID,
			IsFavorite:   favorite,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "global_item_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_favorite": favorite,
				"updated_at":  now,
			}),
		}).Create(row).Error
	})
}

// ListVisibleItems returns active catalog entries together with a locked
// flag for entries above the caller's tier. Premium entries stay listed for
// free callers so the product can upsell them.
func (s *Service) ListVisibleItems(ctx context.Context, userID uint, plan entitlements.Plan) ([]VisibleItem, error) {
	var items []models.GlobalItem
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category, name").
		Find(&items).Error; err != nil {
		return nil, err
	}

	favorites := map[uint]bool{}
	var rows []models.GlobalItemUsage
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		favorites[r.GlobalItemID] = r.IsFavorite
	}

	out := make([]VisibleItem, 0, len(items))
	for _, gi := range items {
		out = append(out, VisibleItem{
			GlobalItem: gi,
			Locked:     !entitlements.CanAccessItem(gi.AccessTier, plan),
			IsFavorite: favorites[gi.ID],
		})
	}
	return out, nil
}

// VisibleItem is a catalog entry annotated for a specific caller.
type VisibleItem struct {
	models.GlobalItem
	Locked     bool `json:"locked"`
	IsFavorite bool `json:"is_favorite"`
}

// touchGlobalItemUsage upserts the per-user usage row for an item, bumping
// times_used and last_used_at.
func touchGlobalItemUsage(tx *gorm.DB, userID, globalItemID uint, favorite bool) error {
	now := time.Now()
	row := &models.GlobalItemUsage{
		UserID:       userID,
		GlobalItemID: globalItemID,
		TimesUsed:    1,
		IsFavorite:   favorite,
		LastUsedAt:   &now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "global_item_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"times_used":   gorm.Expr("times_used + 1"),
			"last_used_at": now,
			"updated_at":   now,
		}),
	}).Create(row).Error
}
