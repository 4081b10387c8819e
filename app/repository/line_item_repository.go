package repository

import (
	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// lineItemRepository implements the LineItemRepository interface
type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository instance
func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

// Create creates a new catalog line item
func (r *lineItemRepository) Create(item *models.LineItem) error {
	return r.db.Create(item).Error
}

// GetByID retrieves a line item by ID, scoped to the owning account
func (r *lineItemRepository) GetByID(userID, id uint) (*models.LineItem, error) {
	var item models.LineItem
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByUserID retrieves an account's catalog, optionally active entries only
func (r *lineItemRepository) GetByUserID(userID uint, activeOnly bool) ([]models.LineItem, error) {
	var items []models.LineItem
	query := r.db.Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

// GetBySourceGlobalItem finds the account's copy of a global catalog item
func (r *lineItemRepository) GetBySourceGlobalItem(userID, globalItemID uint) (*models.LineItem, error) {
	var item models.LineItem
	err := r.db.Where("user_id = ? AND source_global_item = ?", userID, globalItemID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update updates an existing line item
func (r *lineItemRepository) Update(item *models.LineItem) error {
	return r.db.Save(item).Error
}

// Delete soft deletes a line item, scoped to the owning account
func (r *lineItemRepository) Delete(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.LineItem{}, id).Error
}

// CountByUserID returns the number of line items owned by an account
func (r *lineItemRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LineItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
