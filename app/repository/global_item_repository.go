package repository

import (
	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// globalItemRepository implements the GlobalItemRepository interface
type globalItemRepository struct {
	db *gorm.DB
}

// NewGlobalItemRepository creates a new global item repository instance
func NewGlobalItemRepository(db *gorm.DB) GlobalItemRepository {
	return &globalItemRepository{db: db}
}

// Create creates a new global catalog item
func (r *globalItemRepository) Create(item *models.GlobalItem) error {
	return r.db.Create(item).Error
}

// GetByID retrieves a global item by ID
func (r *globalItemRepository) GetByID(id uint) (*models.GlobalItem, error) {
	var item models.GlobalItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetActive retrieves all active global items
func (r *globalItemRepository) GetActive() ([]models.GlobalItem, error) {
	var items []models.GlobalItem
	err := r.db.Where("is_active = ?", true).Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

// GetByCategory retrieves active global items in a category
func (r *globalItemRepository) GetByCategory(category string) ([]models.GlobalItem, error) {
	var items []models.GlobalItem
	err := r.db.Where("is_active = ? AND category = ?", true, category).Order("name ASC").Find(&items).Error
	return items, err
}

// Update updates an existing global item
func (r *globalItemRepository) Update(item *models.GlobalItem) error {
	return r.db.Save(item).Error
}

// Delete soft deletes a global item
func (r *globalItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.GlobalItem{}, id).Error
}

// GetUsage retrieves one account's usage row for a global item
func (r *globalItemRepository) GetUsage(userID, globalItemID uint) (*models.GlobalItemUsage, error) {
	var usage models.GlobalItemUsage
	err := r.db.Where("user_id = ? AND global_item_id = ?", userID, globalItemID).First(&usage).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// GetUsageByUserID retrieves all usage rows of an account
func (r *globalItemRepository) GetUsageByUserID(userID uint) ([]models.GlobalItemUsage, error) {
	var usages []models.GlobalItemUsage
	err := r.db.Where("user_id = ?", userID).Find(&usages).Error
	return usages, err
}
