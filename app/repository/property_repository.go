package repository

import (
	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// propertyRepository implements the PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property in the database
func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

// GetByID retrieves a property by ID, scoped to the owning account
func (r *propertyRepository) GetByID(userID, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByClientID retrieves all properties of a client
func (r *propertyRepository) GetByClientID(userID, clientID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Where("user_id = ? AND client_id = ?", userID, clientID).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// Update updates an existing property in the database
func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

// Delete soft deletes a property, scoped to the owning account
func (r *propertyRepository) Delete(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Property{}, id).Error
}
