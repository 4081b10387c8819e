package repository

import (
	"time"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// quoteRepository implements the QuoteRepository interface
type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository instance
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// Create creates a new quote in the database
func (r *quoteRepository) Create(quote *models.Quote) error {
	return r.db.Create(quote).Error
}

// GetByID retrieves a quote by ID, scoped to the owning account
func (r *quoteRepository) GetByID(userID, id uint) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByQuoteNumber retrieves a quote by its human-facing number
func (r *quoteRepository) GetByQuoteNumber(userID uint, quoteNumber string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.Where("quote_number = ? AND user_id = ?", quoteNumber, userID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByUserID retrieves a paginated list of an account's quotes
func (r *quoteRepository) GetByUserID(userID uint, offset, limit int) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&quotes).Error
	return quotes, err
}

// GetByClientID retrieves all quotes for a client
func (r *quoteRepository) GetByClientID(userID, clientID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.Where("user_id = ? AND client_id = ?", userID, clientID).Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

// GetByStatus retrieves an account's quotes in a lifecycle status
func (r *quoteRepository) GetByStatus(userID uint, status string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.Where("user_id = ? AND status = ?", userID, status).Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

// Update updates an existing quote in the database
func (r *quoteRepository) Update(quote *models.Quote) error {
	return r.db.Save(quote).Error
}

// Delete soft deletes a quote, scoped to the owning account
func (r *quoteRepository) Delete(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Quote{}, id).Error
}

// CountByUserID returns the number of quotes owned by an account
func (r *quoteRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Quote{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountCreatedBetween counts an account's quotes created in [from, to)
func (r *quoteRepository) CountCreatedBetween(userID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Quote{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}
