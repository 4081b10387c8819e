package repository

import (
	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// documentLogRepository implements the DocumentLogRepository interface
type documentLogRepository struct {
	db *gorm.DB
}

// NewDocumentLogRepository creates a new document log repository instance
func NewDocumentLogRepository(db *gorm.DB) DocumentLogRepository {
	return &documentLogRepository{db: db}
}

// Create creates a new document log entry
func (r *documentLogRepository) Create(log *models.DocumentLog) error {
	return r.db.Create(log).Error
}

// GetByID retrieves a document log by ID, scoped to the owning account
func (r *documentLogRepository) GetByID(userID, id uint) (*models.DocumentLog, error) {
	var log models.DocumentLog
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetByQuoteID retrieves the generation history for a quote
func (r *documentLogRepository) GetByQuoteID(userID, quoteID uint) ([]models.DocumentLog, error) {
	var logs []models.DocumentLog
	err := r.db.Where("user_id = ? AND quote_id = ?", userID, quoteID).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// GetByUserID retrieves a paginated generation history for an account
func (r *documentLogRepository) GetByUserID(userID uint, offset, limit int) ([]models.DocumentLog, error) {
	var logs []models.DocumentLog
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, err
}

// Update updates an existing document log entry
func (r *documentLogRepository) Update(log *models.DocumentLog) error {
	return r.db.Save(log).Error
}
