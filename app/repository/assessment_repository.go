package repository

import (
	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// assessmentRepository implements the AssessmentRepository interface
type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new assessment repository instance
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Create creates a new assessment in the database
func (r *assessmentRepository) Create(assessment *models.Assessment) error {
	return r.db.Create(assessment).Error
}

// GetByID retrieves an assessment by ID, scoped to the owning account
func (r *assessmentRepository) GetByID(userID, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&assessment).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetByUserID retrieves a paginated list of an account's assessments
func (r *assessmentRepository) GetByUserID(userID uint, offset, limit int) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&assessments).Error
	return assessments, err
}

// GetByStatus retrieves an account's assessments in a lifecycle status
func (r *assessmentRepository) GetByStatus(userID uint, status string) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.Where("user_id = ? AND status = ?", userID, status).Order("created_at DESC").Find(&assessments).Error
	return assessments, err
}

// Update updates an existing assessment in the database
func (r *assessmentRepository) Update(assessment *models.Assessment) error {
	return r.db.Save(assessment).Error
}

// Delete soft deletes an assessment, scoped to the owning account
func (r *assessmentRepository) Delete(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Assessment{}, id).Error
}
