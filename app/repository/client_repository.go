package repository

import (
	"strings"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// clientRepository implements the ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create creates a new client in the database
func (r *clientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// GetByID retrieves a client by ID, scoped to the owning account
func (r *clientRepository) GetByID(userID, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByUserID retrieves a paginated list of an account's clients
func (r *clientRepository) GetByUserID(userID uint, offset, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(limit).Find(&clients).Error
	return clients, err
}

// Update updates an existing client in the database
func (r *clientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client and everything hanging off it (properties, quotes,
// assessments, document logs of the removed quotes) in one transaction.
func (r *clientRepository) Delete(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
			return err
		}

		var quoteIDs []uint
		if err := tx.Model(&models.Quote{}).Where("client_id = ?", client.ID).Pluck("id", &quoteIDs).Error; err != nil {
			return err
		}
		if len(quoteIDs) > 0 {
			if err := tx.Where("quote_id IN ?", quoteIDs).Delete(&models.DocumentLog{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Quote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Assessment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Property{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
}

// CountByUserID returns the number of clients owned by an account
func (r *clientRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Search searches an account's clients by name, company or email
func (r *clientRepository) Search(userID uint, query string) ([]models.Client, error) {
	var clients []models.Client
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("user_id = ? AND (name LIKE ? OR company_name LIKE ? OR email LIKE ?)",
		userID, searchPattern, searchPattern, searchPattern).Find(&clients).Error
	return clients, err
}
