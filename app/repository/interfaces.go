package repository

import (
	"time"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.CompanySettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ClientRepository defines the interface for client-related database operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(userID, id uint) (*models.Client, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Client, error)
	Update(client *models.Client) error
	Delete(userID, id uint) error
	CountByUserID(userID uint) (int64, error)
	Search(userID uint, query string) ([]models.Client, error)
}

// PropertyRepository defines the interface for property-related database operations
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(userID, id uint) (*models.Property, error)
	GetByClientID(userID, clientID uint) ([]models.Property, error)
	Update(property *models.Property) error
	Delete(userID, id uint) error
}

// QuoteRepository defines the interface for quote-related database operations
type QuoteRepository interface {
	Create(quote *models.Quote) error
	GetByID(userID, id uint) (*models.Quote, error)
	GetByQuoteNumber(userID uint, quoteNumber string) (*models.Quote, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Quote, error)
	GetByClientID(userID, clientID uint) ([]models.Quote, error)
	GetByStatus(userID uint, status string) ([]models.Quote, error)
	Update(quote *models.Quote) error
	Delete(userID, id uint) error
	CountByUserID(userID uint) (int64, error)
	CountCreatedBetween(userID uint, from, to time.Time) (int64, error)
}

// LineItemRepository defines the interface for catalog line item operations
type LineItemRepository interface {
	Create(item *models.LineItem) error
	GetByID(userID, id uint) (*models.LineItem, error)
	GetByUserID(userID uint, activeOnly bool) ([]models.LineItem, error)
	GetBySourceGlobalItem(userID, globalItemID uint) (*models.LineItem, error)
	Update(item *models.LineItem) error
	Delete(userID, id uint) error
	CountByUserID(userID uint) (int64, error)
}

// GlobalItemRepository defines the interface for the shared global catalog
type GlobalItemRepository interface {
	Create(item *models.GlobalItem) error
	GetByID(id uint) (*models.GlobalItem, error)
	GetActive() ([]models.GlobalItem, error)
	GetByCategory(category string) ([]models.GlobalItem, error)
	Update(item *models.GlobalItem) error
	Delete(id uint) error
	GetUsage(userID, globalItemID uint) (*models.GlobalItemUsage, error)
	GetUsageByUserID(userID uint) ([]models.GlobalItemUsage, error)
}

// AssessmentRepository defines the interface for property assessment operations
type AssessmentRepository interface {
	Create(assessment *models.Assessment) error
	GetByID(userID, id uint) (*models.Assessment, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Assessment, error)
	GetByStatus(userID uint, status string) ([]models.Assessment, error)
	Update(assessment *models.Assessment) error
	Delete(userID, id uint) error
}

// DocumentLogRepository defines the interface for document generation logs
type DocumentLogRepository interface {
	Create(log *models.DocumentLog) error
	GetByID(userID, id uint) (*models.DocumentLog, error)
	GetByQuoteID(userID, quoteID uint) ([]models.DocumentLog, error)
	GetByUserID(userID uint, offset, limit int) ([]models.DocumentLog, error)
	Update(log *models.DocumentLog) error
}

// QueueRepository defines the interface for cache/queue operations
type QueueRepository interface {
	GetAllKeys() ([]string, error)
	GetValue(key string) (string, error)
	GetTTL(key string) (time.Duration, error)
	DeleteKey(key string) (int64, error)
	GetListLength(key string) (int64, error)
	FindKeysByPatterns(patterns []string) ([]string, error)
	DeleteKeys(keys []string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Client      ClientRepository
	Property    PropertyRepository
	Quote       QuoteRepository
	LineItem    LineItemRepository
	GlobalItem  GlobalItemRepository
	Assessment  AssessmentRepository
	DocumentLog DocumentLogRepository
	Queue       QueueRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Client:      NewClientRepository(db),
		Property:    NewPropertyRepository(db),
		Quote:       NewQuoteRepository(db),
		LineItem:    NewLineItemRepository(db),
		GlobalItem:  NewGlobalItemRepository(db),
		Assessment:  NewAssessmentRepository(db),
		DocumentLog: NewDocumentLogRepository(db),
		Queue:       NewQueueRepository(),
	}
}
