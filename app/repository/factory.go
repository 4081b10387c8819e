package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetClientRepository returns the client repository instance
func (f *Factory) GetClientRepository() ClientRepository {
	return f.GetRepositories().Client
}

// GetPropertyRepository returns the property repository instance
func (f *Factory) GetPropertyRepository() PropertyRepository {
	return f.GetRepositories().Property
}

// GetQuoteRepository returns the quote repository instance
func (f *Factory) GetQuoteRepository() QuoteRepository {
	return f.GetRepositories().Quote
}

// GetLineItemRepository returns the line item repository instance
func (f *Factory) GetLineItemRepository() LineItemRepository {
	return f.GetRepositories().LineItem
}

// GetGlobalItemRepository returns the global item repository instance
func (f *Factory) GetGlobalItemRepository() GlobalItemRepository {
	return f.GetRepositories().GlobalItem
}

// GetAssessmentRepository returns the assessment repository instance
func (f *Factory) GetAssessmentRepository() AssessmentRepository {
	return f.GetRepositories().Assessment
}

// GetDocumentLogRepository returns the document log repository instance
func (f *Factory) GetDocumentLogRepository() DocumentLogRepository {
	return f.GetRepositories().DocumentLog
}

// GetQueueRepository returns the queue repository instance
func (f *Factory) GetQueueRepository() QueueRepository {
	return f.GetRepositories().Queue
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
