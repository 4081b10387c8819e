package billing

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	FindActivePlanMapping(provider, providerPriceRef, interval string) (*models.BillingPlanMapping, error)
	UpsertCustomer(customer *models.BillingCustomer) error
	GetCustomerByProviderCustomerID(provider, providerCustomerID string) (*models.BillingCustomer, error)
	UpsertSubscription(sub *models.BillingSubscription) error
	CreateFreeSubscription(sub *models.BillingSubscription) error
	ListSubscriptionsByUser(userID uint) ([]models.BillingSubscription, error)
	UpsertInvoice(inv *models.BillingInvoice) error
	GetOrCreateCompanySettings(userID uint) (*models.CompanySettings, error)
	SaveCompanySettings(cs *models.CompanySettings) error
	CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindActivePlanMapping(provider, providerPriceRef, interval string) (*models.BillingPlanMapping, error) {
	var m models.BillingPlanMapping
	err := r.db.
		Where("provider = ? AND provider_price_ref = ? AND billing_interval = ? AND is_active = ?", provider, providerPriceRef, interval, true).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) UpsertCustomer(customer *models.BillingCustomer) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_customer_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"email",
			"updated_at",
		}),
	}).Create(customer).Error; err != nil {
		return err
	}

	return r.db.Where("provider = ? AND provider_customer_id = ?", customer.Provider, customer.ProviderCustomerID).
		First(customer).Error
}

func (r *gormRepository) GetCustomerByProviderCustomerID(provider, providerCustomerID string) (*models.BillingCustomer, error) {
	var customer models.BillingCustomer
	err := r.db.Where("provider = ? AND provider_customer_id = ?", provider, providerCustomerID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormRepository) UpsertSubscription(sub *models.BillingSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_subscription_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"provider_price_ref",
			"internal_plan",
			"billing_interval",
			"status",
			"current_period_start",
			"current_period_end",
			"cancel_at_period_end",
			"raw_payload_json",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("provider = ? AND provider_subscription_id = ?", sub.Provider, sub.ProviderSubscriptionID).
		First(sub).Error
}

// CreateFreeSubscription inserts a local free-tier row without a processor
// reference. No conflict target applies because the unique key column is
// NULL for these rows.
func (r *gormRepository) CreateFreeSubscription(sub *models.BillingSubscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) ListSubscriptionsByUser(userID uint) ([]models.BillingSubscription, error) {
	var subs []models.BillingSubscription
	err := r.db.Where("user_id = ?", userID).Find(&subs).Error
	return subs, err
}

func (r *gormRepository) UpsertInvoice(inv *models.BillingInvoice) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_invoice_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"provider_customer_id",
			"amount_due_cents",
			"amount_paid_cents",
			"currency",
			"status",
			"hosted_invoice_url",
			"issued_at",
			"paid_at",
			"raw_payload_json",
			"updated_at",
		}),
	}).Create(inv).Error; err != nil {
		return err
	}

	return r.db.Where("provider = ? AND provider_invoice_id = ?", inv.Provider, inv.ProviderInvoiceID).
		First(inv).Error
}

func (r *gormRepository) GetOrCreateCompanySettings(userID uint) (*models.CompanySettings, error) {
	return models.GetOrCreateCompanySettings(r.db, userID)
}

func (r *gormRepository) SaveCompanySettings(cs *models.CompanySettings) error {
	return r.db.Save(cs).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.BillingWebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.BillingWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
