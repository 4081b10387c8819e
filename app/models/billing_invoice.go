package models

import "time"

const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusOpen          = "open"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusVoid          = "void"
	InvoiceStatusUncollectible = "uncollectible"
)

// BillingInvoice is a denormalized mirror of a processor invoice, keyed by
// the processor's invoice id.
type BillingInvoice struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;index" json:"user_id"`
	Provider           string     `gorm:"type:varchar(20);not null;index:ux_billing_invoices_provider_inv,unique,priority:1" json:"provider"`
	ProviderInvoiceID  string     `gorm:"type:varchar(191);not null;index:ux_billing_invoices_provider_inv,unique,priority:2" json:"provider_invoice_id"`
	ProviderCustomerID string     `gorm:"type:varchar(191);not null;default:'';index" json:"provider_customer_id"`
	AmountDueCents     int64      `gorm:"not null;default:0" json:"amount_due_cents"`
	AmountPaidCents    int64      `gorm:"not null;default:0" json:"amount_paid_cents"`
	Currency           string     `gorm:"type:varchar(10);not null;default:'usd'" json:"currency"`
	Status             string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	HostedInvoiceURL   string     `gorm:"type:varchar(500);default:''" json:"hosted_invoice_url"`
	IssuedAt           *time.Time `gorm:"type:timestamp;default:null" json:"issued_at,omitempty"`
	PaidAt             *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	RawPayloadJSON     string     `gorm:"type:longtext" json:"raw_payload_json"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
