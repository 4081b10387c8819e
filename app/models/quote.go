package models

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	QuoteStatusDraft     = "draft"
	QuoteStatusSent      = "sent"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusDeclined  = "declined"
	QuoteStatusExpired   = "expired"
	QuoteStatusConverted = "converted"
)

var ErrInvalidQuoteTransition = errors.New("invalid quote status transition")

// QuoteLine is one entry of the quote's stored line-item payload.
type QuoteLine struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Quote holds a priced proposal for a client. The monetary columns are
// computed from the line payload at creation time and never recomputed.
type Quote struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	ClientID      uint           `gorm:"not null;index" json:"client_id"`
	PropertyID    *uint          `gorm:"index" json:"property_id,omitempty"`
	AssessmentID  *uint          `gorm:"index" json:"assessment_id,omitempty"`
	QuoteNumber   string         `gorm:"type:varchar(40);not null;uniqueIndex" json:"quote_number"`
	Title         string         `gorm:"type:varchar(200);default:''" json:"title"`
	LineItemsJSON string         `gorm:"type:longtext;not null" json:"line_items_json"`
	Subtotal      float64        `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	MarkupRate    float64        `gorm:"type:decimal(6,3);not null;default:25.0" json:"markup_rate"`
	MarkupAmount  float64        `gorm:"type:decimal(12,2);not null;default:0" json:"markup_amount"`
	TaxRate       float64        `gorm:"type:decimal(6,3);not null;default:8.25" json:"tax_rate"`
	TaxAmount     float64        `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	Total         float64        `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Status        string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Notes         string         `gorm:"type:text" json:"notes"`
	ValidUntil    *time.Time     `gorm:"type:timestamp;default:null" json:"valid_until,omitempty"`
	SentAt        *time.Time     `gorm:"type:timestamp;default:null" json:"sent_at,omitempty"`
	DecidedAt     *time.Time     `gorm:"type:timestamp;default:null" json:"decided_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Lines decodes the stored line-item payload.
func (q *Quote) Lines() ([]QuoteLine, error) {
	var lines []QuoteLine
	if q.LineItemsJSON == "" {
		return lines, nil
	}
	if err := json.Unmarshal([]byte(q.LineItemsJSON), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetLines stores the line payload and recomputes every monetary column so
// the stored totals always match the stored payload at write time.
func (q *Quote) SetLines(lines []QuoteLine) error {
	subtotal := 0.0
	for i := range lines {
		lines[i].Total = roundMoney(lines[i].Quantity * lines[i].UnitPrice)
		subtotal += lines[i].Total
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	q.LineItemsJSON = string(raw)
	q.Subtotal = roundMoney(subtotal)
	q.MarkupAmount = roundMoney(q.Subtotal * q.MarkupRate / 100)
	taxable := q.Subtotal + q.MarkupAmount
	q.TaxAmount = roundMoney(taxable * q.TaxRate / 100)
	q.Total = roundMoney(taxable + q.TaxAmount)
	return nil
}

// IsOpen reports whether the quote still awaits a client decision.
func (q *Quote) IsOpen() bool {
	return q.Status == QuoteStatusDraft || q.Status == QuoteStatusSent
}

// Transition applies a status change, enforcing the lifecycle:
// draft -> sent -> accepted/declined/expired, accepted -> converted.
func (q *Quote) Transition(target string) error {
	allowed := map[string][]string{
		QuoteStatusDraft:    {QuoteStatusSent},
		QuoteStatusSent:     {QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired},
		QuoteStatusAccepted: {QuoteStatusConverted},
	}
	for _, next := range allowed[q.Status] {
		if next == target {
			now := time.Now()
			switch target {
			case QuoteStatusSent:
				q.SentAt = &now
			case QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusExpired:
				q.DecidedAt = &now
			}
			q.Status = target
			return nil
		}
	}
	return ErrInvalidQuoteTransition
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
