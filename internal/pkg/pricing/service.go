package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAlreadyQuoted      = errors.New("assessment already quoted")
)

// GenerateOptions override the company's quote defaults for a single run.
type GenerateOptions struct {
	TaxRate    *float64
	MarkupRate *float64
	Title      string
	ValidDays  int
}

// Service turns property assessments into priced quotes.
type Service struct {
	db *gorm.DB
}

// NewService creates a pricing service from a GORM DB handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GenerateQuoteFromAssessment computes the condition-adjusted price for an
// assessment and persists a draft quote in one transaction. The assessment
// is marked quoted and the automation usage counter is bumped atomically
// with the quote insert.
func (s *Service) GenerateQuoteFromAssessment(ctx context.Context, userID, assessmentID uint, opts GenerateOptions) (*models.Quote, *Breakdown, error) {
	if userID == 0 || assessmentID == 0 {
		return nil, nil, errors.New("user_id and assessment_id are required")
	}

	var quote *models.Quote
	var breakdown *Breakdown

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assessment models.Assessment
		if err := tx.Where("id = ? AND user_id = ?", assessmentID, userID).First(&assessment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssessmentNotFound
			}
			return err
		}
		if assessment.Status == models.AssessmentStatusQuoted {
			return ErrAlreadyQuoted
		}

		b, err := Calculate(assessment.PropertySizeSqFt, assessment.LawnCondition, assessment.SoilCondition)
		if err != nil {
			return err
		}
		breakdown = b

		cs, err := models.GetOrCreateCompanySettings(tx, userID)
		if err != nil {
			return err
		}

		taxRate := cs.TaxRateOrDefault()
		if opts.TaxRate != nil {
			taxRate = *opts.TaxRate
		}
		markupRate := cs.MarkupRateOrDefault()
		if opts.MarkupRate != nil {
			markupRate = *opts.MarkupRate
		}

		title := strings.TrimSpace(opts.Title)
		if title == "" {
			title = "Condition-adjusted service quote"
		}

		q := &models.Quote{
			UserID:       userID,
			ClientID:     assessment.ClientID,
			PropertyID:   assessment.PropertyID,
			AssessmentID: &assessment.ID,
			QuoteNumber:  NewQuoteNumber(),
			Title:        title,
			TaxRate:      taxRate,
			MarkupRate:   markupRate,
			Status:       models.QuoteStatusDraft,
		}
		line := models.QuoteLine{
			Name: fmt.Sprintf("Lawn service (%0.f sq ft, lawn %s, soil %s)",
				assessment.PropertySizeSqFt, assessment.LawnCondition, assessment.SoilCondition),
			Unit:      "job",
			Quantity:  1,
			UnitPrice: b.AdjustedPrice,
		}
		if err := q.SetLines([]models.QuoteLine{line}); err != nil {
			return err
		}
		if opts.ValidDays > 0 {
			until := time.Now().AddDate(0, 0, opts.ValidDays)
			q.ValidUntil = &until
		}
		if err := tx.Create(q).Error; err != nil {
			return err
		}

		assessment.MarkQuoted()
		if err := tx.Save(&assessment).Error; err != nil {
			return err
		}

		if err := usage.IncrementTx(tx, userID, models.FeatureAssessmentsQuoted, time.Now()); err != nil {
			return err
		}

		quote = q
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return quote, breakdown, nil
}

// NewQuoteNumber produces a short unique human-facing quote reference.
func NewQuoteNumber() string {
	return fmt.Sprintf("Q-%d-%s", time.Now().Year(), strings.ToUpper(uuid.NewString()[:8]))
}
