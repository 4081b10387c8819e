package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"gorm.io/gorm"

	"github.com/QuoteKitHQ/QuoteKit/app/models"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/storage"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/usage"
)

var ErrQuoteNotFound = errors.New("quote not found")

// Store is the object-storage surface the document service needs.
type Store interface {
	UploadBytes(ctx context.Context, objectKey string, payload []byte, contentType string) (*storage.UploadResult, error)
}

// Service renders quote HTML (the input handed to the external PDF layer)
// and records generation outcomes.
type Service struct {
	db    *gorm.DB
	store Store
}

// NewService creates a document service. store may be nil when object
// storage is disabled; renders then skip the upload and only log.
func NewService(db *gorm.DB, store Store) *Service {
	return &Service{db: db, store: store}
}

// QueueRender creates a queued DocumentLog row for a quote owned by the
// caller and returns it. The actual render happens in the job queue.
func (s *Service) QueueRender(ctx context.Context, userID, quoteID uint) (*models.DocumentLog, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", quoteID, userID).First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	dl := &models.DocumentLog{
		UserID:  userID,
		QuoteID: quoteID,
		Status:  models.DocumentStatusQueued,
	}
	if err := s.db.WithContext(ctx).Create(dl).Error; err != nil {
		return nil, err
	}
	return dl, nil
}

// Render processes a queued DocumentLog: renders the quote HTML from the
// company template, stores it under the account's folder, and finalizes the
// log with status, timing and size.
func (s *Service) Render(ctx context.Context, documentLogID uint) error {
	var dl models.DocumentLog
	if err := s.db.WithContext(ctx).First(&dl, documentLogID).Error; err != nil {
		return err
	}

	dl.MarkStarted()
	if err := s.db.WithContext(ctx).Save(&dl).Error; err != nil {
		return err
	}

	started := time.Now()
	path, size, err := s.renderAndStore(ctx, &dl)
	elapsed := time.Since(started).Milliseconds()

	if err != nil {
		dl.MarkFailed(err.Error(), elapsed)
	} else {
		dl.MarkCompleted(path, size, elapsed)
	}
	if saveErr := s.db.WithContext(ctx).Save(&dl).Error; saveErr != nil {
		return saveErr
	}
	if err == nil {
		err = usage.IncrementTx(s.db, dl.UserID, models.FeatureDocumentsGenerated, time.Now())
	}
	return err
}

// RecordOutcome lets the external PDF layer report its own result (the
// binary render happens outside this service).
func (s *Service) RecordOutcome(ctx context.Context, userID, quoteID uint, success bool, storagePath string, sizeBytes, durationMS int64, errMsg string) (*models.DocumentLog, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", quoteID, userID).First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	dl := &models.DocumentLog{UserID: userID, QuoteID: quoteID}
	if success {
		dl.MarkCompleted(storagePath, sizeBytes, durationMS)
	} else {
		dl.MarkFailed(errMsg, durationMS)
	}
	if err := s.db.WithContext(ctx).Create(dl).Error; err != nil {
		return nil, err
	}
	return dl, nil
}

func (s *Service) renderAndStore(ctx context.Context, dl *models.DocumentLog) (string, int64, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).First(&quote, dl.QuoteID).Error; err != nil {
		return "", 0, err
	}
	cs, err := models.GetOrCreateCompanySettings(s.db, dl.UserID)
	if err != nil {
		return "", 0, err
	}

	html, err := RenderQuoteHTML(cs, &quote)
	if err != nil {
		return "", 0, err
	}

	if s.store == nil {
		return "", int64(len(html)), nil
	}

	now := time.Now()
	key := storage.DocumentKey(dl.UserID, quote.ID, now.Year(), int(now.Month()))
	result, err := s.store.UploadBytes(ctx, key, html, "text/html; charset=utf-8")
	if err != nil {
		return "", 0, err
	}
	return result.ObjectKey, result.Size, nil
}

// RenderQuoteHTML renders a quote against the company's stored HTML/CSS
// template, falling back to the built-in default template.
func RenderQuoteHTML(cs *models.CompanySettings, quote *models.Quote) ([]byte, error) {
	tplSource := cs.QuoteTemplateHTML
	if tplSource == "" {
		tplSource = defaultQuoteTemplate
	}

	tpl, err := template.New("quote").Parse(tplSource)
	if err != nil {
		return nil, fmt.Errorf("quote template parse failed: %w", err)
	}

	lines, err := quote.Lines()
	if err != nil {
		return nil, fmt.Errorf("quote line payload decode failed: %w", err)
	}

	data := map[string]any{
		"Company": cs,
		"Quote":   quote,
		"Lines":   lines,
		"CSS":     template.CSS(cs.QuoteTemplateCSS),
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("quote template render failed: %w", err)
	}
	return buf.Bytes(), nil
}

const defaultQuoteTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: sans-serif; margin: 2em; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.4em; border-bottom: 1px solid #ddd; }
.totals { margin-top: 1em; text-align: right; }
{{.CSS}}
</style>
</head>
<body>
<h1>{{.Company.CompanyName}}</h1>
<h2>Quote {{.Quote.QuoteNumber}}</h2>
<table>
<tr><th>Item</th><th>Qty</th><th>Unit Price</th><th>Total</th></tr>
{{range .Lines}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .UnitPrice}}</td><td>{{printf "%.2f" .Total}}</td></tr>
{{end}}
</table>
<div class="totals">
<p>Subtotal: {{printf "%.2f" .Quote.Subtotal}}</p>
<p>Markup ({{printf "%.2f" .Quote.MarkupRate}}%): {{printf "%.2f" .Quote.MarkupAmount}}</p>
<p>Tax ({{printf "%.2f" .Quote.TaxRate}}%): {{printf "%.2f" .Quote.TaxAmount}}</p>
<p><strong>Total: {{printf "%.2f" .Quote.Total}}</strong></p>
</div>
</body>
</html>`
