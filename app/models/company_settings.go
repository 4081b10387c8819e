package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Default financial rates applied to quotes when the company has not
// overridden them.
const (
	DefaultTaxRate    = 8.25
	DefaultMarkupRate = 25.0
)

// CompanySettings stores the business profile, quote defaults and plan info.
// Exactly one row exists per user.
type CompanySettings struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `gorm:"uniqueIndex" json:"user_id"`
	CompanyName       string         `gorm:"type:varchar(200);default:''" json:"company_name"`
	Address           string         `gorm:"type:text" json:"address"`
	Phone             string         `gorm:"type:varchar(50);default:''" json:"phone"`
	ReplyToEmail      string         `gorm:"type:varchar(200);default:''" json:"reply_to_email"`
	LogoPath          string         `gorm:"type:varchar(255);default:''" json:"logo_path"`
	DefaultTaxRate    float64        `gorm:"type:decimal(6,3);default:8.25" json:"default_tax_rate"`
	DefaultMarkup     float64        `gorm:"type:decimal(6,3);default:25.0" json:"default_markup_rate"`
	QuoteTemplateHTML string         `gorm:"type:longtext" json:"quote_template_html"`
	QuoteTemplateCSS  string         `gorm:"type:longtext" json:"quote_template_css"`
	Plan              string         `gorm:"type:varchar(50);default:'free'" json:"plan"`
	APIKeyHash        string         `gorm:"type:char(64);default:''" json:"-"`
	APIKeyPrefix      string         `gorm:"type:varchar(20);default:''" json:"api_key_prefix"`
	APIKeyCreatedAt   *time.Time     `json:"api_key_created_at"`
	APIKeyLastUsedAt  *time.Time     `json:"api_key_last_used_at"`
	APIKeyRevokedAt   *time.Time     `json:"api_key_revoked_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

var apiKeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

const apiKeyPrefix = "qk_"

// GetOrCreateCompanySettings returns existing settings or creates defaults
func GetOrCreateCompanySettings(db *gorm.DB, userID uint) (*CompanySettings, error) {
	var cs CompanySettings
	if err := db.Where("user_id = ?", userID).First(&cs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			cs = CompanySettings{
				UserID:         userID,
				Plan:           "free",
				DefaultTaxRate: DefaultTaxRate,
				DefaultMarkup:  DefaultMarkupRate,
			}
			if err := db.Create(&cs).Error; err != nil {
				return nil, err
			}
			return &cs, nil
		}
		return nil, err
	}
	return &cs, nil
}

// TaxRateOrDefault returns the configured tax rate, falling back to the
// system default when unset.
func (cs *CompanySettings) TaxRateOrDefault() float64 {
	if cs == nil || cs.DefaultTaxRate <= 0 {
		return DefaultTaxRate
	}
	return cs.DefaultTaxRate
}

// MarkupRateOrDefault returns the configured markup rate, falling back to the
// system default when unset.
func (cs *CompanySettings) MarkupRateOrDefault() float64 {
	if cs == nil || cs.DefaultMarkup <= 0 {
		return DefaultMarkupRate
	}
	return cs.DefaultMarkup
}

// HasActiveAPIKey reports whether the company has an active API key configured
func (cs *CompanySettings) HasActiveAPIKey() bool {
	return cs != nil && cs.APIKeyHash != "" && cs.APIKeyRevokedAt == nil
}

// IssueAPIKey generates a new API key, persists metadata on the struct, and returns the raw secret.
// Callers must persist the struct via the database after invoking this method.
func (cs *CompanySettings) IssueAPIKey() (string, error) {
	rawKey, prefix, hash, err := generateAPIKeyMaterial()
	if err != nil {
		return "", err
	}
	now := time.Now()
	cs.APIKeyHash = hash
	cs.APIKeyPrefix = prefix
	cs.APIKeyCreatedAt = &now
	cs.APIKeyRevokedAt = nil
	cs.APIKeyLastUsedAt = nil
	return rawKey, nil
}

// RevokeAPIKey clears the stored API key metadata without deleting the record.
func (cs *CompanySettings) RevokeAPIKey() {
	cs.APIKeyHash = ""
	cs.APIKeyPrefix = ""
	now := time.Now()
	cs.APIKeyRevokedAt = &now
	cs.APIKeyLastUsedAt = nil
}

// TouchAPIKeyUsage updates the last-used timestamp metadata.
func (cs *CompanySettings) TouchAPIKeyUsage() {
	now := time.Now()
	cs.APIKeyLastUsedAt = &now
}

// HashAPIKey returns the SHA-256 hash for the provided API key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

func generateAPIKeyMaterial() (string, string, string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", "", err
	}
	encoded := apiKeyEncoding.EncodeToString(b)
	encoded = strings.ToLower(encoded)
	rawKey := apiKeyPrefix + encoded
	if len(rawKey) < 12 {
		return "", "", "", fmt.Errorf("api key generation failed: key too short")
	}
	prefix := rawKey[:min(len(rawKey), 16)]
	hash := HashAPIKey(rawKey)
	return rawKey, prefix, hash, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
