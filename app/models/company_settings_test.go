package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanySettingsIssueAPIKey(t *testing.T) {
	cs := &CompanySettings{UserID: 1}

	key, err := cs.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.True(t, len(key) > len(apiKeyPrefix))
	assert.Equal(t, apiKeyPrefix, key[:len(apiKeyPrefix)])
	assert.NotEmpty(t, cs.APIKeyHash)
	assert.NotEmpty(t, cs.APIKeyPrefix)
	assert.NotNil(t, cs.APIKeyCreatedAt)
	assert.Nil(t, cs.APIKeyLastUsedAt)
	assert.True(t, cs.HasActiveAPIKey())
	assert.Equal(t, HashAPIKey(key), cs.APIKeyHash)
}

func TestCompanySettingsReissueReplacesHash(t *testing.T) {
	cs := &CompanySettings{UserID: 7}

	first, err := cs.IssueAPIKey()
	require.NoError(t, err)
	firstHash := cs.APIKeyHash

	second, err := cs.IssueAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, firstHash, cs.APIKeyHash)
	assert.Equal(t, HashAPIKey(second), cs.APIKeyHash)
}

func TestCompanySettingsRevokeAPIKey(t *testing.T) {
	cs := &CompanySettings{UserID: 99}
	_, err := cs.IssueAPIKey()
	require.NoError(t, err)

	cs.RevokeAPIKey()

	assert.False(t, cs.HasActiveAPIKey())
	assert.Equal(t, "", cs.APIKeyHash)
	assert.Equal(t, "", cs.APIKeyPrefix)
	assert.NotNil(t, cs.APIKeyRevokedAt)
}

func TestCompanySettingsRateDefaults(t *testing.T) {
	cs := &CompanySettings{}
	assert.Equal(t, DefaultTaxRate, cs.TaxRateOrDefault())
	assert.Equal(t, DefaultMarkupRate, cs.MarkupRateOrDefault())

	cs.DefaultTaxRate = 6.5
	cs.DefaultMarkup = 30.0
	assert.Equal(t, 6.5, cs.TaxRateOrDefault())
	assert.Equal(t, 30.0, cs.MarkupRateOrDefault())
}
