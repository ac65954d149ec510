package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ZENDESK_DOMAIN", "https://acme.zendesk.com/")
	t.Setenv("ZENDESK_EMAIL", "admin@acme.com")
	t.Setenv("ZENDESK_API_TOKEN", "secret")
	t.Setenv("PIPELINE_MACRO_ID", "42")
	t.Setenv("PIPELINE_TARGET_GROUP_ID", "31112854673047")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("EXTRACT_EXCLUDED_DOMAINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://acme.zendesk.com", cfg.Zendesk.Domain)
	assert.Equal(t, "ev_new_message", cfg.Pipeline.TargetTag)
	assert.Equal(t, int64(31112854673047), cfg.Pipeline.TargetGroupID)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, []string{"acme.zendesk.com", "zendesk.com", "acme.com"}, cfg.Extract.ExcludedDomains)
	assert.Equal(t, defaultCloseComment, cfg.Pipeline.CloseComment)
}

func TestLoadHonorsPort(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoadExcludedDomainsOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("EXTRACT_EXCLUDED_DOMAINS", " Acme.com, zendesk.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme.com", "zendesk.com"}, cfg.Extract.ExcludedDomains)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("ZENDESK_API_TOKEN", "")
	t.Setenv("PIPELINE_MACRO_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZENDESK_API_TOKEN")
	assert.Contains(t, err.Error(), "PIPELINE_MACRO_ID")
}

func TestLoadInvalidGroupID(t *testing.T) {
	setRequired(t)
	t.Setenv("PIPELINE_TARGET_GROUP_ID", "support")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PIPELINE_TARGET_GROUP_ID")
}

func TestDefaultExcludedDomainsIncludesAccountMailDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		email  string
		want   []string
	}{
		{
			name:   "staff mail domain",
			domain: "https://elotouchcare.zendesk.com",
			email:  "Support@EloTouch.com",
			want:   []string{"elotouchcare.zendesk.com", "zendesk.com", "elotouch.com"},
		},
		{
			name:   "account on zendesk domain",
			domain: "https://acme.zendesk.com",
			email:  "bot@zendesk.com",
			want:   []string{"acme.zendesk.com", "zendesk.com"},
		},
		{
			name:   "no account email",
			domain: "https://acme.zendesk.com",
			email:  "",
			want:   []string{"acme.zendesk.com", "zendesk.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultExcludedDomains(tt.domain, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DefaultExcludedDomains("acme", "a@acme.com")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedIntegers(t *testing.T) {
	for _, key := range []string{
		"LOCK_TTL_SECONDS",
		"HTTP_REQUEST_TIMEOUT_SECONDS",
		"ZENDESK_TIMEOUT_SECONDS",
		"REDIS_DB",
		"ADMIN_TOKEN_TTL_MINUTES",
	} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "2m")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadAuthRejectsMalformedTTL(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_TOKEN_TTL_MINUTES", "soon")

	_, err := LoadAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_TOKEN_TTL_MINUTES")

	t.Setenv("ADMIN_TOKEN_TTL_MINUTES", "15")
	cfg, err := LoadAuth()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.TokenTTLMinutes)
}
