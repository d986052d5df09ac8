package service

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/utils"
)

// TokenPair is the result of a successful authorization-code exchange.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// MailProvider is the outbound mail provider contract: an OAuth2-style
// authorization-code flow plus a transactional send endpoint.
type MailProvider interface {
	ExchangeCode(ctx context.Context, code string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, time.Time, error)
	Send(ctx context.Context, accessToken, to, subject, htmlBody, from string) error
}

// MailAuthStore persists the singleton mail-authorization record.
type MailAuthStore interface {
	Load(ctx context.Context) (*models.MailAuthConfig, error)
	Save(ctx context.Context, cfg *models.MailAuthConfig) error
}

// MailAuthManager owns the mail credential lifecycle. Token state is
// process-wide shared mutable state, so every read-check-refresh sequence
// runs under the manager's mutex; two operator sessions can no longer race
// a double refresh.
type MailAuthManager struct {
	mu       sync.Mutex
	cfg      config.MailProviderConfig
	provider MailProvider
	store    MailAuthStore
	now      func() time.Time
}

// NewMailAuthManager creates the manager.
func NewMailAuthManager(cfg config.MailProviderConfig, provider MailProvider, store MailAuthStore) *MailAuthManager {
	return &MailAuthManager{
		cfg:      cfg,
		provider: provider,
		store:    store,
		now:      time.Now,
	}
}

// BuildAuthorizationURL constructs the provider consent URL. Pure, no side
// effects.
func (m *MailAuthManager) BuildAuthorizationURL() string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", m.cfg.ClientID)
	params.Set("scope", m.cfg.Scopes)
	params.Set("redirect_uri", m.cfg.RedirectURI)
	return m.cfg.AuthURL + "?" + params.Encode()
}

// ExchangeCode trades the one-time authorization code for tokens and
// persists them. Codes are single-use: a reused, expired or malformed code
// is rejected by the provider and surfaced as an authorization error.
func (m *MailAuthManager) ExchangeCode(ctx context.Context, code string) error {
	if code == "" {
		return utils.NewValidationError("Kode otorisasi wajib diisi")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pair, err := m.provider.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	record, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	record.AccessToken = pair.AccessToken
	record.RefreshToken = pair.RefreshToken
	record.TokenExpiry = pair.Expiry
	record.FromAddress = m.cfg.FromAddress
	record.Authorized = true
	record.UpdatedAt = m.now().UTC()

	if err := m.store.Save(ctx, record); err != nil {
		return err
	}

	utils.LogInfo(map[string]interface{}{"from": record.FromAddress}, "mail authorization completed")
	return nil
}

// EnsureFreshAccessToken returns a usable access token. A cached unexpired
// token is returned without touching the provider; otherwise the refresh
// token is spent on a new one. A send attempt must never proceed without
// the token this returns.
func (m *MailAuthManager) EnsureFreshAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureFreshLocked(ctx)
}

func (m *MailAuthManager) ensureFreshLocked(ctx context.Context) (string, error) {
	record, err := m.store.Load(ctx)
	if err != nil {
		return "", err
	}

	if !record.Authorized || record.RefreshToken == "" {
		return "", utils.NewAuthError("Pengiriman email belum diotorisasi. Silakan jalankan proses otorisasi terlebih dahulu.")
	}

	if record.AccessToken != "" && m.now().Before(record.TokenExpiry) {
		return record.AccessToken, nil
	}

	accessToken, expiry, err := m.provider.Refresh(ctx, record.RefreshToken)
	if err != nil {
		return "", err
	}

	record.AccessToken = accessToken
	record.TokenExpiry = expiry
	record.UpdatedAt = m.now().UTC()
	if err := m.store.Save(ctx, record); err != nil {
		return "", err
	}

	return accessToken, nil
}

// Status reports whether the process is authorized and with which sender
// address.
func (m *MailAuthManager) Status(ctx context.Context) (*models.MailAuthConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Load(ctx)
}

// SendMail obtains a fresh access token and delegates the send to the
// provider. A provider rejection is surfaced as a delivery error and never
// retried here; retry policy belongs to the caller.
func (m *MailAuthManager) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	accessToken, err := m.ensureFreshLocked(ctx)
	if err != nil {
		return err
	}

	record, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	from := record.FromAddress
	if from == "" {
		from = m.cfg.FromAddress
	}

	if err := m.provider.Send(ctx, accessToken, to, subject, htmlBody, from); err != nil {
		return err
	}

	utils.LogInfo(map[string]interface{}{"to": to, "subject": subject}, "mail sent")
	return nil
}
