package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/models"
	"github.com/emidigital/emi-crm/utils"

	"github.com/stretchr/testify/assert"
)

// fakeMailProvider counts calls and enforces single-use authorization codes,
// the way the real provider does.
type fakeMailProvider struct {
	exchangeCalls int
	refreshCalls  int
	sendCalls     int
	consumedCodes map[string]bool
	refreshErr    error
	sendErr       error
}

func newFakeMailProvider() *fakeMailProvider {
	return &fakeMailProvider{consumedCodes: map[string]bool{}}
}

func (p *fakeMailProvider) ExchangeCode(ctx context.Context, code string) (*TokenPair, error) {
	p.exchangeCalls++
	if p.consumedCodes[code] {
		return nil, utils.NewAuthError("Otorisasi email ditolak oleh penyedia")
	}
	p.consumedCodes[code] = true
	return &TokenPair{
		AccessToken:  "access-" + code,
		RefreshToken: "refresh-" + code,
		Expiry:       time.Now().Add(time.Hour),
	}, nil
}

func (p *fakeMailProvider) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	p.refreshCalls++
	if p.refreshErr != nil {
		return "", time.Time{}, p.refreshErr
	}
	return "refreshed-access", time.Now().Add(time.Hour), nil
}

func (p *fakeMailProvider) Send(ctx context.Context, accessToken, to, subject, htmlBody, from string) error {
	p.sendCalls++
	return p.sendErr
}

// memAuthStore keeps the singleton record in memory.
type memAuthStore struct {
	record models.MailAuthConfig
}

func (s *memAuthStore) Load(ctx context.Context) (*models.MailAuthConfig, error) {
	rec := s.record
	return &rec, nil
}

func (s *memAuthStore) Save(ctx context.Context, cfg *models.MailAuthConfig) error {
	s.record = *cfg
	return nil
}

var testMailConfig = config.MailProviderConfig{
	ClientID:    "client-123",
	RedirectURI: "https://crm.emidigital.id/mail/callback",
	Scopes:      "https://mail.example.com/send",
	AuthURL:     "https://accounts.example.com/o/oauth2/auth",
	FromAddress: "marketing@emidigital.id",
}

func newTestMailManager(provider *fakeMailProvider, store *memAuthStore) *MailAuthManager {
	return NewMailAuthManager(testMailConfig, provider, store)
}

func TestBuildAuthorizationURL(t *testing.T) {
	m := newTestMailManager(newFakeMailProvider(), &memAuthStore{})

	raw := m.BuildAuthorizationURL()

	assert.True(t, strings.HasPrefix(raw, testMailConfig.AuthURL+"?"))
	parsed, err := url.Parse(raw)
	assert.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://mail.example.com/send", q.Get("scope"))
	assert.Equal(t, "https://crm.emidigital.id/mail/callback", q.Get("redirect_uri"))
}

func TestExchangeCodePersistsTokens(t *testing.T) {
	provider := newFakeMailProvider()
	store := &memAuthStore{}
	m := newTestMailManager(provider, store)

	err := m.ExchangeCode(context.Background(), "code-1")

	assert.NoError(t, err)
	assert.True(t, store.record.Authorized)
	assert.Equal(t, "access-code-1", store.record.AccessToken)
	assert.Equal(t, "refresh-code-1", store.record.RefreshToken)
	assert.Equal(t, "marketing@emidigital.id", store.record.FromAddress)
}

func TestExchangeCodeIsSingleUse(t *testing.T) {
	provider := newFakeMailProvider()
	store := &memAuthStore{}
	m := newTestMailManager(provider, store)

	assert.NoError(t, m.ExchangeCode(context.Background(), "code-1"))

	err := m.ExchangeCode(context.Background(), "code-1")

	assert.True(t, utils.IsAuthError(err))
	// the failed reuse must not clobber the stored credentials
	assert.True(t, store.record.Authorized)
	assert.Equal(t, "refresh-code-1", store.record.RefreshToken)
}

func TestExchangeCodeRejectsEmptyCode(t *testing.T) {
	provider := newFakeMailProvider()
	m := newTestMailManager(provider, &memAuthStore{})

	err := m.ExchangeCode(context.Background(), "")

	assert.True(t, utils.IsValidationError(err))
	assert.Equal(t, 0, provider.exchangeCalls)
}

func TestEnsureFreshAccessTokenUsesCacheWithoutNetwork(t *testing.T) {
	provider := newFakeMailProvider()
	store := &memAuthStore{record: models.MailAuthConfig{
		Authorized:   true,
		AccessToken:  "cached-token",
		RefreshToken: "refresh-token",
		TokenExpiry:  time.Now().Add(30 * time.Minute),
	}}
	m := newTestMailManager(provider, store)

	for i := 0; i < 2; i++ {
		token, err := m.EnsureFreshAccessToken(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "cached-token", token)
	}
	assert.Equal(t, 0, provider.refreshCalls)
}

func TestEnsureFreshAccessTokenRefreshesExpiredToken(t *testing.T) {
	provider := newFakeMailProvider()
	store := &memAuthStore{record: models.MailAuthConfig{
		Authorized:   true,
		AccessToken:  "stale-token",
		RefreshToken: "refresh-token",
		TokenExpiry:  time.Now().Add(-time.Minute),
	}}
	m := newTestMailManager(provider, store)

	token, err := m.EnsureFreshAccessToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "refreshed-access", token)
	assert.Equal(t, 1, provider.refreshCalls)

	// the refreshed token is persisted and served from cache afterwards
	token, err = m.EnsureFreshAccessToken(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "refreshed-access", token)
	assert.Equal(t, 1, provider.refreshCalls)
}

func TestEnsureFreshAccessTokenRequiresAuthorization(t *testing.T) {
	provider := newFakeMailProvider()
	m := newTestMailManager(provider, &memAuthStore{})

	_, err := m.EnsureFreshAccessToken(context.Background())

	assert.True(t, utils.IsAuthError(err))
	assert.Equal(t, 0, provider.refreshCalls)
}

func TestEnsureFreshAccessTokenSurfacesRevokedRefreshToken(t *testing.T) {
	provider := newFakeMailProvider()
	provider.refreshErr = utils.NewAuthError("Refresh token tidak berlaku lagi")
	store := &memAuthStore{record: models.MailAuthConfig{
		Authorized:   true,
		RefreshToken: "revoked",
		TokenExpiry:  time.Now().Add(-time.Hour),
	}}
	m := newTestMailManager(provider, store)

	_, err := m.EnsureFreshAccessToken(context.Background())

	assert.True(t, utils.IsAuthError(err))
}

func TestSendMailDeliversWithFreshToken(t *testing.T) {
	provider := newFakeMailProvider()
	store := &memAuthStore{record: models.MailAuthConfig{
		Authorized:   true,
		AccessToken:  "cached-token",
		RefreshToken: "refresh-token",
		TokenExpiry:  time.Now().Add(time.Hour),
		FromAddress:  "sales@emidigital.id",
	}}
	m := newTestMailManager(provider, store)

	err := m.SendMail(context.Background(), "prospek@acme.co.id", "Penawaran", "<p>Halo</p>")

	assert.NoError(t, err)
	assert.Equal(t, 1, provider.sendCalls)
	assert.Equal(t, 0, provider.refreshCalls)
}

func TestSendMailRejectionIsNotRetried(t *testing.T) {
	provider := newFakeMailProvider()
	provider.sendErr = utils.NewDeliveryError("Penyedia menolak pengiriman email")
	store := &memAuthStore{record: models.MailAuthConfig{
		Authorized:   true,
		AccessToken:  "cached-token",
		RefreshToken: "refresh-token",
		TokenExpiry:  time.Now().Add(time.Hour),
	}}
	m := newTestMailManager(provider, store)

	err := m.SendMail(context.Background(), "prospek@acme.co.id", "Penawaran", "<p>Halo</p>")

	assert.True(t, utils.IsDeliveryError(err))
	assert.Equal(t, 1, provider.sendCalls)
}

func TestSendMailRequiresAuthorization(t *testing.T) {
	provider := newFakeMailProvider()
	m := newTestMailManager(provider, &memAuthStore{})

	err := m.SendMail(context.Background(), "prospek@acme.co.id", "Penawaran", "<p>Halo</p>")

	assert.True(t, utils.IsAuthError(err))
	assert.Equal(t, 0, provider.sendCalls)
}
